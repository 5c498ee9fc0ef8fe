package fractal

// partitionResult 是一个分区的产出，归并前只属于计算它的 worker
type partitionResult struct {
	index int
	hist  *Histogram
	stats Stats
}

// scanPartition 固定实部为第 index 个网格点，沿虚轴从 Min 扫到 Max。
// 整个分区共用一个直方图，逃逸轨道直接写入其中。
func scanPartition(it *Iterator, axis grid, adaptive bool, resolution, index int) partitionResult {
	re := axis.at(index)
	res := partitionResult{
		index: index,
		hist:  NewHistogram(resolution),
		stats: Stats{Partitions: 1},
	}

	sampler := NewSampler(adaptive)
	for k := 0; k < axis.n; {
		out := it.Trace(complex(re, axis.at(k)), res.hist)
		res.stats.record(out)
		k += sampler.Observe(out == Escaped)
	}
	return res
}
