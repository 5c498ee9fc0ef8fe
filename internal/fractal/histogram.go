package fractal

import (
	"iter"
	"maps"
	"slices"
)

// Histogram 是像素到访问次数的映射。
// 键空间固定为 [0, resolution)²，越界像素在写入时被丢弃。
// Histogram 不是并发安全的，每个分区独占自己的直方图直到归并。
type Histogram struct {
	resolution int
	counts     map[Pixel]uint64
}

// NewHistogram 创建空直方图
func NewHistogram(resolution int) *Histogram {
	return &Histogram{
		resolution: resolution,
		counts:     make(map[Pixel]uint64),
	}
}

func (h *Histogram) Resolution() int {
	return h.resolution
}

// Add 给像素 p 累加 n 次访问，越界像素返回 false
func (h *Histogram) Add(p Pixel, n uint64) bool {
	if !p.In(h.resolution) {
		return false
	}
	h.counts[p] += n
	return true
}

// addTrail 把一条逃逸轨道的全部像素计入直方图
func (h *Histogram) addTrail(trail []Pixel) {
	for _, p := range trail {
		h.Add(p, 1)
	}
}

// Count 返回像素的访问次数，未访问过为 0
func (h *Histogram) Count(p Pixel) uint64 {
	return h.counts[p]
}

// Len 返回被访问过的像素数
func (h *Histogram) Len() int {
	return len(h.counts)
}

// Total 返回全部访问次数之和
func (h *Histogram) Total() uint64 {
	var total uint64
	for _, v := range h.counts {
		total += v
	}
	return total
}

// All 遍历所有 (像素, 次数)，顺序不确定
func (h *Histogram) All() iter.Seq2[Pixel, uint64] {
	return maps.All(h.counts)
}

// Merge 把 o 按键求和合并进 h
func (h *Histogram) Merge(o *Histogram) {
	if o == nil {
		return
	}
	for p, v := range o.counts {
		h.Add(p, v)
	}
}

// Equal 逐键比较两个直方图
func (h *Histogram) Equal(o *Histogram) bool {
	if h.resolution != o.resolution {
		return false
	}
	return maps.Equal(h.counts, o.counts)
}

// Distinct 返回出现过的不同计数值，升序
func (h *Histogram) Distinct() []uint64 {
	seen := make(map[uint64]struct{}, len(h.counts))
	for _, v := range h.counts {
		seen[v] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Reduce 把多个直方图归并为一个新直方图。
// 按键求和满足交换律与结合律，因此输入顺序不影响结果。
func Reduce(resolution int, hs ...*Histogram) *Histogram {
	out := NewHistogram(resolution)
	for _, h := range hs {
		out.Merge(h)
	}
	return out
}
