package fractal

//go:generate mockgen -source=observer.go -destination=mock_observer_test.go -package=fractal

// PartitionEvent 在一个分区完成时发出
type PartitionEvent struct {
	Segment int     `json:"segment"`
	Index   int     `json:"index"`
	Real    float64 `json:"real"`
	Stats   Stats   `json:"stats"`
	// Done 是本次运行中已完成的分区数，Total 是分区总数
	Done  int `json:"done"`
	Total int `json:"total"`
}

// SegmentEvent 在一个宏分段归并完成时发出
type SegmentEvent struct {
	Segment    int `json:"segment"`
	Segments   int `json:"segments"`
	Partitions int `json:"partitions"`
	// Pixels 是归并后全局直方图中被访问过的像素数
	Pixels int `json:"pixels"`
}

// Observer 接收进度通知。
// 通知是单向的，引擎不等待也不依赖其结果；PartitionDone 会被多个 worker
// 并发调用，实现必须是并发安全的。
type Observer interface {
	PartitionDone(ev PartitionEvent)
	SegmentDone(ev SegmentEvent)
}

// NopObserver 丢弃所有通知
type NopObserver struct{}

func (NopObserver) PartitionDone(PartitionEvent) {}
func (NopObserver) SegmentDone(SegmentEvent)     {}
