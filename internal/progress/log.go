// Package progress 提供 fractal.Observer 的实现：日志、Kafka 以及组合。
package progress

import (
	"github.com/zeromicro/go-zero/core/logx"

	"buddhabrot/internal/fractal"
)

// LogObserver 用 logx 输出进度，每完成 every 个分区打一条日志
type LogObserver struct {
	every int
}

// NewLogObserver every <= 0 时只在最后一个分区完成时输出
func NewLogObserver(every int) *LogObserver {
	return &LogObserver{every: every}
}

func (o *LogObserver) PartitionDone(ev fractal.PartitionEvent) {
	if ev.Done != ev.Total && (o.every <= 0 || ev.Done%o.every != 0) {
		return
	}
	logx.Infow("partitions done",
		logx.Field("done", ev.Done),
		logx.Field("total", ev.Total),
		logx.Field("percent", percent(ev.Done, ev.Total)))
}

func (o *LogObserver) SegmentDone(ev fractal.SegmentEvent) {
	logx.Infow("segment done",
		logx.Field("segment", ev.Segment+1),
		logx.Field("segments", ev.Segments),
		logx.Field("partitions", ev.Partitions),
		logx.Field("pixels", ev.Pixels))
}

func percent(done, total int) float64 {
	if total == 0 {
		return 100
	}
	return float64(done) * 100 / float64(total)
}
