package progress

import "buddhabrot/internal/fractal"

// Multi 把同一个事件依次分发给多个观察者
type Multi []fractal.Observer

// NewMulti 过滤掉 nil，只剩一个时直接返回它
func NewMulti(observers ...fractal.Observer) fractal.Observer {
	var m Multi
	for _, o := range observers {
		if o != nil {
			m = append(m, o)
		}
	}
	switch len(m) {
	case 0:
		return fractal.NopObserver{}
	case 1:
		return m[0]
	default:
		return m
	}
}

func (m Multi) PartitionDone(ev fractal.PartitionEvent) {
	for _, o := range m {
		o.PartitionDone(ev)
	}
}

func (m Multi) SegmentDone(ev fractal.SegmentEvent) {
	for _, o := range m {
		o.SegmentDone(ev)
	}
}
