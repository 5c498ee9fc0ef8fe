package fractal

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/mr"
	"golang.org/x/sync/errgroup"
)

// Scheduler 选择分段内分区的并行方式，两种方式结果完全相同
type Scheduler string

const (
	// SchedulerErrgroup 使用 errgroup + SetLimit 的有界 worker 池
	SchedulerErrgroup Scheduler = "errgroup"
	// SchedulerMapReduce 使用 go-zero 的 mr.MapReduce
	SchedulerMapReduce Scheduler = "mapreduce"
)

var ErrUnknownScheduler = errors.New("fractal: unknown scheduler")

// ParseScheduler 解析调度器名称，空字符串返回默认的 errgroup
func ParseScheduler(name string) (Scheduler, error) {
	switch Scheduler(name) {
	case "", SchedulerErrgroup:
		return SchedulerErrgroup, nil
	case SchedulerMapReduce:
		return SchedulerMapReduce, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScheduler, name)
	}
}

// Result 是一次完整运行的产出
type Result struct {
	Histogram *Histogram
	Stats     Stats
}

// Option 是 Engine 的函数选项
type Option func(*Engine)

// WithWorkers 设置分段内同时运行的分区数上限
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithScheduler 设置并行方式
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		e.scheduler = s
	}
}

// WithObserver 设置进度观察者
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// Engine 是 map-reduce 驱动：实轴按宏分段顺序处理，分段内的分区并行计算，
// 分段结束后由调用 Run 的 goroutine 把分区直方图归并进全局直方图。
type Engine struct {
	params    Params
	axis      grid
	workers   int
	scheduler Scheduler
	observer  Observer

	iterators sync.Pool
	done      atomic.Int64
}

// NewEngine 创建引擎，参数需事先通过 Params.Validate
func NewEngine(p Params, opts ...Option) *Engine {
	e := &Engine{
		params:    p,
		axis:      newGrid(p),
		workers:   runtime.NumCPU(),
		scheduler: SchedulerErrgroup,
		observer:  NopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.iterators.New = func() any {
		return NewIterator(e.params)
	}
	return e
}

// Params 返回引擎参数
func (e *Engine) Params() Params {
	return e.params
}

// Partitions 返回实轴上的分区数
func (e *Engine) Partitions() int {
	return e.axis.n
}

// segment 是实轴下标的半开区间 [lo, hi)
type segment struct {
	lo, hi int
}

// segments 把 [0, n) 切成至多 count 个连续且非空的分段
func segments(n, count int) []segment {
	count = max(min(count, n), 1)
	out := make([]segment, 0, count)
	for i := range count {
		lo, hi := i*n/count, (i+1)*n/count
		if lo < hi {
			out = append(out, segment{lo: lo, hi: hi})
		}
	}
	return out
}

// Run 计算全局直方图。
// ctx 只在分区之间检查：取消后已开始的分区会跑完，Run 返回 ctx.Err()。
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	e.done.Store(0)
	global := NewHistogram(e.params.Resolution)
	var stats Stats

	segs := segments(e.axis.n, e.params.Segments)
	logger := logx.WithContext(ctx)
	for i, seg := range segs {
		start := time.Now()
		results, err := e.runSegment(ctx, i, seg)
		if err != nil {
			return nil, err
		}

		// 分段内全部分区完成后才写全局直方图，这里没有并发写者
		for _, r := range results {
			global.Merge(r.hist)
			stats.Add(r.stats)
		}
		stats.Segments++

		logger.WithDuration(time.Since(start)).Debugw("segment reduced",
			logx.Field("segment", i),
			logx.Field("partitions", len(results)),
			logx.Field("pixels", global.Len()))
		e.observer.SegmentDone(SegmentEvent{
			Segment:    i,
			Segments:   len(segs),
			Partitions: len(results),
			Pixels:     global.Len(),
		})
	}

	return &Result{Histogram: global, Stats: stats}, nil
}

func (e *Engine) runSegment(ctx context.Context, index int, seg segment) ([]partitionResult, error) {
	switch e.scheduler {
	case SchedulerMapReduce:
		return e.runSegmentMapReduce(ctx, index, seg)
	case SchedulerErrgroup, "":
		return e.runSegmentGroup(ctx, index, seg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheduler, e.scheduler)
	}
}

// runSegmentGroup 用 errgroup 限制并发，每个分区写自己的结果槽位
func (e *Engine) runSegmentGroup(ctx context.Context, index int, seg segment) ([]partitionResult, error) {
	results := make([]partitionResult, seg.hi-seg.lo)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := seg.lo; i < seg.hi; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i-seg.lo] = e.partition(index, i)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runSegmentMapReduce 由 mr.MapReduce 分发分区，reducer 只负责收集结果
func (e *Engine) runSegmentMapReduce(ctx context.Context, index int, seg segment) ([]partitionResult, error) {
	results, err := mr.MapReduce(func(source chan<- int) {
		for i := seg.lo; i < seg.hi; i++ {
			source <- i
		}
	}, func(i int, writer mr.Writer[partitionResult], cancel func(error)) {
		if err := ctx.Err(); err != nil {
			cancel(err)
			return
		}
		writer.Write(e.partition(index, i))
	}, func(pipe <-chan partitionResult, writer mr.Writer[[]partitionResult], cancel func(error)) {
		collected := make([]partitionResult, 0, seg.hi-seg.lo)
		for r := range pipe {
			collected = append(collected, r)
		}
		writer.Write(collected)
	}, mr.WithWorkers(e.workers), mr.WithContext(ctx))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return results, nil
}

// partition 计算单个分区并通知观察者
func (e *Engine) partition(segIndex, index int) partitionResult {
	it := e.iterators.Get().(*Iterator)
	res := scanPartition(it, e.axis, e.params.Adaptive, e.params.Resolution, index)
	e.iterators.Put(it)

	e.observer.PartitionDone(PartitionEvent{
		Segment: segIndex,
		Index:   index,
		Real:    e.axis.at(index),
		Stats:   res.stats,
		Done:    int(e.done.Add(1)),
		Total:   e.axis.n,
	})
	return res
}
