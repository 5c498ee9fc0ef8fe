package fractal

import "math"

// Outcome 是单条轨道的终止状态
type Outcome int

const (
	Running Outcome = iota
	Escaped
	CycleDetected
	BudgetExhausted
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case Escaped:
		return "escaped"
	case CycleDetected:
		return "cycle_detected"
	case BudgetExhausted:
		return "budget_exhausted"
	default:
		return "unknown"
	}
}

// witness 是量化后的轨道点
type witness struct {
	re int64
	im int64
}

// witnessSet 记录当前轨道访问过的量化点
type witnessSet map[witness]struct{}

// insert 插入量化点，已存在时返回 false
func (s witnessSet) insert(w witness) bool {
	if _, ok := s[w]; ok {
		return false
	}
	s[w] = struct{}{}
	return true
}

// quantize 把坐标按精度缩放并四舍五入，超出 int64 范围时饱和
func quantize(x, precision float64) int64 {
	v := math.Round(x * precision)
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	}
	return int64(v)
}

// Iterator 逐步推进单条轨道，并检测逃逸与数值周期。
// 见过的量化点集合和轨迹缓冲在轨道之间复用，Iterator 不能跨 goroutine 共享。
type Iterator struct {
	mapper    Mapper
	maxIter   int
	precision float64

	seen  witnessSet
	trail []Pixel
}

// NewIterator 按参数创建轨道迭代器
func NewIterator(p Params) *Iterator {
	return &Iterator{
		mapper:    p.Mapper(),
		maxIter:   p.MaxIterations,
		precision: p.CyclePrecision,
		seen:      make(witnessSet),
		trail:     make([]Pixel, 0, 64),
	}
}

// Trace 从 z = 0 开始迭代 z ← z² + c。
//
// 每一步先记录 z 的像素，再把量化后的 z 放入见过的点集合，重复插入说明轨道
// 进入周期，返回 CycleDetected；随后判断逃逸，逃逸时把轨迹（含逃逸点本身）
// 整体计入 into 并返回 Escaped。迭代次数用尽返回 BudgetExhausted。
// 后两种情况轨迹被丢弃，不影响 into。
func (it *Iterator) Trace(c complex128, into *Histogram) Outcome {
	clear(it.seen)
	it.trail = it.trail[:0]

	var z complex128
	for range it.maxIter {
		re, im := real(z), imag(z)
		it.trail = append(it.trail, it.mapper.Pixel(z))
		if !it.seen.insert(witness{re: quantize(re, it.precision), im: quantize(im, it.precision)}) {
			return CycleDetected
		}
		if re*re+im*im > escapeRadiusSq {
			into.addTrail(it.trail)
			return Escaped
		}
		z = z*z + c
	}
	return BudgetExhausted
}
