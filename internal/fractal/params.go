// Package fractal 实现 Buddhabrot 密度图的计算引擎。
//
// 对采样域中的每个复数 c 迭代 z ← z² + c（z 从 0 开始），只有最终逃逸
// （|z|² > 4）的轨道才会把逃逸前经过的每个像素计入直方图。直方图最后经过
// 分位裁剪和 x^(1/4) 响应曲线映射为单通道灰度栅格。
//
// 计算按实轴切分为分区（partition），每个分区独立扫描虚轴并构建自己的
// 直方图；分区在宏分段（macro-segment）内并行执行，分段之间顺序执行，
// 分段结束后由单个 goroutine 归并到全局直方图。
package fractal

import (
	"errors"
	"fmt"
	"math"
)

const (
	// escapeRadiusSq 逃逸半径为 2
	escapeRadiusSq = 4.0

	// DefaultCyclePrecision 周期检测的量化精度，经验值
	DefaultCyclePrecision = 4.5e18
)

var (
	ErrDomain     = errors.New("fractal: domain min must be less than max")
	ErrResolution = errors.New("fractal: resolution must be at least 2")
	ErrStep       = errors.New("fractal: step must be positive")
	ErrIterations = errors.New("fractal: max iterations must be positive")
	ErrPrecision  = errors.New("fractal: cycle precision must be positive")
	ErrSegments   = errors.New("fractal: segments must be positive")
)

// Params 描述一次渲染的全部数值参数。
// 实轴与虚轴共用同一个对称区间 [Min, Max]。
type Params struct {
	Min            float64
	Max            float64
	Resolution     int
	Step           float64
	MaxIterations  int
	CyclePrecision float64
	Segments       int
	// Adaptive 打开虚轴方向的自适应步长
	Adaptive bool
}

// DefaultParams 返回与原始渲染一致的默认参数
func DefaultParams() Params {
	return Params{
		Min:            -2,
		Max:            2,
		Resolution:     500,
		Step:           0.01,
		MaxIterations:  1000,
		CyclePrecision: DefaultCyclePrecision,
		Segments:       1,
	}
}

// Validate 检查参数，返回所有不合法项
func (p Params) Validate() error {
	var errs []error
	if !(p.Min < p.Max) {
		errs = append(errs, fmt.Errorf("%w: [%g, %g]", ErrDomain, p.Min, p.Max))
	}
	if p.Resolution < 2 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrResolution, p.Resolution))
	}
	if !(p.Step > 0) || math.IsInf(p.Step, 0) {
		errs = append(errs, fmt.Errorf("%w: %g", ErrStep, p.Step))
	}
	if p.MaxIterations < 1 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrIterations, p.MaxIterations))
	}
	if !(p.CyclePrecision > 0) {
		errs = append(errs, fmt.Errorf("%w: %g", ErrPrecision, p.CyclePrecision))
	}
	if p.Segments < 1 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrSegments, p.Segments))
	}
	return errors.Join(errs...)
}

// Mapper 返回该参数对应的坐标映射
func (p Params) Mapper() Mapper {
	return Mapper{Min: p.Min, Max: p.Max, Resolution: p.Resolution}
}

// grid 是单个轴上的采样网格，第 k 个采样点为 min + k*step。
// 用整数下标代替浮点累加，避免步长误差随扫描累积。
type grid struct {
	min  float64
	step float64
	n    int
}

func newGrid(p Params) grid {
	n := int(math.Floor((p.Max-p.Min)/p.Step+1e-9)) + 1
	return grid{min: p.Min, step: p.Step, n: n}
}

func (g grid) at(k int) float64 {
	return g.min + float64(k)*g.step
}
