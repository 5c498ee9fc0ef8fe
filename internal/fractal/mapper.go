package fractal

import "math"

// Pixel 是直方图的键：X 对应实部，Y 对应虚部
type Pixel struct {
	X int
	Y int
}

// In 判断像素是否落在 [0, resolution)² 内
func (p Pixel) In(resolution int) bool {
	return p.X >= 0 && p.X < resolution && p.Y >= 0 && p.Y < resolution
}

// Mapper 把采样域中的实数坐标仿射映射为像素下标
type Mapper struct {
	Min        float64
	Max        float64
	Resolution int
}

// Index 返回 round(1 + (x-Min)*(Resolution-1)/(Max-Min))。
// Min 映射到 1，Max 映射到 Resolution；越界结果原样返回，由调用方丢弃，不做截断。
func (m Mapper) Index(x float64) int {
	v := 1 + (x-m.Min)*float64(m.Resolution-1)/(m.Max-m.Min)
	// 远离采样域的值（包括 NaN）直接给出越界下标
	if math.IsNaN(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return -1
	}
	return int(math.Round(v))
}

// Pixel 映射一个复数的实部与虚部
func (m Mapper) Pixel(z complex128) Pixel {
	return Pixel{X: m.Index(real(z)), Y: m.Index(imag(z))}
}
