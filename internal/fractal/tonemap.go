package fractal

import (
	"errors"
	"fmt"
	"math"
)

var ErrBitDepth = errors.New("fractal: bit depth must be 8 or 16")

const (
	// DefaultClipRank 默认以第三大的不同计数作为裁剪值
	DefaultClipRank = 3
	// DefaultGamma 即两次开方
	DefaultGamma = 0.25
)

// Raster 是 resolution × resolution 的单通道栅格，按行存储。
// Pix[y*Resolution+x] 对应像素 (x, y)，取值在 [0, 2^BitDepth-1]。
type Raster struct {
	Resolution int
	BitDepth   int
	Pix        []uint16
}

// NewRaster 创建全零栅格
func NewRaster(resolution, bitDepth int) *Raster {
	return &Raster{
		Resolution: resolution,
		BitDepth:   bitDepth,
		Pix:        make([]uint16, resolution*resolution),
	}
}

func (r *Raster) At(x, y int) uint16 {
	return r.Pix[y*r.Resolution+x]
}

func (r *Raster) Set(x, y int, v uint16) {
	r.Pix[y*r.Resolution+x] = v
}

// MaxValue 返回位深允许的最大值
func (r *Raster) MaxValue() uint16 {
	return maxLevel(r.BitDepth)
}

func maxLevel(bitDepth int) uint16 {
	return math.MaxUint16 >> (16 - bitDepth)
}

// NonZero 返回非零像素数
func (r *Raster) NonZero() int {
	n := 0
	for _, v := range r.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// ToneMapper 把全局直方图映射为可显示的栅格
type ToneMapper struct {
	bitDepth int
	clipRank int
	gamma    float64
}

// ToneOption 是 ToneMapper 的函数选项
type ToneOption func(*ToneMapper)

// WithClipRank 以第 rank 大的不同计数作为裁剪值，1 表示直接用最大值
func WithClipRank(rank int) ToneOption {
	return func(t *ToneMapper) {
		if rank > 0 {
			t.clipRank = rank
		}
	}
}

// WithGamma 设置响应曲线的指数
func WithGamma(gamma float64) ToneOption {
	return func(t *ToneMapper) {
		if gamma > 0 {
			t.gamma = gamma
		}
	}
}

// NewToneMapper 创建 8 位或 16 位输出的映射器
func NewToneMapper(bitDepth int, opts ...ToneOption) (*ToneMapper, error) {
	if bitDepth != 8 && bitDepth != 16 {
		return nil, fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
	}
	t := &ToneMapper{
		bitDepth: bitDepth,
		clipRank: DefaultClipRank,
		gamma:    DefaultGamma,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *ToneMapper) BitDepth() int {
	return t.bitDepth
}

// ClipValue 选择裁剪值：不同计数升序排列后取倒数第 clipRank 个；
// 不同计数不足时取其中最小的，空直方图返回 1，保证除数不为 0。
// 边界附近少数像素的计数会异常高，不裁剪会压暗整幅图。
func (t *ToneMapper) ClipValue(h *Histogram) uint64 {
	distinct := h.Distinct()
	if len(distinct) == 0 {
		return 1
	}
	clip := distinct[max(len(distinct)-t.clipRank, 0)]
	if clip == 0 {
		return 1
	}
	return clip
}

// Level 把计数映射为像素值：round((min(v, clip)/clip)^gamma * maxValue)
func (t *ToneMapper) Level(v, clip uint64) uint16 {
	if clip == 0 {
		clip = 1
	}
	v = min(v, clip)
	maxValue := float64(maxLevel(t.bitDepth))
	level := math.Pow(float64(v)/float64(clip), t.gamma) * maxValue
	return uint16(math.Round(level))
}

// Render 生成栅格，越界像素跳过，未访问的像素保持 0
func (t *ToneMapper) Render(h *Histogram) *Raster {
	res := h.Resolution()
	raster := NewRaster(res, t.bitDepth)
	clip := t.ClipValue(h)
	for p, v := range h.All() {
		if !p.In(res) {
			continue
		}
		raster.Set(p.X, p.Y, t.Level(v, clip))
	}
	return raster
}
