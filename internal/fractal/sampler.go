package fractal

// Sampler 决定分区内虚轴扫描的下一步步长，单位是网格步数。
//
// 自适应模式下：
//   - 逃逸之后第一次遇到不逃逸的采样，进入低活跃区，步长翻倍；
//   - 低活跃区内继续不逃逸，保持翻倍步长；
//   - 低活跃区内遇到逃逸，先回退刚才跨过的翻倍步长，再以名义步长前进，
//     确保跳过的区域按细粒度重新扫描；
//   - 其余情况以名义步长前进，包括扫描开头尚未出现逃逸时的不逃逸采样。
//
// 均匀模式始终前进一个网格步。Sampler 只属于一个分区，不做同步。
type Sampler struct {
	adaptive bool
	escaped  bool // 已出现过逃逸采样
	inRun    bool
	step     int
}

// NewSampler 创建分区的采样器，初始为名义步长
func NewSampler(adaptive bool) *Sampler {
	return &Sampler{adaptive: adaptive, step: 1}
}

// Observe 接收上一个采样是否逃逸，返回虚轴下标的增量（可能为负）
func (s *Sampler) Observe(escaped bool) int {
	if !s.adaptive {
		return 1
	}
	switch {
	case !escaped && !s.inRun && !s.escaped:
		return s.step
	case !escaped && !s.inRun:
		s.inRun = true
		s.step = 2
		return s.step
	case !escaped:
		return s.step
	case s.inRun:
		back := s.step
		s.inRun = false
		s.step = 1
		return s.step - back
	default:
		s.escaped = true
		return s.step
	}
}

// InRun 报告是否处于低活跃区
func (s *Sampler) InRun() bool {
	return s.inRun
}

// Step 返回当前步长
func (s *Sampler) Step() int {
	return s.step
}
