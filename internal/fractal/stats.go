package fractal

// Stats 统计采样结果
type Stats struct {
	Samples    uint64 `json:"samples"`
	Escaped    uint64 `json:"escaped"`
	Cycles     uint64 `json:"cycles"`
	Exhausted  uint64 `json:"exhausted"`
	Partitions int    `json:"partitions"`
	Segments   int    `json:"segments"`
}

func (s *Stats) record(o Outcome) {
	s.Samples++
	switch o {
	case Escaped:
		s.Escaped++
	case CycleDetected:
		s.Cycles++
	case BudgetExhausted:
		s.Exhausted++
	}
}

// Add 累加另一份统计
func (s *Stats) Add(o Stats) {
	s.Samples += o.Samples
	s.Escaped += o.Escaped
	s.Cycles += o.Cycles
	s.Exhausted += o.Exhausted
	s.Partitions += o.Partitions
	s.Segments += o.Segments
}
