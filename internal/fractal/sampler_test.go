package fractal

import (
	"slices"
	"testing"
)

// scan 按给定的逃逸模式模拟一次虚轴扫描，返回依次访问的下标
func scan(pattern []bool, adaptive bool) []int {
	var visited []int
	s := NewSampler(adaptive)
	for k := 0; k < len(pattern); {
		visited = append(visited, k)
		k += s.Observe(pattern[k])
	}
	return visited
}

func TestSamplerUniform(t *testing.T) {
	pattern := []bool{true, false, false, true, false}
	if got, want := scan(pattern, false), []int{0, 1, 2, 3, 4}; !slices.Equal(got, want) {
		t.Errorf("visited = %v, want %v", got, want)
	}
}

func TestSamplerTransitions(t *testing.T) {
	s := NewSampler(true)

	if d := s.Observe(true); d != 1 || s.InRun() {
		t.Fatalf("escape outside run: delta %d, inRun %v", d, s.InRun())
	}
	if d := s.Observe(false); d != 2 || !s.InRun() || s.Step() != 2 {
		t.Fatalf("first non-escape: delta %d, inRun %v, step %d", d, s.InRun(), s.Step())
	}
	if d := s.Observe(false); d != 2 || !s.InRun() {
		t.Fatalf("non-escape inside run: delta %d, inRun %v", d, s.InRun())
	}
	// 回退翻倍步长再前进一步
	if d := s.Observe(true); d != -1 || s.InRun() || s.Step() != 1 {
		t.Fatalf("escape ending run: delta %d, inRun %v, step %d", d, s.InRun(), s.Step())
	}
}

func TestSamplerNoRunBeforeFirstEscape(t *testing.T) {
	s := NewSampler(true)
	for range 3 {
		if d := s.Observe(false); d != 1 || s.InRun() {
			t.Fatalf("non-escape before any escape: delta %d, inRun %v", d, s.InRun())
		}
	}

	const (
		E = true
		N = false
	)
	pattern := []bool{N, N, N, E, N, N}
	want := []int{0, 1, 2, 3, 4}
	if got := scan(pattern, true); !slices.Equal(got, want) {
		t.Errorf("visited = %v, want %v", got, want)
	}
}

func TestSamplerAdaptiveScan(t *testing.T) {
	const (
		E = true
		N = false
	)
	pattern := []bool{E, E, N, N, N, N, E, E}
	want := []int{0, 1, 2, 4, 6, 5, 7, 6, 7}
	if got := scan(pattern, true); !slices.Equal(got, want) {
		t.Errorf("visited = %v, want %v", got, want)
	}
}

func TestSamplerRevisitsSkippedSample(t *testing.T) {
	patterns := [][]bool{
		{false, false, false, false, false, true, true, true, false, false, true},
		{false, true, false, true, false, true, false, true},
		{true, false, false, false, false, false, false, false, false, true},
		{false, false, false, false},
		{false, false, true},
	}

	for _, pattern := range patterns {
		visited := scan(pattern, true)
		if len(visited) > 3*len(pattern) {
			t.Fatalf("pattern %v: %d samples, scan does not advance", pattern, len(visited))
		}
		// 翻倍步长落在逃逸采样上时，被跨过的下标必须紧接着补采
		for i := 1; i < len(visited); i++ {
			k := visited[i]
			if k-visited[i-1] != 2 || !pattern[k] {
				continue
			}
			if i+1 >= len(visited) || visited[i+1] != k-1 {
				t.Errorf("pattern %v: skipped index %d not revisited (visited %v)", pattern, k-1, visited)
			}
		}
	}
}
