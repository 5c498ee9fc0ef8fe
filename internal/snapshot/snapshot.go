// Package snapshot 把算完的全局直方图存成 JSON，便于换一组色调参数重新出图而不必重算。
package snapshot

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/bytedance/sonic"

	"buddhabrot/internal/fractal"
)

// Version 是当前快照格式版本
const Version = 1

var (
	ErrVersion    = errors.New("snapshot: unsupported version")
	ErrResolution = errors.New("snapshot: invalid resolution")
)

// Entry 是一个被访问过的像素
type Entry struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Count uint64 `json:"count"`
}

// Document 是快照文件的内容
type Document struct {
	Version    int           `json:"version"`
	Resolution int           `json:"resolution"`
	Min        float64       `json:"min"`
	Max        float64       `json:"max"`
	Stats      fractal.Stats `json:"stats"`
	Entries    []Entry       `json:"entries"`
}

// NewDocument 从运行结果构建快照，条目按 (y, x) 排序以保证输出稳定
func NewDocument(p fractal.Params, res *fractal.Result) Document {
	h := res.Histogram
	entries := make([]Entry, 0, h.Len())
	for px, v := range h.All() {
		entries = append(entries, Entry{X: px.X, Y: px.Y, Count: v})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Or(cmp.Compare(a.Y, b.Y), cmp.Compare(a.X, b.X))
	})

	return Document{
		Version:    Version,
		Resolution: h.Resolution(),
		Min:        p.Min,
		Max:        p.Max,
		Stats:      res.Stats,
		Entries:    entries,
	}
}

// Histogram 还原直方图，越界条目被丢弃
func (d Document) Histogram() (*fractal.Histogram, error) {
	if d.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, d.Version)
	}
	if d.Resolution < 2 {
		return nil, fmt.Errorf("%w: %d", ErrResolution, d.Resolution)
	}
	h := fractal.NewHistogram(d.Resolution)
	for _, e := range d.Entries {
		h.Add(fractal.Pixel{X: e.X, Y: e.Y}, e.Count)
	}
	return h, nil
}

// Write 编码快照
func Write(w io.Writer, d Document) error {
	return sonic.ConfigDefault.NewEncoder(w).Encode(d)
}

// Read 解码快照
func Read(r io.Reader) (Document, error) {
	var d Document
	if err := sonic.ConfigDefault.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return d, nil
}

// WriteFile 把快照写入文件
func WriteFile(path string, d Document) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close snapshot: %w", cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := Write(bw, d); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return bw.Flush()
}

// ReadFile 从文件读取快照
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	return Read(bufio.NewReader(f))
}
