package output

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"

	"buddhabrot/internal/fractal"
)

func sampleRaster(bitDepth int) *fractal.Raster {
	r := fractal.NewRaster(4, bitDepth)
	r.Set(1, 2, 100)
	r.Set(3, 0, r.MaxValue())
	return r
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name, path string
		want       Format
		wantErr    bool
	}{
		{name: "", path: "output.png", want: PNG},
		{name: "", path: "out.TIF", want: TIFF},
		{name: "tiff", path: "out.png", want: TIFF},
		{name: "", path: "noext", want: PNG},
		{name: "jpeg", path: "x.jpg", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.name, tt.path)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ParseFormat(%q, %q) err = %v, want ErrUnknownFormat", tt.name, tt.path, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q, %q) = %q, %v, want %q", tt.name, tt.path, got, err, tt.want)
		}
	}
}

func TestImageDepth(t *testing.T) {
	if _, ok := Image(sampleRaster(8)).(*image.Gray); !ok {
		t.Error("8-bit raster should become *image.Gray")
	}
	img16, ok := Image(sampleRaster(16)).(*image.Gray16)
	if !ok {
		t.Fatal("16-bit raster should become *image.Gray16")
	}
	if got := img16.Gray16At(3, 0).Y; got != 65535 {
		t.Errorf("Gray16At(3,0) = %d, want 65535", got)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	tests := []struct {
		format Format
		decode func(*bytes.Buffer) (image.Image, error)
	}{
		{format: PNG, decode: func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) }},
		{format: TIFF, decode: func(b *bytes.Buffer) (image.Image, error) { return tiff.Decode(b) }},
	}

	for _, tt := range tests {
		for _, depth := range []int{8, 16} {
			r := sampleRaster(depth)
			var buf bytes.Buffer
			if err := Encode(&buf, r, tt.format); err != nil {
				t.Fatalf("%s/%d: encode: %v", tt.format, depth, err)
			}
			img, err := tt.decode(&buf)
			if err != nil {
				t.Fatalf("%s/%d: decode: %v", tt.format, depth, err)
			}
			if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
				t.Fatalf("%s/%d: bounds %v", tt.format, depth, img.Bounds())
			}
			// RGBA 返回 16 位通道，白色恒为 0xffff
			if c, _, _, _ := img.At(3, 0).RGBA(); c != 0xffff {
				t.Errorf("%s/%d: (3,0) = %#x, want white", tt.format, depth, c)
			}
			if c, _, _, _ := img.At(0, 0).RGBA(); c != 0 {
				t.Errorf("%s/%d: (0,0) = %#x, want black", tt.format, depth, c)
			}
		}
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, sampleRaster(8), "bmp"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.png")
	if err := WriteFile(path, sampleRaster(8), PNG); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != 4 || cfg.Height != 4 {
		t.Errorf("size %dx%d, want 4x4", cfg.Width, cfg.Height)
	}

	if err := WriteFile(filepath.Join(t.TempDir(), "missing", "x.png"), sampleRaster(8), PNG); err == nil {
		t.Error("expected error for missing directory")
	}
}
