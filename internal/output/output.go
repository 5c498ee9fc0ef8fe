// Package output 把灰度栅格编码为图片文件。
package output

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"buddhabrot/internal/fractal"
)

// Format 是输出图片格式
type Format string

const (
	PNG  Format = "png"
	TIFF Format = "tiff"
)

var ErrUnknownFormat = errors.New("output: unknown image format")

// ParseFormat 解析格式名，空字符串按 path 的扩展名推断
func ParseFormat(name, path string) (Format, error) {
	if name == "" {
		name = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	switch strings.ToLower(name) {
	case "png", "":
		return PNG, nil
	case "tif", "tiff":
		return TIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Image 把栅格转成标准库图像：8 位用 Gray，16 位用 Gray16。
// 像素 (x, y) 的 x 对应实部，y 对应虚部。
func Image(r *fractal.Raster) image.Image {
	rect := image.Rect(0, 0, r.Resolution, r.Resolution)
	if r.BitDepth == 8 {
		img := image.NewGray(rect)
		for y := range r.Resolution {
			for x := range r.Resolution {
				img.SetGray(x, y, color.Gray{Y: uint8(r.At(x, y))})
			}
		}
		return img
	}

	img := image.NewGray16(rect)
	for y := range r.Resolution {
		for x := range r.Resolution {
			img.SetGray16(x, y, color.Gray16{Y: r.At(x, y)})
		}
	}
	return img
}

// Encode 按格式编码栅格
func Encode(w io.Writer, r *fractal.Raster, f Format) error {
	img := Image(r)
	switch f {
	case PNG:
		return png.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// WriteFile 把栅格写入 path
func WriteFile(path string, r *fractal.Raster, f Format) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close image: %w", cerr)
		}
	}()

	bw := bufio.NewWriter(file)
	if err := Encode(bw, r, f); err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return bw.Flush()
}
