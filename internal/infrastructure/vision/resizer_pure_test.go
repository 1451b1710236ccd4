//go:build !gocv
// +build !gocv

package vision

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func writePNG(t *testing.T, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestResizer_PrepareDownscales(t *testing.T) {
	path := writePNG(t, 400, 200, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	r := NewResizer(100, 90)

	img, err := r.Prepare(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", img.MIMEType)
	require.Equal(t, 100, img.Width)
	require.Equal(t, 50, img.Height)

	decoded, err := jpeg.Decode(bytes.NewReader(img.Data))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 100, 50), decoded.Bounds())
}

func TestResizer_PrepareKeepsSmallImage(t *testing.T) {
	path := writePNG(t, 30, 20, color.NRGBA{G: 255, A: 255})
	r := NewResizer(100, 90)

	img, err := r.Prepare(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 30, img.Width)
	require.Equal(t, 20, img.Height)
}

func TestResizer_PrepareFlattensTransparency(t *testing.T) {
	path := writePNG(t, 16, 16, color.NRGBA{})
	r := NewResizer(0, 0)

	img, err := r.Prepare(context.Background(), path)
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(img.Data))
	require.NoError(t, err)
	cr, cg, cb, _ := decoded.At(8, 8).RGBA()
	// Прозрачный пиксель должен стать белым, а не чёрным.
	require.Greater(t, cr>>8, uint32(240))
	require.Greater(t, cg>>8, uint32(240))
	require.Greater(t, cb>>8, uint32(240))
}

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 8), G: uint8(y * 8), B: 128, A: 255})
		}
	}
	return img
}

func TestResizer_PrepareBytesFormats(t *testing.T) {
	src := testImage(24, 12)
	encoders := map[string]func(*bytes.Buffer) error{
		"jpeg": func(b *bytes.Buffer) error { return jpeg.Encode(b, src, nil) },
		"png":  func(b *bytes.Buffer) error { return png.Encode(b, src) },
		"gif":  func(b *bytes.Buffer) error { return gif.Encode(b, src, nil) },
		"bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
		"tiff": func(b *bytes.Buffer) error { return tiff.Encode(b, src, nil) },
	}

	r := NewResizer(12, 90)
	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encode(&buf))

			img, err := r.PrepareBytes(context.Background(), buf.Bytes())
			require.NoError(t, err)
			require.Equal(t, "image/jpeg", img.MIMEType)
			require.Equal(t, 12, img.Width)
			require.Equal(t, 6, img.Height)

			_, err = jpeg.Decode(bytes.NewReader(img.Data))
			require.NoError(t, err)
		})
	}
}

func TestResizer_PrepareWebP(t *testing.T) {
	r := NewResizer(8, 90)

	img, err := r.Prepare(context.Background(), filepath.Join("testdata", "tiny.webp"))
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", img.MIMEType)
	require.Equal(t, 8, img.Width)
	require.Equal(t, 8, img.Height)
}
