package vision

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"place-lens/internal/domain/entity"
	"place-lens/internal/domain/port"
)

const (
	DefaultMaxSide     = 1600
	DefaultJPEGQuality = 90

	mimeJPEG = "image/jpeg"
)

// Resizer приводит фото к JPEG не больше MaxSide по каждой стороне.
// Реализация PrepareBytes зависит от тега сборки gocv.
type Resizer struct {
	MaxSide int
	Quality int
}

// NewResizer создаёт ресайзер, нулевые значения заменяются дефолтами.
func NewResizer(maxSide, quality int) *Resizer {
	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &Resizer{MaxSide: maxSide, Quality: quality}
}

// Prepare читает файл с диска и передаёт байты в PrepareBytes.
func (r *Resizer) Prepare(ctx context.Context, path string) (*entity.PreparedImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", entity.ErrImageNotFound, path)
		}
		return nil, fmt.Errorf("read image: %w", err)
	}

	return r.PrepareBytes(ctx, data)
}

// thumbnailSize вписывает w×h в квадрат maxSide с сохранением пропорций.
// Маленькие изображения не увеличиваются.
func thumbnailSize(w, h, maxSide int) (int, int) {
	if w <= maxSide && h <= maxSide {
		return w, h
	}

	scale := math.Min(float64(maxSide)/float64(w), float64(maxSide)/float64(h))
	newW := int(math.Round(float64(w) * scale))
	newH := int(math.Round(float64(h) * scale))

	return max(1, min(newW, maxSide)), max(1, min(newH, maxSide))
}

var _ port.ImagePreprocessor = (*Resizer)(nil)
