package port

import (
	"context"

	"place-lens/internal/domain/entity"
)

// ImagePreprocessor готовит изображение к отправке в модель
type ImagePreprocessor interface {
	// Prepare читает файл, уменьшает и перекодирует в JPEG
	Prepare(ctx context.Context, path string) (*entity.PreparedImage, error)

	// PrepareBytes то же самое для уже загруженных байтов
	PrepareBytes(ctx context.Context, data []byte) (*entity.PreparedImage, error)
}
