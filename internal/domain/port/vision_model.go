package port

import (
	"context"

	"place-lens/internal/domain/entity"
)

// VisionModel мультимодальная модель: текст + картинка на входе, текст на выходе
type VisionModel interface {
	// Name возвращает провайдера и модель, например "gemini:gemini-2.5-flash-lite"
	Name() string

	// Describe делает один запрос к модели и возвращает её текст как есть
	Describe(ctx context.Context, prompt string, img *entity.PreparedImage) (string, error)
}
