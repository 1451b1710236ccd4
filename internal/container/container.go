package container

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"place-lens/config"
	app "place-lens/internal/application"
	"place-lens/internal/domain/port"
	"place-lens/internal/infrastructure/llm"
	"place-lens/internal/infrastructure/storage"
	"place-lens/internal/infrastructure/vision"
)

type Container struct {
	UserService     *app.UserService
	AnalysisService *app.AnalysisService
	Model           port.VisionModel
}

// New собирает зависимости по конфигу.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Container, error) {
	model, err := NewModel(ctx, cfg)
	if err != nil {
		return nil, err
	}

	resizer := vision.NewResizer(cfg.MaxSide, cfg.JPEGQuality)
	return Assemble(resizer, model, storage.NewMemoryUserRepository(), log), nil
}

// Assemble связывает уже готовые адаптеры.
func Assemble(images port.ImagePreprocessor, model port.VisionModel, userRepo port.UserRepository, log *zap.Logger) *Container {
	return &Container{
		UserService:     app.NewUserService(userRepo),
		AnalysisService: app.NewAnalysisService(images, model, log),
		Model:           model,
	}
}

// NewModel выбирает адаптер модели по cfg.Provider.
func NewModel(ctx context.Context, cfg *config.Config) (port.VisionModel, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		m, err := llm.NewGeminiModel(ctx, cfg.GeminiAPIKey, cfg.Model, cfg.Temperature)
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.ProviderOpenAI:
		m, err := llm.NewOpenAIModel(ctx, cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model, cfg.Temperature)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
