package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"place-lens/internal/domain/entity"
	"place-lens/internal/domain/port"
)

// AnalysisOutput сырой ответ модели и, если получилось, разобранный.
type AnalysisOutput struct {
	Raw      string
	Parsed   *entity.PlaceAnalysis
	ParseErr error
}

// AnalysisService готовит фото, задаёт модели фиксированный вопрос
// и возвращает ответ. Ровно один запрос к модели на вызов.
type AnalysisService struct {
	images port.ImagePreprocessor
	model  port.VisionModel
	log    *zap.Logger
}

// NewAnalysisService собирает сервис. log может быть nil.
func NewAnalysisService(images port.ImagePreprocessor, model port.VisionModel, log *zap.Logger) *AnalysisService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AnalysisService{images: images, model: model, log: log}
}

// AnalyzeFile разбирает фото с диска.
func (s *AnalysisService) AnalyzeFile(ctx context.Context, path string) (*AnalysisOutput, error) {
	if s.images == nil {
		return nil, errors.New("image preprocessor is not configured")
	}

	img, err := s.images.Prepare(ctx, path)
	if err != nil {
		return nil, err
	}
	s.log.Debug("image prepared",
		zap.String("path", path),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Int("bytes", len(img.Data)))

	return s.describe(ctx, img)
}

// AnalyzeBytes разбирает уже загруженное фото (например, из Telegram).
func (s *AnalysisService) AnalyzeBytes(ctx context.Context, data []byte) (*AnalysisOutput, error) {
	if s.images == nil {
		return nil, errors.New("image preprocessor is not configured")
	}

	img, err := s.images.PrepareBytes(ctx, data)
	if err != nil {
		return nil, err
	}

	return s.describe(ctx, img)
}

func (s *AnalysisService) describe(ctx context.Context, img *entity.PreparedImage) (*AnalysisOutput, error) {
	if s.model == nil {
		return nil, errors.New("vision model is not configured")
	}

	started := time.Now()
	raw, err := s.model.Describe(ctx, BuildPrompt(), img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.model.Name(), err)
	}
	s.log.Info("model responded",
		zap.String("model", s.model.Name()),
		zap.Duration("took", time.Since(started)),
		zap.Int("chars", len(raw)))

	out := &AnalysisOutput{Raw: raw}
	out.Parsed, out.ParseErr = ParseAnalysis(raw)
	if out.ParseErr != nil {
		s.log.Debug("response is not a valid analysis", zap.Error(out.ParseErr))
	}

	return out, nil
}
