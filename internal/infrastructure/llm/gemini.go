package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "google.golang.org/genai"

	"place-lens/internal/domain/entity"
	"place-lens/internal/domain/port"
)

const DefaultGeminiModel = "gemini-2.5-flash-lite"

// contentGenerator та часть genai.Models, которая нам нужна.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiModel обёртка над официальным клиентом genai (Gemini API).
// Один вызов GenerateContent на запрос, без повторов.
type GeminiModel struct {
	models      contentGenerator
	model       string
	temperature float32
}

// NewGeminiModel создаёт клиента Gemini API.
func NewGeminiModel(ctx context.Context, apiKey, model string, temperature float32) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiModel{models: cli.Models, model: model, temperature: temperature}, nil
}

func (g *GeminiModel) Name() string { return "gemini:" + g.model }

// Describe отправляет промпт и картинку одним user-сообщением.
func (g *GeminiModel) Describe(ctx context.Context, prompt string, img *entity.PreparedImage) (string, error) {
	temperature := g.temperature
	resp, err := g.models.GenerateContent(ctx, g.model,
		geminiContents(prompt, img),
		&genai.GenerateContentConfig{Temperature: &temperature},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := geminiText(resp)
	if text == "" {
		return "", entity.ErrEmptyResponse
	}
	return text, nil
}

func geminiContents(prompt string, img *entity.PreparedImage) []*genai.Content {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(img.Data, img.MIMEType),
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

// geminiText склеивает текстовые части первого кандидата.
func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

var _ port.VisionModel = (*GeminiModel)(nil)
