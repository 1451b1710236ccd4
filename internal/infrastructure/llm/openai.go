package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"place-lens/internal/domain/entity"
	"place-lens/internal/domain/port"
)

const DefaultOpenAIModel = "gpt-4o-mini"

type chatGenerator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// OpenAIModel любой OpenAI-совместимый chat completions endpoint.
// Картинка уходит как image_url с base64 data URL, хостить её не нужно.
type OpenAIModel struct {
	chat  chatGenerator
	model string
}

// NewOpenAIModel создаёт chat-модель eino. baseURL пустой = api.openai.com.
func NewOpenAIModel(ctx context.Context, apiKey, baseURL, modelName string, temperature float32) (*OpenAIModel, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if modelName == "" {
		modelName = DefaultOpenAIModel
	}

	chat, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      apiKey,
		BaseURL:     baseURL,
		Model:       modelName,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("create openai chat model: %w", err)
	}

	return &OpenAIModel{chat: chat, model: modelName}, nil
}

func (m *OpenAIModel) Name() string { return "openai:" + m.model }

// Describe один вызов Generate без повторов.
func (m *OpenAIModel) Describe(ctx context.Context, prompt string, img *entity.PreparedImage) (string, error) {
	out, err := m.chat.Generate(ctx, []*schema.Message{visionMessage(prompt, img)})
	if err != nil {
		return "", fmt.Errorf("openai generate: %w", err)
	}
	if out == nil || out.Content == "" {
		return "", entity.ErrEmptyResponse
	}
	return out.Content, nil
}

func visionMessage(prompt string, img *entity.PreparedImage) *schema.Message {
	return &schema.Message{
		Role: schema.User,
		MultiContent: []schema.ChatMessagePart{
			{Type: schema.ChatMessagePartTypeText, Text: prompt},
			{
				Type: schema.ChatMessagePartTypeImageURL,
				ImageURL: &schema.ChatMessageImageURL{
					URL:    img.DataURL(),
					Detail: schema.ImageURLDetailAuto,
				},
			},
		},
	}
}

var _ port.VisionModel = (*OpenAIModel)(nil)
