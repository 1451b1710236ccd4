package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Provider       string
	Model          string
	Temperature    float32
	GeminiAPIKey   string
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	MaxSide        int
	JPEGQuality    int
	RequestTimeout time.Duration
	TelegramToken  string
}

func Load() (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := &Config{
		Provider:       strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		Model:          os.Getenv("LLM_MODEL"),
		GeminiAPIKey:   firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  os.Getenv("OPENAI_BASE_URL"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		Temperature:    0.2,
		MaxSide:        1600,
		JPEGQuality:    90,
		RequestTimeout: 60 * time.Second,
	}

	var errs []error
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			errs = append(errs, fmt.Errorf("LLM_TEMPERATURE: %w", err))
		}
		cfg.Temperature = float32(f)
	}
	if v := os.Getenv("IMAGE_MAX_SIDE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("IMAGE_MAX_SIDE: %w", err))
		}
		cfg.MaxSide = n
	}
	if v := os.Getenv("JPEG_QUALITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("JPEG_QUALITY: %w", err))
		}
		cfg.JPEGQuality = n
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT: %w", err))
		}
		cfg.RequestTimeout = d
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет, что для выбранного провайдера есть ключ.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY (or GOOGLE_API_KEY) is required")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q (want %s or %s)", c.Provider, ProviderGemini, ProviderOpenAI)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature %v out of range [0,2]", c.Temperature)
	}
	if c.MaxSide <= 0 {
		return fmt.Errorf("IMAGE_MAX_SIDE must be positive, got %d", c.MaxSide)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("JPEG_QUALITY must be in [1,100], got %d", c.JPEGQuality)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
