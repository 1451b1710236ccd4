package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LLM_PROVIDER", "LLM_MODEL", "LLM_TEMPERATURE", "GEMINI_API_KEY", "GOOGLE_API_KEY",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "IMAGE_MAX_SIDE", "JPEG_QUALITY",
		"REQUEST_TIMEOUT", "TELEGRAM_TOKEN",
	} {
		t.Setenv(k, "")
	}
	// Тесты не должны подхватывать .env разработчика.
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "g-key")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ProviderGemini, cfg.Provider)
	require.Equal(t, "g-key", cfg.GeminiAPIKey)
	require.InDelta(t, 0.2, cfg.Temperature, 1e-6)
	require.Equal(t, 1600, cfg.MaxSide)
	require.Equal(t, 90, cfg.JPEGQuality)
	require.Equal(t, 60*time.Second, cfg.RequestTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoad_GeminiKeyPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "gemini-key", cfg.GeminiAPIKey)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "o-key")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("IMAGE_MAX_SIDE", "800")
	t.Setenv("REQUEST_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ProviderOpenAI, cfg.Provider)
	require.InDelta(t, 0.7, cfg.Temperature, 1e-6)
	require.Equal(t, 800, cfg.MaxSide)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoad_BadNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("JPEG_QUALITY", "high")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	_, err := Load()
	require.ErrorContains(t, err, "JPEG_QUALITY")
	require.ErrorContains(t, err, "REQUEST_TIMEOUT")
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	require.ErrorContains(t, cfg.Validate(), "GEMINI_API_KEY")

	cfg.Provider = "anthropic"
	require.ErrorContains(t, cfg.Validate(), "unknown LLM_PROVIDER")

	cfg.Provider = ProviderOpenAI
	cfg.OpenAIAPIKey = "k"
	cfg.JPEGQuality = 0
	require.ErrorContains(t, cfg.Validate(), "JPEG_QUALITY")
}
