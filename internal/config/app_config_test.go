package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, name := range []string{APIKeyEnv, "LLM_BASE_URL", "LLM_MODEL", "PROMPT_PATH", "STATIC_DIR", "LISTEN_ADDR", "LOG_MODE", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(name, "")
	}

	cfg := Load()
	require.False(t, cfg.HasCredential())
	require.Equal(t, DefaultLLMBaseURL, cfg.LLMBaseURL)
	require.Equal(t, DefaultLLMModel, cfg.LLMModel)
	require.Equal(t, DefaultPromptPath, cfg.PromptPath)
	require.Equal(t, DefaultStaticDir, cfg.StaticDir)
	require.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	require.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(APIKeyEnv, "  secret  ")
	t.Setenv("LLM_BASE_URL", "http://127.0.0.1:9999/v1/")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()
	require.True(t, cfg.HasCredential())
	require.Equal(t, "secret", cfg.APIKey)
	require.Equal(t, "http://127.0.0.1:9999/v1", cfg.LLMBaseURL)
	require.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}
