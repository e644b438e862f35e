package config

import (
	"os"
	"strings"
)

const (
	DefaultLLMBaseURL  = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultLLMModel    = "gemini-2.5-flash"
	DefaultPromptPath  = "config/prompt.json"
	DefaultStaticDir   = "static"
	DefaultListenAddr  = ":8080"
	DefaultLogMode     = "development"
	DefaultCORSOrigins = "http://localhost:3000,http://localhost:5173"

	// APIKeyEnv names the variable holding the generation API credential.
	APIKeyEnv = "GEMINI_API_KEY"
)

// AppConfig is the process configuration, read once at startup from the environment.
type AppConfig struct {
	APIKey      string
	LLMBaseURL  string
	LLMModel    string
	PromptPath  string
	StaticDir   string
	ListenAddr  string
	LogMode     string
	CORSOrigins []string
}

// Load reads AppConfig from the environment, applying defaults for unset values.
// A missing API key is not an error: the server still starts and chat calls fail.
func Load() *AppConfig {
	return &AppConfig{
		APIKey:      strings.TrimSpace(os.Getenv(APIKeyEnv)),
		LLMBaseURL:  strings.TrimRight(envOr("LLM_BASE_URL", DefaultLLMBaseURL), "/"),
		LLMModel:    envOr("LLM_MODEL", DefaultLLMModel),
		PromptPath:  envOr("PROMPT_PATH", DefaultPromptPath),
		StaticDir:   envOr("STATIC_DIR", DefaultStaticDir),
		ListenAddr:  envOr("LISTEN_ADDR", DefaultListenAddr),
		LogMode:     envOr("LOG_MODE", DefaultLogMode),
		CORSOrigins: splitList(envOr("CORS_ALLOW_ORIGINS", DefaultCORSOrigins)),
	}
}

// HasCredential reports whether an API key is configured.
func (c *AppConfig) HasCredential() bool {
	return c.APIKey != ""
}

func envOr(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
