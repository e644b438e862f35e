package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int     `json:"max_tokens"`
	Stream      bool    `json:"stream"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newEchoServer(t *testing.T, got *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  got.Model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": got.Messages[len(got.Messages)-1].Content},
			}},
			"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 7, "total_tokens": 19},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIClientGenerate(t *testing.T) {
	var got capturedRequest
	srv := newEchoServer(t, &got)

	client, err := NewOpenAIClient("test-key", srv.URL, "gemini-2.5-flash")
	require.NoError(t, err)

	gen, err := client.Generate(context.Background(), GenerationRequest{
		SystemInstruction: "be kind",
		Prompt:            "학습자 글: 안녕하세요",
		Temperature:       0.4,
		TopP:              0.95,
		MaxTokens:         256,
	})
	require.NoError(t, err)

	require.Equal(t, "gemini-2.5-flash", got.Model)
	require.False(t, got.Stream)
	require.InDelta(t, 0.4, got.Temperature, 1e-6)
	require.InDelta(t, 0.95, got.TopP, 1e-6)
	require.Equal(t, 256, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	require.Equal(t, "system", got.Messages[0].Role)
	require.Equal(t, "be kind", got.Messages[0].Content)
	require.Equal(t, "user", got.Messages[1].Role)

	require.Equal(t, "학습자 글: 안녕하세요", gen.Text)
	require.Equal(t, "stop", gen.FinishReason)
	require.Equal(t, &Usage{PromptTokens: 12, OutputTokens: 7, TotalTokens: 19}, gen.Usage)
}

func TestOpenAIClientGenerateSendsZeroSampling(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"chat.completion","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient("test-key", srv.URL, "m")
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerationRequest{Prompt: "x", Temperature: 0, TopP: 0, MaxTokens: 10})
	require.NoError(t, err)

	require.Contains(t, body, "temperature")
	require.Contains(t, body, "top_p")
	require.InDelta(t, 0, body["temperature"], 1e-9)
	require.InDelta(t, 0, body["top_p"], 1e-9)
	require.EqualValues(t, 10, body["max_tokens"])
}

func TestOpenAIClientGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","type":"rate_limit_error"}}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient("test-key", srv.URL, "gemini-2.5-flash")
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerationRequest{Prompt: "x", MaxTokens: 1})
	require.Error(t, err)

	var apiErr *openai.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusTooManyRequests, apiErr.HTTPStatusCode)
	require.Contains(t, err.Error(), "quota exceeded")
}

func TestOpenAIClientGenerateNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient("test-key", srv.URL, "gemini-2.5-flash")
	require.NoError(t, err)

	gen, err := client.Generate(context.Background(), GenerationRequest{Prompt: "x", MaxTokens: 1})
	require.Nil(t, gen)
	require.ErrorIs(t, err, ErrNoCandidates)
}

func TestNewOpenAIClientRequiresKeyAndModel(t *testing.T) {
	_, err := NewOpenAIClient("", "http://localhost", "m")
	require.Error(t, err)
	_, err = NewOpenAIClient("k", "http://localhost", "")
	require.Error(t, err)
}
