package application

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"feedback-chat/backend/internal/features/prompt/domain"
)

// LoadPromptConfig reads and validates the prompt file at configPath.
// All failures are returned as *domain.ConfigError.
func LoadPromptConfig(configPath string) (*domain.PromptConfig, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, &domain.ConfigError{Path: configPath, Reason: "failed to get absolute path", Err: err}
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, &domain.ConfigError{Path: absPath, Reason: "failed to read prompt file", Err: err}
	}

	var file domain.PromptFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &domain.ConfigError{Path: absPath, Reason: "failed to unmarshal prompt file", Err: err}
	}

	return parsePromptFile(absPath, &file)
}

func parsePromptFile(path string, file *domain.PromptFile) (*domain.PromptConfig, error) {
	system, ok := firstContent(file.Messages, domain.RoleSystem)
	if !ok {
		return nil, &domain.ConfigError{Path: path, Reason: `missing "system" role message`}
	}
	user, ok := firstContent(file.Messages, domain.RoleUser)
	if !ok {
		return nil, &domain.ConfigError{Path: path, Reason: `missing "user" role message`}
	}

	d := file.Decoding
	if d == nil {
		return nil, &domain.ConfigError{Path: path, Reason: `missing "decoding" object`}
	}
	switch {
	case d.Temperature == nil:
		return nil, &domain.ConfigError{Path: path, Reason: "decoding.temperature is required"}
	case d.TopP == nil:
		return nil, &domain.ConfigError{Path: path, Reason: "decoding.top_p is required"}
	case d.MaxTokens == nil:
		return nil, &domain.ConfigError{Path: path, Reason: "decoding.max_tokens is required"}
	case *d.Temperature < 0:
		return nil, &domain.ConfigError{Path: path, Reason: "decoding.temperature must not be negative"}
	case *d.TopP < 0 || *d.TopP > 1:
		return nil, &domain.ConfigError{Path: path, Reason: "decoding.top_p must be within [0, 1]"}
	case *d.MaxTokens <= 0:
		return nil, &domain.ConfigError{Path: path, Reason: "decoding.max_tokens must be positive"}
	}

	placeholder := file.EmptyTopicPlaceholder
	if placeholder == "" {
		placeholder = domain.DefaultEmptyTopicPlaceholder
	}

	return &domain.PromptConfig{
		SystemInstruction: system,
		UserTemplate:      user,
		Decoding: domain.Decoding{
			Temperature: *d.Temperature,
			TopP:        *d.TopP,
			MaxTokens:   *d.MaxTokens,
		},
		EmptyTopicPlaceholder: placeholder,
	}, nil
}

// firstContent returns the content of the first message with the given role.
func firstContent(messages []domain.Message, role string) (string, bool) {
	for _, m := range messages {
		if strings.EqualFold(strings.TrimSpace(m.Role), role) {
			return m.Content, true
		}
	}
	return "", false
}
