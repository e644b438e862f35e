package domain

import (
	"fmt"
	"strings"
)

// Placeholder tokens recognised in the user template.
const (
	PlaceholderLearnerText = "{{learner_text}}"
	PlaceholderRAGExamples = "{{rag_examples}}"
	PlaceholderTaskTopic   = "{{task_topic}}"

	RoleSystem = "system"
	RoleUser   = "user"

	// DefaultEmptyTopicPlaceholder stands in for an empty task topic.
	DefaultEmptyTopicPlaceholder = "(없음)"
)

// Message is one role/content entry of the prompt file.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Decoding holds the sampling parameters passed to the generation API.
type Decoding struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int     `json:"max_tokens"`
}

// PromptFile is the on-disk JSON layout. Decoding fields are pointers so
// that missing keys can be told apart from zero values.
type PromptFile struct {
	Messages []Message `json:"messages"`
	Decoding *struct {
		Temperature *float64 `json:"temperature"`
		TopP        *float64 `json:"top_p"`
		MaxTokens   *int     `json:"max_tokens"`
	} `json:"decoding"`
	EmptyTopicPlaceholder string `json:"empty_topic_placeholder,omitempty"`
}

// PromptConfig is the loaded, validated template. It is read-only after load.
type PromptConfig struct {
	SystemInstruction     string
	UserTemplate          string
	Decoding              Decoding
	EmptyTopicPlaceholder string
}

// Render fills the user template. {{rag_examples}} is always replaced with
// an empty string; an empty task topic becomes EmptyTopicPlaceholder.
// The result never contains a placeholder token, even when the inputs do.
func (p *PromptConfig) Render(learnerText, taskTopic string) string {
	topic := taskTopic
	if topic == "" {
		topic = p.EmptyTopicPlaceholder
	}
	out := strings.ReplaceAll(p.UserTemplate, PlaceholderLearnerText, learnerText)
	out = strings.ReplaceAll(out, PlaceholderRAGExamples, "")
	out = strings.ReplaceAll(out, PlaceholderTaskTopic, topic)
	return stripPlaceholders(out)
}

var placeholders = []string{PlaceholderLearnerText, PlaceholderRAGExamples, PlaceholderTaskTopic}

// stripPlaceholders removes tokens left over from substituted values. Removal
// can join fragments into a new token, so it repeats until none remain.
func stripPlaceholders(s string) string {
	for {
		stripped := s
		for _, tok := range placeholders {
			stripped = strings.ReplaceAll(stripped, tok, "")
		}
		if stripped == s {
			return s
		}
		s = stripped
	}
}

// ConfigError reports a prompt file that cannot be used.
type ConfigError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("prompt config %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("prompt config %s: %s", e.Path, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
