package domain

import "errors"

// ErrMissingCredential is returned for every chat call when no API key is configured.
var ErrMissingCredential = errors.New("generation API credential is not configured")

// ChatRequest is one learner message to relay.
type ChatRequest struct {
	LearnerText string `json:"learner_text"`
	TaskTopic   string `json:"task_topic"`
}

// ChatResponse carries the generated feedback back to the client.
type ChatResponse struct {
	Feedback string `json:"feedback"`
}

// UpstreamError wraps any failure of the generation API call.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return "upstream API error: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
