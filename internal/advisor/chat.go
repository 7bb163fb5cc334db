package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ChatAdvisor generates recommendations by calling an OpenAI-compatible
// chat endpoint (Ollama, LM Studio, vLLM, the OpenAI API itself).
type ChatAdvisor struct {
	url    string       // e.g. "http://localhost:1234"
	model  string       // e.g. "qwen3-8b"
	client *http.Client // reused across calls
}

// Compile-time check: *ChatAdvisor satisfies the Advisor interface.
var _ Advisor = (*ChatAdvisor)(nil)

// GenerateError is returned when generation fails so the caller can
// distinguish "the model answered badly" from "the model was
// unreachable."
type GenerateError struct {
	Reason  string
	Wrapped error
}

func (e *GenerateError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("recommendation generation failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("recommendation generation failed: %s", e.Reason)
}

func (e *GenerateError) Unwrap() error {
	return e.Wrapped
}

// NewChatAdvisor creates an advisor that calls the given endpoint.
func NewChatAdvisor(url, model string) *ChatAdvisor {
	return &ChatAdvisor{
		url:   url,
		model: model,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

const systemPrompt = `You are a study coach for the California DMV permit test.
Given a learner's per-category accuracy, write a short, encouraging
recommendation (3-4 sentences) telling them what to focus on next.
Mention the weakest categories by name. Plain text only, no lists.`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Recommend sends the performance summary to the chat endpoint and
// returns the generated recommendation text.
func (a *ChatAdvisor) Recommend(ctx context.Context, summary string) (string, error) {
	reqBody := chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: summary},
		},
		Temperature: 0.7,
		Stream:      false,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", &GenerateError{Reason: "encode request", Wrapped: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.url+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &GenerateError{Reason: "build request", Wrapped: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", &GenerateError{Reason: "endpoint unreachable", Wrapped: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &GenerateError{Reason: fmt.Sprintf("endpoint returned %d", resp.StatusCode)}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &GenerateError{Reason: "decode response", Wrapped: err}
	}
	if parsed.Error != nil {
		return "", &GenerateError{Reason: parsed.Error.Message}
	}
	if len(parsed.Choices) == 0 {
		return "", &GenerateError{Reason: "no choices returned"}
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", &GenerateError{Reason: "empty recommendation"}
	}
	return text, nil
}
