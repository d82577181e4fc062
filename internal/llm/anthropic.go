package llm

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// anthropicVersion is the fixed API version header value.
const anthropicVersion = "2023-06-01"

type anthropicRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// anthropicDialect speaks the message-batch wire format: a single user
// message, API-key header auth plus a version header, and a typed content
// block response envelope.
type anthropicDialect struct{}

func (anthropicDialect) path() string { return "/messages" }

func (anthropicDialect) marshalRequest(model, prompt string) ([]byte, error) {
	return json.Marshal(anthropicRequest{
		Model:       model,
		MaxTokens:   defaultMaxTokens,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: defaultTemperature,
	})
}

func (anthropicDialect) headers(apiKey string) map[string]string {
	return map[string]string{
		"x-api-key":         apiKey,
		"anthropic-version": anthropicVersion,
	}
}

func (anthropicDialect) parseResponse(body []byte) (string, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decoding response envelope: %w", err)
	}
	if len(resp.Content) == 0 || resp.Content[0].Text == "" {
		return "", errors.New("response contained no content blocks")
	}
	return resp.Content[0].Text, nil
}
