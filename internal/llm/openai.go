package llm

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

const newsletterSystemMessage = "You are a helpful assistant that creates engaging newsletter content about movies, TV shows, and music. Be creative, engaging, and write in a human-like style."

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// openAIDialect speaks the chat-completions wire format: a system+user
// message pair, bearer-token auth, and a "choices" response envelope.
type openAIDialect struct{}

func (openAIDialect) path() string { return "/chat/completions" }

func (openAIDialect) marshalRequest(model, prompt string) ([]byte, error) {
	return json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: newsletterSystemMessage},
			{Role: "user", Content: prompt},
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	})
}

func (openAIDialect) headers(apiKey string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + apiKey}
}

func (openAIDialect) parseResponse(body []byte) (string, error) {
	return parseChatResponse(body)
}

func parseChatResponse(body []byte) (string, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decoding response envelope: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("response contained no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
