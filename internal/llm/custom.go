package llm

import (
	json "github.com/goccy/go-json"
)

const customSystemMessage = "You are a helpful assistant that creates engaging newsletter content."

// customDialect targets any OpenAI-API-compatible endpoint (self-hosted or
// third-party). Same request shape as the chat dialect with a simpler system
// message; auth is omitted entirely when no key is configured.
type customDialect struct{}

func (customDialect) path() string { return "/chat/completions" }

func (customDialect) marshalRequest(model, prompt string) ([]byte, error) {
	return json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: customSystemMessage},
			{Role: "user", Content: prompt},
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	})
}

func (customDialect) headers(apiKey string) map[string]string {
	if apiKey == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + apiKey}
}

func (customDialect) parseResponse(body []byte) (string, error) {
	return parseChatResponse(body)
}
