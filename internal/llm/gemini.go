package llm

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/genai"
)

// geminiProvider goes through the official SDK instead of a raw HTTP
// dialect; the SDK owns the wire format and transport.
type geminiProvider struct{}

func (geminiProvider) generate(ctx context.Context, _ *http.Client, cfg ProviderConfig, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", &ProviderError{Provider: "gemini", Err: err}
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	resp, err := client.Models.GenerateContent(ctx, cfg.Model, contents, nil)
	if err != nil {
		return "", &ProviderError{Provider: "gemini", Err: err}
	}

	text := resp.Text()
	if text == "" {
		return "", &ProviderError{Provider: "gemini", Err: errors.New("empty response from model")}
	}
	return text, nil
}
