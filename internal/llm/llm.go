// Package llm invokes a configurable LLM backend and returns raw model text.
// Each supported provider is a dialect value describing its wire shape; the
// client dispatches on the configured provider identifier.
package llm

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
)

const (
	// defaultTemperature is the sampling temperature sent on every request.
	defaultTemperature = 0.7
	// defaultMaxTokens bounds the model output per request.
	defaultMaxTokens = 2000
)

// ProviderConfig selects and authenticates a model backend.
type ProviderConfig struct {
	Provider string // provider identifier, matched case-insensitively
	APIKey   string
	Model    string
	BaseURL  string // base endpoint, without the dialect path suffix
}

// provider turns a prompt into model text for one backend family.
type provider interface {
	generate(ctx context.Context, httpClient *http.Client, cfg ProviderConfig, prompt string) (string, error)
}

// providers maps lowercase provider identifiers to their implementation.
var providers = map[string]provider{
	"openai":    httpProvider{name: "openai", dialect: openAIDialect{}},
	"anthropic": httpProvider{name: "anthropic", dialect: anthropicDialect{}},
	"custom":    httpProvider{name: "custom", dialect: customDialect{}},
	"gemini":    geminiProvider{},
}

// Client invokes LLM backends over a shared HTTP client.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a Client using the given HTTP client, or
// http.DefaultClient when nil.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}

// Generate sends the prompt to the configured provider and returns the raw
// model text. Unknown providers fail with *UnsupportedProviderError; network,
// HTTP and envelope failures with *ProviderError.
func (c *Client) Generate(ctx context.Context, cfg ProviderConfig, prompt string) (string, error) {
	p, ok := providers[strings.ToLower(cfg.Provider)]
	if !ok {
		return "", &UnsupportedProviderError{Provider: cfg.Provider}
	}
	return p.generate(ctx, c.httpClient, cfg, prompt)
}

// dialect describes one HTTP wire shape: request body, auth headers, path
// suffix and response envelope.
type dialect interface {
	path() string
	marshalRequest(model, prompt string) ([]byte, error)
	headers(apiKey string) map[string]string
	parseResponse(body []byte) (string, error)
}

// httpProvider drives any dialect over plain HTTP POST.
type httpProvider struct {
	name    string
	dialect dialect
}

func (p httpProvider) generate(ctx context.Context, httpClient *http.Client, cfg ProviderConfig, prompt string) (string, error) {
	body, err := p.dialect.marshalRequest(cfg.Model, prompt)
	if err != nil {
		return "", &ProviderError{Provider: p.name, Err: err}
	}

	url := strings.TrimRight(cfg.BaseURL, "/") + p.dialect.path()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Provider: p.name, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range p.dialect.headers(cfg.APIKey) {
		req.Header.Set(k, v)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: p.name, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Provider: p.name, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ProviderError{
			Provider:   p.name,
			StatusCode: resp.StatusCode,
			Err:        errTruncatedBody(respBody),
		}
	}

	text, err := p.dialect.parseResponse(respBody)
	if err != nil {
		return "", &ProviderError{Provider: p.name, Err: err}
	}
	return text, nil
}
