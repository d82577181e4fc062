// Package newsletter orchestrates the full pipeline: fetch recent catalog
// records, generate newsletter content, render HTML and deliver it.
package newsletter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"medialetter/internal/catalog"
	"medialetter/internal/config"
	"medialetter/internal/core"
	"medialetter/internal/email"
	"medialetter/internal/interpret"
	"medialetter/internal/llm"
	"medialetter/internal/logger"
	"medialetter/internal/prompt"
	"medialetter/internal/render"
)

// Default texts used when the model cannot be called.
const (
	defaultRecommendation = "Check out these great new additions to your library!"
)

// ErrNoRecipients indicates a delivery run with an empty recipient list.
var ErrNoRecipients = errors.New("no recipients configured")

// TextGenerator produces raw model text for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, cfg llm.ProviderConfig, prompt string) (string, error)
}

// Service runs the newsletter pipeline.
type Service struct {
	generator TextGenerator
	source    catalog.Source
	sender    email.Sender
	renderer  *render.Renderer
	cfg       *config.Config
}

// NewService wires the pipeline stages together.
func NewService(generator TextGenerator, source catalog.Source, sender email.Sender, renderer *render.Renderer, cfg *config.Config) *Service {
	return &Service{
		generator: generator,
		source:    source,
		sender:    sender,
		renderer:  renderer,
		cfg:       cfg,
	}
}

func (s *Service) providerConfig() llm.ProviderConfig {
	return llm.ProviderConfig{
		Provider: s.cfg.AI.Provider,
		APIKey:   s.cfg.AI.APIKey,
		Model:    s.cfg.AI.Model,
		BaseURL:  s.cfg.AI.BaseURL,
	}
}

// Generate produces newsletter content for the given records. It never fails
// for content reasons: without an API key no model is called and the built-in
// document is returned; a model failure degrades the same way. Only
// cancellation propagates as an error.
func (s *Service) Generate(ctx context.Context, req core.GenerationRequest) (core.NewsletterContent, error) {
	if !s.cfg.AI.Configured() {
		logger.Debug("no model configured, using built-in newsletter content")
		return interpret.Fallback(req.Records), nil
	}

	p := prompt.BuildNewsletterPrompt(req.Records, req.Tone, req.Personalize, req.CustomInstructions)
	text, err := s.generator.Generate(ctx, s.providerConfig(), p)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return core.NewsletterContent{}, err
		}
		logger.Warn("model generation failed, using built-in newsletter content", "error", err.Error())
		return interpret.Fallback(req.Records), nil
	}
	return interpret.Interpret(text, req.Records), nil
}

// GenerateItemDescription produces a one-item blurb. Model failures degrade
// to the record's overview, or a short stock line when that is empty too.
func (s *Service) GenerateItemDescription(ctx context.Context, record *core.MediaRecord, tone string) (string, error) {
	if !s.cfg.AI.Configured() {
		return defaultItemDescription(record), nil
	}
	text, err := s.generator.Generate(ctx, s.providerConfig(), prompt.BuildItemDescriptionPrompt(record, tone))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		logger.Warn("item description generation failed", "item", record.Title, "error", err.Error())
		return defaultItemDescription(record), nil
	}
	return text, nil
}

// GenerateRecommendation produces a short recommendation blurb for a batch of
// records, degrading to a stock line on failure.
func (s *Service) GenerateRecommendation(ctx context.Context, records []*core.MediaRecord, tone string) (string, error) {
	if !s.cfg.AI.Configured() {
		return defaultRecommendation, nil
	}
	text, err := s.generator.Generate(ctx, s.providerConfig(), prompt.BuildRecommendationPrompt(records, tone))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		logger.Warn("recommendation generation failed", "error", err.Error())
		return defaultRecommendation, nil
	}
	return text, nil
}

// RunResult summarizes one delivery run.
type RunResult struct {
	RunID     string
	ItemCount int
	Sent      int
	Failed    int
	Skipped   bool // true when no recent items were found and nothing was sent
}

// Run executes a complete delivery: fetch, generate, render, send to every
// recipient concurrently. The run succeeds when at least one delivery
// succeeds; a run with no recent items is skipped, not failed.
func (s *Service) Run(ctx context.Context) (RunResult, error) {
	result := RunResult{RunID: uuid.NewString()}

	if len(s.cfg.Recipients) == 0 {
		return result, ErrNoRecipients
	}

	records, err := s.fetchRecent(ctx)
	if err != nil {
		return result, err
	}
	result.ItemCount = len(records)
	if len(records) == 0 {
		logger.Info("no recent items, skipping newsletter", "run_id", result.RunID)
		result.Skipped = true
		return result, nil
	}

	content, err := s.Generate(ctx, s.generationRequest(records))
	if err != nil {
		return result, err
	}

	htmlBody := s.renderer.HTML(content)
	subject := email.Subject(s.cfg.Newsletter.SubjectTemplate, content.ItemCount())

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, recipient := range s.cfg.Recipients {
		wg.Add(1)
		go func(recipient string) {
			defer wg.Done()
			if err := s.sender.Send(ctx, recipient, subject, htmlBody); err != nil {
				logger.Error("newsletter delivery failed", err, "run_id", result.RunID, "recipient", recipient)
				mu.Lock()
				result.Failed++
				mu.Unlock()
				return
			}
			mu.Lock()
			result.Sent++
			mu.Unlock()
		}(recipient)
	}
	wg.Wait()

	if result.Sent == 0 {
		return result, fmt.Errorf("run %s: all %d deliveries failed", result.RunID, result.Failed)
	}
	logger.Info("newsletter run complete", "run_id", result.RunID,
		"items", result.ItemCount, "sent", result.Sent, "failed", result.Failed)
	return result, nil
}

// Preview renders the newsletter HTML for the current catalog window without
// sending anything.
func (s *Service) Preview(ctx context.Context) (string, error) {
	records, err := s.fetchRecent(ctx)
	if err != nil {
		return "", err
	}
	content, err := s.Generate(ctx, s.generationRequest(records))
	if err != nil {
		return "", err
	}
	return s.renderer.HTML(content), nil
}

// SendTest delivers a newsletter built from canned records to one recipient,
// exercising generation, rendering and SMTP delivery end to end.
func (s *Service) SendTest(ctx context.Context, recipient string) error {
	records := testRecords()
	content, err := s.Generate(ctx, s.generationRequest(records))
	if err != nil {
		return err
	}
	subject := email.Subject(s.cfg.Newsletter.SubjectTemplate, content.ItemCount())
	if err := s.sender.Send(ctx, recipient, subject, s.renderer.HTML(content)); err != nil {
		return fmt.Errorf("test delivery: %w", err)
	}
	return nil
}

func (s *Service) fetchRecent(ctx context.Context) ([]*core.MediaRecord, error) {
	records, err := s.source.RecentlyAdded(ctx, catalog.Query{
		Since:     time.Now().AddDate(0, 0, -s.cfg.Newsletter.DaysBack),
		Libraries: s.cfg.Newsletter.Libraries,
		Types:     s.cfg.Newsletter.ContentTypes,
		Limit:     s.cfg.Newsletter.MaxItems,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching recent items: %w", err)
	}
	return records, nil
}

func (s *Service) generationRequest(records []*core.MediaRecord) core.GenerationRequest {
	return core.GenerationRequest{
		Records:            records,
		Tone:               s.cfg.Newsletter.Tone,
		Personalize:        s.cfg.Newsletter.Personalization,
		CustomInstructions: s.cfg.Newsletter.CustomPrompt,
	}
}

func defaultItemDescription(record *core.MediaRecord) string {
	if record.Overview != "" {
		return record.Overview
	}
	return fmt.Sprintf("New %s: %s", record.Type, record.Title)
}

// testRecords returns the canned records used by SendTest.
func testRecords() []*core.MediaRecord {
	return []*core.MediaRecord{
		{
			ID:              "test-movie",
			Title:           "The Matrix",
			Type:            core.TypeMovie,
			Year:            1999,
			Overview:        "A computer hacker learns from mysterious rebels about the true nature of his reality.",
			Genres:          []string{"Action", "Sci-Fi"},
			Director:        "The Wachowskis",
			CommunityRating: 8.7,
			DateAdded:       time.Now(),
		},
		{
			ID:        "test-series",
			Title:     "Stranger Things",
			Type:      core.TypeSeries,
			Year:      2016,
			Overview:  "When a young boy disappears, his mother and friends must confront terrifying supernatural forces.",
			Genres:    []string{"Drama", "Fantasy", "Horror"},
			DateAdded: time.Now(),
		},
	}
}
