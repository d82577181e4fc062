package newsletter

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"medialetter/internal/catalog"
	"medialetter/internal/config"
	"medialetter/internal/core"
	"medialetter/internal/interpret"
	"medialetter/internal/llm"
	"medialetter/internal/render"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (g *stubGenerator) Generate(ctx context.Context, cfg llm.ProviderConfig, prompt string) (string, error) {
	g.calls++
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return g.text, g.err
}

type stubSource struct {
	records []*core.MediaRecord
	err     error
	gotQ    catalog.Query
}

func (s *stubSource) RecentlyAdded(ctx context.Context, q catalog.Query) ([]*core.MediaRecord, error) {
	s.gotQ = q
	return s.records, s.err
}

type stubSender struct {
	mu     sync.Mutex
	sent   []string
	failOn map[string]error
}

func (s *stubSender) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failOn[recipient]; ok {
		return err
	}
	s.sent = append(s.sent, recipient)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		AI: config.AI{Provider: "openai", APIKey: "key", Model: "gpt-4o-mini", BaseURL: "https://api.openai.com/v1"},
		Newsletter: config.Letter{
			Tone:            "friendly",
			MaxItems:        10,
			DaysBack:        7,
			ContentTypes:    []string{core.TypeMovie, core.TypeEpisode},
			SubjectTemplate: "Update - {ItemCount} New Items",
		},
		Recipients: []string{"a@example.com"},
		SMTP:       config.SMTP{Port: 587},
	}
}

func sampleRecords() []*core.MediaRecord {
	return []*core.MediaRecord{
		{ID: "1", Title: "Heat", Type: core.TypeMovie, DateAdded: time.Now()},
		{ID: "2", Title: "Pilot", Type: core.TypeEpisode, DateAdded: time.Now()},
	}
}

func TestGenerate_UnconfiguredUsesBuiltinWithoutModelCall(t *testing.T) {
	cfg := testConfig()
	cfg.AI.APIKey = ""
	gen := &stubGenerator{text: "should not be used"}
	svc := NewService(gen, &stubSource{}, &stubSender{}, render.New(), cfg)

	records := sampleRecords()
	got, err := svc.Generate(context.Background(), core.GenerationRequest{Records: records})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times, want 0", gen.calls)
	}

	want := interpret.Fallback(records)
	if got.Title != want.Title || got.Introduction != want.Introduction {
		t.Errorf("built-in content mismatch: got %q/%q", got.Title, got.Introduction)
	}
	if got.ItemCount() != len(records) {
		t.Errorf("ItemCount = %d, want %d", got.ItemCount(), len(records))
	}
	if got.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not stamped")
	}
}

func TestGenerate_ModelErrorDegradesToBuiltin(t *testing.T) {
	gen := &stubGenerator{err: errors.New("boom")}
	svc := NewService(gen, &stubSource{}, &stubSender{}, render.New(), testConfig())

	records := sampleRecords()
	got, err := svc.Generate(context.Background(), core.GenerationRequest{Records: records})
	if err != nil {
		t.Fatalf("Generate() error = %v, want degraded content", err)
	}
	if got.ItemCount() != len(records) {
		t.Errorf("degraded content lost records: %d", got.ItemCount())
	}
	if got.Title != interpret.Fallback(records).Title {
		t.Errorf("Title = %q, want built-in title", got.Title)
	}
}

func TestGenerate_CancellationPropagates(t *testing.T) {
	gen := &stubGenerator{text: "whatever"}
	svc := NewService(gen, &stubSource{}, &stubSender{}, render.New(), testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Generate(ctx, core.GenerationRequest{Records: sampleRecords()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Generate() error = %v, want context.Canceled", err)
	}
}

func TestGenerate_ModelOutputInterpreted(t *testing.T) {
	gen := &stubGenerator{text: `{"title":"Movie Night","introduction":"Hi!","sections":[{"sectionTitle":"Movies","description":"new films","items":[]}],"conclusion":"Bye"}`}
	svc := NewService(gen, &stubSource{}, &stubSender{}, render.New(), testConfig())

	got, err := svc.Generate(context.Background(), core.GenerationRequest{Records: sampleRecords()})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got.Title != "Movie Night" {
		t.Errorf("Title = %q, want model title", got.Title)
	}
	if got.ItemCount() != 2 {
		t.Errorf("reconciliation dropped records, ItemCount = %d", got.ItemCount())
	}
}

func TestGenerateItemDescription_Defaults(t *testing.T) {
	cfg := testConfig()
	cfg.AI.APIKey = ""
	svc := NewService(&stubGenerator{}, &stubSource{}, &stubSender{}, render.New(), cfg)

	withOverview := &core.MediaRecord{Title: "Heat", Type: core.TypeMovie, Overview: "A heist thriller."}
	got, err := svc.GenerateItemDescription(context.Background(), withOverview, "friendly")
	if err != nil || got != "A heist thriller." {
		t.Errorf("GenerateItemDescription() = %q, %v; want overview", got, err)
	}

	bare := &core.MediaRecord{Title: "Heat", Type: core.TypeMovie}
	got, err = svc.GenerateItemDescription(context.Background(), bare, "friendly")
	if err != nil || got != "New Movie: Heat" {
		t.Errorf("GenerateItemDescription() = %q, %v; want stock line", got, err)
	}
}

func TestGenerateRecommendation_DegradesOnError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("boom")}
	svc := NewService(gen, &stubSource{}, &stubSender{}, render.New(), testConfig())

	got, err := svc.GenerateRecommendation(context.Background(), sampleRecords(), "friendly")
	if err != nil {
		t.Fatalf("GenerateRecommendation() error = %v", err)
	}
	if got != defaultRecommendation {
		t.Errorf("GenerateRecommendation() = %q, want stock line", got)
	}
}

func TestRun_NoRecipients(t *testing.T) {
	cfg := testConfig()
	cfg.Recipients = nil
	svc := NewService(&stubGenerator{}, &stubSource{}, &stubSender{}, render.New(), cfg)

	_, err := svc.Run(context.Background())
	if !errors.Is(err, ErrNoRecipients) {
		t.Fatalf("Run() error = %v, want ErrNoRecipients", err)
	}
}

func TestRun_SkipsWhenNoRecentItems(t *testing.T) {
	sender := &stubSender{}
	svc := NewService(&stubGenerator{}, &stubSource{}, sender, render.New(), testConfig())

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.Skipped || result.Sent != 0 {
		t.Errorf("result = %+v, want skipped run", result)
	}
	if len(sender.sent) != 0 {
		t.Error("nothing should be sent on a skipped run")
	}
}

func TestRun_QueryWindow(t *testing.T) {
	source := &stubSource{}
	svc := NewService(&stubGenerator{}, source, &stubSender{}, render.New(), testConfig())

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantSince := time.Now().AddDate(0, 0, -7)
	if source.gotQ.Since.After(wantSince.Add(time.Minute)) || source.gotQ.Since.Before(wantSince.Add(-time.Minute)) {
		t.Errorf("query Since = %v, want about %v", source.gotQ.Since, wantSince)
	}
	if source.gotQ.Limit != 10 {
		t.Errorf("query Limit = %d, want 10", source.gotQ.Limit)
	}
	if len(source.gotQ.Types) != 2 {
		t.Errorf("query Types = %v", source.gotQ.Types)
	}
}

func TestRun_PartialDeliveryFailureStillSucceeds(t *testing.T) {
	cfg := testConfig()
	cfg.Recipients = []string{"a@example.com", "b@example.com", "c@example.com"}
	sender := &stubSender{failOn: map[string]error{"b@example.com": errors.New("mailbox full")}}
	source := &stubSource{records: sampleRecords()}
	gen := &stubGenerator{text: "plain text digest"}
	svc := NewService(gen, source, sender, render.New(), cfg)

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v, want success with one failed delivery", err)
	}
	if result.Sent != 2 || result.Failed != 1 {
		t.Errorf("result = %+v, want 2 sent / 1 failed", result)
	}
	if result.ItemCount != 2 {
		t.Errorf("ItemCount = %d, want 2", result.ItemCount)
	}
	if result.RunID == "" {
		t.Error("RunID not assigned")
	}
}

func TestRun_AllDeliveriesFailed(t *testing.T) {
	cfg := testConfig()
	sender := &stubSender{failOn: map[string]error{"a@example.com": errors.New("refused")}}
	svc := NewService(&stubGenerator{text: "x"}, &stubSource{records: sampleRecords()}, sender, render.New(), cfg)

	result, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("Run() should fail when every delivery fails")
	}
	if result.Failed != 1 || result.Sent != 0 {
		t.Errorf("result = %+v", result)
	}
}

func TestPreview_RendersWithoutSending(t *testing.T) {
	sender := &stubSender{}
	source := &stubSource{records: sampleRecords()}
	svc := NewService(&stubGenerator{text: "digest"}, source, sender, render.New(), testConfig())

	html, err := svc.Preview(context.Background())
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if !strings.Contains(html, "Heat") {
		t.Error("preview HTML missing record title")
	}
	if len(sender.sent) != 0 {
		t.Error("preview must not send email")
	}
}

func TestSendTest_DeliversCannedNewsletter(t *testing.T) {
	sender := &stubSender{}
	svc := NewService(&stubGenerator{text: "digest"}, &stubSource{}, sender, render.New(), testConfig())

	if err := svc.SendTest(context.Background(), "qa@example.com"); err != nil {
		t.Fatalf("SendTest() error = %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0] != "qa@example.com" {
		t.Errorf("sent = %v, want single delivery to qa@example.com", sender.sent)
	}
}
