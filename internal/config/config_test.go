package config

import (
	"errors"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load("testdata/minimal.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AI.Provider != "openai" {
		t.Errorf("AI.Provider = %q, want openai", cfg.AI.Provider)
	}
	if cfg.AI.Model != "gpt-4o-mini" {
		t.Errorf("AI.Model = %q, want gpt-4o-mini", cfg.AI.Model)
	}
	if cfg.AI.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("AI.BaseURL = %q", cfg.AI.BaseURL)
	}
	if cfg.Newsletter.MaxItems != 10 || cfg.Newsletter.DaysBack != 7 {
		t.Errorf("newsletter window defaults = %d items / %d days", cfg.Newsletter.MaxItems, cfg.Newsletter.DaysBack)
	}
	if !strings.Contains(cfg.Newsletter.SubjectTemplate, "{ItemCount}") {
		t.Errorf("SubjectTemplate = %q, want {ItemCount} token", cfg.Newsletter.SubjectTemplate)
	}
	if cfg.SMTP.Port != 587 || !cfg.SMTP.UseTLS {
		t.Errorf("smtp defaults = port %d, tls %v", cfg.SMTP.Port, cfg.SMTP.UseTLS)
	}
	if cfg.Schedule.IntervalHours != 168 {
		t.Errorf("Schedule.IntervalHours = %d, want 168", cfg.Schedule.IntervalHours)
	}
}

func TestLoad_CachesGlobal(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first, err := Load("testdata/minimal.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := Load("testdata/other-name-ignored.yaml")
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if first != second {
		t.Error("Load should return the cached config on repeat calls")
	}
}

func TestValidate_RecipientsRequireDelivery(t *testing.T) {
	cfg := &Config{
		AI:         AI{Provider: "openai"},
		Newsletter: Letter{MaxItems: 10, DaysBack: 7},
		SMTP:       SMTP{Port: 587},
		Schedule:   Schedule{IntervalHours: 168},
		Recipients: []string{"user@example.com"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation failure without smtp host and sender")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	msg := verr.Error()
	for _, want := range []string{"smtp.host", "smtp.sender_email"} {
		if !strings.Contains(msg, want) {
			t.Errorf("validation message missing %q:\n%s", want, msg)
		}
	}
}

func TestValidate_BadFieldValues(t *testing.T) {
	cfg := &Config{
		AI:         AI{Provider: "watson"},
		Newsletter: Letter{MaxItems: 0, DaysBack: 7},
		SMTP:       SMTP{Port: 587},
		Schedule:   Schedule{IntervalHours: 168},
		Recipients: []string{"not-an-address"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation failure")
	}
	msg := err.Error()
	for _, want := range []string{"Provider", "MaxItems", "Recipients"} {
		if !strings.Contains(msg, want) {
			t.Errorf("validation message missing %q:\n%s", want, msg)
		}
	}
}

func TestValidate_MinimalIsValid(t *testing.T) {
	cfg := &Config{
		AI:         AI{Provider: "anthropic"},
		Newsletter: Letter{MaxItems: 5, DaysBack: 14},
		SMTP:       SMTP{Port: 587},
		Schedule:   Schedule{IntervalHours: 24},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
}
