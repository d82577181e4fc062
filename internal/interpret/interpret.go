// Package interpret turns raw model text into a newsletter content document
// and re-attaches the authoritative media records. The model is never
// trusted to echo item data faithfully; section item lists are rebuilt from
// the caller's records during reconciliation.
package interpret

import (
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"medialetter/internal/classify"
	"medialetter/internal/core"
)

const (
	fallbackTitle        = "Your Weekly Media Update"
	fallbackIntroduction = "Check out what's new in your library!"
	fallbackConclusion   = "Enjoy watching and listening!"
)

// Interpret parses raw model text into a NewsletterContent. It first
// attempts structured JSON decoding followed by reconciliation; anything
// that goes wrong routes to a plain-text decomposition instead. It never
// fails.
func Interpret(modelText string, records []*core.MediaRecord) core.NewsletterContent {
	if content, ok := decodeStructured(modelText); ok {
		reconcile(&content, records)
		if content.GeneratedAt.IsZero() {
			content.GeneratedAt = time.Now().UTC()
		}
		return content
	}
	return fromPlainText(modelText, records)
}

// decodeStructured extracts the first-{ to last-} substring and decodes it.
// Key matching is case-insensitive, which encoding/json-compatible decoders
// give us for free.
func decodeStructured(text string) (core.NewsletterContent, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return core.NewsletterContent{}, false
	}

	var content core.NewsletterContent
	if err := json.Unmarshal([]byte(text[start:end+1]), &content); err != nil {
		return core.NewsletterContent{}, false
	}
	return content, true
}

// reconcile replaces each decoded section's item list with the matching
// bucket of original records, selected by a case-insensitive keyword match
// on the section title. A section matching no keyword set receives the
// "other" bucket when that is non-empty; otherwise its model-supplied items
// are left untouched.
func reconcile(content *core.NewsletterContent, records []*core.MediaRecord) {
	buckets := classify.Classify(records)

	for i := range content.Sections {
		title := strings.ToLower(content.Sections[i].SectionTitle)
		switch {
		case containsAny(title, "movie", "film"):
			content.Sections[i].Items = buckets.Movies
		case containsAny(title, "tv", "series", "show"):
			content.Sections[i].Items = buckets.Series
		case containsAny(title, "music", "album", "audio"):
			content.Sections[i].Items = buckets.Music
		case len(buckets.Other) > 0:
			content.Sections[i].Items = buckets.Other
		}
	}
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// fromPlainText decomposes unstructured model output into a single-section
// document holding every record.
func fromPlainText(text string, records []*core.MediaRecord) core.NewsletterContent {
	introduction := fallbackIntroduction
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			introduction = trimmed
			break
		}
	}

	return core.NewsletterContent{
		Title:        fallbackTitle,
		Introduction: introduction,
		Sections: []core.NewsletterSection{{
			SectionTitle: "New Additions",
			Description:  "Recently added content",
			Items:        records,
		}},
		Conclusion:  fallbackConclusion,
		GeneratedAt: time.Now().UTC(),
	}
}
