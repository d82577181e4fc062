package interpret

import (
	"fmt"
	"time"

	"medialetter/internal/classify"
	"medialetter/internal/core"
)

// Fallback deterministically builds a complete newsletter document from the
// records alone, with no model involvement. Used whenever the model is
// unreachable, unconfigured, or its output cannot be salvaged.
func Fallback(records []*core.MediaRecord) core.NewsletterContent {
	buckets := classify.Classify(records)

	var sections []core.NewsletterSection
	addSection := func(title, description string, items []*core.MediaRecord) {
		if len(items) == 0 {
			return
		}
		sections = append(sections, core.NewsletterSection{
			SectionTitle: title,
			Description:  description,
			Items:        items,
		})
	}

	addSection("🎬 New Movies", "Fresh movies added to your collection", buckets.Movies)
	addSection("📺 TV Shows & Episodes", "New series and episodes to binge", buckets.Series)
	addSection("🎵 New Music", "Latest albums and tracks", buckets.Music)
	addSection("📚 Other Content", "Additional new content", buckets.Other)

	noun := "items"
	if len(records) == 1 {
		noun = "item"
	}

	return core.NewsletterContent{
		Title:        fallbackTitle,
		Introduction: fmt.Sprintf("We've got %d new %s in your library this week!", len(records), noun),
		Sections:     sections,
		Conclusion:   "Happy watching and listening! Your media server has been busy adding great new content for you to enjoy.",
		GeneratedAt:  time.Now().UTC(),
	}
}
