package core

import "time"

// Media item type tags as reported by the catalog. Anything outside this set
// is grouped under the "other" bucket by the classifier.
const (
	TypeMovie      = "Movie"
	TypeSeries     = "Series"
	TypeSeason     = "Season"
	TypeEpisode    = "Episode"
	TypeMusicAlbum = "MusicAlbum"
	TypeAudio      = "Audio"
	TypeBook       = "Book"
)

// MaxCastNames caps how many cast members are carried per record.
const MaxCastNames = 5

// MediaRecord is an immutable snapshot of one catalog entry. It is built once
// per pipeline run from the catalog response and never mutated afterwards;
// downstream stages only change which records a section points at.
type MediaRecord struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Type            string    `json:"type"`
	Year            int       `json:"year,omitempty"`            // 0 when unknown
	Overview        string    `json:"overview,omitempty"`
	Genres          []string  `json:"genres,omitempty"`
	Director        string    `json:"director,omitempty"`
	Cast            []string  `json:"cast,omitempty"`            // at most MaxCastNames entries
	Rating          string    `json:"rating,omitempty"`          // parental rating, e.g. "PG-13"
	CommunityRating float64   `json:"communityRating,omitempty"` // 0-10, 0 when unknown
	DateAdded       time.Time `json:"dateAdded"`
	PosterURL       string    `json:"posterUrl,omitempty"` // opaque reference resolved by the catalog
	Library         string    `json:"library,omitempty"`
	SeriesName      string    `json:"seriesName,omitempty"`
	SeasonNumber    int       `json:"seasonNumber,omitempty"`
	EpisodeNumber   int       `json:"episodeNumber,omitempty"`
	AlbumArtist     string    `json:"albumArtist,omitempty"`
	TrackCount      int       `json:"trackCount,omitempty"`
}

// GenerationRequest is the input to a newsletter generation run.
type GenerationRequest struct {
	Records            []*MediaRecord // ordered, most recent first
	Tone               string         // free-form tone label, e.g. "friendly"
	Personalize        bool           // whether the prompt asks for personal touches
	CustomInstructions string         // appended verbatim to the prompt when non-empty
}

// NewsletterContent is the generated newsletter document. After
// reconciliation the union of all section items equals exactly the records
// the run started from.
type NewsletterContent struct {
	Title        string              `json:"title"`
	Introduction string              `json:"introduction"`
	Sections     []NewsletterSection `json:"sections"`
	Conclusion   string              `json:"conclusion"`
	GeneratedAt  time.Time           `json:"generatedAt"`
}

// NewsletterSection groups records under a model-authored heading. Items are
// shared pointers into the run's record slice, never copies.
type NewsletterSection struct {
	SectionTitle string         `json:"sectionTitle"`
	Description  string         `json:"description"`
	Items        []*MediaRecord `json:"items"`
}

// ItemCount returns the total number of records across all sections.
func (c NewsletterContent) ItemCount() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Items)
	}
	return n
}
