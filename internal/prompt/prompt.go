// Package prompt builds the natural-language instruction documents sent to
// the LLM backend. All builders are pure functions over the record list.
package prompt

import (
	"fmt"
	"strings"

	"medialetter/internal/core"
)

const (
	// newsletterPromptTemplate asks the model for the structured JSON shape
	// the interpreter decodes. Placeholders: tone, personalization directive,
	// item blocks, personalization line for the section list.
	newsletterPromptTemplate = `Create an engaging email newsletter featuring these recently added media items.

TONE: %s
PERSONALIZATION: %s

MEDIA ITEMS:
%s

Please create a newsletter with:
1. An engaging subject line and introduction
2. Organized sections for different content types (Movies, TV Shows, Music, etc.)
3. Brief, enticing descriptions for each item that go beyond the basic plot summary
4. %s
5. A warm conclusion encouraging engagement

Make it feel like it's written by a human who's genuinely excited about these additions. Avoid overly promotional language.
Format the response as JSON with this structure:
{
  "title": "Newsletter title",
  "introduction": "Welcome paragraph",
  "sections": [
    {
      "sectionTitle": "Section name",
      "description": "Section description",
      "items": [/* include the media items for this section */]
    }
  ],
  "conclusion": "Closing paragraph"
}`

	itemDescriptionPromptTemplate = `Create a brief, engaging description for this %s:

%s
Tone: %s

Write a 1-2 sentence description that's more engaging than the basic plot summary. Focus on what makes this content interesting or appealing to watch.`

	recommendationPromptTemplate = `Based on these recently added items, write a brief personalized recommendation paragraph:

%s

Tone: %s

Create a warm, engaging paragraph that highlights why these additions are worth checking out. Make it feel personal and genuine.`
)

// BuildNewsletterPrompt serializes the records plus generation parameters
// into the newsletter instruction document. Custom instructions, when
// present, are appended verbatim as an additional block.
func BuildNewsletterPrompt(records []*core.MediaRecord, tone string, personalize bool, customInstructions string) string {
	blocks := make([]string, 0, len(records))
	for _, r := range records {
		blocks = append(blocks, FormatRecordBlock(r))
	}

	personalization := "Disabled - keep it general"
	recommendations := "General recommendations"
	if personalize {
		personalization = "Enabled - add personal touches and recommendations"
		recommendations = "Personalized recommendations and viewing suggestions"
	}

	p := fmt.Sprintf(newsletterPromptTemplate, tone, personalization, strings.Join(blocks, "\n"), recommendations)
	if customInstructions != "" {
		p += "\n\nADDITIONAL INSTRUCTIONS: " + customInstructions
	}
	return p
}

// BuildItemDescriptionPrompt asks for a short punchy description of a single
// record.
func BuildItemDescriptionPrompt(record *core.MediaRecord, tone string) string {
	return fmt.Sprintf(itemDescriptionPromptTemplate, strings.ToLower(record.Type), FormatRecordBlock(record), tone)
}

// BuildRecommendationPrompt asks for an aggregate recommendation paragraph
// covering all records.
func BuildRecommendationPrompt(records []*core.MediaRecord, tone string) string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("- %s (%s)", r.Title, r.Type))
	}
	return fmt.Sprintf(recommendationPromptTemplate, strings.Join(lines, "\n"), tone)
}

// FormatRecordBlock renders one record as the multi-line detail block shared
// by all prompt builders. Optional fields are omitted when unset.
func FormatRecordBlock(r *core.MediaRecord) string {
	details := []string{
		"Title: " + r.Title,
		"Type: " + r.Type,
	}
	if r.Year > 0 {
		details = append(details, fmt.Sprintf("Year: %d", r.Year))
	}
	if r.Overview != "" {
		details = append(details, "Overview: "+r.Overview)
	}
	if len(r.Genres) > 0 {
		details = append(details, "Genres: "+strings.Join(r.Genres, ", "))
	}
	if r.Director != "" {
		details = append(details, "Director: "+r.Director)
	}
	if r.CommunityRating > 0 {
		details = append(details, fmt.Sprintf("Rating: %.1f/10", r.CommunityRating))
	}
	return strings.Join(details, "\n") + "\n"
}
