// Package render produces the final newsletter HTML by substituting named
// placeholders in a base template. All free-text fields are HTML-escaped
// before insertion; content originates from an LLM and catalog metadata, so
// nothing is trusted.
package render

import (
	"embed"
	"fmt"
	"html"
	"io/fs"
	"strings"
	"sync"

	"medialetter/internal/core"
)

//go:embed templates
var templatesFS embed.FS

// templateSuffix identifies the base template inside the embedded tree.
const templateSuffix = "newsletter-template.html"

// maxGenreTags caps how many genre tags an item block shows.
const maxGenreTags = 3

// Renderer substitutes newsletter content into the base template. The base
// template is loaded once on first use and cached for the process lifetime;
// a restart is required to pick up a changed embedded template.
type Renderer struct {
	once sync.Once
	tmpl string
}

// New returns a Renderer with an unpopulated template cache.
func New() *Renderer {
	return &Renderer{}
}

// HTML renders the content document. It never fails: a base template missing
// its placeholders degrades to a simpler self-contained document built with
// the same escaping rules.
func (r *Renderer) HTML(content core.NewsletterContent) string {
	tmpl := r.template()
	if !usable(tmpl) {
		return fallbackHTML(content)
	}

	return strings.NewReplacer(
		"{{NEWSLETTER_TITLE}}", html.EscapeString(content.Title),
		"{{GENERATION_DATE}}", content.GeneratedAt.Format("January 2, 2006"),
		"{{INTRODUCTION}}", html.EscapeString(content.Introduction),
		"{{CONCLUSION}}", html.EscapeString(content.Conclusion),
		"{{SECTIONS}}", sectionsHTML(content.Sections),
	).Replace(tmpl)
}

// template returns the cached base template, populating the cache exactly
// once. Load failures fall back to the built-in template string.
func (r *Renderer) template() string {
	r.once.Do(func() {
		r.tmpl = builtinTemplate
		err := fs.WalkDir(templatesFS, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !strings.HasSuffix(path, templateSuffix) {
				return err
			}
			data, readErr := templatesFS.ReadFile(path)
			if readErr != nil {
				return readErr
			}
			r.tmpl = string(data)
			return fs.SkipAll
		})
		if err != nil {
			r.tmpl = builtinTemplate
		}
	})
	return r.tmpl
}

// usable reports whether the template carries every placeholder the
// substitution needs.
func usable(tmpl string) bool {
	for _, placeholder := range []string{
		"{{NEWSLETTER_TITLE}}", "{{GENERATION_DATE}}",
		"{{INTRODUCTION}}", "{{CONCLUSION}}", "{{SECTIONS}}",
	} {
		if !strings.Contains(tmpl, placeholder) {
			return false
		}
	}
	return true
}

func sectionsHTML(sections []core.NewsletterSection) string {
	var b strings.Builder
	for _, section := range sections {
		fmt.Fprintf(&b, `
<div class="section">
    <div class="section-header">
        <h2 class="section-title">%s</h2>
        <p class="section-description">%s</p>
    </div>
    <div class="media-items">%s
    </div>
</div>`,
			html.EscapeString(section.SectionTitle),
			html.EscapeString(section.Description),
			itemsHTML(section.Items))
	}
	return b.String()
}

func itemsHTML(items []*core.MediaRecord) string {
	var b strings.Builder
	for _, item := range items {
		poster := `<div class="media-poster-placeholder">No Image<br/>Available</div>`
		if item.PosterURL != "" {
			poster = fmt.Sprintf(`<img src="%s" alt="%s poster" />`,
				html.EscapeString(item.PosterURL), html.EscapeString(item.Title))
		}

		var meta []string
		if item.Year > 0 {
			meta = append(meta, fmt.Sprintf("<span>%d</span>", item.Year))
		}
		if item.Type != "" {
			meta = append(meta, "<span>"+html.EscapeString(item.Type)+"</span>")
		}
		if item.CommunityRating > 0 {
			meta = append(meta, fmt.Sprintf(`<span class="rating">★ %.1f</span>`, item.CommunityRating))
		}
		if item.Director != "" {
			meta = append(meta, "<span>Dir: "+html.EscapeString(item.Director)+"</span>")
		}

		var genres strings.Builder
		for i, g := range item.Genres {
			if i == maxGenreTags {
				break
			}
			genres.WriteString(`<span class="genre-tag">` + html.EscapeString(g) + `</span>`)
		}

		overview := ""
		if item.Overview != "" {
			overview = `<p class="media-overview">` + html.EscapeString(item.Overview) + `</p>`
		}

		fmt.Fprintf(&b, `
        <div class="media-item">
            <div class="media-poster">%s</div>
            <div class="media-details">
                <h3 class="media-title">%s</h3>
                <div class="media-meta">%s</div>
                %s
                <div class="media-genres">%s</div>
            </div>
        </div>`,
			poster, html.EscapeString(item.Title), strings.Join(meta, ""), overview, genres.String())
	}
	return b.String()
}

// fallbackHTML builds a minimal self-contained document from the same
// fields, used when the base template is unusable.
func fallbackHTML(content core.NewsletterContent) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<html>
<head>
    <title>%s</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; line-height: 1.6; }
        .header { background: #667eea; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; }
        .item { margin: 20px 0; padding: 15px; border: 1px solid #ddd; border-radius: 8px; }
        .title { font-size: 18px; font-weight: bold; color: #333; }
        .meta { color: #666; font-size: 14px; margin: 5px 0; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
        <p>Generated on %s</p>
    </div>
    <div class="content">
        <p>%s</p>`,
		html.EscapeString(content.Title),
		html.EscapeString(content.Title),
		content.GeneratedAt.Format("January 2, 2006"),
		html.EscapeString(content.Introduction))

	for _, section := range content.Sections {
		fmt.Fprintf(&b, "\n        <h2>%s</h2>\n        <p><em>%s</em></p>",
			html.EscapeString(section.SectionTitle), html.EscapeString(section.Description))
		for _, item := range section.Items {
			year := ""
			if item.Year > 0 {
				year = fmt.Sprintf(" (%d)", item.Year)
			}
			overview := ""
			if item.Overview != "" {
				overview = "<p>" + html.EscapeString(item.Overview) + "</p>"
			}
			fmt.Fprintf(&b, `
        <div class="item">
            <div class="title">%s</div>
            <div class="meta">%s%s</div>
            %s
        </div>`,
				html.EscapeString(item.Title), html.EscapeString(item.Type), year, overview)
		}
	}

	fmt.Fprintf(&b, "\n        <p>%s</p>\n    </div>\n</body>\n</html>\n", html.EscapeString(content.Conclusion))
	return b.String()
}
