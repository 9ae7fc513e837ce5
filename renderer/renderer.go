// Package renderer formats analysis results as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/drip"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.md
var templatesFS embed.FS

// templates holds the markdown templates, at the root.
var templates = mustSub(templatesFS, "templates")

func mustSub(f fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(f, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// SummaryRenderOptions holds configuration for rendering a summary report.
type SummaryRenderOptions struct {
	Rows bool // Append the table of every dividend event.
}

// RenderSummary renders the Summary to a markdown string.
func RenderSummary(s *drip.Summary, opts SummaryRenderOptions) string {
	partials := map[string]string{
		"summary_title":     "summary_title.md",
		"summary_figures":   "summary_figures.md",
		"summary_dividends": "summary_dividends.md",
		// An empty file name results in an empty template.
		"summary_events": "",
	}
	if opts.Rows {
		partials["summary_events"] = "summary_events.md"
	}
	return renderTemplate("summary", "summary.md", partials, s)
}

// funcs are available to all templates.
var funcs = template.FuncMap{
	"events": func(s *drip.Summary) string { return EventsMarkdown(s.Events, s.Currency) },
	"shares": shares,
}

// shares formats a share count, fractions of shares are rounded to 6 digits.
func shares(v decimal.Decimal) string { return v.Round(6).String() }

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
