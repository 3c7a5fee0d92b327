// Package prompt turns a prospect profile and a role template into the final
// prompt sent to the model, plus the response shape the model must follow.
package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/reteki/outreach/internal/links"
	"github.com/reteki/outreach/internal/llm"
	"github.com/reteki/outreach/internal/outreach"
	"github.com/reteki/outreach/internal/templates"
)

// Enricher fetches and summarizes links. *links.Enricher satisfies it.
type Enricher interface {
	EnrichAll(ctx context.Context, urls []string) []links.Record
}

// Composed is a ready-to-send prompt and its response shape.
type Composed struct {
	Prompt string
	Schema *llm.Schema
	// Links holds every enrichment outcome, successful or not, in the order
	// the links were considered.
	Links []links.Record
}

// Composer merges profile data and link summaries into role templates.
type Composer struct {
	templates *templates.Store
	enricher  Enricher
}

// NewComposer creates a Composer. enricher may be nil, in which case the
// links placeholder always renders as not available.
func NewComposer(store *templates.Store, enricher Enricher) *Composer {
	return &Composer{templates: store, enricher: enricher}
}

// Compose selects the template for role and channel and fills it in.
// Link failures are absorbed; an unknown role falls back to RoleOther.
func (c *Composer) Compose(ctx context.Context, p outreach.Profile, role outreach.Role, channel outreach.Channel) Composed {
	tmpl := c.templates.Get(role)
	text := tmpl.For(channel)

	records := c.enrich(ctx, p)
	block := LinksBlock(records)

	return Composed{
		Prompt: Render(text, ProfileValues(p, block)),
		Schema: MessageSchema(),
		Links:  records,
	}
}

// enrich fetches the profile's listed URLs, then any further links found in
// the additional context, in one fan-out.
func (c *Composer) enrich(ctx context.Context, p outreach.Profile) []links.Record {
	if c.enricher == nil {
		return nil
	}

	listed := nonBlank(p.URLs)
	seen := make(map[string]bool, len(listed))
	for _, u := range listed {
		seen[u] = true
	}
	var extra []string
	for _, u := range links.Dedupe(links.Extract(p.AdditionalContext)) {
		if !seen[u] {
			extra = append(extra, u)
		}
	}

	all := append(append([]string{}, listed...), extra...)
	if len(all) == 0 {
		return nil
	}
	return c.enricher.EnrichAll(ctx, all)
}

// LinksBlock renders successful records in order. With none it returns
// outreach.NotAvailable.
func LinksBlock(records []links.Record) string {
	var parts []string
	for _, r := range records {
		if !r.Succeeded {
			continue
		}
		parts = append(parts, fmt.Sprintf("URL: %s\nTítulo: %s\nResumen: %s", r.URL, r.Title, r.Summary))
	}
	if len(parts) == 0 {
		return outreach.NotAvailable
	}
	return strings.Join(parts, "\n\n")
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
