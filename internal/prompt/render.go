package prompt

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/reteki/outreach/internal/outreach"
	"github.com/reteki/outreach/internal/templates"
)

var tokenPattern = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

// Values maps placeholder names to their substitution text.
type Values map[string]string

// ProfileValues builds the placeholder values for p. linksBlock is the
// already-rendered enrichment text.
func ProfileValues(p outreach.Profile, linksBlock string) Values {
	wordCount := ""
	if p.WordCount > 0 {
		wordCount = strconv.Itoa(p.WordCount)
	}
	return Values{
		templates.PlaceholderName:                  p.Name,
		templates.PlaceholderJobTitle:              p.JobTitle,
		templates.PlaceholderCompanyName:           p.CompanyName,
		templates.PlaceholderIndustry:              p.Industry,
		templates.PlaceholderActivityOrAchievement: p.ActivityOrAchievement,
		templates.PlaceholderMutualConnection:      p.MutualConnection,
		templates.PlaceholderAdditionalContext:     p.AdditionalContext,
		templates.PlaceholderURLs:                  linksBlock,
		templates.PlaceholderWordCount:             wordCount,
	}
}

// Render replaces every {{token}} in text in a single pass. Blank or unknown
// values become outreach.NotAvailable. Substituted values are not scanned
// again, so braces inside profile data are left as written.
func Render(text string, vals Values) string {
	return tokenPattern.ReplaceAllStringFunc(text, func(tok string) string {
		name := tok[2 : len(tok)-2]
		v := strings.TrimSpace(vals[name])
		if v == "" {
			return outreach.NotAvailable
		}
		return v
	})
}
