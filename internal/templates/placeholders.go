package templates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTemplate is returned when a template override would break placeholder resolution.
var ErrInvalidTemplate = errors.New("invalid template")

// Placeholder names recognised inside templates, written as {{name}}.
const (
	PlaceholderName                  = "name"
	PlaceholderJobTitle              = "jobTitle"
	PlaceholderCompanyName           = "companyName"
	PlaceholderIndustry              = "industry"
	PlaceholderActivityOrAchievement = "activityOrAchievement"
	PlaceholderMutualConnection      = "mutualConnection"
	PlaceholderAdditionalContext     = "additionalContext"
	PlaceholderURLs                  = "urls"
	PlaceholderWordCount             = "wordCount"
)

// Placeholders lists every recognised placeholder name.
var Placeholders = []string{
	PlaceholderName,
	PlaceholderJobTitle,
	PlaceholderCompanyName,
	PlaceholderIndustry,
	PlaceholderActivityOrAchievement,
	PlaceholderMutualConnection,
	PlaceholderAdditionalContext,
	PlaceholderURLs,
	PlaceholderWordCount,
}

// IsPlaceholder reports whether name is a recognised placeholder.
func IsPlaceholder(name string) bool {
	for _, p := range Placeholders {
		if p == name {
			return true
		}
	}
	return false
}

// Token returns the literal template token for a placeholder name.
func Token(name string) string {
	return "{{" + name + "}}"
}

// Validate checks that text is non-empty and every double-brace token in it is
// well-formed and names a recognised placeholder.
func Validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: empty template", ErrInvalidTemplate)
	}

	rest := text
	for {
		open := strings.Index(rest, "{{")
		closing := strings.Index(rest, "}}")
		if closing >= 0 && (open < 0 || closing < open) {
			return fmt.Errorf("%w: unmatched \"}}\"", ErrInvalidTemplate)
		}
		if open < 0 {
			return nil
		}

		end := strings.Index(rest[open+2:], "}}")
		if end < 0 {
			return fmt.Errorf("%w: unclosed \"{{\"", ErrInvalidTemplate)
		}
		name := rest[open+2 : open+2+end]
		if !IsPlaceholder(name) {
			return fmt.Errorf("%w: unknown placeholder %q", ErrInvalidTemplate, Token(name))
		}
		rest = rest[open+2+end+2:]
	}
}
