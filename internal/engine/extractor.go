package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/reteki/outreach/internal/llm"
	"github.com/reteki/outreach/internal/outreach"
	"github.com/reteki/outreach/internal/prompt"
)

const opExtract = "extract"

// Extractor turns pasted profile text into structured fields.
type Extractor struct {
	client      llm.Client
	temperature float64
}

// NewExtractor creates an Extractor.
func NewExtractor(client llm.Client, temperature float64) *Extractor {
	return &Extractor{client: client, temperature: temperature}
}

// Extract makes exactly one model call. name and jobTitle must be present as
// strings; every other field defaults to "" (or no URLs) when absent.
func (x *Extractor) Extract(ctx context.Context, text string) (outreach.Profile, error) {
	if strings.TrimSpace(text) == "" {
		return outreach.Profile{}, fmt.Errorf("extract: empty text")
	}

	resp, err := x.client.Generate(ctx, llm.Request{
		Prompt:      prompt.ExtractionPrompt(text),
		Schema:      prompt.ProfileSchema(),
		Temperature: x.temperature,
	})
	if err != nil {
		return outreach.Profile{}, &ProviderError{Op: opExtract, Err: err}
	}
	if resp == nil {
		return outreach.Profile{}, &ProviderError{Op: opExtract, Err: fmt.Errorf("empty response")}
	}

	return parseProfile(resp.Content)
}

func parseProfile(raw string) (outreach.Profile, error) {
	p, err := decodePayload(raw)
	if err != nil {
		return outreach.Profile{}, malformed(opExtract, raw, err)
	}

	var prof outreach.Profile
	required := []struct {
		key string
		dst *string
	}{
		{"name", &prof.Name},
		{"jobTitle", &prof.JobTitle},
	}
	for _, f := range required {
		if *f.dst, err = p.requireString(f.key); err != nil {
			return outreach.Profile{}, malformed(opExtract, raw, err)
		}
	}

	optional := []struct {
		key string
		dst *string
	}{
		{"companyName", &prof.CompanyName},
		{"industry", &prof.Industry},
		{"activityOrAchievement", &prof.ActivityOrAchievement},
		{"mutualConnection", &prof.MutualConnection},
		{"additionalContext", &prof.AdditionalContext},
	}
	for _, f := range optional {
		if *f.dst, err = p.optionalString(f.key); err != nil {
			return outreach.Profile{}, malformed(opExtract, raw, err)
		}
	}

	if prof.URLs, err = p.optionalStrings("urls"); err != nil {
		return outreach.Profile{}, malformed(opExtract, raw, err)
	}
	return prof, nil
}
