package engine

import (
	"context"
	"log"
	"unicode/utf8"

	"github.com/reteki/outreach/internal/llm"
	"github.com/reteki/outreach/internal/outreach"
	"github.com/reteki/outreach/internal/prompt"
)

// NoDraftNotice is shown when the model declines to draft or returns nothing.
const NoDraftNotice = "No se pudo generar un mensaje personalizado con la información disponible. Agrega más datos del perfil e inténtalo de nuevo."

// Draft is the outcome of one generation request.
type Draft struct {
	ShouldGenerate bool   `json:"shouldGenerate"`
	Message        string `json:"message"`
	// Notice is set instead of Message when no safe draft was produced.
	Notice string `json:"notice,omitempty"`
	// Length is the message length in characters; Budget is the channel's
	// soft limit. Messages over budget are reported, never truncated.
	Length     int  `json:"length"`
	Budget     int  `json:"budget"`
	OverBudget bool `json:"overBudget"`
}

// Engine wires composition, generation and extraction together.
type Engine struct {
	Composer  *prompt.Composer
	Generator *Generator
	Extractor *Extractor
}

// New creates an Engine. The same client serves generation and extraction,
// each at its own temperature.
func New(composer *prompt.Composer, client llm.Client, genTemp, extractTemp float64) *Engine {
	return &Engine{
		Composer:  composer,
		Generator: NewGenerator(client, genTemp),
		Extractor: NewExtractor(client, extractTemp),
	}
}

// Compose builds the prompt for a request without calling the model.
func (e *Engine) Compose(ctx context.Context, p outreach.Profile, role outreach.Role, channel outreach.Channel) prompt.Composed {
	return e.Composer.Compose(ctx, p, role, channel)
}

// Draft composes the prompt and asks the model for a message. Provider and
// shape failures come back as *ProviderError or *MalformedResponseError; a
// declined draft is not an error.
func (e *Engine) Draft(ctx context.Context, p outreach.Profile, role outreach.Role, channel outreach.Channel) (Draft, error) {
	composed := e.Composer.Compose(ctx, p, role, channel)

	res, err := e.Generator.Generate(ctx, composed.Prompt, composed.Schema)
	if err != nil {
		return Draft{}, err
	}

	d := Draft{
		ShouldGenerate: res.ShouldGenerate,
		Budget:         channel.Budget(),
	}
	if !res.Drafted() {
		log.Printf("generate: no draft for role=%s channel=%s (shouldGenerate=%v)", role, channel, res.ShouldGenerate)
		d.ShouldGenerate = false
		d.Notice = NoDraftNotice
		return d, nil
	}

	d.Message = res.Message
	d.Length = utf8.RuneCountInString(res.Message)
	d.OverBudget = d.Length > d.Budget
	return d, nil
}

// Extract turns pasted profile text into structured fields.
func (e *Engine) Extract(ctx context.Context, text string) (outreach.Profile, error) {
	return e.Extractor.Extract(ctx, text)
}
