package engine

import (
	"context"
	"fmt"

	"github.com/reteki/outreach/internal/llm"
	"github.com/reteki/outreach/internal/outreach"
	"github.com/reteki/outreach/internal/prompt"
)

const opGenerate = "generate"

// Generator sends composed prompts to the model and validates the answer.
type Generator struct {
	client      llm.Client
	temperature float64
}

// NewGenerator creates a Generator.
func NewGenerator(client llm.Client, temperature float64) *Generator {
	return &Generator{client: client, temperature: temperature}
}

// Generate makes exactly one model call. It returns *ProviderError when the
// call fails and *MalformedResponseError when the answer lacks a boolean
// shouldGenerate or a string message.
func (g *Generator) Generate(ctx context.Context, text string, schema *llm.Schema) (outreach.Result, error) {
	resp, err := g.client.Generate(ctx, llm.Request{
		Prompt:      text,
		Schema:      schema,
		Temperature: g.temperature,
	})
	if err != nil {
		return outreach.Result{}, &ProviderError{Op: opGenerate, Err: err}
	}
	if resp == nil {
		return outreach.Result{}, &ProviderError{Op: opGenerate, Err: fmt.Errorf("empty response")}
	}

	return parseResult(resp.Content)
}

func parseResult(raw string) (outreach.Result, error) {
	p, err := decodePayload(raw)
	if err != nil {
		return outreach.Result{}, malformed(opGenerate, raw, err)
	}
	should, err := p.requireBool(prompt.FieldShouldGenerate)
	if err != nil {
		return outreach.Result{}, malformed(opGenerate, raw, err)
	}
	msg, err := p.requireString(prompt.FieldMessage)
	if err != nil {
		return outreach.Result{}, malformed(opGenerate, raw, err)
	}
	return outreach.Result{ShouldGenerate: should, Message: msg}, nil
}
