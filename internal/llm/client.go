package llm

import (
	"context"
	"fmt"

	"github.com/reteki/outreach/internal/config"
)

// Client is the interface for LLM providers.
type Client interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// Request is one structured-output call: the prompt, the JSON shape the
// answer must take, and the sampling temperature.
type Request struct {
	Prompt      string
	Schema      *Schema
	Temperature float64
}

// Response holds the raw text of an LLM completion.
type Response struct {
	Content    string
	Provider   string
	TokensUsed int
}

// StatusError is returned when a provider answers with a non-success HTTP status.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s api status %d: %s", e.Provider, e.Code, e.Body)
}

// NewClient creates an LLM client based on the config provider setting.
// A missing credential for the selected provider is an error.
func NewClient(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case "gemini", "":
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("gemini provider requires GEMINI_API_KEY or config")
		}
		model := cfg.Model
		if model == "" {
			model = DefaultGeminiModel
		}
		return NewGemini(ctx, cfg.GeminiKey, model, cfg.GeminiBaseURL)
	case "anthropic":
		if cfg.AnthropicKey == "" {
			return nil, fmt.Errorf("anthropic provider requires ANTHROPIC_API_KEY or config")
		}
		model := cfg.Model
		if model == "" {
			model = DefaultAnthropicModel
		}
		return NewAnthropic(cfg.AnthropicKey, model), nil
	case "ollama":
		url := cfg.OllamaURL
		if url == "" {
			url = "http://localhost:11434"
		}
		model := cfg.OllamaModel
		if model == "" {
			model = "llama3.2"
		}
		return NewOllama(url, model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}
