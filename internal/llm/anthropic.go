package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = "claude-haiku-4-5-20251001"

// messagesAPI is the slice of the Anthropic SDK used here. Tests replace it.
type messagesAPI interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Anthropic calls the Anthropic Messages API. The Messages API has no
// response-schema parameter, so the schema travels as instructions appended
// to the prompt.
type Anthropic struct {
	messages  messagesAPI
	model     string
	maxTokens int64
}

// NewAnthropic creates a new Anthropic API client.
func NewAnthropic(apiKey, model string) *Anthropic {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Anthropic{
		messages:  &client.Messages,
		model:     model,
		maxTokens: 2048,
	}
}

// Generate sends the prompt to the Messages API.
func (a *Anthropic) Generate(ctx context.Context, req Request) (*Response, error) {
	prompt := req.Prompt
	if req.Schema != nil {
		prompt += "\n\n" + req.Schema.Instructions()
	}

	msg, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   a.maxTokens,
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic api: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	content := text.String()
	if req.Schema != nil {
		content = StripFences(content)
	}
	return &Response{
		Content:    content,
		Provider:   "anthropic",
		TokensUsed: int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
	}, nil
}
