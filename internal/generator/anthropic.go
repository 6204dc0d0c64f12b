package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Armaqdev/chatbot-messenger/internal/metrics"
)

// ErrEmptyReply is returned when the model responds without any text content.
var ErrEmptyReply = errors.New("generator: model returned no text")

const maxReplyTokens = 1024

// AnthropicGenerator generates replies via the Anthropic Messages API.
type AnthropicGenerator struct {
	client  *anthropic.Client
	model   string
	system  string
	timeout time.Duration
}

// NewAnthropicGenerator creates a generator using the given API key, model id
// and system prompt. Each Generate call is bounded by timeout.
func NewAnthropicGenerator(apiKey, model, system string, timeout time.Duration) *AnthropicGenerator {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicGenerator{
		client:  &client,
		model:   model,
		system:  system,
		timeout: timeout,
	}
}

// Generate produces a reply for the given message text. It fails on provider
// error, timeout, or a response carrying no text.
func (g *AnthropicGenerator) Generate(ctx context.Context, text string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: maxReplyTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	}
	if g.system != "" {
		params.System = []anthropic.TextBlockParam{{Text: g.system}}
	}

	start := time.Now()
	resp, err := g.client.Messages.New(ctx, params)
	metrics.GeneratorLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("anthropic API call: %w", err)
	}

	reply := collectText(resp)
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}

func collectText(resp *anthropic.Message) string {
	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			tb := block.AsText()
			sb.WriteString(tb.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}
