package llmclient

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/sirupsen/logrus"
)

// AnthropicClient implements Client via the Anthropic SDK, grounded on
// the teacher's internal/llm/anthropicadapter: it always calls the
// streaming endpoint and accumulates the message, since Anthropic
// requires streaming for any request that might run long, and a
// non-streaming caller just discards the chunks.
type AnthropicClient struct {
	client anthropic.Client
	model  string
	logger *logrus.Logger
}

// NewAnthropicClient builds an AnthropicClient for the given model id.
func NewAnthropicClient(client anthropic.Client, model string, logger *logrus.Logger) *AnthropicClient {
	return &AnthropicClient{client: client, model: model, logger: logger}
}

func (a *AnthropicClient) buildParams(req Request) anthropic.MessageNewParams {
	messages := make([]anthropic.MessageParam, 0, len(req.Messages))
	for _, m := range req.Messages {
		block := anthropic.NewTextBlock(m.Content)
		role := anthropic.MessageParamRoleUser
		if m.Role == "assistant" {
			role = anthropic.MessageParamRoleAssistant
		}
		messages = append(messages, anthropic.MessageParam{
			Role:    role,
			Content: []anthropic.ContentBlockParamUnion{block},
		})
	}

	maxTokens := int64(4096)
	if req.MaxTokens > 0 {
		maxTokens = int64(req.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		Messages:  messages,
		MaxTokens: maxTokens,
	}

	system := req.System
	if req.JSONMode {
		system += "\n\nYou must respond with valid JSON only, no other text."
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	return params
}

func (a *AnthropicClient) Generate(ctx context.Context, req Request) (*Response, error) {
	return a.GenerateStream(ctx, req, nil)
}

func (a *AnthropicClient) GenerateStream(ctx context.Context, req Request, onChunk StreamFunc) (*Response, error) {
	params := a.buildParams(req)

	stream := a.client.Messages.NewStreaming(ctx, params)
	message := anthropic.Message{}
	for stream.Next() {
		event := stream.Current()
		if err := message.Accumulate(event); err != nil {
			stream.Close()
			return nil, fmt.Errorf("anthropic streaming accumulate: %w", err)
		}
		if onChunk != nil {
			if delta, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent); ok {
				if textDelta, ok := delta.Delta.AsAny().(anthropic.TextDelta); ok && textDelta.Text != "" {
					onChunk(textDelta.Text)
				}
			}
		}
	}
	if err := stream.Err(); err != nil {
		if a.logger != nil {
			a.logger.WithError(err).Error("anthropic stream failed")
		}
		return nil, fmt.Errorf("anthropic stream: %w", err)
	}

	var content string
	for _, block := range message.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	return &Response{
		Content:    content,
		StopReason: string(message.StopReason),
		Usage: Usage{
			InputTokens:  int(message.Usage.InputTokens),
			OutputTokens: int(message.Usage.OutputTokens),
		},
	}, nil
}
