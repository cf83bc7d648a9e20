// Package llmclient wraps the two provider SDKs (Anthropic, OpenAI)
// behind one small interface the Planner and the direct code-gen path
// call against, so neither has to know which provider is configured.
package llmclient

import "context"

// Message is one turn in the conversation sent to the model. Role is
// "user" or "assistant"; the system prompt is passed separately on
// Request.
type Message struct {
	Role    string
	Content string
}

// Request describes one generation call.
type Request struct {
	System      string
	Messages    []Message
	Temperature float64
	MaxTokens   int
	JSONMode    bool
}

// Usage reports token accounting for a single call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Response is a completed generation.
type Response struct {
	Content    string
	StopReason string
	Usage      Usage
}

// StreamFunc receives each text chunk as it arrives.
type StreamFunc func(chunk string)

// Client is implemented by AnthropicClient and OpenAIClient.
type Client interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	GenerateStream(ctx context.Context, req Request, onChunk StreamFunc) (*Response, error)
}
