package llmclient

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/param"
	"github.com/openai/openai-go/v3/shared"
)

// OpenAIClient implements Client via the OpenAI SDK, grounded on the
// teacher's internal/llm/openaiadapter message-conversion and
// response-parsing conventions.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient builds an OpenAIClient for the given model id.
func NewOpenAIClient(client *openai.Client, model string) *OpenAIClient {
	return &OpenAIClient{client: client, model: model}
}

func (o *OpenAIClient) buildParams(req Request) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	for _, m := range req.Messages {
		if m.Role == "assistant" {
			messages = append(messages, openai.AssistantMessage(m.Content))
		} else {
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(o.model),
		Messages: messages,
	}
	if req.Temperature > 0 {
		params.Temperature = param.NewOpt(req.Temperature)
	}
	if req.JSONMode {
		jsonObjParam := shared.NewResponseFormatJSONObjectParam()
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{OfJSONObject: &jsonObjParam}
	}
	return params
}

func (o *OpenAIClient) Generate(ctx context.Context, req Request) (*Response, error) {
	params := o.buildParams(req)
	result, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai generate content: %w", err)
	}
	return convertChatCompletion(result), nil
}

// GenerateStream falls back to a single non-streaming call and then
// replays the full content through onChunk: the teacher's OpenAI
// adapter never exercises the SDK's streaming endpoint (only the
// Anthropic adapter does), so this keeps the same non-streaming
// request/response shape rather than guessing at an unverified
// streaming call pattern.
func (o *OpenAIClient) GenerateStream(ctx context.Context, req Request, onChunk StreamFunc) (*Response, error) {
	resp, err := o.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if onChunk != nil && resp.Content != "" {
		onChunk(resp.Content)
	}
	return resp, nil
}

func convertChatCompletion(result *openai.ChatCompletion) *Response {
	resp := &Response{}
	if result == nil || len(result.Choices) == 0 {
		return resp
	}
	choice := result.Choices[0]
	resp.Content = choice.Message.Content
	resp.StopReason = choice.FinishReason
	resp.Usage = Usage{
		InputTokens:  int(result.Usage.PromptTokens),
		OutputTokens: int(result.Usage.CompletionTokens),
	}
	return resp
}
