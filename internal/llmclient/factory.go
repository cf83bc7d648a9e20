package llmclient

import (
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaisdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/sirupsen/logrus"
)

// New builds a Client for the named provider ("anthropic" or
// "openai"), reading the matching API key from the environment the
// same way the teacher's cmd/root.go wires its SDK clients.
func New(provider, model string, logger *logrus.Logger) (Client, error) {
	switch provider {
	case "", "anthropic":
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
		}
		client := anthropic.NewClient(anthropicoption.WithAPIKey(key))
		return NewAnthropicClient(client, model, logger), nil
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		client := openaisdk.NewClient(option.WithAPIKey(key))
		return NewOpenAIClient(&client, model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
