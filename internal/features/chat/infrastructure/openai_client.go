package infrastructure

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const defaultOpenAIChatModel = openai.GPT4oMini

// OpenAIReplier answers chat turns with the chat completions API.
type OpenAIReplier struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIReplier creates an OpenAI-backed Replier.
func NewOpenAIReplier(apiKey, baseURL, model string, logger *zap.Logger) (*OpenAIReplier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai chat provider")
	}
	if model == "" {
		model = defaultOpenAIChatModel
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIReplier{client: openai.NewClientWithConfig(cfg), model: model, logger: logger}, nil
}

func (o *OpenAIReplier) GenerateChatReply(ctx context.Context, userText, systemInstruction string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: userText},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
