package infrastructure

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiReplier answers chat turns with Google's Gemini API.
type GeminiReplier struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiReplier creates a Gemini-backed Replier.
func NewGeminiReplier(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiReplier, error) {
	return newGeminiReplier(ctx, apiKey, model, genai.HTTPOptions{}, logger)
}

func newGeminiReplier(ctx context.Context, apiKey, model string, httpOptions genai.HTTPOptions, logger *zap.Logger) (*GeminiReplier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: httpOptions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiReplier{client: client, model: model, logger: logger}, nil
}

// GenerateChatReply sends userText alone, with systemInstruction as the
// system prompt.
func (g *GeminiReplier) GenerateChatReply(ctx context.Context, userText, systemInstruction string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(userText, genai.RoleUser),
	}
	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	if result == nil {
		return "", nil
	}
	g.logger.Debug("gemini reply received", zap.String("model", g.model), zap.Int("candidates", len(result.Candidates)))
	return strings.TrimSpace(result.Text()), nil
}
