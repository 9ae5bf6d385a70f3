package infrastructure

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"prepdash/internal/features/motivation/domain"
)

const (
	assistantName         = "Placement Motivation Coach"
	assistantInstructions = "You write short, encouraging messages for students preparing for placements."
	defaultAssistantModel = "gpt-4o-mini"
)

// openAISessionClient maps sessions onto the OpenAI Assistants API: a session
// is a thread, a query is a message plus a run on that thread.
type openAISessionClient struct {
	baseURL      string
	model        string
	pollInterval time.Duration
	logger       *zap.Logger

	mu sync.Mutex
	// assistant ids per credential, created once per process
	assistantIDs map[string]string
}

// NewOpenAISessionClient creates a SessionClient backed by OpenAI assistants.
// The credential handed to each call is used as the API key.
func NewOpenAISessionClient(baseURL, model string, logger *zap.Logger) SessionClient {
	if model == "" {
		model = defaultAssistantModel
	}
	return &openAISessionClient{
		baseURL:      baseURL,
		model:        model,
		pollInterval: time.Second,
		logger:       logger,
		assistantIDs: make(map[string]string),
	}
}

func (c *openAISessionClient) client(credential string) (*openai.Client, error) {
	if credential == "" {
		return nil, domain.ErrMissingCredential
	}
	cfg := openai.DefaultConfig(credential)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	return openai.NewClientWithConfig(cfg), nil
}

// CreateSession creates a new thread tagged with the learner's display name.
func (c *openAISessionClient) CreateSession(ctx context.Context, displayName, credential string) (string, error) {
	client, err := c.client(credential)
	if err != nil {
		return "", err
	}
	thread, err := client.CreateThread(ctx, openai.ThreadRequest{
		Metadata: map[string]any{"display_name": displayName},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create thread: %w", err)
	}
	c.logger.Debug("motivation session created", zap.String("thread", thread.ID))
	return thread.ID, nil
}

// Query adds userText to the thread, runs the assistant with the fulfillment
// prompt as run instructions and returns the reply produced by that run.
func (c *openAISessionClient) Query(ctx context.Context, sessionID, userText, credential string, opts domain.QueryOptions) (string, error) {
	client, err := c.client(credential)
	if err != nil {
		return "", err
	}
	assistantID, err := c.getOrCreateAssistant(ctx, client, credential)
	if err != nil {
		return "", err
	}

	if _, err := client.CreateMessage(ctx, sessionID, openai.MessageRequest{
		Role:    "user",
		Content: userText,
	}); err != nil {
		return "", fmt.Errorf("failed to add message to thread: %w", err)
	}

	temperature := float32(opts.Temperature)
	run, err := client.CreateRun(ctx, sessionID, openai.RunRequest{
		AssistantID:         assistantID,
		Instructions:        opts.FulfillmentPrompt,
		Temperature:         &temperature,
		MaxCompletionTokens: opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for run.Status == openai.RunStatusQueued || run.Status == openai.RunStatusInProgress {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
		run, err = client.RetrieveRun(ctx, sessionID, run.ID)
		if err != nil {
			return "", fmt.Errorf("failed to retrieve run status: %w", err)
		}
	}
	if run.Status != openai.RunStatusCompleted {
		return "", fmt.Errorf("run did not complete successfully, status: %s", run.Status)
	}

	limit := 10
	order := "desc"
	messages, err := client.ListMessage(ctx, sessionID, &limit, &order, nil, nil, &run.ID)
	if err != nil {
		return "", fmt.Errorf("failed to list messages: %w", err)
	}
	for _, msg := range messages.Messages {
		if msg.Role != "assistant" {
			continue
		}
		var parts []string
		for _, content := range msg.Content {
			if content.Text != nil {
				parts = append(parts, content.Text.Value)
			}
		}
		return strings.TrimSpace(strings.Join(parts, "\n")), nil
	}
	return "", nil
}

// getOrCreateAssistant reuses an assistant with our name if the account has one.
func (c *openAISessionClient) getOrCreateAssistant(ctx context.Context, client *openai.Client, credential string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id, ok := c.assistantIDs[credential]; ok {
		return id, nil
	}

	list, err := client.ListAssistants(ctx, nil, nil, nil, nil)
	if err != nil {
		return "", fmt.Errorf("failed to list assistants: %w", err)
	}
	for _, asst := range list.Assistants {
		if asst.Name != nil && *asst.Name == assistantName {
			c.assistantIDs[credential] = asst.ID
			return asst.ID, nil
		}
	}

	name, instructions := assistantName, assistantInstructions
	created, err := client.CreateAssistant(ctx, openai.AssistantRequest{
		Name:         &name,
		Instructions: &instructions,
		Model:        c.model,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create assistant: %w", err)
	}
	c.logger.Info("motivation assistant created", zap.String("assistant", created.ID))
	c.assistantIDs[credential] = created.ID
	return created.ID, nil
}
