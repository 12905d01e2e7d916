package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"github.com/css-prep/backend/internal/models"
	"github.com/rs/zerolog"
)

// LLMClient is the interface every text-generation backend satisfies.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// Generator turns an LLMClient into a question set provider.
type Generator struct {
	llm     LLMClient
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

func NewGenerator(llm LLMClient, model string, timeout time.Duration, log zerolog.Logger) *Generator {
	return &Generator{llm: llm, model: model, timeout: timeout, log: log}
}

func (g *Generator) ModelName() string {
	return g.model
}

// Generate asks the model for a question set and validates it. A set that
// does not contain exactly req.Count well-formed questions is rejected whole.
func (g *Generator) Generate(ctx context.Context, req models.GenerateRequest) (*models.QuestionSet, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.llm.Generate(ctx, SystemPrompt(), BuildUserPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("generate %s set: %w", req.Subject, err)
	}

	set, err := ParseResponse(resp.Content, req.Count)
	if err != nil {
		return nil, fmt.Errorf("parse %s set: %w", req.Subject, err)
	}
	set.Subject = req.Subject

	g.log.Info().
		Str("subject", req.Subject).
		Str("model", g.model).
		Int("prompt_tokens", resp.PromptTokens).
		Int("output_tokens", resp.OutputTokens).
		Dur("elapsed", time.Since(start)).
		Msg("question set generated")

	return set, nil
}

// ── APIClient (Anthropic SDK) ─────────────────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
	log    zerolog.Logger
}

func NewAPIClient(apiKey, model string, log zerolog.Logger) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &APIClient{client: &client, model: model, log: log}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   8192,
		Temperature: param.NewOpt(0.7),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			wait := time.Duration(1<<uint(attempt)) * time.Second
			c.log.Warn().Dur("wait", wait).Int("attempt", attempt+1).Msg("retrying Anthropic API call")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		c.log.Warn().Err(err).Int("attempt", attempt+1).Msg("Anthropic API attempt failed")
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient (local development) ────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &LLMResponse{
		Content:      buildMockJSON(models.QuestionSetSize),
		PromptTokens: 600,
		OutputTokens: 2400,
	}, nil
}

func buildMockJSON(count int) string {
	topics := []string{
		"the Lahore Resolution", "the Indus Waters Treaty", "the 1973 Constitution",
		"the Objectives Resolution", "the Simla Agreement", "CPEC",
	}

	questions := "["
	for i := 0; i < count; i++ {
		topic := topics[i%len(topics)]
		correct := i % 4

		if i > 0 {
			questions += ","
		}

		options := "["
		for j := 0; j < 4; j++ {
			if j > 0 {
				options += ","
			}
			label := "distractor"
			if j == correct {
				label = "answer"
			}
			options += fmt.Sprintf(`"[Mock] %s option %d (%s)"`, topic, j+1, label)
		}
		options += "]"

		questions += fmt.Sprintf(`{"id":%d,"statement":"[Mock] Which statement about %s is accurate?","options":%s,"correctOptionIndex":%d}`,
			i+1, topic, options, correct)
	}
	questions += "]"

	return fmt.Sprintf(`{"questions":%s}`, questions)
}
