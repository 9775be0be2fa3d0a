package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/recall/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator using OpenAI-compatible chat APIs.
type Generator struct {
	client llms.Model
	logger *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.GeneratorHost),
		openai.WithToken("none"),
		openai.WithModel(config.GeneratorModel),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client: client,
		logger: slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewGenerator creates a new answer generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// GenerateAnswer answers the query from the retrieved passages, using the
// instruction template that matches the confidence tier.
func (g *Generator) GenerateAnswer(ctx context.Context, query string, passages []string, tier ai.ConfidenceTier) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(promptForTier(tier)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildUserMessage(query, passages)),
			},
		},
	}

	response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(0.2))
	if err != nil {
		g.logger.Error("failed to generate answer", "tier", tier, "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		g.logger.Warn("no choices returned from model")
		return "", nil
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}

// promptForTier selects the instruction template for a confidence tier.
func promptForTier(tier ai.ConfidenceTier) string {
	switch tier {
	case ai.TierHigh:
		return highConfidencePrompt
	case ai.TierMedium:
		return mediumConfidencePrompt
	default:
		return lowConfidencePrompt
	}
}

// buildUserMessage renders the numbered passages followed by the question.
func buildUserMessage(query string, passages []string) string {
	var sb strings.Builder
	sb.WriteString("Context passages:\n\n")
	if len(passages) == 0 {
		sb.WriteString("(none)\n")
	}
	for i, passage := range passages {
		fmt.Fprintf(&sb, "[%d] %s\n\n", i+1, passage)
	}
	sb.WriteString("Question: ")
	sb.WriteString(query)
	return sb.String()
}
