// Package llm provides an optional natural-language summary of enriched
// entities. Summaries are generated after enrichment completes and never
// alter enrichment output.
package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ubmlab/kgenrich/internal/model"
)

// Summarizer generates short markdown abstracts of enriched results
type Summarizer struct {
	client *openai.Client
	model  string
}

// NewSummarizer creates a summarizer from configuration
func NewSummarizer(cfg model.LLMConfig) (*Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("LLM API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	llmModel := cfg.Model
	if llmModel == "" {
		llmModel = openai.GPT4oMini
	}

	return &Summarizer{
		client: openai.NewClientWithConfig(clientConfig),
		model:  llmModel,
	}, nil
}

// Summarize produces a short markdown abstract of one enriched entity
func (s *Summarizer) Summarize(ctx context.Context, result *model.EnrichedResult) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a concise assistant. Summarize the following knowledge-base entity in at most three sentences of plain markdown. Use only the facts provided; do not invent any.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(result),
			},
		},
		MaxTokens: 300,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// BuildPrompt renders an enriched result as a deterministic fact list
func BuildPrompt(result *model.EnrichedResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Identifier: %s\n", result.ID)
	if result.Label != nil {
		fmt.Fprintf(&b, "Label: %s\n", *result.Label)
	}
	if result.Description != nil {
		fmt.Fprintf(&b, "Description: %s\n", *result.Description)
	}
	if len(result.Aliases) > 0 {
		fmt.Fprintf(&b, "Aliases: %s\n", strings.Join(result.Aliases, ", "))
	}

	fields := make([]string, 0, len(result.Fields))
	for name := range result.Fields {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	for _, name := range fields {
		fmt.Fprintf(&b, "%s: %s\n", name, result.Fields[name])
	}

	datasets := make([]string, 0, len(result.Boundaries))
	for name, within := range result.Boundaries {
		if within {
			datasets = append(datasets, name)
		}
	}
	if len(datasets) > 0 {
		sort.Strings(datasets)
		fmt.Fprintf(&b, "Within boundaries: %s\n", strings.Join(datasets, ", "))
	}

	return b.String()
}
