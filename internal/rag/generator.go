package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tmc/langchaingo/llms"

	"github.com/zebmuhammad/car-maintenance-chat-project/internal/config"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/llmservice"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/models"
)

// ErrNoPassages reports a generation attempt with an empty passage set.
var ErrNoPassages = errors.New("rag: no passages to format")

// Generator renders retrieved passages and a question into the fixed
// car-maintenance prompt and invokes the hosted chat model.
type Generator struct {
	llmConfig *config.LLMConfig
}

func NewGenerator(llmConfig *config.LLMConfig) *Generator {
	return &Generator{llmConfig: llmConfig}
}

// Answer returns the model's response verbatim; emphasis-marker cleanup is
// the caller's job. Sampling runs at temperature 0.
func (g *Generator) Answer(ctx context.Context, question string, passages []string) (string, error) {
	formatted, err := formatPassages(passages)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(models.AnswerPromptTemplate, formatted, question)
	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}

	res, err := llmservice.GenerateContent(ctx, g.llmConfig, messages, llms.WithTemperature(0))
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return res.Choices[0].Content, nil
}

// formatPassages joins passages with a blank-line separator, rejecting an
// empty set and passages that are not well-formed text.
func formatPassages(passages []string) (string, error) {
	if len(passages) == 0 {
		return "", ErrNoPassages
	}
	for i, p := range passages {
		if !utf8.ValidString(p) {
			return "", fmt.Errorf("passage %d is not valid text", i)
		}
	}
	return strings.Join(passages, models.PassageSeparator), nil
}
