package llmservice

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/zebmuhammad/car-maintenance-chat-project/internal/config"
)

// call llm
func GenerateContent(ctx context.Context, llmConfig *config.LLMConfig, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := []openai.Option{
		openai.WithToken(strings.TrimPrefix(llmConfig.Key, "Bearer ")),
		openai.WithModel(llmConfig.ChatModel),
	}
	if llmConfig.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(llmConfig.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}

	return llm.GenerateContent(ctx, messages, options...)
}
