package embedding

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/textsplitter"

	"github.com/zebmuhammad/car-maintenance-chat-project/internal/config"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/models"
)

// NewEmbedder creates a new embedder against the configured
// OpenAI-compatible endpoint.
func NewEmbedder(llmConfig *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	opts := []openai.Option{
		openai.WithToken(strings.TrimPrefix(llmConfig.Key, "Bearer ")),
		openai.WithModel(llmConfig.EmbeddingModel),
		openai.WithEmbeddingModel(llmConfig.EmbeddingModel),
	}
	if llmConfig.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(llmConfig.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}
	embedder, err := embeddings.NewEmbedder(llm) // Handle both return values
	if err != nil {
		return nil, err
	}
	return embedder, nil
}

// SplitRecords combines each record into its labeled blob and splits the
// blob into overlapping chunks. Splits prefer whitespace boundaries; no
// chunk exceeds chunkSize characters. Blank rows are skipped with a
// warning, never a failure.
func SplitRecords(records []models.MaintenanceRecord, chunkSize, chunkOverlap int) []models.Chunk {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)

	var chunks []models.Chunk
	for rowID, record := range records {
		if isBlank(record) {
			log.Warn().Int("row", rowID).Msg("Skipping entry with no text")
			continue
		}
		blob := record.Combined()
		parts, err := splitter.SplitText(blob)
		if err != nil {
			log.Warn().Err(err).Int("row", rowID).Msg("Skipping entry that could not be split")
			continue
		}
		for chunkID, part := range parts {
			chunks = append(chunks, models.Chunk{
				Content: part,
				RowID:   rowID,
				ChunkID: chunkID,
			})
		}
	}
	return chunks
}

func isBlank(r models.MaintenanceRecord) bool {
	return strings.TrimSpace(r.Issue) == "" &&
		strings.TrimSpace(r.Symptoms) == "" &&
		strings.TrimSpace(r.Causes) == "" &&
		strings.TrimSpace(r.Solutions) == ""
}
