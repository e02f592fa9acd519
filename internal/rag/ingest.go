package rag

import (
	"context"
	"fmt"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"github.com/zebmuhammad/car-maintenance-chat-project/internal/chromemdb"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/config"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/embedding"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/helper"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/models"
)

// RebuildIndex replaces the persisted vector index with a fresh one built
// from the given records: combine, chunk, embed, insert. The old index is
// deleted before the new one exists, so queries racing a rebuild may see a
// missing or partial index.
func RebuildIndex(ctx context.Context, cfg *config.Config, embedder *embeddings.EmbedderImpl, records []models.MaintenanceRecord) error {
	chunks := embedding.SplitRecords(records, cfg.Retrieval.ChunkSize, cfg.Retrieval.ChunkOverlap)
	if len(chunks) == 0 {
		return fmt.Errorf("no chunks produced from %d records", len(records))
	}
	log.Info().Int("chunks", len(chunks)).Msg("Prepared chunks for embedding")

	store, err := chromemdb.Reset(cfg.Vector.Path, cfg.Vector.Collection)
	if err != nil {
		return fmt.Errorf("resetting vector store: %v", err)
	}

	docs := make([]chromem.Document, 0, len(chunks))
	for _, chunk := range chunks {
		emb, err := embedder.EmbedQuery(ctx, chunk.Content)
		if err != nil {
			return fmt.Errorf("embedding chunk %d of row %d: %v", chunk.ChunkID, chunk.RowID, err)
		}
		id, err := helper.GenerateUUID()
		if err != nil {
			return err
		}
		docs = append(docs, chromem.Document{
			ID:      id,
			Content: chunk.Content,
			Metadata: map[string]string{
				"row":   fmt.Sprintf("%d", chunk.RowID),
				"chunk": fmt.Sprintf("%d", chunk.ChunkID),
			},
			Embedding: emb,
		})
	}

	if err := store.CreateDocs(ctx, docs); err != nil {
		return fmt.Errorf("storing documents: %v", err)
	}

	log.Info().Int("documents", len(docs)).Msg("Added documents to vector database")
	return nil
}
