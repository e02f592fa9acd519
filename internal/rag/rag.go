// Package rag holds the ingest/retrieve/generate pipeline: rebuilding the
// vector index from tabular records, similarity retrieval, and prompting
// the chat model with the retrieved passages.
package rag

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"github.com/zebmuhammad/car-maintenance-chat-project/internal/chromemdb"
)

// Retriever answers similarity queries against the current vector index.
type Retriever struct {
	store    *chromemdb.VectorDBManager
	embedder *embeddings.EmbedderImpl
}

func NewRetriever(store *chromemdb.VectorDBManager, embedder *embeddings.EmbedderImpl) *Retriever {
	return &Retriever{store: store, embedder: embedder}
}

// Retrieve returns up to k passages most similar to the query. Any failure
// is logged and surfaces as an empty result, never as an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) []string {
	queryEmbedding, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		log.Error().Err(err).Msg("Error embedding query")
		return nil
	}

	passages, err := r.store.Search(ctx, queryEmbedding, k)
	if err != nil {
		log.Error().Err(err).Msg("Error during retrieval")
		return nil
	}
	return passages
}
