package chromemdb

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"
)

const (
	compress = false
)

// VectorDBManager encapsulates the chromem-go database operations. The
// store is a persistent directory holding a single fixed collection;
// embeddings are computed by the caller, so the collection carries no
// embedding function of its own.
type VectorDBManager struct {
	db             *chromem.DB
	collection     *chromem.Collection
	dbPath         string
	collectionName string
}

// NewVectorDBManager opens (or creates) the persistent vector database at
// dbPath and binds the named collection.
func NewVectorDBManager(dbPath, collectionName string) (*VectorDBManager, error) {
	db, err := chromem.NewPersistentDB(dbPath, compress)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %v", err)
	}

	c, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %v", err)
	}

	return &VectorDBManager{
		db:             db,
		collection:     c,
		dbPath:         dbPath,
		collectionName: collectionName,
	}, nil
}

// Reset destroys the persisted index and reopens an empty one. Not safe to
// run concurrently with readers of the same directory; a racing query sees
// a missing or partial index until the rebuild finishes.
func Reset(dbPath, collectionName string) (*VectorDBManager, error) {
	if _, err := os.Stat(dbPath); err == nil {
		if err := os.RemoveAll(dbPath); err != nil {
			return nil, fmt.Errorf("failed to clear database at %s: %v", dbPath, err)
		}
		log.Info().Str("path", dbPath).Msg("Cleared previous vector database")
	}
	return NewVectorDBManager(dbPath, collectionName)
}

// CreateDocs adds the documents, embedding included, to the collection.
func (m *VectorDBManager) CreateDocs(ctx context.Context, documents []chromem.Document) error {
	err := m.collection.AddDocuments(ctx, documents, runtime.NumCPU())
	if err != nil {
		return fmt.Errorf("failed to add documents: %v", err)
	}
	return nil
}

// Search performs a similarity search and returns up to k passages, most
// similar first. k is capped at the collection size; an empty collection
// yields an empty result, not an error.
func (m *VectorDBManager) Search(ctx context.Context, queryEmbedding []float32, k int) ([]string, error) {
	if queryEmbedding == nil {
		return nil, fmt.Errorf("query embedding must be provided")
	}

	if count := m.collection.Count(); count < k {
		k = count
	}
	if k == 0 {
		return nil, nil
	}

	results, err := m.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryEmbedding,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %v", err)
	}

	passages := make([]string, len(results))
	for i, res := range results {
		passages[i] = res.Content
	}
	return passages, nil
}

// Count reports how many documents the collection holds.
func (m *VectorDBManager) Count() int {
	return m.collection.Count()
}
