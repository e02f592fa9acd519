package chromemdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/philippgille/chromem-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCollection = "car_maintenance"

func testDocs() []chromem.Document {
	return []chromem.Document{
		{ID: "a", Content: "Causes: low coolant", Embedding: []float32{1, 0, 0}},
		{ID: "b", Content: "Causes: worn brake pads", Embedding: []float32{0, 1, 0}},
		{ID: "c", Content: "Causes: old battery", Embedding: []float32{0, 0, 1}},
	}
}

func TestSearchReturnsMostSimilarFirst(t *testing.T) {
	ctx := context.Background()
	m, err := NewVectorDBManager(filepath.Join(t.TempDir(), "chromadb"), testCollection)
	require.NoError(t, err)
	require.NoError(t, m.CreateDocs(ctx, testDocs()))

	passages, err := m.Search(ctx, []float32{0.9, 0.1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, passages, 2)
	assert.Equal(t, "Causes: low coolant", passages[0])
}

func TestSearchCapsKAtCollectionSize(t *testing.T) {
	ctx := context.Background()
	m, err := NewVectorDBManager(filepath.Join(t.TempDir(), "chromadb"), testCollection)
	require.NoError(t, err)
	require.NoError(t, m.CreateDocs(ctx, testDocs()))

	passages, err := m.Search(ctx, []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, passages, 3)
}

func TestSearchEmptyCollection(t *testing.T) {
	m, err := NewVectorDBManager(filepath.Join(t.TempDir(), "chromadb"), testCollection)
	require.NoError(t, err)

	passages, err := m.Search(context.Background(), []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, passages)
}

func TestSearchRequiresEmbedding(t *testing.T) {
	m, err := NewVectorDBManager(filepath.Join(t.TempDir(), "chromadb"), testCollection)
	require.NoError(t, err)

	_, err = m.Search(context.Background(), nil, 5)
	assert.Error(t, err)
}

func TestResetDropsExistingDocuments(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chromadb")

	m, err := NewVectorDBManager(path, testCollection)
	require.NoError(t, err)
	require.NoError(t, m.CreateDocs(ctx, testDocs()))
	require.Equal(t, 3, m.Count())

	fresh, err := Reset(path, testCollection)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Count())
}

func TestIndexPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chromadb")

	m, err := NewVectorDBManager(path, testCollection)
	require.NoError(t, err)
	require.NoError(t, m.CreateDocs(ctx, testDocs()))

	reopened, err := NewVectorDBManager(path, testCollection)
	require.NoError(t, err)
	assert.Equal(t, 3, reopened.Count())
}
