package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_CHAT_MODEL", "OPENAI_EMBEDDING_MODEL", "DATABASE_URL"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.HTTP.Addr)
	assert.Equal(t, "gpt-4", cfg.LLM.ChatModel)
	assert.Equal(t, "text-embedding-ada-002", cfg.LLM.EmbeddingModel)
	assert.Equal(t, "./chromadb", cfg.Vector.Path)
	assert.Equal(t, "car_maintenance", cfg.Vector.Collection)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.Equal(t, 1000, cfg.Retrieval.ChunkSize)
	assert.Equal(t, 200, cfg.Retrieval.ChunkOverlap)
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "llm:\n  key: file-key\n  chat_model: gpt-4o-mini\nretrieval:\n  top_k: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.LLM.Key)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.ChatModel)
	assert.Equal(t, 4, cfg.Retrieval.TopK)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("OPENAI_CHAT_MODEL", "gpt-4o")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/carchat")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.LLM.Key)
	assert.Equal(t, "gpt-4o", cfg.LLM.ChatModel)
	assert.Equal(t, "postgres://localhost:5432/carchat", cfg.Database.DSN)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: ["), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidateRequiresKey(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	err = cfg.Validate()
	assert.ErrorContains(t, err, "llm.key is required")
}

func TestValidateOverlapSmallerThanSize(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	cfg.LLM.Key = "k"
	cfg.Retrieval.ChunkOverlap = cfg.Retrieval.ChunkSize

	err = cfg.Validate()
	assert.ErrorContains(t, err, "chunk_overlap")
}

func TestValidateOK(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	cfg.LLM.Key = "k"

	assert.NoError(t, cfg.Validate())
}
