package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	LLM       LLMConfig       `yaml:"llm"`
	Vector    VectorConfig    `yaml:"vector"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Database  DatabaseConfig  `yaml:"database"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type LLMConfig struct {
	BaseURL        string `yaml:"base_url"`
	Key            string `yaml:"key"`
	ChatModel      string `yaml:"chat_model"`
	EmbeddingModel string `yaml:"embedding_model"`
}

type VectorConfig struct {
	Path       string `yaml:"path"`
	Collection string `yaml:"collection"`
}

type RetrievalConfig struct {
	TopK         int `yaml:"top_k"`
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

type DatabaseConfig struct {
	DSN   string `yaml:"dsn"`
	Debug bool   `yaml:"debug"`
}

const (
	defaultAddr           = ":8000"
	defaultChatModel      = "gpt-4"
	defaultEmbeddingModel = "text-embedding-ada-002"
	defaultVectorPath     = "./chromadb"
	defaultCollection     = "car_maintenance"
	defaultTopK           = 5
	defaultChunkSize      = 1000
	defaultChunkOverlap   = 200
)

// LoadConfig reads the yaml config file, then overlays credentials and model
// overrides from the environment. A missing file is not an error; env alone
// is enough to run.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %v", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.LLM.Key = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("OPENAI_CHAT_MODEL"); v != "" {
		c.LLM.ChatModel = v
	}
	if v := os.Getenv("OPENAI_EMBEDDING_MODEL"); v != "" {
		c.LLM.EmbeddingModel = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.DSN = v
	}
}

func (c *Config) applyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = defaultAddr
	}
	if c.LLM.ChatModel == "" {
		c.LLM.ChatModel = defaultChatModel
	}
	if c.LLM.EmbeddingModel == "" {
		c.LLM.EmbeddingModel = defaultEmbeddingModel
	}
	if c.Vector.Path == "" {
		c.Vector.Path = defaultVectorPath
	}
	if c.Vector.Collection == "" {
		c.Vector.Collection = defaultCollection
	}
	if c.Retrieval.TopK == 0 {
		c.Retrieval.TopK = defaultTopK
	}
	if c.Retrieval.ChunkSize == 0 {
		c.Retrieval.ChunkSize = defaultChunkSize
	}
	if c.Retrieval.ChunkOverlap == 0 {
		c.Retrieval.ChunkOverlap = defaultChunkOverlap
	}
}

func (c *Config) Validate() error {
	if c.LLM.Key == "" {
		return fmt.Errorf("llm.key is required (set OPENAI_API_KEY)")
	}
	if c.Retrieval.ChunkOverlap >= c.Retrieval.ChunkSize {
		return fmt.Errorf("retrieval.chunk_overlap (%d) must be smaller than retrieval.chunk_size (%d)",
			c.Retrieval.ChunkOverlap, c.Retrieval.ChunkSize)
	}
	if c.Retrieval.TopK < 1 {
		return fmt.Errorf("retrieval.top_k must be at least 1, got %d", c.Retrieval.TopK)
	}
	return nil
}
