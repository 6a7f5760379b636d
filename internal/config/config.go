// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port" validate:"gt=0,lte=65535"`
}

type DatabaseConfig struct {
	// Backend selects the metadata store implementation.
	Backend  string `yaml:"backend" validate:"oneof=postgres memory"`
	DSN      string `yaml:"dsn" validate:"required_if=Backend postgres"`
	Password string `yaml:"password"`
	Debug    bool   `yaml:"debug"`
}

type StorageConfig struct {
	UploadDir    string `yaml:"upload_dir" validate:"required"`
	VectorDBPath string `yaml:"vector_db_path" validate:"required"`
	Collection   string `yaml:"collection" validate:"required"`
}

type LLMConfig struct {
	BaseURL string `yaml:"base_url" validate:"required,url"`
	// KeyEnv names the environment variable holding the API key; the key
	// itself never lives in the config file.
	KeyEnv string `yaml:"api_key_env"`
	Key    string `yaml:"-"`
	Model  string `yaml:"model" validate:"required"`
}

type RAGConfig struct {
	ChunkSize    int `yaml:"chunk_size" validate:"gt=0"`
	ChunkOverlap int `yaml:"chunk_overlap" validate:"gte=0,ltfield=ChunkSize"`
	TopK         int `yaml:"top_k" validate:"gt=0"`
	MaxDocuments int `yaml:"max_documents" validate:"gt=0"`
	MaxPages     int `yaml:"max_pages" validate:"gt=0"`
	PreviewLen   int `yaml:"preview_len" validate:"gt=0"`
}

type Config struct {
	Server       ServerConfig   `yaml:"server"`
	Database     DatabaseConfig `yaml:"database"`
	Storage      StorageConfig  `yaml:"storage"`
	EmbedLLM     LLMConfig      `yaml:"embed_llm"`
	InferenceLLM LLMConfig      `yaml:"inference_llm"`
	RAG          RAGConfig      `yaml:"rag"`
}

// LoadConfig reads the YAML file at path, applies defaults, resolves API keys
// from the environment (a .env file is honored when present) and validates
// the result.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	cfg.EmbedLLM.Key = resolveKey(cfg.EmbedLLM.KeyEnv)
	cfg.InferenceLLM.Key = resolveKey(cfg.InferenceLLM.KeyEnv)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func resolveKey(envName string) string {
	if envName == "" {
		return ""
	}
	return os.Getenv(envName)
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Backend == "" {
		cfg.Database.Backend = "postgres"
	}
	if cfg.Storage.UploadDir == "" {
		cfg.Storage.UploadDir = "./uploaded_documents"
	}
	if cfg.Storage.VectorDBPath == "" {
		cfg.Storage.VectorDBPath = "./chromemdb"
	}
	if cfg.Storage.Collection == "" {
		cfg.Storage.Collection = "documents"
	}
	if cfg.RAG.ChunkSize == 0 {
		cfg.RAG.ChunkSize = 1000
	}
	if cfg.RAG.ChunkOverlap == 0 {
		cfg.RAG.ChunkOverlap = 200
	}
	if cfg.RAG.TopK == 0 {
		cfg.RAG.TopK = 4
	}
	if cfg.RAG.MaxDocuments == 0 {
		cfg.RAG.MaxDocuments = 20
	}
	if cfg.RAG.MaxPages == 0 {
		cfg.RAG.MaxPages = 1000
	}
	if cfg.RAG.PreviewLen == 0 {
		cfg.RAG.PreviewLen = 200
	}
}
