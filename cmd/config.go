package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"
	weaviateClient "github.com/weaviate/weaviate-go-client/v4/weaviate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"dealrag/src/core/assistant"
	"dealrag/src/ollama"
	"dealrag/src/storage/history"
	"dealrag/src/storage/weaviate"
)

func settingDefaultConfig() {
	// Enable automatic environment variable binding
	viper.AutomaticEnv()

	// Map environment variables to Viper keys for the backing services
	viper.BindEnv("ollama.url", "OLLAMA_URL")
	viper.BindEnv("weaviate.host", "WEAVIATE_HOST")
	viper.BindEnv("weaviate.scheme", "WEAVIATE_SCHEME")
	viper.BindEnv("postgres.host", "POSTGRES_HOST")
	viper.BindEnv("postgres.port", "POSTGRES_PORT")
	viper.BindEnv("postgres.user", "POSTGRES_USER")
	viper.BindEnv("postgres.password", "POSTGRES_PASSWORD")
	viper.BindEnv("postgres.db", "POSTGRES_DB")
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.shutdown_timeout", "SERVER_SHUTDOWN_TIMEOUT")
	viper.BindEnv("history.backend", "HISTORY_BACKEND")

	// Document set and index
	viper.SetDefault("paths.docs", "data/docs")
	viper.SetDefault("index.class", "CatalogChunk")
	viper.SetDefault("splitter.chunk_size", 500)
	viper.SetDefault("splitter.chunk_overlap", 50)

	// Retrieval
	viper.SetDefault("retriever.top_k", 5)
	viper.SetDefault("retriever.hybrid", false)
	viper.SetDefault("retriever.alpha", 0.75)

	// Models
	viper.SetDefault("models.embedding", "nomic-embed-text")
	viper.SetDefault("models.chat", "llama3")

	// Backing services
	viper.SetDefault("ollama.url", "http://localhost:11434/api")
	viper.SetDefault("weaviate.host", "localhost:8080")
	viper.SetDefault("weaviate.scheme", "http")

	// History persistence
	viper.SetDefault("history.backend", "json")
	viper.SetDefault("history.file", "logs/history.json")
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", "5432")
	viper.SetDefault("postgres.user", "postgres")
	viper.SetDefault("postgres.password", "postgres")
	viper.SetDefault("postgres.db", "dealrag")

	// Server
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.shutdown_timeout", "5s")

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "logs/dealrag.log")
}

func newWeaviateSDK() *weaviate.SDK {
	client := weaviateClient.New(weaviateClient.Config{
		Host:   viper.GetString("weaviate.host"),
		Scheme: viper.GetString("weaviate.scheme"),
	})
	return weaviate.NewSDK(client)
}

func newOllamaClient() *ollama.Client {
	return ollama.NewClient(viper.GetString("ollama.url"), &http.Client{
		Timeout: 120 * time.Second,
	})
}

func newSearchService(sdk *weaviate.SDK, oc *ollama.Client) assistant.SearchService {
	return assistant.NewSearchService(sdk, oc, assistant.SearchConfig{
		ClassName:      viper.GetString("index.class"),
		EmbeddingModel: viper.GetString("models.embedding"),
		TopK:           viper.GetInt("retriever.top_k"),
		Hybrid:         viper.GetBool("retriever.hybrid"),
		Alpha:          float32(viper.GetFloat64("retriever.alpha")),
	})
}

func newHistoryStore() (history.Store, error) {
	switch backend := viper.GetString("history.backend"); backend {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			viper.GetString("postgres.host"),
			viper.GetString("postgres.user"),
			viper.GetString("postgres.password"),
			viper.GetString("postgres.db"),
			viper.GetString("postgres.port"))
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %v", err)
		}
		return history.NewPostgresStore(db)
	case "json":
		return history.NewJSONFileStore(viper.GetString("history.file")), nil
	default:
		return nil, fmt.Errorf("unknown history backend: %s", backend)
	}
}
