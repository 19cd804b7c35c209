package assistant

import (
	"context"
	"fmt"

	"dealrag/src/ollama"
	"dealrag/src/storage/weaviate"
)

// SearchConfig carries the retrieval settings from configuration.
type SearchConfig struct {
	ClassName      string
	EmbeddingModel string
	TopK           int
	Hybrid         bool
	Alpha          float32
}

type searchService struct {
	weaviateSDK  *weaviate.SDK
	ollamaClient *ollama.Client
	cfg          SearchConfig
}

func NewSearchService(weaviateSDK *weaviate.SDK, ollamaClient *ollama.Client, cfg SearchConfig) SearchService {
	return &searchService{
		weaviateSDK:  weaviateSDK,
		ollamaClient: ollamaClient,
		cfg:          cfg,
	}
}

func (s *searchService) Search(ctx context.Context, query string, topK int) ([]Chunk, error) {
	if topK <= 0 {
		topK = s.cfg.TopK
	}

	embedding, err := s.ollamaClient.GetEmbedding(ctx, s.cfg.EmbeddingModel, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get query embedding: %w", err)
	}

	fields := []string{"content", "source"}

	var results []weaviate.QueryResult
	if s.cfg.Hybrid {
		results, err = s.weaviateSDK.QueryHybrid(ctx, s.cfg.ClassName, embedding, weaviate.HybridConfig{
			Query:  query,
			Alpha:  s.cfg.Alpha,
			Fields: fields,
			Limit:  topK,
		})
	} else {
		results, err = s.weaviateSDK.QueryVectors(ctx, s.cfg.ClassName, embedding, weaviate.QueryConfig{
			Fields: fields,
			Limit:  topK,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search weaviate: %w", err)
	}

	chunks := make([]Chunk, 0, len(results))
	for _, result := range results {
		chunk := Chunk{Score: result.Score}
		if content, ok := result.Properties["content"].(string); ok {
			chunk.Content = content
		}
		if source, ok := result.Properties["source"].(string); ok {
			chunk.Source = source
		}
		chunks = append(chunks, chunk)
	}

	return chunks, nil
}
