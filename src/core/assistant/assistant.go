// Package assistant ties retrieval, product extraction and generation into
// the question answering flow.
package assistant

import (
	"context"
	"fmt"

	"dealrag/src/core/product"
)

// ProductAnswer is the fixed answer text used when the retrieved context
// contained structured product rows; the records themselves carry the
// information.
const ProductAnswer = "Product info extracted"

// Chunk is a retrieved piece of context.
type Chunk struct {
	Content string  `json:"content"`
	Source  string  `json:"source"`
	Score   float64 `json:"score"`
}

// Answer is the result of a single question.
type Answer struct {
	Query    string         `json:"query"`
	Text     string         `json:"answer"`
	Products product.Result `json:"products,omitempty"`
	Sources  string         `json:"sources"`
	Chunks   []Chunk        `json:"-"`
}

// SearchService retrieves context chunks for a query. A topK of zero or
// less falls back to the configured default.
type SearchService interface {
	Search(ctx context.Context, query string, topK int) ([]Chunk, error)
}

// LLMProvider generates a completion from a system and user prompt.
type LLMProvider interface {
	Generate(ctx context.Context, model, system, prompt string, options map[string]interface{}) (string, error)
}

type Service struct {
	searchSvc SearchService
	llm       LLMProvider
	chatModel string
}

func NewService(searchSvc SearchService, llm LLMProvider, chatModel string) *Service {
	return &Service{
		searchSvc: searchSvc,
		llm:       llm,
		chatModel: chatModel,
	}
}

// Ask retrieves context for the query and answers from it. When the context
// contains product rows, the extracted records are the answer and the model
// is not consulted; otherwise the context is stuffed into the prompt and
// the chat model generates the answer.
func (s *Service) Ask(ctx context.Context, query string) (*Answer, error) {
	chunks, err := s.searchSvc.Search(ctx, query, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve context: %w", err)
	}

	fragments := toFragments(chunks)
	products := product.Extract(fragments)

	answer := &Answer{
		Query:    query,
		Products: products,
		Sources:  product.FormatSources(fragments),
		Chunks:   chunks,
	}

	if len(products) > 0 {
		answer.Text = ProductAnswer
		return answer, nil
	}

	completion, err := s.llm.Generate(ctx, s.chatModel, systemPrompt, buildPrompt(query, chunks), map[string]interface{}{
		"temperature": 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate completion: %w", err)
	}
	answer.Text = completion

	return answer, nil
}

func toFragments(chunks []Chunk) []product.Fragment {
	fragments := make([]product.Fragment, len(chunks))
	for i, c := range chunks {
		fragments[i] = product.Fragment{
			Text:     c.Content,
			Metadata: map[string]interface{}{"source": c.Source},
		}
	}
	return fragments
}
