package assistant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealrag/src/core/assistant"
)

type fakeSearch struct {
	chunks []assistant.Chunk
	err    error
}

func (f *fakeSearch) Search(ctx context.Context, query string, topK int) ([]assistant.Chunk, error) {
	return f.chunks, f.err
}

type fakeLLM struct {
	completion string
	err        error

	calls      int
	lastSystem string
	lastPrompt string
}

func (f *fakeLLM) Generate(ctx context.Context, model, system, prompt string, options map[string]interface{}) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastPrompt = prompt
	return f.completion, f.err
}

func TestAskExtractsProducts(t *testing.T) {
	search := &fakeSearch{chunks: []assistant.Chunk{
		{Content: "Widget, Tools, $50.00, 10%, catalog.csv", Source: "catalog.csv"},
		{Content: "irrelevant text with no commas-structure here", Source: "notes.txt"},
	}}
	llm := &fakeLLM{completion: "should not be used"}

	svc := assistant.NewService(search, llm, "llama3")
	answer, err := svc.Ask(context.Background(), "any widget deals?")
	require.NoError(t, err)

	assert.Equal(t, assistant.ProductAnswer, answer.Text)
	assert.Zero(t, llm.calls, "model must not be consulted when products were extracted")

	records := answer.Products["Widget"]
	require.Len(t, records, 1)
	assert.Equal(t, "Tools", records[0].Category)
	assert.Equal(t, 45.0, records[0].DiscountedPrice)

	assert.Equal(t, "catalog.csv, notes.txt", answer.Sources)
}

func TestAskGeneratesWhenNoProducts(t *testing.T) {
	search := &fakeSearch{chunks: []assistant.Chunk{
		{Content: "shipping takes three days", Source: "faq.txt"},
		{Content: "returns are accepted within 30 days", Source: "faq.txt"},
	}}
	llm := &fakeLLM{completion: "Shipping takes three days."}

	svc := assistant.NewService(search, llm, "llama3")
	answer, err := svc.Ask(context.Background(), "how long does shipping take?")
	require.NoError(t, err)

	assert.Equal(t, "Shipping takes three days.", answer.Text)
	assert.Empty(t, answer.Products)
	assert.Equal(t, "faq.txt", answer.Sources)

	assert.Equal(t, 1, llm.calls)
	assert.Contains(t, llm.lastPrompt, "how long does shipping take?")
	assert.Contains(t, llm.lastPrompt, "shipping takes three days")
	assert.Contains(t, llm.lastPrompt, "returns are accepted within 30 days")
	assert.Contains(t, llm.lastSystem, "concise assistant")
}

func TestAskSearchErrorPropagates(t *testing.T) {
	search := &fakeSearch{err: errors.New("weaviate down")}
	svc := assistant.NewService(search, &fakeLLM{}, "llama3")

	_, err := svc.Ask(context.Background(), "anything")
	assert.ErrorContains(t, err, "failed to retrieve context")
}

func TestAskGenerateErrorPropagates(t *testing.T) {
	search := &fakeSearch{chunks: []assistant.Chunk{{Content: "plain context", Source: "a.txt"}}}
	llm := &fakeLLM{err: errors.New("model unavailable")}
	svc := assistant.NewService(search, llm, "llama3")

	_, err := svc.Ask(context.Background(), "anything")
	assert.ErrorContains(t, err, "failed to generate completion")
}

func TestAskEmptyContext(t *testing.T) {
	search := &fakeSearch{}
	llm := &fakeLLM{completion: "I don't know."}
	svc := assistant.NewService(search, llm, "llama3")

	answer, err := svc.Ask(context.Background(), "anything")
	require.NoError(t, err)

	assert.Equal(t, "I don't know.", answer.Text)
	assert.Equal(t, "", answer.Sources)
}
