package history_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealrag/src/core/product"
	"dealrag/src/storage/history"
)

func TestJSONFileStoreAppendAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "history.json")
	store := history.NewJSONFileStore(path)
	ctx := context.Background()

	first := &history.Exchange{
		ID:        1,
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Query:     "any widget deals?",
		Answer:    "Product info extracted",
		Sources:   "catalog.csv",
		Products: product.Result{
			"Widget": {
				{Category: "Tools", Price: 50, Discount: "10%", DiscountedPrice: 45, Source: "catalog.csv"},
			},
		},
	}
	require.NoError(t, store.Append(ctx, first))

	second := &history.Exchange{
		ID:        2,
		Timestamp: time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC),
		Query:     "how long does shipping take?",
		Answer:    "Three days.",
		Sources:   "faq.txt",
	}
	require.NoError(t, store.Append(ctx, second))

	got, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// newest first
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
	assert.Equal(t, first.Products, got[1].Products)
}

func TestJSONFileStoreListLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	store := history.NewJSONFileStore(path)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, store.Append(ctx, &history.Exchange{ID: i, Query: "q"}))
	}

	got, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(5), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)
}

func TestJSONFileStoreEmpty(t *testing.T) {
	store := history.NewJSONFileStore(filepath.Join(t.TempDir(), "missing.json"))

	got, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestJSONFileStoreRecoversFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := history.NewJSONFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, &history.Exchange{ID: 7, Query: "q"}))

	got, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].ID)
}
