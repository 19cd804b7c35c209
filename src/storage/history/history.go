// Package history persists question/answer exchanges.
package history

import (
	"context"
	"time"

	"dealrag/src/core/product"
)

// Exchange is one logged question/answer round trip.
type Exchange struct {
	ID        int64          `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Query     string         `json:"query"`
	Answer    string         `json:"answer"`
	Sources   string         `json:"sources"`
	Products  product.Result `json:"products"`
}

// Store defines the interface for exchange persistence
type Store interface {
	// Append adds an exchange to the history.
	Append(ctx context.Context, exchange *Exchange) error
	// List returns up to limit exchanges, newest first. A limit of zero or
	// less returns everything.
	List(ctx context.Context, limit int) ([]Exchange, error)
}
