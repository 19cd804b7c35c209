package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"dealrag/src/core/product"
)

// exchangeRow is the gorm model backing the exchanges table.
type exchangeRow struct {
	ID        int64     `gorm:"primaryKey"`
	Timestamp time.Time `gorm:"not null;index"`
	Query     string    `gorm:"not null"`
	Answer    string
	Sources   string
	Products  []byte `gorm:"type:jsonb"`
}

func (exchangeRow) TableName() string {
	return "exchanges"
}

// PostgresStore persists exchanges in PostgreSQL via gorm.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&exchangeRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate exchanges table: %v", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Append(ctx context.Context, exchange *Exchange) error {
	products, err := json.Marshal(exchange.Products)
	if err != nil {
		return fmt.Errorf("failed to marshal products: %w", err)
	}

	row := exchangeRow{
		ID:        exchange.ID,
		Timestamp: exchange.Timestamp,
		Query:     exchange.Query,
		Answer:    exchange.Answer,
		Sources:   exchange.Sources,
		Products:  products,
	}

	result := s.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		return fmt.Errorf("failed to create exchange: %v", result.Error)
	}

	return nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]Exchange, error) {
	var rows []exchangeRow

	query := s.db.WithContext(ctx).Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	result := query.Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list exchanges: %v", result.Error)
	}

	exchanges := make([]Exchange, 0, len(rows))
	for _, row := range rows {
		exchange := Exchange{
			ID:        row.ID,
			Timestamp: row.Timestamp,
			Query:     row.Query,
			Answer:    row.Answer,
			Sources:   row.Sources,
		}
		if len(row.Products) > 0 {
			var products product.Result
			if err := json.Unmarshal(row.Products, &products); err == nil {
				exchange.Products = products
			}
		}
		exchanges = append(exchanges, exchange)
	}

	return exchanges, nil
}
