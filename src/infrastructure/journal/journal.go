// Package journal decouples answering from history persistence: exchanges
// are published to a topic and a router handler writes them to a store, so
// a slow disk or database never stalls the interactive loop.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/bwmarrin/snowflake"

	"dealrag/src/core/product"
	"dealrag/src/storage/history"
)

// Topic is the pubsub topic exchanges travel on.
const Topic = "exchanges"

// Service publishes exchanges for persistence.
type Service struct {
	publisher message.Publisher
	snowflake *snowflake.Node
}

func NewService(publisher message.Publisher) (*Service, error) {
	// Initialize snowflake node
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %v", err)
	}

	return &Service{
		publisher: publisher,
		snowflake: node,
	}, nil
}

// Record builds an exchange from the answered query and publishes it.
func (s *Service) Record(ctx context.Context, query, answer, sources string, products product.Result) (*history.Exchange, error) {
	exchange := &history.Exchange{
		ID:        s.snowflake.Generate().Int64(),
		Timestamp: time.Now().UTC(),
		Query:     query,
		Answer:    answer,
		Sources:   sources,
		Products:  products,
	}

	payload, err := json.Marshal(exchange)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal exchange: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.publisher.Publish(Topic, msg); err != nil {
		return nil, fmt.Errorf("failed to publish exchange: %w", err)
	}

	return exchange, nil
}

// NewRouter builds a watermill router with the standard middleware chain.
func NewRouter(logger watermill.LoggerAdapter) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, err
	}

	router.AddMiddleware(
		middleware.Recoverer,
		middleware.CorrelationID,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: time.Second,
			Logger:          logger,
		}.Middleware,
	)

	return router, nil
}

// AddPersistHandler subscribes the store to the exchange topic.
func AddPersistHandler(router *message.Router, subscriber message.Subscriber, store history.Store) {
	router.AddNoPublisherHandler(
		"exchange_journal",
		Topic,
		subscriber,
		func(msg *message.Message) error {
			var exchange history.Exchange
			if err := json.Unmarshal(msg.Payload, &exchange); err != nil {
				return fmt.Errorf("failed to unmarshal exchange: %w", err)
			}
			return store.Append(context.Background(), &exchange)
		},
	)
}
