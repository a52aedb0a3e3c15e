package ports

import (
	"context"

	"github.com/emissiond/emissiond/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishImportEvent(ctx context.Context, event *domain.ImportEvent) error
}

// EventSubscriber subscribes to domain events from a message broker.
type EventSubscriber interface {
	SubscribeImportEvents(ctx context.Context, handler func(ctx context.Context, event *domain.ImportEvent) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
	// Incr atomically increments the integer at key, creating it at zero.
	Incr(ctx context.Context, key string) (int64, error)
}
