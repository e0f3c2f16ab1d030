package messaging

import (
	"context"

	"github.com/gallerium/marketplace-v2/internal/domain"
)

// EventHandler is called for every market event delivered by the broker.
// Returning an error causes the message to be redelivered.
type EventHandler func(ctx context.Context, event *domain.MarketEvent) error

// Subscriber defines the interface for consuming market events from the broker
//
//go:generate mockgen -source=subscriber.go -destination=../mocks/subscriber.go -package=mocks -mock_names=Subscriber=MockSubscriber
type Subscriber interface {
	// Subscribe starts delivering events to the handler until ctx is cancelled
	Subscribe(ctx context.Context, handler EventHandler) error
	// Close closes the connection and cleans up resources
	Close()
}
