package providers

import (
	"context"

	"github.com/meetspot/backend/internal/domain/entities"
)

// EventChannelReviewSubmitted carries completed reviews from the intake
// surface to the preference learner.
const EventChannelReviewSubmitted = "review:submitted"

// EventBus defines the interface for publishing and subscribing to review
// events.
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.ReviewEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ReviewEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}
