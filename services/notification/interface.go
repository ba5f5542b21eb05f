package notification

import (
	"context"
	"time"

	"salonbook/models"
)

// RelayService queues notifications for subscribed users until they poll them.
type RelayService interface {
	Subscribe(ctx context.Context, userID int, callbackURL string) error
	Unsubscribe(ctx context.Context, userID int, callbackURL string) error
	// Send reports false when the user has no subscription; nothing is queued then.
	Send(ctx context.Context, userID int, eventType, message string, data map[string]any) (bool, error)
	// Broadcast returns the number of recipients.
	Broadcast(ctx context.Context, eventType, message string, data map[string]any) (int, error)
	// Poll waits up to wait for messages and drains them; an empty result means it timed out.
	Poll(ctx context.Context, userID int, wait time.Duration) ([]models.RelayMessage, error)
	Status(ctx context.Context, userID int) (*models.RelayStatus, error)
	Stats(ctx context.Context) (*models.RelayStats, error)

	BookingCreated(ctx context.Context, event models.BookingCreatedEvent) error
	BookingUpdated(ctx context.Context, event models.BookingUpdatedEvent) error
}

// Store holds subscriptions and per-user mailboxes.
type Store interface {
	Subscribe(ctx context.Context, userID int, callbackURL string) error
	Unsubscribe(ctx context.Context, userID int, callbackURL string) error
	Subscriptions(ctx context.Context, userID int) (int, error)
	Subscribers(ctx context.Context) ([]int, error)
	Enqueue(ctx context.Context, userID int, msg models.RelayMessage) error
	Pending(ctx context.Context, userID int) (int, error)
	// Drain returns and removes every queued message of the user, oldest first.
	Drain(ctx context.Context, userID int) ([]models.RelayMessage, error)
}

// DefaultRelayService is the production implementation.
type DefaultRelayService struct {
	Store        Store
	MaxWait      time.Duration
	PollInterval time.Duration
	Clock        func() time.Time
}

func NewRelayService(store Store, maxWait time.Duration) *DefaultRelayService {
	return &DefaultRelayService{Store: store, MaxWait: maxWait, PollInterval: time.Second}
}

func (s *DefaultRelayService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
