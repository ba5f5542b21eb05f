package notification

import (
	"context"
	"fmt"
	"time"

	"salonbook/models"
	"salonbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var bookingActionMessages = map[string]string{
	"cancelled":   "Запись отменена",
	"confirmed":   "Запись подтверждена",
	"rescheduled": "Запись перенесена",
}

func (s *DefaultRelayService) Subscribe(ctx context.Context, userID int, callbackURL string) error {
	if userID <= 0 {
		return utils.InvalidInput("user_id required")
	}
	if err := s.Store.Subscribe(ctx, userID, callbackURL); err != nil {
		return utils.Internal("failed to subscribe", err)
	}
	utils.GetLogger().Info("User subscribed", zap.Int("userID", userID), zap.String("callback", callbackURL))
	return nil
}

func (s *DefaultRelayService) Unsubscribe(ctx context.Context, userID int, callbackURL string) error {
	if userID <= 0 {
		return utils.InvalidInput("user_id required")
	}
	if err := s.Store.Unsubscribe(ctx, userID, callbackURL); err != nil {
		return utils.Internal("failed to unsubscribe", err)
	}
	utils.GetLogger().Info("User unsubscribed", zap.Int("userID", userID))
	return nil
}

func (s *DefaultRelayService) Send(ctx context.Context, userID int, eventType, message string, data map[string]any) (bool, error) {
	if userID <= 0 || message == "" {
		return false, utils.InvalidInput("user_id and message required")
	}
	if eventType == "" {
		eventType = "notification"
	}
	return s.deliver(ctx, userID, s.newMessage(eventType, message, data))
}

func (s *DefaultRelayService) Broadcast(ctx context.Context, eventType, message string, data map[string]any) (int, error) {
	if message == "" {
		return 0, utils.InvalidInput("message required")
	}
	if eventType == "" {
		eventType = "broadcast"
	}

	users, err := s.Store.Subscribers(ctx)
	if err != nil {
		return 0, utils.Internal("failed to list subscribers", err)
	}
	msg := s.newMessage(eventType, message, data)
	for _, id := range users {
		msg.ID = uuid.NewString()
		if err := s.Store.Enqueue(ctx, id, msg); err != nil {
			return 0, utils.Internal("failed to queue broadcast", err)
		}
	}
	utils.GetLogger().Info("Broadcast message", zap.String("type", eventType), zap.Int("recipients", len(users)))
	return len(users), nil
}

func (s *DefaultRelayService) Poll(ctx context.Context, userID int, wait time.Duration) ([]models.RelayMessage, error) {
	if wait <= 0 || (s.MaxWait > 0 && wait > s.MaxWait) {
		wait = s.MaxWait
	}
	interval := s.PollInterval
	if interval <= 0 {
		interval = time.Second
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		n, err := s.Store.Pending(ctx, userID)
		if err != nil {
			return nil, utils.Internal("failed to read mailbox", err)
		}
		if n > 0 {
			msgs, err := s.Store.Drain(ctx, userID)
			if err != nil {
				return nil, utils.Internal("failed to drain mailbox", err)
			}
			return msgs, nil
		}

		select {
		case <-ctx.Done():
			return []models.RelayMessage{}, nil
		case <-timer.C:
			return []models.RelayMessage{}, nil
		case <-ticker.C:
		}
	}
}

func (s *DefaultRelayService) Status(ctx context.Context, userID int) (*models.RelayStatus, error) {
	subs, err := s.Store.Subscriptions(ctx, userID)
	if err != nil {
		return nil, utils.Internal("failed to read subscriptions", err)
	}
	pending, err := s.Store.Pending(ctx, userID)
	if err != nil {
		return nil, utils.Internal("failed to read mailbox", err)
	}
	return &models.RelayStatus{Subscribed: subs > 0, Subscriptions: subs, PendingMessages: pending}, nil
}

func (s *DefaultRelayService) Stats(ctx context.Context) (*models.RelayStats, error) {
	users, err := s.Store.Subscribers(ctx)
	if err != nil {
		return nil, utils.Internal("failed to list subscribers", err)
	}
	stats := &models.RelayStats{SubscribedUsers: len(users)}
	for _, id := range users {
		st, err := s.Status(ctx, id)
		if err != nil {
			return nil, err
		}
		stats.TotalSubscriptions += st.Subscriptions
		stats.PendingMessages += st.PendingMessages
	}
	return stats, nil
}

// BookingCreated tells the claimant about the booking and broadcasts a booking_update.
func (s *DefaultRelayService) BookingCreated(ctx context.Context, e models.BookingCreatedEvent) error {
	if e.UserID <= 0 || e.MasterID <= 0 || e.Date == "" || e.Time == "" {
		return utils.InvalidInput("missing required fields")
	}

	_, err := s.deliver(ctx, e.UserID, s.newMessage(models.EventBookingCreated,
		fmt.Sprintf("Запись создана на %s в %s", e.Date, e.Time),
		map[string]any{"booking_id": e.BookingID, "master_id": e.MasterID, "master_name": e.MasterName, "date": e.Date, "time": e.Time}))
	if err != nil {
		return err
	}

	_, err = s.Broadcast(ctx, models.EventBookingUpdate, "Новая запись создана", map[string]any{
		"user_id": e.UserID, "master_id": e.MasterID, "date": e.Date, "time": e.Time, "action": "created",
	})
	if err != nil {
		return err
	}
	utils.GetLogger().Info("Booking created notification sent",
		zap.Int("userID", e.UserID), zap.Int("masterID", e.MasterID), zap.String("date", e.Date), zap.String("time", e.Time))
	return nil
}

func (s *DefaultRelayService) BookingUpdated(ctx context.Context, e models.BookingUpdatedEvent) error {
	if e.BookingID <= 0 || e.UserID <= 0 {
		return utils.InvalidInput("booking_id and user_id required")
	}
	message, ok := bookingActionMessages[e.Action]
	if !ok {
		message = "Запись обновлена"
	}
	data := map[string]any{"booking_id": e.BookingID, "action": e.Action}
	for k, v := range e.Data {
		data[k] = v
	}
	_, err := s.deliver(ctx, e.UserID, s.newMessage("booking_updated", message, data))
	return err
}

func (s *DefaultRelayService) deliver(ctx context.Context, userID int, msg models.RelayMessage) (bool, error) {
	subs, err := s.Store.Subscriptions(ctx, userID)
	if err != nil {
		return false, utils.Internal("failed to read subscriptions", err)
	}
	if subs == 0 {
		utils.GetLogger().Debug("Dropping message for unsubscribed user", zap.Int("userID", userID), zap.String("type", msg.Type))
		return false, nil
	}
	if err := s.Store.Enqueue(ctx, userID, msg); err != nil {
		return false, utils.Internal("failed to queue message", err)
	}
	return true, nil
}

func (s *DefaultRelayService) newMessage(eventType, message string, data map[string]any) models.RelayMessage {
	return models.RelayMessage{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Data:      data,
		Timestamp: s.now().UTC(),
	}
}
