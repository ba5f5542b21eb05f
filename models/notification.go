package models

import "time"

// Relay event types.
const (
	EventBookingCreated = "booking_created"
	EventBookingUpdate  = "booking_update"
	EventMessage        = "message"
)

// RelayMessage is one queued notification for a user.
type RelayMessage struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// BookingCreatedEvent is what the booking service tells the relay after a confirmed booking.
type BookingCreatedEvent struct {
	BookingID  int64  `json:"booking_id"`
	UserID     int    `json:"user_id"`
	MasterID   int    `json:"master_id"`
	MasterName string `json:"master_name"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

// RelayStatus reports the relay's view of one user.
type RelayStatus struct {
	Subscribed      bool `json:"subscribed"`
	Subscriptions   int  `json:"subscriptions"`
	PendingMessages int  `json:"pending_messages"`
}

// BookingUpdatedEvent announces a change to an existing booking.
type BookingUpdatedEvent struct {
	BookingID int64          `json:"booking_id"`
	UserID    int            `json:"user_id"`
	Action    string         `json:"action"`
	Data      map[string]any `json:"data,omitempty"`
}

// RelayStats summarizes the relay's state.
type RelayStats struct {
	SubscribedUsers    int `json:"total_subscribed_users"`
	TotalSubscriptions int `json:"total_subscriptions"`
	PendingMessages    int `json:"pending_messages"`
}
