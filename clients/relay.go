package clients

import (
	"context"
	"net/http"
	"time"

	"salonbook/models"
)

// RelayClient calls the notification relay.
type RelayClient struct {
	baseClient
}

func NewRelayClient(baseURL string, timeout time.Duration) *RelayClient {
	return &RelayClient{baseClient: newBaseClient("relay", baseURL, timeout)}
}

// Notify delivers an event for one user. Booking creations go through the relay's
// dedicated endpoint so it can fan out a broadcast; anything else is a direct message.
func (c *RelayClient) Notify(ctx context.Context, userID int, eventType string, payload map[string]any) error {
	body := make(map[string]any, len(payload)+3)
	for k, v := range payload {
		body[k] = v
	}
	body["user_id"] = userID

	if eventType == models.EventBookingCreated {
		return c.do(ctx, http.MethodPost, "/booking_created", body, nil)
	}

	msg, _ := payload["message"].(string)
	if msg == "" {
		msg = eventType
	}
	return c.do(ctx, http.MethodPost, "/send", map[string]any{
		"user_id": userID,
		"type":    eventType,
		"message": msg,
		"data":    payload,
	}, nil)
}
