package clients

import (
	"context"
	"net/http"
	"time"

	"salonbook/models"
)

// HistoryClient calls the history service.
type HistoryClient struct {
	baseClient
}

func NewHistoryClient(baseURL string, timeout time.Duration) *HistoryClient {
	return &HistoryClient{baseClient: newBaseClient("history", baseURL, timeout)}
}

func (c *HistoryClient) RecordSession(ctx context.Context, req models.SessionRequest) error {
	return c.do(ctx, http.MethodPost, "/add_session", req, nil)
}
