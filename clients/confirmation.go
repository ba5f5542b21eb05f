package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"salonbook/models"
)

// ConfirmationClient calls the confirmation service.
type ConfirmationClient struct {
	baseClient
}

func NewConfirmationClient(baseURL string, timeout time.Duration) *ConfirmationClient {
	return &ConfirmationClient{baseClient: newBaseClient("confirmation", baseURL, timeout)}
}

func (c *ConfirmationClient) Confirm(ctx context.Context, req models.ConfirmRequest) (*models.ConfirmResult, error) {
	var res models.ConfirmResult
	if err := c.do(ctx, http.MethodPost, "/confirm", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Exists reports whether a confirmed booking holds the claimed unit.
func (c *ConfirmationClient) Exists(ctx context.Context, claim models.SlotClaim) (bool, error) {
	q := url.Values{}
	q.Set("user_id", strconv.Itoa(claim.ClaimantID))
	q.Set("master_id", strconv.Itoa(claim.MasterID))
	q.Set("date", claim.Date)
	q.Set("time", claim.Time)

	var resp struct {
		Exists bool `json:"exists"`
	}
	if err := c.do(ctx, http.MethodGet, "/booking_lookup?"+q.Encode(), nil, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}
