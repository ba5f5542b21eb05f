package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"salonbook/models"
)

// MasterClient calls the master service.
type MasterClient struct {
	baseClient
}

func NewMasterClient(baseURL string, timeout time.Duration) *MasterClient {
	return &MasterClient{baseClient: newBaseClient("master", baseURL, timeout)}
}

func (c *MasterClient) GetMaster(ctx context.Context, id int) (*models.Master, error) {
	var m models.Master
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/master/%d", id), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *MasterClient) GetSchedule(ctx context.Context, masterID int, date string) (*models.Schedule, error) {
	var s models.Schedule
	path := fmt.Sprintf("/schedule/%d/%s", masterID, url.PathEscape(date))
	if err := c.do(ctx, http.MethodGet, path, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ReserveSlot returns a conflict error when the unit is already claimed.
func (c *MasterClient) ReserveSlot(ctx context.Context, claim models.SlotClaim) error {
	path := fmt.Sprintf("/book_slot/%d/%s/%s", claim.MasterID, url.PathEscape(claim.Date), url.PathEscape(claim.Time))
	return c.do(ctx, http.MethodPost, path, map[string]int{"client_id": claim.ClaimantID}, nil)
}

func (c *MasterClient) ReleaseSlot(ctx context.Context, masterID int, date, tm string) (bool, error) {
	var resp struct {
		Released bool `json:"released"`
	}
	path := fmt.Sprintf("/free_slot/%d/%s/%s", masterID, url.PathEscape(date), url.PathEscape(tm))
	if err := c.do(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return false, err
	}
	return resp.Released, nil
}

// ReleaseClaim frees the unit only while claim.ClaimantID still holds it.
func (c *MasterClient) ReleaseClaim(ctx context.Context, claim models.SlotClaim) (bool, error) {
	var resp struct {
		Released bool `json:"released"`
	}
	path := fmt.Sprintf("/free_slot/%d/%s/%s?client_id=%d",
		claim.MasterID, url.PathEscape(claim.Date), url.PathEscape(claim.Time), claim.ClaimantID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return false, err
	}
	return resp.Released, nil
}
