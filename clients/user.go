package clients

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"salonbook/models"
)

// UserClient calls the user service.
type UserClient struct {
	baseClient
}

func NewUserClient(baseURL string, timeout time.Duration) *UserClient {
	return &UserClient{baseClient: newBaseClient("user", baseURL, timeout)}
}

func (c *UserClient) GetUser(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/user/%d", id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
