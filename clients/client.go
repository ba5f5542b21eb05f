// Package clients holds the HTTP clients the services use to call each other.
// Transport failures map to utils.KindUpstreamUnavailable; HTTP error statuses map
// to the matching error kind so callers can branch on utils.KindOf.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"salonbook/utils"
)

const maxResponseBytes = 1 << 20

type baseClient struct {
	service string
	baseURL string
	http    *http.Client
}

func newBaseClient(service, baseURL string, timeout time.Duration) baseClient {
	return baseClient{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do sends body as JSON and decodes a 2xx response into out.
func (c baseClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return utils.Internal("failed to encode request", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return utils.Internal("failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return utils.Upstream(fmt.Sprintf("%s service unavailable", c.service), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return utils.Upstream(fmt.Sprintf("%s service unavailable", c.service), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp.StatusCode, data)
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return utils.Upstream(fmt.Sprintf("invalid response from %s service", c.service), err)
		}
	}
	return nil
}

func (c baseClient) statusError(status int, data []byte) error {
	var eb errorBody
	_ = json.Unmarshal(data, &eb)
	msg := eb.Error
	if msg == "" {
		msg = eb.Message
	}
	if msg == "" {
		msg = fmt.Sprintf("%s service returned %d", c.service, status)
	}

	cause := fmt.Errorf("%s service: status %d", c.service, status)
	switch status {
	case http.StatusNotFound:
		return utils.NewAppError(utils.KindNotFound, msg, cause)
	case http.StatusBadRequest:
		return utils.NewAppError(utils.KindInvalidInput, msg, cause)
	case http.StatusConflict:
		return utils.NewAppError(utils.KindConflict, msg, cause)
	default:
		return utils.Upstream(msg, cause)
	}
}

// Ping checks that the service answers its root endpoint.
func (c baseClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/", nil, nil)
}

// Name is the service this client talks to.
func (c baseClient) Name() string {
	return c.service
}
