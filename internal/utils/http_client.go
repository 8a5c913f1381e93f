package utils

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a resty client preset for a JSON API: base URL, request
// timeout and the JSON Accept header are set once in [NewHTTPClient].
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client for the API at baseURL. A zero timeout
// leaves requests bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPClient{Client: client}
}

// JSONRequest starts a request bound to ctx whose body is sent as JSON.
func (c *HTTPClient) JSONRequest(ctx context.Context, body any) *resty.Request {
	return c.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
}
