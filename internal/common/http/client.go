// internal/common/http/client.go
// Package http wraps the standard client with a hard per-call timeout, used
// for outbound calls to the external scoring service.
package http

import (
	"net/http"
	"time"
)

type Client struct {
	httpClient *http.Client
}

// NewClient returns a client whose calls are bounded by timeout regardless
// of the request context.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}
