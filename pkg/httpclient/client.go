package httpclient

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds every outbound call made through NewStandardClient
const DefaultTimeout = 30 * time.Second

// Client defines an interface for making HTTP requests.
// Callers build requests with http.NewRequestWithContext so cancellation flows through.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// StandardHTTPClient wraps the standard http.Client
type StandardHTTPClient struct {
	client *http.Client
}

// NewStandardClient creates a new HTTP client with default settings
func NewStandardClient() Client {
	return NewClientWithTimeout(DefaultTimeout)
}

// NewClientWithTimeout creates a client with a custom overall timeout.
// Uploads of large CVs over slow links need more than the default.
func NewClientWithTimeout(timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &StandardHTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Do executes an HTTP request
func (c *StandardHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}
