// Package http wraps the HTTP capability consumed by the download pipeline:
// issue a GET request, hand back headers plus a streaming body.
//
// The client is stateless and safe for concurrent use; it carries no retry
// logic and no internal timeout, so deadline policy stays with the caller's
// context.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Response is the streaming result of a GET request. The caller owns Body
// and must close it.
type Response struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Header holds the response headers.
	Header http.Header

	// ContentLength is the declared body size, or -1 when the server did
	// not send a Content-Length header.
	ContentLength int64

	// Body streams the response payload.
	Body io.ReadCloser
}

// Client issues streaming GET requests.
//
// Example:
//
//	client := NewClient()
//	resp, err := client.Get(ctx, "https://example.com/file.pdf")
//	if err != nil {
//	    return err
//	}
//	defer resp.Body.Close()
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a Client with the default transport and a batchdl
// User-Agent header.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
		userAgent:  "batchdl",
	}
}

// Get issues a GET request and returns the response with its body still
// streaming. Transport failures and non-2xx statuses are both reported as
// errors; in the non-2xx case the body is drained and closed here.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: HTTP %d: %s", url, resp.StatusCode, resp.Status)
	}

	return &Response{
		StatusCode:    resp.StatusCode,
		Header:        resp.Header,
		ContentLength: resp.ContentLength,
		Body:          resp.Body,
	}, nil
}
