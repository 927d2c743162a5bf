package httpds

import (
	"context"
	"fmt"
	"io"
)

// Source downloads one vendor table.
type Source struct {
	client *Client
	url    string
}

// NewSource returns a Source fetching url through c.
func NewSource(c *Client, url string) *Source { return &Source{client: c, url: url} }

// Name returns the URL.
func (s *Source) Name() string { return s.url }

// Open GETs the URL. Any non-2xx final status is an error.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %s", s.url, resp.Status)
	}
	return resp.Body, nil
}
