package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/takumiyoshikawa/ddschema/internal/version"
)

// Client retrieves upstream spec documents. One attempt per integration,
// bounded by the client timeout; no retry or backoff.
type Client struct {
	httpClient  *http.Client
	urlTemplate string
}

func NewClient(urlTemplate string, timeout time.Duration) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		urlTemplate: urlTemplate,
	}
}

// FetchSpec downloads the raw spec document for one integration.
func (c *Client) FetchSpec(ctx context.Context, integration string) ([]byte, error) {
	url := fmt.Sprintf(c.urlTemplate, integration)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", integration, err)
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching spec for %s: %w", integration, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetching spec for %s: unexpected status %s", integration, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading spec for %s: %w", integration, err)
	}
	return data, nil
}
