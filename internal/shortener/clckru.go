package shortener

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultClckRuEndpoint = "https://clck.ru/--"

// clckRu delegates shortening to the clck.ru service: a GET with the
// original URL returns the short URL as the response body.
type clckRu struct {
	endpoint string
	client   *http.Client
}

func newClckRu(endpoint string) *clckRu {
	if endpoint == "" {
		endpoint = defaultClckRuEndpoint
	}

	return &clckRu{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *clckRu) shorten(ctx context.Context, original string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.endpoint+"?url="+url.QueryEscape(original), nil)
	if err != nil {
		return "", fmt.Errorf("shortener: clckru request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("shortener: clckru call: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("shortener: clckru response: %w", err)
	}

	short := strings.TrimSpace(string(body))

	if resp.StatusCode != http.StatusOK || short == "" {
		return "", fmt.Errorf("shortener: clckru returned status %d", resp.StatusCode)
	}

	return short, nil
}
