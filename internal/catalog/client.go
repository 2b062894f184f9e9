package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jpillora/backoff"
	"go.uber.org/zap"

	"github.com/altmart/gocart/internal/domain"
	"github.com/altmart/gocart/internal/port"
)

const DefaultBaseURL = "https://fakestoreapi.com"

const maxAttempts = 3

// fallback list served when the categories endpoint is unreachable
var fallbackCategories = []string{"Electronics", "Clothing", "Jewelery", "Home"}

// Client talks to the remote product catalog. Responses are mapped into
// enriched domain records; transient failures are retried with jittered
// exponential backoff.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.SugaredLogger
}

var _ port.Catalog = (*Client)(nil)

func New(baseURL string, log *zap.SugaredLogger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	body, err := c.get(ctx, "/products")
	if err != nil {
		return nil, fmt.Errorf("get /products: %w", err)
	}

	var raws []rawProduct
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	products := make([]domain.Product, 0, len(raws))
	for _, raw := range raws {
		products = append(products, mapListProduct(raw))
	}

	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	body, err := c.get(ctx, "/products/"+id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("get /products/%s: %w", id, err)
	}

	// the API answers 200 with an empty body for unknown ids
	if len(body) == 0 || string(body) == "null" {
		return domain.Product{}, port.ErrProductNotFound
	}

	var raw rawProduct
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.Product{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return mapDetailProduct(raw), nil
}

// Categories returns the catalog's category labels, capitalized. A failure
// falls back to a static list rather than erroring: category chips are
// decoration, not data.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/products/categories")
	if err != nil {
		c.log.Warnw("categories fetch failed, using fallback", "error", err)
		return fallbackCategories, nil
	}

	var categories []string
	if err := json.Unmarshal(body, &categories); err != nil {
		c.log.Warnw("categories response malformed, using fallback", "error", err)
		return fallbackCategories, nil
	}

	out := make([]string, 0, len(categories))
	for _, cat := range categories {
		out = append(out, capitalize(cat))
	}

	return out, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	retry := backoff.Backoff{Min: 200 * time.Millisecond, Max: 2 * time.Second, Jitter: true}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		body, retryable, err := c.getOnce(ctx, path)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable || attempt == maxAttempts {
			break
		}

		c.log.Debugw("catalog request failed, retrying", "path", path, "attempt", attempt, "error", err)
		select {
		case <-time.After(retry.Duration()):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

func (c *Client) getOnce(ctx context.Context, path string) (_ []byte, retryable bool, _ error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, false, fmt.Errorf("http.NewRequest: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("http.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, port.ErrProductNotFound
	}
	if resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("status %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("io.ReadAll: %w", err)
	}

	return body, false, nil
}
