package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
)

// Client is the HTTP implementation of Store. Product image paths are
// resolved against the configured CDN base.
type Client struct {
	baseURL string
	cdnURL  string
	http    *http.Client
}

func NewClient(baseURL, cdnURL string) *Client {
	return &Client{
		baseURL: baseURL,
		cdnURL:  cdnURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type listResponse struct {
	Total int               `json:"total"`
	Items []catalog.Product `json:"items"`
}

func (c *Client) List(ctx context.Context) ([]catalog.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/product", nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %v", ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: list products: status %d", ErrRemote, resp.StatusCode)
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: decode product list: %v", ErrRemote, err)
	}

	for i := range list.Items {
		list.Items[i].Image = c.cdnURL + list.Items[i].Image
	}
	return list.Items, nil
}

func (c *Client) Submit(ctx context.Context, o order.Order) (Response, error) {
	body, err := json.Marshal(o)
	if err != nil {
		return Response{}, fmt.Errorf("encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/order", bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%w: submit order: %v", ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, fmt.Errorf("%w: submit order: status %d", ErrRemote, resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("%w: decode order response: %v", ErrRemote, err)
	}
	return out, nil
}
