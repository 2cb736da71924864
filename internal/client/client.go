// Package client is the HTTP client side of crmstock, used by cs-import
// to feed record batches into a running server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"crmstock/internal/records"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(cfg *Config) *Client {
	return &Client{
		BaseURL: strings.TrimRight(cfg.ServerURL, "/"),
		HTTP:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

// Batch is the on-disk import format: one JSON file carrying any mix of
// customers and products.
type Batch struct {
	Customers []records.Customer `json:"customers,omitempty"`
	Products  []records.Product  `json:"products,omitempty"`
}

func LoadBatch(path string) (*Batch, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var batch Batch
	if err := json.Unmarshal(b, &batch); err != nil {
		return nil, fmt.Errorf("parse batch %s: %w", path, err)
	}
	return &batch, nil
}

type createResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// post sends one record and returns the server-assigned id.
func (c *Client) post(ctx context.Context, path string, rec any) (int64, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var out createResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("POST %s: status %d: %w", path, resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("POST %s: status %d: %s", path, resp.StatusCode, out.Error)
	}
	return out.ID, nil
}

func (c *Client) CreateCustomer(ctx context.Context, rec records.Customer) (int64, error) {
	rec.ID = 0 // ids come from the server's allocator
	return c.post(ctx, "/customers", rec)
}

func (c *Client) CreateProduct(ctx context.Context, rec records.Product) (int64, error) {
	rec.ID = 0
	return c.post(ctx, "/products", rec)
}
