// Package catalog is the HTTP client for the upstream catalog API, which
// owns product, variant and image data. The client converts the API's wire
// format into domain types and maps upstream failures onto the service's
// error taxonomy.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/refurbmart/storefront/internal/domain"
	"github.com/refurbmart/storefront/pkg/httpclient"
)

// Doer abstracts the HTTP client so the circuit-breaker wrapper and plain
// retrying client are interchangeable.
// Both httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client calls the catalog API.
type Client struct {
	baseURL    string
	httpClient Doer
}

// NewClient creates a catalog API client rooted at baseURL.
func NewClient(baseURL string, httpClient Doer) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// FilterProducts lists products matching the given filters.
func (c *Client) FilterProducts(ctx context.Context, params FilterParams) ([]domain.Product, error) {
	endpoint := c.baseURL + "/api/products"
	if qs := params.Encode(); qs != "" {
		endpoint += "?" + qs
	}

	var listResp productListResponse
	if err := c.getJSON(ctx, endpoint, &listResp); err != nil {
		return nil, fmt.Errorf("filter products: %w", err)
	}

	products := make([]domain.Product, len(listResp.Products))
	for i, wp := range listResp.Products {
		products[i] = wp.toDomain()
	}
	return products, nil
}

// GetProductBySKU fetches a single product, including its variants.
func (c *Client) GetProductBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	endpoint := c.baseURL + "/api/products/sku/" + url.PathEscape(sku)

	var resp productResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("get product %s: %w", sku, err)
	}

	product := resp.Product.toDomain()
	return &product, nil
}

// GetProductImages fetches the image set for a product.
func (c *Client) GetProductImages(ctx context.Context, productID int64) ([]domain.Image, error) {
	endpoint := fmt.Sprintf("%s/api/products/%d/images", c.baseURL, productID)

	var resp imageListResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("get images for product %d: %w", productID, err)
	}

	images := make([]domain.Image, len(resp.Images))
	for i, wi := range resp.Images {
		images[i] = wi.toDomain()
	}
	return images, nil
}

// Ping verifies the catalog API is reachable. Used by readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create health request: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("call catalog service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return httpclient.ParseResponseError(resp, "catalog")
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("call catalog service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return httpclient.ParseResponseError(resp, "catalog")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}
