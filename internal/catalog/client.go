// =============================================================================
// Sales Analytics - Product Catalog Client
// =============================================================================
//
// This module fetches product metadata from the external product catalog API
// (DummyJSON-compatible) and builds the id-keyed mapping the enrichment step
// consumes.
//
// FAILURE POLICY:
//   The catalog is a best-effort collaborator. Any failure (network error,
//   non-200 status, malformed body) is returned to the caller, who degrades
//   to an empty mapping so enrichment still completes with api_match=false
//   for every record. A partial result is never returned.
//
// =============================================================================

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/retailops/sales-analytics/internal/config"
	"github.com/retailops/sales-analytics/internal/types"
)

// Client talks to the product catalog API.
type Client struct {
	baseURL    string
	limit      int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a catalog client from configuration. The timeout applies
// to the whole request including body read.
func NewClient(cfg config.CatalogConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		limit:   cfg.Limit,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}
}

// productsResponse mirrors the catalog API envelope.
type productsResponse struct {
	Products []types.CatalogProduct `json:"products"`
}

// FetchProducts retrieves the product list from the catalog API. On any
// failure it returns a nil slice and the error; it never returns a partial
// list.
func (c *Client) FetchProducts(ctx context.Context) ([]types.CatalogProduct, error) {
	url := fmt.Sprintf("%s/products?limit=%d", c.baseURL, c.limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog API returned status %d", resp.StatusCode)
	}

	var body productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	c.logger.Info("fetched product catalog", "products", len(body.Products))
	return body.Products, nil
}

// BuildMapping converts the fetched product list into the id-keyed mapping
// used for enrichment. An empty or nil product list yields an empty mapping,
// which downstream treats as "enrich nothing, mark all unmatched".
func BuildMapping(products []types.CatalogProduct) map[int]types.ProductInfo {
	mapping := make(map[int]types.ProductInfo, len(products))
	for _, p := range products {
		mapping[p.ID] = types.ProductInfo{
			Category: p.Category,
			Brand:    p.Brand,
			Rating:   p.Rating,
		}
	}
	return mapping
}
