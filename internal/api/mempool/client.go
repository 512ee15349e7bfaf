// internal/api/mempool/client.go
package mempool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"crypto-price-tracker/internal/api"
)

const (
	DefaultBaseURL = "https://mempool.space"
	pricesEndpoint = "/api/v1/prices"
	sourceName     = "mempool"
)

// Client - клиент для работы с API mempool.space
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient создает новый клиент mempool.space
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
}

// priceResponse тело ответа /api/v1/prices
type priceResponse struct {
	USD float64 `json:"USD"`
}

// GetBitcoinPrice возвращает текущую цену биткоина в USD
func (c *Client) GetBitcoinPrice(ctx context.Context) (float64, error) {
	apiURL := c.baseURL + pricesEndpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return 0, api.NewNetworkError(sourceName, err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, api.NewNetworkError(sourceName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, api.NewNetworkError(sourceName, err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, api.NewNetworkError(sourceName,
			fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body)))
	}

	var priceResp priceResponse
	if err := json.Unmarshal(body, &priceResp); err != nil {
		return 0, api.NewDecodeError(sourceName,
			fmt.Errorf("failed to parse prices response: %w", err))
	}

	// Нулевая или отрицательная цена означает сломанный ответ
	if priceResp.USD <= 0 {
		return 0, api.NewDecodeError(sourceName,
			fmt.Errorf("invalid USD price: %f", priceResp.USD))
	}

	return priceResp.USD, nil
}
