// internal/api/coingecko/client.go
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"crypto-price-tracker/internal/api"
)

const (
	DefaultBaseURL  = "https://api.coingecko.com/api/v3"
	marketsEndpoint = "/coins/markets"
	sourceName      = "coingecko"

	// Идентификатор Ethereum в данных CoinGecko
	EthereumID = "ethereum"
)

// Client - клиент для работы с API CoinGecko
type Client struct {
	httpClient *http.Client
	baseURL    string
	vsCurrency string
	userAgent  string
}

// NewClient создает новый клиент CoinGecko
func NewClient(baseURL, vsCurrency, userAgent string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if vsCurrency == "" {
		vsCurrency = "usd"
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:    strings.TrimRight(baseURL, "/"),
		vsCurrency: strings.ToLower(vsCurrency),
		userAgent:  userAgent,
	}
}

// MarketRecord запись рыночных данных одной монеты
type MarketRecord struct {
	ID           string  `json:"id"`
	Symbol       string  `json:"symbol"`
	CurrentPrice float64 `json:"current_price"`
}

// GetMarkets возвращает рыночные данные всех монет
func (c *Client) GetMarkets(ctx context.Context) ([]MarketRecord, error) {
	params := url.Values{}
	params.Set("vs_currency", c.vsCurrency)

	apiURL := c.baseURL + marketsEndpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, api.NewNetworkError(sourceName, err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, api.NewNetworkError(sourceName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, api.NewNetworkError(sourceName, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, api.NewNetworkError(sourceName,
			fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body)))
	}

	var records []MarketRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, api.NewDecodeError(sourceName,
			fmt.Errorf("failed to parse markets response: %w", err))
	}

	return records, nil
}

// GetEthereumPrice возвращает текущую цену Ethereum.
// Ищет в рыночных данных запись с id == "ethereum".
func (c *Client) GetEthereumPrice(ctx context.Context) (float64, error) {
	records, err := c.GetMarkets(ctx)
	if err != nil {
		return 0, err
	}

	for _, record := range records {
		if record.ID == EthereumID {
			if record.CurrentPrice <= 0 {
				return 0, api.NewDecodeError(sourceName,
					fmt.Errorf("invalid price for %s: %f", EthereumID, record.CurrentPrice))
			}
			return record.CurrentPrice, nil
		}
	}

	return 0, api.NewNotFoundError(sourceName,
		fmt.Errorf("record %q not found in %d market records", EthereumID, len(records)))
}
