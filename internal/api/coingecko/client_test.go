// internal/api/coingecko/client_test.go
package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-price-tracker/internal/api"
)

const marketsBody = `[
	{"id": "bitcoin", "symbol": "btc", "current_price": 60000.5},
	{"id": "ethereum", "symbol": "eth", "current_price": 3000.25},
	{"id": "tether", "symbol": "usdt", "current_price": 1.0}
]`

func TestGetMarkets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/markets", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(marketsBody))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "usd", "", 5*time.Second)

	records, err := client.GetMarkets(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "bitcoin", records[0].ID)
	assert.Equal(t, 60000.5, records[0].CurrentPrice)
}

func TestGetEthereumPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(marketsBody))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "usd", "", 5*time.Second)

	price, err := client.GetEthereumPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3000.25, price)
}

func TestGetEthereumPrice_RecordMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": "bitcoin", "symbol": "btc", "current_price": 60000}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "usd", "", 5*time.Second)

	_, err := client.GetEthereumPrice(context.Background())
	require.Error(t, err)
	assert.Equal(t, api.ErrorNotFound, api.KindOf(err))
}

func TestGetEthereumPrice_InvalidPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": "ethereum", "symbol": "eth", "current_price": 0}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "usd", "", 5*time.Second)

	_, err := client.GetEthereumPrice(context.Background())
	require.Error(t, err)
	assert.Equal(t, api.ErrorDecode, api.KindOf(err))
}

func TestGetMarkets_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "usd", "", 5*time.Second)

	_, err := client.GetMarkets(context.Background())
	require.Error(t, err)
	assert.Equal(t, api.ErrorNetwork, api.KindOf(err))
}

func TestGetMarkets_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected": "object"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "usd", "", 5*time.Second)

	_, err := client.GetMarkets(context.Background())
	require.Error(t, err)
	assert.Equal(t, api.ErrorDecode, api.KindOf(err))
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("", "", "", 5*time.Second)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, "usd", client.vsCurrency)
}
