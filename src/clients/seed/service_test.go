package seed_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"salesboard/src/clients/seed"
	"salesboard/src/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedPayload = `[
  {"id": 1, "title": "Fjallraven Backpack", "price": 329.85, "description": "bag", "category": "men's clothing",
   "image": "https://example.test/1.jpg", "sold": false, "dateOfSale": "2021-11-27T20:29:54+05:30"},
  {"id": 2, "title": "Slim Fit T-Shirt", "price": 44.6, "description": "tee", "category": "men's clothing",
   "image": "https://example.test/2.jpg", "sold": true, "dateOfSale": "2021-10-27T20:29:54+05:30"}
]`

func newClient(url string, retries uint64) *seed.SeedServiceClient {
	cfg := &config.Config{}
	cfg.ExternalClients.Seed = config.SeedConfig{
		URL:           url,
		Timeout:       time.Second,
		MaxRetries:    retries,
		RetryInterval: time.Millisecond,
	}
	return seed.NewClient(cfg)
}

func TestFetchTransactions(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(seedPayload))
	}))
	defer ts.Close()

	transactions, err := newClient(ts.URL, 0).FetchTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "2021-11-27T20:29:54+05:30", transactions[0].DateOfSale)
	assert.True(t, decimal.RequireFromString("329.85").Equal(transactions[0].Price))
	assert.Equal(t, "men's clothing", transactions[0].Category)
	assert.False(t, transactions[0].Sold)
	assert.True(t, transactions[1].Sold)
}

func TestFetchTransactionsRetriesServerErrors(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "try later", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(seedPayload))
	}))
	defer ts.Close()

	transactions, err := newClient(ts.URL, 3).FetchTransactions(context.Background())
	require.NoError(t, err)
	assert.Len(t, transactions, 2)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetchTransactionsFailures(t *testing.T) {
	t.Run("client errors are not retried", func(t *testing.T) {
		var calls int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			http.Error(w, "forbidden", http.StatusForbidden)
		}))
		defer ts.Close()

		_, err := newClient(ts.URL, 3).FetchTransactions(context.Background())
		assert.True(t, errors.Is(err, seed.ErrFetchFailed))
		assert.ErrorContains(t, err, "403")
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("retries are bounded", func(t *testing.T) {
		var calls int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			http.Error(w, "down", http.StatusBadGateway)
		}))
		defer ts.Close()

		_, err := newClient(ts.URL, 2).FetchTransactions(context.Background())
		assert.True(t, errors.Is(err, seed.ErrFetchFailed))
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("malformed body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not": "a list"}`))
		}))
		defer ts.Close()

		_, err := newClient(ts.URL, 2).FetchTransactions(context.Background())
		assert.True(t, errors.Is(err, seed.ErrFetchFailed))
		assert.ErrorContains(t, err, "decode seed dataset")
	})

	t.Run("unreachable host", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		url := ts.URL
		ts.Close()

		_, err := newClient(url, 0).FetchTransactions(context.Background())
		assert.True(t, errors.Is(err, seed.ErrFetchFailed))
	})
}
