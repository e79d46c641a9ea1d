package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"salesboard/src/config"
	"salesboard/src/schemas"
	"salesboard/src/utils"

	"github.com/cenkalti/backoff/v4"
)

// ErrFetchFailed wraps every failure to obtain a usable seed dataset.
var ErrFetchFailed = errors.New("seed fetch failed")

type SeedServiceClientI interface {
	FetchTransactions(ctx context.Context) ([]schemas.SeedTransaction, error)
}

type SeedServiceClient struct {
	client        *http.Client
	URL           string
	MaxRetries    uint64
	RetryInterval time.Duration
}

// NewClient creates a new instance of SeedServiceClient
func NewClient(cfg *config.Config) *SeedServiceClient {
	return &SeedServiceClient{
		client:        &http.Client{Timeout: cfg.ExternalClients.Seed.Timeout},
		URL:           cfg.ExternalClients.Seed.URL,
		MaxRetries:    cfg.ExternalClients.Seed.MaxRetries,
		RetryInterval: cfg.ExternalClients.Seed.RetryInterval,
	}
}

// FetchTransactions downloads the seed dataset. Transport errors and 5xx
// answers are retried with exponential backoff; anything else fails at once.
func (c *SeedServiceClient) FetchTransactions(ctx context.Context) ([]schemas.SeedTransaction, error) {
	logger := utils.LoggerFromContext(ctx)

	var transactions []schemas.SeedTransaction
	attempt := 0
	fetch := func() error {
		attempt++
		var err error
		transactions, err = c.fetchOnce(ctx)
		if err != nil {
			logger.WithField("attempt", attempt).WithError(err).Warn("seed fetch attempt failed")
		}
		return err
	}

	policy := backoff.NewExponentialBackOff()
	if c.RetryInterval > 0 {
		policy.InitialInterval = c.RetryInterval
	}
	policy.MaxInterval = config.SeedMaxRetryInterval

	err := backoff.Retry(fetch, backoff.WithContext(backoff.WithMaxRetries(policy, c.MaxRetries), ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return transactions, nil
}

func (c *SeedServiceClient) fetchOnce(ctx context.Context) ([]schemas.SeedTransaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		statusErr := fmt.Errorf("seed source answered %s", resp.Status)
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, statusErr
		}
		return nil, backoff.Permanent(statusErr)
	}

	var transactions []schemas.SeedTransaction
	if err := json.NewDecoder(resp.Body).Decode(&transactions); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode seed dataset: %w", err))
	}
	return transactions, nil
}
