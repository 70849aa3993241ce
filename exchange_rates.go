// exchange_rates.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// RateTable maps a currency code to units of base currency per one
// unit of that currency. The sort engine reads it live, callers
// re-sort after a refresh.
type RateTable map[string]float64

// DefaultRates is the shipped fallback table, base JPY.
var DefaultRates = RateTable{
	"JPY": 1,
	"USD": 155.8,
	"HKD": 19.9,
	"EUR": 168.4,
	"GBP": 196.5,
	"AUD": 102.3,
	"CNY": 21.5,
}

type ratesCache struct {
	FetchedAt time.Time `json:"fetched_at"`
	Base      string    `json:"base"`
	Rates     RateTable `json:"rates"`
}

// LoadCachedRates returns the cached table when the cache file exists
// and is younger than ttl.
func LoadCachedRates(path string, ttl time.Duration) (RateTable, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var cache ratesCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, false
	}
	if len(cache.Rates) == 0 || time.Since(cache.FetchedAt) > ttl {
		return nil, false
	}
	return cache.Rates, true
}

func SaveRatesCache(path, base string, rates RateTable) error {
	data, err := json.Marshal(ratesCache{FetchedAt: time.Now(), Base: base, Rates: rates})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// FetchRates pulls a fresh table from a JSON endpoint shaped
// {"base": "JPY", "rates": {"USD": 155.8, ...}}.
func FetchRates(ctx context.Context, url string) (RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch rates %s: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var payload ratesCache
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse rates payload: %v", err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("rates payload %s carries no rates", url)
	}
	return payload.Rates, nil
}
