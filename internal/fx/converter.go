package fx

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrUnsupportedCurrency is returned when a rate table has no entry for the
// requested currency code. Callers decide whether to degrade to the
// fallback table or surface the error.
var ErrUnsupportedCurrency = errors.New("unsupported currency code")

// DefaultTTL is the freshness window of a cached rate snapshot.
const DefaultTTL = 5 * time.Minute

// Cache holds one rate snapshot with a freshness window. It is injected
// into whichever component needs conversion; there is no package-global
// snapshot state.
type Cache struct {
	mu       sync.RWMutex
	ttl      time.Duration
	snapshot *Snapshot
}

// NewCache creates a cache with the given TTL, defaulting when ttl <= 0
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{ttl: ttl}
}

// Get returns the snapshot if it is still within the freshness window
func (c *Cache) Get() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil || time.Since(c.snapshot.FetchedAt) > c.ttl {
		return nil
	}
	return c.snapshot
}

// GetStale returns the snapshot regardless of age, or nil if none was ever
// stored. Stale data beats no data when the API is down.
func (c *Cache) GetStale() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Put stores a snapshot
func (c *Cache) Put(s *Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = s
}

// RateFetcher fetches a rate table for a base currency
type RateFetcher interface {
	FetchLatest(base string) (*Snapshot, error)
}

// Converter converts amounts between currencies using the cached snapshot,
// refetching when it goes stale.
type Converter struct {
	fetcher RateFetcher
	cache   *Cache
	log     *logrus.Logger
}

// NewConverter initializes a converter around an injected cache
func NewConverter(fetcher RateFetcher, cache *Cache, log *logrus.Logger) *Converter {
	return &Converter{fetcher: fetcher, cache: cache, log: log}
}

// Refresh forces a fetch and stores the result. Used by the scheduled
// refresh job.
func (c *Converter) Refresh() error {
	snap, err := c.fetcher.FetchLatest(BaseCurrency)
	if err != nil {
		return fmt.Errorf("failed to refresh exchange rates: %w", err)
	}
	c.cache.Put(snap)
	return nil
}

// CurrentRates returns the rate table to convert with. A fresh cached
// snapshot is reused; otherwise one fetch is attempted. When the fetch fails
// an expired snapshot is still served (stale beats missing); only with no
// snapshot at all does the error propagate, leaving the fallback decision to
// the caller.
func (c *Converter) CurrentRates() (map[string]float64, error) {
	if snap := c.cache.Get(); snap != nil {
		return snap.Rates, nil
	}

	snap, err := c.fetcher.FetchLatest(BaseCurrency)
	if err != nil {
		if stale := c.cache.GetStale(); stale != nil {
			c.log.Warnf("Rate fetch failed, serving stale snapshot from %s: %v", stale.FetchedAt.Format(time.RFC3339), err)
			return stale.Rates, nil
		}
		return nil, fmt.Errorf("failed to fetch exchange rates: %w", err)
	}

	c.cache.Put(snap)
	return snap.Rates, nil
}

// Convert converts an amount between two currencies using current rates
func (c *Converter) Convert(amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}
	rates, err := c.CurrentRates()
	if err != nil {
		return 0, err
	}
	return ConvertWith(rates, amount, from, to)
}

// ToBRL converts an amount in the given currency to BRL
func (c *Converter) ToBRL(amount float64, currency string) (float64, error) {
	return c.Convert(amount, currency, "BRL")
}

// ConvertWith converts using an explicit rate table quoted against a common
// base. Unknown codes return ErrUnsupportedCurrency.
func ConvertWith(rates map[string]float64, amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}
	fromRate, ok := rates[from]
	if !ok || fromRate == 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, from)
	}
	toRate, ok := rates[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, to)
	}
	return amount / fromRate * toRate, nil
}
