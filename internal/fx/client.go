// Package fx provides exchange-rate fetching, caching and currency
// conversion for the dashboard. All rates are quoted against a USD base,
// matching the upstream API.
package fx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// BaseCurrency is the quote base of the upstream rate API.
const BaseCurrency = "USD"

// fallbackRates is the static degraded-mode table, quoted per USD. It is the
// single source of truth for fallback conversion: every component that
// degrades on fetch failure must go through FallbackRates.
var fallbackRates = map[string]float64{
	"USD": 1.00,
	"BRL": 5.50,
	"EUR": 0.92,
}

// FallbackRates returns a copy of the static fallback table. Callers apply
// it explicitly when live rates are unavailable; conversion functions never
// fall back on their own.
func FallbackRates() map[string]float64 {
	rates := make(map[string]float64, len(fallbackRates))
	for code, rate := range fallbackRates {
		rates[code] = rate
	}
	return rates
}

// Snapshot is one fetched rate table
type Snapshot struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// Client fetches rate tables from the exchange-rate REST API
type Client struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

// NewClient initializes a new rate API client
func NewClient(baseURL string, log *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// FetchLatest retrieves the latest rate table for the given base currency
func (c *Client) FetchLatest(base string) (*Snapshot, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, base)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var body struct {
		Base  string             `json:"base"`
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse rate response: %w", err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("rate response carried no rates")
	}

	c.log.Debugf("Fetched %d rates for base %s", len(body.Rates), body.Base)
	return &Snapshot{
		Base:      body.Base,
		Rates:     body.Rates,
		FetchedAt: time.Now(),
	}, nil
}
