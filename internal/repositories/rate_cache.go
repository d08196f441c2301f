package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/sbilibin2017/gw-currency-converter/internal/models"
)

// ErrRateNotFound is returned when a cached base table has no entry for the
// requested target, which means the provider published an incomplete table.
var ErrRateNotFound = errors.New("exchange rate not found in cache")

type rateKey struct {
	base   string
	target string
}

// RateCache is a session-scoped store of rate tables keyed by (base, target).
// A base is either fully populated or absent. Not safe for concurrent use.
type RateCache struct {
	rates     map[rateKey]float64
	fetchedAt map[string]time.Time
	ttl       time.Duration // zero keeps tables for the whole session
	now       func() time.Time
}

// RateCacheOption configures a RateCache.
type RateCacheOption func(*RateCache)

// WithClock overrides the time source used for TTL checks.
func WithClock(now func() time.Time) RateCacheOption {
	return func(c *RateCache) {
		c.now = now
	}
}

// NewRateCache creates an empty cache. A positive ttl makes tables stale
// after that duration so the controller fetches them again.
func NewRateCache(ttl time.Duration, opts ...RateCacheOption) *RateCache {
	c := &RateCache{
		rates:     make(map[rateKey]float64),
		fetchedAt: make(map[string]time.Time),
		ttl:       ttl,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Has reports whether a fresh table for base is cached.
func (c *RateCache) Has(base string) bool {
	at, ok := c.fetchedAt[base]
	if !ok {
		return false
	}
	return c.ttl <= 0 || c.now().Sub(at) < c.ttl
}

// Get returns the cached rate from base to target.
func (c *RateCache) Get(base, target string) (float64, error) {
	rate, ok := c.rates[rateKey{base: base, target: target}]
	if !ok {
		return 0, fmt.Errorf("%w: %s->%s", ErrRateNotFound, base, target)
	}
	return rate, nil
}

// Populate stores the full table for base, replacing any previous one.
func (c *RateCache) Populate(base string, table models.RateTable) {
	for k := range c.rates {
		if k.base == base {
			delete(c.rates, k)
		}
	}
	for target, rate := range table {
		c.rates[rateKey{base: base, target: target}] = rate
	}
	if _, ok := table[base]; !ok {
		c.rates[rateKey{base: base, target: base}] = 1
	}
	c.fetchedAt[base] = c.now()
}

// Len returns the number of cached bases.
func (c *RateCache) Len() int {
	return len(c.fetchedAt)
}
