package services

//go:generate mockgen -source=cached_rates.go -destination=mock_cached_rates.go -package=services

import (
	"context"

	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
)

// RatesReader fetches the full rate table of a base currency.
type RatesReader interface {
	GetRates(ctx context.Context, base string) (models.RateTable, error)
}

// RateTableStore keeps rate tables shared by all sessions.
type RateTableStore interface {
	Get(ctx context.Context, base string) (models.RateTable, error)
	Set(ctx context.Context, base string, table models.RateTable) error
}

// CachedRatesReader serves rate tables from a shared store and falls back to
// the provider on a miss.
type CachedRatesReader struct {
	reader RatesReader
	store  RateTableStore
}

// NewCachedRatesReader creates a new reader instance
func NewCachedRatesReader(reader RatesReader, store RateTableStore) *CachedRatesReader {
	return &CachedRatesReader{
		reader: reader,
		store:  store,
	}
}

// GetRates returns the table for base.
func (r *CachedRatesReader) GetRates(ctx context.Context, base string) (models.RateTable, error) {
	table, err := r.store.Get(ctx, base)
	if err == nil {
		return table, nil
	}

	table, err = r.reader.GetRates(ctx, base)
	if err != nil {
		return nil, err
	}

	if err := r.store.Set(ctx, base, table); err != nil {
		logger.Log.Warnw("failed to store rate table", "base", base, "error", err)
	}
	return table, nil
}
