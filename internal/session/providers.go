package session

//go:generate mockgen -source=providers.go -destination=mock_providers.go -package=session

import (
	"context"

	"github.com/sbilibin2017/gw-currency-converter/internal/models"
)

// CurrencyLister fetches the currency catalog.
type CurrencyLister interface {
	ListCurrencies(ctx context.Context) ([]models.Currency, error)
}

// RatesReader fetches the full rate table of a base currency.
type RatesReader interface {
	GetRates(ctx context.Context, base string) (models.RateTable, error)
}

// LocalCurrencyResolver guesses the user's currency from geolocation.
type LocalCurrencyResolver interface {
	LocalCurrency(ctx context.Context) (string, error)
}

// Providers bundles the external collaborators of a session.
type Providers struct {
	Currencies CurrencyLister
	Rates      RatesReader
	Location   LocalCurrencyResolver
}
