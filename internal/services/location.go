package services

//go:generate mockgen -source=location.go -destination=mock_location.go -package=services

import (
	"context"
	"strings"

	"github.com/sbilibin2017/gw-currency-converter/internal/models"
)

// CountryLocator resolves the caller's two-letter country code.
type CountryLocator interface {
	Country(ctx context.Context) (string, error)
}

var countryCurrencies = map[string]string{
	"US": "USD",
	"IN": "INR",
	"CA": "CAD",
	"GB": "GBP",
	"AU": "AUD",
	"EU": "EUR",
	"JP": "JPY",
	"CN": "CNY",
	"SG": "SGD",
	"AE": "AED",
	"BR": "BRL",
	"MX": "MXN",
}

// CurrencyForCountry maps a country code to its currency, USD when unknown.
func CurrencyForCountry(country string) string {
	if code, ok := countryCurrencies[strings.ToUpper(strings.TrimSpace(country))]; ok {
		return code
	}
	return models.USD
}

// LocationService guesses a default base currency from geolocation.
type LocationService struct {
	locator CountryLocator
}

// NewLocationService creates a new service instance
func NewLocationService(locator CountryLocator) *LocationService {
	return &LocationService{locator: locator}
}

// LocalCurrency returns the currency of the caller's country. On lookup
// failure it returns USD together with the error.
func (s *LocationService) LocalCurrency(ctx context.Context) (string, error) {
	country, err := s.locator.Country(ctx)
	if err != nil {
		return models.USD, err
	}
	return CurrencyForCountry(country), nil
}
