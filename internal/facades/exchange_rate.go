package facades

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/tidwall/gjson"
)

// ExchangeRateFacade reads full rate tables from the exchange rate provider.
type ExchangeRateFacade struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewExchangeRateFacade creates a facade for {baseURL}/latest.
func NewExchangeRateFacade(client *http.Client, baseURL, apiKey string) *ExchangeRateFacade {
	return &ExchangeRateFacade{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// GetRates returns the rates from base to every known currency.
func (f *ExchangeRateFacade) GetRates(ctx context.Context, base string) (models.RateTable, error) {
	body, err := getJSON(ctx, f.client, "rates", f.baseURL+"/latest", url.Values{
		"apikey":        {f.apiKey},
		"base_currency": {base},
	})
	if err != nil {
		return nil, err
	}

	data := gjson.GetBytes(body, "data")
	if !data.IsObject() {
		return nil, fmt.Errorf("%w: rates body has no data object", ErrMalformedResponse)
	}

	table := make(models.RateTable)
	var bad string
	data.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number || value.Float() <= 0 {
			bad = key.String()
			return false
		}
		table[key.String()] = value.Float()
		return true
	})
	if bad != "" {
		return nil, fmt.Errorf("%w: invalid rate for %s->%s", ErrMalformedResponse, base, bad)
	}
	return table, nil
}
