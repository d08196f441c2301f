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

// CurrencyFacade reads the currency catalog from the currency list provider.
type CurrencyFacade struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewCurrencyFacade creates a facade for {baseURL}/currencies.
func NewCurrencyFacade(client *http.Client, baseURL, apiKey string) *CurrencyFacade {
	return &CurrencyFacade{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// ListCurrencies returns code and name of every currency in provider order.
func (f *CurrencyFacade) ListCurrencies(ctx context.Context) ([]models.Currency, error) {
	body, err := getJSON(ctx, f.client, "currencies", f.baseURL+"/currencies", url.Values{"apikey": {f.apiKey}})
	if err != nil {
		return nil, err
	}

	data := gjson.GetBytes(body, "data")
	if !data.IsObject() {
		return nil, fmt.Errorf("%w: currencies body has no data object", ErrMalformedResponse)
	}

	var currencies []models.Currency
	data.ForEach(func(key, value gjson.Result) bool {
		code := value.Get("code").String()
		if code == "" {
			code = key.String()
		}
		currencies = append(currencies, models.Currency{
			Code: code,
			Name: value.Get("name").String(),
		})
		return true
	})
	return currencies, nil
}
