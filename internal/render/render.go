// Package render projects converter state onto the values a client displays.
// Every function recomputes its part from scratch and never mutates state.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/sbilibin2017/gw-currency-converter/internal/models"
)

// DefaultFlagBaseURL hosts one rectangular PNG flag per lowercase currency code.
const DefaultFlagBaseURL = "https://wise.com/public-resources/assets/flags/rectangle"

// RateGetter looks up a cached rate.
type RateGetter interface {
	Get(base, target string) (float64, error)
}

var currencyListTmpl = template.Must(template.New("currency-list").Parse(
	`{{range .}}<li data-code="{{.Code}}"><img src="{{.ImageURL}}" alt="{{.Name}}" /><div><h4>{{.Code}}</h4><p>{{.Name}}</p></div></li>{{end}}`,
))

// Renderer turns state into view parts.
type Renderer struct {
	flagBaseURL string
}

// New creates a renderer that builds flag URLs under flagBaseURL.
func New(flagBaseURL string) *Renderer {
	if flagBaseURL == "" {
		flagBaseURL = DefaultFlagBaseURL
	}
	return &Renderer{flagBaseURL: strings.TrimRight(flagBaseURL, "/")}
}

// ImageURL returns the flag image of a currency.
func (r *Renderer) ImageURL(code string) string {
	return r.flagBaseURL + "/" + strings.ToLower(code) + ".png"
}

// CurrencyList renders the picker rows and their markup.
func (r *Renderer) CurrencyList(currencies []models.Currency) ([]models.CurrencyItem, string, error) {
	items := make([]models.CurrencyItem, 0, len(currencies))
	for _, c := range currencies {
		items = append(items, models.CurrencyItem{
			Code:     c.Code,
			Name:     c.Name,
			ImageURL: r.ImageURL(c.Code),
		})
	}

	var buf bytes.Buffer
	if err := currencyListTmpl.Execute(&buf, items); err != nil {
		return nil, "", fmt.Errorf("failed to render currency list: %w", err)
	}
	return items, buf.String(), nil
}

// Selectors renders the base and target buttons.
func (r *Renderer) Selectors(state *models.ConversionState) (base, target models.Selector) {
	base = models.Selector{Code: state.Base, ImageURL: r.ImageURL(state.Base)}
	target = models.Selector{Code: state.Target, ImageURL: r.ImageURL(state.Target)}
	return base, target
}

// Conversion renders both amount fields and the rate line. It fails when
// rates has no entry for the current pair.
func (r *Renderer) Conversion(state *models.ConversionState, rates RateGetter) (models.Conversion, error) {
	rate, err := rates.Get(state.Base, state.Target)
	if err != nil {
		return models.Conversion{}, err
	}

	return models.Conversion{
		BaseInput:   models.FormatBaseAmount(state.Amount),
		TargetInput: models.FormatAmount(state.Converted(rate)),
		RateLine:    fmt.Sprintf("1 %s = %s %s", state.Base, models.FormatAmount(rate), state.Target),
	}, nil
}
