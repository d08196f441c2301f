package services

import (
	"strings"

	"github.com/samber/lo"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
)

// Catalog holds the currencies known to a session in provider order.
type Catalog struct {
	currencies []models.Currency
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Set replaces the catalog content.
func (c *Catalog) Set(currencies []models.Currency) {
	c.currencies = append([]models.Currency(nil), currencies...)
}

// All returns every known currency.
func (c *Catalog) All() []models.Currency {
	return append([]models.Currency(nil), c.currencies...)
}

// Has reports whether code is a known currency. Codes are case sensitive.
func (c *Catalog) Has(code string) bool {
	return lo.ContainsBy(c.currencies, func(cur models.Currency) bool {
		return cur.Code == code
	})
}

// Len returns the number of known currencies.
func (c *Catalog) Len() int {
	return len(c.currencies)
}

// Filter returns the currencies that are neither base nor target and whose
// code or name contains keyword, ignoring case and surrounding spaces.
func (c *Catalog) Filter(keyword, base, target string) []models.Currency {
	keyword = strings.ToLower(strings.TrimSpace(keyword))

	return lo.Filter(c.currencies, func(cur models.Currency, _ int) bool {
		if cur.Code == base || cur.Code == target {
			return false
		}
		return strings.Contains(strings.ToLower(cur.Code), keyword) ||
			strings.Contains(strings.ToLower(cur.Name), keyword)
	})
}
