package models

// Currency codes the converter falls back to.
const (
	USD = "USD"
	EUR = "EUR"
)

// Currency is a catalog entry as published by the currency list provider.
// swagger:model Currency
type Currency struct {
	// ISO-4217 code
	// example: USD
	Code string `json:"code"`

	// Display name
	// example: US Dollar
	Name string `json:"name"`
}
