package models

// CurrencyItem is one row of the currency picker.
// swagger:model CurrencyItem
type CurrencyItem struct {
	// example: EUR
	Code string `json:"code"`
	// example: Euro
	Name string `json:"name"`
	// example: https://wise.com/public-resources/assets/flags/rectangle/eur.png
	ImageURL string `json:"image_url"`
}

// Selector is a currency button label with its flag.
// swagger:model Selector
type Selector struct {
	// example: USD
	Code string `json:"code"`
	// example: https://wise.com/public-resources/assets/flags/rectangle/usd.png
	ImageURL string `json:"image_url"`
}

// Conversion holds the two amount fields and the rate summary line.
// swagger:model Conversion
type Conversion struct {
	// example: 10
	BaseInput string `json:"base_input"`
	// example: 9.10
	TargetInput string `json:"target_input"`
	// example: 1 USD = 0.91 EUR
	RateLine string `json:"rate_line"`
}

// View is everything a client displays for a session.
// swagger:model View
type View struct {
	// Incremented on every redraw
	Version uint64 `json:"version"`

	Currencies       []CurrencyItem `json:"currencies"`
	CurrencyListHTML string         `json:"currency_list_html"`

	Base       Selector   `json:"base"`
	Target     Selector   `json:"target"`
	Conversion Conversion `json:"conversion"`

	// Skeleton state while a rate fetch is outstanding
	Loading bool `json:"loading"`

	// Open picker: base, target or empty
	Picker  PickerSide `json:"picker"`
	Keyword string     `json:"keyword"`
}

// SessionResponse represents a freshly created session.
// swagger:model SessionResponse
type SessionResponse struct {
	// example: 550e8400-e29b-41d4-a716-446655440000
	SessionID string `json:"session_id"`
	View      View   `json:"view"`
}

// ErrorResponse represents an error returned by the API.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// example: session not found
	Error string `json:"error"`
}
