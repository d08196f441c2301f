package models

// RateTable maps a target currency code to the rate from a single base,
// where 1 unit of base equals rate units of target.
type RateTable map[string]float64
