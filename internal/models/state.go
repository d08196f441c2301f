package models

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// PickerSide identifies which currency selector the picker was opened for.
type PickerSide string

const (
	PickerNone   PickerSide = ""
	PickerBase   PickerSide = "base"
	PickerTarget PickerSide = "target"
)

// DefaultAmount is used whenever the amount field cannot be parsed.
const DefaultAmount = 1.0

// ConversionState is the single source of truth of a converter session.
type ConversionState struct {
	Base   string  // Currency converted from
	Target string  // Currency converted to
	Amount float64 // Amount of base currency, full precision

	Picker  PickerSide // Selector the open picker belongs to
	Keyword string     // Current search box content
	Loading bool       // A rate fetch is outstanding
}

// NewConversionState returns the initial state for the given pair.
func NewConversionState(base, target string) *ConversionState {
	return &ConversionState{
		Base:   base,
		Target: target,
		Amount: DefaultAmount,
	}
}

// Converted returns the amount expressed in the target currency.
func (s *ConversionState) Converted(rate float64) float64 {
	return s.Amount * rate
}

// Swap exchanges base and target.
func (s *ConversionState) Swap() {
	s.Base, s.Target = s.Target, s.Base
}

// SetPicked stores code into the field the open picker belongs to.
// It reports false when no picker is open.
func (s *ConversionState) SetPicked(code string) bool {
	switch s.Picker {
	case PickerBase:
		s.Base = code
	case PickerTarget:
		s.Target = code
	default:
		return false
	}
	return true
}

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount reads the leading number of text. Empty, non-numeric, zero
// and non-finite input all yield DefaultAmount.
func ParseAmount(text string) float64 {
	prefix := numericPrefix.FindString(strings.TrimSpace(text))
	if prefix == "" {
		return DefaultAmount
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return DefaultAmount
	}
	return v
}

// FormatAmount renders v with exactly two decimals.
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatBaseAmount renders v in its shortest exact form.
func FormatBaseAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
