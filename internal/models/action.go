package models

import (
	"errors"
	"fmt"
)

// ActionType enumerates everything that can change a converter session.
type ActionType string

// User actions.
const (
	ActionInit        ActionType = "init"
	ActionOpenPicker  ActionType = "open_picker"
	ActionClosePicker ActionType = "close_picker"
	ActionSelect      ActionType = "select"
	ActionSwap        ActionType = "swap"
	ActionEditAmount  ActionType = "edit_amount"
	ActionSearch      ActionType = "search"
)

// Provider results posted back to the session.
const (
	ActionCurrenciesLoaded ActionType = "currencies_loaded"
	ActionRatesLoaded      ActionType = "rates_loaded"
	ActionLocationResolved ActionType = "location_resolved"
)

// ErrUnknownAction is returned for action types a client may not send.
var ErrUnknownAction = errors.New("unknown action")

// Action is a single message dispatched to the sync controller.
type Action struct {
	Type ActionType

	Side    PickerSide // open_picker
	Code    string     // select
	Input   string     // edit_amount, swap
	Keyword string     // search

	Currencies []Currency // currencies_loaded
	Base       string     // rates_loaded
	Rates      RateTable  // rates_loaded
	Currency   string     // location_resolved
	Err        error      // provider results
}

// ActionRequest represents the JSON body of a user action.
// swagger:model ActionRequest
type ActionRequest struct {
	// Action type: open_picker, close_picker, select, swap, edit_amount, search
	// required: true
	// example: select
	Type string `json:"type"`

	// Picker side for open_picker: base or target
	// example: base
	Side string `json:"side,omitempty"`

	// Currency code for select
	// example: EUR
	Code string `json:"code,omitempty"`

	// Raw amount text for edit_amount; displayed target amount for swap
	// example: 10
	Input string `json:"input,omitempty"`

	// Search text for search
	// example: eur
	Keyword string `json:"keyword,omitempty"`
}

// ToAction validates the request and converts it to an Action.
func (r ActionRequest) ToAction() (Action, error) {
	switch t := ActionType(r.Type); t {
	case ActionOpenPicker:
		side := PickerSide(r.Side)
		if side != PickerBase && side != PickerTarget {
			return Action{}, fmt.Errorf("%w: invalid picker side %q", ErrUnknownAction, r.Side)
		}
		return Action{Type: t, Side: side}, nil
	case ActionClosePicker:
		return Action{Type: t}, nil
	case ActionSelect:
		if r.Code == "" {
			return Action{}, fmt.Errorf("%w: select requires a code", ErrUnknownAction)
		}
		return Action{Type: t, Code: r.Code}, nil
	case ActionSwap, ActionEditAmount:
		return Action{Type: t, Input: r.Input}, nil
	case ActionSearch:
		return Action{Type: t, Keyword: r.Keyword}, nil
	default:
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, r.Type)
	}
}
