package services

import (
	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/metrics"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/sbilibin2017/gw-currency-converter/internal/repositories"
)

// EffectType names asynchronous work requested by the controller.
type EffectType int

const (
	EffectFetchCurrencies EffectType = iota + 1
	EffectFetchRates
	EffectResolveLocation
)

// Effect is a provider call the session runtime performs in the background.
// Its outcome comes back as a *_loaded or location_resolved action.
type Effect struct {
	Type EffectType
	Base string // EffectFetchRates only
}

// Redraw is a set of view parts that must be rendered again.
type Redraw uint8

const (
	RedrawList Redraw = 1 << iota
	RedrawConversion
	RedrawLoading
	RedrawPicker
)

// Has reports whether part is in the set.
func (r Redraw) Has(part Redraw) bool {
	return r&part != 0
}

// Result is the outcome of dispatching one action.
type Result struct {
	Effects []Effect
	Redraw  Redraw
}

func (r Result) merge(other Result) Result {
	r.Effects = append(r.Effects, other.Effects...)
	r.Redraw |= other.Redraw
	return r
}

// Controller applies actions to a session's state and decides when the rate
// cache can answer and when a fetch is needed. Not safe for concurrent use:
// the session event loop is its only caller.
type Controller struct {
	state   *models.ConversionState
	catalog *Catalog
	rates   *repositories.RateCache
	pending map[string]bool // bases with a fetch in flight
}

// NewController creates a controller over the given session parts.
func NewController(state *models.ConversionState, catalog *Catalog, rates *repositories.RateCache) *Controller {
	return &Controller{
		state:   state,
		catalog: catalog,
		rates:   rates,
		pending: make(map[string]bool),
	}
}

// State returns the live conversion state.
func (c *Controller) State() *models.ConversionState {
	return c.state
}

// Rates returns the session rate cache.
func (c *Controller) Rates() *repositories.RateCache {
	return c.rates
}

// FilteredCurrencies returns the picker content for the current state.
func (c *Controller) FilteredCurrencies() []models.Currency {
	return c.catalog.Filter(c.state.Keyword, c.state.Base, c.state.Target)
}

// Dispatch applies a single action.
func (c *Controller) Dispatch(a models.Action) Result {
	switch a.Type {
	case models.ActionInit:
		res := Result{Effects: []Effect{
			{Type: EffectResolveLocation},
			{Type: EffectFetchCurrencies},
		}}
		return res.merge(c.resolveRates())

	case models.ActionOpenPicker:
		c.state.Picker = a.Side
		return Result{Redraw: RedrawPicker}

	case models.ActionClosePicker:
		return c.closePicker()

	case models.ActionSelect:
		if !c.catalog.Has(a.Code) {
			logger.Log.Warnw("ignoring selection of unknown currency", "code", a.Code)
			return Result{}
		}
		if !c.state.SetPicked(a.Code) {
			return Result{}
		}
		return c.resolveRates().merge(c.closePicker())

	case models.ActionSwap:
		c.state.Swap()
		c.state.Amount = models.ParseAmount(a.Input)
		return c.resolveRates()

	case models.ActionEditAmount:
		c.state.Amount = models.ParseAmount(a.Input)
		return c.resolveRates()

	case models.ActionSearch:
		c.state.Keyword = a.Keyword
		return Result{Redraw: RedrawList | RedrawPicker}

	case models.ActionCurrenciesLoaded:
		if a.Err != nil {
			logger.Log.Errorw("failed to load currencies", "error", a.Err)
			return Result{}
		}
		c.catalog.Set(a.Currencies)
		return Result{Redraw: RedrawList}

	case models.ActionRatesLoaded:
		delete(c.pending, a.Base)
		// a fetch for the base now selected may still be outstanding
		c.state.Loading = c.pending[c.state.Base]
		if a.Err != nil {
			logger.Log.Errorw("failed to load exchange rates", "base", a.Base, "error", a.Err)
			return Result{Redraw: RedrawLoading}
		}
		c.rates.Populate(a.Base, a.Rates)
		if !c.rates.Has(c.state.Base) {
			return Result{Redraw: RedrawLoading}
		}
		return Result{Redraw: RedrawLoading | RedrawConversion}

	case models.ActionLocationResolved:
		base := a.Currency
		if a.Err != nil {
			logger.Log.Errorw("failed to fetch location", "error", a.Err)
		}
		if base == "" {
			base = models.USD
		}
		c.state.Base = base
		res := c.resolveRates()
		res.Redraw |= RedrawList
		return res

	default:
		logger.Log.Warnw("ignoring unknown action", "type", a.Type)
		return Result{}
	}
}

func (c *Controller) closePicker() Result {
	c.state.Picker = models.PickerNone
	c.state.Keyword = ""
	return Result{Redraw: RedrawPicker | RedrawList}
}

// resolveRates renders from cache when the base table is present, otherwise
// turns loading on and requests a fetch unless one is already in flight.
func (c *Controller) resolveRates() Result {
	base := c.state.Base
	if c.rates.Has(base) {
		metrics.RecordRateCacheLookup(true)
		return Result{Redraw: RedrawConversion}
	}
	metrics.RecordRateCacheLookup(false)

	c.state.Loading = true
	res := Result{Redraw: RedrawLoading}
	if c.pending[base] {
		return res
	}
	c.pending[base] = true
	res.Effects = append(res.Effects, Effect{Type: EffectFetchRates, Base: base})
	return res
}
