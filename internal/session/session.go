// Package session runs one converter per browser tab. Each session owns its
// state and processes actions one at a time on its own goroutine; provider
// calls run in the background and report back as actions.
package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sbilibin2017/gw-currency-converter/internal/facades"
	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/sbilibin2017/gw-currency-converter/internal/render"
	"github.com/sbilibin2017/gw-currency-converter/internal/repositories"
	"github.com/sbilibin2017/gw-currency-converter/internal/services"
)

// ErrSessionClosed is returned when dispatching to a closed session.
var ErrSessionClosed = errors.New("session closed")

const actionQueueSize = 16

// Config is the initial setup of every session.
type Config struct {
	Base         string
	Target       string
	RateCacheTTL time.Duration // zero keeps rate tables for the whole session
}

type envelope struct {
	action models.Action
	reply  chan models.View
}

// Session is a single converter instance.
type Session struct {
	id        string
	ctrl      *services.Controller
	renderer  *render.Renderer
	providers Providers

	actions   chan envelope
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
	lastSeen  atomic.Int64

	mu      sync.RWMutex
	view    models.View
	subs    map[uint64]chan models.View
	nextSub uint64
}

// New starts a session. Only the client address of parent reaches provider
// calls; its other values and its cancellation are not inherited.
func New(parent context.Context, id string, cfg Config, providers Providers, renderer *render.Renderer) *Session {
	ctx, cancel := context.WithCancel(detach(parent))
	state := models.NewConversionState(cfg.Base, cfg.Target)

	s := &Session{
		id:        id,
		ctrl:      services.NewController(state, services.NewCatalog(), repositories.NewRateCache(cfg.RateCacheTTL)),
		renderer:  renderer,
		providers: providers,
		actions:   make(chan envelope, actionQueueSize),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
		subs:      make(map[uint64]chan models.View),
	}
	s.view.Base, s.view.Target = renderer.Selectors(state)
	s.view.Currencies = []models.CurrencyItem{}
	s.touch()

	go s.loop()
	return s
}

// detach returns a background context carrying only the client address of
// the request that opened the session.
func detach(parent context.Context) context.Context {
	ctx := context.Background()
	if ip, ok := facades.ClientIP(parent); ok {
		ctx = facades.WithClientIP(ctx, ip)
	}
	return ctx
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// View returns the last rendered view.
func (s *Session) View() models.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Dispatch queues a user action and waits until it has been applied.
// A swap without input uses the target amount currently displayed.
func (s *Session) Dispatch(ctx context.Context, a models.Action) (models.View, error) {
	s.touch()
	reply := make(chan models.View, 1)

	select {
	case s.actions <- envelope{action: a, reply: reply}:
	case <-s.ctx.Done():
		return models.View{}, ErrSessionClosed
	case <-ctx.Done():
		return models.View{}, ctx.Err()
	}

	select {
	case v := <-reply:
		return v, nil
	case <-s.ctx.Done():
		return models.View{}, ErrSessionClosed
	case <-ctx.Done():
		return models.View{}, ctx.Err()
	}
}

// Subscribe returns a channel receiving the current view and then every
// redraw. Slow readers only see the latest view.
func (s *Session) Subscribe() (<-chan models.View, func()) {
	s.touch()
	ch := make(chan models.View, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.view
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Subscribers returns the number of open subscriptions.
func (s *Session) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// IdleFor returns how long ago the session was last used.
func (s *Session) IdleFor(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

// Close stops the event loop, abandons in-flight fetches and closes all
// subscriptions. It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done

		s.mu.Lock()
		for id, ch := range s.subs {
			delete(s.subs, id)
			close(ch)
		}
		s.mu.Unlock()
	})
}

func (s *Session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

func (s *Session) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case env := <-s.actions:
			v := s.handle(env.action)
			if env.reply != nil {
				env.reply <- v
			}
		}
	}
}

func (s *Session) handle(a models.Action) models.View {
	if a.Type == models.ActionSwap && a.Input == "" {
		a.Input = s.view.Conversion.TargetInput
	}

	res := s.ctrl.Dispatch(a)
	v := s.redraw(res.Redraw)
	for _, e := range res.Effects {
		go s.perform(e)
	}
	return v
}

// redraw renders the requested parts over the previous view. A part that
// fails to render keeps its previous content.
func (s *Session) redraw(r services.Redraw) models.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r == 0 {
		return s.view
	}

	v := s.view
	state := s.ctrl.State()

	if r.Has(services.RedrawList) {
		items, html, err := s.renderer.CurrencyList(s.ctrl.FilteredCurrencies())
		if err != nil {
			logger.Log.Errorw("failed to render currency list", "session_id", s.id, "error", err)
		} else {
			v.Currencies, v.CurrencyListHTML = items, html
		}
	}
	if r.Has(services.RedrawConversion) {
		v.Base, v.Target = s.renderer.Selectors(state)
		conv, err := s.renderer.Conversion(state, s.ctrl.Rates())
		if err != nil {
			logger.Log.Errorw("failed to render conversion", "session_id", s.id, "base", state.Base, "target", state.Target, "error", err)
		} else {
			v.Conversion = conv
		}
	}
	if r.Has(services.RedrawLoading) {
		v.Loading = state.Loading
	}
	if r.Has(services.RedrawPicker) {
		v.Picker, v.Keyword = state.Picker, state.Keyword
	}

	v.Version++
	s.view = v
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
	return v
}

func (s *Session) perform(e services.Effect) {
	var a models.Action

	switch e.Type {
	case services.EffectFetchCurrencies:
		currencies, err := s.providers.Currencies.ListCurrencies(s.ctx)
		a = models.Action{Type: models.ActionCurrenciesLoaded, Currencies: currencies, Err: err}
	case services.EffectFetchRates:
		table, err := s.providers.Rates.GetRates(s.ctx, e.Base)
		a = models.Action{Type: models.ActionRatesLoaded, Base: e.Base, Rates: table, Err: err}
	case services.EffectResolveLocation:
		currency, err := s.providers.Location.LocalCurrency(s.ctx)
		a = models.Action{Type: models.ActionLocationResolved, Currency: currency, Err: err}
	default:
		logger.Log.Warnw("ignoring unknown effect", "session_id", s.id, "effect", e.Type)
		return
	}

	select {
	case s.actions <- envelope{action: a}:
	case <-s.ctx.Done():
	}
}
