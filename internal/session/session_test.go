package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-currency-converter/internal/facades"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/sbilibin2017/gw-currency-converter/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

var (
	testCurrencies = []models.Currency{
		{Code: "USD", Name: "US Dollar"},
		{Code: "EUR", Name: "Euro"},
		{Code: "INR", Name: "Indian Rupee"},
	}
	usdRates = models.RateTable{"USD": 1, "EUR": 0.91, "INR": 83.25}
	eurRates = models.RateTable{"EUR": 1, "USD": 1 / 0.91, "INR": 91.48}
)

type mocks struct {
	currencies *MockCurrencyLister
	rates      *MockRatesReader
	location   *MockLocalCurrencyResolver
}

func newMocks(gm *gomock.Controller) (*mocks, Providers) {
	m := &mocks{
		currencies: NewMockCurrencyLister(gm),
		rates:      NewMockRatesReader(gm),
		location:   NewMockLocalCurrencyResolver(gm),
	}
	return m, Providers{Currencies: m.currencies, Rates: m.rates, Location: m.location}
}

var testConfig = Config{Base: models.USD, Target: models.EUR}

// startReady opens a session and waits until the USD table, the catalog and
// then the location have all been applied.
func startReady(t *testing.T, gm *gomock.Controller) (*Session, *mocks) {
	t.Helper()
	m, providers := newMocks(gm)

	release := make(chan struct{})
	m.location.EXPECT().LocalCurrency(gomock.Any()).DoAndReturn(func(context.Context) (string, error) {
		<-release
		return models.USD, nil
	})
	m.currencies.EXPECT().ListCurrencies(gomock.Any()).Return(testCurrencies, nil)
	m.rates.EXPECT().GetRates(gomock.Any(), models.USD).Return(usdRates, nil).Times(1)

	s := New(context.Background(), "s1", testConfig, providers, render.New(""))
	t.Cleanup(s.Close)

	v, err := s.Dispatch(context.Background(), models.Action{Type: models.ActionInit})
	require.NoError(t, err)
	assert.Equal(t, models.USD, v.Base.Code)

	require.Eventually(t, func() bool {
		v := s.View()
		return !v.Loading && v.Conversion.RateLine == "1 USD = 0.91 EUR" && len(v.Currencies) == 1
	}, waitFor, tick)

	before := s.View().Version
	close(release)
	require.Eventually(t, func() bool { return s.View().Version > before }, waitFor, tick)
	return s, m
}

func TestSession_InitialView(t *testing.T) {
	gm := gomock.NewController(t)
	defer gm.Finish()
	_, providers := newMocks(gm)

	s := New(context.Background(), "s1", testConfig, providers, render.New("https://flags.test"))
	defer s.Close()

	v := s.View()
	assert.Equal(t, "s1", s.ID())
	assert.Equal(t, uint64(0), v.Version)
	assert.Equal(t, models.Selector{Code: "USD", ImageURL: "https://flags.test/usd.png"}, v.Base)
	assert.Equal(t, models.Selector{Code: "EUR", ImageURL: "https://flags.test/eur.png"}, v.Target)
	assert.Empty(t, v.Currencies)
}

func TestSession_InitLoadsEverything(t *testing.T) {
	gm := gomock.NewController(t)
	defer gm.Finish()

	s, _ := startReady(t, gm)

	v := s.View()
	assert.Equal(t, "1", v.Conversion.BaseInput)
	assert.Equal(t, "0.91", v.Conversion.TargetInput)
	require.Len(t, v.Currencies, 1, "base and target are not listed")
	assert.Equal(t, "INR", v.Currencies[0].Code)
	assert.Contains(t, v.CurrencyListHTML, `data-code="INR"`)
	assert.NotContains(t, v.CurrencyListHTML, `data-code="USD"`)
}

func TestSession_SelectAndEditFromCache(t *testing.T) {
	gm := gomock.NewController(t)
	defer gm.Finish()

	s, _ := startReady(t, gm)
	ctx := context.Background()

	v, err := s.Dispatch(ctx, models.Action{Type: models.ActionOpenPicker, Side: models.PickerTarget})
	require.NoError(t, err)
	assert.Equal(t, models.PickerTarget, v.Picker)

	v, err = s.Dispatch(ctx, models.Action{Type: models.ActionSelect, Code: "INR"})
	require.NoError(t, err)
	assert.Equal(t, models.PickerNone, v.Picker)
	assert.Equal(t, "INR", v.Target.Code)
	assert.Equal(t, "1 USD = 83.25 INR", v.Conversion.RateLine)

	v, err = s.Dispatch(ctx, models.Action{Type: models.ActionEditAmount, Input: "10"})
	require.NoError(t, err)
	assert.Equal(t, "832.50", v.Conversion.TargetInput)
	assert.False(t, v.Loading)
}

func TestSession_SelectUnknownCodeKeepsView(t *testing.T) {
	gm := gomock.NewController(t)
	defer gm.Finish()

	s, _ := startReady(t, gm)
	ctx := context.Background()

	_, err := s.Dispatch(ctx, models.Action{Type: models.ActionOpenPicker, Side: models.PickerTarget})
	require.NoError(t, err)

	v, err := s.Dispatch(ctx, models.Action{Type: models.ActionSelect, Code: "xyz"})
	require.NoError(t, err)
	assert.Equal(t, "EUR", v.Target.Code)
	assert.Equal(t, models.PickerTarget, v.Picker)
	assert.Equal(t, "1 USD = 0.91 EUR", v.Conversion.RateLine)
	assert.Equal(t, "0.91", v.Conversion.TargetInput)
}

func TestSession_SwapUsesDisplayedTarget(t *testing.T) {
	gm := gomock.NewController(t)
	defer gm.Finish()

	s, m := startReady(t, gm)
	m.rates.EXPECT().GetRates(gomock.Any(), models.EUR).Return(eurRates, nil).Times(1)

	v, err := s.Dispatch(context.Background(), models.Action{Type: models.ActionSwap})
	require.NoError(t, err)
	assert.True(t, v.Loading)

	require.Eventually(t, func() bool {
		v := s.View()
		return !v.Loading && v.Base.Code == "EUR" && v.Target.Code == "USD"
	}, waitFor, tick)

	v = s.View()
	assert.Equal(t, "0.91", v.Conversion.BaseInput)
	assert.Equal(t, "1.00", v.Conversion.TargetInput)
}

func TestSession_FetchFailureKeepsStaleView(t *testing.T) {
	gm := gomock.NewController(t)
	defer gm.Finish()

	s, m := startReady(t, gm)
	fetched := make(chan struct{})
	m.rates.EXPECT().GetRates(gomock.Any(), "INR").DoAndReturn(func(context.Context, string) (models.RateTable, error) {
		close(fetched)
		return nil, errors.New("provider down")
	})

	ctx := context.Background()
	_, err := s.Dispatch(ctx, models.Action{Type: models.ActionOpenPicker, Side: models.PickerBase})
	require.NoError(t, err)
	v, err := s.Dispatch(ctx, models.Action{Type: models.ActionSelect, Code: "INR"})
	require.NoError(t, err)
	assert.True(t, v.Loading)

	<-fetched
	require.Eventually(t, func() bool { return !s.View().Loading }, waitFor, tick)

	v = s.View()
	assert.Equal(t, "USD", v.Base.Code)
	assert.Equal(t, "1 USD = 0.91 EUR", v.Conversion.RateLine)
}

func TestSession_Subscribe(t *testing.T) {
	gm := gomock.NewController(t)
	defer gm.Finish()

	s, _ := startReady(t, gm)

	ch, cancel := s.Subscribe()
	first := <-ch
	assert.Equal(t, s.View(), first)
	assert.Equal(t, 1, s.Subscribers())

	_, err := s.Dispatch(context.Background(), models.Action{Type: models.ActionSearch, Keyword: "rup"})
	require.NoError(t, err)

	next := <-ch
	assert.Equal(t, "rup", next.Keyword)
	assert.Greater(t, next.Version, first.Version)

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)
	assert.Zero(t, s.Subscribers())
}

func TestSession_Close(t *testing.T) {
	gm := gomock.NewController(t)
	defer gm.Finish()
	_, providers := newMocks(gm)

	s := New(context.Background(), "s1", testConfig, providers, render.New(""))
	ch, _ := s.Subscribe()
	<-ch

	s.Close()
	s.Close()

	_, err := s.Dispatch(context.Background(), models.Action{Type: models.ActionSearch, Keyword: "x"})
	assert.ErrorIs(t, err, ErrSessionClosed)

	_, open := <-ch
	assert.False(t, open)
}

func TestSession_DispatchContextCanceled(t *testing.T) {
	gm := gomock.NewController(t)
	defer gm.Finish()
	_, providers := newMocks(gm)

	s := New(context.Background(), "s1", testConfig, providers, render.New(""))
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The loop may accept the action before noticing ctx, either outcome is fine.
	_, err := s.Dispatch(ctx, models.Action{Type: models.ActionSearch, Keyword: "x"})
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestSession_IdleFor(t *testing.T) {
	gm := gomock.NewController(t)
	defer gm.Finish()
	_, providers := newMocks(gm)

	s := New(context.Background(), "s1", testConfig, providers, render.New(""))
	defer s.Close()

	assert.Less(t, s.IdleFor(time.Now()), time.Minute)
	assert.GreaterOrEqual(t, s.IdleFor(time.Now().Add(time.Hour)), time.Hour-time.Second)
}

type requestValueKey struct{}

func TestSession_ProviderContextCarriesClientIPOnly(t *testing.T) {
	gm := gomock.NewController(t)
	defer gm.Finish()
	m, providers := newMocks(gm)

	type seen struct {
		ip       string
		hasIP    bool
		reqValue any
		err      error
	}
	got := make(chan seen, 1)
	m.location.EXPECT().LocalCurrency(gomock.Any()).DoAndReturn(func(ctx context.Context) (string, error) {
		ip, ok := facades.ClientIP(ctx)
		got <- seen{ip: ip, hasIP: ok, reqValue: ctx.Value(requestValueKey{}), err: ctx.Err()}
		return models.USD, nil
	})
	m.currencies.EXPECT().ListCurrencies(gomock.Any()).Return(testCurrencies, nil).AnyTimes()
	m.rates.EXPECT().GetRates(gomock.Any(), gomock.Any()).Return(usdRates, nil).AnyTimes()

	reqCtx, cancel := context.WithCancel(context.WithValue(context.Background(), requestValueKey{}, "req-1"))
	reqCtx = facades.WithClientIP(reqCtx, "81.2.69.160")

	s := New(reqCtx, "s1", testConfig, providers, render.New(""))
	defer s.Close()
	cancel()

	_, err := s.Dispatch(context.Background(), models.Action{Type: models.ActionInit})
	require.NoError(t, err)

	select {
	case v := <-got:
		assert.True(t, v.hasIP)
		assert.Equal(t, "81.2.69.160", v.ip)
		assert.Nil(t, v.reqValue)
		assert.NoError(t, v.err)
	case <-time.After(waitFor):
		t.Fatal("location was not resolved")
	}
}
