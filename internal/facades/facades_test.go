package facades

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider serves a fixed status and body and records the last request.
type fakeProvider struct {
	status int
	body   string
	last   *http.Request
}

func (p *fakeProvider) start(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.last = r
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(p.status)
		_, _ = w.Write([]byte(p.body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCurrencyFacade_ListCurrencies(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    []models.Currency
		wantErr error
	}{
		{
			name:   "keeps provider order",
			status: http.StatusOK,
			body: `{"data":{
				"USD":{"symbol":"$","name":"US Dollar","code":"USD"},
				"EUR":{"symbol":"€","name":"Euro","code":"EUR"},
				"INR":{"symbol":"₹","name":"Indian Rupee","code":"INR"}}}`,
			want: []models.Currency{
				{Code: "USD", Name: "US Dollar"},
				{Code: "EUR", Name: "Euro"},
				{Code: "INR", Name: "Indian Rupee"},
			},
		},
		{
			name:   "code falls back to key",
			status: http.StatusOK,
			body:   `{"data":{"JPY":{"name":"Japanese Yen"}}}`,
			want:   []models.Currency{{Code: "JPY", Name: "Japanese Yen"}},
		},
		{
			name:    "missing data",
			status:  http.StatusOK,
			body:    `{"message":"ok"}`,
			wantErr: ErrMalformedResponse,
		},
		{
			name:    "invalid json",
			status:  http.StatusOK,
			body:    `{"data":`,
			wantErr: ErrMalformedResponse,
		},
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{"message":"Invalid authentication credentials"}`,
			wantErr: ErrUnexpectedStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{status: tt.status, body: tt.body}
			srv := p.start(t)

			f := NewCurrencyFacade(NewHTTPClient(time.Second), srv.URL+"/v1/", "secret")
			got, err := f.ListCurrencies(context.Background())

			require.NotNil(t, p.last)
			assert.Equal(t, "/v1/currencies", p.last.URL.Path)
			assert.Equal(t, "secret", p.last.URL.Query().Get("apikey"))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExchangeRateFacade_GetRates(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    models.RateTable
		wantErr error
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"data":{"USD":1,"EUR":0.91,"INR":83.25}}`,
			want:   models.RateTable{"USD": 1, "EUR": 0.91, "INR": 83.25},
		},
		{
			name:    "non numeric rate",
			status:  http.StatusOK,
			body:    `{"data":{"USD":1,"EUR":"0.91"}}`,
			wantErr: ErrMalformedResponse,
		},
		{
			name:    "non positive rate",
			status:  http.StatusOK,
			body:    `{"data":{"USD":1,"EUR":0}}`,
			wantErr: ErrMalformedResponse,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `oops`,
			wantErr: ErrUnexpectedStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{status: tt.status, body: tt.body}
			srv := p.start(t)

			f := NewExchangeRateFacade(NewHTTPClient(time.Second), srv.URL+"/v1", "secret")
			got, err := f.GetRates(context.Background(), "USD")

			require.NotNil(t, p.last)
			assert.Equal(t, "/v1/latest", p.last.URL.Path)
			assert.Equal(t, "USD", p.last.URL.Query().Get("base_currency"))
			assert.Equal(t, "secret", p.last.URL.Query().Get("apikey"))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExchangeRateFacade_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewExchangeRateFacade(NewHTTPClient(time.Second), url, "k").GetRates(context.Background(), "USD")
	assert.Error(t, err)
}

func TestGeolocationFacade_Country(t *testing.T) {
	tests := []struct {
		name     string
		clientIP string
		status   int
		body     string
		wantPath string
		want     string
		wantErr  error
	}{
		{
			name:     "caller location",
			status:   http.StatusOK,
			body:     `{"ip":"1.2.3.4","country":"IN"}`,
			wantPath: "/json",
			want:     "IN",
		},
		{
			name:     "public client address",
			clientIP: "81.2.69.160",
			status:   http.StatusOK,
			body:     `{"country":"GB"}`,
			wantPath: "/81.2.69.160/json",
			want:     "GB",
		},
		{
			name:     "private client address uses caller",
			clientIP: "10.0.0.7",
			status:   http.StatusOK,
			body:     `{"country":"US"}`,
			wantPath: "/json",
			want:     "US",
		},
		{
			name:     "missing country",
			status:   http.StatusOK,
			body:     `{"ip":"1.2.3.4","bogon":true}`,
			wantPath: "/json",
			wantErr:  ErrMalformedResponse,
		},
		{
			name:     "rate limited",
			status:   http.StatusTooManyRequests,
			body:     `{"error":"rate limited"}`,
			wantPath: "/json",
			wantErr:  ErrUnexpectedStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{status: tt.status, body: tt.body}
			srv := p.start(t)

			ctx := context.Background()
			if tt.clientIP != "" {
				ctx = WithClientIP(ctx, tt.clientIP)
			}

			got, err := NewGeolocationFacade(NewHTTPClient(time.Second), srv.URL, "tok").Country(ctx)

			require.NotNil(t, p.last)
			assert.Equal(t, tt.wantPath, p.last.URL.Path)
			assert.Equal(t, "tok", p.last.URL.Query().Get("token"))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
