package facades

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

type clientIPKey struct{}

// WithClientIP attaches the end user's address to ctx so the lookup locates
// the user rather than this server.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP returns the address attached by WithClientIP.
func ClientIP(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPKey{}).(string)
	return ip, ok
}

func clientIPFrom(ctx context.Context) net.IP {
	s, _ := ClientIP(ctx)
	ip := net.ParseIP(s)
	if ip == nil || ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() {
		return nil
	}
	return ip
}

// GeolocationFacade resolves a country from an ipinfo-style provider:
// {baseURL}/json for the caller, {baseURL}/{ip}/json for a given address.
type GeolocationFacade struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewGeolocationFacade creates a facade for baseURL, e.g. https://ipinfo.io.
func NewGeolocationFacade(client *http.Client, baseURL, token string) *GeolocationFacade {
	return &GeolocationFacade{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

// Country returns the two-letter country code of the client in ctx, or of
// this server when ctx carries no public address.
func (f *GeolocationFacade) Country(ctx context.Context) (string, error) {
	endpoint := f.baseURL + "/json"
	if ip := clientIPFrom(ctx); ip != nil {
		endpoint = f.baseURL + "/" + ip.String() + "/json"
	}

	body, err := getJSON(ctx, f.client, "geolocation", endpoint, url.Values{"token": {f.token}})
	if err != nil {
		return "", err
	}

	country := gjson.GetBytes(body, "country")
	if country.Type != gjson.String {
		return "", fmt.Errorf("%w: geolocation body has no country", ErrMalformedResponse)
	}
	return country.String(), nil
}
