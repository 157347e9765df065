package client

import (
	"net"
	"net/http"
	"net/url"
	"strings"
)

// csrfTransport signs state-changing same-origin requests with the CSRF token.
type csrfTransport struct {
	next   http.RoundTripper
	origin *url.URL
	header string
	token  string
}

func (t *csrfTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token == "" || IsSafeMethod(req.Method) || !sameOrigin(t.origin, req.URL) {
		return t.next.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request.
	signed := req.Clone(req.Context())
	signed.Header.Set(t.header, t.token)

	return t.next.RoundTrip(signed)
}

// IsSafeMethod reports whether the method never needs a CSRF token.
func IsSafeMethod(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}

func sameOrigin(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) && strings.EqualFold(hostPort(a), hostPort(b))
}

func hostPort(u *url.URL) string {
	if u.Port() != "" {
		return u.Host
	}

	switch strings.ToLower(u.Scheme) {
	case "http":
		return net.JoinHostPort(u.Hostname(), "80")
	case "https":
		return net.JoinHostPort(u.Hostname(), "443")
	default:
		return u.Host
	}
}
