package client

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTransport captures the request it receives instead of sending it.
type recordingTransport struct {
	last *http.Request
}

func (r *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r.last = req

	return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: req}, nil
}

func TestCSRFTransport(t *testing.T) {
	origin, err := url.Parse("http://bookmarks.local:5000")
	require.NoError(t, err)

	tests := []struct {
		name      string
		method    string
		url       string
		wantToken bool
	}{
		{name: "post to same origin", method: http.MethodPost, url: "http://bookmarks.local:5000/bookmarks/a/vote", wantToken: true},
		{name: "lowercase put to same origin", method: "put", url: "http://bookmarks.local:5000/x", wantToken: true},
		{name: "delete to same origin", method: http.MethodDelete, url: "http://BOOKMARKS.local:5000/x", wantToken: true},
		{name: "get is safe", method: http.MethodGet, url: "http://bookmarks.local:5000/x"},
		{name: "head is safe", method: http.MethodHead, url: "http://bookmarks.local:5000/x"},
		{name: "options is safe", method: http.MethodOptions, url: "http://bookmarks.local:5000/x"},
		{name: "trace is safe", method: http.MethodTrace, url: "http://bookmarks.local:5000/x"},
		{name: "other host", method: http.MethodPost, url: "http://evil.local:5000/x"},
		{name: "other port", method: http.MethodPost, url: "http://bookmarks.local:5001/x"},
		{name: "other scheme", method: http.MethodPost, url: "https://bookmarks.local:5000/x"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next := &recordingTransport{}
			transport := &csrfTransport{next: next, origin: origin, header: DefaultCSRFHeader, token: "tok"}

			req, err := http.NewRequest(tc.method, tc.url, nil)
			require.NoError(t, err)

			resp, err := transport.RoundTrip(req)
			require.NoError(t, err)
			resp.Body.Close()

			require.NotNil(t, next.last)

			if tc.wantToken {
				assert.Equal(t, "tok", next.last.Header.Get(DefaultCSRFHeader))
			} else {
				assert.Empty(t, next.last.Header.Get(DefaultCSRFHeader))
			}

			// The caller's request is never modified.
			assert.Empty(t, req.Header.Get(DefaultCSRFHeader))
		})
	}
}

func TestCSRFTransportWithoutToken(t *testing.T) {
	origin, err := url.Parse("http://bookmarks.local")
	require.NoError(t, err)

	next := &recordingTransport{}
	transport := &csrfTransport{next: next, origin: origin, header: DefaultCSRFHeader}

	req, err := http.NewRequest(http.MethodPost, "http://bookmarks.local/x", nil)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()

	_, present := next.last.Header[DefaultCSRFHeader]
	assert.False(t, present)
}

func TestSameOriginDefaultPorts(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{a: "http://example.com", b: "http://example.com:80/path", want: true},
		{a: "https://example.com:443", b: "https://example.com/path", want: true},
		{a: "http://example.com", b: "https://example.com", want: false},
		{a: "http://example.com:8080", b: "http://example.com", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.a+" "+tc.b, func(t *testing.T) {
			a, err := url.Parse(tc.a)
			require.NoError(t, err)
			b, err := url.Parse(tc.b)
			require.NoError(t, err)

			assert.Equal(t, tc.want, sameOrigin(a, b))
		})
	}
}

func TestIsSafeMethod(t *testing.T) {
	assert.True(t, IsSafeMethod("get"))
	assert.True(t, IsSafeMethod("TRACE"))
	assert.False(t, IsSafeMethod(http.MethodPost))
	assert.False(t, IsSafeMethod(http.MethodPatch))
}
