package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dasdy/bookvote/model"
)

const (
	DefaultCSRFHeader = "X-CSRFToken"
	DefaultTimeout    = 10 * time.Second

	jsonContentType = "application/json;charset=UTF-8"
	// Upper bound on response bodies read back.
	maxBodySize = 64 << 10
)

var (
	ErrRequestFailed = errors.New("vote request failed")
	ErrInvalidVote   = errors.New("vote must be 1 or -1")
)

// RequestFailedError carries the status and body of a failed submission.
// StatusCode is 0 when the request never got a response.
type RequestFailedError struct {
	StatusCode int
	Body       string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Body)
}

func (e *RequestFailedError) Unwrap() error {
	return ErrRequestFailed
}

type Config struct {
	BaseURL    string
	CSRFToken  string
	CSRFHeader string
	Timeout    time.Duration
	// Transport is the underlying round tripper, http.DefaultTransport when nil.
	Transport http.RoundTripper
}

// Client talks to the bookmarks voting endpoint. It is built once and shared
// by every row; the CSRF header is added by its transport.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base url is required")
	}

	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("could not parse base url %s: %w", cfg.BaseURL, err)
	}

	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("base url %s must be absolute", cfg.BaseURL)
	}

	if cfg.CSRFHeader == "" {
		cfg.CSRFHeader = DefaultCSRFHeader
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	if cfg.CSRFToken == "" {
		slog.Warn("No CSRF token configured, state-changing requests will likely be rejected")
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &csrfTransport{
				next:   transport,
				origin: baseURL,
				header: cfg.CSRFHeader,
				token:  cfg.CSRFToken,
			},
		},
	}, nil
}

// VoteURL returns the endpoint for voting on the bookmark with the given title.
// A slash inside the title stays escaped; the base query is kept, the fragment dropped.
func (c *Client) VoteURL(title string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + "/bookmarks/" + title + "/vote"
	u.RawPath = strings.TrimRight(c.baseURL.EscapedPath(), "/") + "/bookmarks/" + url.PathEscape(title) + "/vote"
	u.Fragment = ""
	u.RawFragment = ""

	return u.String()
}

type voteRequest struct {
	Vote int `json:"vote"`
}

// SubmitVote posts the vote and returns the response status with the new
// rating as reported by the server.
func (c *Client) SubmitVote(ctx context.Context, title string, value int) (model.VoteResponse, error) {
	var none model.VoteResponse

	if value != 1 && value != -1 {
		return none, fmt.Errorf("%w: got %d", ErrInvalidVote, value)
	}

	payload, err := json.Marshal(voteRequest{Vote: value})
	if err != nil {
		return none, fmt.Errorf("could not encode vote: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.VoteURL(title), bytes.NewReader(payload))
	if err != nil {
		return none, fmt.Errorf("could not build vote request: %w", err)
	}

	req.Header.Set("Content-Type", jsonContentType)

	slog.DebugContext(ctx, "Submitting vote", "url", req.URL.String(), "vote", value)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return none, &RequestFailedError{StatusCode: 0, Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return none, &RequestFailedError{StatusCode: resp.StatusCode, Body: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return none, &RequestFailedError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return model.VoteResponse{Status: resp.StatusCode, Rating: parseRating(body)}, nil
}

// parseRating unwraps JSON strings and numbers; anything else is used as is.
func parseRating(body []byte) string {
	trimmed := bytes.TrimSpace(body)

	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		return text
	}

	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err == nil {
		return number.String()
	}

	return string(trimmed)
}
