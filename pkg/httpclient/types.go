package httpclient

import (
	"net/http"
	"time"
)

const (
	DefaultTimeout               = 10 * time.Second
	DefaultUserAgent             = "notespace-client/1.0"
	DefaultInvalidRequestMessage = "Invalid request"

	headerRequestID = "X-Request-ID"
	maxBodyBytes    = 4 << 20
)

// CredentialStore is what the client needs from the session: the current
// token, and a way to drop it when the backend rejects it.
type CredentialStore interface {
	Token() string
	Clear() error
}

// Config holds the client settings.
type Config struct {
	BaseURL   string        // e.g. http://localhost:8000/api
	Timeout   time.Duration // per request, default 10s
	RateLimit float64       // requests per second, 0 disables throttling
	UserAgent string

	// Transport overrides http.DefaultTransport.
	Transport http.RoundTripper
}

// RequestOption tweaks a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	token    string
	override bool
	noAuth   bool
}

// WithToken sends token instead of the stored one.
func WithToken(token string) RequestOption {
	return func(o *requestOptions) {
		o.token = token
		o.override = true
	}
}

// WithoutAuth sends the request with no Authorization header.
func WithoutAuth() RequestOption {
	return func(o *requestOptions) {
		o.noAuth = true
	}
}
