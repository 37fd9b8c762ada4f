package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/aakashsubedi/NoteSpace/pkg/log"
)

// Client executes JSON requests against the backend, attaching the session
// token and normalizing every failure into an *APIError. It never retries.
type Client struct {
	baseURL    string
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	creds      CredentialStore
	l          log.Logger
}

// New creates a Client. creds may be nil for a client that never
// authenticates.
func New(cfg Config, creds CredentialStore, l log.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	if l == nil {
		l = log.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    timeout,
		userAgent:  userAgent,
		httpClient: &http.Client{Transport: transport},
		limiter:    limiter,
		creds:      creds,
		l:          l,
	}
}

// BaseURL returns the backend root every path is joined to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends the request and decodes a successful JSON body into out.
// out may be nil, and an empty body leaves out untouched.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	raw, err := c.Request(ctx, method, path, body, opts...)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{
			Kind:   KindUnknown,
			Detail: fmt.Sprintf("malformed response body: %v", err),
		}
	}
	return nil
}

// Request sends the request and returns the raw JSON body of a 2xx response.
func (c *Client) Request(ctx context.Context, method, path string, body any, opts ...RequestOption) ([]byte, error) {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	reqID := uuid.NewString()
	ctx = log.WithRequestID(ctx, reqID)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			apiErr := c.waitError(err)
			apiErr.RequestID = reqID
			c.l.Warnf(ctx, "httpclient.Request: %s %s throttled: %v", method, path, err)
			return nil, apiErr
		}
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("httpclient.Request: failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("httpclient.Request: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(headerRequestID, reqID)
	if token := c.token(o); token != "" {
		(&oauth2.Token{AccessToken: token}).SetAuthHeader(req)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := c.transportError(ctx, err)
		apiErr.RequestID = reqID
		c.l.Warnf(ctx, "httpclient.Request: %s %s failed after %s: %v", method, path, time.Since(start), err)
		return nil, apiErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		apiErr := c.transportError(ctx, err)
		apiErr.RequestID = reqID
		c.l.Warnf(ctx, "httpclient.Request: %s %s body read failed: %v", method, path, err)
		return nil, apiErr
	}
	if len(raw) > maxBodyBytes {
		c.l.Errorf(ctx, "httpclient.Request: %s %s body exceeds %d bytes", method, path, maxBodyBytes)
		return nil, &APIError{
			Kind:      KindUnknown,
			Status:    resp.StatusCode,
			Detail:    fmt.Sprintf("response too large: body exceeds %d bytes", maxBodyBytes),
			RequestID: reqID,
		}
	}

	c.l.Debugf(ctx, "httpclient.Request: %s %s -> %d in %s", method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	apiErr := errorFromResponse(resp.StatusCode, raw)
	apiErr.RequestID = reqID

	if apiErr.Kind == KindUnauthenticated && c.creds != nil {
		if clearErr := c.creds.Clear(); clearErr != nil {
			c.l.Errorf(ctx, "httpclient.Request: failed to clear session after 401: %v", clearErr)
		} else {
			c.l.Infof(ctx, "httpclient.Request: session cleared after 401 on %s %s", method, path)
		}
	}

	return nil, apiErr
}

func (c *Client) url(path string) string {
	if path == "" {
		return c.baseURL
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) token(o requestOptions) string {
	switch {
	case o.noAuth:
		return ""
	case o.override:
		return o.token
	case c.creds != nil:
		return c.creds.Token()
	default:
		return ""
	}
}

// transportError classifies a failure that produced no usable response.
func (c *Client) transportError(ctx context.Context, err error) *APIError {
	if errors.Is(err, context.Canceled) {
		return &APIError{Kind: KindUnknown, Detail: "request canceled"}
	}
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return &APIError{Kind: KindTimeout, Detail: fmt.Sprintf("no response within %s", c.timeout)}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &APIError{Kind: KindTimeout, Detail: fmt.Sprintf("no response within %s", c.timeout)}
	}
	return &APIError{Kind: KindNetworkUnavailable, Detail: err.Error()}
}

// waitError classifies a failed limiter wait. Wait fails only when ctx ends
// or when the next token would arrive after the request deadline.
func (c *Client) waitError(err error) *APIError {
	if errors.Is(err, context.Canceled) {
		return &APIError{Kind: KindUnknown, Detail: "request canceled"}
	}
	return &APIError{Kind: KindTimeout, Detail: fmt.Sprintf("rate limit wait exceeds the %s request timeout", c.timeout)}
}

// errorFromResponse maps a non-2xx status and its body to an APIError.
func errorFromResponse(status int, raw []byte) *APIError {
	switch {
	case status == http.StatusUnauthorized:
		return &APIError{Kind: KindUnauthenticated, Status: status, Detail: detailFromBody(raw)}
	case status == http.StatusBadRequest:
		detail := detailFromBody(raw)
		if detail == "" {
			detail = DefaultInvalidRequestMessage
		}
		return &APIError{Kind: KindInvalidRequest, Status: status, Detail: detail}
	case status == http.StatusNotFound:
		return &APIError{Kind: KindNotFound, Status: status, Detail: detailFromBody(raw)}
	case status >= http.StatusInternalServerError:
		return &APIError{Kind: KindServerError, Status: status, Detail: detailFromBody(raw)}
	default:
		detail := detailFromBody(raw)
		if detail == "" {
			detail = http.StatusText(status)
		}
		return &APIError{Kind: KindUnknown, Status: status, Detail: detail}
	}
}

// detailFromBody pulls a human-readable message out of an error body.
// It looks at detail, message and error in that order, then falls back to
// the first field validation message ("username: already exists").
func detailFromBody(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return ""
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}

	for _, key := range []string{"detail", "message", "error"} {
		if s, ok := body[key].(string); ok && s != "" {
			return s
		}
	}

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		msg := firstString(body[k])
		if msg == "" {
			continue
		}
		if k == "non_field_errors" {
			return msg
		}
		return k + ": " + msg
	}
	return ""
}

func firstString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
