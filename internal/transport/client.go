// Package transport provides the HTTP client shared by the remote sources.
// It applies authentication and fixed headers, throttles requests with a
// token bucket, and retries transient failures with exponential backoff.
package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/agentstation/citecheck/pkg/constants"
	"github.com/agentstation/citecheck/pkg/errors"
	"github.com/agentstation/citecheck/pkg/logging"
)

// Client provides HTTP client functionality with authentication, rate
// limiting and retries.
type Client struct {
	service        string
	http           *http.Client
	auth           Authenticator
	apiKey         string
	headers        map[string]string
	limiter        *rate.Limiter
	maxAttempts    int
	initialBackoff time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithAuth sets the authenticator and the key it applies.
func WithAuth(auth Authenticator, apiKey string) Option {
	return func(c *Client) {
		c.auth = auth
		c.apiKey = apiKey
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithHeader sets a header on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithRateLimit caps the request rate; a non-positive rate disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithRetry sets the number of attempts and the delay before the first retry.
// The delay doubles after every failed attempt.
func WithRetry(maxAttempts int, initialBackoff time.Duration) Option {
	return func(c *Client) {
		if maxAttempts < 1 {
			maxAttempts = 1
		}
		c.maxAttempts = maxAttempts
		c.initialBackoff = initialBackoff
	}
}

// New creates a transport client for the named service.
func New(service string, opts ...Option) *Client {
	c := &Client{
		service:        service,
		http:           &http.Client{Timeout: constants.DefaultHTTPTimeout},
		auth:           &NoAuth{},
		headers:        map[string]string{"Accept": "application/json"},
		limiter:        rate.NewLimiter(rate.Limit(constants.DefaultRateLimit), constants.BurstSize),
		maxAttempts:    constants.MaxAttempts,
		initialBackoff: constants.RetryBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Service returns the name used in errors and logs.
func (c *Client) Service() string {
	return c.service
}

// Do performs a single request. Non-2xx responses are returned as an
// *errors.APIError with the response body as message; the body is closed.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	c.auth.Apply(req, c.apiKey)

	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		return nil, errors.WrapAPI(c.service, 0, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		message := string(body)
		if message == "" {
			message = resp.Status
		}
		apiErr := errors.NewAPIError(c.service, resp.StatusCode, message)
		apiErr.Endpoint = req.URL.String()
		return nil, apiErr
	}

	return resp, nil
}

// GetJSON fetches url and decodes the JSON body into target, retrying
// transport failures, rate limiting, 5xx responses and undecodable bodies.
// The response headers of the successful attempt are returned.
func (c *Client) GetJSON(ctx context.Context, url string, target any) (http.Header, error) {
	logger := logging.FromContext(ctx)

	var header http.Header
	attempt := 0
	op := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(errors.WrapResource("create", "request", url, err))
		}

		resp, err := c.Do(ctx, req)
		if err != nil {
			if ctx.Err() != nil || !errors.IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return errors.WrapParse("json", c.service+" response", err)
		}
		header = resp.Header
		return nil
	}

	notify := func(err error, wait time.Duration) {
		logger.Warn().
			Err(err).
			Str("service", c.service).
			Int("attempt", attempt).
			Bool("rate_limited", errors.IsRateLimited(err)).
			Dur("retry_in", wait).
			Msg("Request failed, retrying")
	}

	if err := backoff.RetryNotify(op, c.policy(ctx), notify); err != nil {
		// Only a retryable failure on the final attempt means retries ran out.
		if attempt >= c.maxAttempts && ctx.Err() == nil && errors.IsRetryable(err) {
			return nil, &errors.APIError{
				Service:  c.service,
				Endpoint: url,
				Message:  "max retries exceeded",
				Err:      err,
			}
		}
		return nil, err
	}
	return header, nil
}

// policy returns a fresh exponential schedule: initialBackoff, then doubling,
// for at most maxAttempts attempts.
func (c *Client) policy(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.initialBackoff
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxInterval = time.Duration(1<<uint(c.maxAttempts)) * c.initialBackoff
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(c.maxAttempts-1)), ctx)
}
