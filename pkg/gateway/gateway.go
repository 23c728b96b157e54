package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/folio-org/mod-patron-sub000/pkg/apierr"
	"github.com/folio-org/mod-patron-sub000/pkg/circuitbreaker"
)

const (
	DefaultTimeout  = 10 * time.Second
	ExtendedTimeout = 30 * time.Second
)

// Client performs JSON calls against one backend base URL. Headers given by
// the caller are forwarded verbatim on every request; a 2xx response yields
// the raw JSON body (nil when blank), any other status an *apierr.HTTPError.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	defaultTimeout  time.Duration
	extendedTimeout time.Duration
	breaker         *circuitbreaker.CircuitBreaker
}

type Option func(*Client)

func WithTimeouts(def, extended time.Duration) Option {
	return func(c *Client) {
		c.defaultTimeout = def
		c.extendedTimeout = extended
	}
}

// WithBreaker guards the client with a circuit breaker. Only transport
// failures and 5xx responses count against it.
func WithBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) {
		cb.SetFailurePredicate(func(err error) bool {
			var httpErr *apierr.HTTPError
			if errors.As(err, &httpErr) {
				return httpErr.StatusCode >= http.StatusInternalServerError
			}
			return err != nil
		})
		c.breaker = cb
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		httpClient:      &http.Client{},
		defaultTimeout:  DefaultTimeout,
		extendedTimeout: ExtendedTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, headers map[string]string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, headers, c.defaultTimeout)
}

// GetExtended is Get with the extended timeout, for slower downstream
// operations such as settings reads.
func (c *Client) GetExtended(ctx context.Context, path string, query url.Values, headers map[string]string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, headers, c.extendedTimeout)
}

func (c *Client) Post(ctx context.Context, path string, body interface{}, headers map[string]string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, body, headers, c.defaultTimeout)
}

func (c *Client) Put(ctx context.Context, path string, body interface{}, headers map[string]string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, nil, body, headers, c.defaultTimeout)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, headers map[string]string, timeout time.Duration) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body for %s: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	req.Header.Set("Accept", "application/json, text/plain")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	var result json.RawMessage
	call := func() error {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request to %s failed: %w", path, err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response from %s: %w", path, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &apierr.HTTPError{StatusCode: resp.StatusCode, Body: string(data)}
		}
		if len(bytes.TrimSpace(data)) > 0 {
			result = data
		}
		return nil
	}

	if c.breaker != nil {
		err = c.breaker.Execute(call)
	} else {
		err = call()
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetJSON is Get plus a decode into out; a decode failure on a successful
// response is a validation failure, not a transport one.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, headers map[string]string, out interface{}) error {
	data, err := c.Get(ctx, path, query, headers)
	if err != nil {
		return err
	}
	return decode(path, data, out)
}

func (c *Client) PostJSON(ctx context.Context, path string, body interface{}, headers map[string]string, out interface{}) error {
	data, err := c.Post(ctx, path, body, headers)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(path, data, out)
}

func decode(path string, data json.RawMessage, out interface{}) error {
	if data == nil {
		return apierr.NewValidationError(fmt.Sprintf("empty response body from %s", path))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apierr.NewValidationError(
			fmt.Sprintf("malformed response body from %s: %s", path, err.Error()))
	}
	return nil
}
