package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "rest-user-client/pkg/errors"
	"rest-user-client/pkg/logger"
)

const (
	defaultTimeout               = 30 * time.Second
	defaultDialTimeout           = 10 * time.Second
	defaultTLSHandshakeTimeout   = 10 * time.Second
	defaultResponseHeaderTimeout = 15 * time.Second
)

// Config is the endpoint configuration: where requests go and which
// credential travels with them. Immutable once the client is constructed.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration // overall per-request timeout, defaultTimeout when zero
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithCodec replaces the default JSON wire encoding.
func WithCodec(codec Codec) Option {
	return func(c *Client) {
		c.codec = codec
	}
}

// Client issues one HTTP request per call against a fixed base URL and
// decodes the response. It holds no state between calls beyond the endpoint
// configuration; connections are not reused.
type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
	codec   Codec
	log     *zap.Logger
}

// New creates a Client for the configured endpoint.
func New(cfg Config, log *zap.Logger, opts ...Option) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		baseURL: base,
		apiKey:  cfg.APIKey,
		http:    newHTTPClient(timeout),
		codec:   JSONCodec{},
		log:     log,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// newHTTPClient builds a non-shared transport: every call dials fresh, no
// idle connections are kept between requests.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   defaultDialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			TLSHandshakeTimeout:   defaultTLSHandshakeTimeout,
			ResponseHeaderTimeout: defaultResponseHeaderTimeout,
			DisableKeepAlives:     true,
			MaxIdleConnsPerHost:   -1,
		},
	}
}

// Do performs one HTTP exchange. The path is joined to the base URL, body is
// encoded by the codec when non-nil, and the response body is decoded into
// out when non-nil. A transport-level failure, a non-2xx status, or an
// undecodable response all surface as *errors.HTTPError. No retries.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	u := c.baseURL.JoinPath(path).String()

	var payload io.Reader
	if body != nil {
		data, err := c.codec.Marshal(body)
		if err != nil {
			return apperrors.WrapHTTPError(method, u, 0, fmt.Errorf("encoding request body: %w", err))
		}
		payload = bytes.NewReader(data)
	}

	ctx, requestID := logger.ContextWithRequestID(ctx)
	log := logger.WithContext(ctx, c.log).With(
		zap.String("method", method),
		zap.String("url", u),
	)

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return apperrors.WrapHTTPError(method, u, 0, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", c.codec.ContentType())
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", c.codec.ContentType()+"; charset=utf-8")
	}

	log.Debug("sending request")
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("request failed", zap.Error(err))
		return apperrors.WrapHTTPError(method, u, 0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("reading response failed", zap.Error(err))
		return apperrors.WrapHTTPError(method, u, resp.StatusCode, err)
	}

	log.Debug("request completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return apperrors.NewHTTPError(method, u, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	if err := c.codec.Unmarshal(raw, out); err != nil {
		log.Error("decoding response failed", zap.Error(err))
		return apperrors.WrapHTTPError(method, u, resp.StatusCode, fmt.Errorf("decoding response body: %w", err))
	}

	return nil
}

// Get issues a GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE and discards any response body.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}
