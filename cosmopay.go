// Package cosmopay is a client for the Cosmo Pay API, the payment platform for
// Telegram mini apps: invoices, multi-user cheques, transfers and withdrawals.
//
// Construct a client with the application's API key and call the typed
// operations on it:
//
//	client, err := cosmopay.NewClient(os.Getenv("COSMOPAY_API_KEY"))
//	if err != nil {
//		// ...
//	}
//	invoice, err := client.CreateInvoice(ctx, &cosmopay.CreateInvoiceParams{
//		Amount:   decimal.NewFromInt(5),
//		Currency: cosmopay.CurrencyToncoin,
//	})
//
// Inbound payment notifications are handled by the webhook subpackage.
package cosmopay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/go-querystring/query"
)

// Version is the version of this client library.
const Version = "1.2.0"

const (
	defaultBaseURL = "https://pay.cosmopay.io/api/v1/"
	defaultTimeout = 30 * time.Second

	apiKeyHeader     = "Cosmo-Pay-Key"
	defaultUserAgent = "cosmopay-go/" + Version
)

// Client calls the Cosmo Pay API. Use NewClient to construct one; the zero
// value is not usable.
type Client struct {
	baseURL    *url.URL
	rawBaseURL string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
	validate   *validator.Validate
}

// Option configures a Client during NewClient.
type Option func(*Client)

// WithBaseURL overrides the API base URL, for self-hosted gateways and tests.
func WithBaseURL(rawURL string) Option {
	return func(c *Client) {
		c.rawBaseURL = rawURL
	}
}

// WithHTTPClient replaces the underlying HTTP client, e.g. to add an
// instrumented transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger attaches a logger for debug-level request logging. Without it the
// client is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// NewClient creates a Cosmo Pay API client authenticating with the given API
// key. The key is issued per application in the Cosmo Pay dashboard and is the
// same secret that signs webhook deliveries.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		rawBaseURL: defaultBaseURL,
		apiKey:     apiKey,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.New(slog.DiscardHandler),
		validate:   validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}

	base, err := url.Parse(c.rawBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", c.rawBaseURL, err)
	}
	// Relative request paths resolve against the base, so it must end in "/".
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	c.baseURL = base

	return c, nil
}

// newRequest builds an API request for the given relative path. A non-nil body
// is JSON-encoded.
func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("invalid request path %q: %w", path, err)
	}
	u := c.baseURL.ResolveReference(rel)

	var buf io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		buf = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// addOptions encodes opts into the query string of path using its url struct
// tags. A nil opts pointer leaves the path untouched.
func addOptions(path string, opts any) (string, error) {
	v := reflect.ValueOf(opts)
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return path, nil
	}

	u, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid request path %q: %w", path, err)
	}

	values, err := query.Values(opts)
	if err != nil {
		return "", fmt.Errorf("failed to encode query options: %w", err)
	}
	u.RawQuery = values.Encode()

	return u.String(), nil
}

// apiEnvelope is the wire shape every Cosmo Pay response uses: a success flag,
// the payload under data, and message/errors on failures.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Errors  []FieldError    `json:"errors,omitempty"`
}

// do sends the request and decodes the enveloped response payload into v when
// v is non-nil. API-level failures are returned as *APIError.
func (c *Client) do(req *http.Request, v any) error {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// A canceled context is more useful to the caller than the transport
		// error it caused.
		select {
		case <-req.Context().Done():
			return req.Context().Err()
		default:
		}
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}

	body, readErr := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("failed to read response body: %w", readErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close response body: %w", closeErr)
	}

	c.logger.Debug("cosmopay api call",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp.StatusCode, body)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !envelope.Success {
		return newAPIError(resp.StatusCode, body)
	}

	if v == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// validateParams runs struct validation on request parameters before any
// network I/O.
func (c *Client) validateParams(params any) error {
	if err := c.validate.Struct(params); err != nil {
		return fmt.Errorf("invalid request parameters: %w", err)
	}
	return nil
}
