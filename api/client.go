package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lseungyeop/portfolio-admin/errs"
)

// AdminHeader carries the shared admin secret on every request that has
// one stored. The backend ignores it on public routes.
const AdminHeader = "X-Admin-Password"

// CredentialSource yields the stored admin secret, if any. Satisfied by
// *credstore.Store.
type CredentialSource interface {
	Get() (string, bool)
}

// UnauthorizedHook is invoked exactly once per 401/403 response, before the
// error is returned to the caller. The auth gate registers itself here;
// this is the single place where a dead admin session is detected.
type UnauthorizedHook func(statusCode int)

// Client talks to the portfolio backend. All calls go through a middleware
// chain that attaches the admin header, logs the round trip, and watches
// for deauthentication.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

type clientOptions struct {
	timeout     time.Duration
	credentials CredentialSource
	onUnauth    UnauthorizedHook
	transport   http.RoundTripper
}

type Option func(*clientOptions)

func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) { o.timeout = timeout }
}

func WithCredentials(source CredentialSource) Option {
	return func(o *clientOptions) { o.credentials = source }
}

func WithUnauthorizedHook(hook UnauthorizedHook) Option {
	return func(o *clientOptions) { o.onUnauth = hook }
}

// WithTransport replaces the base RoundTripper. Used by tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.transport = rt }
}

func NewClient(baseURL string, opts ...Option) *Client {
	options := clientOptions{
		timeout:   30 * time.Second,
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(&options)
	}

	logger := log.With().Str("component", "apiClient").Logger()

	// Innermost first: logging sees the final request, the deauth watcher
	// sees every response before anyone else reacts to it.
	transport := options.transport
	transport = loggingTransport(logger)(transport)
	transport = deauthTransport(options.onUnauth)(transport)
	transport = authHeaderTransport(options.credentials)(transport)
	transport = requestIDTransport()(transport)

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: options.timeout, Transport: transport},
		logger:     logger,
	}
}

// errorEnvelope matches the backend's error response body.
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// do issues one JSON request and decodes the response into out when out is
// non-nil. 401/403 responses become auth errors (the deauth hook has
// already fired by the time do sees them); other non-2xx responses become
// transport errors carrying the server's message when one is present.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	operation := fmt.Sprintf("%s %s", method, path)

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return errs.NewTransportError(operation, err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errs.NewTransportError(operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.NewTransportError(operation, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.NewTransportError(operation, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errs.NewAuthError(resp.StatusCode, serverMessage(bodyBytes))
	case resp.StatusCode >= 400:
		return errs.NewServerError(operation, resp.StatusCode, serverMessage(bodyBytes))
	}

	if out == nil || len(bodyBytes) == 0 {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		c.logger.Error().Err(err).Str("operation", operation).Msg("failed to decode response body")
		return errs.NewTransportError(operation, err)
	}
	return nil
}

func serverMessage(body []byte) string {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}
