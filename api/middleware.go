package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// roundTripperFunc adapts a function to http.RoundTripper, the client-side
// mirror of http.HandlerFunc.
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type transportMiddleware func(http.RoundTripper) http.RoundTripper

// requestIDTransport tags each outgoing request so backend logs can be
// correlated with client logs.
func requestIDTransport() transportMiddleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			r := req.Clone(req.Context())
			r.Header.Set("X-Request-Id", uuid.NewString())
			return next.RoundTrip(r)
		})
	}
}

// authHeaderTransport attaches the stored admin secret to every outgoing
// request. No other component reads the credential store on the request
// path.
func authHeaderTransport(credentials CredentialSource) transportMiddleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if credentials == nil {
				return next.RoundTrip(req)
			}
			secret, ok := credentials.Get()
			if !ok {
				return next.RoundTrip(req)
			}
			r := req.Clone(req.Context())
			r.Header.Set(AdminHeader, secret)
			return next.RoundTrip(r)
		})
	}
}

// deauthTransport inspects every inbound response. On 401 or 403 it fires
// the hook that kills the admin session; the response still flows back to
// the caller so the originating operation can report its own failure.
func deauthTransport(hook UnauthorizedHook) transportMiddleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(req)
			if err != nil {
				return nil, err
			}
			if hook != nil &&
				(resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
				hook(resp.StatusCode)
			}
			return resp, nil
		})
	}
}

// loggingTransport logs each round trip with a level keyed to the status
// class.
func loggingTransport(logger zerolog.Logger) transportMiddleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(req)
			duration := time.Since(start)

			if err != nil {
				logger.Error().
					Str("method", req.Method).
					Str("path", req.URL.Path).
					Dur("duration", duration).
					Err(err).
					Msg("HTTP Request")
				return nil, err
			}

			var logEvent *zerolog.Event
			switch {
			case resp.StatusCode >= 500:
				logEvent = logger.Error()
			case resp.StatusCode >= 400:
				logEvent = logger.Warn()
			default:
				logEvent = logger.Info()
			}

			logEvent.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", resp.StatusCode).
				Dur("duration", duration).
				Msg("HTTP Request")

			return resp, nil
		})
	}
}
