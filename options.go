package client

import (
	"errors"
	"net/http"
	"strings"
)

type Option func(*Options)

type Options struct {
	requestLogger  RequestLogger
	requestHeaders map[string]string
	httpClient     *http.Client
	debug          bool
}

func newClientOptions() *Options {
	return &Options{
		requestLogger: &NoopLogger{},
		requestHeaders: map[string]string{
			"Accept":       "application/json",
			"Content-Type": "application/json",
			"User-Agent":   UserAgent(),
		},
	}
}

func WithRequestLogger(logger RequestLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.requestLogger = logger
		}
	}
}

// WithRequestHeader adds a header sent with every request, the token exchange
// included. Content-Type, Accept and Authorization are managed by the client
// and cannot be overridden here; use [Client.AddHeaders] after construction.
func WithRequestHeader(header, value string) Option {
	return func(o *Options) {
		header = strings.TrimSpace(header)

		if header == "" || isProtectedHeader(header) {
			return
		}

		o.requestHeaders[http.CanonicalHeaderKey(header)] = value
	}
}

// WithHTTPClient sets the underlying *http.Client used by the resty
// transport. Useful for custom transports in tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *Options) {
		if hc != nil {
			o.httpClient = hc
		}
	}
}

// WithDebug enables resty's request/response debug output, written through
// the configured [RequestLogger]. Bodies are logged verbatim, the token
// exchange included, so never enable this in production.
func WithDebug(enabled bool) Option {
	return func(o *Options) {
		o.debug = enabled
	}
}

func (o *Options) Validate() error {
	if o.requestLogger == nil {
		return errors.New("requestLogger must not be nil")
	}

	if o.requestHeaders == nil {
		return errors.New("requestHeaders must not be nil")
	}

	return nil
}

func isProtectedHeader(header string) bool {
	return strings.EqualFold(header, "Content-Type") ||
		strings.EqualFold(header, "Accept") ||
		strings.EqualFold(header, "Authorization")
}
