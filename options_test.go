package client

import (
	"net/http"
	"testing"
	"time"
)

func TestNewClientOptions(t *testing.T) {
	t.Parallel()

	opts := newClientOptions()

	if opts.requestLogger == nil {
		t.Error("expected requestLogger to be set")
	}

	if opts.httpClient != nil {
		t.Error("expected httpClient to be unset")
	}

	if opts.debug {
		t.Error("expected debug to be disabled")
	}

	if opts.requestHeaders["Content-Type"] != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %s", opts.requestHeaders["Content-Type"])
	}

	if opts.requestHeaders["Accept"] != "application/json" {
		t.Errorf("expected Accept=application/json, got %s", opts.requestHeaders["Accept"])
	}

	if opts.requestHeaders["User-Agent"] != UserAgent() {
		t.Errorf("expected User-Agent=%s, got %s", UserAgent(), opts.requestHeaders["User-Agent"])
	}

	if _, ok := opts.requestHeaders["Authorization"]; ok {
		t.Error("expected no Authorization before the token exchange")
	}
}

func TestWithRequestLogger(t *testing.T) {
	t.Parallel()

	t.Run("valid logger", func(t *testing.T) {
		t.Parallel()

		opts := newClientOptions()
		logger := &NoopLogger{}
		WithRequestLogger(logger)(opts)

		if opts.requestLogger != logger {
			t.Error("expected requestLogger to be set")
		}
	})

	t.Run("nil ignored", func(t *testing.T) {
		t.Parallel()

		opts := newClientOptions()
		originalLogger := opts.requestLogger
		WithRequestLogger(nil)(opts)

		if opts.requestLogger != originalLogger {
			t.Error("nil logger should be ignored")
		}
	})
}

func TestWithRequestHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		header        string
		value         string
		stored        string
		expectIgnored bool
	}{
		{"valid header", "X-Custom", "value", "X-Custom", false},
		{"canonicalized", "x-custom", "value", "X-Custom", false},
		{"user agent override", "User-Agent", "my-app/1.0", "User-Agent", false},
		{"empty header ignored", "", "value", "", true},
		{"whitespace header ignored", "   ", "value", "", true},
		{"Content-Type protected", "Content-Type", "text/plain", "", true},
		{"content-type protected (case insensitive)", "content-type", "text/plain", "", true},
		{"Accept protected", "Accept", "text/plain", "", true},
		{"accept protected (case insensitive)", "ACCEPT", "text/plain", "", true},
		{"Authorization protected", "authorization", "Basic abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := newClientOptions()
			originalContentType := opts.requestHeaders["Content-Type"]
			originalAccept := opts.requestHeaders["Accept"]
			originalLen := len(opts.requestHeaders)

			WithRequestHeader(tt.header, tt.value)(opts)

			if tt.expectIgnored {
				if opts.requestHeaders["Content-Type"] != originalContentType {
					t.Error("Content-Type should not be changed")
				}
				if opts.requestHeaders["Accept"] != originalAccept {
					t.Error("Accept should not be changed")
				}
				if len(opts.requestHeaders) != originalLen {
					t.Error("ignored header should not add to headers")
				}
			} else if opts.requestHeaders[tt.stored] != tt.value {
				t.Errorf("expected header %s=%s, got %s", tt.stored, tt.value, opts.requestHeaders[tt.stored])
			}
		})
	}
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	t.Run("valid client", func(t *testing.T) {
		t.Parallel()

		opts := newClientOptions()
		hc := &http.Client{Timeout: 5 * time.Second}
		WithHTTPClient(hc)(opts)

		if opts.httpClient != hc {
			t.Error("expected httpClient to be set")
		}
	})

	t.Run("nil ignored", func(t *testing.T) {
		t.Parallel()

		opts := newClientOptions()
		WithHTTPClient(nil)(opts)

		if opts.httpClient != nil {
			t.Error("nil client should be ignored")
		}
	})
}

func TestWithDebug(t *testing.T) {
	t.Parallel()

	opts := newClientOptions()
	WithDebug(true)(opts)

	if !opts.debug {
		t.Error("expected debug to be enabled")
	}
}

func TestOptionsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		modify    func(*Options)
		wantError string
	}{
		{
			name:      "valid defaults",
			modify:    func(_ *Options) {},
			wantError: "",
		},
		{
			name:      "nil requestLogger",
			modify:    func(o *Options) { o.requestLogger = nil },
			wantError: "requestLogger must not be nil",
		},
		{
			name:      "nil requestHeaders",
			modify:    func(o *Options) { o.requestHeaders = nil },
			wantError: "requestHeaders must not be nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := newClientOptions()
			tt.modify(opts)

			err := opts.Validate()

			if tt.wantError == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.wantError)
				} else if err.Error() != tt.wantError {
					t.Errorf("expected error %q, got %q", tt.wantError, err.Error())
				}
			}
		})
	}
}
