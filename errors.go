package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// ErrInvalidToken is returned by [New] when the token endpoint answers with a
// success status but the body carries no usable access_token.
var ErrInvalidToken = errors.New("access token is invalid")

// HTTPError is returned when the ClearPass API answers with a 4xx or 5xx
// status code, both for the token exchange and for the verb helpers.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.URL, e.StatusCode, errorMessage(e.Body))
}

// IsHTTPError reports whether err is (or wraps) an [HTTPError] and returns it.
func IsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}

	return nil, false
}

func newHTTPError(method, url string, resp *resty.Response) *HTTPError {
	return &HTTPError{
		Method:     method,
		URL:        url,
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}
}

// errorMessage extracts a human readable message from an error body. ClearPass
// answers with problem+json ("detail") for API errors and with OAuth2 style
// bodies ("error_description", "error") from the token endpoint.
func errorMessage(body []byte) string {
	if len(body) == 0 {
		return "(empty error body)"
	}

	var payload struct {
		Detail           string `json:"detail"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}

	if err := json.Unmarshal(body, &payload); err == nil {
		for _, msg := range []string{payload.Detail, payload.ErrorDescription, payload.Error} {
			if strings.TrimSpace(msg) != "" {
				return msg
			}
		}
	}

	return string(body)
}
