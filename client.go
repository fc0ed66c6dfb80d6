package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
)

// DefaultGrantType is used when [Credentials.GrantType] is empty.
const DefaultGrantType = "client_credentials"

const (
	apiPrefix = "api"
	tokenPath = "/oauth"
)

// Credentials are the OAuth parameters exchanged for an access token once,
// when the client is created.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	GrantType    string
}

type tokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Username     string `json:"username"`
	Password     string `json:"password"`
}

// Client talks to the ClearPass REST API with a single bearer token obtained
// at construction. The token is never renewed; create a new Client when it
// expires.
type Client struct {
	baseURL     string
	credentials Credentials
	token       *oauth2.Token
	restyClient *resty.Client
	options     *Options

	mu      sync.RWMutex
	headers map[string]string
}

// New creates a client for the ClearPass server at baseURL and exchanges
// creds for an access token. It returns an [*HTTPError] if the token
// endpoint answers with an error status and an error matching
// [ErrInvalidToken] if the answer carries no access_token.
func New(ctx context.Context, baseURL string, creds Credentials, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("base URL must be set")
	}

	if creds.ClientID == "" {
		return nil, errors.New("client ID must be set")
	}

	if creds.GrantType == "" {
		creds.GrantType = DefaultGrantType
	}

	options := newClientOptions()

	for _, o := range opts {
		o(options)
	}

	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	var restyClient *resty.Client
	if options.httpClient != nil {
		restyClient = resty.NewWithClient(options.httpClient)
	} else {
		restyClient = resty.New()
	}

	restyClient.SetLogger(options.requestLogger).SetDebug(options.debug)

	c := &Client{
		baseURL:     baseURL,
		credentials: creds,
		restyClient: restyClient,
		options:     options,
		headers:     maps.Clone(options.requestHeaders),
	}

	token, err := c.requestToken(ctx)
	if err != nil {
		return nil, err
	}

	c.token = token
	c.AddHeaders(map[string]string{"Authorization": "Bearer " + token.AccessToken})

	return c, nil
}

func (c *Client) requestToken(ctx context.Context) (*oauth2.Token, error) {
	body := tokenRequest{
		GrantType:    c.credentials.GrantType,
		ClientID:     c.credentials.ClientID,
		ClientSecret: c.credentials.ClientSecret,
		Username:     c.credentials.Username,
		Password:     c.credentials.Password,
	}

	c.options.requestLogger.Debugf("requesting %s access token for client %s", body.GrantType, body.ClientID)

	resp, err := c.do(ctx, http.MethodPost, tokenPath, nil, nil, body)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain access token: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(resp.Body(), &token); err != nil {
		return nil, fmt.Errorf("%w: failed to decode token response: %v", ErrInvalidToken, err)
	}

	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: no access_token in token response", ErrInvalidToken)
	}

	return &token, nil
}

// BuildURL joins the base URL, the fixed "api" segment and path. Leading and
// trailing slashes on path are dropped; path is not otherwise validated.
func (c *Client) BuildURL(path string) string {
	return strings.TrimRight(c.baseURL, "/") + "/" + apiPrefix + "/" + strings.Trim(path, "/")
}

// AddHeaders merges headers into the headers sent with every request,
// overwriting existing values.
func (c *Client) AddHeaders(headers map[string]string) {
	if len(headers) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for k, v := range headers {
		c.headers[http.CanonicalHeaderKey(k)] = v
	}
}

// RemoveHeaders drops the named headers. Names that are not set are ignored.
func (c *Client) RemoveHeaders(keys []string) {
	if len(keys) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		delete(c.headers, http.CanonicalHeaderKey(k))
	}
}

// Headers returns a copy of the headers sent with every request.
func (c *Client) Headers() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return maps.Clone(c.headers)
}

// Get issues a GET request against path. headers override the client headers
// for this call only.
func (c *Client) Get(ctx context.Context, path string, headers map[string]string, params url.Values) (*resty.Response, error) {
	return c.do(ctx, http.MethodGet, path, headers, params, nil)
}

// Post issues a POST request against path with data encoded as JSON. Pass a
// json.RawMessage to send an already encoded document.
func (c *Client) Post(ctx context.Context, path string, headers map[string]string, data any) (*resty.Response, error) {
	return c.do(ctx, http.MethodPost, path, headers, nil, data)
}

// Put issues a PUT request against path with data encoded as JSON.
func (c *Client) Put(ctx context.Context, path string, headers map[string]string, data any) (*resty.Response, error) {
	return c.do(ctx, http.MethodPut, path, headers, nil, data)
}

// Delete issues a DELETE request against path.
func (c *Client) Delete(ctx context.Context, path string, headers map[string]string) (*resty.Response, error) {
	return c.do(ctx, http.MethodDelete, path, headers, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, params url.Values, body any) (*resty.Response, error) {
	fullURL := c.BuildURL(path)

	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %s body: %w", method, fullURL, err)
		}
		payload = encoded
	}

	req := c.restyClient.R().SetContext(ctx).SetHeaders(c.Headers())

	if len(headers) > 0 {
		req.SetHeaders(headers)
	}

	if len(params) > 0 {
		req.SetQueryParamsFromValues(params)
	}

	if payload != nil {
		req.SetBody(payload)
	}

	start := time.Now()
	resp, err := req.Execute(method, fullURL)
	observeRequest(method, resp, err, time.Since(start))

	if err != nil {
		c.options.requestLogger.Errorf("%s %s failed: %v", method, fullURL, err)
		return nil, fmt.Errorf("%s %s failed: %w", method, fullURL, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		httpErr := newHTTPError(method, fullURL, resp)
		c.options.requestLogger.Warnf("%s", httpErr.Error())
		return nil, httpErr
	}

	c.options.requestLogger.Debugf("%s %s returned %d", method, fullURL, resp.StatusCode())

	return resp, nil
}

// BaseURL returns the server URL the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ClientID returns the OAuth client ID used for the token exchange.
func (c *Client) ClientID() string {
	return c.credentials.ClientID
}

// Username returns the username sent with the token exchange.
func (c *Client) Username() string {
	return c.credentials.Username
}

// GrantType returns the OAuth grant type, client_credentials unless set.
func (c *Client) GrantType() string {
	return c.credentials.GrantType
}

// AccessToken returns the bearer token obtained by [New].
func (c *Client) AccessToken() string {
	return c.token.AccessToken
}

// Token returns a copy of the full token response, including token type and
// lifetime when the server reported them.
func (c *Client) Token() *oauth2.Token {
	token := *c.token
	return &token
}

// TokenSource returns a source that always yields the token obtained by
// [New]. It never refreshes.
func (c *Client) TokenSource() oauth2.TokenSource {
	return oauth2.StaticTokenSource(c.Token())
}

// UserAgent returns the default User-Agent header value.
func (c *Client) UserAgent() string {
	return UserAgent()
}

// HTTPClient returns the underlying resty client. Headers set directly on it
// are sent in addition to the client headers.
func (c *Client) HTTPClient() *resty.Client {
	return c.restyClient
}
