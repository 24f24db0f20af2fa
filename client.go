// Package helpspot is a typed client for the HelpSpot helpdesk REST API.
//
// Basic usage:
//
//	client, err := helpspot.New("https://support.example.com",
//	    helpspot.WithToken("1|5VdNXJEtsPoFpX1KH5yc0BO2wlCqDp0sRTxZtox3"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	req, err := client.GetRequest(ctx, helpspot.GetRequestOptions{ID: 12745})
//
// A client built with credentials (token or basic auth) routes every
// operation to the private API variant; one built without uses the public
// variants and can only reach the operations HelpSpot exposes anonymously.
package helpspot

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// All API methods live behind a single endpoint; the method name is a
// query parameter, not part of the path.
const apiPath = "/api/index.php"

const defaultTimeout = 30 * time.Second

// Response formats the client can decode.
const (
	OutputJSON = "json"
	OutputXML  = "xml"
)

type authMode int

const (
	authNone authMode = iota
	authBearer
	authBasic
)

// Client holds the connection details for one HelpSpot installation. It is
// safe for concurrent use; all mutable state lives in the underlying
// http.Client connection pool.
type Client struct {
	baseURL    string
	output     string
	mode       authMode
	token      string
	username   string
	password   string
	httpClient *http.Client
}

type clientOptions struct {
	token      string
	username   string
	password   string
	output     string
	timeout    time.Duration
	insecure   bool
	httpClient *http.Client
}

// Option configures a Client at construction time.
type Option func(*clientOptions)

// WithToken authenticates with a bearer token generated in the HelpSpot
// staff preferences area. This is the recommended authentication method.
func WithToken(token string) Option {
	return func(o *clientOptions) {
		o.token = token
	}
}

// WithBasicAuth authenticates with a staff username and password. Both
// values are required together.
func WithBasicAuth(username, password string) Option {
	return func(o *clientOptions) {
		o.username = username
		o.password = password
	}
}

// WithTimeout sets the per-request timeout. The default is 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = d
	}
}

// WithInsecureSkipVerify disables TLS certificate verification, for
// installations with self-signed certificates.
func WithInsecureSkipVerify() Option {
	return func(o *clientOptions) {
		o.insecure = true
	}
}

// WithHTTPClient replaces the underlying http.Client. Timeout and TLS
// options are ignored when a custom client is supplied.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithOutput selects the response format requested from the server,
// OutputJSON (the default) or OutputXML.
func WithOutput(format string) Option {
	return func(o *clientOptions) {
		o.output = format
	}
}

// New builds a Client for the HelpSpot installation at baseURL. The base
// URL and credential options are validated here, before any network
// activity; violations return a *ConfigError.
func New(baseURL string, opts ...Option) (*Client, error) {
	o := &clientOptions{
		output:  OutputJSON,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}

	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, &ConfigError{Reason: "base URL cannot be empty"}
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, &ConfigError{Reason: "base URL must start with http:// or https://"}
	}

	if o.output != OutputJSON && o.output != OutputXML {
		return nil, &ConfigError{Reason: fmt.Sprintf("unsupported output format %q", o.output)}
	}

	c := &Client{
		baseURL: baseURL,
		output:  o.output,
	}

	switch {
	case o.token != "" && (o.username != "" || o.password != ""):
		return nil, &ConfigError{Reason: "token and basic auth credentials are mutually exclusive"}
	case o.token != "":
		c.mode = authBearer
		c.token = o.token
		slog.Debug("using bearer token authentication")
	case o.username != "" && o.password != "":
		c.mode = authBasic
		c.username = o.username
		c.password = o.password
		slog.Debug("using basic authentication")
	case o.username != "" || o.password != "":
		return nil, &ConfigError{Reason: "both username and password must be provided for basic auth"}
	default:
		c.mode = authNone
		slog.Debug("no authentication provided, public API only")
	}

	c.httpClient = o.httpClient
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: o.timeout}
		if o.insecure {
			slog.Warn("TLS certificate verification is disabled")
			c.httpClient.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
		}
	}

	slog.Debug("helpspot client initialized", "baseUrl", c.baseURL)
	return c, nil
}

// Close releases the idle connections held by the client's transport. The
// client must not be used after Close.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) authenticated() bool {
	return c.mode != authNone
}

// route picks the private variant of a logical API method when the client
// holds credentials, and reports whether the call must be authenticated.
func (c *Client) route(method string) (string, bool) {
	if c.authenticated() {
		return "private." + method, true
	}
	return method, false
}

// call performs one round trip against the API endpoint. params go to the
// query string; form, when non-nil, is sent as a form-encoded POST body.
// The decoded body is returned as a generic map after the server's error
// envelope has been checked.
func (c *Client) call(ctx context.Context, httpMethod, apiMethod string, params, form url.Values, requireAuth bool) (map[string]any, error) {
	if requireAuth && !c.authenticated() {
		return nil, &AuthRequiredError{Method: apiMethod}
	}

	query := url.Values{}
	query.Set("method", apiMethod)
	query.Set("output", c.output)
	for key, vals := range params {
		for _, val := range vals {
			query.Add(key, val)
		}
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, c.baseURL+apiPath+"?"+query.Encode(), body)
	if err != nil {
		return nil, fmt.Errorf("creating the request: %w", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	switch c.mode {
	case authBearer:
		req.Header.Set("Authorization", "Bearer "+c.token)
	case authBasic:
		req.SetBasicAuth(c.username, c.password)
	}

	slog.Debug("calling helpspot API", "method", apiMethod, "httpMethod", httpMethod)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &HTTPError{Err: fmt.Errorf("sending the request: %w", err)}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &HTTPError{StatusCode: res.StatusCode, Err: fmt.Errorf("reading the response body: %w", err)}
	}

	if res.StatusCode < http.StatusOK || res.StatusCode > 299 {
		slog.Warn("helpspot API request failed", "method", apiMethod, "statusCode", res.StatusCode)
		return nil, &HTTPError{StatusCode: res.StatusCode, Status: res.Status}
	}

	result, err := c.decode(data)
	if err != nil {
		return nil, &HTTPError{StatusCode: res.StatusCode, Err: err}
	}

	if err := apiError(result); err != nil {
		return nil, err
	}

	return result, nil
}

// apiError inspects a decoded body for the server's application-level error
// envelope. A list of errors surfaces only the first entry.
func apiError(result map[string]any) error {
	if errs, ok := result["errors"].(map[string]any); ok {
		if raw, ok := errs["error"]; ok {
			if list, ok := raw.([]any); ok && len(list) > 0 {
				raw = list[0]
			}
			if m, ok := raw.(map[string]any); ok {
				return &APIError{
					ID:          cast.ToInt(m["id"]),
					Description: cast.ToString(m["description"]),
				}
			}
		}
	}

	if reply, ok := result["reply"]; ok {
		if s := cast.ToString(reply); strings.Contains(strings.ToLower(s), "not enabled") {
			return &APIDisabledError{Reply: s}
		}
	}

	return nil
}
