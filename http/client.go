package http

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wesleyorama2/restkit/format"
)

const (
	// DefaultTimeout is the timeout of a client built by NewClient.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent when a request does not set its own User-Agent.
	DefaultUserAgent = "restkit/0.1.0"
)

// Client dispatches requests described by a RequestConfig and wraps the
// results in a Response. The timeout is fixed at construction.
// Client is safe for concurrent use by multiple goroutines.
type Client struct {
	timeout   time.Duration
	userAgent string
	transport *http.Transport

	insecureOnce sync.Once
	insecure     *http.Transport
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Client)

// WithUserAgent sets the User-Agent sent when a request does not carry one.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTransport sets the base transport shared by every request of the
// client. Use this for proxies, custom root CAs or connection pool tuning.
func WithTransport(transport *http.Transport) ClientOption {
	return func(c *Client) {
		c.transport = transport
	}
}

// NewClient creates a client with the default 30 second timeout.
//
// Example:
//
//	client := http.NewClient(http.WithUserAgent("inventory-sync/1.2"))
//	resp, err := client.Get(ctx, "https://api.example.com/items", http.NewRequestConfig())
func NewClient(options ...ClientOption) *Client {
	client := &Client{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}

	// Apply options
	for _, option := range options {
		option(client)
	}

	if client.transport == nil {
		client.transport = http.DefaultTransport.(*http.Transport).Clone()
	}

	return client
}

// NewClientWithTimeout creates a client whose requests time out after the
// given number of seconds. It returns a *ConfigurationError when seconds is
// zero or negative.
func NewClientWithTimeout(seconds int, options ...ClientOption) (*Client, error) {
	if seconds <= 0 {
		return nil, &ConfigurationError{
			Field:  "timeout",
			Value:  seconds,
			Reason: "must be a positive number of seconds",
		}
	}

	client := NewClient(options...)
	client.timeout = time.Duration(seconds) * time.Second
	return client, nil
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// ValidateURL checks that raw parses as a URL with an http or https scheme
// and a host. Any other scheme (javascript:, file:, ftp:, ...) is rejected
// with an *InvalidURLError.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		// *url.Error repeats the raw URL; keep only its cause
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return &InvalidURLError{URL: raw, Reason: "malformed URL", Err: err}
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	case "":
		return &InvalidURLError{URL: raw, Reason: "missing scheme"}
	default:
		return &InvalidURLError{URL: raw, Reason: fmt.Sprintf("scheme %q is not allowed", u.Scheme)}
	}

	if u.Hostname() == "" {
		return &InvalidURLError{URL: raw, Reason: "missing host"}
	}

	return nil
}

// ValidateURL is the method form of the package level ValidateURL.
func (c *Client) ValidateURL(raw string) error {
	return ValidateURL(raw)
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, rawURL string, cfg RequestConfig) (*Response, error) {
	return c.Do(ctx, MethodGet, rawURL, "", cfg)
}

// Post sends a POST request with body sent verbatim.
func (c *Client) Post(ctx context.Context, rawURL, body string, cfg RequestConfig) (*Response, error) {
	return c.Do(ctx, MethodPost, rawURL, body, cfg)
}

// Put sends a PUT request with body sent verbatim.
func (c *Client) Put(ctx context.Context, rawURL, body string, cfg RequestConfig) (*Response, error) {
	return c.Do(ctx, MethodPut, rawURL, body, cfg)
}

// Patch sends a PATCH request with body sent verbatim.
func (c *Client) Patch(ctx context.Context, rawURL, body string, cfg RequestConfig) (*Response, error) {
	return c.Do(ctx, MethodPatch, rawURL, body, cfg)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, rawURL string, cfg RequestConfig) (*Response, error) {
	return c.Do(ctx, MethodDelete, rawURL, "", cfg)
}

// Do validates the URL, sends one request and reads the full response.
//
// URL problems are reported as *InvalidURLError before anything is sent.
// Transport failures, including timeouts and a cancelled ctx, are reported
// as *NetworkError. Requests are never retried.
//
// Example:
//
//	cfg := http.NewRequestConfig().WithBasicAuth("admin", "hunter2")
//	resp, err := client.Do(ctx, http.MethodPut, "https://api.example.com/users/1", `{"name":"cat"}`, cfg)
//	if err != nil {
//	    var netErr *http.NetworkError
//	    if errors.As(err, &netErr) && netErr.Timeout() {
//	        log.Println("timed out")
//	    }
//	    return err
//	}
//	fmt.Println(resp.StatusCode, format.Duration(resp.ResponseTimeMs))
func (c *Client) Do(ctx context.Context, method Method, rawURL, body string, cfg RequestConfig) (*Response, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	httpReq, err := c.newRequest(ctx, method, rawURL, body, cfg)
	if err != nil {
		return nil, err
	}

	// Start timing and attach the phase trace
	tracer := newPhaseTracer(time.Now())
	httpReq = httpReq.WithContext(httptrace.WithClientTrace(httpReq.Context(), tracer.clientTrace()))

	httpResp, err := c.httpClient(cfg).Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: rawURL, Err: err}
	}
	defer httpResp.Body.Close()

	transferStart := time.Now()
	rawBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: rawURL, Err: fmt.Errorf("reading response body: %w", err)}
	}
	timing := tracer.finish(transferStart, time.Now())

	return newResponse(method, rawURL, httpResp, rawBody, timing), nil
}

// newRequest builds the outbound request. Configured headers are applied
// first, in sorted key order, so names differing only in case resolve the
// same way every time; authentication then overrides any raw Authorization
// header. A Host entry replaces the request host.
func (c *Client) newRequest(ctx context.Context, method Method, rawURL, body string, cfg RequestConfig) (*http.Request, error) {
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method.String(), rawURL, bodyReader)
	if err != nil {
		return nil, &ConfigurationError{Field: "request", Value: method, Reason: err.Error()}
	}

	names := make([]string, 0, len(cfg.headers))
	for name := range cfg.headers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := cfg.headers[name]
		if strings.EqualFold(name, "Host") {
			httpReq.Host = value
			continue
		}
		httpReq.Header.Set(name, value)
	}

	if value := cfg.Auth().HeaderValue(); value != "" {
		httpReq.Header.Set("Authorization", value)
	}

	if httpReq.Header.Get("User-Agent") == "" && c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	if body != "" && httpReq.Header.Get("Content-Type") == "" && format.IsValidJSON(body) {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	return httpReq, nil
}

// httpClient returns a lightweight *http.Client over one of the two shared
// transports, applying the redirect and TLS verification flags of cfg.
func (c *Client) httpClient(cfg RequestConfig) *http.Client {
	transport := c.transport
	if !cfg.VerifySSL() {
		transport = c.insecureTransport()
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   c.timeout,
	}
	if !cfg.FollowRedirects() {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client
}

// insecureTransport lazily clones the base transport with certificate
// verification disabled.
func (c *Client) insecureTransport() *http.Transport {
	c.insecureOnce.Do(func() {
		transport := c.transport.Clone()
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{}
		}
		transport.TLSClientConfig.InsecureSkipVerify = true
		c.insecure = transport
	})
	return c.insecure
}
