package http

import (
	"encoding/base64"
	"fmt"
)

// AuthKind identifies which authentication scheme an Auth carries.
type AuthKind int

const (
	AuthNone AuthKind = iota
	AuthBearer
	AuthBasic
)

func (k AuthKind) String() string {
	switch k {
	case AuthBearer:
		return "bearer"
	case AuthBasic:
		return "basic"
	default:
		return "none"
	}
}

// Auth is the authentication attached to a request. It holds at most one
// scheme; the zero value is no authentication.
type Auth struct {
	kind     AuthKind
	token    string
	username string
	password string
}

// NoAuth returns an Auth that sends no Authorization header.
func NoAuth() Auth { return Auth{} }

// BearerAuth returns an Auth sending "Authorization: Bearer <token>".
func BearerAuth(token string) Auth {
	return Auth{kind: AuthBearer, token: token}
}

// BasicAuth returns an Auth sending base64-encoded "username:password".
func BasicAuth(username, password string) Auth {
	return Auth{kind: AuthBasic, username: username, password: password}
}

// Kind returns the scheme carried by a.
func (a Auth) Kind() AuthKind { return a.kind }

// Token returns the bearer token, or "" for other schemes.
func (a Auth) Token() string { return a.token }

// Credentials returns the basic auth username and password.
func (a Auth) Credentials() (username, password string) {
	return a.username, a.password
}

// HeaderValue returns the Authorization header value for a, or "" when a
// carries no authentication.
func (a Auth) HeaderValue() string {
	switch a.kind {
	case AuthBearer:
		return "Bearer " + a.token
	case AuthBasic:
		creds := a.username + ":" + a.password
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
	default:
		return ""
	}
}

// String describes a without revealing secrets.
func (a Auth) String() string {
	if a.kind == AuthBasic {
		return fmt.Sprintf("basic(%s:****)", a.username)
	}
	if a.kind == AuthBearer {
		return "bearer(****)"
	}
	return "none"
}

// RequestConfig carries the per-request settings: headers, authentication and
// the pretty-print, redirect and TLS verification flags.
//
// RequestConfig is a value. Every With* method returns an updated copy and
// never modifies the receiver, so one config can be shared by concurrent
// requests. The zero value is equivalent to NewRequestConfig().
//
// Example:
//
//	cfg := http.NewRequestConfig().
//	    AddHeader("Accept", "application/json").
//	    WithBearerToken("secret").
//	    WithRedirects(false)
type RequestConfig struct {
	headers     map[string]string
	auth        Auth
	prettyPrint bool

	// stored inverted so the zero value follows redirects and verifies TLS
	noRedirects bool
	skipVerify  bool
}

// NewRequestConfig returns the default configuration: no headers, no
// authentication, pretty printing off, redirects followed, TLS verified.
func NewRequestConfig() RequestConfig {
	return RequestConfig{}
}

// cloneHeaders returns a copy of the header map with room for n more entries.
func (c RequestConfig) cloneHeaders(n int) map[string]string {
	headers := make(map[string]string, len(c.headers)+n)
	for key, value := range c.headers {
		headers[key] = value
	}
	return headers
}

// AddHeader sets a single header, overwriting any previous value for the
// same name. Names are stored exactly as given; when two names differ only
// in case, the one sorting last is sent. A "Host" header sets the request
// host.
func (c RequestConfig) AddHeader(name, value string) RequestConfig {
	headers := c.cloneHeaders(1)
	headers[name] = value
	c.headers = headers
	return c
}

// WithHeaders merges headers into the config. Headers already present and
// not named in the map are kept; names in the map take the new value.
func (c RequestConfig) WithHeaders(headers map[string]string) RequestConfig {
	merged := c.cloneHeaders(len(headers))
	for name, value := range headers {
		merged[name] = value
	}
	c.headers = merged
	return c
}

// WithAuth replaces the authentication.
func (c RequestConfig) WithAuth(auth Auth) RequestConfig {
	c.auth = auth
	return c
}

// WithBearerToken replaces the authentication with a bearer token.
func (c RequestConfig) WithBearerToken(token string) RequestConfig {
	return c.WithAuth(BearerAuth(token))
}

// WithBasicAuth replaces the authentication with basic credentials.
func (c RequestConfig) WithBasicAuth(username, password string) RequestConfig {
	return c.WithAuth(BasicAuth(username, password))
}

// WithPrettyPrint sets whether the response body should be displayed indented.
func (c RequestConfig) WithPrettyPrint(pretty bool) RequestConfig {
	c.prettyPrint = pretty
	return c
}

// WithRedirects sets whether redirects are followed.
func (c RequestConfig) WithRedirects(follow bool) RequestConfig {
	c.noRedirects = !follow
	return c
}

// WithSSLVerification sets whether the server certificate is verified.
func (c RequestConfig) WithSSLVerification(verify bool) RequestConfig {
	c.skipVerify = !verify
	return c
}

// Headers returns a copy of the configured headers.
func (c RequestConfig) Headers() map[string]string {
	return c.cloneHeaders(0)
}

// Header returns the value stored under name, matched exactly.
func (c RequestConfig) Header(name string) (string, bool) {
	value, ok := c.headers[name]
	return value, ok
}

// Auth returns the configured authentication.
func (c RequestConfig) Auth() Auth { return c.auth }

// PrettyPrint reports whether the response body should be displayed indented.
func (c RequestConfig) PrettyPrint() bool { return c.prettyPrint }

// FollowRedirects reports whether redirects are followed.
func (c RequestConfig) FollowRedirects() bool { return !c.noRedirects }

// VerifySSL reports whether the server certificate is verified.
func (c RequestConfig) VerifySSL() bool { return !c.skipVerify }
