package http

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// InvalidURLError is returned when a URL is malformed or uses a scheme other
// than http or https. It is always returned before any network access.
type InvalidURLError struct {
	URL    string
	Reason string
	Err    error
}

func (e *InvalidURLError) Error() string {
	msg := fmt.Sprintf("invalid URL %q: %s", redact(e.URL), e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidURLError) Unwrap() error { return e.Err }

// ConfigurationError is returned when a client is constructed with invalid
// parameters.
type ConfigurationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// NetworkError wraps a transport failure: connection refused, DNS or TLS
// failure, timeout, cancellation or an interrupted body read.
type NetworkError struct {
	Method Method
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, redact(e.URL), e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a timeout.
func (e *NetworkError) Timeout() bool {
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

// redact hides the password of a URL carrying user info. A URL that does
// not parse, or parses as opaque ("user:pass@host" reads as scheme "user"),
// loses everything between the scheme and the last '@' of its authority.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err == nil && !strings.Contains(u.Opaque, "@") {
		if u.User == nil {
			return raw
		}
		return u.Redacted()
	}

	start := 0
	if i := strings.Index(raw, "://"); i >= 0 {
		start = i + len("://")
	}
	authority := raw[start:]
	if i := strings.IndexAny(authority, "/?#"); i >= 0 {
		authority = authority[:i]
	}
	at := strings.LastIndex(authority, "@")
	if at < 0 {
		return raw
	}
	return raw[:start] + "xxxxx" + raw[start+at:]
}
