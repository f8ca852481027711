package http

import (
	"fmt"
	"net/http"
	"strings"
)

// Method is an HTTP request method.
type Method string

const (
	MethodGet     Method = http.MethodGet
	MethodPost    Method = http.MethodPost
	MethodPut     Method = http.MethodPut
	MethodDelete  Method = http.MethodDelete
	MethodPatch   Method = http.MethodPatch
	MethodHead    Method = http.MethodHead
	MethodOptions Method = http.MethodOptions
)

func (m Method) String() string { return string(m) }

// ParseMethod converts a case-insensitive method name into a Method.
func ParseMethod(name string) (Method, error) {
	switch m := Method(strings.ToUpper(strings.TrimSpace(name))); m {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch, MethodHead, MethodOptions:
		return m, nil
	default:
		return "", fmt.Errorf("unsupported HTTP method: %q", name)
	}
}
