package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/wesleyorama2/restkit/format"
	"github.com/wesleyorama2/restkit/pkg/jsonpath"
)

// Response is a completed HTTP exchange. It is fully populated before it is
// returned and is not modified afterwards.
type Response struct {
	// Method and URL identify the request that produced the response
	Method Method
	URL    string

	// StatusCode is the HTTP status code (e.g., 200, 404, 500)
	StatusCode int

	// StatusText is the reason phrase (e.g., "OK"), or "Unknown" for unregistered codes
	StatusText string

	// Headers maps canonical header names to their value. Repeated headers
	// are joined with ", ".
	Headers map[string]string

	// Body is the response body as text
	Body string

	// ContentType is the Content-Type header, or "" when absent
	ContentType string

	// ResponseTimeMs is the time from dispatch to full body receipt, rounded to milliseconds
	ResponseTimeMs int64

	// Timing contains detailed timing information
	Timing TimingInfo

	// ReceivedAt is when the body was fully read
	ReceivedAt time.Time
}

func newResponse(method Method, rawURL string, httpResp *http.Response, body []byte, timing TimingInfo) *Response {
	headers := make(map[string]string, len(httpResp.Header))
	for name, values := range httpResp.Header {
		headers[name] = strings.Join(values, ", ")
	}

	statusText := http.StatusText(httpResp.StatusCode)
	if statusText == "" {
		statusText = "Unknown"
	}

	return &Response{
		Method:         method,
		URL:            rawURL,
		StatusCode:     httpResp.StatusCode,
		StatusText:     statusText,
		Headers:        headers,
		Body:           string(body),
		ContentType:    httpResp.Header.Get("Content-Type"),
		ResponseTimeMs: timing.TotalTime.Round(time.Millisecond).Milliseconds(),
		Timing:         timing,
		ReceivedAt:     timing.StartTime.Add(timing.TotalTime),
	}
}

// Status returns the status line, e.g. "200 OK".
func (r *Response) Status() string {
	return fmt.Sprintf("%d %s", r.StatusCode, r.StatusText)
}

// Header returns the value of the named header, matched case-insensitively.
// Returns an empty string if the header is not present.
func (r *Response) Header(name string) string {
	return r.Headers[http.CanonicalHeaderKey(name)]
}

// IsSuccess returns true if the response status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsRedirect returns true if the response status code is in the 3xx range.
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// IsClientError returns true if the response status code is in the 4xx range.
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError returns true if the response status code is in the 5xx range.
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}

// IsJSON reports whether the Content-Type declares application/json,
// ignoring case and any parameters such as charset.
func (r *Response) IsJSON() bool {
	return strings.Contains(strings.ToLower(r.ContentType), "application/json")
}

// DecodeJSON unmarshals the body into v. Malformed JSON and documents that do
// not fit v are reported as *format.JSONParseError.
func (r *Response) DecodeJSON(v interface{}) error {
	return format.Unmarshal(r.Body, v)
}

// AsJSONValue decodes the body into a generic tree of map[string]interface{},
// []interface{}, string, float64, bool and nil.
func (r *Response) AsJSONValue() (interface{}, error) {
	var value interface{}
	if err := r.DecodeJSON(&value); err != nil {
		return nil, err
	}
	return value, nil
}

// ParseJSON decodes the body of r into a new T.
//
// Example:
//
//	type Post struct {
//	    ID    int    `json:"id"`
//	    Title string `json:"title"`
//	}
//	post, err := http.ParseJSON[Post](resp)
func ParseJSON[T any](r *Response) (T, error) {
	var out T
	if err := r.DecodeJSON(&out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// JSONPath extracts a single value from the body with a JSONPath expression
// such as "$.items[0].id".
func (r *Response) JSONPath(path string) (string, error) {
	return jsonpath.Extract(r.Body, path)
}

// ResponseTime returns ResponseTimeMs as a time.Duration.
func (r *Response) ResponseTime() time.Duration {
	return time.Duration(r.ResponseTimeMs) * time.Millisecond
}

// APIError is the error document many JSON APIs return with 4xx and 5xx
// responses.
type APIError struct {
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// APIError decodes an error document from a non-2xx JSON response. The
// second result is false when the response succeeded, is not JSON, or the
// body carries neither a code nor a message.
func (r *Response) APIError() (*APIError, bool) {
	if r.IsSuccess() || !r.IsJSON() {
		return nil, false
	}

	var apiErr APIError
	if err := r.DecodeJSON(&apiErr); err != nil {
		return nil, false
	}
	if apiErr.Code == "" && apiErr.Message == "" {
		return nil, false
	}
	return &apiErr, true
}
