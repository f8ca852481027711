package output

import (
	"fmt"
	"sort"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/restkit/format"
	"github.com/wesleyorama2/restkit/http"
	"github.com/wesleyorama2/restkit/internal/stats"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// redacted replaces credential header values in every rendering.
const redacted = "[redacted]"

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs in YAML format
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat maps a name such as "json" onto an OutputFormat.
func ParseFormat(name string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(name))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", name)
	}
}

// FormatProvider is an interface for different output formatters
type FormatProvider interface {
	FormatRequest(req RequestData) string
	FormatResponse(resp *http.Response, extracted map[string]string) string
	FormatSummary(summary stats.Summary) string
}

// RequestData represents the structured data of an outgoing request
type RequestData struct {
	Method  string            `json:"method" yaml:"method"`
	URL     string            `json:"url" yaml:"url"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Auth    string            `json:"auth,omitempty" yaml:"auth,omitempty"`
	Body    string            `json:"body,omitempty" yaml:"body,omitempty"`
}

// NewRequestData describes a request about to be sent. Credential headers
// are redacted.
func NewRequestData(method http.Method, rawURL, body string, cfg http.RequestConfig) RequestData {
	headers := cfg.Headers()
	for name := range headers {
		if isSensitiveHeader(name) {
			headers[name] = redacted
		}
	}

	data := RequestData{
		Method:  string(method),
		URL:     rawURL,
		Headers: headers,
		Body:    body,
	}
	if cfg.Auth().Kind() != http.AuthNone {
		data.Auth = cfg.Auth().String()
	}
	return data
}

// TimingData represents detailed timing information in milliseconds
type TimingData struct {
	DNSLookup       int64 `json:"dnsLookupMs,omitempty" yaml:"dnsLookupMs,omitempty"`
	TCPConnection   int64 `json:"tcpConnectionMs,omitempty" yaml:"tcpConnectionMs,omitempty"`
	TLSHandshake    int64 `json:"tlsHandshakeMs,omitempty" yaml:"tlsHandshakeMs,omitempty"`
	TimeToFirstByte int64 `json:"timeToFirstByteMs,omitempty" yaml:"timeToFirstByteMs,omitempty"`
	ContentTransfer int64 `json:"contentTransferMs,omitempty" yaml:"contentTransferMs,omitempty"`
	Total           int64 `json:"totalMs" yaml:"totalMs"`
}

func newTimingData(t http.TimingInfo) TimingData {
	return TimingData{
		DNSLookup:       t.DNSLookupTime.Milliseconds(),
		TCPConnection:   t.TCPConnectTime.Milliseconds(),
		TLSHandshake:    t.TLSHandshakeTime.Milliseconds(),
		TimeToFirstByte: t.TimeToFirstByte.Milliseconds(),
		ContentTransfer: t.ContentTransferTime.Milliseconds(),
		Total:           t.TotalTime.Milliseconds(),
	}
}

// ResponseData represents the structured data of an HTTP response
type ResponseData struct {
	StatusCode   int               `json:"statusCode" yaml:"statusCode"`
	Status       string            `json:"status" yaml:"status"`
	Headers      map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	ContentType  string            `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Body         interface{}       `json:"body,omitempty" yaml:"body,omitempty"`
	ResponseTime int64             `json:"responseTimeMs" yaml:"responseTimeMs"`
	Timing       *TimingData       `json:"timing,omitempty" yaml:"timing,omitempty"`
	Size         int               `json:"sizeBytes" yaml:"sizeBytes"`
	Extracted    map[string]string `json:"extracted,omitempty" yaml:"extracted,omitempty"`
	Timestamp    string            `json:"timestamp" yaml:"timestamp"`
}

func newResponseData(resp *http.Response, extracted map[string]string, verbose bool) ResponseData {
	data := ResponseData{
		StatusCode:   resp.StatusCode,
		Status:       resp.Status(),
		ContentType:  resp.ContentType,
		ResponseTime: resp.ResponseTimeMs,
		Size:         len(resp.Body),
		Extracted:    extracted,
		Timestamp:    resp.ReceivedAt.Format(time.RFC3339),
	}
	if verbose {
		data.Headers = resp.Headers
		timing := newTimingData(resp.Timing)
		data.Timing = &timing
	}
	return data
}

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Verbose bool
	Pretty  bool
}

func (f *JSONFormatter) marshal(v interface{}, what string) string {
	output, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error":"Failed to marshal %s: %s"}`+"\n", what, err)
	}
	if f.Pretty {
		// re-indent so embedded raw bodies are laid out too
		return string(pretty.Pretty(output))
	}
	return string(output) + "\n"
}

// FormatRequest formats a request as JSON
func (f *JSONFormatter) FormatRequest(req RequestData) string {
	return f.marshal(req, "request")
}

// FormatResponse formats a response as JSON. A JSON body is embedded as-is,
// any other body as a string.
func (f *JSONFormatter) FormatResponse(resp *http.Response, extracted map[string]string) string {
	data := newResponseData(resp, extracted, f.Verbose)
	if resp.Body != "" {
		if format.IsValidJSON(resp.Body) {
			data.Body = jsoniter.RawMessage(resp.Body)
		} else {
			data.Body = resp.Body
		}
	}
	return f.marshal(data, "response")
}

// FormatSummary formats aggregated latency statistics as JSON
func (f *JSONFormatter) FormatSummary(summary stats.Summary) string {
	return f.marshal(summary, "summary")
}

// YAMLFormatter formats output as YAML
type YAMLFormatter struct {
	Verbose bool
}

func (f *YAMLFormatter) marshal(v interface{}, what string) string {
	output, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: Failed to marshal %s: %s\n", what, err)
	}
	return string(output)
}

// FormatRequest formats a request as YAML
func (f *YAMLFormatter) FormatRequest(req RequestData) string {
	return f.marshal(req, "request")
}

// FormatResponse formats a response as YAML. JSON bodies are converted to
// YAML with their key order kept.
func (f *YAMLFormatter) FormatResponse(resp *http.Response, extracted map[string]string) string {
	data := newResponseData(resp, extracted, f.Verbose)
	if resp.Body != "" {
		data.Body = resp.Body
		if format.IsValidJSON(resp.Body) {
			if node, err := jsonToYAMLNode(resp.Body); err == nil {
				data.Body = node
			}
		}
	}
	return f.marshal(data, "response")
}

// FormatSummary formats aggregated latency statistics as YAML
func (f *YAMLFormatter) FormatSummary(summary stats.Summary) string {
	return f.marshal(summary, "summary")
}

// jsonToYAMLNode parses JSON text as YAML (JSON is a subset) and drops the
// JSON presentation: collections become block style and scalars are quoted
// only where YAML needs it.
func jsonToYAMLNode(text string) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	blockStyle(doc.Content[0])
	return doc.Content[0], nil
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}

// GetFormatter returns the appropriate formatter for the specified format
func GetFormatter(outputFormat OutputFormat, verbose, noColor, prettyPrint bool) FormatProvider {
	switch outputFormat {
	case FormatJSON:
		return &JSONFormatter{Verbose: verbose, Pretty: prettyPrint}
	case FormatYAML:
		return &YAMLFormatter{Verbose: verbose}
	default:
		return NewFormatter(verbose, noColor, prettyPrint)
	}
}

func isSensitiveHeader(name string) bool {
	switch strings.ToLower(name) {
	case "authorization", "proxy-authorization", "cookie", "set-cookie", "x-api-key":
		return true
	}
	return false
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
