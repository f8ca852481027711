package output

import (
	"fmt"
	"strings"

	"github.com/wesleyorama2/restkit/format"
	"github.com/wesleyorama2/restkit/http"
	"github.com/wesleyorama2/restkit/internal/stats"
)

// Formatter is responsible for formatting HTTP requests and responses in text format
type Formatter struct {
	Verbose bool
	NoColor bool
	Pretty  bool
	Colors  *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(verbose, noColor, pretty bool) *Formatter {
	colors := DefaultColorScheme()
	if noColor {
		colors = NoColorScheme()
	}
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
		Pretty:  pretty,
		Colors:  colors,
	}
}

// FormatRequest formats an outgoing request for display
func (f *Formatter) FormatRequest(req RequestData) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n",
		f.Colors.Method.Sprint(req.Method),
		f.Colors.URL.Sprint(req.URL)))

	if f.Verbose || len(req.Headers) > 0 {
		buf.WriteString("  Headers:\n")
		for _, key := range sortedKeys(req.Headers) {
			buf.WriteString(fmt.Sprintf("    %s: %s\n",
				f.Colors.HeaderKey.Sprint(key),
				f.Colors.HeaderValue.Sprint(req.Headers[key])))
		}
	}

	if req.Auth != "" {
		buf.WriteString(fmt.Sprintf("  Auth: %s\n", req.Auth))
	}

	if req.Body != "" {
		buf.WriteString("  Body: ")
		buf.WriteString(f.body(req.Body))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatResponse formats a response and any extracted values for display
func (f *Formatter) FormatResponse(resp *http.Response, extracted map[string]string) string {
	var buf strings.Builder

	indicator := format.StatusIndicator(resp.StatusCode)
	if f.NoColor {
		indicator.Color.DisableColor()
	}

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s %s (%s, %s)\n",
		indicator,
		f.Colors.Label.Sprint(resp.StatusText),
		format.Duration(resp.ResponseTimeMs),
		format.Size(int64(len(resp.Body)))))

	if f.Verbose {
		t := resp.Timing
		buf.WriteString("  Timing:\n")
		buf.WriteString(fmt.Sprintf("    DNS Lookup:         %s\n", format.Duration(t.DNSLookupTime.Milliseconds())))
		buf.WriteString(fmt.Sprintf("    TCP Connection:     %s\n", format.Duration(t.TCPConnectTime.Milliseconds())))
		buf.WriteString(fmt.Sprintf("    TLS Handshake:      %s\n", format.Duration(t.TLSHandshakeTime.Milliseconds())))
		buf.WriteString(fmt.Sprintf("    Time to First Byte: %s\n", format.Duration(t.TimeToFirstByte.Milliseconds())))
		buf.WriteString(fmt.Sprintf("    Content Transfer:   %s\n", format.Duration(t.ContentTransferTime.Milliseconds())))
		buf.WriteString(fmt.Sprintf("    Total:              %s\n", format.Duration(t.TotalTime.Milliseconds())))

		buf.WriteString("  Headers:\n")
		for _, key := range sortedKeys(resp.Headers) {
			value := resp.Headers[key]
			if isSensitiveHeader(key) {
				value = redacted
			}
			buf.WriteString(fmt.Sprintf("    %s: %s\n",
				f.Colors.HeaderKey.Sprint(key),
				f.Colors.HeaderValue.Sprint(value)))
		}
	}

	if resp.Body != "" {
		buf.WriteString("  Body:\n")
		buf.WriteString(f.body(resp.Body))
		buf.WriteString("\n")
	}

	if len(extracted) > 0 {
		buf.WriteString("  Extracted:\n")
		for _, name := range sortedKeys(extracted) {
			buf.WriteString(fmt.Sprintf("    %s = %s\n",
				f.Colors.Highlight.Sprint(name), extracted[name]))
		}
	}

	return buf.String()
}

// FormatSummary formats latency statistics for repeated requests
func (f *Formatter) FormatSummary(summary stats.Summary) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("%s %d requests: %s succeeded, %s non-2xx, %s failed\n",
		f.Colors.Label.Sprint("Σ SUMMARY:"),
		summary.Requests,
		f.Colors.Success.Sprint(summary.Succeeded),
		f.Colors.Highlight.Sprint(summary.NonSuccess),
		f.Colors.Error.Sprint(summary.Failed)))

	if summary.Requests > summary.Failed {
		buf.WriteString(fmt.Sprintf("  Latency: min %s, mean %s, p50 %s, p95 %s, p99 %s, max %s\n",
			format.Duration(summary.MinMs),
			format.Duration(int64(summary.MeanMs+0.5)),
			format.Duration(summary.P50Ms),
			format.Duration(summary.P95Ms),
			format.Duration(summary.P99Ms),
			format.Duration(summary.MaxMs)))
		buf.WriteString(fmt.Sprintf("  Received: %s\n", format.Size(summary.TotalBytes)))
	}

	return buf.String()
}

// body renders a body, pretty-printing JSON when enabled. Text that is not
// JSON is returned unchanged.
func (f *Formatter) body(text string) string {
	if !f.Pretty || !format.IsValidJSON(text) {
		return text
	}

	var out string
	var err error
	if f.NoColor {
		out, err = format.PrettyJSON(text)
	} else {
		out, err = format.ColorJSON(text)
	}
	if err != nil {
		return text
	}
	return out
}
