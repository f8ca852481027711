package format

import (
	"errors"
	"strings"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONParseError reports text that is not well-formed JSON, or JSON that does
// not fit the shape it was decoded into.
type JSONParseError struct {
	Err error
}

func (e *JSONParseError) Error() string {
	if e.Err == nil {
		return "invalid JSON"
	}
	return "invalid JSON: " + e.Err.Error()
}

func (e *JSONParseError) Unwrap() error { return e.Err }

var prettyOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// jsonStyle mirrors the JsonKey color of the output color scheme.
var jsonStyle = &pretty.Style{
	Key:    [2]string{"\x1b[34m", "\x1b[0m"},
	String: [2]string{"\x1b[32m", "\x1b[0m"},
	Number: [2]string{"\x1b[36m", "\x1b[0m"},
	True:   [2]string{"\x1b[35m", "\x1b[0m"},
	False:  [2]string{"\x1b[35m", "\x1b[0m"},
	Null:   [2]string{"\x1b[31m", "\x1b[0m"},
}

// IsValidJSON reports whether text is a single well-formed JSON value.
func IsValidJSON(text string) bool {
	return gjson.Valid(text)
}

// Unmarshal decodes JSON text into v. Any failure, including a type mismatch
// between the document and v, is returned as a *JSONParseError.
func Unmarshal(text string, v interface{}) error {
	if !gjson.Valid(text) {
		return &JSONParseError{Err: parseFailure(text)}
	}
	if err := json.UnmarshalFromString(text, v); err != nil {
		return &JSONParseError{Err: err}
	}
	return nil
}

// parseFailure recovers a descriptive error for text already known to be invalid.
func parseFailure(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("empty input")
	}
	var v interface{}
	if err := json.UnmarshalFromString(text, &v); err != nil {
		return err
	}
	return errors.New("malformed document")
}

// PrettyJSON re-indents JSON text with two spaces per level. Key order and
// number literals are preserved as written.
func PrettyJSON(text string) (string, error) {
	if !gjson.Valid(text) {
		return "", &JSONParseError{Err: parseFailure(text)}
	}
	out := pretty.PrettyOptions([]byte(text), prettyOptions)
	return strings.TrimRight(string(out), "\n"), nil
}

// ColorJSON is PrettyJSON with ANSI syntax coloring. Coloring is skipped when
// color output is disabled globally (color.NoColor).
func ColorJSON(text string) (string, error) {
	formatted, err := PrettyJSON(text)
	if err != nil {
		return "", err
	}
	if color.NoColor {
		return formatted, nil
	}
	return string(pretty.Color([]byte(formatted), jsonStyle)), nil
}
