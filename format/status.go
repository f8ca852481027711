package format

import (
	"net/http"
	"strconv"

	"github.com/fatih/color"
)

// StatusClass is the semantic tag of an HTTP status code.
type StatusClass string

const (
	ClassSuccess     StatusClass = "success"
	ClassRedirect    StatusClass = "redirect"
	ClassClientError StatusClass = "client-error"
	ClassServerError StatusClass = "server-error"
	ClassUnknown     StatusClass = "unknown"
)

// Indicator pairs a status code with its class and display color.
type Indicator struct {
	Code  int
	Class StatusClass
	Color *color.Color
}

// String renders the status code in the indicator's color.
func (i Indicator) String() string {
	return i.Color.Sprint(strconv.Itoa(i.Code))
}

// StatusClassOf maps a status code onto its range.
func StatusClassOf(code int) StatusClass {
	switch {
	case code >= 200 && code <= 299:
		return ClassSuccess
	case code >= 300 && code <= 399:
		return ClassRedirect
	case code >= 400 && code <= 499:
		return ClassClientError
	case code >= 500 && code <= 599:
		return ClassServerError
	default:
		return ClassUnknown
	}
}

// StatusIndicator returns the class and color for a status code: green for
// 2xx, yellow for 3xx, red for 4xx, red on white for 5xx and white otherwise.
func StatusIndicator(code int) Indicator {
	class := StatusClassOf(code)

	var c *color.Color
	switch class {
	case ClassSuccess:
		c = color.New(color.FgGreen, color.Bold)
	case ClassRedirect:
		c = color.New(color.FgYellow, color.Bold)
	case ClassClientError:
		c = color.New(color.FgRed, color.Bold)
	case ClassServerError:
		c = color.New(color.FgRed, color.Bold, color.BgWhite)
	default:
		c = color.New(color.FgWhite)
	}

	return Indicator{Code: code, Class: class, Color: c}
}

// StatusMessage returns the reason phrase for a status code, or
// "Unknown Status" when the code is not registered.
func StatusMessage(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "Unknown Status"
}
