// Package format provides the display and JSON helpers shared by the restkit
// client and its command line front-end.
//
// The helpers are pure functions:
//   - PrettyJSON and ColorJSON re-indent JSON text, optionally with ANSI colors
//   - IsValidJSON reports whether text parses as JSON and never fails
//   - Duration and Size render measurements for humans
//   - StatusIndicator and StatusMessage classify HTTP status codes
//   - ParseHeaders reads "Name: value" lines into a header map
//
// Example:
//
//	out, err := format.PrettyJSON(`{"id":1,"tags":["a","b"]}`)
//	if err != nil {
//	    var perr *format.JSONParseError
//	    if errors.As(err, &perr) {
//	        log.Printf("not JSON: %v", perr.Err)
//	    }
//	}
//	fmt.Println(out)
//	fmt.Println(format.Duration(1500)) // 1.50s
package format
