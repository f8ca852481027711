// Package http is a thin convenience layer over net/http for calling JSON
// and REST APIs.
//
// This package provides:
//   - RequestConfig, a value-typed builder for headers, authentication and
//     per-request redirect and TLS verification flags
//   - Client, which validates URLs and dispatches GET, POST, PUT, PATCH and
//     DELETE requests over a shared, pooled transport
//   - Response, a fully read response with classification predicates,
//     JSON decoding and timing information
//
// Transport concerns (TLS, DNS, pooling, redirect following, timeouts) are
// delegated to net/http. Nothing is retried or logged.
//
// Basic Usage:
//
//	client := http.NewClient()
//
//	cfg := http.NewRequestConfig().
//	    AddHeader("Accept", "application/json").
//	    WithBearerToken(os.Getenv("API_TOKEN"))
//
//	resp, err := client.Get(context.Background(), "https://api.example.com/users/1", cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if resp.IsSuccess() && resp.IsJSON() {
//	    user, err := http.ParseJSON[User](resp)
//	    ...
//	}
//
// Errors:
//
// Every failure is one of *InvalidURLError (rejected before sending),
// *ConfigurationError (bad client parameters), *NetworkError (transport
// failure, wrapping the cause) or *format.JSONParseError (body decoding).
// Use errors.As to branch on them.
//
// Thread Safety:
//
// Client is safe for concurrent use. RequestConfig is a value and may be
// shared freely; its With* methods never modify the receiver.
package http
