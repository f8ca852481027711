package output

import (
	"time"

	"github.com/wesleyorama2/restkit/http"
)

func testRequest() RequestData {
	cfg := http.NewRequestConfig().
		AddHeader("Accept", "application/json").
		AddHeader("Authorization", "Bearer secret-token").
		WithBasicAuth("alice", "hunter2")
	return NewRequestData(http.MethodPost, "https://api.example.com/users", `{"name":"John Doe"}`, cfg)
}

func testResponse() *http.Response {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &http.Response{
		Method:     http.MethodGet,
		URL:        "https://api.example.com/users/1",
		StatusCode: 200,
		StatusText: "OK",
		Headers: map[string]string{
			"Content-Type": "application/json",
			"X-Rate-Limit": "100",
			"Set-Cookie":   "session=abc",
		},
		Body:           `{"id":1,"name":"John Doe","email":"john@example.com"}`,
		ContentType:    "application/json",
		ResponseTimeMs: 123,
		Timing: http.TimingInfo{
			StartTime:       start,
			DNSLookupTime:   5 * time.Millisecond,
			TCPConnectTime:  10 * time.Millisecond,
			TimeToFirstByte: 100 * time.Millisecond,
			TotalTime:       123 * time.Millisecond,
		},
		ReceivedAt: start.Add(123 * time.Millisecond),
	}
}
