package http

import "time"

// RequestStats summarises one exchange for reporting and aggregation.
type RequestStats struct {
	Method            Method
	URL               string
	StatusCode        int
	ResponseTimeMs    int64
	ResponseSizeBytes int
	Timestamp         time.Time
}

// Stats returns the summary record of r.
func (r *Response) Stats() RequestStats {
	return RequestStats{
		Method:            r.Method,
		URL:               r.URL,
		StatusCode:        r.StatusCode,
		ResponseTimeMs:    r.ResponseTimeMs,
		ResponseSizeBytes: len(r.Body),
		Timestamp:         r.ReceivedAt,
	}
}
