package http

import (
	"crypto/tls"
	"net/http/httptrace"
	"sync"
	"time"
)

// TimingInfo stores detailed timing information for an HTTP request.
// All durations represent the time spent in each phase of the request.
// Phases that did not happen, such as DNS and TLS on a reused connection,
// are left at zero.
type TimingInfo struct {
	// StartTime is when the request was dispatched
	StartTime time.Time

	// DNSLookupTime is the time spent looking up the DNS address
	DNSLookupTime time.Duration

	// TCPConnectTime is the time spent establishing a TCP connection
	TCPConnectTime time.Duration

	// TLSHandshakeTime is the time spent performing the TLS handshake (for HTTPS)
	TLSHandshakeTime time.Duration

	// TimeToFirstByte is the time from the end of the last connection phase to the first response byte
	TimeToFirstByte time.Duration

	// ContentTransferTime is the time spent reading the response body
	ContentTransferTime time.Duration

	// TotalTime is the time from dispatch until the body was fully read
	TotalTime time.Duration
}

// phaseTracer records connection phases reported by net/http/httptrace.
// Dial callbacks may fire on transport goroutines, hence the mutex.
type phaseTracer struct {
	mu     sync.Mutex
	timing TimingInfo

	dnsStart     time.Time
	connectStart time.Time
	tlsStart     time.Time
	lastPhaseEnd time.Time
}

func newPhaseTracer(start time.Time) *phaseTracer {
	return &phaseTracer{
		timing:       TimingInfo{StartTime: start},
		lastPhaseEnd: start,
	}
}

func (p *phaseTracer) clientTrace() *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		DNSStart: func(httptrace.DNSStartInfo) {
			p.mu.Lock()
			p.dnsStart = time.Now()
			p.mu.Unlock()
		},
		DNSDone: func(httptrace.DNSDoneInfo) {
			p.mu.Lock()
			defer p.mu.Unlock()
			now := time.Now()
			p.timing.DNSLookupTime = now.Sub(p.dnsStart)
			p.lastPhaseEnd = now
		},
		ConnectStart: func(string, string) {
			p.mu.Lock()
			p.connectStart = time.Now()
			p.mu.Unlock()
		},
		ConnectDone: func(_, _ string, err error) {
			if err != nil {
				return
			}
			p.mu.Lock()
			defer p.mu.Unlock()
			now := time.Now()
			p.timing.TCPConnectTime = now.Sub(p.connectStart)
			p.lastPhaseEnd = now
		},
		TLSHandshakeStart: func() {
			p.mu.Lock()
			p.tlsStart = time.Now()
			p.mu.Unlock()
		},
		TLSHandshakeDone: func(_ tls.ConnectionState, err error) {
			if err != nil {
				return
			}
			p.mu.Lock()
			defer p.mu.Unlock()
			now := time.Now()
			p.timing.TLSHandshakeTime = now.Sub(p.tlsStart)
			p.lastPhaseEnd = now
		},
		GotFirstResponseByte: func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.timing.TimeToFirstByte = time.Since(p.lastPhaseEnd)
		},
	}
}

// finish stamps the transfer and total durations and returns a copy.
func (p *phaseTracer) finish(transferStart, end time.Time) TimingInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.timing.ContentTransferTime = end.Sub(transferStart)
	p.timing.TotalTime = end.Sub(p.timing.StartTime)
	return p.timing
}
