// Package metrics provides application-level metrics collection.
// This is a lightweight metrics foundation using atomic counters.
// For production observability, consider integrating with Prometheus or similar.
package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics holds application metrics using atomic counters for thread safety.
type Metrics struct {
	// Hiro API metrics
	apiCallsTotal   atomic.Int64
	apiErrorsTotal  atomic.Int64
	apiLatencyNanos atomic.Int64

	// Per-network API calls
	mainnetAPICalls atomic.Int64
	testnetAPICalls atomic.Int64

	// Wallet bridge operation metrics
	walletOpsTotal  atomic.Int64
	walletOpsErrors atomic.Int64

	// Transaction poller metrics
	pollTicksTotal  atomic.Int64
	pollsSuperseded atomic.Int64
}

// Global is the global metrics instance.
// Use this for recording metrics throughout the application.
//
//nolint:gochecknoglobals // Intentional global for metrics access
var Global = &Metrics{}

// RecordAPICall records a Hiro API call with its duration and success status.
func (m *Metrics) RecordAPICall(network string, duration time.Duration, err error) {
	m.apiCallsTotal.Add(1)
	m.apiLatencyNanos.Add(duration.Nanoseconds())

	if err != nil {
		m.apiErrorsTotal.Add(1)
	}

	// Track per-network calls
	switch network {
	case "mainnet":
		m.mainnetAPICalls.Add(1)
	case "testnet":
		m.testnetAPICalls.Add(1)
	}
}

// RecordWalletOp records a wallet bridge operation.
func (m *Metrics) RecordWalletOp(err error) {
	m.walletOpsTotal.Add(1)
	if err != nil {
		m.walletOpsErrors.Add(1)
	}
}

// RecordPollTick records one fetch performed by a status poller.
func (m *Metrics) RecordPollTick() {
	m.pollTicksTotal.Add(1)
}

// RecordPollSuperseded records a poll that was cancelled by a newer watch.
func (m *Metrics) RecordPollSuperseded() {
	m.pollsSuperseded.Add(1)
}

// Snapshot is a point-in-time copy of all metrics.
type Snapshot struct {
	APICallsTotal   int64
	APIErrorsTotal  int64
	APILatencyNanos int64
	MainnetAPICalls int64
	TestnetAPICalls int64
	WalletOpsTotal  int64
	WalletOpsErrors int64
	PollTicksTotal  int64
	PollsSuperseded int64
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		APICallsTotal:   m.apiCallsTotal.Load(),
		APIErrorsTotal:  m.apiErrorsTotal.Load(),
		APILatencyNanos: m.apiLatencyNanos.Load(),
		MainnetAPICalls: m.mainnetAPICalls.Load(),
		TestnetAPICalls: m.testnetAPICalls.Load(),
		WalletOpsTotal:  m.walletOpsTotal.Load(),
		WalletOpsErrors: m.walletOpsErrors.Load(),
		PollTicksTotal:  m.pollTicksTotal.Load(),
		PollsSuperseded: m.pollsSuperseded.Load(),
	}
}

// APICallsTotal returns the total number of API calls made.
func (m *Metrics) APICallsTotal() int64 {
	return m.apiCallsTotal.Load()
}

// APIErrorsTotal returns the total number of API errors.
func (m *Metrics) APIErrorsTotal() int64 {
	return m.apiErrorsTotal.Load()
}

// APILatencyAvgMs returns the average API latency in milliseconds.
// Returns 0 if no calls have been made.
func (m *Metrics) APILatencyAvgMs() float64 {
	calls := m.apiCallsTotal.Load()
	if calls == 0 {
		return 0
	}
	nanos := m.apiLatencyNanos.Load()
	return float64(nanos) / float64(calls) / 1e6
}

// Reset resets all metrics to zero.
// Useful for testing.
func (m *Metrics) Reset() {
	m.apiCallsTotal.Store(0)
	m.apiErrorsTotal.Store(0)
	m.apiLatencyNanos.Store(0)
	m.mainnetAPICalls.Store(0)
	m.testnetAPICalls.Store(0)
	m.walletOpsTotal.Store(0)
	m.walletOpsErrors.Store(0)
	m.pollTicksTotal.Store(0)
	m.pollsSuperseded.Store(0)
}
