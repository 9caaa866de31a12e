package txstatus

import (
	"context"
	"sync"
	"time"

	"github.com/stackskit/stackskit/internal/chain"
	"github.com/stackskit/stackskit/internal/hiro"
	"github.com/stackskit/stackskit/internal/metrics"
)

// DefaultInterval is the polling cadence between status fetches.
const DefaultInterval = 3 * time.Second

// Options contains optional configuration for a Poller.
type Options struct {
	// Interval overrides the polling cadence.
	Interval time.Duration

	// Logger receives poll lifecycle events.
	Logger LogWriter
}

// Poller watches one transaction at a time. Watch replaces the
// current subscription, cancelling any in-flight fetch so a stale
// slow response can never overwrite a newer one. Polling stops on its
// own at the first terminal status.
type Poller struct {
	fetcher  StatusFetcher
	network  NetworkSource
	interval time.Duration
	logger   LogWriter

	mu         sync.Mutex
	record     Record
	generation uint64
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewPoller creates a poller over the given fetcher and network
// source.
func NewPoller(fetcher StatusFetcher, network NetworkSource, opts *Options) *Poller {
	p := &Poller{
		fetcher:  fetcher,
		network:  network,
		interval: DefaultInterval,
		logger:   nopLogger{},
	}

	if opts != nil {
		if opts.Interval > 0 {
			p.interval = opts.Interval
		}
		if opts.Logger != nil {
			p.logger = opts.Logger
		}
	}

	return p
}

// Record returns a snapshot of the subscription state.
func (p *Poller) Record() Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.record
}

// Done returns a channel closed when the current watch finishes,
// whether by terminal status or cancellation. With no active watch
// the returned channel is already closed.
func (p *Poller) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return p.done
}

// Watch subscribes to a transaction. An empty txID resets the record
// and stops all polling. A new txID replaces the previous
// subscription without blanking the record first; fresh results
// overwrite the old ones as they arrive.
func (p *Poller) Watch(txID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	if txID == "" {
		p.record = Record{}
		return
	}

	p.record.TxID = txID
	p.record.Loading = true

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.loop(ctx, p.generation, txID, p.done)
}

// Stop tears the subscription down: the timer is cleared and any
// in-flight fetch is aborted. The record is left as-is; no further
// mutation happens after Stop returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// stopLocked cancels the active watch and bumps the generation so a
// still-running fetch can no longer commit. Callers hold p.mu.
func (p *Poller) stopLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
		p.generation++
	}
}

// loop performs the immediate first fetch, then ticks at the polling
// interval until a terminal status or cancellation.
func (p *Poller) loop(ctx context.Context, gen uint64, txID string, done chan struct{}) {
	defer close(done)

	if p.fetch(ctx, gen, txID) {
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.fetch(ctx, gen, txID) {
				return
			}
		}
	}
}

// fetch performs one status fetch and commits its outcome if this
// generation is still current. It returns true when polling should
// stop.
func (p *Poller) fetch(ctx context.Context, gen uint64, txID string) bool {
	metrics.Global.RecordPollTick()

	tx, err := p.fetcher.GetTransaction(ctx, p.network.Network(), txID)

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.generation {
		// A newer watch owns the record now.
		metrics.Global.RecordPollSuperseded()
		return true
	}

	if err != nil {
		if hiro.IsAborted(err) {
			// Soft: no update, retry on the next tick.
			p.logger.Debug("status fetch for %s aborted: %v", txID, err)
			return false
		}
		p.logger.Error("status fetch for %s failed: %v", txID, err)
		p.record.Err = err
		p.record.Loading = false
		return false
	}

	p.record.Status = tx.Status
	p.record.BlockHeight = tx.BlockHeight
	if tx.Status == chain.StatusNotFound {
		p.record.BlockHeight = nil
	}
	p.record.Err = nil
	p.record.Loading = false

	if tx.Status.IsTerminal() {
		p.logger.Debug("transaction %s reached terminal status %s", txID, tx.Status)
		return true
	}
	return false
}

// nopLogger discards all log output.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}
