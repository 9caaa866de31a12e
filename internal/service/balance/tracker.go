package balance

import (
	"context"
	"sync"

	"github.com/stackskit/stackskit/internal/hiro"
)

// tracker carries the supersede discipline shared by both fetchers:
// only the most recently issued refresh may commit, and a stale
// in-flight fetch is cancelled when replaced.
type tracker struct {
	mu         sync.Mutex
	record     Record
	generation uint64
	cancel     context.CancelFunc
	done       chan struct{}
}

// snapshot returns a copy of the record.
func (t *tracker) snapshot() Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.record
}

// doneCh returns a channel closed when the current refresh settles.
// With no refresh in flight the returned channel is already closed.
func (t *tracker) doneCh() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return t.done
}

// reset cancels any in-flight refresh and clears the record.
func (t *tracker) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.record = Record{}
}

// stopLocked cancels the active refresh and bumps the generation so
// its result can no longer commit. Callers hold t.mu.
func (t *tracker) stopLocked() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
		t.generation++
	}
}

// refresh launches an asynchronous fetch for address, superseding any
// refresh still in flight. An empty address resets the record with no
// network activity.
func (t *tracker) refresh(address string, fetch func(ctx context.Context, address string) (Record, error)) {
	t.mu.Lock()

	t.stopLocked()

	if address == "" {
		t.record = Record{}
		t.mu.Unlock()
		return
	}

	t.record.Address = address
	t.record.Loading = true

	gen := t.generation
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	done := make(chan struct{})
	t.done = done
	t.mu.Unlock()

	go func() {
		defer close(done)
		record, err := fetch(ctx, address)
		t.commit(gen, record, err)
	}()
}

// commit applies a fetch outcome if its generation is still current.
func (t *tracker) commit(gen uint64, record Record, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.generation {
		return
	}

	if err != nil {
		if hiro.IsAborted(err) {
			// Soft: keep the last committed state.
			return
		}
		t.record.Err = err
		t.record.Loading = false
		return
	}

	t.record = record
}
