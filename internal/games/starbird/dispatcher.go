package starbird

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Dispatcher errors.
var (
	ErrDispatcherBusy   = errors.New("effect dispatcher is full")
	ErrDispatcherClosed = errors.New("effect dispatcher is closed")
)

// EffectError reports an effect that failed or panicked on a worker.
type EffectError struct {
	Source string
	Err    error
}

func (e *EffectError) Error() string {
	return fmt.Sprintf("effect %s: %v", e.Source, e.Err)
}

func (e *EffectError) Unwrap() error {
	return e.Err
}

type effectJob struct {
	epoch    uint64
	source   string
	snapshot PlayerSnapshot
	effect   Effect
}

type effectResult struct {
	epoch uint64
	delta PlayerDelta
}

// EffectDispatcher runs quantum effects on a fixed pool of workers.
// Workers only see a snapshot of the player and send back deltas; the
// main goroutine drains and applies them, so the player itself is never
// shared. Deltas only reach the run that submitted them: Advance starts a
// new run and everything still in flight from the old one is dropped.
type EffectDispatcher struct {
	jobs     chan effectJob
	results  chan effectResult
	capacity int64
	inFlight atomic.Int64
	epoch    atomic.Uint64
	wg       sync.WaitGroup
	logger   *log.Logger

	mu     sync.Mutex
	closed bool
}

// NewEffectDispatcher starts workers goroutines. At most queue effects may
// be submitted but not yet drained.
func NewEffectDispatcher(workers, queue int, logger *log.Logger) *EffectDispatcher {
	workers = max(workers, 1)
	queue = max(queue, 1)
	d := &EffectDispatcher{
		jobs:     make(chan effectJob, queue),
		results:  make(chan effectResult, queue),
		capacity: int64(queue),
		logger:   orDiscard(logger),
	}
	d.wg.Add(workers)
	for range workers {
		go d.worker()
	}
	return d
}

// Submit hands an effect to the pool without blocking.
func (d *EffectDispatcher) Submit(source string, snap PlayerSnapshot, effect Effect) error {
	if effect == nil {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrDispatcherClosed
	}
	if d.inFlight.Load() >= d.capacity {
		return ErrDispatcherBusy
	}
	d.inFlight.Add(1)
	d.jobs <- effectJob{epoch: d.epoch.Load(), source: source, snapshot: snap, effect: effect}
	return nil
}

// Advance starts a new run. Deltas of effects submitted before the call
// are discarded when they complete.
func (d *EffectDispatcher) Advance() {
	d.epoch.Add(1)
	d.Drain()
}

// Drain returns every delta of the current run that is ready, in
// completion order.
func (d *EffectDispatcher) Drain() []PlayerDelta {
	var out []PlayerDelta
	epoch := d.epoch.Load()
	for {
		select {
		case res := <-d.results:
			d.inFlight.Add(-1)
			if res.epoch != epoch {
				d.logger.Debug("stale effect dropped", "source", res.delta.Source)
				continue
			}
			out = append(out, res.delta)
		default:
			return out
		}
	}
}

// Pending returns the number of effects submitted but not yet drained.
func (d *EffectDispatcher) Pending() int {
	return int(d.inFlight.Load())
}

// Close stops accepting effects, waits for the workers to finish what was
// submitted, and returns the remaining deltas.
func (d *EffectDispatcher) Close() []PlayerDelta {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
	return d.Drain()
}

func (d *EffectDispatcher) worker() {
	defer d.wg.Done()
	for job := range d.jobs {
		delta, err := d.run(job)
		if err != nil {
			d.logger.Error("effect failed", "err", err)
			d.inFlight.Add(-1)
			continue
		}
		if delta.IsZero() {
			d.inFlight.Add(-1)
			continue
		}
		d.results <- effectResult{epoch: job.epoch, delta: delta}
	}
}

// run executes one effect, turning a panic into an EffectError.
func (d *EffectDispatcher) run(job effectJob) (delta PlayerDelta, err error) {
	defer func() {
		if r := recover(); r != nil {
			delta = PlayerDelta{}
			err = &EffectError{Source: job.source, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	delta, err = job.effect(job.snapshot)
	if err != nil {
		return PlayerDelta{}, &EffectError{Source: job.source, Err: err}
	}
	if delta.Source == "" {
		delta.Source = job.source
	}
	return delta, nil
}
