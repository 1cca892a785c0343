package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bizsphere/marketplace/internal/core/domain"
	"github.com/bizsphere/marketplace/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ErrDispatcherClosed is returned by Insert once Stop has been called.
var ErrDispatcherClosed = errors.New("queue: dispatcher closed")

var _ ports.VerificationEventRepository = (*Dispatcher)(nil)

// Dispatcher writes verification audit events in the background. Events are
// routed to a fixed set of workers by hashing the business id, so the audit
// trail of one business is written in decision order.
type Dispatcher struct {
	mu      sync.RWMutex
	closed  bool
	workers []chan *domain.VerificationEvent
	sink    ports.VerificationEventRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers writing
// to sink. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.VerificationEventRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan *domain.VerificationEvent, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.VerificationEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or after Stop has drained their queue.
func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(len(d.workers))
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Insert queues event for its business's worker. It blocks only while that
// worker's buffer is full, and gives up when ctx is done.
func (d *Dispatcher) Insert(ctx context.Context, event *domain.VerificationEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}

	select {
	case d.workers[d.shardIndex(event.BusinessID)] <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop refuses new events and waits for the queued ones to be written.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// shardIndex maps a business id deterministically to a worker index.
func (d *Dispatcher) shardIndex(businessID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(businessID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.VerificationEvent) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sink.Insert(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("business_id", event.BusinessID).
					Str("status", string(event.Status)).
					Int("worker_id", id).
					Msg("verification event write failed")
			}
		}
	}
}
