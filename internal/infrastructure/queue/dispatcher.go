package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/ecopilot/trip-planner/internal/api/metrics"
	"github.com/ecopilot/trip-planner/internal/core/domain"
	"github.com/ecopilot/trip-planner/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes account events to a fixed set of workers by hashing the
// email, so one user's events are processed in publish order.
type Dispatcher struct {
	workers []chan domain.AccountEvent
	service ports.AccountEventService
	log     zerolog.Logger

	// mu guards closed and the channel sends against close in Stop.
	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	ctx     context.Context
	abort   context.CancelFunc
	dropped atomic.Int64
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AccountEventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	ctx, abort := context.WithCancel(context.Background())
	d := &Dispatcher{
		workers: make([]chan domain.AccountEvent, numWorkers),
		service: service,
		log:     log,
		ctx:     ctx,
		abort:   abort,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AccountEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. They run until Stop, independent of
// any request or signal context.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Stop closes the queues and waits for the workers to process what is
// already buffered. When ctx expires first, in-flight calls are cancelled and
// the remaining events are dropped and counted.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = ctx.Err()
		d.abort()
		<-done
	}
	d.abort()

	// Events left behind by workers that never started.
	for i, ch := range d.workers {
		for event := range ch {
			d.drop(event, i, "shutdown")
		}
	}

	if n := d.dropped.Load(); n > 0 {
		d.log.Warn().Int64("dropped", n).Msg("account events dropped during shutdown")
	}
	d.log.Info().Msg("dispatcher stopped")
	return err
}

// Publish hands the event to the worker owning its email. It never blocks:
// when that worker's buffer is full, or the dispatcher is stopped, the event
// is dropped and counted.
func (d *Dispatcher) Publish(event domain.AccountEvent) {
	idx := d.shardIndex(event.Email)

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.drop(event, idx, "shutdown")
		return
	}

	select {
	case d.workers[idx] <- event:
		metrics.AccountEventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.drop(event, idx, "queue_full")
	}
}

func (d *Dispatcher) drop(event domain.AccountEvent, workerID int, reason string) {
	metrics.AccountEventsErrorsTotal.WithLabelValues(reason).Inc()
	if reason == "shutdown" {
		d.dropped.Add(1)
		return
	}
	d.log.Warn().
		Str("kind", string(event.Kind)).
		Int("worker_id", workerID).
		Msg("account event queue full, event dropped")
}

// shardIndex maps an email deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(id int, ch <-chan domain.AccountEvent) {
	defer d.wg.Done()

	label := strconv.Itoa(id)
	for event := range ch {
		metrics.AccountEventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
		if d.ctx.Err() != nil {
			d.drop(event, id, "shutdown")
			continue
		}
		if err := d.service.Process(d.ctx, event); err != nil {
			metrics.AccountEventsErrorsTotal.WithLabelValues("process_failed").Inc()
			d.log.Error().Err(err).
				Str("kind", string(event.Kind)).
				Int("worker_id", id).
				Msg("account event processing failed")
			continue
		}
		metrics.AccountEventsProcessedTotal.WithLabelValues(string(event.Kind)).Inc()
	}
}
