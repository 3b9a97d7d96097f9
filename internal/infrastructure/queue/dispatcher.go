package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/beautyshop/storefront-api/internal/api/metrics"
	"github.com/beautyshop/storefront-api/internal/core/domain"
	"github.com/beautyshop/storefront-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes order audit events to a fixed set of workers using
// consistent hashing on the order id, so events of one order are recorded in
// the order they were raised.
type Dispatcher struct {
	workers []chan domain.OrderEvent
	service ports.OrderEventService
	log     zerolog.Logger
	wg      sync.WaitGroup

	// mu orders Enqueue against stop: once stopped is set no event can land
	// in a channel the workers have finished draining.
	mu      sync.RWMutex
	stopped bool
	quit    chan struct{}
}

var _ ports.OrderEventPublisher = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.OrderEventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.OrderEvent, numWorkers),
		service: service,
		log:     log,
		quit:    make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.OrderEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. When ctx is cancelled the dispatcher
// stops accepting events, workers drain what is already queued and return;
// Wait blocks until they have. Cancel ctx only after the producers (the HTTP
// server) have stopped.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		d.mu.Lock()
		d.stopped = true
		d.mu.Unlock()
		close(d.quit)
	}()
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands an event to the worker responsible for its order. It never
// blocks the caller: when that worker's buffer is full, or the dispatcher has
// been stopped, the event is dropped and counted.
func (d *Dispatcher) Enqueue(event domain.OrderEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	idx := d.shardIndex(event.OrderID)
	if d.stopped {
		metrics.OrderEventsErrorsTotal.WithLabelValues("stopped").Inc()
		d.log.Warn().
			Str("order_id", event.OrderID).
			Str("field", event.Field).
			Msg("order event dropped, dispatcher stopped")
		return
	}
	select {
	case d.workers[idx] <- event:
		metrics.OrderEventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.OrderEventsErrorsTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().
			Str("order_id", event.OrderID).
			Str("field", event.Field).
			Int("worker_id", idx).
			Msg("order event dropped, queue full")
	}
}

// shardIndex maps an order id deterministically to a worker index.
func (d *Dispatcher) shardIndex(orderID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(orderID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.OrderEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	// Processing outlives ctx; repository timeouts bound each call.
	ctx = context.WithoutCancel(ctx)
	for {
		select {
		case <-d.quit:
			d.drain(id, ch)
			return
		case event := <-ch:
			metrics.OrderEventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.process(ctx, id, event)
		}
	}
}

// drain records events still buffered at shutdown with a short deadline of
// their own.
func (d *Dispatcher) drain(id int, ch <-chan domain.OrderEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case event := <-ch:
			d.process(ctx, id, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, event domain.OrderEvent) {
	start := time.Now()
	if err := d.service.Process(ctx, event); err != nil {
		metrics.OrderEventsErrorsTotal.WithLabelValues("process_failed").Inc()
		metrics.OrderEventProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		d.log.Error().Err(err).
			Str("order_id", event.OrderID).
			Int("worker_id", id).
			Msg("order event processing failed")
		return
	}
	metrics.OrderEventsProcessedTotal.WithLabelValues(event.Field).Inc()
	metrics.OrderEventProcessingDuration.WithLabelValues(event.Field).Observe(time.Since(start).Seconds())
}
