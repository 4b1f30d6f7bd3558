package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ErrQueueFull is returned by Enqueue when the target worker's buffer is full.
var ErrQueueFull = errors.New("delivery queue full")

// Delivery identifies a notification to hand to the notifier.
type Delivery struct {
	NotificationID uint
	InvoiceID      uint
}

// Deliverer is the use case the workers call for each delivery.
type Deliverer interface {
	Deliver(ctx context.Context, id uint) error
}

// Dispatcher routes notification deliveries to a fixed set of workers using
// consistent hashing on the invoice ID, so notifications for one invoice go
// out in the order they were queued.
type Dispatcher struct {
	workers   []chan Delivery
	deliverer Deliverer
	log       zerolog.Logger
	wg        sync.WaitGroup

	// OnResult, when set, is called after each delivery attempt.
	OnResult func(d Delivery, err error)
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, deliverer Deliverer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan Delivery, numWorkers),
		deliverer: deliverer,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan Delivery, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands a delivery to the worker responsible for its invoice
// without blocking.
func (d *Dispatcher) Enqueue(delivery Delivery) error {
	select {
	case d.workers[d.shardIndex(delivery.InvoiceID)] <- delivery:
		return nil
	default:
		return ErrQueueFull
	}
}

// Pending returns the number of queued deliveries across all workers.
func (d *Dispatcher) Pending() int {
	n := 0
	for _, ch := range d.workers {
		n += len(ch)
	}
	return n
}

// shardIndex maps an invoice ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(invoiceID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatUint(uint64(invoiceID), 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan Delivery) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case delivery := <-ch:
			err := d.deliverer.Deliver(ctx, delivery.NotificationID)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				d.log.Error().Err(err).
					Uint("notification_id", delivery.NotificationID).
					Uint("invoice_id", delivery.InvoiceID).
					Int("worker_id", id).
					Msg("notification delivery failed")
			}
			if d.OnResult != nil {
				d.OnResult(delivery, err)
			}
		}
	}
}
