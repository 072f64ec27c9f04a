package order

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/SAILENDHRAB21/PriceBite/internal/domain"
	"github.com/SAILENDHRAB21/PriceBite/internal/store"
)

var (
	ErrNoOrder    = errors.New("no current order")
	ErrEmptyOrder = errors.New("order must contain at least one item")
)

// EventPublisher receives every status transition. Publishing is best-effort;
// the tracker logs failures and moves on.
type EventPublisher interface {
	PublishStatusChange(ctx context.Context, o *domain.Order) error
}

// Tracker owns the one current order per user after checkout. Placing a new
// order overwrites the prior one (single slot, not a history). Status
// advances on one-shot timers scheduled at placement; timers are keyed by
// order id and re-check the expected prior status before mutating, so a
// callback outlived by a newer order no-ops instead of corrupting it.
//
// Timers intentionally stop at "Out for Delivery". The terminal "Delivered"
// status is only reachable through an explicit Advance call.
type Tracker struct {
	mu        sync.Mutex
	store     store.Store
	orders    map[string]*domain.Order
	loaded    map[string]bool
	timers    map[string][]*time.Timer
	publisher EventPublisher
	events    chan *domain.Order
	drained   chan struct{}
	closed    bool

	// statusDelay is one progression step; Preparing fires after one step
	// from placement, Out for Delivery after two.
	statusDelay time.Duration
}

func NewTracker(st store.Store, statusDelay time.Duration, publisher EventPublisher) *Tracker {
	t := &Tracker{
		store:       st,
		orders:      make(map[string]*domain.Order),
		loaded:      make(map[string]bool),
		timers:      make(map[string][]*time.Timer),
		publisher:   publisher,
		statusDelay: statusDelay,
	}
	if publisher != nil {
		t.events = make(chan *domain.Order, 64)
		t.drained = make(chan struct{})
		go t.publishLoop()
	}
	return t
}

// PlaceOrder freezes the given cart lines into a new order with status
// Placed, persists it as the user's current order and schedules the timed
// progression. The lines are copied by value; mutating the live cart
// afterwards must not change the stored order.
func (t *Tracker) PlaceOrder(ctx context.Context, userID string, lines []domain.CartLine, total float64, meta domain.DeliveryMeta) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	now := time.Now()
	o := &domain.Order{
		OrderID:   newOrderID(),
		UserID:    userID,
		Items:     domain.CopyLines(lines),
		Total:     total,
		Status:    domain.OrderStatusPlaced,
		Delivery:  meta,
		CreatedAt: now,
		UpdatedAt: now,
	}

	t.mu.Lock()
	if prev := t.loadLocked(ctx, userID); prev != nil {
		t.cancelTimersLocked(prev.OrderID)
	}
	t.orders[userID] = o
	t.loaded[userID] = true
	t.persistLocked(ctx, userID)
	t.scheduleLocked(userID, o.OrderID)
	placed := copyOrder(o)
	t.mu.Unlock()

	t.notify(placed)
	return placed, nil
}

// Advance moves the current order to the next status. A terminal order is
// left unchanged; this is a no-op, not an error.
func (t *Tracker) Advance(ctx context.Context, userID string) (*domain.Order, error) {
	t.mu.Lock()
	o := t.loadLocked(ctx, userID)
	if o == nil {
		t.mu.Unlock()
		return nil, ErrNoOrder
	}

	next, ok := o.Status.Next()
	if !ok {
		t.mu.Unlock()
		return copyOrder(o), nil
	}

	o.Status = next
	o.UpdatedAt = time.Now()
	t.persistLocked(ctx, userID)
	advanced := copyOrder(o)
	t.mu.Unlock()

	t.notify(advanced)
	return advanced, nil
}

// Current returns the user's persisted current order.
func (t *Tracker) Current(ctx context.Context, userID string) (*domain.Order, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	o := t.loadLocked(ctx, userID)
	if o == nil {
		return nil, ErrNoOrder
	}
	return copyOrder(o), nil
}

// Stop cancels all pending advance timers and drains queued status events.
// Persisted state keeps the last reached status and simply stops
// progressing, to be shown again on the next start.
func (t *Tracker) Stop() {
	t.mu.Lock()
	for orderID := range t.timers {
		t.cancelTimersLocked(orderID)
	}
	alreadyClosed := t.closed
	t.closed = true
	t.mu.Unlock()

	if t.events != nil && !alreadyClosed {
		close(t.events)
		<-t.drained
	}
}

// scheduleLocked arms the two one-shot transitions for a freshly placed
// order: Placed -> Preparing after one step, Preparing -> Out for Delivery
// after two.
func (t *Tracker) scheduleLocked(userID, orderID string) {
	if t.statusDelay <= 0 {
		return
	}
	t.timers[orderID] = []*time.Timer{
		time.AfterFunc(t.statusDelay, func() {
			t.advanceScheduled(userID, orderID, domain.OrderStatusPlaced)
		}),
		time.AfterFunc(2*t.statusDelay, func() {
			t.advanceScheduled(userID, orderID, domain.OrderStatusPreparing)
		}),
	}
}

// advanceScheduled is the timer callback. It re-reads the current order by
// id and only transitions when the order is still current and still in the
// expected prior status; anything else means the callback is stale.
func (t *Tracker) advanceScheduled(userID, orderID string, from domain.OrderStatus) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t.mu.Lock()
	o := t.loadLocked(ctx, userID)
	if o == nil || o.OrderID != orderID || o.Status != from {
		t.mu.Unlock()
		return
	}

	next, ok := from.Next()
	if !ok {
		t.mu.Unlock()
		return
	}

	o.Status = next
	o.UpdatedAt = time.Now()
	t.persistLocked(ctx, userID)
	advanced := copyOrder(o)
	t.mu.Unlock()

	log.Printf("order %s advanced to %s", orderID, next)
	t.notify(advanced)
}

func (t *Tracker) cancelTimersLocked(orderID string) {
	for _, timer := range t.timers[orderID] {
		timer.Stop()
	}
	delete(t.timers, orderID)
}

// loadLocked restores the user's current order from the store on first
// access. Read failures are logged; the session continues without an order.
func (t *Tracker) loadLocked(ctx context.Context, userID string) *domain.Order {
	if t.loaded[userID] {
		return t.orders[userID]
	}

	var o domain.Order
	err := t.store.Get(ctx, store.OrderKey(userID), &o)
	switch {
	case err == nil:
		t.orders[userID] = &o
	case errors.Is(err, store.ErrNotFound):
		t.orders[userID] = nil
	default:
		log.Printf("order slot read error for user %s: %v", userID, err)
		t.orders[userID] = nil
	}

	t.loaded[userID] = true
	return t.orders[userID]
}

// persistLocked writes the current order to its slot. Non-fatal on failure.
func (t *Tracker) persistLocked(ctx context.Context, userID string) {
	if err := t.store.Set(ctx, store.OrderKey(userID), t.orders[userID]); err != nil {
		log.Printf("order slot write error for user %s: %v", userID, err)
	}
}

// notify queues a status-change event without blocking order flow. The
// caller hands over a snapshot it no longer mutates. A full queue drops the
// event rather than stalling a checkout on a slow broker.
func (t *Tracker) notify(event *domain.Order) {
	if t.publisher == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	select {
	case t.events <- event:
	default:
		log.Printf("status event queue full, dropping event for order %s", event.OrderID)
	}
}

// publishLoop is the single consumer of the event queue. One goroutine
// publishes sequentially so events reach the broker in transition order;
// the partition key alone cannot give that when writes race.
func (t *Tracker) publishLoop() {
	defer close(t.drained)
	for event := range t.events {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := t.publisher.PublishStatusChange(ctx, event); err != nil {
			log.Printf("status event publish error for order %s: %v", event.OrderID, err)
		}
		cancel()
	}
}

func copyOrder(o *domain.Order) *domain.Order {
	out := *o
	out.Items = domain.CopyLines(o.Items)
	return &out
}

func newOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}
