package cart

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/SAILENDHRAB21/PriceBite/internal/domain"
	"github.com/SAILENDHRAB21/PriceBite/internal/store"
)

// Ledger owns the current selections per user prior to checkout. Mutations
// run against in-memory lines and write a snapshot to the store's cart slot;
// a failed write is logged and the in-memory state stays authoritative for
// the rest of the session. Line order is insertion order and survives
// persistence round-trips.
type Ledger struct {
	mu     sync.Mutex
	store  store.Store
	carts  map[string][]domain.CartLine
	loaded map[string]bool
}

func NewLedger(st store.Store) *Ledger {
	return &Ledger{
		store:  st,
		carts:  make(map[string][]domain.CartLine),
		loaded: make(map[string]bool),
	}
}

// AddItem increments the line holding item's id, or appends a new line with
// quantity 1. Always succeeds.
func (l *Ledger) AddItem(ctx context.Context, userID string, item domain.MenuItem) []domain.CartLine {
	l.mu.Lock()
	defer l.mu.Unlock()

	lines := l.loadLocked(ctx, userID)
	found := false
	for i := range lines {
		if lines[i].ID == item.ID {
			lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, domain.CartLine{MenuItem: item, Quantity: 1})
	}

	l.carts[userID] = lines
	l.persistLocked(ctx, userID)
	return domain.CopyLines(lines)
}

// RemoveItem deletes the line with the given id. Absent ids are a no-op,
// not an error.
func (l *Ledger) RemoveItem(ctx context.Context, userID, itemID string) []domain.CartLine {
	l.mu.Lock()
	defer l.mu.Unlock()

	lines := l.loadLocked(ctx, userID)
	for i, line := range lines {
		if line.ID == itemID {
			lines = append(lines[:i], lines[i+1:]...)
			l.carts[userID] = lines
			l.persistLocked(ctx, userID)
			break
		}
	}
	return domain.CopyLines(l.carts[userID])
}

// SetQuantity sets the line's quantity. A quantity <= 0 behaves as
// RemoveItem; an absent id is a no-op.
func (l *Ledger) SetQuantity(ctx context.Context, userID, itemID string, quantity int) []domain.CartLine {
	if quantity <= 0 {
		return l.RemoveItem(ctx, userID, itemID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	lines := l.loadLocked(ctx, userID)
	for i := range lines {
		if lines[i].ID == itemID {
			lines[i].Quantity = quantity
			l.carts[userID] = lines
			l.persistLocked(ctx, userID)
			break
		}
	}
	return domain.CopyLines(l.carts[userID])
}

// Clear removes all lines and drops the persisted cart slot.
func (l *Ledger) Clear(ctx context.Context, userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.carts[userID] = nil
	l.loaded[userID] = true
	if err := l.store.Delete(ctx, store.CartKey(userID)); err != nil {
		log.Printf("cart slot delete error for user %s: %v", userID, err)
	}
}

// Lines returns a copy of the cart in insertion order.
func (l *Ledger) Lines(ctx context.Context, userID string) []domain.CartLine {
	l.mu.Lock()
	defer l.mu.Unlock()
	return domain.CopyLines(l.loadLocked(ctx, userID))
}

// Snapshot freezes the cart for checkout. Later mutations of the live cart
// must not affect the returned lines.
func (l *Ledger) Snapshot(ctx context.Context, userID string) []domain.CartLine {
	return l.Lines(ctx, userID)
}

// Subtotal recomputes the price sum over current lines. Never negative,
// never cached.
func (l *Ledger) Subtotal(ctx context.Context, userID string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return domain.Subtotal(l.loadLocked(ctx, userID))
}

// ItemCount recomputes the quantity sum over current lines.
func (l *Ledger) ItemCount(ctx context.Context, userID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return domain.ItemCount(l.loadLocked(ctx, userID))
}

// loadLocked restores the user's cart from the store on first access.
// A read failure is logged and the session starts empty.
func (l *Ledger) loadLocked(ctx context.Context, userID string) []domain.CartLine {
	if l.loaded[userID] {
		return l.carts[userID]
	}

	var lines []domain.CartLine
	err := l.store.Get(ctx, store.CartKey(userID), &lines)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("cart slot read error for user %s: %v", userID, err)
	}

	l.carts[userID] = lines
	l.loaded[userID] = true
	return lines
}

// persistLocked snapshots the cart to its slot. Non-fatal on failure.
func (l *Ledger) persistLocked(ctx context.Context, userID string) {
	if err := l.store.Set(ctx, store.CartKey(userID), l.carts[userID]); err != nil {
		log.Printf("cart slot write error for user %s: %v", userID, err)
	}
}
