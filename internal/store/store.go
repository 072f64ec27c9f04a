package store

import (
	"context"
	"errors"
)

// Store persists the per-user session slots (cart, user, current order) as
// JSON-serializable values. A process restart reads the slots back; every
// mutation writes through. Implementations report a missing key as
// ErrNotFound, which callers treat as "empty slot", not a failure.
type Store interface {
	Get(ctx context.Context, key string, out interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("slot not found")

// Slot keys. Exactly one cart, one user record and one current order per user.
func CartKey(userID string) string  { return "cart:" + userID }
func UserKey(userID string) string  { return "user:" + userID }
func OrderKey(userID string) string { return "order:" + userID }
