package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotValue struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Price float64 `json:"price"`
}

func TestMemory_SetGetRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	in := slotValue{Name: "cart", Count: 2, Price: 25.98}
	require.NoError(t, m.Set(ctx, CartKey("user1"), in))

	var out slotValue
	require.NoError(t, m.Get(ctx, CartKey("user1"), &out))
	assert.Equal(t, in, out)
}

func TestMemory_MissingKey(t *testing.T) {
	m := NewMemory()

	var out slotValue
	err := m.Get(context.Background(), CartKey("nobody"), &out)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_SetOverwrites(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, UserKey("user1"), slotValue{Count: 1}))
	require.NoError(t, m.Set(ctx, UserKey("user1"), slotValue{Count: 2}))

	var out slotValue
	require.NoError(t, m.Get(ctx, UserKey("user1"), &out))
	assert.Equal(t, 2, out.Count)
}

func TestMemory_Delete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, OrderKey("user1"), slotValue{Count: 1}))
	require.NoError(t, m.Delete(ctx, OrderKey("user1")))

	var out slotValue
	assert.ErrorIs(t, m.Get(ctx, OrderKey("user1"), &out), ErrNotFound)
}

func TestMemory_DeleteMissingKeyIsNoOp(t *testing.T) {
	m := NewMemory()
	assert.NoError(t, m.Delete(context.Background(), "never-set"))
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, CartKey("user1"), []slotValue{{Name: "a"}}))

	var first []slotValue
	require.NoError(t, m.Get(ctx, CartKey("user1"), &first))
	first[0].Name = "mutated"

	var second []slotValue
	require.NoError(t, m.Get(ctx, CartKey("user1"), &second))
	assert.Equal(t, "a", second[0].Name)
}

func TestSlotKeys(t *testing.T) {
	assert.Equal(t, "cart:u1", CartKey("u1"))
	assert.Equal(t, "user:u1", UserKey("u1"))
	assert.Equal(t, "order:u1", OrderKey("u1"))
}
