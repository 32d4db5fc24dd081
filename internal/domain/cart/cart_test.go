package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zanco/backend/internal/domain/shared"
)

func TestCartAdd(t *testing.T) {
	productID := uuid.New()

	t.Run("new line starts at one", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(productID, 5, "M", "black"))
		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].Quantity)
	})

	t.Run("existing line increments", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(productID, 5, "M", "black"))
		require.NoError(t, c.Add(productID, 5, "M", "black"))
		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 2, lines[0].Quantity)
	})

	t.Run("different size is a separate line", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(productID, 5, "M", "black"))
		require.NoError(t, c.Add(productID, 5, "L", "black"))
		assert.Len(t, c.Lines(), 2)
		assert.Equal(t, 2, c.ItemCount())
	})

	t.Run("increment refused at stock limit", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(productID, 1, "", ""))
		err := c.Add(productID, 1, "", "")
		assert.ErrorIs(t, err, shared.ErrStockLimit)
		require.Len(t, c.Lines(), 1)
		assert.Equal(t, 1, c.Lines()[0].Quantity)
	})

	t.Run("no stock refuses new line", func(t *testing.T) {
		c := New()
		err := c.Add(productID, 0, "", "")
		assert.ErrorIs(t, err, shared.ErrStockLimit)
		assert.True(t, c.IsEmpty())
	})
}

func TestCartRemove(t *testing.T) {
	productID := uuid.New()
	c := New()
	require.NoError(t, c.Add(productID, 5, "M", "black"))
	require.NoError(t, c.Add(productID, 5, "L", "black"))

	c.Remove(productID, "M", "black")
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "L", lines[0].Size)

	// absent line is a no-op
	c.Remove(uuid.New(), "", "")
	assert.Len(t, c.Lines(), 1)
}

func TestCartSetQuantity(t *testing.T) {
	productID := uuid.New()

	newCart := func(t *testing.T) *Cart {
		c := New()
		require.NoError(t, c.Add(productID, 10, "", ""))
		return c
	}

	t.Run("sets quantity", func(t *testing.T) {
		c := newCart(t)
		require.NoError(t, c.SetQuantity(productID, 7, 10, "", ""))
		assert.Equal(t, 7, c.Lines()[0].Quantity)
	})

	t.Run("clamps to stock", func(t *testing.T) {
		c := newCart(t)
		require.NoError(t, c.SetQuantity(productID, 99, 10, "", ""))
		assert.Equal(t, 10, c.Lines()[0].Quantity)
	})

	t.Run("below one rejected unchanged", func(t *testing.T) {
		c := newCart(t)
		err := c.SetQuantity(productID, 0, 10, "", "")
		assert.ErrorIs(t, err, shared.ErrInvalidQuantity)
		assert.Equal(t, 1, c.Lines()[0].Quantity)
	})

	t.Run("missing line", func(t *testing.T) {
		c := newCart(t)
		err := c.SetQuantity(uuid.New(), 2, 10, "", "")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("product out of stock rejected unchanged", func(t *testing.T) {
		c := newCart(t)
		err := c.SetQuantity(productID, 2, 0, "", "")
		assert.ErrorIs(t, err, shared.ErrStockLimit)
		assert.Equal(t, 1, c.Lines()[0].Quantity)
	})
}

func TestCartClearAndCounts(t *testing.T) {
	c := New()
	assert.Equal(t, 0, c.ItemCount())

	a, b := uuid.New(), uuid.New()
	require.NoError(t, c.Add(a, 5, "", ""))
	require.NoError(t, c.Add(a, 5, "", ""))
	require.NoError(t, c.Add(b, 5, "", ""))
	assert.Equal(t, 3, c.ItemCount())
	assert.Len(t, c.ProductIDs(), 2)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.ItemCount())
}

func TestCartRetain(t *testing.T) {
	kept, dropped := uuid.New(), uuid.New()
	c := New()
	require.NoError(t, c.Add(kept, 5, "", ""))
	require.NoError(t, c.Add(dropped, 5, "", ""))

	c.Retain(func(id uuid.UUID) bool { return id == kept })

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, kept, lines[0].ProductID)
}
