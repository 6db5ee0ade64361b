package shopping

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPantryItem(t *testing.T) {
	owner := uuid.New()

	t.Run("creates an item", func(t *testing.T) {
		unit := "g"
		item, err := NewPantryItem(owner, "Flour", decimal.NewFromInt(500), &unit, nil)
		require.NoError(t, err)
		assert.True(t, item.OwnedBy(owner))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewPantryItem(owner, "  ", decimal.NewFromInt(1), nil, nil)
		assert.Error(t, err)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := NewPantryItem(owner, "Flour", decimal.NewFromInt(-1), nil, nil)
		assert.Error(t, err)
	})

	t.Run("rejects unknown unit", func(t *testing.T) {
		unit := "bushels"
		_, err := NewPantryItem(owner, "Flour", decimal.NewFromInt(1), &unit, nil)
		assert.Error(t, err)
	})
}

func TestPantryItemAddQuantity(t *testing.T) {
	item, err := NewPantryItem(uuid.New(), "Rice", decimal.NewFromInt(200), nil, nil)
	require.NoError(t, err)

	require.NoError(t, item.AddQuantity(decimal.NewFromInt(300)))
	assert.True(t, decimal.NewFromInt(500).Equal(item.Quantity))

	assert.Error(t, item.AddQuantity(decimal.NewFromInt(-1)))
}

func TestPantryItemExpiresWithin(t *testing.T) {
	now := time.Date(2026, time.May, 4, 12, 0, 0, 0, time.UTC)
	item, err := NewPantryItem(uuid.New(), "Milk", decimal.NewFromInt(1), nil, nil)
	require.NoError(t, err)

	at := func(d time.Time) *time.Time { return &d }

	t.Run("no expiry date never expires", func(t *testing.T) {
		assert.False(t, item.ExpiresWithin(now, 7))
	})

	t.Run("inside the window", func(t *testing.T) {
		item.ExpiryDate = at(now.AddDate(0, 0, 3))
		assert.True(t, item.ExpiresWithin(now, 7))
	})

	t.Run("beyond the window", func(t *testing.T) {
		item.ExpiryDate = at(now.AddDate(0, 0, 30))
		assert.False(t, item.ExpiresWithin(now, 7))
	})

	t.Run("already expired is excluded", func(t *testing.T) {
		item.ExpiryDate = at(now.AddDate(0, 0, -1))
		assert.False(t, item.ExpiresWithin(now, 7))
	})
}
