package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "completed", "cancelled"} {
		st, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(st))
	}

	_, err := ParseStatus("Completed")
	assert.Error(t, err)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Выполнен", StatusCompleted.Label())
	assert.Equal(t, "В обработке", StatusPending.Label())
	assert.Equal(t, "Отменён", StatusCancelled.Label())
}

func TestFind(t *testing.T) {
	orders := []Order{{ID: "ORD-001"}, {ID: "ORD-002"}}

	o, err := Find(orders, "ORD-002")
	require.NoError(t, err)
	assert.Equal(t, "ORD-002", o.ID)

	_, err = Find(orders, "ORD-404")
	assert.ErrorIs(t, err, ErrNotFound)
}
