package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/kraftory/go-backend/pkg/e"
)

func TestNewOrder(t *testing.T) {
	order := NewOrder("Omar Khalil", "12 Rue de Carthage, Tunis", "+216 22345678", 59_900)

	require.NotEmpty(t, order.ID)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, int64(59_900), order.TotalPrice)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.True(t, strings.HasSuffix(order.OrderNumber, order.ID[:8]))
}

func TestNewOrderNumber_DistinctWithinSameMillisecond(t *testing.T) {
	// Разные UUID дают разные суффиксы даже при совпадающей метке времени.
	a := newOrderNumber("0c6d21ea-0e2e-4e5e-8f3b-1a2b3c4d5e6f")
	b := newOrderNumber("ffffffff-0e2e-4e5e-8f3b-1a2b3c4d5e6f")

	assert.True(t, strings.HasSuffix(a, "-0c6d21ea"))
	assert.True(t, strings.HasSuffix(b, "-ffffffff"))
	assert.NotEqual(t, a, b)
}

func TestNewOrder_UniqueNumbers(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		order := NewOrder("Omar Khalil", "12 Rue de Carthage, Tunis", "+216 22345678", 59_900)
		assert.False(t, seen[order.OrderNumber], "duplicate order number %s", order.OrderNumber)
		seen[order.OrderNumber] = true
	}
}

func TestParseOrderStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "shipped", "delivered"} {
		status, err := ParseOrderStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, OrderStatus(valid), status)
	}

	for _, invalid := range []string{"", "cancelled", "PENDING", "Confirmed", "unknown"} {
		_, err := ParseOrderStatus(invalid)
		assert.ErrorIs(t, err, e.ErrInvalidStatus, "input %q", invalid)
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},

		// пропуски
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusConfirmed, StatusDelivered, false},

		// возвраты
		{StatusConfirmed, StatusPending, false},
		{StatusShipped, StatusConfirmed, false},
		{StatusDelivered, StatusShipped, false},

		// на месте
		{StatusPending, StatusPending, false},
		{StatusDelivered, StatusDelivered, false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}
