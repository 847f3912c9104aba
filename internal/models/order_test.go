package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotal(t *testing.T) {
	o := Order{
		Items: []OrderItem{
			{ProductID: "p1", Quantity: 2, Price: 4500},
			{ProductID: "p2", Quantity: 1, Price: 7900},
		},
	}
	require.Equal(t, 16900.0, o.ComputeTotal())
}

func TestComputeTotal_Empty(t *testing.T) {
	require.Equal(t, 0.0, Order{}.ComputeTotal())
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusProcessing, OrderStatusCompleted, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s → %s", tc.from, tc.to)
	}
}
