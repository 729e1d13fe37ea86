package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gmnfield/opsboard/pkg/boardstore"
)

func TestAllowedCostTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    boardstore.CostStatus
		to      boardstore.CostStatus
		allowed bool
	}{
		{"requested to approved", boardstore.CostRequested, boardstore.CostApproved, true},
		{"approved to paid", boardstore.CostApproved, boardstore.CostPaid, true},
		{"requested to paid skips approval", boardstore.CostRequested, boardstore.CostPaid, false},
		{"approved to approved", boardstore.CostApproved, boardstore.CostApproved, false},
		{"revert from requested", boardstore.CostRequested, boardstore.CostRequested, true},
		{"revert from approved", boardstore.CostApproved, boardstore.CostRequested, true},
		{"revert from paid", boardstore.CostPaid, boardstore.CostRequested, false},
		{"paid to approved", boardstore.CostPaid, boardstore.CostApproved, false},
		{"paid to paid", boardstore.CostPaid, boardstore.CostPaid, false},
		{"unknown target", boardstore.CostRequested, "refunded", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, AllowedCostTransition(tt.from, tt.to))
		})
	}
}

func TestTerminalCostStatus(t *testing.T) {
	assert.False(t, TerminalCostStatus(boardstore.CostRequested))
	assert.False(t, TerminalCostStatus(boardstore.CostApproved))
	assert.True(t, TerminalCostStatus(boardstore.CostPaid))
}

func TestHasOpenRequest(t *testing.T) {
	costs := []boardstore.CostRequest{
		{ID: "c1", WorkOrderID: "wo1", Status: boardstore.CostPaid},
		{ID: "c2", WorkOrderID: "wo2", Status: boardstore.CostApproved},
		{ID: "c3", WorkOrderID: "wo3", Status: boardstore.CostRequested},
	}

	assert.False(t, HasOpenRequest(costs, "wo1"), "paid request is not open")
	assert.True(t, HasOpenRequest(costs, "wo2"))
	assert.True(t, HasOpenRequest(costs, "wo3"))
	assert.False(t, HasOpenRequest(costs, "wo4"))
}
