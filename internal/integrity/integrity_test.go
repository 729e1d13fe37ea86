package integrity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmnfield/opsboard/pkg/boardstore"
)

func fixtures() ([]boardstore.WorkOrder, []boardstore.CostRequest, []boardstore.Proposal) {
	workOrders := []boardstore.WorkOrder{
		{ID: "wo1", TechnicianID: "t1"},
		{ID: "wo2", TechnicianID: "t1"},
		{ID: "wo3", TechnicianID: ""},
	}
	costs := []boardstore.CostRequest{
		{ID: "c1", WorkOrderID: "wo1", TechnicianID: "t1"},
		{ID: "c2", WorkOrderID: "wo2", TechnicianID: "t2"},
	}
	proposals := []boardstore.Proposal{
		{ID: "p1", WorkOrderID: "wo1", TechnicianID: "t2", HelperID: "t1"},
		{ID: "p2", WorkOrderID: "wo2", TechnicianID: "t3", HelperID: "t3"},
	}
	return workOrders, costs, proposals
}

func TestTechnicianRefs(t *testing.T) {
	workOrders, costs, proposals := fixtures()

	t.Run("counts all three collections", func(t *testing.T) {
		refs := TechnicianRefs("t1", workOrders, costs, proposals)
		assert.Equal(t, RefCounts{WorkOrders: 2, CostRequests: 1, Proposals: 1}, refs)
		assert.Equal(t, 4, refs.Total())
	})

	t.Run("helper slot counts toward proposals", func(t *testing.T) {
		refs := TechnicianRefs("t2", workOrders, costs, proposals)
		assert.Equal(t, RefCounts{CostRequests: 1, Proposals: 1}, refs)
	})

	t.Run("tech and helper on same proposal count twice", func(t *testing.T) {
		refs := TechnicianRefs("t3", workOrders, costs, proposals)
		assert.Equal(t, RefCounts{Proposals: 2}, refs)
	})

	t.Run("unreferenced technician", func(t *testing.T) {
		refs := TechnicianRefs("t9", workOrders, costs, proposals)
		assert.Zero(t, refs.Total())
	})
}

func TestCanDelete(t *testing.T) {
	workOrders, costs, proposals := fixtures()

	assert.False(t, CanDelete("t1", workOrders, costs, proposals))
	assert.True(t, CanDelete("t9", workOrders, costs, proposals))
}

func TestUsageByTechnician(t *testing.T) {
	workOrders, costs, proposals := fixtures()

	usage := UsageByTechnician(workOrders, costs, proposals)

	assert.Equal(t, RefCounts{WorkOrders: 2, CostRequests: 1, Proposals: 1}, usage["t1"])
	assert.Equal(t, RefCounts{CostRequests: 1, Proposals: 1}, usage["t2"])
	assert.Equal(t, RefCounts{Proposals: 2}, usage["t3"])

	// Unassigned work orders contribute nothing.
	_, ok := usage[""]
	assert.False(t, ok)
}

func TestOrphanFiles(t *testing.T) {
	workOrders := []boardstore.WorkOrder{{ID: "wo1"}}
	files := []boardstore.FileRecord{
		{ID: "f1", WorkOrderID: "wo1", Name: "ok.pdf"},
		{ID: "f2", WorkOrderID: "wo-gone", Name: "orphan.pdf"},
		{ID: "f3", WorkOrderID: "", Name: "unattached.pdf"},
	}

	orphans := OrphanFiles(files, workOrders)
	require.Len(t, orphans, 1)
	assert.Equal(t, "f2", orphans[0].ID)
}
