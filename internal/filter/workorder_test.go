package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gmnfield/opsboard/pkg/boardstore"
)

func order(number, trade, techID string, status boardstore.WorkOrderStatus) boardstore.WorkOrder {
	return boardstore.WorkOrder{WONumber: number, Trade: trade, TechnicianID: techID, Status: status}
}

func TestCriteriaEmptyMatchesAll(t *testing.T) {
	c := &Criteria{}
	assert.False(t, c.HasFilters())

	wo := order("WO-4821", "Electrical", "tech-1", boardstore.WorkOrderWaiting)
	assert.True(t, c.Matches(&wo))
}

func TestCriteriaStatus(t *testing.T) {
	c := &Criteria{Status: "completed"}
	done := order("WO-1", "Plumbing", "", boardstore.WorkOrderCompleted)
	open := order("WO-2", "Plumbing", "", boardstore.WorkOrderWaiting)
	assert.True(t, c.Matches(&done))
	assert.False(t, c.Matches(&open))
}

func TestCriteriaTradeIsCaseInsensitive(t *testing.T) {
	c := &Criteria{Trade: "electrical"}
	wo := order("WO-1", "Electrical", "", boardstore.WorkOrderWaiting)
	assert.True(t, c.Matches(&wo))
}

func TestCriteriaNumberGlob(t *testing.T) {
	c := &Criteria{NumberGlob: "WO-48*"}
	hit := order("WO-4821", "", "", boardstore.WorkOrderWaiting)
	miss := order("WO-5100", "", "", boardstore.WorkOrderWaiting)
	assert.True(t, c.Matches(&hit))
	assert.False(t, c.Matches(&miss))
}

func TestCriteriaAreANDed(t *testing.T) {
	c := &Criteria{Status: "waiting", TechnicianID: "tech-1"}
	both := order("WO-1", "", "tech-1", boardstore.WorkOrderWaiting)
	wrongTech := order("WO-2", "", "tech-2", boardstore.WorkOrderWaiting)
	assert.True(t, c.Matches(&both))
	assert.False(t, c.Matches(&wrongTech))
}

func TestCriteriaQuerySearchesAcrossFields(t *testing.T) {
	wo := boardstore.WorkOrder{WONumber: "WO-4821", Client: "Hilltop Grocers", City: "Denver", TechnicianName: "Maria Ortiz"}

	for _, q := range []string{"hilltop", "DENVER", "ortiz", "4821"} {
		c := &Criteria{Query: q}
		assert.True(t, c.Matches(&wo), "query %q should match", q)
	}
	miss := &Criteria{Query: "plumbing"}
	assert.False(t, miss.Matches(&wo))
}

func TestApplyPreservesOrder(t *testing.T) {
	orders := []boardstore.WorkOrder{
		order("WO-1", "", "", boardstore.WorkOrderWaiting),
		order("WO-2", "", "", boardstore.WorkOrderCompleted),
		order("WO-3", "", "", boardstore.WorkOrderWaiting),
	}
	kept := (&Criteria{Status: "waiting"}).Apply(orders)
	assert.Len(t, kept, 2)
	assert.Equal(t, "WO-1", kept[0].WONumber)
	assert.Equal(t, "WO-3", kept[1].WONumber)
}
