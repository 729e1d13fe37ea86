package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmnfield/opsboard/internal/aggregate"
	"github.com/gmnfield/opsboard/pkg/boardstore"
)

func sampleOrders() []boardstore.WorkOrder {
	eta := time.Now().Add(24 * time.Hour)
	return []boardstore.WorkOrder{
		{
			ID: "11111111-aaaa", WONumber: "WO-4821", Client: "Lakeside Dental",
			Status: boardstore.WorkOrderWaiting, NotToExceed: 750, ETAAt: &eta,
			TechnicianName: "Maria Ortiz",
		},
		{
			ID: "22222222-bbbb", WONumber: "WO-4822", Client: "Hilltop Grocers",
			Status: boardstore.WorkOrderCompleted, ETAText: "TBD",
		},
	}
}

func TestFormatWorkOrderTable(t *testing.T) {
	buf := &bytes.Buffer{}
	n := FormatWorkOrderTable(buf, sampleOrders(), "main-office")
	out := buf.String()

	assert.Equal(t, 2, n)
	assert.Contains(t, out, "11111111")
	assert.NotContains(t, out, "11111111-aaaa")
	assert.Contains(t, out, "WO-4821")
	assert.Contains(t, out, "$750.00")
	assert.Contains(t, out, "Maria Ortiz")
	assert.Contains(t, out, "TBD")
	assert.Contains(t, out, "2 work orders found")
}

func TestFormatWorkOrderTableEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	n := FormatWorkOrderTable(buf, nil, "main-office")
	assert.Equal(t, 0, n)
	assert.Contains(t, buf.String(), "No work orders found for instance 'main-office'")
}

func TestFormatTechnicianTable(t *testing.T) {
	buf := &bytes.Buffer{}
	techs := []boardstore.Technician{
		{ID: "33333333-cccc", Name: "Sam Reed", Trade: "Plumbing", Phone: "+13035550102", JobsDone: 12, RevenueGenerated: 8400},
		{ID: "44444444-dddd", Name: "Lena Park", Trade: "HVAC", Blacklisted: true, BlacklistReason: "no-show twice"},
	}
	n := FormatTechnicianTable(buf, techs, "main-office")
	out := buf.String()

	assert.Equal(t, 2, n)
	assert.Contains(t, out, "Sam Reed")
	assert.Contains(t, out, "BLACKLISTED: no-show twice")
	assert.Contains(t, out, "2 technicians found")
}

func TestFormatTechnicianCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	techs := []boardstore.Technician{
		{Name: "Sam Reed", Trade: "Plumbing", Phone: "+13035550102", City: "Denver", State: "CO"},
		{Name: "Lena Park", Trade: "HVAC", Blacklisted: true},
	}
	require.NoError(t, FormatTechnicianCSV(buf, techs))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Sam Reed,Plumbing,+13035550102,Denver,CO,No", lines[0])
	assert.Equal(t, "Lena Park,HVAC,,,,Yes", lines[1])
}

func TestFormatCostTable(t *testing.T) {
	buf := &bytes.Buffer{}
	costs := []boardstore.CostRequest{
		{ID: "55555555-eeee", WONumber: "WO-4821", TechnicianName: "Maria Ortiz", Amount: 500,
			Status: boardstore.CostApproved, RequestedAt: time.Now().Add(-2 * time.Hour), Note: "panel replacement"},
	}
	n := FormatCostTable(buf, costs, "main-office")
	out := buf.String()

	assert.Equal(t, 1, n)
	assert.Contains(t, out, "$500.00")
	assert.Contains(t, out, "approved")
	assert.Contains(t, out, "2h ago")
	assert.Contains(t, out, "1 cost request found")
}

func TestFormatFileTableFlagsOrphans(t *testing.T) {
	buf := &bytes.Buffer{}
	files := []boardstore.FileRecord{
		{ID: "f1", Name: "before.jpg", MimeType: "image/jpeg", ByteSize: 2048},
		{ID: "f2", Name: "after.jpg", MimeType: "image/jpeg", ByteSize: 3 << 20},
	}
	FormatFileTable(buf, files, map[string]bool{"f2": true}, "main-office")
	out := buf.String()

	assert.Contains(t, out, "2.0KB")
	assert.Contains(t, out, "3.0MB")
	lines := strings.Split(out, "\n")
	var orphanLine string
	for _, l := range lines {
		if strings.Contains(l, "after.jpg") {
			orphanLine = l
		}
	}
	assert.Contains(t, orphanLine, "ORPHAN")
}

func TestFormatScheduleTable(t *testing.T) {
	buf := &bytes.Buffer{}
	entries := []aggregate.ScheduleEntry{
		{At: time.Now(), Title: "WO-4821 Lakeside Dental", Priority: boardstore.PriorityHigh, WorkOrderID: "w1"},
		{At: time.Now().Add(time.Hour), Title: "Permit inspection", Priority: boardstore.PriorityLow, EventID: "e1"},
	}
	FormatScheduleTable(buf, entries, "main-office")
	out := buf.String()

	assert.Contains(t, out, "work order")
	assert.Contains(t, out, "Permit inspection")
	assert.Contains(t, out, "high")
	assert.Contains(t, out, "2 entries")
}

func TestFormatJSONL(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, FormatJSONL(buf, sampleOrders()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var wo boardstore.WorkOrder
		require.NoError(t, json.Unmarshal([]byte(line), &wo))
	}
}

func TestFormatSingleJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, FormatSingleJSON(buf, sampleOrders()[0]))
	assert.Contains(t, buf.String(), "\"wo\": \"WO-4821\"")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}
