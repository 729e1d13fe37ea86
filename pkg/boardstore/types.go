package boardstore

import (
	"fmt"
	"time"
)

// WorkOrderStatus is the lifecycle state of a work order.
// Business convention is forward-only (waiting → in_progress → completed →
// invoiced → paid) but any explicit operator transition is accepted; only the
// cost-request workflow checks the completed precondition.
type WorkOrderStatus string

const (
	WorkOrderWaiting    WorkOrderStatus = "waiting"
	WorkOrderInProgress WorkOrderStatus = "in_progress"
	WorkOrderCompleted  WorkOrderStatus = "completed"
	WorkOrderInvoiced   WorkOrderStatus = "invoiced"
	WorkOrderPaid       WorkOrderStatus = "paid"
)

// Validate checks if the WorkOrderStatus is a valid enum value.
func (s WorkOrderStatus) Validate() error {
	switch s {
	case WorkOrderWaiting, WorkOrderInProgress, WorkOrderCompleted,
		WorkOrderInvoiced, WorkOrderPaid:
		return nil
	default:
		return fmt.Errorf("unknown work order status: %q", s)
	}
}

// Active reports whether the work order is still in flight for scheduling
// purposes. Completed, invoiced and paid orders are never overdue.
func (s WorkOrderStatus) Active() bool {
	return s == WorkOrderWaiting || s == WorkOrderInProgress
}

// WorkOrder is a dispatched job for a client site.
//
// TechnicianID is a weak reference: it may point at a technician that has
// since been removed or blacklisted. TechnicianName is a display cache copied
// at assignment time; the id is authoritative for every integrity check and
// the name is only a resilience fallback for rendering.
type WorkOrder struct {
	ID             string          `json:"id"`
	WONumber       string          `json:"wo"`
	Client         string          `json:"client"`
	Trade          string          `json:"trade"`
	City           string          `json:"city"`
	NotToExceed    float64         `json:"nte"`
	Status         WorkOrderStatus `json:"status"`
	ETAAt          *time.Time      `json:"etaAt,omitempty"`
	ETAText        string          `json:"eta,omitempty"`
	TechnicianID   string          `json:"technicianId"`
	TechnicianName string          `json:"technicianName"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Validate checks if the WorkOrder has valid field values.
func (w *WorkOrder) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("work order id cannot be empty")
	}
	if w.WONumber == "" {
		return fmt.Errorf("work order number cannot be empty")
	}
	if w.Client == "" {
		return fmt.Errorf("client cannot be empty")
	}
	if w.NotToExceed < 0 {
		return fmt.Errorf("not-to-exceed must be >= 0, got %v", w.NotToExceed)
	}
	if err := w.Status.Validate(); err != nil {
		return err
	}
	return nil
}

// ETA returns the authoritative schedule instant when one is set.
// The free-text label exists only for records created before scheduled ETAs
// were adopted and must never be preferred over ETAAt.
func (w *WorkOrder) ETA() (time.Time, bool) {
	if w.ETAAt == nil || w.ETAAt.IsZero() {
		return time.Time{}, false
	}
	return *w.ETAAt, true
}

// Technician is a field worker from the tech list.
// JobsDone and RevenueGenerated are operator-entered counters, never
// recomputed from other collections.
type Technician struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Trade            string    `json:"trade"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	JobsDone         int       `json:"jobsDone"`
	RevenueGenerated float64   `json:"revenueGenerated"`
	Blacklisted      bool      `json:"blacklisted"`
	BlacklistReason  string    `json:"blacklistReason"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Validate checks if the Technician has valid field values.
// A blacklisted technician must carry a reason; clearing the flag clears it.
func (t *Technician) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("technician id cannot be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("technician name cannot be empty")
	}
	if t.JobsDone < 0 {
		return fmt.Errorf("jobs done must be >= 0, got %d", t.JobsDone)
	}
	if t.RevenueGenerated < 0 {
		return fmt.Errorf("revenue generated must be >= 0, got %v", t.RevenueGenerated)
	}
	if t.Blacklisted && t.BlacklistReason == "" {
		return fmt.Errorf("blacklisted technician must have a reason")
	}
	if !t.Blacklisted && t.BlacklistReason != "" {
		return fmt.Errorf("blacklist reason must be empty when not blacklisted")
	}
	return nil
}

// CostStatus is the accounts-payable state of a cost request.
// Forward flow: requested → approved → paid. A revert back to requested is
// permitted for corrections until the request is paid; paid is terminal.
type CostStatus string

const (
	CostRequested CostStatus = "requested"
	CostApproved  CostStatus = "approved"
	CostPaid      CostStatus = "paid"
)

// Validate checks if the CostStatus is a valid enum value.
func (s CostStatus) Validate() error {
	switch s {
	case CostRequested, CostApproved, CostPaid:
		return nil
	default:
		return fmt.Errorf("unknown cost status: %q", s)
	}
}

// Open reports whether the request still needs AP action.
// At most one open request may exist per work order.
func (s CostStatus) Open() bool {
	return s == CostRequested || s == CostApproved
}

// CostRequest is a payment request to accounts payable for a completed work
// order. WorkOrderID is a strong reference checked at creation time;
// WONumber, Client, Trade and TechnicianName are display caches copied from
// the referenced records when the request is created.
type CostRequest struct {
	ID             string     `json:"id"`
	WorkOrderID    string     `json:"woId"`
	WONumber       string     `json:"wo"`
	Client         string     `json:"client"`
	Trade          string     `json:"trade"`
	TechnicianID   string     `json:"technicianId"`
	TechnicianName string     `json:"technicianName"`
	Amount         float64    `json:"amount"`
	Note           string     `json:"note"`
	Status         CostStatus `json:"status"`
	RequestedAt    time.Time  `json:"requestedAt"`
	ApprovedAt     *time.Time `json:"approvedAt,omitempty"`
	PaidAt         *time.Time `json:"paidAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Validate checks if the CostRequest has valid field values.
func (c *CostRequest) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("cost request id cannot be empty")
	}
	if c.WorkOrderID == "" {
		return fmt.Errorf("cost request work order id cannot be empty")
	}
	if c.TechnicianID == "" {
		return fmt.Errorf("cost request technician id cannot be empty")
	}
	if c.Amount <= 0 {
		return fmt.Errorf("amount must be > 0, got %v", c.Amount)
	}
	if err := c.Status.Validate(); err != nil {
		return err
	}
	return nil
}

// PartLine is one itemized part on a proposal.
type PartLine struct {
	Description string  `json:"desc"`
	Qty         float64 `json:"qty"`
	Unit        float64 `json:"unit"`
}

// ProposalTotals is the pricing snapshot computed when the proposal is
/// created. It is historical record: edits to rates or parts after creation
// never recompute it.
type ProposalTotals struct {
	Incurred       float64 `json:"incurred"`
	TechLabor      float64 `json:"techLabor"`
	HelperLabor    float64 `json:"helperLabor"`
	Repair         float64 `json:"repair"`
	Parts          float64 `json:"parts"`
	GrandBeforeTax float64 `json:"grandBeforeTax"`
	TaxAmount      float64 `json:"taxAmount"`
	GrandWithTax   float64 `json:"grandWithTax"`
}

// Proposal is a scoped repair offer for a work order. HelperID is an
// optional second technician reference and counts toward referential
// integrity the same way TechnicianID does.
type Proposal struct {
	ID            string     `json:"id"`
	WorkOrderID   string     `json:"woId"`
	WONumber      string     `json:"wo"`
	Client        string     `json:"client"`
	TechnicianID  string     `json:"technicianId"`
	HelperID      string     `json:"helperId,omitempty"`
	Scope         string     `json:"scope"`
	TripFee       float64    `json:"tripFee"`
	AssessmentFee float64    `json:"assessmentFee"`
	TechHours     float64    `json:"techHours"`
	TechRate      float64    `json:"techRate"`
	HelperHours   float64    `json:"helperHours"`
	HelperRate    float64    `json:"helperRate"`
	Parts         []PartLine `json:"parts"`
	Cost          float64    `json:"cost"`
	Multiplier    float64    `json:"multiplier"`
	TaxPct        float64    `json:"taxPct"`
	Totals        ProposalTotals `json:"totals"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Validate checks if the Proposal has valid field values.
func (p *Proposal) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("proposal id cannot be empty")
	}
	if p.WorkOrderID == "" {
		return fmt.Errorf("proposal work order id cannot be empty")
	}
	if p.Multiplier <= 0 {
		return fmt.Errorf("multiplier must be > 0, got %v", p.Multiplier)
	}
	if p.TaxPct < 0 {
		return fmt.Errorf("tax percentage must be >= 0, got %v", p.TaxPct)
	}
	return nil
}

// FileRecord is metadata for an uploaded document. The bytes live in the
// blob store under the same id. WorkOrderID may dangle if the work order is
// later removed; such records are surfaced as orphans, never auto-deleted.
type FileRecord struct {
	ID          string    `json:"id"`
	WorkOrderID string    `json:"woId"`
	Name        string    `json:"name"`
	MimeType    string    `json:"type"`
	ByteSize    int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate checks if the FileRecord has valid field values.
func (f *FileRecord) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("file id cannot be empty")
	}
	if f.Name == "" {
		return fmt.Errorf("file name cannot be empty")
	}
	if f.ByteSize < 0 {
		return fmt.Errorf("file size must be >= 0, got %d", f.ByteSize)
	}
	return nil
}

// EventPriority ranks a calendar event.
type EventPriority string

const (
	PriorityLow    EventPriority = "low"
	PriorityNormal EventPriority = "normal"
	PriorityHigh   EventPriority = "high"
)

// Validate checks if the EventPriority is a valid enum value.
func (p EventPriority) Validate() error {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return nil
	default:
		return fmt.Errorf("unknown event priority: %q", p)
	}
}

// CalendarEvent is a standalone scheduling entry. It is deliberately not
// tied to any work order; work order ETAs and calendar events are merged
// only at the read layer.
type CalendarEvent struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	DateTime    time.Time     `json:"dateTime"`
	Priority    EventPriority `json:"priority"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Validate checks if the CalendarEvent has valid field values.
func (e *CalendarEvent) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event id cannot be empty")
	}
	if e.Title == "" {
		return fmt.Errorf("event title cannot be empty")
	}
	if e.DateTime.IsZero() {
		return fmt.Errorf("event date/time cannot be empty")
	}
	if err := e.Priority.Validate(); err != nil {
		return err
	}
	return nil
}
