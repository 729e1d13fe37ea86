package boardstore

// Normalization applied on every load
//
// Collections accumulate records written by older application versions that
// predate newer fields. Rather than scattering nil checks through every
// consumer, defaults are filled here once, at the load boundary. Save paths
// never see a record that normalize has not touched.

// DefaultMultiplier is the markup applied to incurred cost when a proposal
// does not carry its own.
const DefaultMultiplier = 1.75

// legacyETAFallback is the label shown for records created before scheduled
// ETAs existed. It is display-only and never authoritative once ETAAt is set.
const legacyETAFallback = "TBD"

func (w *WorkOrder) normalize() {
	if w.Status == "" {
		w.Status = WorkOrderWaiting
	}
	if w.ETAAt != nil && w.ETAAt.IsZero() {
		w.ETAAt = nil
	}
	// The text label is a fallback only. When an instant is present the
	// label is cleared so stale free text can never shadow it.
	if _, ok := w.ETA(); ok {
		w.ETAText = ""
	} else if w.ETAText == "" {
		w.ETAText = legacyETAFallback
	}
	if w.TechnicianID == "" {
		w.TechnicianName = ""
	}
}

func (t *Technician) normalize() {
	if !t.Blacklisted {
		t.BlacklistReason = ""
	}
}

func (c *CostRequest) normalize() {
	if c.Status == "" {
		c.Status = CostRequested
	}
	if c.ApprovedAt != nil && c.ApprovedAt.IsZero() {
		c.ApprovedAt = nil
	}
	if c.PaidAt != nil && c.PaidAt.IsZero() {
		c.PaidAt = nil
	}
}

func (p *Proposal) normalize() {
	if p.Parts == nil {
		p.Parts = []PartLine{}
	}
	if p.Multiplier == 0 {
		p.Multiplier = DefaultMultiplier
	}
}

func (f *FileRecord) normalize() {
	if f.MimeType == "" {
		f.MimeType = "application/octet-stream"
	}
}

func (e *CalendarEvent) normalize() {
	if e.Priority == "" {
		e.Priority = PriorityNormal
	}
}
