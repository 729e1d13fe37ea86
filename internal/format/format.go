// Package format renders board entities for the terminal: fixed-width
// tables for listings, JSONL for piping into tools like jq, and
// pretty-printed JSON for single records.
package format

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gmnfield/opsboard/internal/aggregate"
	"github.com/gmnfield/opsboard/pkg/boardstore"
)

// FormatJSONL writes records as line-delimited JSON, one object per line.
func FormatJSONL[T any](w io.Writer, records []T) error {
	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal record to JSON: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}
	return nil
}

// FormatSingleJSON writes one record as pretty-printed JSON.
func FormatSingleJSON(w io.Writer, record any) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record to JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

// FormatWorkOrderTable writes work orders as a table and returns the count.
func FormatWorkOrderTable(w io.Writer, orders []boardstore.WorkOrder, instanceName string) int {
	if len(orders) == 0 {
		fmt.Fprintf(w, "No work orders found for instance '%s'\n", instanceName)
		return 0
	}

	fmt.Fprintf(w, "Work orders for instance '%s':\n\n", instanceName)
	fmt.Fprintf(w, "%-10s %-9s %-22s %-12s %-11s %-17s %s\n",
		"ID", "WO", "CLIENT", "STATUS", "NTE", "ETA", "TECH")
	fmt.Fprintf(w, "%-10s %-9s %-22s %-12s %-11s %-17s %s\n",
		"----------", "---------", "----------------------", "------------", "-----------", "-----------------", "------------------")

	for _, wo := range orders {
		fmt.Fprintf(w, "%-10s %-9s %-22s %-12s %-11s %-17s %s\n",
			shortID(wo.ID),
			truncate(wo.WONumber, 9),
			truncate(wo.Client, 22),
			string(wo.Status),
			money(wo.NotToExceed),
			formatETA(wo),
			dash(wo.TechnicianName),
		)
	}

	fmt.Fprintf(w, "\n%d %s found\n", len(orders), plural(len(orders), "work order", "work orders"))
	return len(orders)
}

// FormatTechnicianTable writes the roster as a table and returns the count.
func FormatTechnicianTable(w io.Writer, techs []boardstore.Technician, instanceName string) int {
	if len(techs) == 0 {
		fmt.Fprintf(w, "No technicians found for instance '%s'\n", instanceName)
		return 0
	}

	fmt.Fprintf(w, "Technicians for instance '%s':\n\n", instanceName)
	fmt.Fprintf(w, "%-10s %-20s %-16s %-14s %-6s %-11s %s\n",
		"ID", "NAME", "TRADE", "PHONE", "JOBS", "REVENUE", "FLAGS")
	fmt.Fprintf(w, "%-10s %-20s %-16s %-14s %-6s %-11s %s\n",
		"----------", "--------------------", "----------------", "--------------", "------", "-----------", "-----")

	for _, tech := range techs {
		flags := "-"
		if tech.Blacklisted {
			flags = "BLACKLISTED: " + tech.BlacklistReason
		}
		fmt.Fprintf(w, "%-10s %-20s %-16s %-14s %-6d %-11s %s\n",
			shortID(tech.ID),
			truncate(tech.Name, 20),
			truncate(tech.Trade, 16),
			dash(tech.Phone),
			tech.JobsDone,
			money(tech.RevenueGenerated),
			flags,
		)
	}

	fmt.Fprintf(w, "\n%d %s found\n", len(techs), plural(len(techs), "technician", "technicians"))
	return len(techs)
}

// FormatTechnicianCSV writes the roster in the export format older tooling
// expects: name, trade, phone, city, state, blacklisted as Yes/No, no
// header row.
func FormatTechnicianCSV(w io.Writer, techs []boardstore.Technician) error {
	cw := csv.NewWriter(w)
	for _, tech := range techs {
		flag := "No"
		if tech.Blacklisted {
			flag = "Yes"
		}
		if err := cw.Write([]string{tech.Name, tech.Trade, tech.Phone, tech.City, tech.State, flag}); err != nil {
			return fmt.Errorf("failed to write CSV output: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatCostTable writes cost requests as a table and returns the count.
func FormatCostTable(w io.Writer, costs []boardstore.CostRequest, instanceName string) int {
	if len(costs) == 0 {
		fmt.Fprintf(w, "No cost requests found for instance '%s'\n", instanceName)
		return 0
	}

	fmt.Fprintf(w, "Cost requests for instance '%s':\n\n", instanceName)
	fmt.Fprintf(w, "%-10s %-9s %-18s %-11s %-10s %-8s %s\n",
		"ID", "WO", "TECH", "AMOUNT", "STATUS", "AGE", "NOTE")
	fmt.Fprintf(w, "%-10s %-9s %-18s %-11s %-10s %-8s %s\n",
		"----------", "---------", "------------------", "-----------", "----------", "--------", "----------------------------")

	for _, c := range costs {
		fmt.Fprintf(w, "%-10s %-9s %-18s %-11s %-10s %-8s %s\n",
			shortID(c.ID),
			truncate(c.WONumber, 9),
			truncate(dash(c.TechnicianName), 18),
			money(c.Amount),
			string(c.Status),
			relativeAge(c.RequestedAt),
			truncate(dash(c.Note), 28),
		)
	}

	fmt.Fprintf(w, "\n%d %s found\n", len(costs), plural(len(costs), "cost request", "cost requests"))
	return len(costs)
}

// FormatProposalTable writes proposals as a table and returns the count.
func FormatProposalTable(w io.Writer, proposals []boardstore.Proposal, instanceName string) int {
	if len(proposals) == 0 {
		fmt.Fprintf(w, "No proposals found for instance '%s'\n", instanceName)
		return 0
	}

	fmt.Fprintf(w, "Proposals for instance '%s':\n\n", instanceName)
	fmt.Fprintf(w, "%-10s %-9s %-22s %-11s %-11s %s\n",
		"ID", "WO", "CLIENT", "BEFORE TAX", "WITH TAX", "SCOPE")
	fmt.Fprintf(w, "%-10s %-9s %-22s %-11s %-11s %s\n",
		"----------", "---------", "----------------------", "-----------", "-----------", "----------------------------")

	for _, p := range proposals {
		fmt.Fprintf(w, "%-10s %-9s %-22s %-11s %-11s %s\n",
			shortID(p.ID),
			truncate(p.WONumber, 9),
			truncate(p.Client, 22),
			money(p.Totals.GrandBeforeTax),
			money(p.Totals.GrandWithTax),
			truncate(dash(p.Scope), 28),
		)
	}

	fmt.Fprintf(w, "\n%d %s found\n", len(proposals), plural(len(proposals), "proposal", "proposals"))
	return len(proposals)
}

// FormatFileTable writes file records as a table, marking orphans, and
// returns the count.
func FormatFileTable(w io.Writer, files []boardstore.FileRecord, orphanIDs map[string]bool, instanceName string) int {
	if len(files) == 0 {
		fmt.Fprintf(w, "No files found for instance '%s'\n", instanceName)
		return 0
	}

	fmt.Fprintf(w, "Files for instance '%s':\n\n", instanceName)
	fmt.Fprintf(w, "%-10s %-28s %-24s %-10s %-8s %s\n",
		"ID", "NAME", "TYPE", "SIZE", "AGE", "FLAGS")
	fmt.Fprintf(w, "%-10s %-28s %-24s %-10s %-8s %s\n",
		"----------", "----------------------------", "------------------------", "----------", "--------", "-----")

	for _, f := range files {
		flags := "-"
		if orphanIDs[f.ID] {
			flags = "ORPHAN"
		}
		fmt.Fprintf(w, "%-10s %-28s %-24s %-10s %-8s %s\n",
			shortID(f.ID),
			truncate(f.Name, 28),
			truncate(f.MimeType, 24),
			byteSize(f.ByteSize),
			relativeAge(f.CreatedAt),
			flags,
		)
	}

	fmt.Fprintf(w, "\n%d %s found\n", len(files), plural(len(files), "file", "files"))
	return len(files)
}

// FormatScheduleTable writes the merged schedule as a table and returns the
// count.
func FormatScheduleTable(w io.Writer, entries []aggregate.ScheduleEntry, instanceName string) int {
	if len(entries) == 0 {
		fmt.Fprintf(w, "Nothing scheduled for instance '%s'\n", instanceName)
		return 0
	}

	fmt.Fprintf(w, "Schedule for instance '%s':\n\n", instanceName)
	fmt.Fprintf(w, "%-17s %-9s %-11s %s\n", "WHEN", "PRIORITY", "KIND", "TITLE")
	fmt.Fprintf(w, "%-17s %-9s %-11s %s\n", "-----------------", "---------", "-----------", "----------------------------")

	for _, e := range entries {
		kind := "event"
		if e.WorkOrderID != "" {
			kind = "work order"
		}
		fmt.Fprintf(w, "%-17s %-9s %-11s %s\n",
			e.At.Local().Format("2006-01-02 15:04"),
			string(e.Priority),
			kind,
			truncate(e.Title, 40),
		)
	}

	fmt.Fprintf(w, "\n%d entries\n", len(entries))
	return len(entries)
}

// shortID truncates an id to its first 8 characters for compact display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func byteSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1fMB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fKB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}

// formatETA prefers the scheduled instant, falling back to the free-text
// label.
func formatETA(wo boardstore.WorkOrder) string {
	if eta, ok := wo.ETA(); ok {
		return eta.Local().Format("2006-01-02 15:04")
	}
	return dash(wo.ETAText)
}

// relativeAge renders a timestamp as "2m ago" style relative time.
func relativeAge(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}
