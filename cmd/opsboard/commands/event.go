package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gmnfield/opsboard/internal/aggregate"
	"github.com/gmnfield/opsboard/internal/format"
	"github.com/gmnfield/opsboard/internal/printer"
	"github.com/gmnfield/opsboard/internal/repo"
	"github.com/gmnfield/opsboard/internal/timespec"
	"github.com/gmnfield/opsboard/pkg/boardstore"
)

var (
	eventOutputFormat string
	eventTitle        string
	eventAt           string
	eventPriority     string
	eventDescription  string
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage calendar events and the merged schedule",
}

var eventListCmd = &cobra.Command{
	Use:   "list",
	Short: "List calendar events, soonest first",
	RunE:  runEventList,
}

var eventAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a calendar event",
	Long: `Add a calendar event. Priority defaults to normal.

Examples:
  opsboard event add --title "Supplier pickup" --at 2026-09-01T09:00:00Z
  opsboard event add --title "Walkthrough" --at 2026-09-02T14:30:00Z --priority high`,
	RunE: runEventAdd,
}

var eventEditCmd = &cobra.Command{
	Use:   "edit EVENT_ID",
	Short: "Edit a calendar event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventEdit,
}

var eventDeleteCmd = &cobra.Command{
	Use:   "delete EVENT_ID",
	Short: "Delete a calendar event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventDelete,
}

var eventScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show the merged schedule of work order ETAs and events",
	Long: `Show one time-ordered schedule that merges calendar events with the
ETAs of active work orders. Overdue work orders surface as high
priority entries.`,
	RunE: runEventSchedule,
}

func init() {
	eventListCmd.Flags().StringVarP(&eventOutputFormat, "output", "o", "default", "Output format: default or json")

	for _, c := range []*cobra.Command{eventAddCmd, eventEditCmd} {
		c.Flags().StringVar(&eventTitle, "title", "", "Event title (required)")
		c.Flags().StringVar(&eventAt, "at", "", "Event time, RFC3339 or a duration like 48h (required)")
		c.Flags().StringVar(&eventPriority, "priority", "", "Priority: low, normal or high")
		c.Flags().StringVar(&eventDescription, "description", "", "Free-form description")
		c.MarkFlagRequired("title")
		c.MarkFlagRequired("at")
	}

	eventCmd.AddCommand(eventListCmd, eventAddCmd, eventEditCmd, eventDeleteCmd, eventScheduleCmd)
	rootCmd.AddCommand(eventCmd)
}

func parseEventTime(value string) (time.Time, error) {
	at, err := timespec.Parse(value, time.Now())
	if err != nil {
		return time.Time{}, printer.Error(
			"invalid event time",
			fmt.Sprintf("Could not parse %q.", value),
			[]string{"Example: 2026-09-01T09:00:00Z or a duration like 48h"},
		)
	}
	return at, nil
}

func runEventList(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	events := repo.NewCalendar(client).List(context.Background())
	switch eventOutputFormat {
	case "default":
		for _, ev := range events {
			printer.Printf("%s  %-8s %-30s %s\n", ev.DateTime.Format("2006-01-02 15:04"), ev.Priority, ev.Title, ev.ID[:8])
		}
		printer.Info("%d event(s)\n", len(events))
		return nil
	case "json":
		return format.FormatJSONL(os.Stdout, events)
	default:
		return printer.Error("invalid output format",
			fmt.Sprintf("Unknown format: %s", eventOutputFormat),
			[]string{"Valid formats: default, json"})
	}
}

func runEventUpsert(id string) error {
	at, err := parseEventTime(eventAt)
	if err != nil {
		return err
	}

	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	ev, err := repo.NewCalendar(client).Upsert(context.Background(), id, eventTitle,
		at, boardstore.EventPriority(eventPriority), eventDescription)
	if err != nil {
		return printer.Failure(err)
	}
	printer.Success("saved event %s (%s at %s)\n", ev.ID, ev.Title, ev.DateTime.Format(time.RFC3339))
	return nil
}

func runEventAdd(cmd *cobra.Command, args []string) error {
	return runEventUpsert("")
}

func runEventEdit(cmd *cobra.Command, args []string) error {
	return runEventUpsert(args[0])
}

func runEventDelete(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := repo.NewCalendar(client).Delete(context.Background(), args[0]); err != nil {
		return printer.Failure(err)
	}
	printer.Success("deleted event %s\n", args[0])
	return nil
}

func runEventSchedule(cmd *cobra.Command, args []string) error {
	client, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := context.Background()
	entries := aggregate.MergeSchedule(client.LoadWorkOrders(ctx), client.LoadCalendarEvents(ctx), time.Now())
	format.FormatScheduleTable(os.Stdout, entries, cfg.Instance)
	return nil
}
