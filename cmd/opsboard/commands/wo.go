package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gmnfield/opsboard/internal/filter"
	"github.com/gmnfield/opsboard/internal/format"
	"github.com/gmnfield/opsboard/internal/printer"
	"github.com/gmnfield/opsboard/internal/repo"
	"github.com/gmnfield/opsboard/internal/timespec"
	"github.com/gmnfield/opsboard/pkg/boardstore"
)

var (
	woOutputFormat string
	woClient       string
	woTrade        string
	woCity         string
	woNumber       string
	woNTE          float64
	woETAAt        string
	woETAText      string

	woFilterStatus string
	woFilterTrade  string
	woFilterTech   string
	woFilterNumber string
	woFilterQuery  string
)

var woCmd = &cobra.Command{
	Use:   "wo",
	Short: "Manage work orders",
}

var woListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all work orders",
	Long: `List all work orders on the board, newest first.

Output Formats:
  default - Human-readable table
  json    - JSONL, one work order per line

Examples:
  opsboard wo list
  opsboard wo list --status waiting --trade Electrical
  opsboard wo list --number "WO-48*"
  opsboard wo list --output=json | jq -r 'select(.status=="waiting") | .id'`,
	RunE: runWoList,
}

var woGetCmd = &cobra.Command{
	Use:   "get WORK_ORDER_ID",
	Short: "Show one work order as pretty-printed JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runWoGet,
}

var woCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a work order",
	Long: `Create a work order. A missing --wo number is generated; a missing
--eta-at leaves the schedule as the "TBD" placeholder.

Examples:
  opsboard wo create --client "Lakeside Dental" --trade Plumbing --nte 750
  opsboard wo create --client "Hilltop Grocers" --eta-at 2026-05-01T09:00:00Z`,
	RunE: runWoCreate,
}

var woStatusCmd = &cobra.Command{
	Use:   "status WORK_ORDER_ID STATUS",
	Short: "Set a work order's status",
	Long:  `Set a work order's status: waiting, in_progress, completed, invoiced or paid.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runWoStatus,
}

var woETACmd = &cobra.Command{
	Use:   "eta WORK_ORDER_ID",
	Short: "Set or clear a work order's scheduled ETA",
	Long: `Set or clear a work order's scheduled ETA.

With --at, the instant becomes authoritative and any free-text label is
cleared. Without --at, the instant is cleared and --text (or "TBD")
becomes the display label.

Examples:
  opsboard wo eta 1b2c3d4e --at 2026-05-01T09:00:00Z
  opsboard wo eta 1b2c3d4e --text "next week"`,
	Args: cobra.ExactArgs(1),
	RunE: runWoETA,
}

var woAssignCmd = &cobra.Command{
	Use:   "assign WORK_ORDER_ID TECHNICIAN_ID",
	Short: "Assign a technician to a work order",
	Args:  cobra.ExactArgs(2),
	RunE:  runWoAssign,
}

var woUnassignCmd = &cobra.Command{
	Use:   "unassign WORK_ORDER_ID",
	Short: "Clear a work order's technician",
	Args:  cobra.ExactArgs(1),
	RunE:  runWoUnassign,
}

var woDeleteCmd = &cobra.Command{
	Use:   "delete WORK_ORDER_ID",
	Short: "Delete a work order",
	Long: `Delete a work order. Attached files are never cascaded; they become
orphans visible via 'opsboard file orphans'.`,
	Args: cobra.ExactArgs(1),
	RunE: runWoDelete,
}

func init() {
	woListCmd.Flags().StringVarP(&woOutputFormat, "output", "o", "default", "Output format: default or json")
	woListCmd.Flags().StringVar(&woFilterStatus, "status", "", "Only show this status")
	woListCmd.Flags().StringVar(&woFilterTrade, "trade", "", "Only show this trade")
	woListCmd.Flags().StringVar(&woFilterTech, "tech", "", "Only show work orders assigned to this technician id")
	woListCmd.Flags().StringVar(&woFilterNumber, "number", "", "Glob pattern for the WO number, e.g. 'WO-48*'")
	woListCmd.Flags().StringVar(&woFilterQuery, "search", "", "Free-text search over number, client, city and technician")

	woCreateCmd.Flags().StringVar(&woClient, "client", "", "Client name (required)")
	woCreateCmd.Flags().StringVar(&woTrade, "trade", "", "Trade required for the job")
	woCreateCmd.Flags().StringVar(&woCity, "city", "", "Job city")
	woCreateCmd.Flags().StringVar(&woNumber, "wo", "", "Work order number (generated if omitted)")
	woCreateCmd.Flags().Float64Var(&woNTE, "nte", 0, "Not-to-exceed budget cap")
	woCreateCmd.Flags().StringVar(&woETAAt, "eta-at", "", "Scheduled ETA (RFC 3339 or a duration like 48h)")
	woCreateCmd.Flags().StringVar(&woETAText, "eta-text", "", "Free-text ETA label when no instant is known")
	woCreateCmd.MarkFlagRequired("client")

	woETACmd.Flags().StringVar(&woETAAt, "at", "", "Scheduled ETA (RFC 3339 or a duration like 48h); omit to clear")
	woETACmd.Flags().StringVar(&woETAText, "text", "", "Free-text label used when no instant is set")

	woCmd.AddCommand(woListCmd, woGetCmd, woCreateCmd, woStatusCmd, woETACmd, woAssignCmd, woUnassignCmd, woDeleteCmd)
	rootCmd.AddCommand(woCmd)
}

func parseETA(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := timespec.Parse(value, time.Now())
	if err != nil {
		return nil, printer.Error(
			"invalid ETA",
			fmt.Sprintf("Could not parse %q.", value),
			[]string{"Example: 2026-05-01T09:00:00Z or a duration like 48h"},
		)
	}
	return &t, nil
}

func runWoList(cmd *cobra.Command, args []string) error {
	client, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	criteria := &filter.Criteria{
		Status:       woFilterStatus,
		Trade:        woFilterTrade,
		TechnicianID: woFilterTech,
		NumberGlob:   woFilterNumber,
		Query:        woFilterQuery,
	}
	orders := criteria.Apply(repo.NewWorkOrders(client).List(context.Background()))
	switch woOutputFormat {
	case "default":
		format.FormatWorkOrderTable(os.Stdout, orders, cfg.Instance)
		return nil
	case "json":
		return format.FormatJSONL(os.Stdout, orders)
	default:
		return printer.Error("invalid output format",
			fmt.Sprintf("Unknown format: %s", woOutputFormat),
			[]string{"Valid formats: default, json"})
	}
}

func runWoGet(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	wo, err := repo.NewWorkOrders(client).Get(context.Background(), args[0])
	if err != nil {
		return printer.Failure(err)
	}
	return format.FormatSingleJSON(os.Stdout, wo)
}

func runWoCreate(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	etaAt, err := parseETA(woETAAt)
	if err != nil {
		return err
	}

	wo, err := repo.NewWorkOrders(client).Create(context.Background(), repo.WorkOrderForm{
		WONumber:    woNumber,
		Client:      woClient,
		Trade:       woTrade,
		City:        woCity,
		NotToExceed: woNTE,
		ETAAt:       etaAt,
		ETAText:     woETAText,
	})
	if err != nil {
		return printer.Failure(err)
	}
	printer.Success("created work order %s (%s)\n", wo.WONumber, wo.ID)
	return nil
}

func runWoStatus(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	wo, err := repo.NewWorkOrders(client).SetStatus(context.Background(), args[0], boardstore.WorkOrderStatus(args[1]))
	if err != nil {
		return printer.Failure(err)
	}
	printer.Success("work order %s is now %s\n", wo.WONumber, wo.Status)
	return nil
}

func runWoETA(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	etaAt, err := parseETA(woETAAt)
	if err != nil {
		return err
	}

	wo, err := repo.NewWorkOrders(client).SetETA(context.Background(), args[0], etaAt, woETAText)
	if err != nil {
		return printer.Failure(err)
	}
	if eta, ok := wo.ETA(); ok {
		printer.Success("work order %s scheduled for %s\n", wo.WONumber, eta.Local().Format("2006-01-02 15:04"))
	} else {
		printer.Success("work order %s ETA set to %q\n", wo.WONumber, wo.ETAText)
	}
	return nil
}

func runWoAssign(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	wo, err := repo.NewWorkOrders(client).AssignTechnician(context.Background(), args[0], args[1])
	if err != nil {
		return printer.Failure(err)
	}
	printer.Success("assigned %s to work order %s\n", wo.TechnicianName, wo.WONumber)
	return nil
}

func runWoUnassign(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	wo, err := repo.NewWorkOrders(client).UnassignTechnician(context.Background(), args[0])
	if err != nil {
		return printer.Failure(err)
	}
	printer.Success("cleared technician on work order %s\n", wo.WONumber)
	return nil
}

func runWoDelete(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := repo.NewWorkOrders(client).Delete(context.Background(), args[0]); err != nil {
		return printer.Failure(err)
	}
	printer.Success("deleted work order %s\n", args[0])
	return nil
}
