package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gmnfield/opsboard/internal/format"
	"github.com/gmnfield/opsboard/internal/printer"
	"github.com/gmnfield/opsboard/internal/repo"
	"github.com/gmnfield/opsboard/pkg/boardstore"
)

var (
	costOutputFormat string
	costWorkOrderID  string
	costTechID       string
	costAmount       float64
	costNote         string
)

var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Manage cost requests (AP approvals)",
}

var costListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cost requests",
	RunE:  runCostList,
}

var costCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a cost request against a completed work order",
	Long: `Open a cost request. The work order must be completed and carry an
assigned, non-blacklisted technician; only one open (requested or
approved) request may exist per work order.

Examples:
  opsboard cost create --wo 1b2c3d4e --amount 500 --note "panel replacement"
  opsboard cost create --wo 1b2c3d4e --tech 9f8e7d6c --amount 500`,
	RunE: runCostCreate,
}

var costApproveCmd = &cobra.Command{
	Use:   "approve COST_REQUEST_ID",
	Short: "Approve a requested cost",
	RunE:  runCostTransition(boardstore.CostApproved, "approved"),
	Args:  cobra.ExactArgs(1),
}

var costPayCmd = &cobra.Command{
	Use:   "pay COST_REQUEST_ID",
	Short: "Mark an approved cost as paid (terminal)",
	RunE:  runCostTransition(boardstore.CostPaid, "paid"),
	Args:  cobra.ExactArgs(1),
}

var costRevertCmd = &cobra.Command{
	Use:   "revert COST_REQUEST_ID",
	Short: "Send a cost back to requested",
	RunE:  runCostTransition(boardstore.CostRequested, "back to requested"),
	Args:  cobra.ExactArgs(1),
}

var costDeleteCmd = &cobra.Command{
	Use:   "delete COST_REQUEST_ID",
	Short: "Delete an unpaid cost request",
	Args:  cobra.ExactArgs(1),
	RunE:  runCostDelete,
}

func init() {
	costListCmd.Flags().StringVarP(&costOutputFormat, "output", "o", "default", "Output format: default or json")

	costCreateCmd.Flags().StringVar(&costWorkOrderID, "wo", "", "Work order id (required)")
	costCreateCmd.Flags().StringVar(&costTechID, "tech", "", "Technician id (defaults to the work order's assignment)")
	costCreateCmd.Flags().Float64Var(&costAmount, "amount", 0, "Requested amount (required, > 0)")
	costCreateCmd.Flags().StringVar(&costNote, "note", "", "Note for AP")
	costCreateCmd.MarkFlagRequired("wo")
	costCreateCmd.MarkFlagRequired("amount")

	costCmd.AddCommand(costListCmd, costCreateCmd, costApproveCmd, costPayCmd, costRevertCmd, costDeleteCmd)
	rootCmd.AddCommand(costCmd)
}

func runCostList(cmd *cobra.Command, args []string) error {
	client, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	costs := repo.NewCosts(client).List(context.Background())
	switch costOutputFormat {
	case "default":
		format.FormatCostTable(os.Stdout, costs, cfg.Instance)
		return nil
	case "json":
		return format.FormatJSONL(os.Stdout, costs)
	default:
		return printer.Error("invalid output format",
			fmt.Sprintf("Unknown format: %s", costOutputFormat),
			[]string{"Valid formats: default, json"})
	}
}

func runCostCreate(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	req, err := repo.NewCosts(client).Create(context.Background(), costWorkOrderID, costTechID, costAmount, costNote)
	if err != nil {
		return printer.Failure(err)
	}
	printer.Success("opened cost request %s for %s ($%.2f)\n", req.ID, req.WONumber, req.Amount)
	return nil
}

func runCostTransition(target boardstore.CostStatus, verb string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, _, err := openStore()
		if err != nil {
			return err
		}
		defer client.Close()

		req, err := repo.NewCosts(client).Transition(context.Background(), args[0], target)
		if err != nil {
			return printer.Failure(err)
		}
		printer.Success("cost request for %s is %s\n", req.WONumber, verb)
		return nil
	}
}

func runCostDelete(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := repo.NewCosts(client).Delete(context.Background(), args[0]); err != nil {
		return printer.Failure(err)
	}
	printer.Success("deleted cost request %s\n", args[0])
	return nil
}
