package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gmnfield/opsboard/internal/format"
	"github.com/gmnfield/opsboard/internal/printer"
	"github.com/gmnfield/opsboard/internal/repo"
	"github.com/gmnfield/opsboard/pkg/boardstore"
)

var (
	propOutputFormat  string
	propWorkOrderID   string
	propTechID        string
	propHelperID      string
	propScope         string
	propTripFee       float64
	propAssessmentFee float64
	propTechHours     float64
	propTechRate      float64
	propHelperHours   float64
	propHelperRate    float64
	propParts         []string
	propCost          float64
	propMultiplier    float64
	propTaxPct        float64
)

var proposalCmd = &cobra.Command{
	Use:   "proposal",
	Short: "Manage repair proposals",
}

var proposalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all proposals",
	RunE:  runProposalList,
}

var proposalGetCmd = &cobra.Command{
	Use:   "get PROPOSAL_ID",
	Short: "Show one proposal as pretty-printed JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runProposalGet,
}

var proposalCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a priced proposal for a work order",
	Long: `Create a proposal. Pricing totals are computed once, here, and stored
on the record; later edits to rates never recompute them.

Parts are given as repeated --part flags in "desc:qty:unit" form.

Examples:
  opsboard proposal create --wo 1b2c3d4e --tech 9f8e7d6c \
    --scope "Replace breaker panel" --trip-fee 120 --assessment-fee 80 \
    --tech-hours 6 --tech-rate 60 --part "Panel:1:400" --part "Breakers:10:5" \
    --cost 600 --tax 8.25`,
	RunE: runProposalCreate,
}

var proposalDeleteCmd = &cobra.Command{
	Use:   "delete PROPOSAL_ID",
	Short: "Delete a proposal",
	Args:  cobra.ExactArgs(1),
	RunE:  runProposalDelete,
}

func init() {
	proposalListCmd.Flags().StringVarP(&propOutputFormat, "output", "o", "default", "Output format: default or json")

	proposalCreateCmd.Flags().StringVar(&propWorkOrderID, "wo", "", "Work order id (required)")
	proposalCreateCmd.Flags().StringVar(&propTechID, "tech", "", "Lead technician id (required)")
	proposalCreateCmd.Flags().StringVar(&propHelperID, "helper", "", "Helper technician id")
	proposalCreateCmd.Flags().StringVar(&propScope, "scope", "", "Scope of work")
	proposalCreateCmd.Flags().Float64Var(&propTripFee, "trip-fee", 0, "Trip fee")
	proposalCreateCmd.Flags().Float64Var(&propAssessmentFee, "assessment-fee", 0, "Assessment fee")
	proposalCreateCmd.Flags().Float64Var(&propTechHours, "tech-hours", 0, "Lead labor hours")
	proposalCreateCmd.Flags().Float64Var(&propTechRate, "tech-rate", 0, "Lead hourly rate")
	proposalCreateCmd.Flags().Float64Var(&propHelperHours, "helper-hours", 0, "Helper labor hours")
	proposalCreateCmd.Flags().Float64Var(&propHelperRate, "helper-rate", 0, "Helper hourly rate")
	proposalCreateCmd.Flags().StringArrayVar(&propParts, "part", nil, "Part line as desc:qty:unit (repeatable)")
	proposalCreateCmd.Flags().Float64Var(&propCost, "cost", 0, "Incurred cost the markup applies to")
	proposalCreateCmd.Flags().Float64Var(&propMultiplier, "multiplier", 0, "Markup multiplier (board default if omitted)")
	proposalCreateCmd.Flags().Float64Var(&propTaxPct, "tax", 0, "Tax percentage")
	proposalCreateCmd.MarkFlagRequired("wo")
	proposalCreateCmd.MarkFlagRequired("tech")

	proposalCmd.AddCommand(proposalListCmd, proposalGetCmd, proposalCreateCmd, proposalDeleteCmd)
	rootCmd.AddCommand(proposalCmd)
}

// parsePartLines parses repeated "desc:qty:unit" flags.
func parsePartLines(values []string) ([]boardstore.PartLine, error) {
	var parts []boardstore.PartLine
	for _, v := range values {
		fields := strings.Split(v, ":")
		if len(fields) != 3 {
			return nil, printer.Error(
				"invalid part line",
				fmt.Sprintf("Could not parse %q.", v),
				[]string{"Format: desc:qty:unit, e.g. --part \"Panel:1:400\""},
			)
		}
		var qty, unit float64
		if _, err := fmt.Sscanf(fields[1], "%g", &qty); err != nil {
			return nil, printer.Error("invalid part line", fmt.Sprintf("Quantity %q is not a number.", fields[1]), nil)
		}
		if _, err := fmt.Sscanf(fields[2], "%g", &unit); err != nil {
			return nil, printer.Error("invalid part line", fmt.Sprintf("Unit price %q is not a number.", fields[2]), nil)
		}
		parts = append(parts, boardstore.PartLine{Description: fields[0], Qty: qty, Unit: unit})
	}
	return parts, nil
}

func runProposalList(cmd *cobra.Command, args []string) error {
	client, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	proposals := repo.NewProposals(client).List(context.Background())
	switch propOutputFormat {
	case "default":
		format.FormatProposalTable(os.Stdout, proposals, cfg.Instance)
		return nil
	case "json":
		return format.FormatJSONL(os.Stdout, proposals)
	default:
		return printer.Error("invalid output format",
			fmt.Sprintf("Unknown format: %s", propOutputFormat),
			[]string{"Valid formats: default, json"})
	}
}

func runProposalGet(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	prop, err := repo.NewProposals(client).Get(context.Background(), args[0])
	if err != nil {
		return printer.Failure(err)
	}
	return format.FormatSingleJSON(os.Stdout, prop)
}

func runProposalCreate(cmd *cobra.Command, args []string) error {
	client, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	parts, err := parsePartLines(propParts)
	if err != nil {
		return err
	}

	multiplier := propMultiplier
	if multiplier == 0 {
		multiplier = cfg.Defaults.Multiplier
	}

	prop, err := repo.NewProposals(client).Create(context.Background(), repo.ProposalForm{
		WorkOrderID:   propWorkOrderID,
		TechnicianID:  propTechID,
		HelperID:      propHelperID,
		Scope:         propScope,
		TripFee:       propTripFee,
		AssessmentFee: propAssessmentFee,
		TechHours:     propTechHours,
		TechRate:      propTechRate,
		HelperHours:   propHelperHours,
		HelperRate:    propHelperRate,
		Parts:         parts,
		Cost:          propCost,
		Multiplier:    multiplier,
		TaxPct:        propTaxPct,
	})
	if err != nil {
		return printer.Failure(err)
	}
	printer.Success("created proposal %s for %s ($%.2f with tax)\n", prop.ID, prop.WONumber, prop.Totals.GrandWithTax)
	return nil
}

func runProposalDelete(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := repo.NewProposals(client).Delete(context.Background(), args[0]); err != nil {
		return printer.Failure(err)
	}
	printer.Success("deleted proposal %s\n", args[0])
	return nil
}
