package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gmnfield/opsboard/internal/format"
	"github.com/gmnfield/opsboard/internal/printer"
	"github.com/gmnfield/opsboard/internal/repo"
)

var (
	techOutputFormat string
	techName         string
	techTrade        string
	techTradeOther   string
	techPhone        string
	techEmail        string
	techCity         string
	techState        string
	techJobsDone     int
	techRevenue      float64
	techReason       string
)

var techCmd = &cobra.Command{
	Use:   "tech",
	Short: "Manage the technician roster",
}

var techListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all technicians",
	RunE:  runTechList,
}

var techAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a technician",
	Long: `Add a technician to the roster.

Duplicate detection runs before the write: a record with the same name
and phone, or the same name, trade and city when neither has a phone, is
rejected.

Examples:
  opsboard tech add --name "Maria Ortiz" --trade Electrical --phone "+1 303 555 0101"
  opsboard tech add --name "Pat Lee" --trade "Other (Custom)" --trade-other "Pool Service"`,
	RunE: runTechAdd,
}

var techEditCmd = &cobra.Command{
	Use:   "edit TECHNICIAN_ID",
	Short: "Edit a technician",
	Long:  `Edit a technician. All fields are replaced; the blacklist flag and reason are preserved.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTechEdit,
}

var techDeleteCmd = &cobra.Command{
	Use:   "delete TECHNICIAN_ID",
	Short: "Delete a technician",
	Long: `Delete a technician. Refused while any work order, cost request or
proposal still references the record; blacklist instead to keep history.`,
	Args: cobra.ExactArgs(1),
	RunE: runTechDelete,
}

var techBlacklistCmd = &cobra.Command{
	Use:   "blacklist TECHNICIAN_ID",
	Short: "Blacklist a technician (requires --reason)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTechBlacklist,
}

var techUnblacklistCmd = &cobra.Command{
	Use:   "unblacklist TECHNICIAN_ID",
	Short: "Clear a technician's blacklist flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTechUnblacklist,
}

func init() {
	techListCmd.Flags().StringVarP(&techOutputFormat, "output", "o", "default", "Output format: default, json or csv")

	for _, c := range []*cobra.Command{techAddCmd, techEditCmd} {
		c.Flags().StringVar(&techName, "name", "", "Technician name (required)")
		c.Flags().StringVar(&techTrade, "trade", "", "Trade, or 'Other (Custom)' with --trade-other")
		c.Flags().StringVar(&techTradeOther, "trade-other", "", "Custom trade text")
		c.Flags().StringVar(&techPhone, "phone", "", "Phone number")
		c.Flags().StringVar(&techEmail, "email", "", "Email address")
		c.Flags().StringVar(&techCity, "city", "", "Home city")
		c.Flags().StringVar(&techState, "state", "", "Home state")
		c.Flags().IntVar(&techJobsDone, "jobs-done", 0, "Completed job count")
		c.Flags().Float64Var(&techRevenue, "revenue", 0, "Revenue generated")
		c.MarkFlagRequired("name")
	}

	techBlacklistCmd.Flags().StringVar(&techReason, "reason", "", "Reason for blacklisting (required)")
	techBlacklistCmd.MarkFlagRequired("reason")

	techCmd.AddCommand(techListCmd, techAddCmd, techEditCmd, techDeleteCmd, techBlacklistCmd, techUnblacklistCmd)
	rootCmd.AddCommand(techCmd)
}

func techForm() repo.TechnicianForm {
	return repo.TechnicianForm{
		Name:             techName,
		Trade:            techTrade,
		TradeOther:       techTradeOther,
		Phone:            techPhone,
		Email:            techEmail,
		City:             techCity,
		State:            techState,
		JobsDone:         techJobsDone,
		RevenueGenerated: techRevenue,
	}
}

func runTechList(cmd *cobra.Command, args []string) error {
	client, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	techs := repo.NewTechnicians(client).List(context.Background())
	switch techOutputFormat {
	case "default":
		format.FormatTechnicianTable(os.Stdout, techs, cfg.Instance)
		return nil
	case "json":
		return format.FormatJSONL(os.Stdout, techs)
	case "csv":
		return format.FormatTechnicianCSV(os.Stdout, techs)
	default:
		return printer.Error("invalid output format",
			fmt.Sprintf("Unknown format: %s", techOutputFormat),
			[]string{"Valid formats: default, json, csv"})
	}
}

func runTechAdd(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	tech, err := repo.NewTechnicians(client).Upsert(context.Background(), "", techForm())
	if err != nil {
		return printer.Failure(err)
	}
	printer.Success("added %s (%s)\n", tech.Name, tech.ID)
	return nil
}

func runTechEdit(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	tech, err := repo.NewTechnicians(client).Upsert(context.Background(), args[0], techForm())
	if err != nil {
		return printer.Failure(err)
	}
	printer.Success("updated %s\n", tech.Name)
	return nil
}

func runTechDelete(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := repo.NewTechnicians(client).Delete(context.Background(), args[0]); err != nil {
		return printer.Failure(err)
	}
	printer.Success("deleted technician %s\n", args[0])
	return nil
}

func runTechBlacklist(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	tech, err := repo.NewTechnicians(client).SetBlacklist(context.Background(), args[0], true, techReason)
	if err != nil {
		return printer.Failure(err)
	}
	printer.Warning("blacklisted %s: %s\n", tech.Name, tech.BlacklistReason)
	return nil
}

func runTechUnblacklist(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	tech, err := repo.NewTechnicians(client).SetBlacklist(context.Background(), args[0], false, "")
	if err != nil {
		return printer.Failure(err)
	}
	printer.Success("cleared blacklist on %s\n", tech.Name)
	return nil
}
