package commands

import (
	"github.com/spf13/cobra"

	"github.com/gmnfield/opsboard/internal/config"
	"github.com/gmnfield/opsboard/internal/printer"
)

var initInstanceName string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter opsboard.yml in the current directory",
	Long: `Create a starter opsboard.yml configuration file.

The instance name namespaces every Redis key, so multiple boards can
share one Redis server without seeing each other's data.

Examples:
  opsboard init --instance main-office
  opsboard init --instance branch-office --config ./branch/opsboard.yml`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initInstanceName, "instance", "", "Instance name for this board (required)")
	initCmd.MarkFlagRequired("instance")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := config.Scaffold(configPath, initInstanceName); err != nil {
		return printer.Error("failed to create configuration", err.Error(), nil)
	}
	printer.Success("created %s for instance '%s'\n", configPath, initInstanceName)
	return nil
}
