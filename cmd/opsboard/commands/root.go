package commands

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/gmnfield/opsboard/internal/config"
	"github.com/gmnfield/opsboard/internal/printer"
	"github.com/gmnfield/opsboard/pkg/boardstore"
)

var (
	version string
	commit  string
	date    string

	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "opsboard",
	Short: "Opsboard - field service dispatch board",
	Long: `Opsboard tracks field service operations: work orders, the technician
roster, cost approvals, repair proposals, file attachments and the
schedule. State lives in a shared Redis store; every running instance
sees the same board and hears about changes as they happen.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFileName, "Path to opsboard.yml")
}

// openStore loads the configuration and connects to the shared store.
// Load degradation warnings go through the printer.
func openStore() (*boardstore.Client, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, printer.Error(
			"failed to load configuration",
			err.Error(),
			[]string{"Create one first:\n  opsboard init --instance <name>"},
		)
	}

	client, err := boardstore.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	}, cfg.Instance)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to store: %w", err)
	}
	client.SetWarnLogger(printer.Warning)
	return client, cfg, nil
}
