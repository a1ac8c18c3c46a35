package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath   string
	tenantID string
)

var rootCmd = &cobra.Command{
	Use:   "intentcat",
	Short: "Intent catalog and recognition server",
	Long: `intentcat keeps a per-tenant catalog of intents and scores free-form
utterances against it. Run "intentcat serve" to expose the catalog over MCP,
or use the recognize and batch commands for one-off scoring.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides INTENTCAT_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&tenantID, "tenant", "", "Tenant to operate on (default: configured default tenant)")
}
