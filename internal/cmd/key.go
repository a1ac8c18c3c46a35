package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var keyDescription string

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage API keys for the HTTP transport",
}

var keyAddCmd = &cobra.Command{
	Use:   "add [token]",
	Short: "Register a bearer token for the tenant",
	Long: `Register a bearer token for the tenant selected with --tenant. When no
token is given a random one is generated and printed. Only its SHA-256 hash
is stored.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKeyAdd,
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keyAddCmd)

	keyAddCmd.Flags().StringVar(&keyDescription, "description", "", "Free-form note stored with the key")
}

func runKeyAdd(cmd *cobra.Command, args []string) error {
	token := ""
	if len(args) == 1 {
		token = args[0]
	} else {
		buf := make([]byte, 24)
		if _, err := rand.Read(buf); err != nil {
			return fmt.Errorf("generate token: %w", err)
		}
		token = hex.EncodeToString(buf)
	}

	a, err := openApp(stderrLogs(cmd))
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.apiKeys.Add(cmd.Context(), token, a.tenantID, keyDescription); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", token)
	return nil
}
