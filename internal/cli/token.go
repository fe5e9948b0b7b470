// internal/cli/token.go
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shuttlestats/courtscrape/internal/secrets"
	"github.com/shuttlestats/courtscrape/internal/ui"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the store auth token",
	Long: `Stores the database auth token in the OS keyring, falling back to a
file under ~/.courtscrape where no keyring is available. The ` + secrets.EnvToken + `
environment variable overrides both.`,
}

var tokenSetCmd = &cobra.Command{
	Use:   "set [token]",
	Short: "Save the store auth token",
	Example: `  # Pass the token directly
  courtscrape token set eyJhbGci...

  # Or pipe it in
  pbpaste | courtscrape token set`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenSet,
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the saved store auth token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := secrets.ClearToken(); err != nil {
			return err
		}
		fmt.Printf("%s token cleared\n", ui.Success("✓"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenSetCmd)
	tokenCmd.AddCommand(tokenClearCmd)
}

func runTokenSet(cmd *cobra.Command, args []string) error {
	var token string
	if len(args) == 1 {
		token = args[0]
	} else {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read token from stdin: %w", err)
		}
		token = strings.TrimSpace(line)
	}
	if token == "" {
		return fmt.Errorf("token is empty")
	}

	if err := secrets.SetToken(token); err != nil {
		return err
	}
	fmt.Printf("%s token saved\n", ui.Success("✓"))
	return nil
}
