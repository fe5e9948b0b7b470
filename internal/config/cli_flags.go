package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Log in JSON format")
	cmd.PersistentFlags().Bool("headed", false, "Run the browser with a visible window")
	cmd.PersistentFlags().String("chrome-path", "", "Path to the Chrome/Chromium binary")
	cmd.PersistentFlags().String("output", "", "Directory for scraped JSON batches")
	cmd.PersistentFlags().String("db-url", "", "Store DSN (libsql://, https://, or a sqlite file path)")
	cmd.PersistentFlags().String("timeout", "", "Hard timeout for page navigation (e.g. 90s)")
	cmd.PersistentFlags().String("dwell", "", "Time to linger on each page before extraction")
}
