package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crossbind/crossbind/cmd/crossbind/commands"
	"github.com/crossbind/crossbind/logger"
)

var (
	jsonOutput bool
	verbosity  int
)

var rootCmd = &cobra.Command{
	Use:   "crossbind",
	Short: "crossbind - foreign-function binding converter",
	Long: `crossbind converts a scanned C++ declaration tree into pruned,
safety-annotated bridge declarations for the downstream bridging layer.

Available commands:
  generate - Run the conversion pipeline over a scanned tree
  watch    - Re-run generation whenever the inputs change
  version  - Show build information

Examples:
  crossbind generate --tree scan.json --typedb typedb.toml
  crossbind generate --tree scan.json --typedb typedb.toml -o out.bridge
  crossbind watch --tree scan.json --typedb typedb.toml -o out.bridge`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Log in JSON format")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v, -vv)")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
