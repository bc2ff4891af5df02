// internal/cli/root.go
//
// Command tree for the palabreo binary.

package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// RootCmd assembles the palabreo command tree.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "palabreo",
		Short:        "Word guessing game backed by the Datamuse vocabulary",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			_ = godotenv.Load()
		},
	}
	root.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error); overrides PALABREO_LOG_LEVEL")

	root.AddCommand(
		PlayCmd(),
		ServeCmd(),
	)

	return root
}

// applyLogLevel sets the global zerolog level from the --log-level flag,
// falling back to the configured level when the flag is unset.
func applyLogLevel(cmd *cobra.Command, fallback string) error {
	v, err := cmd.Root().PersistentFlags().GetString("log-level")
	if err != nil || v == "" {
		v = fallback
	}
	lvl, err := zerolog.ParseLevel(v)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", v, err)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}
