package uidctl

import (
	"github.com/spf13/cobra"
)

// NewRoot constructs the root command with every subcommand registered.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "uidctl",
		Short:         "Encode and decode packed 64-bit IDs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("log-level", "", "Log level: debug|info|warn|error")
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		return setLogLevel(level)
	}

	root.AddCommand(
		newEncodeCommand(),
		newDecodeCommand(),
		newSyncCommand(),
	)
	return root
}
