package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// log is shared by every subcommand for structured startup/diagnostic
// output; its level is set from the root command's persistent flag
// before any subcommand runs, per cmd/tcorecheck's RunE convention
// below rather than a package-level init().
var log = logrus.New()

func newRootCommand() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "tcorecheck",
		Short: "Inspect tcore's IXDTF parsing, rounding, and time-zone data",
		Long: `tcorecheck is a demonstration and diagnostic CLI over the tcore
library: a core (non-binding) implementation of ECMAScript Temporal's
calendar-, time-zone-, and rounding-aware date/time model.

It does not replace the library's tests; it exists so the parser,
rounding engine, and time-zone provider have a runnable entry point.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")

	root.AddCommand(newParseCommand())
	root.AddCommand(newRoundCommand())
	root.AddCommand(newZoneinfoCommand())

	return root
}
