// Package main provides contactctl, a command line companion to the contact
// server: list stored messages, submit one, or check input locally.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yhteys/backend/internal/logging"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "contactctl",
		Short: "Work with contact form messages",
		Long: `contactctl reads and writes contact form messages.

  list     - show stored messages from the data file
  submit   - send a message to a running server
  validate - run the form checks on values without sending them`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(listCmd(), submitCmd(), validateCmd())
	return cmd
}
