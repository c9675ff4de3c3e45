package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	debug   bool

	rootCmd = &cobra.Command{
		Use:   "plansum",
		Short: "Summarize Terraform plans across accounts",
		Long: `Plansum - Terraform plan summarizer

Plansum scans a repository for binary Terraform plan artifacts, one
per account folder, and tallies the resources each plan would add,
change, or destroy. It prints a colored summary table and writes the
same table as markdown for review comments.

Reading the binary plan files directly is much faster than converting
each plan to JSON with 'terraform show -json' first.`,
		Version: version,
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the root command and logging
func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setupLogging()
	}
}

// setupLogging configures the global zerolog logger
func setupLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
