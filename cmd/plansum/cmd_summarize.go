package main

import (
	"github.com/spf13/cobra"
)

var (
	summarizeRoot      string
	summarizePlanFile  string
	summarizeOutput    string
	summarizeConfig    string
	summarizeHistoryDB string
	summarizeJobs      int
	summarizeNoDrift   bool
)

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize plan artifacts under the accounts root",
	Long: `Scan the accounts root for plan artifacts and print a table of
resources to be added, changed, or destroyed per account.

The expected layout is <root>/<business-unit>/<account>/, with at most
one plan artifact below each account directory. Accounts whose
artifact cannot be decoded are reported with dashes; the run still
completes for the others.`,
	Example: `  plansum summarize                          # Scan ./accounts for tfplan.out files
  plansum summarize --root envs              # Scan a different root
  plansum summarize --plan-file plan.tfplan  # Different artifact filename
  plansum summarize --output plan-summary.md # Markdown destination
  plansum summarize --history-db plansum.db  # Record the run for later comparison`,
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().StringVarP(&summarizeRoot, "root", "r", "", "Accounts root directory")
	summarizeCmd.Flags().StringVarP(&summarizePlanFile, "plan-file", "p", "", "Plan artifact filename to look for")
	summarizeCmd.Flags().StringVarP(&summarizeOutput, "output", "o", "", "Markdown output path")
	summarizeCmd.Flags().StringVarP(&summarizeConfig, "config", "c", "", "Config file path")
	summarizeCmd.Flags().StringVar(&summarizeHistoryDB, "history-db", "", "Record the run in this history database")
	summarizeCmd.Flags().IntVarP(&summarizeJobs, "jobs", "j", 0, "Max accounts summarized in parallel (0 = unbounded)")
	summarizeCmd.Flags().BoolVar(&summarizeNoDrift, "no-drift-warnings", false, "Suppress drift warnings")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	summarizeCommand := &SummarizeCommand{
		Root:       summarizeRoot,
		PlanFile:   summarizePlanFile,
		Output:     summarizeOutput,
		ConfigPath: summarizeConfig,
		HistoryDB:  summarizeHistoryDB,
		Jobs:       summarizeJobs,
		NoDrift:    summarizeNoDrift,
	}

	return summarizeCommand.Run(cmd.Context())
}
