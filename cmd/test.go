package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test <problem>",
	Short: "Run your solution against the sample cases",
	Long: `Compile the solution for a problem and run it against every sample
case stored under testcases/<problem>/.

Each case is judged AC, WA, RE or TLE. Output is compared after trimming
trailing whitespace on each line and trailing blank lines.

Example:
  atc test a
  atc test b --timeout 5s --parallel 4

The command exits 0 only when every case passes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout, err := cmd.Flags().GetDuration("timeout")
		if err != nil {
			return fmt.Errorf("failed to get timeout flag: %w", err)
		}
		parallel, err := cmd.Flags().GetInt("parallel")
		if err != nil {
			return fmt.Errorf("failed to get parallel flag: %w", err)
		}

		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer func() { _ = e.logger.Sync() }()

		report, err := judgeProblem(cmd.Context(), e, args[0], cmd.OutOrStdout(), timeout, parallel)
		if err != nil {
			return err
		}
		if !report.OK() {
			return &exitError{code: 1}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(testCmd)
	testCmd.Flags().Duration("timeout", 0, "time limit per case (default: language.time_limit)")
	testCmd.Flags().Int("parallel", 1, "number of cases to run at once")
}
