package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/chibuka/atc-cli/internal/remote"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var submitCmd = &cobra.Command{
	Use:   "submit <problem>",
	Short: "Test your solution and submit it to AtCoder",
	Long: `Run the sample cases and, if they all pass, submit the solution for
the problem to the contest named after the current directory. Your
submissions page is opened in the browser afterwards.

Example:
  atc submit a
  atc submit a --force   # skip the local tests

You need to be logged in first ('atc login').`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		green := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
		red := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
		out := cmd.OutOrStdout()
		problem := args[0]

		force, err := cmd.Flags().GetBool("force")
		if err != nil {
			return fmt.Errorf("failed to get force flag: %w", err)
		}

		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer func() { _ = e.logger.Sync() }()

		if !e.session().Exists() {
			return remote.ErrNotLoggedIn
		}

		if !force {
			report, err := judgeProblem(cmd.Context(), e, problem, out, 0, 1)
			if err != nil {
				return err
			}
			if !report.OK() {
				fmt.Fprintln(out, red.Render("✗ Not submitted: fix the failing cases or use --force"))
				return &exitError{code: 1}
			}
		}

		build := e.cfg.Build()
		source, err := os.ReadFile(filepath.Join(e.root, build.SourceFile(problem)))
		if err != nil {
			return fmt.Errorf("failed to read solution: %w", err)
		}

		client, err := e.client()
		if err != nil {
			return err
		}
		contest := e.contest()
		err = client.Submit(cmd.Context(), remote.Submission{
			Contest:    contest,
			Problem:    problem,
			LanguageID: e.cfg.LanguageID(),
			Source:     source,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, green.Render(fmt.Sprintf("✓ Submitted %s to %s", problem, contest)))

		url := client.SubmissionsURL(contest)
		if err := openBrowser(url); err != nil {
			e.logger.Warn("could not open browser", zap.Error(err))
			fmt.Fprintln(out, "Follow your submission at "+url)
		}
		return nil
	},
}

var openBrowser = browser.OpenURL

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().BoolP("force", "f", false, "submit without running the sample cases")
}
