package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/chibuka/atc-cli/internal/judge"
	"github.com/chibuka/atc-cli/internal/runner"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <problem>",
	Short: "Compile and run your solution, reading input from the terminal",
	Long: `Compile the solution for a problem and run it once with stdin attached
to your terminal. Type the input (end it with Ctrl-D); the program's output
is printed after it exits.

Example:
  atc run a

Tip: Use 'atc test' to check the sample cases automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
		red := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		gray := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		out := cmd.OutOrStdout()

		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer func() { _ = e.logger.Sync() }()

		build := e.cfg.Build()
		source := build.SourceFile(args[0])
		if _, err := os.Stat(filepath.Join(e.root, source)); err != nil {
			return fmt.Errorf("%w: %s", judge.ErrSourceNotFound, filepath.Join(e.root, source))
		}

		ctx := cmd.Context()
		_, err = runner.Compile(ctx, &runner.OSProcess{}, build, e.root, source, e.cfg.Language.BuildTimeout)
		var cerr *runner.CompileError
		switch {
		case errors.As(err, &cerr):
			fmt.Fprint(out, red.Render(cerr.Output))
			fmt.Fprintln(out, yellow.Render("CE"))
			return &exitError{code: 1}
		case err != nil:
			return err
		}

		fmt.Fprintln(out, gray.Render("[input]"))
		var stdout bytes.Buffer
		code, err := runner.Attach(ctx, build, e.root, source, cmd.InOrStdin(), &stdout, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		fmt.Fprintln(out, gray.Render("[output]"))
		fmt.Fprint(out, stdout.String())

		if code != 0 {
			fmt.Fprintln(out, yellow.Render("RE")+gray.Render(fmt.Sprintf(" exit status %d", code)))
			return &exitError{code: 1}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
