/*
Copyright © 2025 MAROUANE BOUFAROUJ <boufaroujmarouan@gmail.com>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X ...cmd.version=...".
var version = "0.1.0"

var (
	cfgPath    string
	verbose    bool
	contestDir string
)

var rootCmd = &cobra.Command{
	Use:   "atc",
	Short: "Test and submit AtCoder solutions from your terminal",
	Long: `atc - a helper for testing and submitting on AtCoder

Run from a contest directory that holds one source file per problem and
the sample cases under testcases/<problem>/.

Quick Start:
  1. Authenticate:      atc login
  2. Test locally:      atc test a
  3. Try it by hand:    atc run a
  4. Submit solution:   atc submit a

Configuration is read from ~/.config/atcoder-tool.toml.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// exitError ends the process with code without printing anything; the
// command has already reported the failure.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute runs the command tree. Exit status is 0 when everything passed,
// 1 when a judged run failed and 2 for usage and tool errors.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	var exit *exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	fmt.Fprintln(os.Stderr, red.Render("Error: ")+err.Error())
	os.Exit(2)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default $ATC_CONFIG or ~/.config/atcoder-tool.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&contestDir, "dir", "", "contest directory (default: current directory)")
}
