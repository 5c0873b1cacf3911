package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to AtCoder",
	Long: `Log in to AtCoder with your username and password.

The username comes from session.username in the config, or is asked for.
The password is read without echo and never stored; only the session
cookies are kept, in session.cookie_file_path.

Example:
  atc login`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		green := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
		orange := lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
		gray := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		out := cmd.OutOrStdout()

		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer func() { _ = e.logger.Sync() }()

		if e.session().Exists() {
			fmt.Fprintln(out, gray.Render("You have already logged in. Run 'atc logout' first to switch accounts."))
			return &exitError{code: 2}
		}

		username := e.cfg.Session.Username
		if username == "" {
			fmt.Fprint(out, "Username: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("failed to read username: %w", err)
			}
			username = strings.TrimSpace(line)
		}
		if username == "" {
			return fmt.Errorf("username cannot be empty")
		}

		fmt.Fprint(out, "Password: ")
		password, err := readPassword()
		fmt.Fprintln(out)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		client, err := e.client()
		if err != nil {
			return err
		}
		if err := client.Login(cmd.Context(), username, string(password)); err != nil {
			fmt.Fprintln(out, orange.Render("✗ Failed to login: "+err.Error()))
			return &exitError{code: 1}
		}

		fmt.Fprintln(out, green.Render("✓ Logged in successfully!"))
		fmt.Fprintln(out, gray.Render("You're ready to submit!"))
		return nil
	},
}

// readPassword reads a line from the terminal without echo.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
