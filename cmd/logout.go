package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved AtCoder session",
	Long: `Remove the session cookies saved by 'atc login'.
You'll need to run 'atc login' again before submitting.

Example:
  atc logout`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer func() { _ = e.logger.Sync() }()

		session := e.session()
		if !session.Exists() {
			fmt.Fprintln(cmd.OutOrStdout(), "Already logged out")
			return nil
		}
		if err := session.Clear(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✓ Logged out successfully!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
