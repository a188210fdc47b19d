package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "giteasync",
	Short: "Reconcile declared forge accounts and repositories against live state",
	Long: `Giteasync compares a declared configuration of accounts and repositories
against the live state of a Gitea-compatible forge, reports the drift, and
optionally corrects it. Missing entities are created, diverged entities are
edited field by field, and unexpected entities are removed only after an
interactive confirmation.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// exitError carries a process exit code through cobra's error path, so
// commands report drift dispositions without calling os.Exit themselves.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exit exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Println(err)
		os.Exit(1)
	}
}
