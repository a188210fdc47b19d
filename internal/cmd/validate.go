package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"giteasync/pkg/forge"
)

var validateCmd = &cobra.Command{
	Use:   "validate <desired-state.yaml>",
	Short: "Validate a desired-state file",
	Long: `Validate a desired-state file for syntax and logical errors without
touching the forge.

Checks performed:
• YAML syntax and mapping structure
• Required fields (account email, repository description)
• Exactly one origin (gitHub or native) per repository
• Valid URIs for websites and mirror sources
• Duplicate account, owner, and repository declarations

Example desired-state file:

  users:
    alice:
      email: alice@example.com
      isAdmin: true
  repos:
    alice:
      mirrored:
        description: kept in sync from github.com
        gitHub: https://github.com/alice/mirrored
      native:
        description: lives on the forge
        native:
          defaultBranch: main
          private: true`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	cfg, err := forge.LoadConfig(args[0])
	if err != nil {
		return err
	}

	repos := 0
	for _, owner := range cfg.Owners {
		repos += len(owner.Repos)
	}
	fmt.Printf("✓ %s is valid: %d accounts, %d repositories under %d owners\n",
		args[0], len(cfg.Accounts), repos, len(cfg.Owners))
	return nil
}
