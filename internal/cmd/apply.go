package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"giteasync/pkg/config"
	"giteasync/pkg/forge"
)

var (
	applyDryRun     bool
	applyConfigPath string
)

var applyCmd = &cobra.Command{
	Use:   "apply <desired-state.yaml>",
	Short: "Apply the declared account and repository state to the forge",
	Long: `Apply a desired-state file to the forge.

The run diffs every declared account and repository against the live state
and remediates the drift: missing accounts are created with a one-time
password (disclosed once in the log, rotation forced on first login),
missing repositories are created natively or mirrored from their source,
diverged entities are edited field by field, and unexpected entities are
removed only after an interactive confirmation that defaults to no.

The exit code reports where drift existed: 0 both phases clean, 1 account
drift only, 2 repository drift only, 3 both.

Examples:
  giteasync apply forge.yaml
  giteasync apply forge.yaml --dry-run
  giteasync apply forge.yaml --config ./giteasync.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Report drift without remediating it")
	applyCmd.Flags().StringVar(&applyConfigPath, "config", "", "Path to the giteasync configuration file")
	rootCmd.AddCommand(applyCmd)
}

func runApply(_ *cobra.Command, args []string) error {
	desired, err := forge.LoadConfig(args[0])
	if err != nil {
		return fmt.Errorf("failed to load desired state: %w", err)
	}

	cfg, err := loadToolConfig(applyConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load giteasync config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, err := forge.NewGiteaClient(cfg.Forge.URL, cfg.Forge.Token)
	if err != nil {
		return err
	}

	self, err := client.AuthenticatedUser()
	if err != nil {
		return fmt.Errorf("failed to identify authenticated account: %w", err)
	}
	fmt.Printf("✓ Authenticated as %s\n", self)

	differ := &forge.Differ{Client: client, Reserved: []string{self}}
	accountOutcomes, err := differ.DiffAccounts(desired)
	if err != nil {
		return fmt.Errorf("failed to diff accounts: %w", err)
	}
	repoOutcomes, err := differ.DiffRepos(desired)
	if err != nil {
		return fmt.Errorf("failed to diff repositories: %w", err)
	}

	disposition := forge.Disposition{
		AccountDrift: !accountOutcomes.Empty(),
		RepoDrift:    !repoOutcomes.Empty(),
	}
	printDrift(accountOutcomes, repoOutcomes)

	if applyDryRun {
		return exitStatus(disposition)
	}

	reconciler := forge.NewReconciler(client, forge.NewStdinConfirmer(), zerolog.ConsoleWriter{Out: os.Stderr}, nil)

	accountResidual := reconciler.ReconcileAccounts(accountOutcomes)
	repoResidual := reconciler.ReconcileRepos(repoOutcomes)

	disposition = disposition.EscalateAccountFailures(accountResidual, cfg.Reconcile.EscalateAccountFailures)
	for _, key := range repoResidual.Keys() {
		fmt.Printf("✗ repository %s could not be remediated\n", key)
	}

	if disposition.Clean() {
		fmt.Println("✓ No drift detected")
	}
	return exitStatus(disposition)
}

// exitStatus turns a drift disposition into the command result: nil when
// both phases were clean, otherwise an exitError carrying the 2-bit code.
func exitStatus(disposition forge.Disposition) error {
	if disposition.Clean() {
		return nil
	}
	return exitError{code: disposition.ExitCode()}
}

func loadToolConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfigFromPath(path)
	}
	return config.LoadConfig()
}

func printDrift(accounts *forge.OutcomeSet[string, forge.Account], repos *forge.OutcomeSet[forge.RepoKey, forge.RepoSpec]) {
	for _, name := range accounts.Keys() {
		outcome, _ := accounts.Get(name)
		fmt.Printf("~ account %s: %s\n", name, outcome.Type)
	}
	for _, key := range repos.Keys() {
		outcome, _ := repos.Get(key)
		fmt.Printf("~ repository %s: %s\n", key, outcome.Type)
	}
}
