package forge

import (
	"fmt"
	"sort"
)

// Differ computes sparse alignment outcomes by comparing a desired
// configuration against the live forge state. It performs reads only.
type Differ struct {
	Client Client
	// Reserved lists account names that are never reported as unexpected,
	// such as the admin account the tool authenticates as.
	Reserved []string
}

// DiffAccounts classifies every account that is not already aligned.
// Declared accounts are visited in declaration order; accounts present only
// on the forge follow, sorted by name for run-to-run stability.
func (d *Differ) DiffAccounts(cfg *Config) (*OutcomeSet[string, Account], error) {
	outcomes := NewOutcomeSet[string, Account]()
	declared := make(map[string]bool, len(cfg.Accounts))

	for _, acct := range cfg.Accounts {
		declared[acct.Name] = true
		observed, err := d.Client.GetAccount(acct.Name)
		if err != nil {
			if IsNotFound(err) {
				outcomes.Put(acct.Name, Missing(acct.Account))
				continue
			}
			return nil, fmt.Errorf("failed to fetch account %s: %w", acct.Name, err)
		}
		if len(ResolveAccount(acct.Account, *observed)) > 0 {
			outcomes.Put(acct.Name, Diverged(acct.Account, *observed))
		}
	}

	names, err := d.Client.ListAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	sort.Strings(names)
	reserved := make(map[string]bool, len(d.Reserved))
	for _, name := range d.Reserved {
		reserved[name] = true
	}
	for _, name := range names {
		if !declared[name] && !reserved[name] {
			outcomes.Put(name, Unexpected[Account]())
		}
	}
	return outcomes, nil
}

// DiffRepos classifies every declared repository that is not already
// aligned, in owner declaration order then repository declaration order.
// Repositories present under a declared owner but absent from the
// configuration are reported as unexpected, sorted by name per owner.
func (d *Differ) DiffRepos(cfg *Config) (*OutcomeSet[RepoKey, RepoSpec], error) {
	outcomes := NewOutcomeSet[RepoKey, RepoSpec]()

	for _, owner := range cfg.Owners {
		declared := make(map[string]bool, len(owner.Repos))
		for _, repo := range owner.Repos {
			declared[repo.Name] = true
			key := RepoKey{Owner: owner.Owner, Name: repo.Name}
			observed, err := d.Client.GetRepo(key)
			if err != nil {
				if IsNotFound(err) {
					outcomes.Put(key, Missing(repo.Spec))
					continue
				}
				return nil, fmt.Errorf("failed to fetch repository %s: %w", key, err)
			}
			if len(ResolveRepo(repo.Spec, *observed)) > 0 {
				outcomes.Put(key, Diverged(repo.Spec, *observed))
			}
		}

		names, err := d.Client.ListRepos(owner.Owner)
		if err != nil {
			// An owner that does not exist yet has no repositories to
			// report as unexpected.
			if IsNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("failed to list repositories of %s: %w", owner.Owner, err)
		}
		sort.Strings(names)
		for _, name := range names {
			if !declared[name] {
				outcomes.Put(RepoKey{Owner: owner.Owner, Name: name}, Unexpected[RepoSpec]())
			}
		}
	}
	return outcomes, nil
}
