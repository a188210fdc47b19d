package forge

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the desired state for one reconciliation run: accounts and, per
// owner, repositories. Declaration order in the YAML file is preserved so
// that reports and outcome sets iterate deterministically.
type Config struct {
	Accounts []DeclaredAccount
	Owners   []DeclaredOwner
}

// DeclaredAccount pairs an account name with its desired settings.
type DeclaredAccount struct {
	Name    string
	Account Account
}

// DeclaredOwner holds the declared repositories of one owning account.
type DeclaredOwner struct {
	Owner string
	Repos []DeclaredRepo
}

// DeclaredRepo pairs a repository name with its desired settings.
type DeclaredRepo struct {
	Name string
	Spec RepoSpec
}

// LoadConfig reads and validates a desired-state file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read desired-state file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses and validates desired-state YAML.
func ParseConfig(data []byte) (*Config, error) {
	var raw struct {
		Users yaml.Node `yaml:"users"`
		Repos yaml.Node `yaml:"repos"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse desired-state file: %w", err)
	}

	var cfg Config
	var validationErrors ValidationErrors

	if err := parseAccounts(&raw.Users, &cfg, &validationErrors); err != nil {
		return nil, err
	}
	if err := parseOwners(&raw.Repos, &cfg, &validationErrors); err != nil {
		return nil, err
	}

	if validationErrors.HasErrors() {
		return nil, validationErrors
	}
	return &cfg, nil
}

func parseAccounts(node *yaml.Node, cfg *Config, verrs *ValidationErrors) error {
	entries, err := mappingEntries(node, "users")
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		name := entry.key.Value
		if name == "" {
			verrs.Add("users", "", "account name must not be empty")
			continue
		}
		if seen[name] {
			verrs.Add("users."+name, "", "account declared more than once")
			continue
		}
		seen[name] = true

		var account Account
		if err := entry.value.Decode(&account); err != nil {
			return fmt.Errorf("failed to parse account %s: %w", name, err)
		}
		if account.Email == "" {
			verrs.Add("users."+name+".email", "", "email is required")
		}
		if account.Website != nil && !validURI(*account.Website) {
			verrs.Add("users."+name+".website", *account.Website, "website must be a valid URI")
		}
		cfg.Accounts = append(cfg.Accounts, DeclaredAccount{Name: name, Account: account})
	}
	return nil
}

func parseOwners(node *yaml.Node, cfg *Config, verrs *ValidationErrors) error {
	owners, err := mappingEntries(node, "repos")
	if err != nil {
		return err
	}
	seenOwners := make(map[string]bool, len(owners))
	for _, ownerEntry := range owners {
		owner := ownerEntry.key.Value
		if owner == "" {
			verrs.Add("repos", "", "owner name must not be empty")
			continue
		}
		if seenOwners[owner] {
			verrs.Add("repos."+owner, "", "owner declared more than once")
			continue
		}
		seenOwners[owner] = true

		declared := DeclaredOwner{Owner: owner}
		repos, err := mappingEntries(ownerEntry.value, "repos."+owner)
		if err != nil {
			return err
		}
		seenRepos := make(map[string]bool, len(repos))
		for _, repoEntry := range repos {
			name := repoEntry.key.Value
			field := fmt.Sprintf("repos.%s.%s", owner, name)
			if name == "" {
				verrs.Add("repos."+owner, "", "repository name must not be empty")
				continue
			}
			if seenRepos[name] {
				verrs.Add(field, "", "repository declared more than once")
				continue
			}
			seenRepos[name] = true

			spec, err := parseRepoSpec(repoEntry.value, owner, name, field, verrs)
			if err != nil {
				return err
			}
			declared.Repos = append(declared.Repos, DeclaredRepo{Name: name, Spec: spec})
		}
		cfg.Owners = append(cfg.Owners, declared)
	}
	return nil
}

func parseRepoSpec(node *yaml.Node, owner, name, field string, verrs *ValidationErrors) (RepoSpec, error) {
	var raw struct {
		Description string  `yaml:"description"`
		GitHub      *string `yaml:"gitHub"`
		Native      *struct {
			DefaultBranch string `yaml:"defaultBranch"`
			Private       bool   `yaml:"private"`
		} `yaml:"native"`
	}
	if err := node.Decode(&raw); err != nil {
		return RepoSpec{}, fmt.Errorf("failed to parse repository %s/%s: %w", owner, name, err)
	}

	hasGitHub := mappingHasKey(node, "gitHub")
	hasNative := mappingHasKey(node, "native")
	if !mappingHasKey(node, "description") {
		verrs.Add(field+".description", "", "description is required")
	}

	spec := RepoSpec{Description: raw.Description}
	switch {
	case hasGitHub && hasNative:
		verrs.Add(field, "", "gitHub and native origins are mutually exclusive")
	case hasGitHub:
		// A null gitHub value mirrors the repository of the same owner and
		// name from github.com.
		source := fmt.Sprintf("https://github.com/%s/%s", owner, name)
		if raw.GitHub != nil {
			source = *raw.GitHub
		}
		if !validURI(source) {
			verrs.Add(field+".gitHub", source, "mirror source must be a valid URI")
		}
		spec.Origin = MirrorOrigin(source)
	case hasNative:
		// A null native value creates a public repository with branch main.
		branch, private := "main", false
		if raw.Native != nil {
			branch, private = raw.Native.DefaultBranch, raw.Native.Private
			if branch == "" {
				verrs.Add(field+".native.defaultBranch", "", "defaultBranch is required")
			}
		}
		spec.Origin = NativeOrigin(branch, private)
	default:
		verrs.Add(field, "", "exactly one of gitHub or native is required")
	}
	return spec, nil
}

// mappingEntry is one key/value pair of a YAML mapping, in document order.
type mappingEntry struct {
	key   *yaml.Node
	value *yaml.Node
}

func mappingEntries(node *yaml.Node, field string) ([]mappingEntry, error) {
	if node == nil || node.Kind == 0 || node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s must be a mapping", field)
	}
	entries := make([]mappingEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		entries = append(entries, mappingEntry{key: node.Content[i], value: node.Content[i+1]})
	}
	return entries, nil
}

func mappingHasKey(node *yaml.Node, key string) bool {
	if node == nil || node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

func validURI(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
