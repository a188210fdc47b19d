package forge

// Client is the remote-state capability consumed by the differ and the
// reconciler. Fetches report absence with a not-found ForgeError rather than
// a nil result. Implementations must be safe for concurrent independent
// calls; a client that is not must be wrapped in a serializing proxy by the
// caller.
type Client interface {
	// Account operations
	GetAccount(name string) (*Account, error)
	ListAccounts() ([]string, error)
	CreateAccount(name string, account Account, password string) error
	EditAccount(name string, edit AccountEdit) error
	DeleteAccount(name string) error

	// Repository operations
	GetRepo(key RepoKey) (*RepoSpec, error)
	ListRepos(owner string) ([]string, error)
	CreateRepo(key RepoKey, spec RepoSpec) error
	MigrateRepo(key RepoKey, spec RepoSpec) error
	EditRepo(key RepoKey, edit RepoEdit) error
	DeleteRepo(key RepoKey) error
}

// Confirmer asks the operator a yes/no question. Implementations default to
// no on empty or unrecognized input; only an explicit yes returns true.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}
