package forge

import (
	"fmt"

	"code.gitea.io/sdk/gitea"
)

// listPageSize is the page size used for paginated listing calls.
const listPageSize = 50

// GiteaClient implements Client against a Gitea-compatible forge through its
// admin API. The underlying SDK client is safe for concurrent use.
type GiteaClient struct {
	api *gitea.Client
}

// NewGiteaClient builds a client for the forge at url, authenticating with
// an admin access token.
func NewGiteaClient(url, token string) (*GiteaClient, error) {
	api, err := gitea.NewClient(url, gitea.SetToken(token))
	if err != nil {
		return nil, fmt.Errorf("failed to build forge client: %w", err)
	}
	return &GiteaClient{api: api}, nil
}

// AuthenticatedUser returns the login name the token authenticates as. The
// differ treats it as reserved so the run never offers to delete its own
// account.
func (c *GiteaClient) AuthenticatedUser() (string, error) {
	user, resp, err := c.api.GetMyUserInfo()
	if err != nil {
		return "", wrapResponse(resp, "authenticated user", err)
	}
	return user.UserName, nil
}

// GetAccount fetches one account by name.
func (c *GiteaClient) GetAccount(name string) (*Account, error) {
	user, resp, err := c.api.GetUserInfo(name)
	if err != nil {
		return nil, wrapResponse(resp, "account "+name, err)
	}
	return convertUser(user), nil
}

// ListAccounts returns the names of all accounts on the forge.
func (c *GiteaClient) ListAccounts() ([]string, error) {
	var names []string
	for page := 1; ; page++ {
		users, resp, err := c.api.AdminListUsers(gitea.AdminListUsersOptions{
			ListOptions: gitea.ListOptions{Page: page, PageSize: listPageSize},
		})
		if err != nil {
			return nil, wrapResponse(resp, "account listing", err)
		}
		for _, user := range users {
			names = append(names, user.UserName)
		}
		if len(users) < listPageSize {
			return names, nil
		}
	}
}

// CreateAccount creates an account with a one-time password and forces
// rotation on first login. The admin flag is not part of the creation call
// and is applied with a follow-up edit when set.
func (c *GiteaClient) CreateAccount(name string, account Account, password string) error {
	mustChange := true
	opt := gitea.CreateUserOption{
		Username:           name,
		Email:              account.Email,
		Password:           password,
		MustChangePassword: &mustChange,
	}
	if account.Visibility != nil {
		visibility := gitea.VisibleType(*account.Visibility)
		opt.Visibility = &visibility
	}
	if _, resp, err := c.api.AdminCreateUser(opt); err != nil {
		return wrapResponse(resp, "account "+name, err)
	}
	if account.Admin {
		admin := true
		return c.EditAccount(name, AccountEdit{Admin: &admin})
	}
	return nil
}

// EditAccount applies a partial account edit.
func (c *GiteaClient) EditAccount(name string, edit AccountEdit) error {
	opt := gitea.EditUserOption{
		LoginName: name,
		Admin:     edit.Admin,
		Email:     edit.Email,
	}
	if edit.Visibility != nil {
		visibility := gitea.VisibleType(*edit.Visibility)
		opt.Visibility = &visibility
	}
	resp, err := c.api.AdminEditUser(name, opt)
	if err != nil {
		return wrapResponse(resp, "account "+name, err)
	}
	return nil
}

// DeleteAccount removes an account.
func (c *GiteaClient) DeleteAccount(name string) error {
	resp, err := c.api.AdminDeleteUser(name)
	if err != nil {
		return wrapResponse(resp, "account "+name, err)
	}
	return nil
}

// GetRepo fetches one repository by owner and name.
func (c *GiteaClient) GetRepo(key RepoKey) (*RepoSpec, error) {
	repo, resp, err := c.api.GetRepo(key.Owner, key.Name)
	if err != nil {
		return nil, wrapResponse(resp, "repository "+key.String(), err)
	}
	return convertRepo(repo), nil
}

// ListRepos returns the names of all repositories under one owner.
func (c *GiteaClient) ListRepos(owner string) ([]string, error) {
	var names []string
	for page := 1; ; page++ {
		repos, resp, err := c.api.ListUserRepos(owner, gitea.ListReposOptions{
			ListOptions: gitea.ListOptions{Page: page, PageSize: listPageSize},
		})
		if err != nil {
			return nil, wrapResponse(resp, "repository listing for "+owner, err)
		}
		for _, repo := range repos {
			names = append(names, repo.Name)
		}
		if len(repos) < listPageSize {
			return names, nil
		}
	}
}

// CreateRepo creates a native repository under the given owner.
func (c *GiteaClient) CreateRepo(key RepoKey, spec RepoSpec) error {
	branch, private, _ := spec.Origin.Native()
	_, resp, err := c.api.AdminCreateRepo(key.Owner, gitea.CreateRepoOption{
		Name:          key.Name,
		Description:   spec.Description,
		Private:       private,
		DefaultBranch: branch,
		AutoInit:      true,
	})
	if err != nil {
		return wrapResponse(resp, "repository "+key.String(), err)
	}
	return nil
}

// MigrateRepo creates a repository by mirroring its external source.
func (c *GiteaClient) MigrateRepo(key RepoKey, spec RepoSpec) error {
	source, _ := spec.Origin.Mirror()
	_, resp, err := c.api.MigrateRepo(gitea.MigrateRepoOption{
		RepoName:    key.Name,
		RepoOwner:   key.Owner,
		CloneAddr:   source,
		Service:     gitea.GitServiceGithub,
		Mirror:      true,
		Description: spec.Description,
	})
	if err != nil {
		return wrapResponse(resp, "repository "+key.String(), err)
	}
	return nil
}

// EditRepo applies a partial repository edit.
func (c *GiteaClient) EditRepo(key RepoKey, edit RepoEdit) error {
	_, resp, err := c.api.EditRepo(key.Owner, key.Name, gitea.EditRepoOption{
		Description:   edit.Description,
		DefaultBranch: edit.DefaultBranch,
		Private:       edit.Private,
	})
	if err != nil {
		return wrapResponse(resp, "repository "+key.String(), err)
	}
	return nil
}

// DeleteRepo removes a repository.
func (c *GiteaClient) DeleteRepo(key RepoKey) error {
	resp, err := c.api.DeleteRepo(key.Owner, key.Name)
	if err != nil {
		return wrapResponse(resp, "repository "+key.String(), err)
	}
	return nil
}

// convertUser maps an SDK user onto the account model. Empty optional
// fields become nil so the resolver can tell unset from empty.
func convertUser(user *gitea.User) *Account {
	account := &Account{Admin: user.IsAdmin, Email: user.Email}
	if user.Website != "" {
		website := user.Website
		account.Website = &website
	}
	if user.Visibility != "" {
		visibility := string(user.Visibility)
		account.Visibility = &visibility
	}
	return account
}

// convertRepo maps an SDK repository onto the spec model. Mirrors keep only
// their source; branch state of a mirror is driven by the external origin.
func convertRepo(repo *gitea.Repository) *RepoSpec {
	spec := &RepoSpec{Description: repo.Description}
	if repo.Mirror {
		spec.Origin = MirrorOrigin(repo.OriginalURL)
	} else {
		spec.Origin = NativeOrigin(repo.DefaultBranch, repo.Private)
	}
	return spec
}

// wrapResponse maps an SDK error and its HTTP response into the ForgeError
// taxonomy. A nil response means the call never reached the forge.
func wrapResponse(resp *gitea.Response, resource string, err error) *ForgeError {
	errorType := ErrorTypeTransport
	if resp != nil && resp.Response != nil {
		errorType = errorTypeForStatus(resp.StatusCode)
	}
	return NewForgeError(errorType, resource, err.Error(), err)
}
