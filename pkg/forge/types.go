package forge

import "fmt"

// Account holds the managed settings of a forge account. The same type
// carries both desired and observed state. A nil optional field means the
// field is unmanaged on a desired account, or unset on an observed one.
type Account struct {
	Admin      bool    `yaml:"isAdmin"`
	Email      string  `yaml:"email"`
	Website    *string `yaml:"website"`
	Visibility *string `yaml:"visibility"`
}

// RepoKey identifies a repository by its owning account and name. Repository
// names are unique within an owner.
type RepoKey struct {
	Owner string
	Name  string
}

// String returns the conventional owner/name form.
func (k RepoKey) String() string {
	return k.Owner + "/" + k.Name
}

type originKind int

const (
	originUnset originKind = iota
	originMirror
	originNative
)

// RepoOrigin records how a repository comes into being: mirrored from an
// external source, or created natively on the forge. Exactly one variant is
// populated; the constructors are the only way to build a valid value.
type RepoOrigin struct {
	kind          originKind
	sourceURL     string
	defaultBranch string
	private       bool
}

// MirrorOrigin builds the origin of a repository mirrored from sourceURL.
func MirrorOrigin(sourceURL string) RepoOrigin {
	return RepoOrigin{kind: originMirror, sourceURL: sourceURL}
}

// NativeOrigin builds the origin of a repository created directly on the
// forge with the given default branch and visibility.
func NativeOrigin(defaultBranch string, private bool) RepoOrigin {
	return RepoOrigin{kind: originNative, defaultBranch: defaultBranch, private: private}
}

// Mirror returns the mirror source URL if the origin is a mirror.
func (o RepoOrigin) Mirror() (sourceURL string, ok bool) {
	return o.sourceURL, o.kind == originMirror
}

// Native returns the native creation parameters if the origin is native.
func (o RepoOrigin) Native() (defaultBranch string, private bool, ok bool) {
	return o.defaultBranch, o.private, o.kind == originNative
}

// String renders the origin for reports and conflict logs.
func (o RepoOrigin) String() string {
	switch o.kind {
	case originMirror:
		return fmt.Sprintf("mirror of %s", o.sourceURL)
	case originNative:
		visibility := "public"
		if o.private {
			visibility = "private"
		}
		return fmt.Sprintf("native (%s, %s)", o.defaultBranch, visibility)
	default:
		return "(unset)"
	}
}

// RepoSpec holds the managed settings of a repository. As with Account, it
// carries both desired and observed state.
type RepoSpec struct {
	Description string
	Origin      RepoOrigin
}

// AccountEdit is a partial account update. Nil fields are left untouched by
// the remote edit call.
type AccountEdit struct {
	Admin      *bool
	Email      *string
	Visibility *string
}

// RepoEdit is a partial repository update. Nil fields are left untouched.
type RepoEdit struct {
	Description   *string
	DefaultBranch *string
	Private       *bool
}
