package forge

import "strconv"

// AccountField names one mutable account field.
type AccountField string

const (
	AccountFieldAdmin      AccountField = "admin"
	AccountFieldEmail      AccountField = "email"
	AccountFieldVisibility AccountField = "visibility"
	AccountFieldWebsite    AccountField = "website"
)

// Enforceable reports whether the field can actually be changed through the
// forge admin API. The website field is accepted by the edit endpoint but
// never applied by the forge, so conflicts on it can only be reported.
func (f AccountField) Enforceable() bool {
	return f != AccountFieldWebsite
}

// AccountUpdate is one atomic field-level directive for an account that
// exists on both sides but diverges. It carries the rendered desired and
// conflicting observed values for reporting.
type AccountUpdate struct {
	Field    AccountField
	Desired  string
	Observed string
}

// RepoField names one mutable repository field.
type RepoField string

const (
	RepoFieldDescription   RepoField = "description"
	RepoFieldOrigin        RepoField = "origin"
	RepoFieldDefaultBranch RepoField = "default_branch"
	RepoFieldPrivate       RepoField = "private"
)

// Enforceable reports whether the field can be changed through the forge
// API. A repository cannot be converted between mirror and native, nor
// re-pointed at another source, once created.
func (f RepoField) Enforceable() bool {
	return f != RepoFieldOrigin
}

// RepoUpdate is the repository analogue of AccountUpdate.
type RepoUpdate struct {
	Field    RepoField
	Desired  string
	Observed string
}

// ResolveAccount compares a desired account against its observed state and
// returns the fields that must change, in fixed field order: admin, email,
// visibility, website. Optional fields left nil on the desired side are
// unmanaged and never produce an update.
func ResolveAccount(desired, observed Account) []AccountUpdate {
	var updates []AccountUpdate
	if desired.Admin != observed.Admin {
		updates = append(updates, AccountUpdate{
			Field:    AccountFieldAdmin,
			Desired:  strconv.FormatBool(desired.Admin),
			Observed: strconv.FormatBool(observed.Admin),
		})
	}
	if desired.Email != observed.Email {
		updates = append(updates, AccountUpdate{
			Field:    AccountFieldEmail,
			Desired:  desired.Email,
			Observed: observed.Email,
		})
	}
	if desired.Visibility != nil && !optionalEqual(desired.Visibility, observed.Visibility) {
		updates = append(updates, AccountUpdate{
			Field:    AccountFieldVisibility,
			Desired:  renderOptional(desired.Visibility),
			Observed: renderOptional(observed.Visibility),
		})
	}
	if desired.Website != nil && !optionalEqual(desired.Website, observed.Website) {
		updates = append(updates, AccountUpdate{
			Field:    AccountFieldWebsite,
			Desired:  renderOptional(desired.Website),
			Observed: renderOptional(observed.Website),
		})
	}
	return updates
}

// ResolveRepo compares a desired repository spec against its observed state,
// in fixed field order: description, origin, default_branch, private.
// Mirror-origin repositories are compared only by description and mirror
// source; downstream branch state is driven by the external origin. An
// origin-kind mismatch produces a single origin update and suppresses the
// branch and visibility comparisons, which belong to the other variant.
func ResolveRepo(desired, observed RepoSpec) []RepoUpdate {
	var updates []RepoUpdate
	if desired.Description != observed.Description {
		updates = append(updates, RepoUpdate{
			Field:    RepoFieldDescription,
			Desired:  desired.Description,
			Observed: observed.Description,
		})
	}

	if source, ok := desired.Origin.Mirror(); ok {
		observedSource, observedMirror := observed.Origin.Mirror()
		if !observedMirror || observedSource != source {
			updates = append(updates, originUpdate(desired, observed))
		}
		return updates
	}

	branch, private, _ := desired.Origin.Native()
	if _, observedMirror := observed.Origin.Mirror(); observedMirror {
		updates = append(updates, originUpdate(desired, observed))
		return updates
	}
	observedBranch, observedPrivate, _ := observed.Origin.Native()
	if branch != observedBranch {
		updates = append(updates, RepoUpdate{
			Field:    RepoFieldDefaultBranch,
			Desired:  branch,
			Observed: observedBranch,
		})
	}
	if private != observedPrivate {
		updates = append(updates, RepoUpdate{
			Field:    RepoFieldPrivate,
			Desired:  strconv.FormatBool(private),
			Observed: strconv.FormatBool(observedPrivate),
		})
	}
	return updates
}

func originUpdate(desired, observed RepoSpec) RepoUpdate {
	return RepoUpdate{
		Field:    RepoFieldOrigin,
		Desired:  desired.Origin.String(),
		Observed: observed.Origin.String(),
	}
}

func optionalEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func renderOptional(value *string) string {
	if value == nil {
		return "(none)"
	}
	return *value
}
