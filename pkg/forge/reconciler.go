package forge

import (
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// Reconciler drives remediation for alignment outcomes: it creates missing
// entities, edits diverged ones, and deletes unexpected ones after an
// interactive confirmation. Entities are remediated concurrently; prompt
// interactions and every log line go through a single console gate, so a
// prompt waiting for its answer is never split by a concurrent writer.
type Reconciler struct {
	client  Client
	confirm Confirmer
	log     zerolog.Logger
	console *sync.Mutex
}

// consoleWriter serializes writes to the shared console stream under the
// same gate that guards prompt interactions.
type consoleWriter struct {
	mu   *sync.Mutex
	sink io.Writer
}

func (w consoleWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sink.Write(p)
}

// NewReconciler builds a reconciler logging to sink. The logger shares the
// console mutex with the confirmer so log lines and prompts never interleave;
// the mutex is shared by every batch the reconciler runs, and passing nil
// allocates a private one.
func NewReconciler(client Client, confirm Confirmer, sink io.Writer, console *sync.Mutex) *Reconciler {
	if console == nil {
		console = &sync.Mutex{}
	}
	log := zerolog.New(consoleWriter{mu: console, sink: sink}).With().Timestamp().Logger()
	return &Reconciler{client: client, confirm: confirm, log: log, console: console}
}

// ReconcileAccounts remediates every account outcome and returns the
// outcomes that still failed afterwards. Failures are also logged, so the
// default caller is free to ignore the residual set.
func (r *Reconciler) ReconcileAccounts(outcomes *OutcomeSet[string, Account]) *OutcomeSet[string, Account] {
	return reconcileAll(outcomes, func(name string, outcome Outcome[Account]) error {
		if err := r.remediateAccount(name, outcome); err != nil {
			r.log.Error().Str("account", name).Err(err).Msg("account remediation failed")
			return err
		}
		return nil
	})
}

// ReconcileRepos remediates every repository outcome and returns the
// outcomes that still failed afterwards, in the same key order as the input.
func (r *Reconciler) ReconcileRepos(outcomes *OutcomeSet[RepoKey, RepoSpec]) *OutcomeSet[RepoKey, RepoSpec] {
	return reconcileAll(outcomes, func(key RepoKey, outcome Outcome[RepoSpec]) error {
		if err := r.remediateRepo(key, outcome); err != nil {
			r.log.Error().Stringer("repo", key).Err(err).Msg("repository remediation failed")
			return err
		}
		return nil
	})
}

// reconcileAll fans out one goroutine per entity, waits for all of them, and
// collects the failed outcomes back into the input's key order. One entity's
// failure never cancels its siblings.
func reconcileAll[K comparable, T any](outcomes *OutcomeSet[K, T], remediate func(K, Outcome[T]) error) *OutcomeSet[K, T] {
	failed := make(map[K]bool, outcomes.Len())
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, key := range outcomes.Keys() {
		outcome, _ := outcomes.Get(key)
		wg.Add(1)
		go func(key K, outcome Outcome[T]) {
			defer wg.Done()
			if err := remediate(key, outcome); err != nil {
				mu.Lock()
				failed[key] = true
				mu.Unlock()
			}
		}(key, outcome)
	}
	wg.Wait()

	residual := NewOutcomeSet[K, T]()
	for _, key := range outcomes.Keys() {
		if failed[key] {
			outcome, _ := outcomes.Get(key)
			residual.Put(key, outcome)
		}
	}
	return residual
}

func (r *Reconciler) remediateAccount(name string, outcome Outcome[Account]) error {
	switch outcome.Type {
	case OutcomeMissing:
		password, err := GeneratePassword()
		if err != nil {
			return fmt.Errorf("failed to generate credential: %w", err)
		}
		if err := r.client.CreateAccount(name, *outcome.Desired, password); err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}
		// The generated credential has no other retrieval path; it is
		// disclosed exactly once, in a single gated log line, before the
		// task completes.
		r.log.Error().
			Str("account", name).
			Str("password", password).
			Msg("account created with one-time password; rotation is forced on first login")
		return nil

	case OutcomeUnexpected:
		r.console.Lock()
		remove, err := r.confirm.Confirm(fmt.Sprintf("account %q unexpectedly present. Remove?", name))
		r.console.Unlock()
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !remove {
			r.log.Error().Str("account", name).Msg("unexpected account left in place; removal refused")
			return nil
		}
		if err := r.client.DeleteAccount(name); err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}
		r.log.Info().Str("account", name).Msg("unexpected account removed")
		return nil

	case OutcomeDiverged:
		edit := AccountEdit{}
		fields := 0
		for _, update := range ResolveAccount(*outcome.Desired, *outcome.Observed) {
			if !update.Field.Enforceable() {
				r.logUnenforceable(string(update.Field), "account", name, update.Desired, update.Observed)
				continue
			}
			switch update.Field {
			case AccountFieldAdmin:
				edit.Admin = &outcome.Desired.Admin
			case AccountFieldEmail:
				edit.Email = &outcome.Desired.Email
			case AccountFieldVisibility:
				edit.Visibility = outcome.Desired.Visibility
			}
			fields++
		}
		if fields == 0 {
			return nil
		}
		if err := r.client.EditAccount(name, edit); err != nil {
			return fmt.Errorf("failed to edit account: %w", err)
		}
		r.log.Info().Str("account", name).Int("fields", fields).Msg("account updated")
		return nil

	default:
		return fmt.Errorf("unsupported outcome type: %s", outcome.Type)
	}
}

func (r *Reconciler) remediateRepo(key RepoKey, outcome Outcome[RepoSpec]) error {
	switch outcome.Type {
	case OutcomeMissing:
		if source, ok := outcome.Desired.Origin.Mirror(); ok {
			if err := r.client.MigrateRepo(key, *outcome.Desired); err != nil {
				return fmt.Errorf("failed to migrate repository: %w", err)
			}
			r.log.Info().Stringer("repo", key).Str("source", source).Msg("repository mirrored")
			return nil
		}
		if err := r.client.CreateRepo(key, *outcome.Desired); err != nil {
			return fmt.Errorf("failed to create repository: %w", err)
		}
		r.log.Info().Stringer("repo", key).Msg("repository created")
		return nil

	case OutcomeUnexpected:
		r.console.Lock()
		remove, err := r.confirm.Confirm(fmt.Sprintf("repository %q unexpectedly present. Remove?", key.String()))
		r.console.Unlock()
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !remove {
			r.log.Error().Stringer("repo", key).Msg("unexpected repository left in place; removal refused")
			return nil
		}
		if err := r.client.DeleteRepo(key); err != nil {
			return fmt.Errorf("failed to delete repository: %w", err)
		}
		r.log.Info().Stringer("repo", key).Msg("unexpected repository removed")
		return nil

	case OutcomeDiverged:
		edit := RepoEdit{}
		fields := 0
		for _, update := range ResolveRepo(*outcome.Desired, *outcome.Observed) {
			if !update.Field.Enforceable() {
				r.logUnenforceable(string(update.Field), "repo", key.String(), update.Desired, update.Observed)
				continue
			}
			switch update.Field {
			case RepoFieldDescription:
				edit.Description = &outcome.Desired.Description
			case RepoFieldDefaultBranch:
				branch, _, _ := outcome.Desired.Origin.Native()
				edit.DefaultBranch = &branch
			case RepoFieldPrivate:
				_, private, _ := outcome.Desired.Origin.Native()
				edit.Private = &private
			}
			fields++
		}
		if fields == 0 {
			return nil
		}
		if err := r.client.EditRepo(key, edit); err != nil {
			return fmt.Errorf("failed to edit repository: %w", err)
		}
		r.log.Info().Stringer("repo", key).Int("fields", fields).Msg("repository updated")
		return nil

	default:
		return fmt.Errorf("unsupported outcome type: %s", outcome.Type)
	}
}

func (r *Reconciler) logUnenforceable(field, entityKind, entity, desired, observed string) {
	r.log.Error().
		Str(entityKind, entity).
		Str("field", field).
		Str("desired", desired).
		Str("observed", observed).
		Msg("field cannot be changed through the forge API; conflict left in place")
}
