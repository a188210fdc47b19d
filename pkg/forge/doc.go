// Package forge reconciles a declared configuration of accounts and
// repositories against the live state of a Gitea-compatible forge.
//
// The package includes:
// - Client interface for the forge admin API
// - Differ producing sparse alignment outcomes (missing, unexpected, diverged)
// - Field resolvers turning diverged entities into atomic update lists
// - Reconciler applying creates, edits and gated deletes concurrently
// - Desired-state configuration models and validation
package forge
