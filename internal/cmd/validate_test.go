package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDesiredState(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "desired.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write desired-state file: %v", err)
	}
	return path
}

func TestRunValidateAcceptsValidFile(t *testing.T) {
	path := writeDesiredState(t, `
users:
  alice:
    email: a@x.com
repos:
  alice:
    proj:
      description: x
      gitHub: https://github.com/alice/proj
`)
	if err := runValidate(nil, []string{path}); err != nil {
		t.Errorf("Expected valid file to pass, got: %v", err)
	}
}

func TestRunValidateRejectsInvalidFile(t *testing.T) {
	path := writeDesiredState(t, `
users:
  alice: {}
`)
	err := runValidate(nil, []string{path})
	if err == nil {
		t.Fatal("Expected validation error for account without email")
	}
}

func TestRunValidateMissingFile(t *testing.T) {
	if err := runValidate(nil, []string{filepath.Join(t.TempDir(), "absent.yaml")}); err == nil {
		t.Fatal("Expected error for missing file")
	}
}
