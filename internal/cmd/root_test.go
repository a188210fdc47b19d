package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"giteasync/pkg/forge"
)

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "giteasync" {
		t.Errorf("Expected Use = giteasync, got %s", rootCmd.Use)
	}

	applyFound := false
	validateFound := false
	for _, cmd := range rootCmd.Commands() {
		if strings.HasPrefix(cmd.Use, "apply") {
			applyFound = true
		}
		if strings.HasPrefix(cmd.Use, "validate") {
			validateFound = true
		}
	}

	if !applyFound {
		t.Error("apply command not found in root command")
	}
	if !validateFound {
		t.Error("validate command not found in root command")
	}
}

func TestRootCommandHelp(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Failed to execute help command: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "giteasync") {
		t.Error("Help output doesn't contain command name")
	}
	if !strings.Contains(output, "apply") {
		t.Error("Help output doesn't contain apply subcommand")
	}
	if !strings.Contains(output, "validate") {
		t.Error("Help output doesn't contain validate subcommand")
	}
}

func TestExitStatus(t *testing.T) {
	if err := exitStatus(forge.Disposition{}); err != nil {
		t.Errorf("Expected nil for a clean disposition, got %v", err)
	}

	err := exitStatus(forge.Disposition{AccountDrift: true, RepoDrift: true})
	if err == nil {
		t.Fatal("Expected an error for a drifted disposition")
	}
	var exit exitError
	if !errors.As(err, &exit) {
		t.Fatalf("Expected an exitError, got %T", err)
	}
	if exit.code != 3 {
		t.Errorf("Expected exit code 3, got %d", exit.code)
	}
	if exit.Error() != "exit status 3" {
		t.Errorf("Unexpected error text: %s", exit.Error())
	}
}

func TestApplyCommandFlags(t *testing.T) {
	if applyCmd.Flags().Lookup("dry-run") == nil {
		t.Error("apply command is missing the --dry-run flag")
	}
	if applyCmd.Flags().Lookup("config") == nil {
		t.Error("apply command is missing the --config flag")
	}
}
