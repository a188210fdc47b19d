package forge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispositionExitCodes(t *testing.T) {
	tests := []struct {
		name        string
		disposition Disposition
		code        int
	}{
		{"both phases clean", Disposition{}, 0},
		{"account drift only", Disposition{AccountDrift: true}, 1},
		{"repo drift only", Disposition{RepoDrift: true}, 2},
		{"both phases drifted", Disposition{AccountDrift: true, RepoDrift: true}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.disposition.ExitCode())
			assert.Equal(t, tt.code == 0, tt.disposition.Clean())
		})
	}
}

func TestDispositionEscalateAccountFailures(t *testing.T) {
	clean := Disposition{}
	residual := NewOutcomeSet[string, Account]()

	// An empty residual never escalates, whatever the flag says.
	assert.Equal(t, clean, clean.EscalateAccountFailures(residual, true))

	residual.Put("alice", Missing(Account{Email: "a@x.com"}))

	// Disabled escalation keeps account failures log-only.
	assert.Equal(t, clean, clean.EscalateAccountFailures(residual, false))

	escalated := clean.EscalateAccountFailures(residual, true)
	assert.True(t, escalated.AccountDrift)
	assert.Equal(t, 1, escalated.ExitCode())

	// The repository bit is untouched by the fold.
	both := Disposition{RepoDrift: true}.EscalateAccountFailures(residual, true)
	assert.Equal(t, 3, both.ExitCode())
}
