package forge

// Disposition folds the two reconciliation phases into a process exit
// signal. Each bit reports whether the phase observed drift at the start of
// the run, independently of whether remediation of it succeeded.
type Disposition struct {
	AccountDrift bool
	RepoDrift    bool
}

// ExitCode maps the disposition onto a closed set of exit codes: 0 both
// phases clean, 1 account drift only, 2 repository drift only, 3 both.
func (d Disposition) ExitCode() int {
	code := 0
	if d.AccountDrift {
		code |= 1
	}
	if d.RepoDrift {
		code |= 2
	}
	return code
}

// Clean reports whether neither phase observed drift.
func (d Disposition) Clean() bool {
	return !d.AccountDrift && !d.RepoDrift
}

// EscalateAccountFailures folds the account remediation residual into the
// disposition. Account failures are logged only by default; with escalation
// enabled, a non-empty residual also sets the account bit. The repository
// bit is never touched.
func (d Disposition) EscalateAccountFailures(residual *OutcomeSet[string, Account], enabled bool) Disposition {
	if enabled && !residual.Empty() {
		d.AccountDrift = true
	}
	return d
}
