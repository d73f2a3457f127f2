package runner

// ProcessRunner owns one Parameters record and the Results of its most
// recent execution. A single ProcessRunner can Execute more than once;
// each call whose Parameters still validate replaces Results with those
// of a fresh fork/exec/supervise cycle.
type ProcessRunner struct {
	Params  Parameters
	Results Results
}

// NewProcessRunner constructs a ProcessRunner around p. Params can be
// mutated directly before calling Execute.
func NewProcessRunner(p Parameters) *ProcessRunner {
	return &ProcessRunner{Params: p, Results: emptyResults()}
}

// Execute validates r.Params and, if valid, runs one supervised
// fork/exec/wait cycle. A RunnerValidateError propagates out of Execute
// as a returned error and r.Results is left
// untouched (no Results record is produced). Everything that fails after
// that point — forking, the handshake, the polling loop — is a
// RunnerError, which Execute catches and converts into
// r.Results.Status == StatusRunFail instead of returning it.
func (r *ProcessRunner) Execute() error {
	if err := r.Params.validate(); err != nil {
		return err
	}

	results, err := doExecute(&r.Params)
	if err != nil {
		r.Results = Results{Status: StatusRunFail, Comment: fullMessage(err)}
		return nil
	}
	r.Results = results
	return nil
}
