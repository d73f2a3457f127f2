package runner

import (
	"errors"
	"testing"
)

func TestValidateAssert(t *testing.T) {
	if err := validateAssert(true, "always true"); err != nil {
		t.Fatalf("validateAssert(true, ...) = %v, want nil", err)
	}
	err := validateAssert(false, "timeLimit > 0")
	if err == nil {
		t.Fatal("validateAssert(false, ...) = nil, want an error")
	}
	if err.Error() != "assertion failed: timeLimit > 0" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestRunnerErrorUnwrapAndMessage(t *testing.T) {
	cause := errors.New("ENOENT")
	err := newRunnerError("opening stdinRedir", cause)

	if err.Error() != "opening stdinRedir: ENOENT" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatal("errors.Is(err, cause) = false, want true")
	}
}

func TestRunnerErrorWithoutCause(t *testing.T) {
	err := newRunnerError("fork failed", nil)
	if err.Error() != "fork failed" {
		t.Fatalf("Error() = %q, want \"fork failed\"", err.Error())
	}
	if err.Unwrap() != nil {
		t.Fatal("Unwrap() should be nil when no cause was given")
	}
}

func TestFullMessage(t *testing.T) {
	if got := fullMessage(nil); got != "" {
		t.Fatalf("fullMessage(nil) = %q, want empty", got)
	}
	wrapped := newRunnerError("chdir failed", errors.New("no such file or directory"))
	if got := fullMessage(wrapped); got != "chdir failed: no such file or directory" {
		t.Fatalf("fullMessage() = %q", got)
	}
}
