//go:build linux

package runner

import (
	"strings"
	"testing"
)

func TestCeilSeconds(t *testing.T) {
	cases := []struct {
		in   float64
		want uint64
	}{
		{0, 0},
		{-1, 0},
		{1, 1},
		{1.0001, 2},
		{0.2, 1},
		{3.5, 4},
	}
	for _, tc := range cases {
		if got := ceilSeconds(tc.in); got != tc.want {
			t.Errorf("ceilSeconds(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestBuildEnvStringsClearEnv(t *testing.T) {
	p := &Parameters{ClearEnv: true, Env: map[string]string{"FOO": "bar"}}
	got := buildEnvStrings(p)
	if len(got) != 1 || got[0] != "FOO=bar" {
		t.Fatalf("buildEnvStrings() = %v, want only FOO=bar", got)
	}
}

func TestBuildEnvStringsInheritsWhenNotCleared(t *testing.T) {
	p := &Parameters{ClearEnv: false, Env: map[string]string{"EXTRA": "1"}}
	got := buildEnvStrings(p)

	found := false
	for _, kv := range got {
		if kv == "EXTRA=1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("buildEnvStrings() = %v, want EXTRA=1 present", got)
	}
	if len(got) < len(environ()) {
		t.Fatalf("buildEnvStrings() dropped inherited entries: got %d, want at least %d", len(got), len(environ()))
	}
}

func TestBuildEnvStringsOverridesInheritedName(t *testing.T) {
	inherited := environ()
	if len(inherited) == 0 {
		t.Skip("no inherited environment to override in this test environment")
	}
	name := inherited[0]
	if idx := strings.IndexByte(name, '='); idx >= 0 {
		name = name[:idx]
	}

	p := &Parameters{ClearEnv: false, Env: map[string]string{name: "overridden-value"}}
	got := buildEnvStrings(p)

	count := 0
	for _, kv := range got {
		if len(kv) > len(name) && kv[:len(name)] == name && kv[len(name)] == '=' {
			count++
			if kv != name+"=overridden-value" {
				t.Fatalf("entry for %q = %q, want %q", name, kv, name+"=overridden-value")
			}
		}
	}
	if count != 1 {
		t.Fatalf("found %d entries for %q, want exactly 1 (override should replace, not duplicate)", count, name)
	}
}

func TestBuildExecPlanRejectsEmbeddedNUL(t *testing.T) {
	p := &Parameters{Executable: "bad\x00path"}
	if _, err := buildExecPlan(p); err == nil {
		t.Fatal("buildExecPlan(): want error for embedded NUL in executable, got nil")
	}
}

func TestBuildExecPlanOmitsOptionalPathsWhenEmpty(t *testing.T) {
	p := &Parameters{Executable: "/bin/true"}
	plan, err := buildExecPlan(p)
	if err != nil {
		t.Fatal(err)
	}
	if plan.chdir != nil || plan.stdinPath != nil || plan.stdoutPath != nil || plan.stderrPath != nil {
		t.Fatal("buildExecPlan(): optional redirect/chdir fields should stay nil when unset")
	}
}

func TestBuildExecPlanRlimitValues(t *testing.T) {
	p := &Parameters{Executable: "/bin/true", TimeLimit: 1, MemoryLimit: 128}
	plan, err := buildExecPlan(p)
	if err != nil {
		t.Fatal(err)
	}
	if plan.cpuLimitSeconds != 2 {
		t.Errorf("cpuLimitSeconds = %d, want 2 (ceil(1 + 0.2))", plan.cpuLimitSeconds)
	}
	wantBytes := uint64(2 * 128 * 1048576)
	if plan.asLimitBytes != wantBytes {
		t.Errorf("asLimitBytes = %d, want %d", plan.asLimitBytes, wantBytes)
	}
	if plan.dataLimitBytes != wantBytes {
		t.Errorf("dataLimitBytes = %d, want %d", plan.dataLimitBytes, wantBytes)
	}
	if plan.stackLimitBytes != wantBytes {
		t.Errorf("stackLimitBytes = %d, want %d", plan.stackLimitBytes, wantBytes)
	}
}

func TestBuildExecPlanSetsChdirAndRedirects(t *testing.T) {
	p := &Parameters{
		Executable:  "/bin/true",
		WorkingDir:  "/tmp",
		StdinRedir:  "/dev/null",
		StdoutRedir: "/dev/null",
		StderrRedir: "/dev/null",
	}
	plan, err := buildExecPlan(p)
	if err != nil {
		t.Fatal(err)
	}
	if plan.chdir == nil || plan.stdinPath == nil || plan.stdoutPath == nil || plan.stderrPath == nil {
		t.Fatal("buildExecPlan(): expected chdir/redirect fields to be set")
	}
}
