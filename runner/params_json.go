package runner

import (
	"encoding/json"
)

// paramsDoc mirrors the external parameters document field names from the
// spec (hyphenated). env values use json.RawMessage so that non-string
// values can be detected and silently skipped rather than rejected.
type paramsDoc struct {
	TimeLimit     *float64                   `json:"time-limit"`
	IdleLimit     *float64                   `json:"idle-limit"`
	MemoryLimit   *float64                   `json:"memory-limit"`
	Executable    *string                    `json:"executable"`
	Args          *[]string                  `json:"args"`
	Env           map[string]json.RawMessage `json:"env"`
	ClearEnv      *bool                      `json:"clear-env"`
	WorkingDir    *string                    `json:"working-dir"`
	StdinRedir    *string                    `json:"stdin-redir"`
	StdoutRedir   *string                    `json:"stdout-redir"`
	StderrRedir   *string                    `json:"stderr-redir"`
	IsolateDir    *string                    `json:"isolate-dir"`
	IsolatePolicy *string                    `json:"isolate-policy"`
}

// UnmarshalJSON applies the defaulting rules while decoding: missing
// numeric fields keep whatever the receiver already held (so callers can
// seed it with DefaultParameters() and a configured time-limit default
// before decoding), idle-limit defaults to 3.5x time-limit when absent,
// args absent means empty, env absent leaves the inherited environment
// alone, and env values that aren't JSON strings are dropped rather than
// causing a decode error.
func (p *Parameters) UnmarshalJSON(data []byte) error {
	doc := paramsDoc{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	if doc.TimeLimit != nil {
		p.TimeLimit = *doc.TimeLimit
	}
	if doc.IdleLimit != nil {
		p.IdleLimit = *doc.IdleLimit
	} else if p.TimeLimit > 0 {
		p.IdleLimit = p.TimeLimit * 3.5
	}
	if doc.MemoryLimit != nil {
		p.MemoryLimit = *doc.MemoryLimit
	}
	if doc.Executable != nil {
		p.Executable = *doc.Executable
	}
	if doc.Args != nil {
		p.Args = *doc.Args
	} else {
		p.Args = nil
	}
	if doc.Env != nil {
		env := make(map[string]string, len(doc.Env))
		for name, raw := range doc.Env {
			if string(raw) == "null" {
				continue
			}
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				continue // not convertible to string: silently skipped, per spec
			}
			env[name] = s
		}
		p.Env = env
	}
	if doc.ClearEnv != nil {
		p.ClearEnv = *doc.ClearEnv
	}
	if doc.WorkingDir != nil {
		p.WorkingDir = *doc.WorkingDir
	}
	if doc.StdinRedir != nil {
		p.StdinRedir = *doc.StdinRedir
	}
	if doc.StdoutRedir != nil {
		p.StdoutRedir = *doc.StdoutRedir
	}
	if doc.StderrRedir != nil {
		p.StderrRedir = *doc.StderrRedir
	}
	if doc.IsolateDir != nil {
		p.IsolateDir = *doc.IsolateDir
	}
	if doc.IsolatePolicy != nil {
		policy, err := parseIsolatePolicy(*doc.IsolatePolicy)
		if err != nil {
			return err
		}
		p.IsolatePolicy = policy
	} else {
		p.IsolatePolicy = IsolateNormal
	}
	return nil
}

// MarshalJSON renders the parameters document, mainly useful for logging
// and for the CLI's --params round-trip tests.
func (p Parameters) MarshalJSON() ([]byte, error) {
	env := make(map[string]string, len(p.Env))
	for k, v := range p.Env {
		env[k] = v
	}
	doc := struct {
		TimeLimit     float64           `json:"time-limit"`
		IdleLimit     float64           `json:"idle-limit"`
		MemoryLimit   float64           `json:"memory-limit"`
		Executable    string            `json:"executable"`
		Args          []string          `json:"args"`
		Env           map[string]string `json:"env"`
		ClearEnv      bool              `json:"clear-env"`
		WorkingDir    string            `json:"working-dir"`
		StdinRedir    string            `json:"stdin-redir"`
		StdoutRedir   string            `json:"stdout-redir"`
		StderrRedir   string            `json:"stderr-redir"`
		IsolateDir    string            `json:"isolate-dir"`
		IsolatePolicy string            `json:"isolate-policy"`
	}{
		TimeLimit:     p.TimeLimit,
		IdleLimit:     p.IdleLimit,
		MemoryLimit:   p.MemoryLimit,
		Executable:    p.Executable,
		Args:          p.Args,
		Env:           env,
		ClearEnv:      p.ClearEnv,
		WorkingDir:    p.WorkingDir,
		StdinRedir:    p.StdinRedir,
		StdoutRedir:   p.StdoutRedir,
		StderrRedir:   p.StderrRedir,
		IsolateDir:    p.IsolateDir,
		IsolatePolicy: p.IsolatePolicy.String(),
	}
	return json.Marshal(doc)
}
