package runner

import "encoding/json"

// resultsDoc mirrors the external results document field names from the
// spec (hyphenated, signal-name present only when signal != 0).
type resultsDoc struct {
	Time       float64 `json:"time"`
	ClockTime  float64 `json:"clock-time"`
	Memory     float64 `json:"memory"`
	ExitCode   int     `json:"exitcode"`
	Signal     int     `json:"signal"`
	SignalName *string `json:"signal-name,omitempty"`
	Status     string  `json:"status"`
	Comment    string  `json:"comment"`
}

// MarshalJSON renders the external results document: hyphenated field
// names, signal-name present only when a signal actually terminated the
// child.
func (r Results) MarshalJSON() ([]byte, error) {
	doc := resultsDoc{
		Time:      r.Time,
		ClockTime: r.ClockTime,
		Memory:    r.Memory,
		ExitCode:  r.ExitCode,
		Signal:    r.Signal,
		Status:    r.Status.String(),
		Comment:   r.Comment,
	}
	if r.Signal != 0 {
		name := r.SignalName
		doc.SignalName = &name
	}
	return json.Marshal(doc)
}

// UnmarshalJSON parses the results document produced by MarshalJSON,
// making Results round-trip through JSON (testable property: idempotence
// of results serialization).
func (r *Results) UnmarshalJSON(data []byte) error {
	var doc resultsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	status, err := parseRunStatus(doc.Status)
	if err != nil {
		return err
	}
	*r = Results{
		Time:      doc.Time,
		ClockTime: doc.ClockTime,
		Memory:    doc.Memory,
		ExitCode:  doc.ExitCode,
		Signal:    doc.Signal,
		Status:    status,
		Comment:   doc.Comment,
	}
	if doc.SignalName != nil {
		r.SignalName = *doc.SignalName
	}
	return nil
}

func parseRunStatus(s string) (RunStatus, error) {
	for i, name := range runStatusStrings {
		if name == s {
			return RunStatus(i), nil
		}
	}
	return StatusNone, newRunnerError("invalid status in results document: "+s, nil)
}
