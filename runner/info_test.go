package runner

import (
	"encoding/json"
	"testing"
)

func TestRunnerInfoFeaturesMarshalsAsEmptyArray(t *testing.T) {
	data, err := json.Marshal(RunnerInfo())
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if string(doc["Features"]) != "[]" {
		t.Fatalf("Features marshaled as %s, want []", doc["Features"])
	}
}

func TestRunnerInfoIsStable(t *testing.T) {
	a := RunnerInfo()
	b := RunnerInfo()
	if a.Name != b.Name || a.Version != b.Version || a.VersionCode != b.VersionCode || a.License != b.License {
		t.Fatalf("RunnerInfo() is not stable across calls: %+v != %+v", a, b)
	}
	if a.Name == "" || a.Version == "" {
		t.Fatal("RunnerInfo() returned an empty Name or Version")
	}
}
