package cli

import (
	"strings"
	"testing"
)

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2024-01-01")

	if version != "1.0.0" {
		t.Errorf("version = %q, want %q", version, "1.0.0")
	}
	if commit != "abc123" {
		t.Errorf("commit = %q, want %q", commit, "abc123")
	}
	if date != "2024-01-01" {
		t.Errorf("date = %q, want %q", date, "2024-01-01")
	}
}

func TestKindList(t *testing.T) {
	got := kindList()
	for _, want := range []string{"class", "use-case", "activity", "sequence", "state-machine", "component"} {
		if !strings.Contains(got, want) {
			t.Errorf("kindList() = %q, missing %q", got, want)
		}
	}
}
