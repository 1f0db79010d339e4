package version

import "testing"

func TestVersionDefaults(t *testing.T) {
	if Version == "" {
		t.Fatalf("Version should have a default value")
	}
	// GitCommit and BuildDate are optional ldflags overrides.
	_ = GitCommit
	_ = BuildDate
}
