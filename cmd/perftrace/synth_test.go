package main

import "testing"

func TestOutputTraceName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"pipeline.toml", "pipeline.json"},
		{"dir/run.toml", "dir/run.json"},
		{"bare", "bare.json"},
	}
	for _, tc := range cases {
		if got := outputTraceName(tc.in); got != tc.want {
			t.Fatalf("outputTraceName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestApplyColorModeRejectsUnknown(t *testing.T) {
	if err := applyColorMode("sometimes"); err == nil {
		t.Fatalf("expected error for unknown color mode")
	}
	if err := applyColorMode("off"); err != nil {
		t.Fatalf("applyColorMode(off): %v", err)
	}
}
