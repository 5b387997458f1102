package main

import (
	"errors"
	"testing"
)

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		report string
		want   string
	}{
		{"report.docx", "report_synced.docx"},
		{"out/q1_valuation.docx", "out/q1_valuation_synced.docx"},
		{"noext", "noext_synced.docx"},
	}
	for _, tt := range tests {
		if got := defaultOutputPath(tt.report); got != tt.want {
			t.Errorf("defaultOutputPath(%q) = %q, want %q", tt.report, got, tt.want)
		}
	}
}

func TestExitCode(t *testing.T) {
	err := exitCode(2)
	var exit *exitError
	if !errors.As(err, &exit) {
		t.Fatalf("exitCode(2) is %T, want *exitError", err)
	}
	if exit.code != 2 {
		t.Errorf("code = %d, want 2", exit.code)
	}
	if err.Error() != "exit status 2" {
		t.Errorf("Error() = %q", err.Error())
	}
}
