// ABOUTME: Tests for search command
// ABOUTME: Verifies search command structure and flag validation

package commands

import (
	"testing"
)

func TestNewSearchCmd(t *testing.T) {
	cmd := NewSearchCmd()

	if cmd.Use != "search <query>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "search <query>")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Long == "" {
		t.Error("Long description should not be empty")
	}
}

func TestSearchCmd_LimitFlag(t *testing.T) {
	cmd := NewSearchCmd()

	limitFlag := cmd.Flags().Lookup("limit")
	if limitFlag == nil {
		t.Fatal("--limit flag not found")
	}

	if limitFlag.DefValue != "5" {
		t.Errorf("--limit default = %q, want %q", limitFlag.DefValue, "5")
	}
}

func TestSearchCmd_ThresholdFlag(t *testing.T) {
	cmd := NewSearchCmd()

	thresholdFlag := cmd.Flags().Lookup("threshold")
	if thresholdFlag == nil {
		t.Fatal("--threshold flag not found")
	}

	if thresholdFlag.DefValue != "-1" {
		t.Errorf("--threshold default = %q, want %q", thresholdFlag.DefValue, "-1")
	}
}

func TestSearchCmd_ArgsValidation(t *testing.T) {
	cmd := NewSearchCmd()

	// Should require exactly 1 argument
	if cmd.Args == nil {
		t.Error("Args validator should be set")
	}
	if err := cmd.Args(cmd, nil); err == nil {
		t.Error("missing query should be rejected")
	}
}

func TestSearchCmd_Examples(t *testing.T) {
	cmd := NewSearchCmd()

	// Long description should contain examples
	expectedParts := []string{
		"--limit",
		"--format json",
	}

	for _, part := range expectedParts {
		if !findSubstring(cmd.Long, part) {
			t.Errorf("Long description should contain %q", part)
		}
	}
}
