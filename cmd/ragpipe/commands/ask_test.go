// ABOUTME: Tests for ask command structure
// ABOUTME: Verifies flags and argument validation

package commands

import (
	"testing"
)

func TestNewAskCmd(t *testing.T) {
	cmd := NewAskCmd()

	if cmd.Use != "ask <question>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "ask <question>")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Long == "" {
		t.Error("Long description should not be empty")
	}
}

func TestAskCmd_LimitFlag(t *testing.T) {
	cmd := NewAskCmd()

	limitFlag := cmd.Flags().Lookup("limit")
	if limitFlag == nil {
		t.Fatal("--limit flag not found")
	}

	if limitFlag.DefValue != "5" {
		t.Errorf("--limit default = %q, want %q", limitFlag.DefValue, "5")
	}
}

func TestAskCmd_ArgsValidation(t *testing.T) {
	cmd := NewAskCmd()

	if cmd.Args == nil {
		t.Error("Args validator should be set")
	}
	if err := cmd.Args(cmd, nil); err == nil {
		t.Error("missing question should be rejected")
	}
	if err := cmd.Args(cmd, []string{"q"}); err != nil {
		t.Errorf("single question should be accepted, got %v", err)
	}
}
