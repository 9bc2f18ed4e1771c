// ABOUTME: Tests for ingest command structure
// ABOUTME: Verifies flags, argument validation, and examples

package commands

import (
	"testing"
)

func TestNewIngestCmd(t *testing.T) {
	cmd := NewIngestCmd()

	if cmd.Use != "ingest [text]" {
		t.Errorf("Use = %q, want %q", cmd.Use, "ingest [text]")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Long == "" {
		t.Error("Long description should not be empty")
	}
}

func TestIngestCmd_Flags(t *testing.T) {
	cmd := NewIngestCmd()

	for _, name := range []string{"file", "title", "source", "type"} {
		t.Run(name, func(t *testing.T) {
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				t.Fatalf("--%s flag not found", name)
			}
			if flag.DefValue != "" {
				t.Errorf("--%s default = %q, want empty", name, flag.DefValue)
			}
		})
	}
}

func TestIngestCmd_ArgsValidation(t *testing.T) {
	cmd := NewIngestCmd()

	// At most one inline text argument
	if cmd.Args == nil {
		t.Error("Args validator should be set")
	}
	if err := cmd.Args(cmd, []string{"one", "two"}); err == nil {
		t.Error("two positional args should be rejected")
	}
	if err := cmd.Args(cmd, nil); err != nil {
		t.Errorf("zero args (stdin mode) should be accepted, got %v", err)
	}
}

func TestIngestCmd_Examples(t *testing.T) {
	cmd := NewIngestCmd()

	expectedParts := []string{
		"--file",
		"--title",
	}

	for _, part := range expectedParts {
		if !findSubstring(cmd.Long, part) {
			t.Errorf("Long description should contain %q", part)
		}
	}
}
