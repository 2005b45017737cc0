// ABOUTME: Tests for inspect command
// ABOUTME: Verifies table output for trees, safety rules, and phrases

package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewInspectCmd(t *testing.T) {
	cmd := NewInspectCmd()

	if !strings.HasPrefix(cmd.Use, "inspect") {
		t.Errorf("Use = %q, want inspect prefix", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}
}

func TestInspectCmd_ShowsAllTables(t *testing.T) {
	cmd := NewInspectCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got := output.String()
	for _, want := range []string{
		"Diagnostic trees:",
		"engine_warning_light",
		"Safety rules",
		"brake",
		"Escalation phrases:",
		"user request (8)",
		"sensitive (10)",
		"safety (9)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestInspectCmd_SingleTable(t *testing.T) {
	cmd := NewInspectCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"safety"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got := output.String()
	if !strings.Contains(got, "Safety rules") {
		t.Error("expected safety rules in output")
	}
	if strings.Contains(got, "Diagnostic trees:") {
		t.Error("did not expect diagnostic trees in output")
	}
}
