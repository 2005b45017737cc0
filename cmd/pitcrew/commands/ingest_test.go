// ABOUTME: Tests for ingest command
// ABOUTME: Verifies flag handling and end-to-end ingestion into a temp knowledge base

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewIngestCmd(t *testing.T) {
	cmd := NewIngestCmd()

	if !strings.HasPrefix(cmd.Use, "ingest") {
		t.Errorf("Use = %q, want ingest prefix", cmd.Use)
	}

	if cmd.Flags().Lookup("source") == nil {
		t.Error("--source flag not found")
	}
	if flag := cmd.Flags().Lookup("chunk-tokens"); flag == nil {
		t.Error("--chunk-tokens flag not found")
	} else if flag.DefValue != "500" {
		t.Errorf("--chunk-tokens default = %q, want %q", flag.DefValue, "500")
	}
}

func TestIngestCmd_RequiresArgs(t *testing.T) {
	cmd := NewIngestCmd()
	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("expected an error when no files are given")
	}
}

func TestIngestCmd_LoadsFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PITCREW_KB_PATH", filepath.Join(dir, "kb.db"))

	docPath := filepath.Join(dir, "manual.txt")
	doc := "The 2024 Silverado 1500 has a towing capacity of 13,300 pounds.\n\nOil capacity is 8 quarts of 0W-20 synthetic."
	if err := os.WriteFile(docPath, []byte(doc), 0644); err != nil {
		t.Fatalf("writing doc: %v", err)
	}

	cmd := NewIngestCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{docPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(output.String(), "Ingested") {
		t.Errorf("expected ingest summary, got: %s", output.String())
	}
}

func TestIngestCmd_MissingFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PITCREW_KB_PATH", filepath.Join(dir, "kb.db"))

	cmd := NewIngestCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(dir, "missing.txt")})

	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for a missing file")
	}
}
