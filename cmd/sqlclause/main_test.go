package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlclause/internal/cli"
)

func TestVersionCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("version command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "sqlclause v"+cli.Version) {
		t.Errorf("version output should contain the version, got: %s", output)
	}
}

func TestRenderCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"render", "select", "--dialect", "mysql", "--output", "text", "id", "name"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("render command error = %v", err)
	}
	if !strings.Contains(buf.String(), "`id`, `name`") {
		t.Errorf("expected quoted column list, got: %s", buf.String())
	}
}

func TestUnknownCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"nonexistent"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for unknown command")
	}
}
