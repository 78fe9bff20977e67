package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command with captured output. The user config
// directory is pointed at a temp dir so tests never read a real config
// or history database.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func Test_Root_Help(t *testing.T) {
	stdout, _, err := runCLI(t)
	if err != nil {
		t.Fatalf("bare invocation: %v", err)
	}
	for _, sub := range []string{"image", "video", "history", "config"} {
		if !strings.Contains(stdout, sub) {
			t.Fatalf("help output missing %q:\n%s", sub, stdout)
		}
	}
}

func Test_Root_UnknownLogLevel(t *testing.T) {
	_, _, err := runCLI(t, "--log-level", "shout", "history")
	if err == nil {
		t.Fatal("expected an error for an unknown log level")
	}
}
