package shell

import (
	"context"
	"strings"
	"testing"
)

func TestExecCommanderRun(t *testing.T) {
	c := &ExecCommander{}
	out, err := c.Run(context.Background(), "sh", "-c", "echo hello; echo noise >&2")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(string(out)) != "hello" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestExecCommanderRunDir(t *testing.T) {
	dir := t.TempDir()
	out, err := (&ExecCommander{}).RunDir(context.Background(), dir, "pwd")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(string(out)), dir[strings.LastIndex(dir, "/"):]) {
		t.Fatalf("ran in %q, want %q", out, dir)
	}
}

func TestExecCommanderFailureIncludesStderr(t *testing.T) {
	_, err := (&ExecCommander{}).Run(context.Background(), "sh", "-c", "echo broken >&2; exit 3")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Fatalf("stderr missing from %v", err)
	}
}
