package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type Commander interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	RunDir(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecCommander runs real processes. Only stdout is returned; stderr is
// folded into the error when the command fails.
type ExecCommander struct{}

func (e *ExecCommander) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return e.RunDir(ctx, "", name, args...)
}

func (e *ExecCommander) RunDir(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}
