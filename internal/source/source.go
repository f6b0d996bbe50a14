// Package source loads picker rows from YAML item files, plain line lists
// and shell command output.
package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	dnerrors "github.com/nicobailon/dropnav/internal/errors"
	"github.com/nicobailon/dropnav/internal/logging"
	"github.com/nicobailon/dropnav/internal/shell"
)

var log = logging.NewLogger("source")

// Row is one entry of a list. Rows following a header belong to its group.
type Row struct {
	Value         string
	Label         string
	Header        bool
	Disabled      bool
	Group         string
	GroupDisabled bool
}

// Display is the label, falling back to the value.
func (r Row) Display() string {
	if r.Label != "" {
		return r.Label
	}
	return r.Value
}

type List struct {
	// Name identifies the source, e.g. for remembering the last pick.
	Name  string
	Title string
	Rows  []Row
}

// Selectable counts rows that are neither headers nor disabled.
func (l *List) Selectable() int {
	n := 0
	for _, r := range l.Rows {
		if !r.Header && !r.Disabled && !r.GroupDisabled {
			n++
		}
	}
	return n
}

type Loader interface {
	Load(ctx context.Context) (*List, error)
}

// FileLoader reads a YAML item file (.yaml, .yml) or a plain line list.
type FileLoader struct {
	Path string
}

func (f FileLoader) Load(ctx context.Context) (*List, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, dnerrors.SourceInvalid(f.Path, err)
	}
	var list *List
	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".yaml", ".yml":
		list, err = ParseYAML(data)
		if err != nil {
			return nil, dnerrors.SourceInvalid(f.Path, err)
		}
	default:
		list = &List{Rows: ParseLines(string(data))}
	}
	list.Name = f.Path
	log.WithFields(logrus.Fields{"path": f.Path, "rows": len(list.Rows)}).Debug("loaded item file")
	return list, nil
}

// ReaderLoader reads a plain line list, typically stdin.
type ReaderLoader struct {
	Name   string
	Reader io.Reader
}

func (r ReaderLoader) Load(ctx context.Context) (*List, error) {
	data, err := io.ReadAll(r.Reader)
	if err != nil {
		return nil, dnerrors.SourceInvalid(r.Name, err)
	}
	return &List{Name: r.Name, Rows: ParseLines(string(data))}, nil
}

// ExecLoader runs Command through sh and reads its stdout as a line list.
type ExecLoader struct {
	Command   string
	Dir       string
	Commander shell.Commander
}

func (e ExecLoader) Load(ctx context.Context) (*List, error) {
	c := e.Commander
	if c == nil {
		c = &shell.ExecCommander{}
	}
	var (
		out []byte
		err error
	)
	if e.Dir != "" {
		out, err = c.RunDir(ctx, e.Dir, "sh", "-c", e.Command)
	} else {
		out, err = c.Run(ctx, "sh", "-c", e.Command)
	}
	if err != nil {
		return nil, dnerrors.SourceInvalid(e.Command, err)
	}
	list := &List{Name: "exec:" + e.Command, Rows: ParseLines(string(out))}
	log.WithFields(logrus.Fields{"command": e.Command, "rows": len(list.Rows)}).Debug("loaded command output")
	return list, nil
}
