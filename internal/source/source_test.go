package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dnerrors "github.com/nicobailon/dropnav/internal/errors"
)

func TestParseLines(t *testing.T) {
	rows := ParseLines("# Fruit\napple\n~banana\r\n\ncherry\tCherry Red\n# Veg\nleek\n")

	require.Len(t, rows, 6)
	assert.Equal(t, Row{Value: "Fruit", Label: "Fruit", Header: true}, rows[0])
	assert.Equal(t, Row{Value: "apple", Group: "Fruit"}, rows[1])
	assert.Equal(t, Row{Value: "banana", Disabled: true, Group: "Fruit"}, rows[2])
	assert.Equal(t, "Cherry Red", rows[3].Display())
	assert.Equal(t, "cherry", rows[3].Value)
	assert.True(t, rows[4].Header)
	assert.Equal(t, "Veg", rows[5].Group)
}

func TestParseLinesHashWithoutSpaceIsValue(t *testing.T) {
	rows := ParseLines("#channel\n")
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Header)
	assert.Equal(t, "#channel", rows[0].Value)
}

func TestParseYAMLDocument(t *testing.T) {
	list, err := ParseYAML([]byte(`
title: Pick a fruit
items:
  - value: apple
    label: Apple
  - header: Citrus
    disabled: true
    items:
      - value: lemon
      - label: Lime
  - value: banana
    disabled: true
`))
	require.NoError(t, err)
	assert.Equal(t, "Pick a fruit", list.Title)
	require.Len(t, list.Rows, 5)

	assert.Equal(t, "Apple", list.Rows[0].Display())
	assert.True(t, list.Rows[1].Header)
	assert.True(t, list.Rows[2].GroupDisabled)
	assert.Equal(t, "Citrus", list.Rows[2].Group)
	assert.Equal(t, "Lime", list.Rows[3].Value)
	assert.True(t, list.Rows[4].Disabled)
	assert.Equal(t, 1, list.Selectable())
}

func TestParseYAMLSequence(t *testing.T) {
	list, err := ParseYAML([]byte("- value: a\n- value: b\n"))
	require.NoError(t, err)
	assert.Len(t, list.Rows, 2)
	assert.Empty(t, list.Title)
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"empty entry", "items:\n  - disabled: true\n", "neither value nor label"},
		{"items without header", "items:\n  - value: x\n    items:\n      - value: y\n", "no header"},
		{"nested header", "items:\n  - header: A\n    items:\n      - header: B\n", "nested"},
		{"not yaml", "items: [unterminated", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "items.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("items:\n  - value: one\n"), 0o644))
	txtPath := filepath.Join(dir, "items.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("one\ntwo\n"), 0o644))

	list, err := FileLoader{Path: yamlPath}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, yamlPath, list.Name)
	assert.Len(t, list.Rows, 1)

	list, err = FileLoader{Path: txtPath}.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, list.Rows, 2)

	_, err = FileLoader{Path: filepath.Join(dir, "missing.txt")}.Load(context.Background())
	assert.True(t, dnerrors.Is(err, dnerrors.ErrCodeSourceInvalid))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("items:\n  - {}\n"), 0o644))
	_, err = FileLoader{Path: bad}.Load(context.Background())
	assert.True(t, dnerrors.Is(err, dnerrors.ErrCodeSourceInvalid))
}

func TestReaderLoader(t *testing.T) {
	list, err := ReaderLoader{Name: "stdin", Reader: strings.NewReader("a\nb\nc\n")}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stdin", list.Name)
	assert.Len(t, list.Rows, 3)
}

type fakeCommander struct {
	out  string
	err  error
	dir  string
	args []string
}

func (f *fakeCommander) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.args = append([]string{name}, args...)
	return []byte(f.out), f.err
}

func (f *fakeCommander) RunDir(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	f.dir = dir
	return f.Run(ctx, name, args...)
}

func TestExecLoader(t *testing.T) {
	fc := &fakeCommander{out: "main\n~locked\n"}
	list, err := ExecLoader{Command: "git branch", Dir: "/repo", Commander: fc}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"sh", "-c", "git branch"}, fc.args)
	assert.Equal(t, "/repo", fc.dir)
	assert.Equal(t, "exec:git branch", list.Name)
	require.Len(t, list.Rows, 2)
	assert.True(t, list.Rows[1].Disabled)

	fc = &fakeCommander{err: errors.New("exit status 1")}
	_, err = ExecLoader{Command: "false", Commander: fc}.Load(context.Background())
	assert.True(t, dnerrors.Is(err, dnerrors.ErrCodeSourceInvalid))
	assert.Empty(t, fc.dir)
}
