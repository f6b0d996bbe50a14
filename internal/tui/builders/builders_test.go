package builders

import (
	"testing"

	"github.com/nicobailon/dropnav/internal/dropdown"
	"github.com/nicobailon/dropnav/internal/source"
)

func sampleRows() []source.Row {
	return source.ParseLines("# Citrus\nlemon\nlime\n# Other\n~banana\napple\tGreen Apple\n")
}

func TestBuildItems(t *testing.T) {
	items := BuildItems(sampleRows())
	if len(items) != 6 {
		t.Fatalf("expected 6 items, got %d", len(items))
	}
	if !items[0].IsHeader || items[0].Label != "Citrus" {
		t.Fatalf("expected Citrus header, got %+v", items[0])
	}
	if items[1].Group != items[2].Group || items[1].Group == nil {
		t.Fatalf("rows under one header must share a group")
	}
	if items[1].Group != items[0].Group {
		t.Fatalf("header and its rows must share a group")
	}
	if !items[4].Disabled() {
		t.Fatalf("banana should be disabled")
	}
	if items[5].String() != "Green Apple" || items[5].Value != "apple" {
		t.Fatalf("unexpected apple item %q/%v", items[5].String(), items[5].Value)
	}
}

func TestDisabledGroupDisablesRows(t *testing.T) {
	rows := []source.Row{
		{Value: "Old", Label: "Old", Header: true, Disabled: true},
		{Value: "x", Group: "Old", GroupDisabled: true},
	}
	items := BuildItems(rows)
	if !items[1].Disabled() {
		t.Fatalf("row in disabled group should be disabled")
	}
	items[1].SetDisabled(false)
	if !items[1].Disabled() {
		t.Fatalf("group disablement must dominate")
	}
}

func TestRowSourceFactory(t *testing.T) {
	src := NewRowSource(sampleRows())
	w := dropdown.NewWindow(src, src.Item, 1, 3)

	if w.Total() != 6 {
		t.Fatalf("expected 6 rows, got %d", w.Total())
	}
	first := w.Items()[0]
	if !first.IsHeader || first.Index() != 0 {
		t.Fatalf("expected header at 0, got %+v", first)
	}
	if got := src.At(5); got != "apple" {
		t.Fatalf("At(5) = %v", got)
	}

	src.Set([]source.Row{{Value: "only"}})
	if src.Len() != 1 || src.Row(0).Value != "only" {
		t.Fatalf("Set did not replace rows")
	}
}

func TestIndexOf(t *testing.T) {
	rows := sampleRows()
	if got := IndexOf(rows, "lime"); got != 2 {
		t.Fatalf("IndexOf(lime) = %d", got)
	}
	if got := IndexOf(rows, "banana"); got != -1 {
		t.Fatalf("disabled rows are not selectable, got %d", got)
	}
	if got := IndexOf(rows, "Citrus"); got != -1 {
		t.Fatalf("headers are not selectable, got %d", got)
	}
}

func TestFilter(t *testing.T) {
	rows := sampleRows()
	if got := Filter(rows, ""); len(got) != len(rows) {
		t.Fatalf("empty query should keep all rows")
	}

	got := Filter(rows, "lim")
	if len(got) != 1 || got[0].Value != "lime" {
		t.Fatalf("unexpected matches %+v", got)
	}

	got = Filter(rows, "Green")
	if len(got) != 1 || got[0].Value != "apple" {
		t.Fatalf("labels should be matched, got %+v", got)
	}

	for _, r := range Filter(rows, "e") {
		if r.Header {
			t.Fatalf("headers must be dropped while filtering")
		}
	}
}
