package builders

import (
	"github.com/sahilm/fuzzy"

	"github.com/nicobailon/dropnav/internal/dropdown"
	"github.com/nicobailon/dropnav/internal/source"
)

// groups hands out one shared *dropdown.Group per header label so that
// disabling a header disables every row under it.
type groups map[string]*dropdown.Group

func (g groups) get(label string, disabled bool) *dropdown.Group {
	if label == "" {
		return nil
	}
	grp, ok := g[label]
	if !ok {
		grp = &dropdown.Group{Label: label, Disabled: disabled}
		g[label] = grp
	}
	return grp
}

func newItem(r source.Row, g groups) *dropdown.Item {
	if r.Header {
		it := dropdown.NewHeader(r.Display())
		it.Value = r.Value
		it.Group = g.get(r.Value, r.Disabled)
		return it
	}
	it := dropdown.NewItem(r.Value, r.Label)
	it.Group = g.get(r.Group, r.GroupDisabled)
	it.SetDisabled(r.Disabled)
	return it
}

// BuildItems turns rows into direct drop-down items.
func BuildItems(rows []source.Row) []*dropdown.Item {
	g := groups{}
	items := make([]*dropdown.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, newItem(r, g))
	}
	return items
}

// RowSource backs a windowed drop-down with rows. Replace the rows with
// Set; the window keeps calling Item for whatever is current.
type RowSource struct {
	rows   []source.Row
	groups groups
}

func NewRowSource(rows []source.Row) *RowSource {
	return &RowSource{rows: rows, groups: groups{}}
}

func (s *RowSource) Set(rows []source.Row) {
	s.rows = rows
	s.groups = groups{}
}

func (s *RowSource) Len() int                 { return len(s.rows) }
func (s *RowSource) At(index int) any         { return s.rows[index].Value }
func (s *RowSource) Row(index int) source.Row { return s.rows[index] }

// Item is the window's factory.
func (s *RowSource) Item(value any, index int) *dropdown.Item {
	return newItem(s.rows[index], s.groups)
}

// IndexOf returns the index of the first selectable row with value.
func IndexOf(rows []source.Row, value string) int {
	for i, r := range rows {
		if r.Value == value && !r.Header && !r.Disabled && !r.GroupDisabled {
			return i
		}
	}
	return -1
}

type rowLabels []source.Row

func (r rowLabels) String(i int) string { return r[i].Display() }
func (r rowLabels) Len() int            { return len(r) }

// Filter returns the rows matching query, best match first. Headers are
// dropped while a query is active.
func Filter(rows []source.Row, query string) []source.Row {
	if query == "" {
		return rows
	}
	candidates := make(rowLabels, 0, len(rows))
	for _, r := range rows {
		if !r.Header {
			candidates = append(candidates, r)
		}
	}
	matches := fuzzy.FindFrom(query, candidates)
	out := make([]source.Row, 0, len(matches))
	for _, m := range matches {
		out = append(out, candidates[m.Index])
	}
	return out
}
