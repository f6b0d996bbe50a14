package tui

import (
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nicobailon/dropnav/internal/navigation"
)

func handleKey(m model, msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, nil
	case "esc":
		if m.opts.Filter && m.input.Value() != "" {
			m.input.SetValue("")
			return m, m.applyFilter()
		}
		m.quitting = true
		return m, nil
	}

	if !m.ready {
		return m, nil
	}

	if len(m.rows) > 0 {
		var handled bool
		var cmd tea.Cmd
		m.picker, handled, cmd = m.picker.HandleKey(msg)
		if handled {
			return m, cmd
		}
	}

	if !m.opts.Filter {
		return m, nil
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.applyFilter())
}

// filterSafe drops single-character keys from km so they reach the filter
// input instead of moving focus.
func filterSafe(km navigation.KeyMap) navigation.KeyMap {
	for _, b := range []*key.Binding{&km.Up, &km.Down, &km.First, &km.Last, &km.Select, &km.Space, &km.Tab, &km.Close} {
		var keep []string
		for _, k := range b.Keys() {
			if utf8.RuneCountInString(k) == 1 {
				continue
			}
			keep = append(keep, k)
		}
		if len(keep) == 0 {
			b.SetEnabled(false)
			continue
		}
		b.SetKeys(keep...)
	}
	return km
}
