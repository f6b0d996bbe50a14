package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/nicobailon/dropnav/internal/dropdown"
	"github.com/nicobailon/dropnav/internal/tui/theme"
	"github.com/nicobailon/dropnav/internal/tui/views"
)

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return views.RenderLoading(m.spinner.View(), "Loading items...")
	}

	filter := ""
	if m.opts.Filter {
		filter = m.input.View()
	}

	toast := ""
	if m.toast != nil && !m.toast.expired() {
		styles := toastStyles{
			error:   theme.ErrorStyle.Bold(true),
			warning: theme.WarnStyle.Bold(true),
		}
		toast = m.toast.render(styles)
	}

	width := 0
	if m.width > 0 {
		width = m.width - 2
	}
	return views.RenderPicker(m.picker.View(), filter, toast, m.hints(), width)
}

func (m model) hints() []views.Hint {
	km := m.opts.KeyMap
	var hints []views.Hint
	for _, b := range []key.Binding{km.Down, km.Up, km.Select} {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, views.Hint{Key: h.Key, Desc: h.Desc})
	}
	if m.opts.Filter {
		hints = append(hints, views.Hint{Key: "esc", Desc: "clear / cancel"})
	} else {
		hints = append(hints, views.Hint{Key: "esc", Desc: "cancel"})
	}
	return hints
}

// pickerStyles maps the palette onto the drop-down.
func pickerStyles() dropdown.Styles {
	return dropdown.Styles{
		Title:         theme.TitleStyle,
		Header:        theme.SectionStyle,
		Text:          theme.TextStyle,
		Dim:           theme.DimStyle,
		Key:           theme.KeyStyle,
		Cursor:        theme.CursorStyle,
		Focused:       theme.FocusedRowStyle,
		Selected:      theme.SelectedRowStyle,
		Spinner:       lipgloss.NewStyle().Foreground(theme.Accent),
		IconCursor:    theme.IconCursor,
		IconSelected:  theme.IconSelected,
		IconDisabled:  theme.IconDisabled,
		IconCaretUp:   theme.IconCaretUp,
		IconCaretDown: theme.IconCaretDown,
	}
}
