package dropdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	d := m.Dropdown
	if d.Collapsed() || d.State() == StateClosing {
		return m.summary()
	}

	var b strings.Builder
	if m.Title != "" {
		b.WriteString(m.Styles.Title.Render(m.Title))
		b.WriteString("\n")
	}

	first := d.ScrollTop() / d.ItemSize()
	rows := d.VisibleRows()
	total := d.Len()

	if first > 0 {
		b.WriteString(m.Styles.Dim.Render(fmt.Sprintf("%s %d more", m.Styles.IconCaretUp, first)))
		b.WriteString("\n")
	}
	for idx := first; idx < first+rows && idx < total; idx++ {
		b.WriteString(m.renderRow(idx))
		b.WriteString("\n")
	}
	if rest := total - (first + rows); rest > 0 {
		b.WriteString(m.Styles.Dim.Render(fmt.Sprintf("%s %d more", m.Styles.IconCaretDown, rest)))
		b.WriteString("\n")
	}
	if d.Windowed() && d.Window().Loading() {
		b.WriteString(m.Styles.Spinner.Render(m.spinner.View()) + m.Styles.Dim.Render(" loading"))
		b.WriteString("\n")
	}
	if total == 0 {
		b.WriteString(m.Styles.Dim.Render("no items"))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) summary() string {
	label := m.Styles.Dim.Render(m.Placeholder)
	if sel := m.Dropdown.SelectedItem(); sel != nil {
		label = m.Styles.Text.Render(m.labelFor(sel))
	}
	caret := m.Styles.Key.Render(m.Styles.IconCaretDown)
	if m.Title != "" {
		return m.Styles.Title.Render(m.Title) + " " + label + " " + caret
	}
	return label + " " + caret
}

func (m Model) labelFor(ref Ref) string {
	if it := m.Dropdown.addr.realized(ref); it != nil {
		return it.String()
	}
	return fmt.Sprint(ref.RefValue())
}

func (m Model) rowAt(index int) *Item {
	d := m.Dropdown
	if d.Windowed() {
		return d.Window().realized(index)
	}
	if index < len(d.items) {
		return d.items[index]
	}
	return nil
}

func (m Model) renderRow(index int) string {
	it := m.rowAt(index)
	if it == nil {
		return m.Styles.Dim.Render("  …")
	}
	if it.IsHeader {
		return m.Styles.Header.Render(it.String())
	}

	cursor := " "
	if m.hasCursor(it) {
		cursor = m.Styles.Cursor.Render(m.Styles.IconCursor)
	}
	label := "  " + it.String()
	mark := ""
	if it.Selected() {
		mark = " " + m.Styles.IconSelected
	}

	style := m.Styles.Text
	switch {
	case it.Disabled():
		style = m.Styles.Dim
		mark = " " + m.Styles.IconDisabled
	case it.Focused():
		style = m.Styles.Focused
	case it.Selected():
		style = m.Styles.Selected
	}
	if m.Width > 0 {
		style = style.Width(m.Width - lipgloss.Width(cursor))
	}
	return cursor + style.Render(label+mark)
}

// hasCursor reports whether it owns the cursor marker: the element focus
// when item focus is allowed, the focused row otherwise.
func (m Model) hasCursor(it *Item) bool {
	d := m.Dropdown
	ref := d.FocusedItem()
	if d.allowItemsFocus {
		ref = d.ElementFocus()
	}
	if ref == nil {
		return false
	}
	if other, ok := ref.(*Item); ok {
		return other == it
	}
	return sameRow(ref, it)
}
