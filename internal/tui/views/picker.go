package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nicobailon/dropnav/internal/tui/theme"
)

// Hint is one key and what it does, shown in the footer.
type Hint struct {
	Key  string
	Desc string
}

// RenderPicker frames the drop-down with the logo, an optional filter line
// and the key hints. toast may be empty.
func RenderPicker(list, filter, toast string, hints []Hint, width int) string {
	var b strings.Builder
	b.WriteString(theme.Logo)
	b.WriteString("\n\n")
	if filter != "" {
		b.WriteString(filter)
		b.WriteString("\n")
		b.WriteString(RenderDivider(width))
		b.WriteString("\n")
	}
	b.WriteString(list)

	frame := theme.ListFrameStyle
	if width > 0 {
		frame = frame.Width(width)
	}
	out := frame.Render(b.String())
	if toast != "" {
		out = toast + "\n" + out
	}
	return out + "\n" + RenderHints(hints)
}

func RenderLoading(spinner, label string) string {
	return lipgloss.NewStyle().Padding(1, 2).Render(spinner + " " + theme.SubTextStyle.Render(label))
}

func RenderDivider(width int) string {
	if width < 8 {
		width = 24
	}
	return theme.SeparatorStyle.Render(strings.Repeat("─", width-4))
}

func RenderHints(hints []Hint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, theme.KeyStyle.Render(h.Key)+" "+theme.DimStyle.Render(h.Desc))
	}
	return " " + strings.Join(parts, theme.SeparatorStyle.Render("  ·  "))
}
