package dropdown

import "github.com/charmbracelet/lipgloss"

// Styles controls how Model renders. Hosts with a palette replace it after
// NewModel.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Text     lipgloss.Style
	Dim      lipgloss.Style
	Key      lipgloss.Style
	Cursor   lipgloss.Style
	Focused  lipgloss.Style
	Selected lipgloss.Style
	Spinner  lipgloss.Style

	IconCursor    string
	IconSelected  string
	IconDisabled  string
	IconCaretUp   string
	IconCaretDown string
}

// DefaultStyles uses only bold, faint and reverse so it reads on any
// terminal background.
func DefaultStyles() Styles {
	return Styles{
		Title:         lipgloss.NewStyle().Bold(true),
		Header:        lipgloss.NewStyle().Bold(true).Underline(true),
		Text:          lipgloss.NewStyle(),
		Dim:           lipgloss.NewStyle().Faint(true),
		Key:           lipgloss.NewStyle().Bold(true),
		Cursor:        lipgloss.NewStyle().Bold(true),
		Focused:       lipgloss.NewStyle().Reverse(true),
		Selected:      lipgloss.NewStyle().Bold(true),
		Spinner:       lipgloss.NewStyle(),
		IconCursor:    ">",
		IconSelected:  "*",
		IconDisabled:  "x",
		IconCaretUp:   "^",
		IconCaretDown: "v",
	}
}
