package dropdown

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nicobailon/dropnav/internal/navigation"
)

// Model hosts a Dropdown inside a bubbletea program.
type Model struct {
	Dropdown    *Dropdown
	Directive   navigation.Directive
	Title       string
	Placeholder string
	Width       int
	Styles      Styles

	spinner spinner.Model
}

func NewModel(d *Dropdown, km navigation.KeyMap) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		Dropdown:    d,
		Directive:   navigation.New(km),
		Placeholder: "nothing selected",
		Styles:      DefaultStyles(),
		spinner:     sp,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update routes keys through the directive and everything else to the
// drop-down, then reconciles item state.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	case tea.KeyMsg:
		_, cmd := m.Directive.Handle(m.Dropdown, msg)
		cmds = append(cmds, cmd)
	default:
		cmds = append(cmds, m.Dropdown.HandleMsg(msg))
	}
	cmds = append(cmds, m.check())
	return m, tea.Batch(cmds...)
}

// HandleKey is Update for hosts that need to know whether the key was
// consumed, e.g. to forward it to a text input otherwise.
func (m Model) HandleKey(msg tea.KeyMsg) (Model, bool, tea.Cmd) {
	handled, cmd := m.Directive.Handle(m.Dropdown, msg)
	return m, handled, tea.Batch(cmd, m.check())
}

func (m Model) check() tea.Cmd {
	if err := m.Dropdown.Check(); err != nil {
		return navigation.NewErrorCmd(err, "check")
	}
	return nil
}
