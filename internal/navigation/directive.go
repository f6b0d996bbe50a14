// Package navigation translates key presses into drop-down container calls.
// It knows nothing about how the container stores its items.
package navigation

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ActionKey is a key that acts on the focused item rather than moving focus.
type ActionKey int

const (
	ActionEnter ActionKey = iota
	ActionSpace
	ActionTab
	ActionEscape
)

func (k ActionKey) String() string {
	switch k {
	case ActionEnter:
		return "enter"
	case ActionSpace:
		return "space"
	case ActionTab:
		return "tab"
	case ActionEscape:
		return "escape"
	}
	return "unknown"
}

// Target is the container surface the directive drives.
type Target interface {
	Collapsed() bool
	NavigateFirst() tea.Cmd
	NavigateLast() tea.Cmd
	NavigateNext() tea.Cmd
	NavigatePrev() tea.Cmd
	OnItemActionKey(key ActionKey, event tea.Msg) (tea.Cmd, error)
}

// ErrorMsg carries a failure out of a key handler so the host can show it.
type ErrorMsg struct {
	Err     error
	Context string
}

func NewErrorCmd(err error, context string) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err, Context: context}
	}
}

type Directive struct {
	KeyMap KeyMap
}

func New(km KeyMap) Directive {
	return Directive{KeyMap: km}
}

// Handle applies msg to target. It reports whether the key was consumed;
// keys are never consumed while the target is collapsed.
func (d Directive) Handle(target Target, msg tea.KeyMsg) (bool, tea.Cmd) {
	if target == nil || target.Collapsed() {
		return false, nil
	}

	switch {
	case key.Matches(msg, d.KeyMap.Down):
		return true, target.NavigateNext()
	case key.Matches(msg, d.KeyMap.Up):
		return true, target.NavigatePrev()
	case key.Matches(msg, d.KeyMap.First):
		return true, target.NavigateFirst()
	case key.Matches(msg, d.KeyMap.Last):
		return true, target.NavigateLast()
	case key.Matches(msg, d.KeyMap.Select):
		return true, d.action(target, ActionEnter, msg)
	case key.Matches(msg, d.KeyMap.Space):
		return true, d.action(target, ActionSpace, msg)
	case key.Matches(msg, d.KeyMap.Tab):
		return true, d.action(target, ActionTab, msg)
	case key.Matches(msg, d.KeyMap.Close):
		return true, d.action(target, ActionEscape, msg)
	}
	return false, nil
}

func (d Directive) action(target Target, k ActionKey, msg tea.KeyMsg) tea.Cmd {
	cmd, err := target.OnItemActionKey(k, msg)
	if err != nil {
		if cmd == nil {
			return NewErrorCmd(err, k.String())
		}
		return tea.Batch(cmd, NewErrorCmd(err, k.String()))
	}
	return cmd
}
