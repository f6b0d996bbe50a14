package navigation

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings the directive translates into container calls.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	First  key.Binding
	Last   key.Binding
	Select key.Binding
	Space  key.Binding
	Tab    key.Binding
	Close  key.Binding
}

// DefaultKeyMap uses arrow keys only, so it can sit under a text input.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next"),
		),
		First: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Space: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "select"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// VimKeyMap adds j/k and g/G on top of the defaults.
func VimKeyMap() KeyMap {
	km := DefaultKeyMap()
	km.Up = key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "previous"),
	)
	km.Down = key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "next"),
	)
	km.First = key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "first"),
	)
	km.Last = key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "last"),
	)
	return km
}

// EmacsKeyMap uses the readline motion keys.
func EmacsKeyMap() KeyMap {
	km := DefaultKeyMap()
	km.First = key.NewBinding(
		key.WithKeys("alt+<", "home"),
		key.WithHelp("M-<", "first"),
	)
	km.Last = key.NewBinding(
		key.WithKeys("alt+>", "end"),
		key.WithHelp("M->", "last"),
	)
	km.Close = key.NewBinding(
		key.WithKeys("esc", "ctrl+g"),
		key.WithHelp("C-g", "close"),
	)
	return km
}

// KeyMapFor returns the named preset; unknown names get the default.
func KeyMapFor(preset string) KeyMap {
	switch preset {
	case "vim":
		return VimKeyMap()
	case "emacs":
		return EmacsKeyMap()
	default:
		return DefaultKeyMap()
	}
}
