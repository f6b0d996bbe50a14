package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nicobailon/dropnav/internal/history"
	"github.com/nicobailon/dropnav/internal/source"
)

func loadItemsCmd(ctx context.Context, loader source.Loader) tea.Cmd {
	return func() tea.Msg {
		list, err := loader.Load(ctx)
		if err != nil {
			return resultMsg{action: "load", err: err}
		}
		return itemsLoadedMsg{list: list}
	}
}

// remember stores the pick synchronously; the program is about to exit.
func remember(store *history.Store, src, value, label string) error {
	if store == nil || src == "" {
		return nil
	}
	store.Add(src, value, label)
	return store.Save()
}
