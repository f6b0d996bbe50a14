package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nicobailon/dropnav/internal/navigation"
	"github.com/nicobailon/dropnav/internal/source"
)

type toastType int

const (
	toastError toastType = iota
	toastWarning
)

const toastDuration = 3 * time.Second

type toast struct {
	message   string
	kind      toastType
	expiresAt time.Time
}

func (t *toast) expired() bool {
	return time.Now().After(t.expiresAt)
}

// ErrorMsg is the drop-down's error message, shown as a toast.
type ErrorMsg = navigation.ErrorMsg

func errorText(e ErrorMsg) string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %v", e.Context, e.Err)
	}
	return e.Err.Error()
}

type WarningMsg struct {
	Message string
}

type toastExpiredMsg struct{}

// itemsLoadedMsg carries the rows of the item source.
type itemsLoadedMsg struct {
	list *source.List
}

type resultMsg struct {
	action string
	err    error
}

func NewWarningCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return WarningMsg{Message: message}
	}
}

func toastExpireCmd() tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{}
	})
}

func (t *toast) render(styles toastStyles) string {
	var style lipgloss.Style
	var icon string

	switch t.kind {
	case toastError:
		style = styles.error
		icon = "✗ "
	case toastWarning:
		style = styles.warning
		icon = "! "
	}

	return style.Render(icon + t.message)
}

type toastStyles struct {
	error   lipgloss.Style
	warning lipgloss.Style
}
