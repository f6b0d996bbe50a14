package tui

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/nicobailon/dropnav/internal/config"
	"github.com/nicobailon/dropnav/internal/dropdown"
	"github.com/nicobailon/dropnav/internal/history"
	"github.com/nicobailon/dropnav/internal/logging"
	"github.com/nicobailon/dropnav/internal/navigation"
	"github.com/nicobailon/dropnav/internal/selection"
	"github.com/nicobailon/dropnav/internal/source"
	"github.com/nicobailon/dropnav/internal/tui/builders"
	"github.com/nicobailon/dropnav/internal/tui/theme"
)

var log = logging.NewLogger("tui")

type Options struct {
	// Title overrides the title of the item source.
	Title string
	// Filter shows a fuzzy filter input above the list.
	Filter bool
	// Virtual forces a windowed list regardless of its length.
	Virtual bool
	// ID is the registry key of the selection. Empty derives one.
	ID      string
	KeyMap  navigation.KeyMap
	History *history.Store
}

type Result struct {
	Source string
	Value  string
	Label  string
}

// outcome is shared with the drop-down observers, which outlive any one
// copy of the model.
type outcome struct {
	picked bool
	closed bool
}

type model struct {
	cfg      *config.Config
	opts     Options
	loader   source.Loader
	ctx      context.Context
	registry *selection.Registry

	list    *source.List
	rows    []source.Row
	rowSrc  *builders.RowSource
	picker  dropdown.Model
	ready   bool
	input   textinput.Model
	spinner spinner.Model
	toast   *toast

	width    int
	height   int
	outcome  *outcome
	result   *Result
	err      error
	quitting bool
}

type App struct {
	cfg    *config.Config
	loader source.Loader
	opts   Options
}

func New(cfg *config.Config, loader source.Loader, opts Options) *App {
	return &App{cfg: cfg, loader: loader, opts: opts}
}

// Run shows the picker until a row is chosen or the user cancels. A nil
// result with a nil error means cancelled.
func (a *App) Run(ctx context.Context, progOpts ...tea.ProgramOption) (*Result, error) {
	m := initialModel(ctx, a.cfg, a.loader, a.opts)
	progOpts = append([]tea.ProgramOption{tea.WithOutput(os.Stderr)}, progOpts...)
	p := tea.NewProgram(m, progOpts...)
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	fm, ok := finalModel.(model)
	if !ok {
		return nil, nil
	}
	if fm.err != nil {
		return nil, fm.err
	}
	return fm.result, nil
}

func initialModel(ctx context.Context, cfg *config.Config, loader source.Loader, opts Options) model {
	if opts.KeyMap.Up.Keys() == nil {
		opts.KeyMap = navigation.KeyMapFor(cfg.Keymap)
	}
	if opts.Filter {
		opts.KeyMap = filterSafe(opts.KeyMap)
	}

	ti := textinput.New()
	ti.CharLimit = 64
	ti.Placeholder = "type to filter"
	ti.Prompt = theme.IconFilter + " "
	ti.PromptStyle = theme.KeyStyle
	ti.TextStyle = theme.TextStyle
	ti.PlaceholderStyle = theme.SubTextStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	return model{
		cfg:      cfg,
		opts:     opts,
		loader:   loader,
		ctx:      ctx,
		registry: selection.NewRegistry(),
		input:    ti,
		spinner:  sp,
		outcome:  &outcome{},
	}
}

// TEA plumbing

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadItemsCmd(m.ctx, m.loader))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		if m.ready {
			m.picker, cmd = m.picker.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.picker.Width = msg.Width - 4
		m.input.Width = msg.Width - 8

	case itemsLoadedMsg:
		cmds = append(cmds, m.setup(msg.list))

	case resultMsg:
		if msg.err != nil {
			log.WithError(msg.err).WithField("action", msg.action).Error("picker failed")
			m.err = msg.err
			m.quitting = true
			return m, tea.Quit
		}

	case ErrorMsg:
		log.WithError(msg.Err).WithField("context", msg.Context).Warn("drop-down error")
		return m, m.showToast(errorText(msg), toastError)
	case WarningMsg:
		return m, m.showToast(msg.Message, toastWarning)
	case toastExpiredMsg:
		if m.toast != nil && m.toast.expired() {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = handleKey(m, msg)
		cmds = append(cmds, cmd)

	default:
		if m.ready {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if m.quitting {
		return m, tea.Quit
	}
	if done, cmd := m.finish(); done {
		return m, cmd
	}
	return m, tea.Batch(cmds...)
}

// setup builds the drop-down once the rows are known.
func (m *model) setup(list *source.List) tea.Cmd {
	m.list = list
	m.rows = list.Rows
	if m.opts.Title == "" {
		m.opts.Title = list.Title
	}

	id := m.opts.ID
	if id == "" {
		id = "dropnav-" + list.Name
	}
	opts := []dropdown.Option{
		dropdown.WithID(id),
		dropdown.WithAllowItemsFocus(m.cfg.AllowItemsFocus),
		dropdown.WithFocusOnOpen(m.cfg.FocusOnOpen),
		dropdown.WithViewport(m.cfg.ItemSize, m.cfg.ContainerSize),
	}
	if m.windowed(len(list.Rows)) {
		m.rowSrc = builders.NewRowSource(list.Rows)
		w := dropdown.NewWindow(m.rowSrc, m.rowSrc.Item, m.cfg.ItemSize, m.cfg.ContainerSize)
		w.SetDelay(m.cfg.ChunkDelay)
		opts = append(opts, dropdown.WithWindow(w))
	}

	d := dropdown.New(m.registry, builders.BuildItems(m.windowedOrNil(list.Rows)), opts...)
	out := m.outcome
	d.SelectionChanging.Subscribe(func(a *dropdown.SelectionEventArgs) {
		if a.Event != nil {
			out.picked = true
		}
	})
	d.Closed.Subscribe(func(*dropdown.ToggleEventArgs) {
		out.closed = true
	})

	m.picker = dropdown.NewModel(d, m.opts.KeyMap)
	m.picker.Title = m.opts.Title
	m.picker.Styles = pickerStyles()
	m.picker.Width = m.width - 4
	m.ready = true

	log.WithFields(logrus.Fields{
		"source":   list.Name,
		"rows":     len(list.Rows),
		"windowed": d.Windowed(),
	}).Debug("items loaded")

	cmds := []tea.Cmd{m.picker.Init(), m.preselect(d)}
	cmds = append(cmds, d.Open())
	if m.opts.Filter {
		cmds = append(cmds, m.input.Focus())
	}
	return tea.Batch(cmds...)
}

func (m *model) windowed(rows int) bool {
	if m.opts.Virtual {
		return true
	}
	return m.cfg.VirtualThreshold > 0 && rows > m.cfg.VirtualThreshold
}

func (m *model) windowedOrNil(rows []source.Row) []source.Row {
	if m.rowSrc != nil {
		return nil
	}
	return rows
}

// preselect restores the value last picked from this source.
func (m *model) preselect(d *dropdown.Dropdown) tea.Cmd {
	if m.opts.History == nil {
		return nil
	}
	entry, ok := m.opts.History.Get(m.list.Name)
	if !ok {
		return nil
	}
	idx := builders.IndexOf(m.list.Rows, entry.Value)
	if idx < 0 {
		return nil
	}
	cmd, err := d.SetSelectedItem(idx)
	if err != nil {
		log.WithError(err).WithField("value", entry.Value).Warn("could not restore last pick")
		return NewWarningCmd("could not restore last pick " + entry.Value)
	}
	if d.Windowed() {
		return tea.Batch(cmd, d.ScrollToItem(d.SelectedItem()))
	}
	return cmd
}

// applyFilter narrows the list to rows matching the filter input.
func (m *model) applyFilter() tea.Cmd {
	rows := m.list.Rows
	if q := strings.TrimSpace(m.input.Value()); q != "" {
		rows = builders.Filter(m.list.Rows, q)
	}
	m.rows = rows

	d := m.picker.Dropdown
	var cmd tea.Cmd
	if d.Windowed() {
		m.rowSrc.Set(rows)
		cmd = d.Window().SetSource(m.rowSrc)
	} else {
		d.SetItems(builders.BuildItems(rows))
	}
	return tea.Batch(cmd, d.NavigateFirst())
}

// finish ends the program once the drop-down has closed.
func (m *model) finish() (bool, tea.Cmd) {
	if !m.ready || !m.outcome.closed {
		return false, nil
	}
	m.quitting = true
	if !m.outcome.picked {
		return true, tea.Quit
	}
	sel := m.picker.Dropdown.SelectedItem()
	if sel == nil {
		return true, tea.Quit
	}
	value, _ := sel.RefValue().(string)
	m.result = &Result{Source: m.list.Name, Value: value, Label: value}
	if idx := builders.IndexOf(m.list.Rows, value); idx >= 0 {
		m.result.Label = m.list.Rows[idx].Display()
	}
	if err := remember(m.opts.History, m.list.Name, m.result.Value, m.result.Label); err != nil {
		log.WithError(err).Warn("could not save history")
	}
	return true, tea.Quit
}

func (m *model) showToast(message string, kind toastType) tea.Cmd {
	m.toast = &toast{message: message, kind: kind, expiresAt: time.Now().Add(toastDuration)}
	return toastExpireCmd()
}
