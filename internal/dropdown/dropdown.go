// Package dropdown implements the drop-down container: its open/close
// lifecycle, single selection, keyboard focus and traversal over direct or
// windowed lists. Selection and focus live in a shared selection.Registry
// under the container's id and id + "-active".
package dropdown

import (
	"reflect"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	dnerrors "github.com/nicobailon/dropnav/internal/errors"
	"github.com/nicobailon/dropnav/internal/logging"
	"github.com/nicobailon/dropnav/internal/navigation"
	"github.com/nicobailon/dropnav/internal/selection"
)

type State int

const (
	StateClosed State = iota
	StateOpening
	StateOpen
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	}
	return "unknown"
}

type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
)

// ToggleFinishedMsg tells a drop-down its open or close transition ended.
type ToggleFinishedMsg struct {
	Target string
	Opened bool
}

// Animator plays the open/close transition. The returned command must
// eventually yield done.
type Animator interface {
	Animate(open bool, done ToggleFinishedMsg) tea.Cmd
}

// TickAnimator finishes a transition after a fixed delay.
type TickAnimator struct {
	Duration time.Duration
}

func (a TickAnimator) Animate(open bool, done ToggleFinishedMsg) tea.Cmd {
	return tea.Tick(a.Duration, func(time.Time) tea.Msg { return done })
}

type Option func(*Dropdown)

func WithID(id string) Option {
	return func(d *Dropdown) {
		if id != "" {
			d.id = id
		}
	}
}

// WithWindow makes the drop-down windowed over w. Rows are then addressed
// by WindowedID and the items passed to New are ignored.
func WithWindow(w *Window) Option {
	return func(d *Dropdown) { d.window = w }
}

func WithAnimator(a Animator) Option {
	return func(d *Dropdown) { d.animator = a }
}

func WithAllowItemsFocus(v bool) Option {
	return func(d *Dropdown) { d.allowItemsFocus = v }
}

func WithFocusOnOpen(v bool) Option {
	return func(d *Dropdown) { d.focusOnOpen = v }
}

// WithViewport sets row height and viewport height for direct lists.
func WithViewport(itemSize, containerSize int) Option {
	return func(d *Dropdown) {
		d.itemSize = itemSize
		d.containerSize = containerSize
	}
}

type Dropdown struct {
	id       string
	instance string
	registry *selection.Registry

	items  []*Item
	window *Window
	addr   addressing

	animator        Animator
	state           State
	allowItemsFocus bool
	focusOnOpen     bool

	itemSize         int
	containerSize    int
	scroll           int
	rememberedScroll int
	elementFocus     Ref

	pending continuations
	log     *logrus.Entry

	Opening           Emitter[*ToggleEventArgs]
	Opened            Emitter[*ToggleEventArgs]
	Closing           Emitter[*ToggleEventArgs]
	Closed            Emitter[*ToggleEventArgs]
	SelectionChanging Emitter[*SelectionEventArgs]
}

// New builds a closed drop-down over items, storing its state in registry.
func New(registry *selection.Registry, items []*Item, opts ...Option) *Dropdown {
	instance := uuid.NewString()
	d := &Dropdown{
		id:            "dropdown-" + instance[:8],
		instance:      instance,
		registry:      registry,
		itemSize:      1,
		containerSize: 10,
		log:           logging.NewLogger("dropdown"),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.itemSize < 1 {
		d.itemSize = 1
	}
	if d.containerSize < d.itemSize {
		d.containerSize = d.itemSize
	}

	if d.window != nil {
		d.window.attach(d)
		d.itemSize = d.window.ItemSize()
		d.containerSize = d.window.ContainerSize()
		d.addr = windowedAddressing{w: d.window}
	} else {
		d.addr = directAddressing{d: d}
		d.SetItems(items)
	}
	return d
}

func (d *Dropdown) ID() string { return d.id }

func (d *Dropdown) activeKey() string { return d.id + "-active" }

// SetID renames the drop-down. Stored selection and focus move to the new
// keys and the old keys are cleared.
func (d *Dropdown) SetID(value string) error {
	if value == "" {
		return dnerrors.InvalidKey()
	}
	if value == d.id {
		return nil
	}
	oldID, oldActive := d.id, d.activeKey()
	sel, act := d.registry.Get(oldID), d.registry.Get(oldActive)

	// Old keys are cleared first: the new keys may overlap them.
	d.registry.Clear(oldID)
	d.registry.Clear(oldActive)
	d.id = value
	if err := d.registry.Set(d.id, sel); err != nil {
		return err
	}
	if err := d.registry.Set(d.activeKey(), act); err != nil {
		return err
	}
	d.log.WithFields(logrus.Fields{"from": oldID, "to": value}).Debug("dropdown renamed")
	return nil
}

func (d *Dropdown) State() State { return d.state }

// Collapsed is true only while fully closed.
func (d *Dropdown) Collapsed() bool { return d.state == StateClosed }

func (d *Dropdown) Windowed() bool { return d.addr.windowed() }

func (d *Dropdown) Window() *Window { return d.window }

func (d *Dropdown) ItemSize() int      { return d.itemSize }
func (d *Dropdown) ContainerSize() int { return d.containerSize }

// Len is the number of rows, realized or not.
func (d *Dropdown) Len() int { return d.addr.count() }

// Items returns the realized rows: all of them for direct lists, the
// current chunk for windowed ones.
func (d *Dropdown) Items() []*Item {
	if d.window != nil {
		return d.window.Items()
	}
	return d.items
}

// SetItems replaces the rows of a direct list. A selection or focus held by
// a row that is no longer listed moves to the new row with the same value.
// Without such a row, focus is cleared and the selection is kept: it still
// names the committed value until the next selection change.
func (d *Dropdown) SetItems(items []*Item) {
	if d.addr.windowed() {
		return
	}
	for _, it := range d.items {
		it.dropdown = nil
	}
	d.items = items
	for _, it := range d.items {
		it.dropdown = d
	}
	d.scroll = clamp(d.scroll, 0, d.maxScroll())
	d.rebind()
}

func (d *Dropdown) rebind() {
	if sel, ok := d.SelectedItem().(*Item); ok && sel != nil && sel.dropdown != d {
		if match := d.itemWithValue(sel.Value); match != nil && match.IsSelectable() {
			sel.selected = false
			if err := d.registry.Set(d.id, selection.NewSet(match)); err != nil {
				d.log.WithError(err).Warn("failed to rebind selection")
			} else {
				match.SetSelected(true)
			}
		}
	}

	if foc, ok := d.FocusedItem().(*Item); ok && foc != nil && foc.dropdown != d {
		match := d.itemWithValue(foc.Value)
		if match == nil || !match.IsSelectable() {
			d.setFocused(nil)
			d.elementFocus = nil
		} else {
			d.setFocused(match)
			if d.allowItemsFocus {
				d.elementFocus = match
			}
		}
	}
	if el, ok := d.elementFocus.(*Item); ok && el != nil && el.dropdown != d {
		d.elementFocus = nil
	}
}

// itemWithValue finds the first non-header row holding value.
func (d *Dropdown) itemWithValue(value any) *Item {
	if t := reflect.TypeOf(value); t != nil && !t.Comparable() {
		return nil
	}
	for _, it := range d.items {
		if !it.IsHeader && it.Value == value {
			return it
		}
	}
	return nil
}

// ItemIndex is the position of item among the rows, or -1.
func (d *Dropdown) ItemIndex(item *Item) int {
	if item == nil {
		return -1
	}
	if item.HasIndex() {
		return *item.index
	}
	for i, it := range d.Items() {
		if it == item {
			return i
		}
	}
	return -1
}

func (d *Dropdown) SelectedItem() Ref { return d.first(d.id) }

func (d *Dropdown) FocusedItem() Ref { return d.first(d.activeKey()) }

func (d *Dropdown) first(key string) Ref {
	v, ok := d.registry.FirstItem(key)
	if !ok {
		return nil
	}
	ref, _ := v.(Ref)
	return ref
}

// ElementFocus is the row that owns the cursor when item focus is allowed.
func (d *Dropdown) ElementFocus() Ref { return d.elementFocus }

// EnsureItemFocus moves the cursor back to the focused row without
// touching the selection.
func (d *Dropdown) EnsureItemFocus() {
	if !d.allowItemsFocus {
		return
	}
	d.elementFocus = d.FocusedItem()
}

func (d *Dropdown) setFocused(ref Ref) {
	if prev, ok := d.FocusedItem().(*Item); ok && prev != nil {
		prev.SetFocused(false)
	}
	if ref == nil {
		d.registry.Clear(d.activeKey())
		return
	}
	if err := d.registry.Set(d.activeKey(), selection.NewSet(ref)); err != nil {
		d.log.WithError(err).Warn("failed to store focus")
		return
	}
	if it, ok := ref.(*Item); ok {
		it.SetFocused(true)
	}
}

// Open starts the open transition unless the drop-down is already open or
// opening, or an Opening observer cancels it.
func (d *Dropdown) Open() tea.Cmd {
	if d.state == StateOpening || d.state == StateOpen {
		return nil
	}
	var restore tea.Cmd
	args := &ToggleEventArgs{CancelableEventArgs{Owner: d}}
	committed := proposeAndCommit(args, &d.Opening, func(*ToggleEventArgs) {
		if d.window != nil && d.window.ScrollTop() != d.rememberedScroll {
			restore = d.window.SetScrollTop(d.rememberedScroll)
		}
		d.state = StateOpening
	})
	if !committed {
		d.log.WithField("id", d.id).Debug("open cancelled")
		return nil
	}
	return tea.Batch(restore, d.animate(true))
}

// Close starts the close transition. event is the input that caused it.
func (d *Dropdown) Close(event tea.Msg) tea.Cmd {
	if d.state == StateClosed || d.state == StateClosing {
		return nil
	}
	if d.window != nil {
		d.rememberedScroll = d.window.ScrollTop()
	}
	args := &ToggleEventArgs{CancelableEventArgs{Owner: d, Event: event}}
	committed := proposeAndCommit(args, &d.Closing, func(*ToggleEventArgs) {
		d.state = StateClosing
	})
	if !committed {
		d.log.WithField("id", d.id).Debug("close cancelled")
		return nil
	}
	return d.animate(false)
}

func (d *Dropdown) Toggle() tea.Cmd {
	if d.Collapsed() || d.state == StateClosing {
		return d.Open()
	}
	return d.Close(nil)
}

func (d *Dropdown) animate(open bool) tea.Cmd {
	done := ToggleFinishedMsg{Target: d.instance, Opened: open}
	if d.animator == nil {
		return d.finishToggle(done)
	}
	return d.animator.Animate(open, done)
}

func (d *Dropdown) finishToggle(msg ToggleFinishedMsg) tea.Cmd {
	args := &ToggleEventArgs{CancelableEventArgs{Owner: d}}
	if msg.Opened {
		if d.state != StateOpening {
			return nil
		}
		d.state = StateOpen
		cmd := d.syncFocus()
		d.Opened.Emit(args)
		return cmd
	}
	if d.state != StateClosing {
		return nil
	}
	d.state = StateClosed
	if it, ok := d.FocusedItem().(*Item); ok && it != nil {
		it.SetFocused(false)
	}
	d.Closed.Emit(args)
	return nil
}

// syncFocus runs on entering Open: the selection becomes focused, or the
// first row when focus-on-open is set.
func (d *Dropdown) syncFocus() tea.Cmd {
	if sel := d.SelectedItem(); sel != nil {
		d.setFocused(sel)
		if d.allowItemsFocus {
			d.elementFocus = sel
		}
		if !d.addr.windowed() {
			return d.ScrollToItem(sel)
		}
		return nil
	}
	if d.focusOnOpen {
		return d.NavigateFirst()
	}
	return nil
}

// SelectItem makes candidate the selection. A nil candidate means the
// focused row. Headers, disabled rows and a missing candidate are ignored.
// When event is set the drop-down closes after committing.
func (d *Dropdown) SelectItem(candidate Ref, event tea.Msg) (tea.Cmd, error) {
	if isNilRef(candidate) {
		candidate = d.FocusedItem()
	}
	if candidate == nil {
		return nil, nil
	}
	if it := d.addr.realized(candidate); it != nil && !it.IsSelectable() {
		d.log.WithFields(logrus.Fields{"id": d.id, "item": it.String()}).Debug("ignoring unselectable item")
		return nil, nil
	}

	args := &SelectionEventArgs{
		CancelableEventArgs: CancelableEventArgs{Owner: d, Event: event},
		OldSelection:        d.SelectedItem(),
		NewSelection:        d.addr.normalize(candidate),
	}
	var err error
	committed := proposeAndCommit(args, &d.SelectionChanging, func(a *SelectionEventArgs) {
		err = d.commitSelection(a.OldSelection, a.NewSelection)
	})
	if err != nil {
		return nil, err
	}
	if !committed {
		d.log.WithField("id", d.id).Debug("selection change cancelled")
		return nil, nil
	}
	if event != nil {
		return d.Close(event), nil
	}
	return nil, nil
}

// ClearSelection empties the selection unless a SelectionChanging observer
// cancels it.
func (d *Dropdown) ClearSelection() error {
	args := &SelectionEventArgs{
		CancelableEventArgs: CancelableEventArgs{Owner: d},
		OldSelection:        d.SelectedItem(),
	}
	var err error
	proposeAndCommit(args, &d.SelectionChanging, func(a *SelectionEventArgs) {
		err = d.commitSelection(a.OldSelection, a.NewSelection)
	})
	return err
}

func (d *Dropdown) commitSelection(old, next Ref) error {
	if isNilRef(next) {
		d.registry.Clear(d.id)
		next = nil
	} else {
		if !d.addr.valid(next) {
			return dnerrors.InvalidSelection(d.id, next)
		}
		next = d.addr.normalize(next)
		if err := d.registry.Set(d.id, selection.NewSet(next)); err != nil {
			return err
		}
	}

	if !d.addr.windowed() {
		if o, ok := old.(*Item); ok && o != nil {
			o.SetSelected(false)
		}
		if n, ok := next.(*Item); ok {
			n.SetSelected(true)
		}
		return nil
	}
	for _, it := range d.window.Items() {
		if it.selected && (next == nil || !sameRow(next, it)) {
			it.selected = false
		}
	}
	return nil
}

// SetSelectedItem selects the row at index. Out of range is a no-op.
func (d *Dropdown) SetSelectedItem(index int) (tea.Cmd, error) {
	ref := d.addr.refAt(index)
	if ref == nil {
		return nil, nil
	}
	return d.SelectItem(ref, nil)
}

// NavigateItem focuses the row at index. Windowed lists may need to load
// another chunk first; skipping past headers then waits for that chunk.
func (d *Dropdown) NavigateItem(index int) tea.Cmd {
	dir := DirectionUp
	if cur := d.FocusedItem(); cur == nil || index > cur.RefIndex() {
		dir = DirectionDown
	}
	return d.navigate(index, dir)
}

func (d *Dropdown) navigate(index int, dir Direction) tea.Cmd {
	if d.Collapsed() {
		return nil
	}
	if d.addr.windowed() {
		return d.navigateWindowed(index, dir)
	}
	if index < 0 || index >= len(d.items) {
		return nil
	}
	it := d.items[index]
	d.setFocused(it)
	d.scrollIntoView(index)
	if d.allowItemsFocus {
		d.elementFocus = it
	}
	return nil
}

func (d *Dropdown) navigateWindowed(index int, dir Direction) tea.Cmd {
	w := d.window
	if index < 0 || index >= w.Total() {
		return nil
	}
	outOfBounds := d.isIndexOutOfBounds(index, dir)
	d.setFocused(d.addr.refAt(index))

	var cmd tea.Cmd
	if outOfBounds {
		cmd = w.ScrollTo(index, dir == DirectionDown)
		d.pending.push(func() tea.Cmd { return d.skipHeader(dir) })
	} else {
		cmd = d.skipHeader(dir)
	}
	if d.allowItemsFocus {
		d.elementFocus = d.FocusedItem()
	}
	return cmd
}

// isIndexOutOfBounds reports whether index is outside the realized chunk
// or not yet scrolled into view in the direction of travel.
func (d *Dropdown) isIndexOutOfBounds(index int, dir Direction) bool {
	w := d.window
	start := w.Start()
	if index < start || index > start+w.ChunkSize() {
		return true
	}
	top := index * w.ItemSize()
	if dir == DirectionDown {
		return w.ScrollTop()+w.ContainerSize() < top+w.ItemSize()
	}
	return w.ScrollTop() > top
}

// skipHeader moves on when the focused row cannot take focus. It repeats
// through runs of headers and disabled rows.
func (d *Dropdown) skipHeader(dir Direction) tea.Cmd {
	it := d.addr.realized(d.FocusedItem())
	if it == nil || it.IsSelectable() {
		return nil
	}
	if dir == DirectionUp {
		return d.NavigatePrev()
	}
	return d.NavigateNext()
}

func (d *Dropdown) NavigateFirst() tea.Cmd {
	if d.addr.windowed() {
		return d.navigate(0, DirectionDown)
	}
	return d.navigate(d.nearestSelectable(-1, DirectionDown), DirectionDown)
}

func (d *Dropdown) NavigateLast() tea.Cmd {
	if d.addr.windowed() {
		return d.navigate(d.window.Total()-1, DirectionUp)
	}
	return d.navigate(d.nearestSelectable(len(d.items), DirectionUp), DirectionUp)
}

func (d *Dropdown) NavigateNext() tea.Cmd {
	cur := d.FocusedItem()
	if cur == nil {
		return d.NavigateFirst()
	}
	if d.addr.windowed() {
		return d.navigate(cur.RefIndex()+1, DirectionDown)
	}
	return d.navigate(d.nearestSelectable(cur.RefIndex(), DirectionDown), DirectionDown)
}

func (d *Dropdown) NavigatePrev() tea.Cmd {
	cur := d.FocusedItem()
	if cur == nil {
		return d.NavigateLast()
	}
	if d.addr.windowed() {
		return d.navigate(cur.RefIndex()-1, DirectionUp)
	}
	return d.navigate(d.nearestSelectable(cur.RefIndex(), DirectionUp), DirectionUp)
}

// nearestSelectable finds the closest selectable row after (or before)
// from. It returns -1 when there is none.
func (d *Dropdown) nearestSelectable(from int, dir Direction) int {
	step := 1
	if dir == DirectionUp {
		step = -1
	}
	for i := from + step; i >= 0 && i < len(d.items); i += step {
		if d.items[i].IsSelectable() {
			return i
		}
	}
	return -1
}

// ScrollTop is the viewport offset.
func (d *Dropdown) ScrollTop() int {
	if d.window != nil {
		return d.window.ScrollTop()
	}
	return d.scroll
}

// VisibleRows is the number of rows that fit in the viewport.
func (d *Dropdown) VisibleRows() int {
	return d.containerSize / d.itemSize
}

func (d *Dropdown) maxScroll() int {
	m := len(d.items)*d.itemSize - d.containerSize
	if m < 0 {
		return 0
	}
	return m
}

// ScrollToItem centers ref in the viewport.
func (d *Dropdown) ScrollToItem(ref Ref) tea.Cmd {
	if ref == nil {
		return nil
	}
	index := ref.RefIndex()
	if index < 0 {
		return nil
	}
	if d.window != nil {
		offset := d.window.ScrollForIndex(index, false) - (d.VisibleRows()/2)*d.itemSize
		return d.window.SetScrollTop(offset)
	}
	item := Rect{Top: index*d.itemSize - d.scroll, Height: d.itemSize}
	container := Rect{Top: 0, Height: d.containerSize}
	d.scroll = clamp(CalculateScrollPosition(item, container, d.scroll), 0, d.maxScroll())
	return nil
}

// scrollIntoView moves a direct viewport just enough to show index.
func (d *Dropdown) scrollIntoView(index int) {
	top := index * d.itemSize
	switch {
	case top < d.scroll:
		d.scroll = top
	case top+d.itemSize > d.scroll+d.containerSize:
		d.scroll = top + d.itemSize - d.containerSize
	}
	d.scroll = clamp(d.scroll, 0, d.maxScroll())
}

// OnItemActionKey handles a key that acts on the focused row.
func (d *Dropdown) OnItemActionKey(k navigation.ActionKey, event tea.Msg) (tea.Cmd, error) {
	switch k {
	case navigation.ActionEscape:
		return d.Close(event), nil
	case navigation.ActionEnter, navigation.ActionSpace, navigation.ActionTab:
		return d.SelectItem(nil, event)
	}
	return nil, nil
}

// HandleMsg applies messages addressed to this drop-down: loaded chunks
// and finished transitions. Other messages are ignored.
func (d *Dropdown) HandleMsg(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case ChunkLoadedMsg:
		if m.Target != d.instance || d.window == nil {
			return nil
		}
		if !d.window.apply(m) {
			d.log.WithFields(logrus.Fields{"id": d.id, "seq": m.Seq}).Debug("dropping stale chunk")
			return nil
		}
		return d.pending.resume()
	case ToggleFinishedMsg:
		if m.Target != d.instance {
			return nil
		}
		return d.finishToggle(m)
	}
	return nil
}

// Pending is the number of continuations waiting for a chunk.
func (d *Dropdown) Pending() int { return d.pending.len() }

// Check reconciles every realized row with the registry. Hosts call it
// once per update.
func (d *Dropdown) Check() error {
	items := append([]*Item(nil), d.Items()...)
	for _, it := range items {
		if err := it.DoCheck(); err != nil {
			return err
		}
	}
	return nil
}

// Destroy drops pending continuations, observers and registry entries.
func (d *Dropdown) Destroy() {
	d.pending.cancel()
	d.registry.Clear(d.id)
	d.registry.Clear(d.activeKey())
	d.Opening.Reset()
	d.Opened.Reset()
	d.Closing.Reset()
	d.Closed.Reset()
	d.SelectionChanging.Reset()
}

func isNilRef(ref Ref) bool {
	if ref == nil {
		return true
	}
	it, ok := ref.(*Item)
	return ok && it == nil
}
