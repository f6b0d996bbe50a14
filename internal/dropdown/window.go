package dropdown

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Source is the backing collection of a windowed list.
type Source interface {
	Len() int
	At(index int) any
}

// SliceSource adapts a slice to Source.
type SliceSource []any

func (s SliceSource) Len() int         { return len(s) }
func (s SliceSource) At(index int) any { return s[index] }

// ItemFactory builds the row descriptor for value at index. The returned
// item gets index pinned by the window.
type ItemFactory func(value any, index int) *Item

// ChunkLoadedMsg reports that a window finished materializing a chunk.
type ChunkLoadedMsg struct {
	Target string
	Start  int
	Seq    int
}

// Window is the virtualization primitive behind windowed lists: only
// the rows of the current chunk exist as items. Sizes are in terminal rows.
type Window struct {
	source        Source
	factory       ItemFactory
	itemSize      int
	containerSize int
	delay         time.Duration

	start   int
	scroll  int
	items   []*Item
	seq     int
	loading bool
	owner   *Dropdown
}

func NewWindow(src Source, factory ItemFactory, itemSize, containerSize int) *Window {
	if itemSize < 1 {
		itemSize = 1
	}
	if containerSize < itemSize {
		containerSize = itemSize
	}
	if factory == nil {
		factory = func(value any, index int) *Item { return NewItem(value, "") }
	}
	w := &Window{
		source:        src,
		factory:       factory,
		itemSize:      itemSize,
		containerSize: containerSize,
	}
	w.materialize(0)
	return w
}

// SetDelay makes chunk loads take at least d, simulating a slow source.
func (w *Window) SetDelay(d time.Duration) { w.delay = d }

func (w *Window) Total() int {
	if w.source == nil {
		return 0
	}
	return w.source.Len()
}

func (w *Window) Source() Source     { return w.source }
func (w *Window) ItemSize() int      { return w.itemSize }
func (w *Window) ContainerSize() int { return w.containerSize }
func (w *Window) Start() int         { return w.start }
func (w *Window) ScrollTop() int     { return w.scroll }
func (w *Window) Loading() bool      { return w.loading }
func (w *Window) Items() []*Item     { return w.items }

// ChunkSize is the number of rows visible at once.
func (w *Window) ChunkSize() int {
	n := w.containerSize / w.itemSize
	if w.containerSize%w.itemSize != 0 {
		n++
	}
	return n
}

// VisibleRows is the number of whole rows on screen.
func (w *Window) VisibleRows() int {
	return w.containerSize / w.itemSize
}

func (w *Window) maxScroll() int {
	m := w.Total()*w.itemSize - w.containerSize
	if m < 0 {
		return 0
	}
	return m
}

// ScrollForIndex is the scroll offset that shows index at the top of the
// viewport, or at the bottom when bottom is set.
func (w *Window) ScrollForIndex(index int, bottom bool) int {
	pos := index * w.itemSize
	if bottom {
		pos = pos - w.containerSize + w.itemSize
	}
	return clamp(pos, 0, w.maxScroll())
}

// ScrollTo requests a scroll that brings index into view.
func (w *Window) ScrollTo(index int, bottom bool) tea.Cmd {
	return w.SetScrollTop(w.ScrollForIndex(index, bottom))
}

// SetScrollTop moves the viewport and returns the command that loads the
// matching chunk. The chunk is applied when its ChunkLoadedMsg reaches the
// owning drop-down; superseded loads are dropped.
func (w *Window) SetScrollTop(offset int) tea.Cmd {
	w.scroll = clamp(offset, 0, w.maxScroll())
	start := w.scroll / w.itemSize
	w.seq++
	w.loading = true
	msg := ChunkLoadedMsg{Start: start, Seq: w.seq}
	if w.owner != nil {
		msg.Target = w.owner.instance
	}
	delay := w.delay
	return func() tea.Msg {
		if delay > 0 {
			time.Sleep(delay)
		}
		return msg
	}
}

// SetSource swaps the backing collection and rewinds to the top.
func (w *Window) SetSource(src Source) tea.Cmd {
	w.source = src
	w.scroll = 0
	w.materialize(0)
	return w.SetScrollTop(0)
}

// apply materializes the chunk from msg and reports whether it was the
// most recent request.
func (w *Window) apply(msg ChunkLoadedMsg) bool {
	if msg.Seq != w.seq {
		return false
	}
	w.loading = false
	w.materialize(msg.Start)
	return true
}

// materialize realizes rows start..start+ChunkSize inclusive; the extra row
// covers a partially visible one while scrolling.
func (w *Window) materialize(start int) {
	total := w.Total()
	start = clamp(start, 0, total)
	end := start + w.ChunkSize() + 1
	if end > total {
		end = total
	}
	items := make([]*Item, 0, end-start)
	for idx := start; idx < end; idx++ {
		it := w.factory(w.source.At(idx), idx)
		it.WithIndex(idx)
		it.dropdown = w.owner
		items = append(items, it)
	}
	w.start = start
	w.items = items
}

// realized returns the materialized item at index, if it is in the chunk.
func (w *Window) realized(index int) *Item {
	if index < w.start || index >= w.start+len(w.items) {
		return nil
	}
	return w.items[index-w.start]
}

func (w *Window) attach(d *Dropdown) {
	w.owner = d
	for _, it := range w.items {
		it.dropdown = d
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
