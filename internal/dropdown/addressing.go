package dropdown

// addressing hides how a drop-down identifies its rows. It is chosen once,
// when the drop-down is built, and never changes.
type addressing interface {
	windowed() bool
	count() int
	// refAt returns the ref for index, or nil when out of range.
	refAt(index int) Ref
	// normalize reduces ref to the shape stored in the registry.
	normalize(ref Ref) Ref
	// valid reports whether ref may be committed as the selection.
	valid(ref Ref) bool
	// realized returns the live row for ref, if it exists.
	realized(ref Ref) *Item
}

type directAddressing struct {
	d *Dropdown
}

func (directAddressing) windowed() bool { return false }

func (a directAddressing) count() int { return len(a.d.items) }

func (a directAddressing) refAt(index int) Ref {
	if index < 0 || index >= len(a.d.items) {
		return nil
	}
	return a.d.items[index]
}

func (directAddressing) normalize(ref Ref) Ref { return ref }

func (a directAddressing) valid(ref Ref) bool {
	it, ok := ref.(*Item)
	if !ok || it == nil {
		return false
	}
	return it.dropdown == a.d && it.IsSelectable()
}

func (directAddressing) realized(ref Ref) *Item {
	it, _ := ref.(*Item)
	return it
}

type windowedAddressing struct {
	w *Window
}

func (windowedAddressing) windowed() bool { return true }

func (a windowedAddressing) count() int { return a.w.Total() }

func (a windowedAddressing) refAt(index int) Ref {
	if index < 0 || index >= a.w.Total() {
		return nil
	}
	return WindowedID{Value: a.w.Source().At(index), Index: index}
}

func (windowedAddressing) normalize(ref Ref) Ref {
	if ref == nil {
		return nil
	}
	if id, ok := ref.(WindowedID); ok {
		return id
	}
	return WindowedID{Value: ref.RefValue(), Index: ref.RefIndex()}
}

func (a windowedAddressing) valid(ref Ref) bool {
	switch r := ref.(type) {
	case WindowedID:
		return r.Index >= 0 && r.Index < a.w.Total()
	case *Item:
		return r != nil && r.HasIndex() && !r.IsHeader
	}
	return false
}

func (a windowedAddressing) realized(ref Ref) *Item {
	if ref == nil {
		return nil
	}
	it := a.w.realized(ref.RefIndex())
	if it == nil || it.Value != ref.RefValue() {
		return nil
	}
	return it
}
