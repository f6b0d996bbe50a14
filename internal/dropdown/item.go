package dropdown

import "fmt"

// Ref identifies an item of one drop-down. Direct lists use the *Item
// itself; windowed lists use WindowedID because the row object may not
// exist yet.
type Ref interface {
	RefIndex() int
	RefValue() any
}

// WindowedID addresses a row of a windowed list by position and value.
// Value must be comparable.
type WindowedID struct {
	Value any
	Index int
}

func (w WindowedID) RefIndex() int { return w.Index }
func (w WindowedID) RefValue() any { return w.Value }

func (w WindowedID) String() string {
	return fmt.Sprintf("%v@%d", w.Value, w.Index)
}

// Group is shared by the items listed under one header. A disabled group
// disables all of its items.
type Group struct {
	Label    string
	Disabled bool
}

// Item is one row of a drop-down. It does not own its selection: selected
// and focused are resolved against the container and the shared registry,
// with local shadow flags used for direct lists.
type Item struct {
	Value    any
	Label    string
	IsHeader bool
	Group    *Group

	// OnSelectedChange is called by SetSelected.
	OnSelectedChange func(selected bool)

	index    *int
	disabled bool
	selected bool
	focused  bool
	dropdown *Dropdown
}

func NewItem(value any, label string) *Item {
	return &Item{Value: value, Label: label}
}

func NewHeader(label string) *Item {
	return &Item{Value: label, Label: label, IsHeader: true}
}

// WithIndex pins the item's index, overriding its position in the list.
func (i *Item) WithIndex(index int) *Item {
	i.index = &index
	return i
}

func (i *Item) HasIndex() bool { return i.index != nil }

// Index is the explicit index when set, otherwise the item's position in
// its drop-down (-1 when detached).
func (i *Item) Index() int {
	if i.index != nil {
		return *i.index
	}
	if i.dropdown != nil {
		return i.dropdown.ItemIndex(i)
	}
	return -1
}

func (i *Item) RefIndex() int { return i.Index() }
func (i *Item) RefValue() any { return i.Value }

func (i *Item) Disabled() bool {
	return (i.Group != nil && i.Group.Disabled) || i.disabled
}

// SetDisabled changes the item's own flag; group disablement is untouched.
func (i *Item) SetDisabled(v bool) { i.disabled = v }

func (i *Item) IsSelectable() bool {
	return !i.Disabled() && !i.IsHeader
}

func (i *Item) Selected() bool {
	if i.HasIndex() {
		if i.dropdown == nil {
			return false
		}
		ref := i.dropdown.SelectedItem()
		return ref != nil && sameRow(ref, i)
	}
	return i.selected
}

func (i *Item) SetSelected(v bool) {
	if i.IsHeader {
		return
	}
	i.selected = v
	if i.OnSelectedChange != nil {
		i.OnSelectedChange(v)
	}
}

func (i *Item) Focused() bool {
	if !i.IsSelectable() {
		return false
	}
	if i.HasIndex() {
		if i.dropdown == nil {
			return false
		}
		ref := i.dropdown.FocusedItem()
		return ref != nil && sameRow(ref, i)
	}
	return i.focused
}

func (i *Item) SetFocused(v bool) { i.focused = v }

// DoCheck reconciles the shadow flag with the container: an item that
// believes it is selected while the container disagrees selects itself.
func (i *Item) DoCheck() error {
	if !i.selected || i.dropdown == nil {
		return nil
	}
	current := i.dropdown.SelectedItem()
	if current != nil {
		if i.HasIndex() && sameRow(current, i) {
			return nil
		}
		if !i.HasIndex() && current == Ref(i) {
			return nil
		}
	}
	_, err := i.dropdown.SelectItem(i, nil)
	return err
}

func (i *Item) String() string {
	if i.Label != "" {
		return i.Label
	}
	return fmt.Sprint(i.Value)
}

func sameRow(ref Ref, i *Item) bool {
	return ref.RefIndex() == i.Index() && ref.RefValue() == i.Value
}
