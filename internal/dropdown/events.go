package dropdown

import tea "github.com/charmbracelet/bubbletea"

// Emitter is a synchronous notification channel.
type Emitter[T any] struct {
	subs   []subscription[T]
	nextID int
}

type subscription[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a func that removes it.
func (e *Emitter[T]) Subscribe(fn func(T)) func() {
	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscription[T]{id: id, fn: fn})
	return func() {
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every subscriber in registration order. Subscribers added
// while emitting are not called for this value.
func (e *Emitter[T]) Emit(v T) {
	subs := e.subs
	for _, s := range subs {
		s.fn(v)
	}
}

func (e *Emitter[T]) Len() int { return len(e.subs) }

func (e *Emitter[T]) Reset() { e.subs = nil }

// CancelableEventArgs is embedded in every "-ing" notification. Setting
// Cancel from an observer abandons the transition.
type CancelableEventArgs struct {
	Cancel bool
	Owner  *Dropdown
	// Event is the input message that started the transition, if any.
	Event tea.Msg
}

func (a *CancelableEventArgs) canceled() bool { return a.Cancel }

// ToggleEventArgs is sent on Opening, Opened, Closing and Closed. Cancel
// only has an effect on Opening and Closing.
type ToggleEventArgs struct {
	CancelableEventArgs
}

// SelectionEventArgs is sent on SelectionChanging. Observers may replace
// NewSelection; the replacement is validated before it is committed.
type SelectionEventArgs struct {
	CancelableEventArgs
	OldSelection Ref
	NewSelection Ref
}

type cancelable interface {
	canceled() bool
}

// proposeAndCommit announces a transition and runs commit only if no
// observer cancelled it. It reports whether commit ran.
func proposeAndCommit[A cancelable](args A, notify *Emitter[A], commit func(A)) bool {
	notify.Emit(args)
	if args.canceled() {
		return false
	}
	commit(args)
	return true
}
