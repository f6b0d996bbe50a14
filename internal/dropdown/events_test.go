package dropdown

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestEmitterOrderAndUnsubscribe(t *testing.T) {
	var e Emitter[int]
	var got []string
	e.Subscribe(func(v int) { got = append(got, "a") })
	stop := e.Subscribe(func(v int) { got = append(got, "b") })
	e.Subscribe(func(v int) { got = append(got, "c") })

	e.Emit(1)
	stop()
	stop()
	e.Emit(2)

	assert.Equal(t, []string{"a", "b", "c", "a", "c"}, got)
	assert.Equal(t, 2, e.Len())
}

func TestEmitterSubscribeDuringEmit(t *testing.T) {
	var e Emitter[int]
	calls := 0
	e.Subscribe(func(int) {
		e.Subscribe(func(int) { calls++ })
	})
	e.Emit(1)
	assert.Equal(t, 0, calls)
	e.Emit(2)
	assert.Equal(t, 1, calls)
}

func TestProposeAndCommit(t *testing.T) {
	var e Emitter[*ToggleEventArgs]
	committed := 0
	commit := func(*ToggleEventArgs) { committed++ }

	assert.True(t, proposeAndCommit(&ToggleEventArgs{}, &e, commit))
	e.Subscribe(func(a *ToggleEventArgs) { a.Cancel = true })
	assert.False(t, proposeAndCommit(&ToggleEventArgs{}, &e, commit))
	assert.Equal(t, 1, committed)
}

func TestContinuationsRunOnce(t *testing.T) {
	var c continuations
	runs := 0
	c.push(func() tea.Cmd { runs++; return nil })
	c.push(func() tea.Cmd {
		runs++
		c.push(func() tea.Cmd { runs++; return nil })
		return nil
	})

	c.resume()
	assert.Equal(t, 2, runs)
	assert.Equal(t, 1, c.len(), "work queued while resuming waits")
	c.cancel()
	c.resume()
	assert.Equal(t, 2, runs)
}
