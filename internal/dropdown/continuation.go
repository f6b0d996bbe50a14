package dropdown

import tea "github.com/charmbracelet/bubbletea"

// continuations holds work deferred until a windowed list has loaded its
// next chunk. Each entry runs exactly once.
type continuations struct {
	queue []func() tea.Cmd
}

func (c *continuations) push(fn func() tea.Cmd) {
	c.queue = append(c.queue, fn)
}

// resume runs and drops everything queued so far. Work queued while
// resuming waits for the next chunk.
func (c *continuations) resume() tea.Cmd {
	queue := c.queue
	c.queue = nil
	cmds := make([]tea.Cmd, 0, len(queue))
	for _, fn := range queue {
		cmds = append(cmds, fn())
	}
	return tea.Batch(cmds...)
}

func (c *continuations) cancel() { c.queue = nil }

func (c *continuations) len() int { return len(c.queue) }
