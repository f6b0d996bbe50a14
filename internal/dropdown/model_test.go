package dropdown

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicobailon/dropnav/internal/navigation"
	"github.com/nicobailon/dropnav/internal/selection"
)

func TestModelKeysDriveDropdown(t *testing.T) {
	items := append([]*Item{NewHeader("Letters")}, abc()...)
	d := New(selection.NewRegistry(), items)
	m := NewModel(d, navigation.DefaultKeyMap())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, d.FocusedItem(), "keys are ignored while collapsed")

	drain(t, d, d.Open())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, Ref(items[2]), d.FocusedItem())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(t, d, cmd)
	assert.Equal(t, Ref(items[2]), d.SelectedItem())
	assert.True(t, d.Collapsed())
	assert.Contains(t, m.View(), "Beta")
}

func TestModelHandleKeyReportsConsumption(t *testing.T) {
	d := New(selection.NewRegistry(), abc())
	m := NewModel(d, navigation.DefaultKeyMap())
	drain(t, d, d.Open())

	_, handled, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.False(t, handled)
	_, handled, _ = m.HandleKey(tea.KeyMsg{Type: tea.KeyUp})
	assert.True(t, handled)
}

func TestModelRoutesChunkMessages(t *testing.T) {
	w := NewWindow(rowSource(100), nil, 1, 5)
	d := New(selection.NewRegistry(), nil, WithWindow(w))
	m := NewModel(d, navigation.DefaultKeyMap())
	drain(t, d, d.Open())

	cmd := d.NavigateItem(50)
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	assert.False(t, w.Loading())
	assert.Equal(t, 46, w.Start())
}

func TestModelView(t *testing.T) {
	items := append([]*Item{NewHeader("Letters")}, abc()...)
	items[3].SetDisabled(true)
	d := New(selection.NewRegistry(), items, WithViewport(1, 3))
	m := NewModel(d, navigation.DefaultKeyMap())
	m.Title = "Pick"

	assert.Contains(t, m.View(), "nothing selected")

	drain(t, d, d.Open())
	view := m.View()
	assert.Contains(t, view, "Letters")
	assert.Contains(t, view, "Alpha")
	assert.Contains(t, view, "1 more")
	assert.NotContains(t, view, "Gamma")
	assert.Equal(t, 5, len(strings.Split(view, "\n")))
}
