package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dnerrors "github.com/nicobailon/dropnav/internal/errors"
)

func TestSetRejectsEmptyKey(t *testing.T) {
	r := NewRegistry()
	err := r.Set("", NewSet("a"))
	require.Error(t, err)
	assert.True(t, dnerrors.Is(err, dnerrors.ErrCodeInvalidKey))
	assert.Empty(t, r.Keys())
}

func TestSetReplacesWithoutMerging(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Set("dd", NewSet("a", "b")))
	require.NoError(t, r.Set("dd", NewSet("c")))
	assert.Equal(t, []any{"c"}, r.Get("dd").IDs())

	require.NoError(t, r.Set("dd", nil))
	require.NotNil(t, r.Get("dd"))
	assert.Equal(t, 0, r.Size("dd"))
}

func TestClearIsIdempotent(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *Registry)
	}{
		{"absent key", func(r *Registry) {}},
		{"empty set", func(r *Registry) { r.Clear("dd") }},
		{"populated", func(r *Registry) { _ = r.SelectItems("dd", []any{1, 2, 3}, false) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			tt.setup(r)
			r.Clear("dd")
			r.Clear("dd")
			got := r.Get("dd")
			require.NotNil(t, got)
			assert.Equal(t, 0, got.Len())
			assert.Contains(t, r.Keys(), "dd")
		})
	}
}

func TestAddItemDoesNotCommit(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.SelectItem("dd", "a", nil))
	before := r.Get("dd")

	added, err := r.AddItem("dd", "b", nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, added.IDs())

	assert.Same(t, before, r.Get("dd"))
	assert.Equal(t, []any{"a"}, r.Get("dd").IDs())
	assert.False(t, r.IsItemSelected("dd", "b"))
}

func TestAddItemSeedAndValidation(t *testing.T) {
	r := NewRegistry()
	_, err := r.AddItem("dd", nil, nil)
	assert.True(t, dnerrors.Is(err, dnerrors.ErrCodeInvalidItem))

	s, err := r.AddItem("dd", 0, nil)
	require.NoError(t, err)
	assert.True(t, s.Has(0))

	seed := NewSet("x")
	s, err = r.AddItem("dd", "y", seed)
	require.NoError(t, err)
	assert.Same(t, seed, s)
	assert.Equal(t, []any{"x", "y"}, s.IDs())
}

func TestSelectItemRejectsNil(t *testing.T) {
	r := NewRegistry()
	err := r.SelectItem("dd", nil, nil)
	assert.True(t, dnerrors.Is(err, dnerrors.ErrCodeInvalidItem))
	assert.Nil(t, r.Get("dd"))
}

func TestDeleteAndDeselectMissingKey(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.DeleteItem("missing", "a", nil))
	assert.Nil(t, r.DeleteItems("missing", []any{"a"}))

	r.DeselectItem("missing", "a", nil)
	r.DeselectItems("missing", []any{"a"})
	assert.Nil(t, r.Get("missing"))
}

func TestDeselect(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.SelectItems("dd", []any{"a", "b", "c"}, false))

	r.DeselectItem("dd", "b", nil)
	assert.Equal(t, []any{"a", "c"}, r.Get("dd").IDs())

	r.DeselectItems("dd", []any{"a", "zzz"})
	assert.Equal(t, []any{"c"}, r.Get("dd").IDs())
}

func TestSelectItemsClearSelection(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.SelectItems("dd", []any{"a", "b"}, false))
	require.NoError(t, r.SelectItems("dd", []any{"c"}, false))
	assert.Equal(t, []any{"a", "b", "c"}, r.Get("dd").IDs())

	require.NoError(t, r.SelectItems("dd", []any{"d"}, true))
	assert.Equal(t, []any{"d"}, r.Get("dd").IDs())
}

func TestFirstItemFollowsInsertionOrder(t *testing.T) {
	r := NewRegistry()
	_, ok := r.FirstItem("dd")
	assert.False(t, ok)

	require.NoError(t, r.SelectItems("dd", []any{"z", "a", "m"}, false))
	first, ok := r.FirstItem("dd")
	require.True(t, ok)
	assert.Equal(t, "z", first)
}

func TestAllAndNoneSelected(t *testing.T) {
	r := NewRegistry()
	assert.True(t, r.AreNoneSelected("dd"))
	assert.False(t, r.AreAllSelected("dd", 0))

	require.NoError(t, r.SelectItems("dd", []any{1, 2}, false))
	assert.True(t, r.AreAllSelected("dd", 2))
	assert.False(t, r.AreAllSelected("dd", 3))
	assert.False(t, r.AreNoneSelected("dd"))
}

func TestIsItemSelectedAbsentKey(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.IsItemSelected("nope", "a"))
	assert.Equal(t, 0, r.Size("nope"))
}

func TestAllIDs(t *testing.T) {
	data := []Record{
		{"0": "x", "id": 7},
		{"0": "y", "id": 8},
	}

	assert.Equal(t, []any{"x", "y"}, AllIDs(data, 0))
	assert.Equal(t, []any{"x", "y"}, AllIDs(data, "0"))
	assert.Equal(t, []any{7, 8}, AllIDs(data, "id"))

	raw := AllIDs(data, nil)
	require.Len(t, raw, 2)
	assert.Equal(t, data[0], raw[0])
}

func TestAllIDsWithoutPrimaryKeyAreSelectable(t *testing.T) {
	r := NewRegistry()
	data := []Record{{"id": 1}, {"id": 2}, {"id": 3}}
	ids := AllIDs(data, nil)

	require.NoError(t, r.SelectItems("dd", ids[:2], true))
	assert.True(t, r.IsItemSelected("dd", data[0]))
	assert.True(t, r.IsItemSelected("dd", data[1]))
	assert.False(t, r.IsItemSelected("dd", data[2]))
	assert.False(t, r.IsItemSelected("dd", Record{"id": 1}), "records are matched by identity")

	first, ok := r.FirstItem("dd")
	require.True(t, ok)
	assert.Equal(t, data[0], first)

	r.DeselectItem("dd", data[0], nil)
	assert.Equal(t, 1, r.Size("dd"))
	assert.True(t, r.AreAllSelected("dd", 1))
}

func TestAddItemRejectsUnstorableID(t *testing.T) {
	type row struct{ tags []string }
	r := NewRegistry()

	_, err := r.AddItem("dd", row{tags: []string{"a"}}, nil)
	require.Error(t, err)
	assert.True(t, dnerrors.Is(err, dnerrors.ErrCodeInvalidItem))

	err = r.SelectItem("dd", row{}, nil)
	require.Error(t, err)
	assert.True(t, dnerrors.Is(err, dnerrors.ErrCodeInvalidItem))
	assert.False(t, r.IsItemSelected("dd", row{}))
}
