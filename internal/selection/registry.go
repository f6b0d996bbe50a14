// Package selection holds the shared selection registry: a keyed store of
// selected item ids that drop-downs and their items consult to resolve
// selection and focus. All access happens on the bubbletea update goroutine,
// so the registry does no locking.
package selection

import (
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	dnerrors "github.com/nicobailon/dropnav/internal/errors"
	"github.com/nicobailon/dropnav/internal/logging"
)

// Record is one row of a data collection projected by AllIDs.
type Record = map[string]any

// Registry maps instance keys to selection sets. Once a key has been
// written it always maps to a non-nil set.
type Registry struct {
	selections map[string]*Set
	log        *logrus.Entry
}

func NewRegistry() *Registry {
	return &Registry{
		selections: make(map[string]*Set),
		log:        logging.NewLogger("selection"),
	}
}

// Get returns the set stored for key, or nil when nothing was ever written.
// The returned set is the stored value; callers must not mutate it.
func (r *Registry) Get(key string) *Set {
	return r.selections[key]
}

// Set replaces the selection for key. A nil set is stored as empty.
func (r *Registry) Set(key string, s *Set) error {
	if key == "" {
		return dnerrors.InvalidKey()
	}
	if s == nil {
		s = NewSet()
	}
	r.selections[key] = s
	r.log.WithFields(logrus.Fields{"key": key, "size": s.Len()}).Debug("selection set")
	return nil
}

// Clear replaces the selection for key with an empty set. The key remains.
func (r *Registry) Clear(key string) {
	r.selections[key] = NewSet()
}

// Remove drops key entirely.
func (r *Registry) Remove(key string) {
	delete(r.selections, key)
}

// Keys lists the keys that have been written, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.selections))
	for k := range r.selections {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r *Registry) Size(key string) int {
	return r.selections[key].Len()
}

// AddItem returns a new set holding seed (or a copy of the current
// selection for key) plus id. Nothing is committed. A nil id, or one that
// cannot be stored (see Storable), is INVALID_ITEM.
func (r *Registry) AddItem(key string, id any, seed *Set) (*Set, error) {
	if id == nil || !Storable(id) {
		return nil, dnerrors.InvalidItem(key)
	}
	if seed == nil {
		seed = r.Get(key).Clone()
	}
	seed.Add(id)
	return seed, nil
}

// SelectItem commits AddItem.
func (r *Registry) SelectItem(key string, id any, seed *Set) error {
	s, err := r.AddItem(key, id, seed)
	if err != nil {
		return err
	}
	return r.Set(key, s)
}

// AddItems returns a new set holding ids on top of the current selection,
// or on top of an empty set when clearSelection is true.
func (r *Registry) AddItems(key string, ids []any, clearSelection bool) *Set {
	var s *Set
	if clearSelection {
		s = NewSet()
	} else {
		s = r.Get(key).Clone()
	}
	for _, id := range ids {
		if !s.Add(id) {
			r.log.WithField("key", key).Warn("skipping id that cannot be stored")
		}
	}
	return s
}

func (r *Registry) SelectItems(key string, ids []any, clearSelection bool) error {
	return r.Set(key, r.AddItems(key, ids, clearSelection))
}

// DeleteItem returns a copy of seed (or of the current selection) without
// id. It returns nil when there is no selection to remove from.
func (r *Registry) DeleteItem(key string, id any, seed *Set) *Set {
	if seed == nil {
		current := r.Get(key)
		if current == nil {
			return nil
		}
		seed = current.Clone()
	}
	seed.Delete(id)
	return seed
}

// DeselectItem commits DeleteItem. It is a no-op when key has no selection.
func (r *Registry) DeselectItem(key string, id any, seed *Set) {
	if s := r.DeleteItem(key, id, seed); s != nil {
		_ = r.Set(key, s)
	}
}

func (r *Registry) DeleteItems(key string, ids []any) *Set {
	current := r.Get(key)
	if current == nil {
		return nil
	}
	s := current.Clone()
	for _, id := range ids {
		s.Delete(id)
	}
	return s
}

func (r *Registry) DeselectItems(key string, ids []any) {
	if s := r.DeleteItems(key, ids); s != nil {
		_ = r.Set(key, s)
	}
}

func (r *Registry) IsItemSelected(key string, id any) bool {
	return r.Get(key).Has(id)
}

// FirstItem returns the earliest selected id for key. Single-selection
// containers treat it as their only selected item.
func (r *Registry) FirstItem(key string) (any, bool) {
	return r.Get(key).First()
}

func (r *Registry) AreAllSelected(key string, dataCount int) bool {
	return dataCount > 0 && dataCount == r.Size(key)
}

func (r *Registry) AreNoneSelected(key string) bool {
	return r.Size(key) == 0
}

// AllIDs projects data to identifiers. With a nil primaryKey the records
// themselves are the identifiers; a Set keys them by map identity. Any other key, including 0, is looked up
// by its string form.
func AllIDs(data []Record, primaryKey any) []any {
	ids := make([]any, len(data))
	if primaryKey == nil {
		for i, rec := range data {
			ids[i] = rec
		}
		return ids
	}
	field := cast.ToString(primaryKey)
	for i, rec := range data {
		ids[i] = rec[field]
	}
	return ids
}
