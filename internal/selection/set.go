package selection

import (
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Set is an insertion-ordered set of item ids. Comparable ids are keyed by
// value; maps, slices and funcs by the data they refer to. Other ids are
// not storable, see Storable. A nil *Set behaves as an empty, read-only set.
type Set struct {
	ids *orderedmap.OrderedMap[any, any]
}

// identity keys an id whose type is not comparable.
type identity struct {
	typ reflect.Type
	ptr uintptr
	len int
}

func keyOf(id any) (any, bool) {
	t := reflect.TypeOf(id)
	if t == nil || t.Comparable() {
		return id, true
	}
	v := reflect.ValueOf(id)
	switch v.Kind() {
	case reflect.Map, reflect.Func:
		return identity{typ: t, ptr: v.Pointer()}, true
	case reflect.Slice:
		return identity{typ: t, ptr: v.Pointer(), len: v.Len()}, true
	}
	return nil, false
}

// Storable reports whether id can be a member of a Set.
func Storable(id any) bool {
	_, ok := keyOf(id)
	return ok
}

// NewSet returns a set holding ids in the given order. Ids that are not
// storable are skipped.
func NewSet(ids ...any) *Set {
	s := &Set{ids: orderedmap.New[any, any]()}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return s.ids.Len()
}

func (s *Set) Has(id any) bool {
	if s == nil {
		return false
	}
	k, ok := keyOf(id)
	if !ok {
		return false
	}
	_, ok = s.ids.Get(k)
	return ok
}

// Add inserts id and reports whether it was storable.
func (s *Set) Add(id any) bool {
	k, ok := keyOf(id)
	if !ok {
		return false
	}
	s.ids.Set(k, id)
	return true
}

func (s *Set) Delete(id any) {
	if k, ok := keyOf(id); ok {
		s.ids.Delete(k)
	}
}

// First returns the earliest inserted id.
func (s *Set) First() (any, bool) {
	if s == nil {
		return nil, false
	}
	pair := s.ids.Oldest()
	if pair == nil {
		return nil, false
	}
	return pair.Value, true
}

// IDs returns the members in insertion order.
func (s *Set) IDs() []any {
	if s == nil {
		return nil
	}
	out := make([]any, 0, s.ids.Len())
	for pair := s.ids.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Clone returns an independent copy. Cloning nil yields an empty set.
func (s *Set) Clone() *Set {
	return NewSet(s.IDs()...)
}
