package store

import (
	"fmt"

	"github.com/signadot/laaos/encode"
	"github.com/signadot/laaos/gomap"
	"github.com/signadot/laaos/ir"
)

// Map is a logged mapping with scalar keys in insertion order.
type Map struct {
	base
	keys []*ir.Node
	vals []any
	idx  map[string]int
}

func newMap(s *Store) *Map {
	return &Map{base: base{store: s}, idx: map[string]int{}}
}

// put installs value under a key literal, replacing and detaching any
// previous value. It does not log.
func (m *Map) put(keyNode *ir.Node, keyLit string, stored any) {
	if i, ok := m.idx[keyLit]; ok {
		detach(m.vals[i])
		m.vals[i] = stored
	} else {
		m.idx[keyLit] = len(m.keys)
		m.keys = append(m.keys, keyNode)
		m.vals = append(m.vals, stored)
	}
	attach(stored, m, keyLit)
}

// Set assigns value under key. Container values are copied in; the
// caller's value is not aliased.
func (m *Map) Set(key, value any) error {
	if err := m.store.writable(); err != nil {
		return err
	}
	acc, err := m.path(m)
	if err != nil {
		return err
	}
	keyNode, keyLit, err := m.store.keyOf(key)
	if err != nil {
		return err
	}
	stored, lit, err := m.store.encodeIn(value)
	if err != nil {
		return err
	}
	m.put(keyNode, keyLit, stored)
	return m.store.append(encode.AssignStmt(acc+"["+keyLit+"]", lit))
}

// Get returns the value under key. Container values come back as
// proxies, scalars as plain Go values.
func (m *Map) Get(key any) (any, bool) {
	_, keyLit, err := m.store.keyOf(key)
	if err != nil {
		return nil, false
	}
	i, ok := m.idx[keyLit]
	if !ok {
		return nil, false
	}
	return valueOf(m.vals[i]), true
}

// Delete removes the entry under key. Deleting an absent key fails
// with ErrInvalidMutation.
func (m *Map) Delete(key any) error {
	if err := m.store.writable(); err != nil {
		return err
	}
	acc, err := m.path(m)
	if err != nil {
		return err
	}
	_, keyLit, err := m.store.keyOf(key)
	if err != nil {
		return err
	}
	i, ok := m.idx[keyLit]
	if !ok {
		return fmt.Errorf("%w: no such key %s", ErrInvalidMutation, keyLit)
	}
	detach(m.vals[i])
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.vals = append(m.vals[:i], m.vals[i+1:]...)
	delete(m.idx, keyLit)
	for lit, j := range m.idx {
		if j > i {
			m.idx[lit] = j - 1
		}
	}
	return m.store.append(encode.DeleteStmt(acc + "[" + keyLit + "]"))
}

// Update assigns every entry of values, logged as a single update
// call with keys in sorted order.
func (m *Map) Update(values map[string]any) error {
	if err := m.store.writable(); err != nil {
		return err
	}
	acc, err := m.path(m)
	if err != nil {
		return err
	}
	n, err := gomap.FromGo(values, m.store.reg)
	if err != nil {
		return err
	}
	lit, err := encode.Literal(n)
	if err != nil {
		return err
	}
	for i, f := range n.Fields {
		stored, err := m.store.materialize(n.Values[i])
		if err != nil {
			return err
		}
		m.put(f.Clone(), f.ParentField, stored)
	}
	return m.store.append(encode.CallStmt(acc, "update", lit))
}

// Clear removes all entries.
func (m *Map) Clear() error {
	if err := m.store.writable(); err != nil {
		return err
	}
	acc, err := m.path(m)
	if err != nil {
		return err
	}
	for _, v := range m.vals {
		detach(v)
	}
	m.keys, m.vals, m.idx = nil, nil, map[string]int{}
	return m.store.append(encode.CallStmt(acc, "clear"))
}

// Has reports whether key is present.
func (m *Map) Has(key any) bool {
	_, keyLit, err := m.store.keyOf(key)
	if err != nil {
		return false
	}
	_, ok := m.idx[keyLit]
	return ok
}

// Len reports the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Keys returns the keys as plain Go values, in insertion order.
func (m *Map) Keys() []any {
	out := make([]any, len(m.keys))
	for i, k := range m.keys {
		out[i] = valueOf(k)
	}
	return out
}

// GetMap returns the mapping under key.
func (m *Map) GetMap(key any) (*Map, error) {
	v, ok := m.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: no such key %v", ErrInvalidMutation, key)
	}
	c, ok := v.(*Map)
	if !ok {
		return nil, fmt.Errorf("%w: value at %v is not a map", ErrInvalidMutation, key)
	}
	return c, nil
}

// GetList returns the list under key.
func (m *Map) GetList(key any) (*List, error) {
	v, ok := m.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: no such key %v", ErrInvalidMutation, key)
	}
	c, ok := v.(*List)
	if !ok {
		return nil, fmt.Errorf("%w: value at %v is not a list", ErrInvalidMutation, key)
	}
	return c, nil
}

// GetSet returns the set under key.
func (m *Map) GetSet(key any) (*Set, error) {
	v, ok := m.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: no such key %v", ErrInvalidMutation, key)
	}
	c, ok := v.(*Set)
	if !ok {
		return nil, fmt.Errorf("%w: value at %v is not a set", ErrInvalidMutation, key)
	}
	return c, nil
}

// Snapshot renders the mapping as a value tree.
func (m *Map) Snapshot() *ir.Node {
	n := ir.NewMap()
	for i, k := range m.keys {
		_ = ir.MapSet(n, k.Clone(), snapshotOf(m.vals[i]))
	}
	return n
}
