package store

import (
	"fmt"

	"github.com/signadot/laaos/encode"
	"github.com/signadot/laaos/ir"
)

// List is a logged sequence.
type List struct {
	base
	elems []any
}

func newList(s *Store) *List {
	return &List{base: base{store: s}}
}

// Append adds value at the end.
func (l *List) Append(value any) error {
	if err := l.store.writable(); err != nil {
		return err
	}
	acc, err := l.path(l)
	if err != nil {
		return err
	}
	stored, lit, err := l.store.encodeIn(value)
	if err != nil {
		return err
	}
	l.elems = append(l.elems, stored)
	attach(stored, l, "")
	return l.store.append(encode.CallStmt(acc, "append", lit))
}

// Insert adds value at index i, shifting later elements right.
// i may equal Len.
func (l *List) Insert(i int, value any) error {
	if err := l.store.writable(); err != nil {
		return err
	}
	acc, err := l.path(l)
	if err != nil {
		return err
	}
	if i < 0 || i > len(l.elems) {
		return fmt.Errorf("%w: insert index %d out of range [0:%d]",
			ErrInvalidMutation, i, len(l.elems))
	}
	stored, lit, err := l.store.encodeIn(value)
	if err != nil {
		return err
	}
	l.elems = append(l.elems, nil)
	copy(l.elems[i+1:], l.elems[i:])
	l.elems[i] = stored
	attach(stored, l, "")
	return l.store.append(encode.CallStmt(acc, "insert", ir.FormatInt(int64(i)), lit))
}

// Set replaces the element at index i.
func (l *List) Set(i int, value any) error {
	if err := l.store.writable(); err != nil {
		return err
	}
	acc, err := l.path(l)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(l.elems) {
		return fmt.Errorf("%w: index %d out of range [0:%d]",
			ErrInvalidMutation, i, len(l.elems))
	}
	stored, lit, err := l.store.encodeIn(value)
	if err != nil {
		return err
	}
	detach(l.elems[i])
	l.elems[i] = stored
	attach(stored, l, "")
	return l.store.append(encode.AssignStmt(fmt.Sprintf("%s[%d]", acc, i), lit))
}

// Delete removes the element at index i.
func (l *List) Delete(i int) error {
	if err := l.store.writable(); err != nil {
		return err
	}
	acc, err := l.path(l)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(l.elems) {
		return fmt.Errorf("%w: index %d out of range [0:%d]",
			ErrInvalidMutation, i, len(l.elems))
	}
	detach(l.elems[i])
	l.elems = append(l.elems[:i], l.elems[i+1:]...)
	return l.store.append(encode.DeleteStmt(fmt.Sprintf("%s[%d]", acc, i)))
}

// Remove removes the first element equal to value. A value with no
// equal element fails with ErrInvalidMutation.
func (l *List) Remove(value any) error {
	if err := l.store.writable(); err != nil {
		return err
	}
	acc, err := l.path(l)
	if err != nil {
		return err
	}
	n, lit, err := l.store.compareIn(value)
	if err != nil {
		return err
	}
	for i, e := range l.elems {
		if ir.Equal(nodeOf(e), n) {
			detach(e)
			l.elems = append(l.elems[:i], l.elems[i+1:]...)
			return l.store.append(encode.CallStmt(acc, "remove", lit))
		}
	}
	return fmt.Errorf("%w: %s not in list", ErrInvalidMutation, lit)
}

// Clear removes all elements.
func (l *List) Clear() error {
	if err := l.store.writable(); err != nil {
		return err
	}
	acc, err := l.path(l)
	if err != nil {
		return err
	}
	for _, e := range l.elems {
		detach(e)
	}
	l.elems = nil
	return l.store.append(encode.CallStmt(acc, "clear"))
}

// Get returns the element at index i.
func (l *List) Get(i int) (any, bool) {
	if i < 0 || i >= len(l.elems) {
		return nil, false
	}
	return valueOf(l.elems[i]), true
}

// Len reports the number of elements.
func (l *List) Len() int { return len(l.elems) }

// Values returns the elements in order, containers as proxies.
func (l *List) Values() []any {
	out := make([]any, len(l.elems))
	for i, e := range l.elems {
		out[i] = valueOf(e)
	}
	return out
}

// GetMap returns the mapping at index i.
func (l *List) GetMap(i int) (*Map, error) {
	v, ok := l.Get(i)
	if !ok {
		return nil, fmt.Errorf("%w: index %d out of range [0:%d]",
			ErrInvalidMutation, i, len(l.elems))
	}
	c, ok := v.(*Map)
	if !ok {
		return nil, fmt.Errorf("%w: element %d is not a map", ErrInvalidMutation, i)
	}
	return c, nil
}

// GetList returns the list at index i.
func (l *List) GetList(i int) (*List, error) {
	v, ok := l.Get(i)
	if !ok {
		return nil, fmt.Errorf("%w: index %d out of range [0:%d]",
			ErrInvalidMutation, i, len(l.elems))
	}
	c, ok := v.(*List)
	if !ok {
		return nil, fmt.Errorf("%w: element %d is not a list", ErrInvalidMutation, i)
	}
	return c, nil
}

// GetSet returns the set at index i.
func (l *List) GetSet(i int) (*Set, error) {
	v, ok := l.Get(i)
	if !ok {
		return nil, fmt.Errorf("%w: index %d out of range [0:%d]",
			ErrInvalidMutation, i, len(l.elems))
	}
	c, ok := v.(*Set)
	if !ok {
		return nil, fmt.Errorf("%w: element %d is not a set", ErrInvalidMutation, i)
	}
	return c, nil
}

// Snapshot renders the list as a value tree.
func (l *List) Snapshot() *ir.Node {
	out := make([]*ir.Node, len(l.elems))
	for i, e := range l.elems {
		out[i] = snapshotOf(e)
	}
	return ir.FromSlice(out)
}
