package store

import (
	"fmt"

	"github.com/signadot/laaos/encode"
	"github.com/signadot/laaos/ir"
)

// Set is a logged set of scalars, kept in sorted order.
type Set struct {
	base
	node *ir.Node
}

func newSet(s *Store, n *ir.Node) *Set {
	n.Parent = nil
	return &Set{base: base{store: s}, node: n}
}

func (s *Set) elem(value any) (*ir.Node, string, error) {
	n, lit, err := s.store.compareIn(value)
	if err != nil {
		return nil, "", err
	}
	if !n.Type.Scalar() {
		return nil, "", fmt.Errorf("%w: %s cannot be a set element",
			ErrInvalidMutation, n.Type)
	}
	return n, lit, nil
}

// Add inserts value. Adding a value already present still logs, and
// replays as a no-op.
func (s *Set) Add(value any) error {
	if err := s.store.writable(); err != nil {
		return err
	}
	acc, err := s.path(s)
	if err != nil {
		return err
	}
	n, lit, err := s.elem(value)
	if err != nil {
		return err
	}
	if err := ir.SetAdd(s.node, n); err != nil {
		return err
	}
	return s.store.append(encode.CallStmt(acc, "add", lit))
}

// Discard removes value if present. Discarding an absent value still
// logs, and replays as a no-op.
func (s *Set) Discard(value any) error {
	if err := s.store.writable(); err != nil {
		return err
	}
	acc, err := s.path(s)
	if err != nil {
		return err
	}
	n, lit, err := s.elem(value)
	if err != nil {
		return err
	}
	if err := ir.SetDiscard(s.node, n); err != nil {
		return err
	}
	return s.store.append(encode.CallStmt(acc, "discard", lit))
}

// Clear removes all elements.
func (s *Set) Clear() error {
	if err := s.store.writable(); err != nil {
		return err
	}
	acc, err := s.path(s)
	if err != nil {
		return err
	}
	ir.Clear(s.node)
	return s.store.append(encode.CallStmt(acc, "clear"))
}

// Has reports whether value is an element.
func (s *Set) Has(value any) bool {
	n, _, err := s.elem(value)
	if err != nil {
		return false
	}
	for _, e := range s.node.Values {
		if ir.Equal(e, n) {
			return true
		}
	}
	return false
}

// Len reports the number of elements.
func (s *Set) Len() int { return len(s.node.Values) }

// Values returns the elements as plain Go values, in sorted order.
func (s *Set) Values() []any {
	out := make([]any, len(s.node.Values))
	for i, e := range s.node.Values {
		out[i] = valueOf(e)
	}
	return out
}

// Snapshot renders the set as a value tree.
func (s *Set) Snapshot() *ir.Node { return s.node.Clone() }
