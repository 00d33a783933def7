package store

import (
	"fmt"

	"github.com/signadot/laaos/encode"
	"github.com/signadot/laaos/gomap"
	"github.com/signadot/laaos/ir"
)

// materialize turns a value tree into stored form: containers become
// proxies owned by this store, scalars become owned nodes. The input
// tree is not retained, so assigned values are copied, never aliased.
func (s *Store) materialize(n *ir.Node) (any, error) {
	switch n.Type {
	case ir.MapType:
		m := newMap(s)
		for i, f := range n.Fields {
			stored, err := s.materialize(n.Values[i])
			if err != nil {
				return nil, err
			}
			m.put(f.Clone(), f.ParentField, stored)
		}
		return m, nil
	case ir.ListType:
		l := newList(s)
		for _, e := range n.Values {
			stored, err := s.materialize(e)
			if err != nil {
				return nil, err
			}
			l.elems = append(l.elems, stored)
			attach(stored, l, "")
		}
		return l, nil
	case ir.SetType:
		return newSet(s, n.Clone()), nil
	default:
		c := n.Clone()
		c.Parent = nil
		return c, nil
	}
}

// encodeIn converts a caller value through the store's handlers and
// renders its literal, rejecting unencodable values before anything
// is applied or logged.
func (s *Store) encodeIn(value any) (any, string, error) {
	n, err := gomap.FromGo(value, s.reg)
	if err != nil {
		return nil, "", err
	}
	lit, err := encode.Literal(n)
	if err != nil {
		return nil, "", err
	}
	stored, err := s.materialize(n)
	if err != nil {
		return nil, "", err
	}
	return stored, lit, nil
}

// compareIn converts a caller value for equality checks against
// stored elements, without installing it anywhere.
func (s *Store) compareIn(value any) (*ir.Node, string, error) {
	n, err := gomap.FromGo(value, s.reg)
	if err != nil {
		return nil, "", err
	}
	lit, err := encode.Literal(n)
	if err != nil {
		return nil, "", err
	}
	return n, lit, nil
}

// keyOf converts a map key or set element, which must encode to a
// scalar literal.
func (s *Store) keyOf(key any) (*ir.Node, string, error) {
	n, err := gomap.FromGo(key, s.reg)
	if err != nil {
		return nil, "", err
	}
	if !n.Type.Scalar() {
		return nil, "", fmt.Errorf("%w: %s cannot be a key", ErrInvalidMutation, n.Type)
	}
	lit, err := encode.Literal(n)
	if err != nil {
		return nil, "", err
	}
	n.Parent = nil
	return n, lit, nil
}
