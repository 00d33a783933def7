package ir

import "fmt"

// Mutation helpers used by the replayer. All maintain the parent
// back-reference invariants. Callers are responsible for checking the
// node's container type first where it is ambiguous.

// MapIndex returns the entry index for a key, looked up by its scalar
// literal, or -1.
func MapIndex(m *Node, keyLit string) int {
	for i := range m.Fields {
		if m.Fields[i].ParentField == keyLit {
			return i
		}
	}
	return -1
}

// MapGet returns the value stored under key, or nil.
func MapGet(m *Node, key *Node) (*Node, error) {
	lit, err := ScalarLiteral(key)
	if err != nil {
		return nil, err
	}
	i := MapIndex(m, lit)
	if i < 0 {
		return nil, nil
	}
	return m.Values[i], nil
}

// MapSet inserts or replaces the value under key.
func MapSet(m *Node, key, val *Node) error {
	lit, err := ScalarLiteral(key)
	if err != nil {
		return err
	}
	if i := MapIndex(m, lit); i >= 0 {
		old := m.Values[i]
		old.Parent = nil
		val.Parent = m
		val.ParentIndex = i
		val.ParentField = lit
		m.Values[i] = val
		return nil
	}
	i := len(m.Fields)
	key.Parent = m
	key.ParentIndex = i
	key.ParentField = lit
	val.Parent = m
	val.ParentIndex = i
	val.ParentField = lit
	m.Fields = append(m.Fields, key)
	m.Values = append(m.Values, val)
	return nil
}

// MapDelete removes the entry under key. It reports whether an entry
// was present.
func MapDelete(m *Node, key *Node) (bool, error) {
	lit, err := ScalarLiteral(key)
	if err != nil {
		return false, err
	}
	i := MapIndex(m, lit)
	if i < 0 {
		return false, nil
	}
	m.Values[i].Parent = nil
	m.Fields = append(m.Fields[:i], m.Fields[i+1:]...)
	m.Values = append(m.Values[:i], m.Values[i+1:]...)
	reindex(m)
	return true, nil
}

// MapUpdate merges the entries of src into m, in src order.
func MapUpdate(m, src *Node) error {
	for i := range src.Fields {
		if err := MapSet(m, src.Fields[i].Clone(), src.Values[i].Clone()); err != nil {
			return err
		}
	}
	return nil
}

func ListAppend(l, v *Node) {
	v.Parent = l
	v.ParentIndex = len(l.Values)
	l.Values = append(l.Values, v)
}

func ListInsert(l *Node, i int, v *Node) error {
	if i < 0 || i > len(l.Values) {
		return fmt.Errorf("insert index %d out of range [0:%d]", i, len(l.Values))
	}
	l.Values = append(l.Values, nil)
	copy(l.Values[i+1:], l.Values[i:])
	v.Parent = l
	l.Values[i] = v
	reindex(l)
	return nil
}

func ListSet(l *Node, i int, v *Node) error {
	if i < 0 || i >= len(l.Values) {
		return fmt.Errorf("index %d out of range [0:%d]", i, len(l.Values))
	}
	l.Values[i].Parent = nil
	v.Parent = l
	v.ParentIndex = i
	l.Values[i] = v
	return nil
}

func ListDelete(l *Node, i int) error {
	if i < 0 || i >= len(l.Values) {
		return fmt.Errorf("index %d out of range [0:%d]", i, len(l.Values))
	}
	l.Values[i].Parent = nil
	l.Values = append(l.Values[:i], l.Values[i+1:]...)
	reindex(l)
	return nil
}

// ListRemove removes the first element equal to v. It reports whether
// an element was removed.
func ListRemove(l, v *Node) bool {
	for i, e := range l.Values {
		if Equal(e, v) {
			_ = ListDelete(l, i)
			return true
		}
	}
	return false
}

// Clear removes all elements of a list, set, or map node.
func Clear(n *Node) {
	for _, v := range n.Values {
		v.Parent = nil
	}
	for _, f := range n.Fields {
		f.Parent = nil
	}
	n.Values = nil
	n.Fields = nil
}

// SetAdd inserts v into a set node, keeping elements sorted. Adding an
// element already present is a no-op.
func SetAdd(s, v *Node) error {
	lit, err := ScalarLiteral(v)
	if err != nil {
		return err
	}
	for _, e := range s.Values {
		eLit, err := ScalarLiteral(e)
		if err != nil {
			return err
		}
		if eLit == lit {
			return nil
		}
	}
	i := 0
	for i < len(s.Values) && Compare(s.Values[i], v) < 0 {
		i++
	}
	s.Values = append(s.Values, nil)
	copy(s.Values[i+1:], s.Values[i:])
	v.Parent = s
	s.Values[i] = v
	reindex(s)
	return nil
}

// SetDiscard removes v from a set node if present.
func SetDiscard(s, v *Node) error {
	lit, err := ScalarLiteral(v)
	if err != nil {
		return err
	}
	for i, e := range s.Values {
		eLit, err := ScalarLiteral(e)
		if err != nil {
			return err
		}
		if eLit == lit {
			e.Parent = nil
			s.Values = append(s.Values[:i], s.Values[i+1:]...)
			reindex(s)
			return nil
		}
	}
	return nil
}

func reindex(n *Node) {
	for i, v := range n.Values {
		v.ParentIndex = i
	}
	for i, f := range n.Fields {
		f.ParentIndex = i
	}
}
