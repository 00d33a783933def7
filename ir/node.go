package ir

import (
	"sort"
	"strconv"
)

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string

	Fields []*Node
	Values []*Node

	String  string
	Bool    bool
	Int64   *int64
	Float64 *float64

	// HandledType
	HandlerName string
	Args        []*Node
	Value       any
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.String = y.String
	dst.Bool = y.Bool
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	dst.HandlerName = y.HandlerName
	dst.Value = y.Value
	if y.Args != nil {
		dst.Args = make([]*Node, len(y.Args))
		for i, a := range y.Args {
			dst.Args[i] = a.Clone()
		}
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, yf := range y.Fields {
			f := yf.Clone()
			f.Parent = dst
			f.ParentIndex = i
			f.ParentField = yf.ParentField
			dst.Fields[i] = f
		}
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			v := yv.Clone()
			v.Parent = dst
			v.ParentIndex = i
			v.ParentField = yv.ParentField
			dst.Values[i] = v
		}
	}
	return dst
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v}
}

func FromFloat(f float64) *Node {
	return &Node{Type: NumberType, Float64: &f}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{Type: ListType}
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
	}
	return res
}

// FromSet builds a set node. Elements are sorted by Compare and
// deduplicated by their scalar literal.
func FromSet(elems []*Node) (*Node, error) {
	res := &Node{Type: SetType}
	seen := map[string]bool{}
	for _, e := range elems {
		lit, err := ScalarLiteral(e)
		if err != nil {
			return nil, err
		}
		if seen[lit] {
			continue
		}
		seen[lit] = true
		res.Values = append(res.Values, e)
	}
	sort.SliceStable(res.Values, func(i, j int) bool {
		return Compare(res.Values[i], res.Values[j]) < 0
	})
	for i, e := range res.Values {
		e.Parent = res
		e.ParentIndex = i
	}
	return res, nil
}

type KeyVal struct {
	Key *Node
	Val *Node
}

// FromKeyVals builds a map node from key/value pairs in order. Keys
// must be scalar.
func FromKeyVals(kvs []KeyVal) (*Node, error) {
	res := &Node{Type: MapType}
	res.Fields = make([]*Node, 0, len(kvs))
	res.Values = make([]*Node, 0, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		if err := MapSet(res, kv.Key, kv.Val); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// NewMap returns an empty map node.
func NewMap() *Node {
	return &Node{Type: MapType}
}

// Get returns the value under a string key of a map node, or nil.
func Get(y *Node, field string) *Node {
	if y == nil || y.Type != MapType {
		return nil
	}
	for i := range y.Fields {
		f := y.Fields[i]
		if f.Type == StringType && f.String == field {
			return y.Values[i]
		}
	}
	return nil
}

// Accessor renders this node's path from the root as a store accessor,
// e.g. "store['config']['seed']" or "store['losses'][0]". The root
// node renders as "store".
func (y *Node) Accessor() string {
	if y.Parent == nil {
		return "store"
	}
	switch y.Parent.Type {
	case MapType:
		return y.Parent.Accessor() + "[" + y.ParentField + "]"
	case ListType:
		return y.Parent.Accessor() + "[" + strconv.Itoa(y.ParentIndex) + "]"
	default:
		return y.Parent.Accessor()
	}
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
		for _, a := range y.Args {
			if err := a.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}
