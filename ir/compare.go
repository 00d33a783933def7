package ir

import (
	"cmp"
	"sort"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Set elements are compared as sorted multisets, so insertion order is
// insignificant for set equality.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}
	switch a.Type {
	case NullType:
		return 0
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case ListType:
		return compareValues(a.Values, b.Values)
	case SetType:
		return compareValues(sortedValues(a), sortedValues(b))
	case MapType:
		return compareMaps(a, b)
	case HandledType:
		if c := strings.Compare(a.HandlerName, b.HandlerName); c != 0 {
			return c
		}
		return compareValues(a.Args, b.Args)
	}
	return 0
}

// Equal reports deep equality of two nodes.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Number < String < Handled < List < Set < Map
func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case NumberType:
		return 2
	case StringType:
		return 3
	case HandledType:
		return 4
	case ListType:
		return 5
	case SetType:
		return 6
	case MapType:
		return 7
	}
	return 100
}

func compareNumbers(a, b *Node) int {
	// Sub-rank: Int64 < Float64. 1 and 1.0 encode differently so they
	// compare unequal.
	subRankA := numberSubRank(a)
	subRankB := numberSubRank(b)
	if subRankA != subRankB {
		return cmp.Compare(subRankA, subRankB)
	}
	if a.Int64 != nil {
		return cmp.Compare(*a.Int64, *b.Int64)
	}
	if a.Float64 != nil {
		return cmp.Compare(*a.Float64, *b.Float64)
	}
	return 0
}

func numberSubRank(n *Node) int {
	if n.Int64 != nil {
		return 0
	}
	return 1
}

func compareValues(a, b []*Node) int {
	minLen := min(len(a), len(b))
	for i := 0; i < minLen; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func sortedValues(n *Node) []*Node {
	vs := make([]*Node, len(n.Values))
	copy(vs, n.Values)
	sort.SliceStable(vs, func(i, j int) bool {
		return Compare(vs[i], vs[j]) < 0
	})
	return vs
}

func compareMaps(a, b *Node) int {
	// Maps compare by sorted (key, value) entries so that insertion
	// order does not affect equality.
	ae := sortedEntries(a)
	be := sortedEntries(b)
	minLen := min(len(ae), len(be))
	for i := 0; i < minLen; i++ {
		if c := Compare(ae[i].Key, be[i].Key); c != 0 {
			return c
		}
		if c := Compare(ae[i].Val, be[i].Val); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(ae), len(be))
}

func sortedEntries(n *Node) []KeyVal {
	kvs := make([]KeyVal, len(n.Fields))
	for i := range n.Fields {
		kvs[i] = KeyVal{Key: n.Fields[i], Val: n.Values[i]}
	}
	sort.SliceStable(kvs, func(i, j int) bool {
		return Compare(kvs[i].Key, kvs[j].Key) < 0
	})
	return kvs
}
