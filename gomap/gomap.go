// Package gomap converts Go values to and from the ir representation.
//
// FromGo is the value encoder's entry point: it renders primitives,
// slices, maps and sets into ir nodes, consulting the handler registry
// by exact type identity before the built-in rules, and rejecting
// anything else with ErrUnsupportedType. ToGo goes the other way for
// read APIs.
package gomap

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/signadot/laaos/handler"
	"github.com/signadot/laaos/ir"
)

// Set marks a slice as an unordered collection. Element order is
// insignificant; duplicates collapse.
type Set []any

// Snapshotter is implemented by live proxy containers. FromGo uses
// the snapshot rather than walking the proxy, which also gives
// assignment its copy (never alias) semantics.
type Snapshotter interface {
	Snapshot() *ir.Node
}

// FromGo converts a Go value to its ir node. reg may be nil.
func FromGo(v any, reg *handler.Registry) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	if s, ok := v.(Snapshotter); ok {
		return s.Snapshot(), nil
	}
	if n, ok := v.(*ir.Node); ok {
		return n.Clone(), nil
	}
	if reg != nil {
		if h, ok := reg.ForType(reflect.TypeOf(v)); ok {
			return h.Encode(v)
		}
	}
	switch t := v.(type) {
	case bool:
		return ir.FromBool(t), nil
	case string:
		return ir.FromString(t), nil
	case int:
		return ir.FromInt(int64(t)), nil
	case int8:
		return ir.FromInt(int64(t)), nil
	case int16:
		return ir.FromInt(int64(t)), nil
	case int32:
		return ir.FromInt(int64(t)), nil
	case int64:
		return ir.FromInt(t), nil
	case uint:
		return fromUint(uint64(t))
	case uint8:
		return ir.FromInt(int64(t)), nil
	case uint16:
		return ir.FromInt(int64(t)), nil
	case uint32:
		return ir.FromInt(int64(t)), nil
	case uint64:
		return fromUint(t)
	case float32:
		return ir.FromFloat(float64(t)), nil
	case float64:
		return ir.FromFloat(t), nil
	case Set:
		return fromGoSet(t, reg)
	case []any:
		return fromGoSlice(t, reg)
	case map[string]any:
		return fromGoStringMap(t, reg)
	}
	return fromGoReflect(v, reg)
}

func fromUint(u uint64) (*ir.Node, error) {
	if u > math.MaxInt64 {
		return nil, fmt.Errorf("%w: uint value %d overflows the number range",
			ErrUnsupportedType, u)
	}
	return ir.FromInt(int64(u)), nil
}

func fromGoSet(s Set, reg *handler.Registry) (*ir.Node, error) {
	elems := make([]*ir.Node, 0, len(s))
	for _, e := range s {
		n, err := FromGo(e, reg)
		if err != nil {
			return nil, err
		}
		if !n.Type.Scalar() {
			return nil, fmt.Errorf("%w: unhashable set element %T",
				ErrUnsupportedType, e)
		}
		elems = append(elems, n)
	}
	return ir.FromSet(elems)
}

func fromGoSlice(s []any, reg *handler.Registry) (*ir.Node, error) {
	elems := make([]*ir.Node, len(s))
	for i, e := range s {
		n, err := FromGo(e, reg)
		if err != nil {
			return nil, err
		}
		elems[i] = n
	}
	return ir.FromSlice(elems), nil
}

func fromGoStringMap(m map[string]any, reg *handler.Registry) (*ir.Node, error) {
	// Go map iteration order is unstable, so entries are sorted by
	// key; the log stays deterministic for identical inputs.
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kvs := make([]ir.KeyVal, 0, len(m))
	for _, k := range keys {
		val, err := FromGo(m[k], reg)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: ir.FromString(k), Val: val})
	}
	return ir.FromKeyVals(kvs)
}

// fromGoReflect covers typed slices and maps ([]float64,
// map[string]int, ...) that the fast paths above miss.
func fromGoReflect(v any, reg *handler.Registry) (*ir.Node, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		elems := make([]*ir.Node, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			n, err := FromGo(rv.Index(i).Interface(), reg)
			if err != nil {
				return nil, err
			}
			elems[i] = n
		}
		return ir.FromSlice(elems), nil
	case reflect.Map:
		kvs := make([]ir.KeyVal, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key, err := FromGo(iter.Key().Interface(), reg)
			if err != nil {
				return nil, err
			}
			if !key.Type.Scalar() {
				return nil, fmt.Errorf("%w: unhashable map key %T",
					ErrUnsupportedType, iter.Key().Interface())
			}
			val, err := FromGo(iter.Value().Interface(), reg)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
		}
		sort.SliceStable(kvs, func(i, j int) bool {
			return ir.Compare(kvs[i].Key, kvs[j].Key) < 0
		})
		return ir.FromKeyVals(kvs)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}

// ToGo converts an ir node back to a plain Go value: nil, bool,
// int64, float64, string, []any, Set, or map[any]any. Handled nodes
// yield their decoded value when the replayer resolved one.
func ToGo(n *ir.Node) (any, error) {
	switch n.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return n.Bool, nil
	case ir.NumberType:
		if n.Int64 != nil {
			return *n.Int64, nil
		}
		if n.Float64 != nil {
			return *n.Float64, nil
		}
		return nil, fmt.Errorf("%w: empty number node", ErrUnsupportedType)
	case ir.StringType:
		return n.String, nil
	case ir.ListType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			g, err := ToGo(v)
			if err != nil {
				return nil, err
			}
			res[i] = g
		}
		return res, nil
	case ir.SetType:
		res := make(Set, len(n.Values))
		for i, v := range n.Values {
			g, err := ToGo(v)
			if err != nil {
				return nil, err
			}
			res[i] = g
		}
		return res, nil
	case ir.MapType:
		res := make(map[any]any, len(n.Fields))
		for i := range n.Fields {
			k, err := ToGo(n.Fields[i])
			if err != nil {
				return nil, err
			}
			v, err := ToGo(n.Values[i])
			if err != nil {
				return nil, err
			}
			res[k] = v
		}
		return res, nil
	case ir.HandledType:
		if n.Value != nil {
			return n.Value, nil
		}
		return nil, fmt.Errorf("%w: unresolved %s(...) value",
			ErrUnsupportedType, n.HandlerName)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, n.Type)
}
