package handler

import (
	"fmt"
	"reflect"

	"github.com/signadot/laaos/ir"
)

// WeakEnumValue constrains the integer-backed enumeration kinds
// WeakEnum serves.
type WeakEnumValue interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32
}

// WeakEnum returns a handler for an integer-backed enumeration type.
// Values encode by their numeric value as a constructor call, e.g.
// "Color(2)", and decode by value lookup. Decoding requires trusted
// replay.
func WeakEnum[T WeakEnumValue](name string) Handler {
	return &weakEnum[T]{name: name}
}

type weakEnum[T WeakEnumValue] struct {
	name string
}

func (h *weakEnum[T]) Name() string {
	return h.name
}

func (h *weakEnum[T]) Type() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}

func (h *weakEnum[T]) Encode(v any) (*ir.Node, error) {
	t, ok := v.(T)
	if !ok {
		return nil, fmt.Errorf("handler %q: cannot encode %T", h.name, v)
	}
	return ir.FromHandled(h.name, []*ir.Node{ir.FromInt(int64(t))}, v), nil
}

func (h *weakEnum[T]) Decode(args []*ir.Node) (any, error) {
	if len(args) != 1 || args[0].Type != ir.NumberType || args[0].Int64 == nil {
		return nil, fmt.Errorf("handler %q: expected one integer argument", h.name)
	}
	return T(*args[0].Int64), nil
}

// StrEnum returns a handler for a string-backed enumeration type.
// Values encode by their string tag as a plain string literal, so
// they survive safe replay as strings; the typed value is only
// recovered where Decode runs.
func StrEnum[T ~string](name string) Handler {
	return &strEnum[T]{name: name}
}

type strEnum[T ~string] struct {
	name string
}

func (h *strEnum[T]) Name() string {
	return h.name
}

func (h *strEnum[T]) Type() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}

func (h *strEnum[T]) Encode(v any) (*ir.Node, error) {
	t, ok := v.(T)
	if !ok {
		return nil, fmt.Errorf("handler %q: cannot encode %T", h.name, v)
	}
	return ir.FromString(string(t)), nil
}

func (h *strEnum[T]) Decode(args []*ir.Node) (any, error) {
	if len(args) != 1 || args[0].Type != ir.StringType {
		return nil, fmt.Errorf("handler %q: expected one string argument", h.name)
	}
	return T(args[0].String), nil
}
