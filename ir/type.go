package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	ListType
	SetType
	MapType
	HandledType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:    "Null",
		BoolType:    "Bool",
		NumberType:  "Number",
		StringType:  "String",
		ListType:    "List",
		SetType:     "Set",
		MapType:     "Map",
		HandledType: "Handled",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":    NullType,
		"Bool":    BoolType,
		"Number":  NumberType,
		"String":  StringType,
		"List":    ListType,
		"Set":     SetType,
		"Map":     MapType,
		"Handled": HandledType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		NumberType,
		StringType,
		ListType,
		SetType,
		MapType,
		HandledType,
	}
}

// Scalar reports whether t is usable as a map key or set element.
func (t Type) Scalar() bool {
	switch t {
	case NullType, BoolType, NumberType, StringType, HandledType:
		return true
	}
	return false
}
