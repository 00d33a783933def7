package gomap

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/laaos/encode"
	"github.com/signadot/laaos/handler"
)

type color int

func lit(t *testing.T, v any, reg *handler.Registry) string {
	t.Helper()
	n, err := FromGo(v, reg)
	if err != nil {
		t.Fatal(err)
	}
	s, err := encode.Literal(n)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestFromGo(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		expected string
	}{
		{"nil", nil, "None"},
		{"bool", true, "True"},
		{"int", 42, "42"},
		{"int8", int8(-1), "-1"},
		{"uint16", uint16(9), "9"},
		{"float", 2.5, "2.5"},
		{"whole float keeps point", 1.0, "1.0"},
		{"string", "hi", "'hi'"},
		{"slice", []any{1, "a", nil}, "[1, 'a', None]"},
		{"typed slice", []float64{0.5, 1.5}, "[0.5, 1.5]"},
		{"array", [2]int{1, 2}, "[1, 2]"},
		{"string map sorted", map[string]any{"b": 2, "a": 1}, "{'a': 1, 'b': 2}"},
		{"typed map sorted", map[int]string{2: "b", 1: "a"}, "{1: 'a', 2: 'b'}"},
		{"set", Set{3, 1, 2}, "{1, 2, 3}"},
		{"empty set", Set{}, "set()"},
		{"nested", map[string]any{"xs": []any{Set{1}, map[string]any{}}}, "{'xs': [{1}, {}]}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lit(t, tt.in, nil); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestFromGoUnsupported(t *testing.T) {
	tests := []any{
		struct{}{},
		make(chan int),
		func() {},
		uint64(1) << 63,
		Set{[]any{1}},
		map[any]any{[2]int{1, 2}: "x"},
	}
	for _, in := range tests {
		if _, err := FromGo(in, nil); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("FromGo(%T): got %v, want ErrUnsupportedType", in, err)
		}
	}
}

func TestFromGoHandled(t *testing.T) {
	reg := handler.NewRegistry(false)
	if err := reg.Register(handler.WeakEnum[color]("Color")); err != nil {
		t.Fatal(err)
	}
	if got := lit(t, color(2), reg); got != "Color(2)" {
		t.Errorf("got %s, want Color(2)", got)
	}
	if got := lit(t, []any{color(1), color(2)}, reg); got != "[Color(1), Color(2)]" {
		t.Errorf("got %s, want [Color(1), Color(2)]", got)
	}
	// without the registry the same value is unsupported
	if _, err := FromGo(color(2), nil); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("got %v, want ErrUnsupportedType", err)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []any{
		nil,
		true,
		int64(3),
		2.5,
		"hi",
		[]any{int64(1), "a", nil},
		Set{int64(1), int64(2)},
		map[any]any{"a": int64(1), "b": []any{2.5}},
	}
	for _, in := range tests {
		n, err := FromGo(in, nil)
		if err != nil {
			t.Fatal(err)
		}
		out, err := ToGo(n)
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(in, out); d != "" {
			t.Errorf("round trip (-want +got):\n%s", d)
		}
	}
}
