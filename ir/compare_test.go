package ir

import (
	"testing"
)

func mustSet(t *testing.T, elems ...*Node) *Node {
	t.Helper()
	n, err := FromSet(elems)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func mustMap(t *testing.T, kvs ...KeyVal) *Node {
	t.Helper()
	n, err := FromKeyVals(kvs)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Node
		expected int
	}{
		// type ranking: Null < Bool < Number < String < Handled < List < Set < Map
		{"Null < Bool", Null(), FromBool(false), -1},
		{"Bool < Number", FromBool(true), FromInt(1), -1},
		{"Number < String", FromInt(1), FromString("a"), -1},
		{"String < Handled", FromString("a"),
			FromHandled("Color", []*Node{FromInt(1)}, nil), -1},
		{"List < Set", FromSlice(nil), &Node{Type: SetType}, -1},

		{"false < true", FromBool(false), FromBool(true), -1},
		{"true == true", FromBool(true), FromBool(true), 0},

		{"int < int", FromInt(1), FromInt(2), -1},
		{"int < float", FromInt(1), FromFloat(1.0), -1},
		{"float < float", FromFloat(1.5), FromFloat(2.5), -1},
		{"int == int", FromInt(3), FromInt(3), 0},

		{"string < string", FromString("a"), FromString("b"), -1},
		{"string == string", FromString("a"), FromString("a"), 0},

		{"handled by name", FromHandled("A", nil, nil), FromHandled("B", nil, nil), -1},
		{"handled by args",
			FromHandled("A", []*Node{FromInt(1)}, nil),
			FromHandled("A", []*Node{FromInt(2)}, nil), -1},

		{"short list < long list",
			FromSlice([]*Node{FromInt(1)}),
			FromSlice([]*Node{FromInt(1), FromInt(2)}), -1},
		{"list element", FromSlice([]*Node{FromInt(1)}), FromSlice([]*Node{FromInt(2)}), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare(a, b) = %d, want %d", got, tt.expected)
			}
			if got := Compare(tt.b, tt.a); got != -tt.expected {
				t.Errorf("Compare(b, a) = %d, want %d", got, -tt.expected)
			}
		})
	}
}

func TestCompareUnordered(t *testing.T) {
	a := mustSet(t, FromInt(1), FromInt(2))
	b := mustSet(t, FromInt(2), FromInt(1))
	if !Equal(a, b) {
		t.Error("sets differing only in element order are not equal")
	}
	m1 := mustMap(t,
		KeyVal{Key: FromString("a"), Val: FromInt(1)},
		KeyVal{Key: FromString("b"), Val: FromInt(2)})
	m2 := mustMap(t,
		KeyVal{Key: FromString("b"), Val: FromInt(2)},
		KeyVal{Key: FromString("a"), Val: FromInt(1)})
	if !Equal(m1, m2) {
		t.Error("maps differing only in entry order are not equal")
	}
	m3 := mustMap(t, KeyVal{Key: FromString("a"), Val: FromInt(2)})
	if Equal(m1, m3) {
		t.Error("maps with different entries compare equal")
	}
}
