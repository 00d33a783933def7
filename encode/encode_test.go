package encode

import (
	"testing"

	"github.com/signadot/laaos/ir"
	"github.com/signadot/laaos/parse"
)

func TestLiteral(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"none", "None", "None"},
		{"bools", "[True, False]", "[True, False]"},
		{"int", "-3", "-3"},
		{"float keeps point", "1.0", "1.0"},
		{"float exponent", "1e14", "1e+14"},
		{"float precision", "0.3333333333333333", "0.3333333333333333"},
		{"string", "'hi'", "'hi'"},
		{"empty list", "[]", "[]"},
		{"nested list", "[1, [2, 3]]", "[1, [2, 3]]"},
		{"empty map", "{}", "{}"},
		{"map", "{'a': 1, 'b': [2]}", "{'a': 1, 'b': [2]}"},
		{"int keys", "{1: 'x'}", "{1: 'x'}"},
		{"empty set", "set()", "set()"},
		{"set sorted", "{3, 1, 2}", "{1, 2, 3}"},
		{"set dedup", "{1, 1, 2}", "{1, 2}"},
		{"constructor", "Color(2)", "Color(2)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := parse.Statement([]byte("store['v'] = " + tt.in))
			if err != nil {
				t.Fatal(err)
			}
			got, err := Literal(st.Value)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

// Literal output reparses to an equal value, so a log encoded here is
// replayable byte for byte.
func TestLiteralRoundTrip(t *testing.T) {
	ins := []string{
		"{'a': [1, 2.5, None], 'b': {True, False}, 'c': {'d': set()}}",
		"[{}, [], set(), \"it's\"]",
	}
	for _, in := range ins {
		t.Run(in, func(t *testing.T) {
			st, err := parse.Statement([]byte("store['v'] = " + in))
			if err != nil {
				t.Fatal(err)
			}
			lit, err := Literal(st.Value)
			if err != nil {
				t.Fatal(err)
			}
			st2, err := parse.Statement([]byte("store['v'] = " + lit))
			if err != nil {
				t.Fatalf("literal %s does not reparse: %v", lit, err)
			}
			if !ir.Equal(st.Value, st2.Value) {
				t.Errorf("round trip changed the value: %s", lit)
			}
		})
	}
}

func TestStmts(t *testing.T) {
	if got := AssignStmt("store['a']", "1"); got != "store['a'] = 1" {
		t.Errorf("AssignStmt = %s", got)
	}
	if got := DeleteStmt("store['a'][0]"); got != "del store['a'][0]" {
		t.Errorf("DeleteStmt = %s", got)
	}
	if got := CallStmt("store['xs']", "insert", "0", "'x'"); got != "store['xs'].insert(0, 'x')" {
		t.Errorf("CallStmt = %s", got)
	}
	if got := CallStmt("store['xs']", "clear"); got != "store['xs'].clear()" {
		t.Errorf("CallStmt = %s", got)
	}
}

func TestEncodeColorsCover(t *testing.T) {
	colors := NewColors()
	for _, typ := range ir.Types() {
		for _, attr := range []ColorAttr{ValueColor, FieldColor, SepColor, PathColor, KeywordColor} {
			// must not panic and must preserve the text
			got := colors.Color(typ, attr, "x")
			if got == "" {
				t.Errorf("empty colorization for %s/%d", typ, attr)
			}
		}
	}
}
