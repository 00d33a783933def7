package parse

import (
	"errors"
	"testing"

	"github.com/signadot/laaos/ir"
)

func TestStatementOK(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
	}{
		{"store = {}", KindAssign},
		{"store['a'] = 1", KindAssign},
		{"store['a'] = -2.5", KindAssign},
		{"store['a'] = None", KindAssign},
		{"store['a'] = True", KindAssign},
		{"store['a'] = 'hi'", KindAssign},
		{"store['a'] = [1, 2, [3]]", KindAssign},
		{"store['a'] = {'k': 1, 'j': {}}", KindAssign},
		{"store['a'] = {1, 2, 3}", KindAssign},
		{"store['a'] = set()", KindAssign},
		{"store['a'] = Color(2)", KindAssign},
		{"store['a'][0]['b'] = 1", KindAssign},
		{"store[0] = 1", KindAssign},
		{"store[True] = 1", KindAssign},
		{"del store['a']", KindDelete},
		{"store['xs'].append(1.0)", KindCall},
		{"store['xs'].insert(0, 'x')", KindCall},
		{"store['xs'].remove([1])", KindCall},
		{"store['xs'].clear()", KindCall},
		{"store['m'].update({'a': 1})", KindCall},
		{"store['s'].add(1)", KindCall},
		{"store['s'].discard(1)", KindCall},
		{"store['a'] = 1 # trailing comment", KindAssign},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			st, err := Statement([]byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if st.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", st.Kind, tt.kind)
			}
			if st.Raw != "" {
				t.Errorf("unexpected raw value %q", st.Raw)
			}
		})
	}
}

func TestStatementBlank(t *testing.T) {
	for _, in := range []string{"", "   ", "# comment only"} {
		st, err := Statement([]byte(in))
		if err != nil {
			t.Fatal(err)
		}
		if st != nil {
			t.Errorf("blank input %q parsed to %+v", in, st)
		}
	}
}

func TestStatementErrs(t *testing.T) {
	tests := []string{
		"store",
		"store =",
		"stone['a'] = 1",
		"store['a']",
		"del store",
		"store = []",
		"store = 1",
		"store['a'] = 1 2",
		"store[[1]] = 1",
		"store['xs'].pop()",
		"store['xs'].append()",
		"store['xs'].append(1, 2)",
		"store['xs'].insert(0)",
		"store['a'] = {1: 'x', [2]: 'y'}",
		"store['a'] = {[1], 2}",
		"store['a'] = set(1)",
		"store['a'] = 1 + 2",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			_, err := Statement([]byte(in))
			if err == nil {
				t.Fatalf("expected error for %q", in)
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("error %v does not wrap ErrParse", err)
			}
		})
	}
}

func TestStatementPermissive(t *testing.T) {
	tests := []struct {
		in  string
		raw string
	}{
		{"store['a'] = 1 + 2", "1 + 2"},
		{"store['a'] = foo.bar", "foo.bar"},
		{"store['a'] = [1, unbound]", "[1, unbound]"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			st, err := Statement([]byte(tt.in), Permissive(true))
			if err != nil {
				t.Fatal(err)
			}
			if st.Kind != KindAssign {
				t.Fatalf("kind = %s, want %s", st.Kind, KindAssign)
			}
			if st.Raw != tt.raw {
				t.Errorf("raw = %q, want %q", st.Raw, tt.raw)
			}
			if st.Value != nil {
				t.Errorf("value should be nil when raw is set")
			}
		})
	}
	// strict statements parse identically under the permissive option
	st, err := Statement([]byte("store['a'] = [1]"), Permissive(true))
	if err != nil {
		t.Fatal(err)
	}
	if st.Raw != "" || st.Value == nil || st.Value.Type != ir.ListType {
		t.Errorf("literal assignment misparsed: %+v", st)
	}
}

func TestStatementValues(t *testing.T) {
	st, err := Statement([]byte("store['m'] = {'b': 2, 'a': 1}"))
	if err != nil {
		t.Fatal(err)
	}
	if st.Value.Type != ir.MapType {
		t.Fatalf("value type = %s, want map", st.Value.Type)
	}
	// literal maps preserve written entry order
	if st.Value.Fields[0].String != "b" || st.Value.Fields[1].String != "a" {
		t.Errorf("map entry order not preserved: %v, %v",
			st.Value.Fields[0].String, st.Value.Fields[1].String)
	}

	st, err = Statement([]byte("store['s'] = {3, 1, 2, 1}"))
	if err != nil {
		t.Fatal(err)
	}
	if st.Value.Type != ir.SetType {
		t.Fatalf("value type = %s, want set", st.Value.Type)
	}
	if len(st.Value.Values) != 3 {
		t.Errorf("set length = %d, want 3", len(st.Value.Values))
	}

	st, err = Statement([]byte("store['c'] = Color(2)"))
	if err != nil {
		t.Fatal(err)
	}
	if st.Value.Type != ir.HandledType || st.Value.HandlerName != "Color" {
		t.Fatalf("constructor misparsed: %+v", st.Value)
	}

	st, err = Statement([]byte("del store['a'][0]"), WithLine(7))
	if err != nil {
		t.Fatal(err)
	}
	acc, err := st.Accessor()
	if err != nil {
		t.Fatal(err)
	}
	if acc != "store['a'][0]" {
		t.Errorf("accessor = %s, want store['a'][0]", acc)
	}
	if st.Line != 7 {
		t.Errorf("line = %d, want 7", st.Line)
	}
}
