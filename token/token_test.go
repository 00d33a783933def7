package token

import (
	"errors"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		types []TokenType
	}{
		{"root assign", "store = {}",
			[]TokenType{TIdent, TAssign, TLCurl, TRCurl}},
		{"subscript assign", "store['a'] = 1",
			[]TokenType{TIdent, TLSquare, TString, TRSquare, TAssign, TInt}},
		{"delete", "del store['a']",
			[]TokenType{TDel, TIdent, TLSquare, TString, TRSquare}},
		{"call", "store['xs'].append(1.5)",
			[]TokenType{TIdent, TLSquare, TString, TRSquare, TDot, TIdent, TLParen, TFloat, TRParen}},
		{"keywords", "True False None",
			[]TokenType{TTrue, TFalse, TNone}},
		{"negative numbers", "[-1, -2.5]",
			[]TokenType{TLSquare, TInt, TComma, TFloat, TRSquare}},
		{"exponent", "1e14",
			[]TokenType{TFloat}},
		{"map literal", "{'a': 1}",
			[]TokenType{TLCurl, TString, TColon, TInt, TRCurl}},
		{"comment to eol", "store = {} # hello, [world]",
			[]TokenType{TIdent, TAssign, TLCurl, TRCurl}},
		{"empty", "", nil},
		{"comment only", "# nothing here", nil},
		{"double quoted", `store["it's"] = 0`,
			[]TokenType{TIdent, TLSquare, TString, TRSquare, TAssign, TInt}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize([]byte(tt.in), 1)
			if err != nil {
				t.Fatal(err)
			}
			if len(toks) != len(tt.types) {
				t.Fatalf("got %d tokens, want %d: %v", len(toks), len(tt.types), toks)
			}
			for i, tok := range toks {
				if tok.Type != tt.types[i] {
					t.Errorf("token %d: got %s, want %s", i, tok.Type, tt.types[i])
				}
			}
		})
	}
}

func TestTokenizeErrs(t *testing.T) {
	tests := []string{
		"store['a",
		"'unterminated",
		"store ~ 1",
		"-x",
		"1.x",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			_, err := Tokenize([]byte(in), 1)
			if err == nil {
				t.Fatalf("expected error for %q", in)
			}
			if !errors.Is(err, ErrTokenize) {
				t.Errorf("error %v does not wrap ErrTokenize", err)
			}
		})
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	tests := []struct {
		in     string
		quoted string
	}{
		{"", `''`},
		{"a", `'a'`},
		{"it's", `"it's"`},
		{`say "hi"`, `'say "hi"'`},
		{"line\nbreak", `'line\nbreak'`},
		{"tab\there", `'tab\there'`},
		{"back\\slash", `'back\\slash'`},
		{"\x01", `'\x01'`},
		{"héllo", `'héllo'`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			q := Quote(tt.in)
			if q != tt.quoted {
				t.Errorf("Quote(%q) = %s, want %s", tt.in, q, tt.quoted)
			}
			u, err := Unquote(q)
			if err != nil {
				t.Fatal(err)
			}
			if u != tt.in {
				t.Errorf("Unquote(%s) = %q, want %q", q, u, tt.in)
			}
		})
	}
}

func TestUnquoteErrs(t *testing.T) {
	tests := []string{
		`'abc`,
		`abc'`,
		`'\q'`,
		`'\x2'`,
		`''x`,
	}
	for _, in := range tests {
		if _, err := Unquote(in); err == nil {
			t.Errorf("expected error for %s", in)
		}
	}
}
