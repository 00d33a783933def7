package parse

import (
	"strings"

	"github.com/signadot/laaos/ir"
)

type Kind int

const (
	KindAssign Kind = iota
	KindDelete
	KindCall
)

func (k Kind) String() string {
	switch k {
	case KindAssign:
		return "assign"
	case KindDelete:
		return "delete"
	case KindCall:
		return "call"
	}
	return "<unknown kind>"
}

// Methods the statement grammar admits, with their arity.
var Methods = map[string]int{
	"append":  1,
	"insert":  2,
	"remove":  1,
	"clear":   0,
	"update":  1,
	"add":     1,
	"discard": 1,
}

// Stmt is one parsed log statement.
type Stmt struct {
	Kind Kind

	// Path holds the subscript keys from the root; empty for the
	// root itself ("store = {}").
	Path []*ir.Node

	// Value is the assigned literal for KindAssign. It is nil when
	// Raw is set.
	Value *ir.Node

	// Raw is the unparsed right-hand side of an assignment whose
	// expression falls outside the literal grammar. It is only
	// populated under the Permissive option; strict parses fail
	// instead.
	Raw string

	// Method and Args are set for KindCall.
	Method string
	Args   []*ir.Node

	Line int
	Text string
}

// Accessor renders the statement's target path as a store accessor.
func (s *Stmt) Accessor() (string, error) {
	var b strings.Builder
	b.WriteString("store")
	for _, k := range s.Path {
		lit, err := ir.ScalarLiteral(k)
		if err != nil {
			return "", err
		}
		b.WriteByte('[')
		b.WriteString(lit)
		b.WriteByte(']')
	}
	return b.String(), nil
}
