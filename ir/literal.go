package ir

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/laaos/token"
)

// FormatInt renders an integer literal.
func FormatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// FormatFloat renders a float literal in shortest round-trip form. The
// result always contains a '.' or an exponent so it re-parses as a
// float rather than an integer. Non-finite values have no literal form
// and return ErrBadNumber.
func FormatFloat(f float64) (string, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("%w: %v", ErrBadNumber, f)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}

// ScalarLiteral renders the literal form of a scalar node. Map keys
// and set elements are identified by this form. Handled values render
// as their constructor call.
func ScalarLiteral(n *Node) (string, error) {
	switch n.Type {
	case NullType:
		return "None", nil
	case BoolType:
		if n.Bool {
			return "True", nil
		}
		return "False", nil
	case NumberType:
		if n.Int64 != nil {
			return FormatInt(*n.Int64), nil
		}
		if n.Float64 != nil {
			return FormatFloat(*n.Float64)
		}
		return "", fmt.Errorf("%w: empty number node", ErrBadNumber)
	case StringType:
		return token.Quote(n.String), nil
	case HandledType:
		var b strings.Builder
		b.WriteString(n.HandlerName)
		b.WriteByte('(')
		for i, a := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			lit, err := ScalarLiteral(a)
			if err != nil {
				return "", err
			}
			b.WriteString(lit)
		}
		b.WriteByte(')')
		return b.String(), nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotScalar, n.Type)
}

// FromHandled builds a handled-value node for the named constructor.
func FromHandled(name string, args []*Node, value any) *Node {
	return &Node{
		Type:        HandledType,
		HandlerName: name,
		Args:        args,
		Value:       value,
	}
}
