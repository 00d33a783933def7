package encode

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/laaos/ir"
)

type EncState struct {
	Color func(ir.Type, ColorAttr, string) string
}

type EncodeOption func(*EncState)

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c != nil {
			es.Color = c.Color
		}
	}
}

// Literal renders a node as a single-line literal.
func Literal(node *ir.Node, opts ...EncodeOption) (string, error) {
	var b strings.Builder
	if err := Encode(node, &b, opts...); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Encode writes the literal form of node to w.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return encode(node, w, es)
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.NullType, ir.BoolType, ir.NumberType, ir.StringType, ir.HandledType:
		lit, err := ir.ScalarLiteral(node)
		if err != nil {
			return err
		}
		return writeString(w, es.colored(node.Type, ValueColor, lit))
	case ir.ListType:
		if err := writeString(w, es.colored(node.Type, SepColor, "[")); err != nil {
			return err
		}
		for i, v := range node.Values {
			if i > 0 {
				if err := writeString(w, es.colored(node.Type, SepColor, ", ")); err != nil {
					return err
				}
			}
			if err := encode(v, w, es); err != nil {
				return err
			}
		}
		return writeString(w, es.colored(node.Type, SepColor, "]"))
	case ir.SetType:
		if len(node.Values) == 0 {
			return writeString(w, es.colored(node.Type, ValueColor, "set()"))
		}
		if err := writeString(w, es.colored(node.Type, SepColor, "{")); err != nil {
			return err
		}
		for i, v := range sortedSetValues(node) {
			if i > 0 {
				if err := writeString(w, es.colored(node.Type, SepColor, ", ")); err != nil {
					return err
				}
			}
			if err := encode(v, w, es); err != nil {
				return err
			}
		}
		return writeString(w, es.colored(node.Type, SepColor, "}"))
	case ir.MapType:
		if err := writeString(w, es.colored(node.Type, SepColor, "{")); err != nil {
			return err
		}
		for i := range node.Fields {
			if i > 0 {
				if err := writeString(w, es.colored(node.Type, SepColor, ", ")); err != nil {
					return err
				}
			}
			keyLit, err := ir.ScalarLiteral(node.Fields[i])
			if err != nil {
				return err
			}
			if err := writeString(w, es.colored(node.Type, FieldColor, keyLit)); err != nil {
				return err
			}
			if err := writeString(w, es.colored(node.Type, SepColor, ": ")); err != nil {
				return err
			}
			if err := encode(node.Values[i], w, es); err != nil {
				return err
			}
		}
		return writeString(w, es.colored(node.Type, SepColor, "}"))
	}
	return fmt.Errorf("%w: cannot encode %s", ErrEncoding, node.Type)
}

func sortedSetValues(node *ir.Node) []*ir.Node {
	// set nodes keep their elements sorted; re-sorting here keeps the
	// encoding canonical for hand-built nodes too
	vs := make([]*ir.Node, len(node.Values))
	copy(vs, node.Values)
	for i := 1; i < len(vs); i++ {
		for j := i; j > 0 && ir.Compare(vs[j], vs[j-1]) < 0; j-- {
			vs[j], vs[j-1] = vs[j-1], vs[j]
		}
	}
	return vs
}

func (es *EncState) colored(t ir.Type, attr ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, attr, s)
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}
