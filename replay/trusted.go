package replay

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/signadot/laaos/gomap"
	"github.com/signadot/laaos/ir"
	"github.com/signadot/laaos/parse"
)

// resolve runs the trusted decode paths for one statement: handled
// nodes get their values reconstructed through the registry, and an
// unparsed right-hand side is evaluated as an expression over the
// registered constructors.
func (l *loader) resolve(st *parse.Stmt) error {
	if st.Raw != "" {
		val, err := l.evalRaw(st.Raw)
		if err != nil {
			return err
		}
		if len(st.Path) == 0 && val.Type != ir.MapType {
			return fmt.Errorf("%w: root must be a map, got %s", ErrReplay, val.Type)
		}
		st.Value = val
		st.Raw = ""
	}
	nodes := make([]*ir.Node, 0, len(st.Path)+len(st.Args)+1)
	nodes = append(nodes, st.Path...)
	nodes = append(nodes, st.Args...)
	if st.Value != nil {
		nodes = append(nodes, st.Value)
	}
	for _, n := range nodes {
		if err := l.resolveNode(n); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) resolveNode(n *ir.Node) error {
	return n.Visit(func(y *ir.Node, isPost bool) (bool, error) {
		if isPost {
			return false, nil
		}
		for _, f := range y.Fields {
			if err := l.resolveHandled(f); err != nil {
				return false, err
			}
		}
		return true, l.resolveHandled(y)
	})
}

func (l *loader) resolveHandled(y *ir.Node) error {
	if y.Type != ir.HandledType || y.Value != nil {
		return nil
	}
	if l.reg == nil {
		return fmt.Errorf("%w: no handler registry for %s(...)",
			ErrReplay, y.HandlerName)
	}
	h, ok := l.reg.ForName(y.HandlerName)
	if !ok {
		return fmt.Errorf("%w: no handler for %s(...)", ErrReplay, y.HandlerName)
	}
	v, err := h.Decode(y.Args)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReplay, err)
	}
	y.Value = v
	return nil
}

// evalRaw evaluates an expression with full host semantics in an
// environment exposing the registered constructors.
func (l *loader) evalRaw(raw string) (*ir.Node, error) {
	res, err := expr.Eval(raw, l.env())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReplay, err)
	}
	node, err := gomap.FromGo(res, l.reg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReplay, err)
	}
	return node, nil
}

func (l *loader) env() map[string]any {
	env := map[string]any{
		"None":  nil,
		"True":  true,
		"False": false,
	}
	if l.reg == nil {
		return env
	}
	for _, h := range l.reg.Handlers() {
		h := h
		env[h.Name()] = func(args ...any) (any, error) {
			irArgs := make([]*ir.Node, len(args))
			for i, a := range args {
				n, err := gomap.FromGo(a, l.reg)
				if err != nil {
					return nil, err
				}
				irArgs[i] = n
			}
			return h.Decode(irArgs)
		}
	}
	return env
}
