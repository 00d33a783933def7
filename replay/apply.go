package replay

import (
	"fmt"

	"github.com/signadot/laaos/ir"
	"github.com/signadot/laaos/parse"
)

// Apply replays one statement against root and returns the (possibly
// replaced) root. A nil root is established by the first root
// assignment.
func Apply(root *ir.Node, st *parse.Stmt) (*ir.Node, error) {
	switch st.Kind {
	case parse.KindAssign:
		return applyAssign(root, st)
	case parse.KindDelete:
		return root, applyDelete(root, st)
	case parse.KindCall:
		return root, applyCall(root, st)
	}
	return nil, fmt.Errorf("%w: unknown statement kind %s", ErrReplay, st.Kind)
}

func applyAssign(root *ir.Node, st *parse.Stmt) (*ir.Node, error) {
	if st.Value == nil {
		return nil, fmt.Errorf("%w: assignment without a value", ErrReplay)
	}
	if len(st.Path) == 0 {
		if st.Value.Type != ir.MapType {
			return nil, fmt.Errorf("%w: root must be a map, got %s",
				ErrReplay, st.Value.Type)
		}
		return st.Value, nil
	}
	parent, err := navigate(root, st.Path[:len(st.Path)-1])
	if err != nil {
		return nil, err
	}
	last := st.Path[len(st.Path)-1]
	switch parent.Type {
	case ir.MapType:
		if err := ir.MapSet(parent, last, st.Value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReplay, err)
		}
	case ir.ListType:
		i, err := intKey(last)
		if err != nil {
			return nil, err
		}
		if err := ir.ListSet(parent, i, st.Value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReplay, err)
		}
	default:
		return nil, fmt.Errorf("%w: cannot assign into %s", ErrReplay, parent.Type)
	}
	return root, nil
}

func applyDelete(root *ir.Node, st *parse.Stmt) error {
	parent, err := navigate(root, st.Path[:len(st.Path)-1])
	if err != nil {
		return err
	}
	last := st.Path[len(st.Path)-1]
	switch parent.Type {
	case ir.MapType:
		ok, err := ir.MapDelete(parent, last)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrReplay, err)
		}
		if !ok {
			lit, _ := ir.ScalarLiteral(last)
			return fmt.Errorf("%w: no such key %s", ErrReplay, lit)
		}
	case ir.ListType:
		i, err := intKey(last)
		if err != nil {
			return err
		}
		if err := ir.ListDelete(parent, i); err != nil {
			return fmt.Errorf("%w: %w", ErrReplay, err)
		}
	default:
		return fmt.Errorf("%w: cannot delete from %s", ErrReplay, parent.Type)
	}
	return nil
}

func applyCall(root *ir.Node, st *parse.Stmt) error {
	target, err := navigate(root, st.Path)
	if err != nil {
		return err
	}
	switch st.Method {
	case "append":
		if target.Type != ir.ListType {
			return callTypeErr(st.Method, target)
		}
		ir.ListAppend(target, st.Args[0])
	case "insert":
		if target.Type != ir.ListType {
			return callTypeErr(st.Method, target)
		}
		i, err := intKey(st.Args[0])
		if err != nil {
			return err
		}
		if err := ir.ListInsert(target, i, st.Args[1]); err != nil {
			return fmt.Errorf("%w: %w", ErrReplay, err)
		}
	case "remove":
		switch target.Type {
		case ir.ListType:
			if !ir.ListRemove(target, st.Args[0]) {
				return fmt.Errorf("%w: remove: value not found", ErrReplay)
			}
		case ir.SetType:
			if err := ir.SetDiscard(target, st.Args[0]); err != nil {
				return fmt.Errorf("%w: %w", ErrReplay, err)
			}
		default:
			return callTypeErr(st.Method, target)
		}
	case "clear":
		switch target.Type {
		case ir.ListType, ir.SetType, ir.MapType:
			ir.Clear(target)
		default:
			return callTypeErr(st.Method, target)
		}
	case "update":
		if target.Type != ir.MapType || st.Args[0].Type != ir.MapType {
			return callTypeErr(st.Method, target)
		}
		if err := ir.MapUpdate(target, st.Args[0]); err != nil {
			return fmt.Errorf("%w: %w", ErrReplay, err)
		}
	case "add":
		if target.Type != ir.SetType {
			return callTypeErr(st.Method, target)
		}
		if err := ir.SetAdd(target, st.Args[0]); err != nil {
			return fmt.Errorf("%w: %w", ErrReplay, err)
		}
	case "discard":
		if target.Type != ir.SetType {
			return callTypeErr(st.Method, target)
		}
		if err := ir.SetDiscard(target, st.Args[0]); err != nil {
			return fmt.Errorf("%w: %w", ErrReplay, err)
		}
	default:
		return fmt.Errorf("%w: unknown method %q", ErrReplay, st.Method)
	}
	return nil
}

func callTypeErr(method string, target *ir.Node) error {
	return fmt.Errorf("%w: %s on %s at %s",
		ErrReplay, method, target.Type, target.Accessor())
}

func navigate(root *ir.Node, path []*ir.Node) (*ir.Node, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: statement before root assignment", ErrReplay)
	}
	cur := root
	for _, key := range path {
		switch cur.Type {
		case ir.MapType:
			val, err := ir.MapGet(cur, key)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrReplay, err)
			}
			if val == nil {
				lit, _ := ir.ScalarLiteral(key)
				return nil, fmt.Errorf("%w: no such key %s at %s",
					ErrReplay, lit, cur.Accessor())
			}
			cur = val
		case ir.ListType:
			i, err := intKey(key)
			if err != nil {
				return nil, err
			}
			if i < 0 || i >= len(cur.Values) {
				return nil, fmt.Errorf("%w: index %d out of range at %s",
					ErrReplay, i, cur.Accessor())
			}
			cur = cur.Values[i]
		default:
			return nil, fmt.Errorf("%w: cannot subscript %s at %s",
				ErrReplay, cur.Type, cur.Accessor())
		}
	}
	return cur, nil
}

func intKey(n *ir.Node) (int, error) {
	if n.Type != ir.NumberType || n.Int64 == nil {
		return 0, fmt.Errorf("%w: index must be an integer", ErrReplay)
	}
	return int(*n.Int64), nil
}
