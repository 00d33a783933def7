package store

import (
	"fmt"

	"github.com/signadot/laaos/gomap"
	"github.com/signadot/laaos/ir"
)

// proxy is implemented by Map, List, and Set.
type proxy interface {
	gomap.Snapshotter
	pbase() *base
}

// base links a container to its store and to its parent container.
// The accessor path of a container is computed on demand by walking
// parents, so it stays correct as list siblings shift. A container
// whose parent link is nil and which is not the root has been
// overwritten or deleted and is detached.
type base struct {
	store  *Store
	parent proxy
	// keyLit is the encoded key literal when parent is a Map.
	keyLit string
	root   bool
}

func (b *base) pbase() *base { return b }

// path renders the accessor of this container, e.g. store['xs'][0].
func (b *base) path(self proxy) (string, error) {
	if b.root {
		return "store", nil
	}
	if b.parent == nil {
		return "", fmt.Errorf("%w: container is detached from the store", ErrInvalidMutation)
	}
	head, err := b.parent.pbase().path(b.parent)
	if err != nil {
		return "", err
	}
	switch p := b.parent.(type) {
	case *Map:
		return head + "[" + b.keyLit + "]", nil
	case *List:
		for i, e := range p.elems {
			if e == self {
				return fmt.Sprintf("%s[%d]", head, i), nil
			}
		}
		return "", fmt.Errorf("%w: container is detached from the store", ErrInvalidMutation)
	default:
		return "", fmt.Errorf("%w: container is detached from the store", ErrInvalidMutation)
	}
}

// attach links a stored element to its new parent.
func attach(stored any, parent proxy, keyLit string) {
	if p, ok := stored.(proxy); ok {
		b := p.pbase()
		b.parent = parent
		b.keyLit = keyLit
	}
}

// detach severs a stored element from the store. Nested containers
// stay linked to their (now detached) parent and fail the same way.
func detach(stored any) {
	if p, ok := stored.(proxy); ok {
		b := p.pbase()
		b.parent = nil
		b.root = false
		b.keyLit = ""
	}
}

// nodeOf renders a stored element as a node for comparison or
// snapshotting. Scalars are stored as nodes directly; containers
// snapshot their live state.
func nodeOf(stored any) *ir.Node {
	if p, ok := stored.(proxy); ok {
		return p.Snapshot()
	}
	return stored.(*ir.Node)
}

// snapshotOf is nodeOf with scalars cloned, for building snapshot
// trees the caller may own.
func snapshotOf(stored any) *ir.Node {
	if p, ok := stored.(proxy); ok {
		return p.Snapshot()
	}
	return stored.(*ir.Node).Clone()
}

// valueOf converts a stored element to its read-side representation:
// proxies as-is, scalars as plain Go values.
func valueOf(stored any) any {
	if p, ok := stored.(proxy); ok {
		return p
	}
	v, err := gomap.ToGo(stored.(*ir.Node))
	if err != nil {
		// scalars stored by this package always convert
		panic(err)
	}
	return v
}
