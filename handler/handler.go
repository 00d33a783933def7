// Package handler provides the type handler registry.
//
// Handlers let custom immutable Go types participate in value
// encoding. A handler is keyed by exact type identity (reflect.Type,
// no interface or embedding dispatch) so the encode and decode sides
// stay symmetric, and by a constructor name, which is how the value
// appears in the log (e.g. "Color(2)"). The trusted replayer resolves
// constructor calls back through Decode; the safe replayer rejects
// them.
package handler

import (
	"reflect"

	"github.com/signadot/laaos/ir"
)

type Handler interface {
	// Name is the constructor identifier under which encoded values
	// appear in the log. Handlers that encode to plain literals (for
	// example string-backed enums) still carry a name for
	// registration, but it never reaches the log.
	Name() string

	// Type is the exact Go type this handler serves.
	Type() reflect.Type

	// Encode converts a value of the handled type to a node. The
	// result is either a plain literal node or an ir.HandledType
	// node carrying Name and scalar arguments.
	Encode(v any) (*ir.Node, error)

	// Decode reconstructs a value from the constructor arguments it
	// was encoded with.
	Decode(args []*ir.Node) (any, error)
}
