package gomap

import "errors"

// ErrUnsupportedType reports a value whose type has neither a
// built-in rule nor a registered handler. Hitting it is a programmer
// error: register a handler or restructure the value.
var ErrUnsupportedType = errors.New("unsupported type")
