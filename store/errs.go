package store

import (
	"errors"

	"github.com/signadot/laaos/wal"
)

// ErrInvalidMutation indicates a mutation was rejected before any
// statement was logged: index out of range, deleting an absent key,
// an unhashable key or set element, or an operation on a detached
// container.
var ErrInvalidMutation = errors.New("invalid mutation")

// ErrClosedStore is returned by mutations on a closed store.
var ErrClosedStore = wal.ErrClosedStore
