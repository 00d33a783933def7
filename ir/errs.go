package ir

import "errors"

var (
	ErrNotScalar = errors.New("not a scalar value")
	ErrBadNumber = errors.New("number not encodable")
)
