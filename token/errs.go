package token

import (
	"errors"
	"fmt"
)

var ErrTokenize = errors.New("tokenize error")

type TokenizeErr struct {
	Err error
	Pos Pos
}

func NewTokenizeErr(e error, p Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: p}
}

func (e *TokenizeErr) Unwrap() error {
	return e.Err
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func UnexpectedErr(what string, p Pos) error {
	return NewTokenizeErr(fmt.Errorf("%w: unexpected %s", ErrTokenize, what), p)
}
