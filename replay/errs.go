package replay

import (
	"errors"
	"fmt"
)

// ErrUnsafeStatement reports a statement outside the restricted
// grammar during safe replay.
var ErrUnsafeStatement = errors.New("unsafe statement")

// ErrReplay reports a statement that parsed but could not be applied
// (bad path, wrong container type, missing handler).
var ErrReplay = errors.New("replay error")

// StatementError wraps a replay failure with the offending line.
type StatementError struct {
	Line int
	Text string
	Err  error
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("%v: line %d: %s", e.Err, e.Line, e.Text)
}
