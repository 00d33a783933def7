package token

import "strconv"

// Pos is a position within a log: 1-based line and column.
// The zero value means "unknown".
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	if p.Line == 0 {
		return "-"
	}
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}
