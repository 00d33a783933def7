package encode

// Statement assembly. The store composes every log entry through
// these helpers so the emitted shapes and the parser's grammar stay in
// one place each.

import "strings"

func AssignStmt(accessor, valueLit string) string {
	return accessor + " = " + valueLit
}

func DeleteStmt(accessor string) string {
	return "del " + accessor
}

func CallStmt(accessor, method string, argLits ...string) string {
	var b strings.Builder
	b.WriteString(accessor)
	b.WriteByte('.')
	b.WriteString(method)
	b.WriteByte('(')
	for i, a := range argLits {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a)
	}
	b.WriteByte(')')
	return b.String()
}
