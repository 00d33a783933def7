// Package parse provides parsing of laaos log statements.
//
// The grammar is the restricted statement language the store itself
// emits:
//
//	stmt     = path "=" expr
//	         | "del" path
//	         | path "." method "(" [ expr { "," expr } ] ")"
//	path     = "store" { "[" scalar "]" }
//	expr     = scalar | list | map | set | call
//	list     = "[" [ expr { "," expr } ] "]"
//	map      = "{" [ scalar ":" expr { "," scalar ":" expr } ] "}"
//	set      = "{" expr { "," expr } "}" | "set" "(" ")"
//	call     = ident "(" [ scalar { "," scalar } ] ")"
//	scalar   = string | int | float | "True" | "False" | "None" | call
//
// Constructor calls carry handler-encoded values. They parse into
// unresolved ir.HandledType nodes; whether such nodes are admissible
// is decided by the replayer, not here.
package parse
