// Package token provides lexical scanning for laaos log statements.
//
// A laaos log is a sequence of newline-terminated statements over a
// restricted grammar: assignments, deletions and method calls addressed
// by subscripted paths, with literal operands. The tokenizer here turns
// one statement line into a flat token slice for the parser.
package token
