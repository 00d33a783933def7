// Package encode renders ir nodes as statement literals.
//
// The literal forms are the ones the statement grammar parses back:
// None/True/False, full-precision numbers, quoted strings, bracketed
// lists, braced maps and sets (set elements sorted, "set()" when
// empty), and constructor calls for handled values. Parsing a literal
// produced here yields a node equal to the input under ir.Compare.
package encode
