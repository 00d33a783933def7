// Package ir provides the in-memory representation of store values.
//
// # Overview
//
// Every value a store can hold — scalars, ordered lists, unordered
// sets, mappings, and handler-encoded values — is represented as an
// ir.Node tree. The same representation is used on both sides of the
// log: the proxy layer snapshots live containers into Node trees for
// encoding, and the replayer reconstructs Node trees from parsed
// statements.
//
// # Node Structure
//
// The IR works as a recursive tagged union, with values placed in
// fields depending on the node type:
//
//   - NullType: null value
//   - BoolType: boolean under Bool
//   - NumberType: Int64 or Float64, exactly one set
//   - StringType: value under String
//   - ListType: ordered elements under Values
//   - SetType: elements under Values, kept sorted by Compare
//   - MapType: Fields[i] is the key for Values[i]; keys are scalar
//     nodes (string, number, bool, or handled values), identified by
//     their encoded literal under ParentField
//   - HandledType: a registered-handler value; HandlerName names the
//     constructor, Args hold its scalar arguments, and Value may carry
//     the decoded Go value
//
// Each node maintains parent back-references (Parent, ParentIndex,
// ParentField). These are used only to render a node's accessor path
// for diagnostics, never for mutation.
//
// # Equality
//
// Compare defines a total order over nodes. Set elements are compared
// as sorted multisets, so two sets built in different insertion orders
// are equal. Number nodes keep the integer/float distinction: 1 and
// 1.0 are distinct values, as they encode to distinct literals.
package ir
