// Package parser turns raw service documents into typed node graphs.
//
// A Registry maps variant tags to schemas. A Builder reads the tag off each
// raw object, resolves it and runs the schema's field projection, recursing
// into child fields so the whole tree materialises in one pass. Tags the
// registry does not know become Passthrough nodes instead of errors.
//
// Built graphs are immutable. An Index answers "every node of variant V under
// this subtree" after a single walk, and a Page wraps one fetched document with
// its sections, its memoised index and its continuation token.
package parser
