// Package workspace holds per-document state of the language server: the
// latest text of every open document and the AST of its last successful
// parse.
//
// Both stores are keyed by document URI and hold immutable values that are
// replaced wholesale, so readers never observe a partially written entry and
// operations on different documents never contend.
package workspace
