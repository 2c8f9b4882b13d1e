package ast

import (
	"github.com/lexrt/gocel/common"
)

// Expression is the common interface for all AST expressions. It is a
// closed sum (§9): writeDebugString is unexported, so every
// implementation must live in this package, and Kind identifies which
// of the fixed set of concrete node types a given Expression is.
type Expression interface {
	// Id is the id of an expression, unique within a parse tree.
	Id() int64

	// Location is the source-text location of the expression.
	Location() common.Location

	// Kind identifies which concrete node type this is (§3.2, §9).
	Kind() ExprKind

	// String returns a string representation of the expression.
	String() string

	// writeDebugString writes the detailed string representation of an the expression to the supplied debugWriter.
	writeDebugString(w *debugWriter)
}
