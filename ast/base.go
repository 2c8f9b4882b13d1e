package ast

import "github.com/lexrt/gocel/common"

// BaseExpression is the shared payload every concrete node in the
// closed Expression sum embeds: an id unique within one parse and the
// source location, used for error reporting (§3.2). Kind, the node's
// sum tag, is not here — it has one fixed value per concrete type, so
// each type returns its own constant rather than storing it.
type BaseExpression struct {
	id       int64
	location common.Location
}

func (e *BaseExpression) Location() common.Location {
	return e.location
}

func (e *BaseExpression) Id() int64 {
	return e.id
}
