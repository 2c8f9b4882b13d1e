// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

import (
	"github.com/lexrt/gocel/ast"
	"github.com/lexrt/gocel/common"
)

// parserHelper assigns unique, source-located node ids. The id counter
// mirrors cel-go's own parserHelper (one per parse, monotonically
// increasing); it has no bearing on evaluation, but keeps expression
// identity stable for error messages and for the debug/unparse printer.
type parserHelper struct {
	source common.Source
	nextID int64
}

func newParserHelper(source common.Source) *parserHelper {
	return &parserHelper{source: source, nextID: 1}
}

func (p *parserHelper) id(offset int) int64 {
	id := p.nextID
	p.nextID++
	return id
}

func (p *parserHelper) loc(offset int) common.Location {
	return p.source.LocationFromOffset(offset)
}

func (p *parserHelper) newIdent(offset int, name string) ast.Expression {
	return ast.NewIdent(p.id(offset), p.loc(offset), name)
}

func (p *parserHelper) newSelect(offset int, operand ast.Expression, field string) ast.Expression {
	return ast.NewSelect(p.id(offset), p.loc(offset), operand, field, false)
}

func (p *parserHelper) newPresenceTest(offset int, operand ast.Expression, field string) ast.Expression {
	return ast.NewSelect(p.id(offset), p.loc(offset), operand, field, true)
}

func (p *parserHelper) newGlobalCall(offset int, function string, args ...ast.Expression) ast.Expression {
	return ast.NewCallFunction(p.id(offset), p.loc(offset), function, args...)
}

func (p *parserHelper) newReceiverCall(offset int, function string, target ast.Expression, args ...ast.Expression) ast.Expression {
	return ast.NewCallMethod(p.id(offset), p.loc(offset), function, target, args...)
}

func (p *parserHelper) newList(offset int, elements ...ast.Expression) ast.Expression {
	return ast.NewCreateList(p.id(offset), p.loc(offset), elements...)
}

func (p *parserHelper) newMap(offset int, entries ...*ast.StructEntry) ast.Expression {
	return ast.NewCreateStruct(p.id(offset), p.loc(offset), entries...)
}

func (p *parserHelper) newMapEntry(offset int, key, value ast.Expression) *ast.StructEntry {
	return ast.NewStructEntry(p.id(offset), p.loc(offset), key, value)
}

func (p *parserHelper) newComprehension(offset int, iterVar string, iterRange ast.Expression, accuVar string, accuInit, condition, step, result ast.Expression) ast.Expression {
	return ast.NewComprehension(p.id(offset), p.loc(offset), iterVar, iterRange, accuVar, accuInit, condition, step, result)
}
