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

// Package parser implements the CEL grammar (C2 of the spec) as a pure
// recursive-descent parser over the token.Lexer's token stream,
// producing an ast.Expression CST (§3.2).
package parser

import (
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/lexrt/gocel/ast"
	"github.com/lexrt/gocel/common"
	"github.com/lexrt/gocel/operators"
	"github.com/lexrt/gocel/token"
)

// Parser holds the mutable state of a single parse: the token stream,
// the read cursor, accumulated errors, and the id/location helper.
type Parser struct {
	toks  []token.Token
	pos   int
	errs  *parseErrors
	h     *parserHelper
	opts  options
	depth int
}

// Parse runs the full lexer+parser pipeline over source and returns the
// CST root along with every lex/syntax error encountered (§6.2). A
// non-empty Errors means parsing failed; the returned expression in
// that case may contain ast.ErrorExpression placeholders and must not
// be evaluated.
func Parse(source common.Source, opts ...Option) (ast.Expression, *common.Errors) {
	o := defaultOptions()
	for _, opt := range opts {
		_ = opt(&o)
	}
	errs := common.NewErrors(source)
	lex := token.NewLexer(source.Content(), errs)
	toks := lex.Tokenize()

	p := &Parser{
		toks: toks,
		errs: &parseErrors{errs},
		h:    newParserHelper(source),
		opts: o,
	}
	e := p.parseExpr()
	if p.peek().Kind != token.EOF {
		p.errs.syntaxError(p.peek().StartOffset, "unexpected trailing input '"+p.peek().Lexeme+"'")
	}
	return e, errs
}

func (p *Parser) peek() token.Token { return p.toks[p.pos] }

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) match(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	tok := p.peek()
	p.errs.syntaxError(tok.StartOffset, "expected "+k.String()+", found "+tok.Kind.String())
	return tok, false
}

// enter/leave guard recursion depth so a deeply nested expression fails
// with a syntax error instead of overflowing the Go stack (§5).
func (p *Parser) enter() bool {
	if p.opts.maxRecursionDepth >= 0 && p.depth >= p.opts.maxRecursionDepth {
		glog.Warningf("parser: recursion guard tripped at offset %d (limit %d)", p.peek().StartOffset, p.opts.maxRecursionDepth)
		p.errs.syntaxError(p.peek().StartOffset, "expression nested too deeply")
		return false
	}
	p.depth++
	if glog.V(2) {
		glog.Infof("parser: enter depth=%d at offset %d", p.depth, p.peek().StartOffset)
	}
	return true
}

func (p *Parser) leave() { p.depth-- }

// Grammar, lowest precedence first (§3.2).

func (p *Parser) parseExpr() ast.Expression {
	if !p.enter() {
		return &ast.ErrorExpression{}
	}
	defer p.leave()

	offset := p.peek().StartOffset
	e := p.parseConditionalOr()
	if p.match(token.Question) {
		thenExpr := p.parseExpr()
		p.expect(token.Colon)
		elseExpr := p.parseExpr()
		return p.h.newGlobalCall(offset, operators.Conditional, e, thenExpr, elseExpr)
	}
	return e
}

func (p *Parser) parseConditionalOr() ast.Expression {
	offset := p.peek().StartOffset
	e := p.parseConditionalAnd()
	for p.match(token.Or) {
		rhs := p.parseConditionalAnd()
		e = p.h.newGlobalCall(offset, operators.LogicalOr, e, rhs)
	}
	return e
}

func (p *Parser) parseConditionalAnd() ast.Expression {
	offset := p.peek().StartOffset
	e := p.parseRelation()
	for p.match(token.And) {
		rhs := p.parseRelation()
		e = p.h.newGlobalCall(offset, operators.LogicalAnd, e, rhs)
	}
	return e
}

var relOps = map[token.Kind]string{
	token.Eq:  operators.Equals,
	token.Neq: operators.NotEquals,
	token.Lt:  operators.Less,
	token.Lte: operators.LessEquals,
	token.Gt:  operators.Greater,
	token.Gte: operators.GreaterEquals,
	token.In:  operators.In,
}

func (p *Parser) parseRelation() ast.Expression {
	offset := p.peek().StartOffset
	e := p.parseAddition()
	if op, ok := relOps[p.peek().Kind]; ok {
		p.advance()
		rhs := p.parseAddition()
		e = p.h.newGlobalCall(offset, op, e, rhs)
	}
	return e
}

func (p *Parser) parseAddition() ast.Expression {
	offset := p.peek().StartOffset
	e := p.parseMultiplication()
	for p.at(token.Plus) || p.at(token.Minus) {
		op := operators.Add
		if p.peek().Kind == token.Minus {
			op = operators.Subtract
		}
		p.advance()
		rhs := p.parseMultiplication()
		e = p.h.newGlobalCall(offset, op, e, rhs)
	}
	return e
}

func (p *Parser) parseMultiplication() ast.Expression {
	offset := p.peek().StartOffset
	e := p.parseUnary()
	for p.at(token.Star) || p.at(token.Slash) || p.at(token.Percent) {
		var op string
		switch p.peek().Kind {
		case token.Star:
			op = operators.Multiply
		case token.Slash:
			op = operators.Divide
		default:
			op = operators.Modulo
		}
		p.advance()
		rhs := p.parseUnary()
		e = p.h.newGlobalCall(offset, op, e, rhs)
	}
	return e
}

func (p *Parser) parseUnary() ast.Expression {
	offset := p.peek().StartOffset
	switch {
	case p.match(token.Bang):
		return p.h.newGlobalCall(offset, operators.LogicalNot, p.parseUnary())
	case p.match(token.Minus):
		return p.h.newGlobalCall(offset, operators.Negate, p.parseUnary())
	}
	return p.parsePostfix()
}

// parsePostfix parses an Atom followed by zero or more `.ident[(args)]`
// or `[expr]` postfixes (§3.2's identifier-chain rule).
func (p *Parser) parsePostfix() ast.Expression {
	e := p.parseAtom()
	for {
		switch {
		case p.at(token.Dot):
			offset := p.peek().StartOffset
			p.advance()
			nameTok, ok := p.expect(token.Identifier)
			if !ok {
				return e
			}
			if p.at(token.LParen) {
				args := p.parseArgList()
				e = p.buildCall(offset, nameTok.Lexeme, e, args, true)
			} else {
				e = p.h.newSelect(offset, e, nameTok.Lexeme)
			}
		case p.at(token.LBracket):
			offset := p.peek().StartOffset
			p.advance()
			idx := p.parseExpr()
			p.expect(token.RBracket)
			e = p.h.newGlobalCall(offset, operators.Index, e, idx)
		default:
			return e
		}
	}
}

// buildCall resolves a call (global or receiver-style) to either a
// macro expansion or an ordinary function/method call node (§4.6).
func (p *Parser) buildCall(offset int, name string, target ast.Expression, args []ast.Expression, instanceStyle bool) ast.Expression {
	if mac, ok := macroTable[macroKey(name, len(args), instanceStyle)]; ok {
		if glog.V(2) {
			glog.Infof("parser: expanding macro %s/%d at offset %d", name, len(args), offset)
		}
		return mac.expand(p, offset, target, args)
	}
	if instanceStyle {
		return p.h.newReceiverCall(offset, name, target, args...)
	}
	return p.h.newGlobalCall(offset, name, args...)
}

func (p *Parser) parseArgList() []ast.Expression {
	p.expect(token.LParen)
	var args []ast.Expression
	for !p.at(token.RParen) && !p.at(token.EOF) {
		args = append(args, p.parseExpr())
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	return args
}

func (p *Parser) parseAtom() ast.Expression {
	if !p.enter() {
		return &ast.ErrorExpression{}
	}
	defer p.leave()

	tok := p.peek()
	switch tok.Kind {
	case token.LParen:
		p.advance()
		e := p.parseExpr()
		p.expect(token.RParen)
		return e
	case token.LBracket:
		return p.parseListLiteral()
	case token.LBrace:
		return p.parseMapLiteral()
	case token.True:
		p.advance()
		return ast.NewBoolConstant(p.h.id(tok.StartOffset), p.h.loc(tok.StartOffset), true)
	case token.False:
		p.advance()
		return ast.NewBoolConstant(p.h.id(tok.StartOffset), p.h.loc(tok.StartOffset), false)
	case token.Null:
		p.advance()
		return ast.NewNullConstant(p.h.id(tok.StartOffset), p.h.loc(tok.StartOffset))
	case token.StringLiteral:
		p.advance()
		return ast.NewStringConstant(p.h.id(tok.StartOffset), p.h.loc(tok.StartOffset), tok.Lexeme)
	case token.BytesLiteral:
		p.advance()
		return ast.NewBytesConstant(p.h.id(tok.StartOffset), p.h.loc(tok.StartOffset), []byte(tok.Lexeme))
	case token.Integer, token.HexInteger, token.UnsignedInteger, token.HexUnsignedInteger, token.Float:
		return p.parseNumericLiteral()
	case token.Identifier:
		return p.parseIdentOrCall()
	}
	p.errs.syntaxError(tok.StartOffset, "unexpected token '"+tok.Lexeme+"'")
	p.advance()
	return &ast.ErrorExpression{}
}

func (p *Parser) parseIdentOrCall() ast.Expression {
	tok := p.advance()
	if p.at(token.LParen) {
		args := p.parseArgList()
		return p.buildCall(tok.StartOffset, tok.Lexeme, nil, args, false)
	}
	return p.h.newIdent(tok.StartOffset, tok.Lexeme)
}

func (p *Parser) parseListLiteral() ast.Expression {
	offset := p.peek().StartOffset
	p.advance() // '['
	var elems []ast.Expression
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		elems = append(elems, p.parseExpr())
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket)
	return p.h.newList(offset, elems...)
}

func (p *Parser) parseMapLiteral() ast.Expression {
	offset := p.peek().StartOffset
	p.advance() // '{'
	var entries []*ast.StructEntry
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		entryOffset := p.peek().StartOffset
		key := p.parseExpr()
		p.expect(token.Colon)
		val := p.parseExpr()
		entries = append(entries, p.h.newMapEntry(entryOffset, key, val))
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	return p.h.newMap(offset, entries...)
}

func (p *Parser) parseNumericLiteral() ast.Expression {
	tok := p.advance()
	loc := p.h.loc(tok.StartOffset)
	id := p.h.id(tok.StartOffset)
	switch tok.Kind {
	case token.Integer:
		v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			p.errs.syntaxError(tok.StartOffset, "invalid integer literal '"+tok.Lexeme+"'")
			return &ast.ErrorExpression{}
		}
		return ast.NewInt64Constant(id, loc, v)
	case token.UnsignedInteger:
		digits := strings.TrimSuffix(strings.TrimSuffix(tok.Lexeme, "u"), "U")
		v, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			p.errs.syntaxError(tok.StartOffset, "invalid unsigned integer literal '"+tok.Lexeme+"'")
			return &ast.ErrorExpression{}
		}
		return ast.NewUint64Constant(id, loc, v)
	case token.HexInteger:
		digits := tok.Lexeme[2:] // strip "0x"/"0X"
		v, err := strconv.ParseUint(digits, 16, 64)
		if err != nil {
			p.errs.syntaxError(tok.StartOffset, "invalid hex integer literal '"+tok.Lexeme+"'")
			return &ast.ErrorExpression{}
		}
		return ast.NewInt64Constant(id, loc, int64(v))
	case token.HexUnsignedInteger:
		digits := strings.TrimSuffix(strings.TrimSuffix(tok.Lexeme[2:], "u"), "U")
		v, err := strconv.ParseUint(digits, 16, 64)
		if err != nil {
			p.errs.syntaxError(tok.StartOffset, "invalid hex unsigned integer literal '"+tok.Lexeme+"'")
			return &ast.ErrorExpression{}
		}
		return ast.NewUint64Constant(id, loc, v)
	default: // token.Float
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			p.errs.syntaxError(tok.StartOffset, "invalid double literal '"+tok.Lexeme+"'")
			return &ast.ErrorExpression{}
		}
		return ast.NewDoubleConstant(id, loc, v)
	}
}
