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

// Package token defines the lexical surface (C1 of the spec): token
// kinds and the immutable Token record the lexer emits.
package token

import "fmt"

// Kind identifies a lexical category (§6.1).
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Dot
	Comma
	Colon
	Question
	Plus
	Minus
	Star
	Slash
	Percent
	Bang
	Eq
	Neq
	Gt
	Gte
	Lt
	Lte
	And
	Or
	In

	True
	False
	Null

	Identifier
	Integer
	UnsignedInteger
	HexInteger
	HexUnsignedInteger
	Float
	StringLiteral
	BytesLiteral
)

var kindNames = map[Kind]string{
	Invalid:             "invalid",
	EOF:                 "EOF",
	LParen:              "(",
	RParen:              ")",
	LBracket:            "[",
	RBracket:            "]",
	LBrace:              "{",
	RBrace:              "}",
	Dot:                 ".",
	Comma:               ",",
	Colon:               ":",
	Question:            "?",
	Plus:                "+",
	Minus:               "-",
	Star:                "*",
	Slash:               "/",
	Percent:             "%",
	Bang:                "!",
	Eq:                  "==",
	Neq:                 "!=",
	Gt:                  ">",
	Gte:                 ">=",
	Lt:                  "<",
	Lte:                 "<=",
	And:                 "&&",
	Or:                  "||",
	In:                  "in",
	True:                "true",
	False:               "false",
	Null:                "null",
	Identifier:          "identifier",
	Integer:             "int",
	UnsignedInteger:     "uint",
	HexInteger:          "hex int",
	HexUnsignedInteger:  "hex uint",
	Float:               "double",
	StringLiteral:       "string",
	BytesLiteral:        "bytes",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Keywords maps the reserved lexemes the lexer must prefer over the
// general identifier rule (§4.1): true/false/null/in. The identifiers
// reserved from standalone-expression position by §4.7 are not in this
// map: they remain Identifier tokens, since reservation is an evaluator
// concern, not lexical, and the evaluator keeps that list.
var Keywords = map[string]Kind{
	"true":  True,
	"false": False,
	"null":  Null,
	"in":    In,
}

// Token is an immutable lexical record (§3.1).
type Token struct {
	Kind        Kind
	Lexeme      string
	StartOffset int
	EndOffset   int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Lexeme, t.StartOffset, t.EndOffset)
}
