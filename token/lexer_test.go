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

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexrt/gocel/common"
)

func lexKinds(t *testing.T, src string) []Kind {
	t.Helper()
	errs := common.NewErrors(common.NewTextSource("<test>", src))
	toks := NewLexer(src, errs).Tokenize()
	require.True(t, errs.Empty(), "unexpected lex errors: %v", errs.GetErrors())
	kinds := make([]Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestLexerPunctuationAndOperators(t *testing.T) {
	kinds := lexKinds(t, "( ) [ ] { } . , : ? + - * / % ! == != > >= < <= && || in")
	assert.Equal(t, []Kind{
		LParen, RParen, LBracket, RBracket, LBrace, RBrace, Dot, Comma, Colon,
		Question, Plus, Minus, Star, Slash, Percent, Bang, Eq, Neq, Gt, Gte,
		Lt, Lte, And, Or, In, EOF,
	}, kinds)
}

func TestLexerKeywordsPreferredOverIdentifier(t *testing.T) {
	kinds := lexKinds(t, "true false null inside")
	assert.Equal(t, []Kind{True, False, Null, Identifier, EOF}, kinds)
}

func TestLexerLineCommentSkipped(t *testing.T) {
	errs := common.NewErrors(common.NewTextSource("<test>", "1 // trailing comment\n+ 2"))
	toks := NewLexer("1 // trailing comment\n+ 2", errs).Tokenize()
	require.True(t, errs.Empty())
	kinds := make([]Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []Kind{Integer, Plus, Integer, EOF}, kinds)
}

func TestLexerIntegerFloatHexSuffixes(t *testing.T) {
	src := "0 123 0x1A 0x1Au 123u 1.5 1e10 1.2e-3"
	errs := common.NewErrors(common.NewTextSource("<test>", src))
	toks := NewLexer(src, errs).Tokenize()
	require.True(t, errs.Empty())
	want := []Kind{Integer, Integer, HexInteger, HexUnsignedInteger, UnsignedInteger, Float, Float, Float, EOF}
	got := make([]Kind, len(toks))
	for i, tok := range toks {
		got[i] = tok.Kind
	}
	assert.Equal(t, want, got)
}

func TestLexerStringEscapes(t *testing.T) {
	src := `"a\nb\t\"c\x41\101é"`
	errs := common.NewErrors(common.NewTextSource("<test>", src))
	toks := NewLexer(src, errs).Tokenize()
	require.True(t, errs.Empty())
	require.Len(t, toks, 2)
	assert.Equal(t, StringLiteral, toks[0].Kind)
	assert.Equal(t, "a\nb\t\"cAAé", toks[0].Lexeme)
}

func TestLexerRawStringDisablesEscapes(t *testing.T) {
	src := `r"a\nb"`
	errs := common.NewErrors(common.NewTextSource("<test>", src))
	toks := NewLexer(src, errs).Tokenize()
	require.True(t, errs.Empty())
	require.Len(t, toks, 2)
	assert.Equal(t, `a\nb`, toks[0].Lexeme)
}

func TestLexerBytesPrefix(t *testing.T) {
	src := `b"abc"`
	errs := common.NewErrors(common.NewTextSource("<test>", src))
	toks := NewLexer(src, errs).Tokenize()
	require.True(t, errs.Empty())
	require.Len(t, toks, 2)
	assert.Equal(t, BytesLiteral, toks[0].Kind)
}

func TestLexerTripleQuotedSpansNewlines(t *testing.T) {
	src := "\"\"\"line1\nline2\"\"\""
	errs := common.NewErrors(common.NewTextSource("<test>", src))
	toks := NewLexer(src, errs).Tokenize()
	require.True(t, errs.Empty())
	require.Len(t, toks, 2)
	assert.Equal(t, "line1\nline2", toks[0].Lexeme)
}

func TestLexerUnterminatedStringReportsError(t *testing.T) {
	src := `"abc`
	errs := common.NewErrors(common.NewTextSource("<test>", src))
	NewLexer(src, errs).Tokenize()
	assert.False(t, errs.Empty())
}

func TestLexerUnexpectedCharacterReportsError(t *testing.T) {
	src := "1 @ 2"
	errs := common.NewErrors(common.NewTextSource("<test>", src))
	NewLexer(src, errs).Tokenize()
	assert.False(t, errs.Empty())
}

func TestLexerOffsetsAreByteAccurate(t *testing.T) {
	src := "foo + 1"
	errs := common.NewErrors(common.NewTextSource("<test>", src))
	toks := NewLexer(src, errs).Tokenize()
	require.GreaterOrEqual(t, len(toks), 3)
	assert.Equal(t, 0, toks[0].StartOffset)
	assert.Equal(t, 3, toks[0].EndOffset)
	assert.Equal(t, "foo", src[toks[0].StartOffset:toks[0].EndOffset])
}
