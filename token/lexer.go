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
	"strings"
	"unicode/utf8"

	"github.com/lexrt/gocel/common"
)

// Lexer turns source text into a stream of Tokens by longest match
// (§4.1). Modeled on a rune-at-a-time reader with explicit offset
// tracking, the same shape as a hand-written recursive-descent lexer
// reading a byte buffer directly rather than through a generated
// scanner.
type Lexer struct {
	src  string
	pos  int // byte offset of the next unread rune
	errs *common.Errors
}

// NewLexer constructs a Lexer over src, reporting lex errors into errs.
func NewLexer(src string, errs *common.Errors) *Lexer {
	return &Lexer{src: src, errs: errs}
}

func (l *Lexer) eof() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek() (rune, int) {
	if l.eof() {
		return 0, 0
	}
	r, sz := utf8.DecodeRuneInString(l.src[l.pos:])
	return r, sz
}

func (l *Lexer) peekAt(off int) (rune, int) {
	if l.pos+off >= len(l.src) {
		return 0, 0
	}
	r, sz := utf8.DecodeRuneInString(l.src[l.pos+off:])
	return r, sz
}

func (l *Lexer) advance() rune {
	r, sz := l.peek()
	l.pos += sz
	return r
}

// Tokenize runs the lexer to completion, returning every non-skippable
// token (whitespace and line comments are dropped, §4.1) followed by a
// final EOF token. Lex errors are reported into the Errors collector
// passed to NewLexer rather than aborting the scan, matching the
// parser's policy of accumulating every error in one pass (§7).
func (l *Lexer) Tokenize() []Token {
	var toks []Token
	for {
		l.skipSkippable()
		if l.eof() {
			toks = append(toks, Token{Kind: EOF, StartOffset: l.pos, EndOffset: l.pos})
			return toks
		}
		start := l.pos
		tok, ok := l.next()
		if ok {
			toks = append(toks, tok)
			continue
		}
		// next() reported its own error and consumed at least one rune;
		// guard against an infinite loop on a truly stuck position.
		if l.pos == start {
			l.advance()
		}
	}
}

func (l *Lexer) skipSkippable() {
	for !l.eof() {
		r, sz := l.peek()
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			l.pos += sz
		case r == '/' && peekIs(l, 1, '/'):
			for !l.eof() {
				r, sz := l.peek()
				if r == '\n' {
					break
				}
				l.pos += sz
			}
		default:
			return
		}
	}
}

func peekIs(l *Lexer, off int, want rune) bool {
	r, sz := l.peekAt(off)
	return sz > 0 && r == want
}

// next scans exactly one token starting at the current position. A
// false second return means an error was already reported for this
// position and some input was consumed.
func (l *Lexer) next() (Token, bool) {
	start := l.pos
	r, sz := l.peek()

	switch r {
	case '(':
		l.pos += sz
		return l.tok(LParen, start), true
	case ')':
		l.pos += sz
		return l.tok(RParen, start), true
	case '[':
		l.pos += sz
		return l.tok(LBracket, start), true
	case ']':
		l.pos += sz
		return l.tok(RBracket, start), true
	case '{':
		l.pos += sz
		return l.tok(LBrace, start), true
	case '}':
		l.pos += sz
		return l.tok(RBrace, start), true
	case '.':
		// A bare '.' followed by a digit is not valid CEL (floats require
		// a leading digit, §4.1); otherwise it is the field-access dot.
		l.pos += sz
		return l.tok(Dot, start), true
	case ',':
		l.pos += sz
		return l.tok(Comma, start), true
	case ':':
		l.pos += sz
		return l.tok(Colon, start), true
	case '?':
		l.pos += sz
		return l.tok(Question, start), true
	case '+':
		l.pos += sz
		return l.tok(Plus, start), true
	case '-':
		l.pos += sz
		return l.tok(Minus, start), true
	case '*':
		l.pos += sz
		return l.tok(Star, start), true
	case '/':
		l.pos += sz
		return l.tok(Slash, start), true
	case '%':
		l.pos += sz
		return l.tok(Percent, start), true
	case '!':
		l.pos += sz
		if peekIs(l, 0, '=') {
			l.pos++
			return l.tok(Neq, start), true
		}
		return l.tok(Bang, start), true
	case '=':
		l.pos += sz
		if peekIs(l, 0, '=') {
			l.pos++
			return l.tok(Eq, start), true
		}
		l.errs.ReportErrorAtOffset(start, "unexpected character '='")
		return Token{}, false
	case '>':
		l.pos += sz
		if peekIs(l, 0, '=') {
			l.pos++
			return l.tok(Gte, start), true
		}
		return l.tok(Gt, start), true
	case '<':
		l.pos += sz
		if peekIs(l, 0, '=') {
			l.pos++
			return l.tok(Lte, start), true
		}
		return l.tok(Lt, start), true
	case '&':
		l.pos += sz
		if peekIs(l, 0, '&') {
			l.pos++
			return l.tok(And, start), true
		}
		l.errs.ReportErrorAtOffset(start, "unexpected character '&'")
		return Token{}, false
	case '|':
		l.pos += sz
		if peekIs(l, 0, '|') {
			l.pos++
			return l.tok(Or, start), true
		}
		l.errs.ReportErrorAtOffset(start, "unexpected character '|'")
		return Token{}, false
	case '"', '\'':
		return l.scanString(start, "")
	}

	if r == '_' || isAlpha(r) {
		return l.scanIdentOrPrefixedString(start)
	}
	if isDigit(r) {
		return l.scanNumber(start)
	}

	l.pos += sz
	l.errs.ReportErrorAtOffset(start, "unexpected character %q", r)
	return Token{}, false
}

func (l *Lexer) tok(k Kind, start int) Token {
	return Token{Kind: k, Lexeme: l.src[start:l.pos], StartOffset: start, EndOffset: l.pos}
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isIdentRune(r rune) bool {
	return r == '_' || isAlpha(r) || isDigit(r)
}

// scanIdentOrPrefixedString handles bare identifiers/keywords, and the
// string-prefix letters r/R, b/B, and their combinations rb/br/Rb/...
// (§4.1). A prefix letter is only a prefix if immediately followed by a
// quote; otherwise it is an ordinary identifier.
func (l *Lexer) scanIdentOrPrefixedString(start int) (Token, bool) {
	first := l.src[l.pos : l.pos+1]
	lower := strings.ToLower(first)
	if lower == "r" || lower == "b" {
		if tok, ok, handled := l.tryPrefixedString(start); handled {
			return tok, ok
		}
	}
	for !l.eof() {
		r, sz := l.peek()
		if !isIdentRune(r) {
			break
		}
		l.pos += sz
	}
	lexeme := l.src[start:l.pos]
	if k, isKw := Keywords[lexeme]; isKw {
		return Token{Kind: k, Lexeme: lexeme, StartOffset: start, EndOffset: l.pos}, true
	}
	return Token{Kind: Identifier, Lexeme: lexeme, StartOffset: start, EndOffset: l.pos}, true
}

// tryPrefixedString attempts to parse a 1-2 letter string prefix (r, R,
// b, B, rb, Rb, rB, RB, br, Br, bR, BR) followed by a quote. handled is
// false if the current position is not in fact a prefixed string (e.g.
// a plain identifier starting with 'r' or 'b'), in which case the
// caller falls back to ordinary identifier scanning.
func (l *Lexer) tryPrefixedString(start int) (Token, bool, bool) {
	save := l.pos
	raw, bytesLit := false, false
	for i := 0; i < 2; i++ {
		r, sz := l.peek()
		switch {
		case (r == 'r' || r == 'R') && !raw:
			raw = true
			l.pos += sz
		case (r == 'b' || r == 'B') && !bytesLit:
			bytesLit = true
			l.pos += sz
		default:
			i = 2
		}
	}
	r, _ := l.peek()
	if r != '"' && r != '\'' {
		l.pos = save
		return Token{}, false, false
	}
	tok, ok := l.scanString(start, prefixKind(raw, bytesLit))
	return tok, ok, true
}

func prefixKind(raw, bytesLit bool) string {
	switch {
	case raw && bytesLit:
		return "rb"
	case raw:
		return "r"
	case bytesLit:
		return "b"
	default:
		return ""
	}
}

// scanString scans a quoted string starting at the opening quote
// (already identified, but not yet consumed, at l.pos), honoring
// triple-quoted, raw, and byte-string forms (§4.1).
func (l *Lexer) scanString(start int, prefix string) (Token, bool) {
	quote, _ := l.peek()
	triple := peekIs(l, 0, quote) && peekIs(l, 1, quote)
	if triple {
		l.pos += 3
	} else {
		l.pos++
	}
	raw := strings.Contains(prefix, "r")
	isBytes := strings.Contains(prefix, "b")

	var decoded []byte
	for {
		if l.eof() {
			l.errs.ReportErrorAtOffset(start, "unterminated string literal")
			return Token{}, false
		}
		r, sz := l.peek()
		if r == quote {
			if !triple {
				l.pos += sz
				break
			}
			if peekIs(l, sz, quote) && peekIs(l, sz*2, quote) {
				l.pos += sz * 3
				break
			}
			decoded = append(decoded, string(r)...)
			l.pos += sz
			continue
		}
		if !triple && r == '\n' {
			l.errs.ReportErrorAtOffset(start, "unterminated string literal")
			return Token{}, false
		}
		if r == '\\' && !raw {
			l.pos += sz
			b, ok := l.scanEscape(start, isBytes)
			if !ok {
				return Token{}, false
			}
			decoded = append(decoded, b...)
			continue
		}
		decoded = append(decoded, string(r)...)
		l.pos += sz
	}

	kind := StringLiteral
	if isBytes {
		kind = BytesLiteral
	}
	return Token{Kind: kind, Lexeme: string(decoded), StartOffset: start, EndOffset: l.pos}, true
}

// scanEscape decodes one escape sequence following a consumed '\\'
// (§4.1): \n \t \r \\ \' \" \xHH \ooo \uHHHH \UHHHHHHHH. Byte strings
// reject multi-byte Unicode escapes that don't fit a single byte.
func (l *Lexer) scanEscape(stringStart int, isBytes bool) ([]byte, bool) {
	if l.eof() {
		l.errs.ReportErrorAtOffset(stringStart, "unterminated escape sequence")
		return nil, false
	}
	r := l.advance()
	switch r {
	case 'n':
		return []byte{'\n'}, true
	case 't':
		return []byte{'\t'}, true
	case 'r':
		return []byte{'\r'}, true
	case '\\':
		return []byte{'\\'}, true
	case '\'':
		return []byte{'\''}, true
	case '"':
		return []byte{'"'}, true
	case '`':
		return []byte{'`'}, true
	case '?':
		return []byte{'?'}, true
	case 'a':
		return []byte{'\a'}, true
	case 'b':
		return []byte{'\b'}, true
	case 'f':
		return []byte{'\f'}, true
	case 'v':
		return []byte{'\v'}, true
	case '0', '1', '2', '3', '4', '5', '6', '7':
		val := int(r - '0')
		for i := 0; i < 2; i++ {
			d, sz := l.peek()
			if d < '0' || d > '7' {
				break
			}
			val = val*8 + int(d-'0')
			l.pos += sz
		}
		if val > 255 {
			l.errs.ReportErrorAtOffset(stringStart, "octal escape out of byte range")
			return nil, false
		}
		return []byte{byte(val)}, true
	case 'x', 'X':
		val, ok := l.scanHexDigits(2, stringStart)
		if !ok {
			return nil, false
		}
		return []byte{byte(val)}, true
	case 'u':
		val, ok := l.scanHexDigits(4, stringStart)
		if !ok {
			return nil, false
		}
		return l.encodeCodePoint(rune(val), isBytes, stringStart)
	case 'U':
		val, ok := l.scanHexDigits(8, stringStart)
		if !ok {
			return nil, false
		}
		return l.encodeCodePoint(rune(val), isBytes, stringStart)
	}
	l.errs.ReportErrorAtOffset(stringStart, "unknown escape sequence '\\%c'", r)
	return nil, false
}

func (l *Lexer) encodeCodePoint(r rune, isBytes bool, stringStart int) ([]byte, bool) {
	if isBytes {
		if r > 0xFF {
			l.errs.ReportErrorAtOffset(stringStart, "unicode escape does not fit in a single byte")
			return nil, false
		}
		return []byte{byte(r)}, true
	}
	buf := make([]byte, utf8.UTFMax)
	n := utf8.EncodeRune(buf, r)
	return buf[:n], true
}

func (l *Lexer) scanHexDigits(n, stringStart int) (int, bool) {
	val := 0
	for i := 0; i < n; i++ {
		r, sz := l.peek()
		if !isHexDigit(r) {
			l.errs.ReportErrorAtOffset(stringStart, "invalid hex escape")
			return 0, false
		}
		val = val*16 + hexVal(r)
		l.pos += sz
	}
	return val, true
}

func hexVal(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	default:
		return int(r-'A') + 10
	}
}

// scanNumber handles decimal/hex integers (with optional u/U suffix)
// and decimal floats (§4.1).
func (l *Lexer) scanNumber(start int) (Token, bool) {
	if peekIs(l, 0, '0') && (peekIs(l, 1, 'x') || peekIs(l, 1, 'X')) {
		l.pos += 2
		for isHexDigit(peekRune(l)) {
			l.pos++
		}
		kind := HexInteger
		if peekIs(l, 0, 'u') || peekIs(l, 0, 'U') {
			l.pos++
			kind = HexUnsignedInteger
		}
		return l.tok(kind, start), true
	}

	for isDigit(peekRune(l)) {
		l.pos++
	}

	isFloat := false
	if peekIs(l, 0, '.') {
		if r, _ := l.peekAt(1); isDigit(r) {
			isFloat = true
			l.pos++
			for isDigit(peekRune(l)) {
				l.pos++
			}
		}
	}
	if peekIs(l, 0, 'e') || peekIs(l, 0, 'E') {
		save := l.pos
		l.pos++
		if peekIs(l, 0, '+') || peekIs(l, 0, '-') {
			l.pos++
		}
		if isDigit(peekRune(l)) {
			isFloat = true
			for isDigit(peekRune(l)) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}

	if isFloat {
		return l.tok(Float, start), true
	}
	kind := Integer
	if peekIs(l, 0, 'u') || peekIs(l, 0, 'U') {
		l.pos++
		kind = UnsignedInteger
	}
	return l.tok(kind, start), true
}

func peekRune(l *Lexer) rune {
	r, _ := l.peek()
	return r
}
