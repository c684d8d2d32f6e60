package lexer

import (
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/token"
)

// CommentMap maps a line number to the comment token found on it.
type CommentMap map[int]token.Token

// Lexer turns a byte slice into a lazy token stream. It tracks nested
// strings and interpolations with two parallel stacks; the invariant
// len(interpolationStack) <= len(stringStack) holds after every token.
type Lexer struct {
	source           []byte
	length           int
	index            int
	line             int
	expectImportPath bool
	stringStack      []int
	interpStack      []int
	braceDepth       int
	comments         CommentMap
	errors           []*diagnostics.Diagnostic
	pending          []token.Token
}

func New(source []byte) *Lexer {
	return &Lexer{
		source:   source,
		length:   len(source),
		comments: make(CommentMap),
	}
}

// Comments returns the line -> comment token map collected so far.
func (l *Lexer) Comments() CommentMap { return l.comments }

// Errors returns tokenization diagnostics collected so far.
func (l *Lexer) Errors() []*diagnostics.Diagnostic { return l.errors }

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() token.Token {
	if len(l.pending) == 0 {
		tok := l.scan()
		l.pending = append([]token.Token{tok}, l.pending...)
	}
	return l.pending[0]
}

// Next returns the next token. At the end of input it reports unclosed
// strings/interpolations once, then returns EOF forever.
func (l *Lexer) Next() token.Token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}
	return l.scan()
}

func (l *Lexer) scan() token.Token {
	for l.index < l.length {
		startIndex := l.index
		b := l.source[startIndex]

		if len(l.stringStack) == 0 && b == '"' {
			// A brand new string. Save the start index and advance.
			l.stringStack = append(l.stringStack, l.index)
			l.index++
			continue
		}

		if len(l.stringStack) > 0 {
			// Somewhere inside a string (possibly in an interpolation).

			if b == '"' && len(l.stringStack) == len(l.interpStack) {
				// Stacks of equal size mean we are inside an
				// interpolation, so this " opens a nested string.
				l.stringStack = append(l.stringStack, l.index)
				l.index++
				continue
			}

			if b == '"' {
				isEscaped := l.index > 0 && l.source[l.index-1] == '\\'

				if !isEscaped {
					// End of a string literal section.
					start := l.stringStack[len(l.stringStack)-1] + 1
					l.stringStack = l.stringStack[:len(l.stringStack)-1]
					end := l.index
					l.index++

					return token.Token{Type: token.STRING_LITERAL, Start: start, End: end}
				}
			}

			if b == '$' && startIndex+1 < l.length && l.source[startIndex+1] == '(' {
				// Start of an interpolation: emit the string literal
				// portion up to here, queue the $( token.
				stringStart := l.stringStack[len(l.stringStack)-1] + 1
				stringEnd := l.index

				l.interpStack = append(l.interpStack, l.index)
				l.pending = append(l.pending, token.Token{
					Type:  token.INTERPOLATION_START,
					Start: startIndex,
					End:   l.index + 2,
				})
				l.index += 2

				return token.Token{Type: token.STRING_LITERAL, Start: stringStart, End: stringEnd}
			}

			if len(l.interpStack) > 0 && b == ')' {
				// End of an interpolation. The enclosing string literal
				// restarts at this position.
				start := l.index
				l.stringStack[len(l.stringStack)-1] = l.index
				l.interpStack = l.interpStack[:len(l.interpStack)-1]
				l.index++

				return token.Token{Type: token.INTERPOLATION_END, Start: start, End: start + 1}
			}

			if len(l.stringStack) > len(l.interpStack) {
				// Inside a string literal portion; collect the byte.
				l.index++
				continue
			}

			// Inside an interpolation: tokenize normally below.
		}

		if l.expectImportPath && isPathChar(b) {
			for l.index < l.length && isPathChar(l.source[l.index]) {
				l.index++
			}

			l.expectImportPath = false

			return token.Token{Type: token.IMPORT_PATH, Start: startIndex, End: l.index}
		}

		switch {
		case b == ' ' || b == '\r' || b == '\t':
			l.index++

		case b == '\n':
			l.index++
			l.line++
			return token.Token{Type: token.LINE_BREAK, Start: startIndex, End: l.index}

		case b == '(':
			l.index++
			return token.Token{Type: token.LPAREN, Start: startIndex, End: l.index}

		case b == ')':
			l.index++
			return token.Token{Type: token.RPAREN, Start: startIndex, End: l.index}

		case b == '{':
			l.index++
			l.braceDepth++
			return token.Token{Type: token.LBRACE, Start: startIndex, End: l.index}

		case b == '}':
			l.index++
			l.braceDepth--
			return token.Token{Type: token.RBRACE, Start: startIndex, End: l.index}

		case b == '[':
			l.index++
			return token.Token{Type: token.LBRACKET, Start: startIndex, End: l.index}

		case b == ']':
			l.index++
			return token.Token{Type: token.RBRACKET, Start: startIndex, End: l.index}

		case b == '/':
			l.index++
			return token.Token{Type: token.SLASH, Start: startIndex, End: l.index}

		case b == ',':
			l.index++
			return token.Token{Type: token.COMMA, Start: startIndex, End: l.index}

		case b == '_' && (l.index >= l.length-1 || l.source[l.index+1] != '_'):
			l.index++
			return token.Token{Type: token.UNDERSCORE, Start: startIndex, End: l.index}

		case isOperatorChar(b):
			for l.index < l.length && isOperatorChar(l.source[l.index]) {
				l.index++
			}

			return token.Token{
				Type:  operatorType(l.source[startIndex:l.index]),
				Start: startIndex,
				End:   l.index,
			}

		case b == '#':
			for l.index < l.length && l.source[l.index] != '\n' {
				l.index++
			}

			l.comments[l.line] = token.Token{Type: token.COMMENT, Start: startIndex + 1, End: l.index}

		case isIdentifierStartChar(b):
			for l.index < l.length && isIdentifierChar(l.source[l.index]) {
				l.index++
			}

			typ := token.LookupIdent(string(l.source[startIndex:l.index]), l.braceDepth)
			if typ == token.KW_USE {
				l.expectImportPath = true
			}

			return token.Token{Type: typ, Start: startIndex, End: l.index}

		case isDigit(b):
			if tok, ok := l.scanNumber(startIndex); ok {
				return tok
			}
			// Invalid digits were reported; keep scanning.

		default:
			l.index++
			l.errors = append(l.errors, diagnostics.NewError(
				diagnostics.ErrT007,
				token.Position{Start: startIndex, End: l.index},
			))
			return token.Token{Type: token.UNEXPECTED, Start: startIndex, End: l.index}
		}
	}

	if len(l.interpStack) > 0 {
		start := l.interpStack[len(l.interpStack)-1]
		l.interpStack = l.interpStack[:len(l.interpStack)-1]

		l.errors = append(l.errors, diagnostics.NewError(
			diagnostics.ErrT006,
			token.Position{Start: start, End: l.index},
		))
	}

	if len(l.stringStack) > 0 {
		start := l.stringStack[len(l.stringStack)-1]
		l.stringStack = l.stringStack[:len(l.stringStack)-1]

		l.errors = append(l.errors, diagnostics.NewError(
			diagnostics.ErrT005,
			token.Position{Start: start, End: start + 1},
		))
	}

	return token.Token{Type: token.EOF, Start: l.length, End: l.length}
}

// scanNumber scans decimal digits or a 0b/0x/0o prefixed run. On an
// invalid digit it records a diagnostic, skips to the next whitespace
// boundary and reports no token.
func (l *Lexer) scanNumber(startIndex int) (token.Token, bool) {
	if l.source[l.index] == '0' && l.index+1 < l.length {
		switch l.source[l.index+1] {
		case 'b', 'B':
			l.index += 2
			return l.scanDigits(startIndex, token.BINARY_DIGITS, diagnostics.ErrT001, isBinaryDigit)
		case 'x', 'X':
			l.index += 2
			return l.scanDigits(startIndex, token.HEX_DIGITS, diagnostics.ErrT003, isHexDigit)
		case 'o', 'O':
			l.index += 2
			return l.scanDigits(startIndex, token.OCTAL_DIGITS, diagnostics.ErrT004, isOctalDigit)
		}
	}

	return l.scanDigits(startIndex, token.DECIMAL_DIGITS, diagnostics.ErrT002, isDigit)
}

func (l *Lexer) scanDigits(startIndex int, typ token.Type, code diagnostics.Code, valid func(byte) bool) (token.Token, bool) {
	for l.index < l.length && isIdentifierChar(l.source[l.index]) {
		if !valid(l.source[l.index]) {
			errorStart := l.index

			for l.index < l.length && !isWhitespace(l.source[l.index]) {
				l.index++
			}

			l.errors = append(l.errors, diagnostics.NewError(
				code,
				token.Position{Start: errorStart, End: l.index},
			))

			return token.Token{}, false
		}

		l.index++
	}

	return token.Token{Type: typ, Start: startIndex, End: l.index}, true
}

func operatorType(value []byte) token.Type {
	switch string(value) {
	case ".":
		return token.DOT
	case "|":
		return token.PIPE
	case "=>":
		return token.DOUBLE_ARROW
	case "=":
		return token.EQUALS
	case "->":
		return token.ARROW
	case "::":
		return token.DOUBLE_COLON
	case ":":
		return token.COLON
	case "<":
		return token.LEFT_ANGLE
	case ">":
		return token.RIGHT_ANGLE
	}
	return token.OPERATOR
}

func isIdentifierStartChar(b byte) bool {
	return !isDigit(b) && isIdentifierChar(b)
}

func isIdentifierChar(b byte) bool {
	switch {
	case isWhitespace(b), b < 0x20, b == 0x7f, isOperatorChar(b):
		return false
	}

	switch b {
	case '"', '#', '$', '\'', '(', ')', ',', ';', '`', '[', ']', '{', '}':
		return false
	}

	return true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isBinaryDigit(b byte) bool {
	return b == '0' || b == '1'
}

func isOctalDigit(b byte) bool {
	return b >= '0' && b <= '7'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isOperatorChar(b byte) bool {
	switch b {
	case ':', '|', '.', '*', '/', '+', '-', '=', '<', '>', '~', '!', '%', '&', '@', '^', '?':
		return true
	}
	return false
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isPathChar(b byte) bool {
	switch b {
	case '\\', '?', '%', '*', ':', '"', '<', '>':
		return false
	}
	return !isWhitespace(b)
}
