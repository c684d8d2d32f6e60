package parser

import (
	"strconv"
	"strings"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/token"
)

func (p *Parser) parseDecimalNumber() *ast.Literal {
	digits, ok := p.expect(token.DECIMAL_DIGITS)
	if !ok {
		return nil
	}

	// A '.' followed by more digits makes this a float literal. A '.'
	// followed by anything else is left for the chain parser.
	if p.curTokenIs(token.DOT) && p.peekTokenIs(token.DECIMAL_DIGITS) {
		p.advance()

		frac, ok := p.expect(token.DECIMAL_DIGITS)
		if !ok {
			return nil
		}

		pos := token.Position{Start: digits.Start, End: frac.End}
		value, _ := strconv.ParseFloat(p.text(pos), 64)

		return &ast.Literal{
			Position:   pos,
			Kind:       ast.FloatDecimal,
			FloatValue: value,
		}
	}

	value, _ := strconv.ParseInt(p.text(digits.Pos()), 10, 64)

	return &ast.Literal{
		Position: digits.Pos(),
		Kind:     ast.IntDecimal,
		IntValue: value,
	}
}

// parseRadixNumber parses a 0b/0x/0o prefixed integer literal. The
// tokenizer has already validated the digits.
func (p *Parser) parseRadixNumber(typ token.Type, kind ast.LiteralKind, base int) *ast.Literal {
	digits, ok := p.expect(typ)
	if !ok {
		return nil
	}

	text := p.text(digits.Pos())
	value, _ := strconv.ParseInt(text[2:], base, 64)

	return &ast.Literal{
		Position: digits.Pos(),
		Kind:     kind,
		IntValue: value,
	}
}

func (p *Parser) parseString() ast.Expression {
	strTok, ok := p.expect(token.STRING_LITERAL)
	if !ok {
		return nil
	}

	literal := &ast.Literal{
		Position: strTok.Pos(),
		Kind:     ast.Str,
		StrValue: unescape(p.text(strTok.Pos())),
	}

	if !p.curTokenIs(token.INTERPOLATION_START) {
		return literal
	}

	parts := []ast.Expression{literal}
	interpolationEnd := strTok.End

	for p.curTokenIs(token.INTERPOLATION_START) {
		p.advance()

		expr := p.parseExpression(LOWEST)
		if expr == nil {
			break
		}
		parts = append(parts, expr)

		if _, ok := p.expect(token.INTERPOLATION_END); !ok {
			return nil
		}

		strPart, ok := p.expect(token.STRING_LITERAL)
		if !ok {
			return nil
		}

		interpolationEnd = strPart.End
		parts = append(parts, &ast.Literal{
			Position: strPart.Pos(),
			Kind:     ast.Str,
			StrValue: unescape(p.text(strPart.Pos())),
		})
	}

	return &ast.Interpolation{
		Position: token.Position{Start: strTok.Start, End: interpolationEnd},
		Parts:    parts,
	}
}

// unescape resolves the supported escape sequences in a single pass:
// \" \\ \n \r \t. Unknown escapes are kept as-is.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}

		i++
		switch s[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}

	return b.String()
}
