package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/token"
)

// parseRegularExpression parses a /.../-fenced regular expression.
func (p *Parser) parseRegularExpression() ast.Expression {
	openTok, ok := p.expect(token.SLASH)
	if !ok {
		return nil
	}

	p.skipLineBreaks()

	body := p.parseRegularExpressionBody()

	p.skipLineBreaks()

	closeTok, ok := p.expect(token.SLASH)
	if !ok {
		return nil
	}

	pos := token.Position{Start: openTok.Start, End: closeTok.End}

	if body == nil {
		p.error(diagnostics.ErrP026, pos)
		return nil
	}

	return &ast.RegExpression{Position: pos, Regex: body}
}

// parseRegularExpressionBody parses '|'-separated alternatives.
func (p *Parser) parseRegularExpressionBody() ast.RegExpr {
	var first ast.RegExpr
	var others []ast.RegExpr

	term := p.parseRegularExpressionTerm()

	for term != nil {
		p.skipLineBreaks()

		if first == nil {
			first = term
		} else {
			others = append(others, term)
		}

		if p.curTokenIs(token.PIPE) {
			p.advance()
			term = p.parseRegularExpressionTerm()
			continue
		}

		break
	}

	if first == nil {
		return nil
	}

	if len(others) == 0 {
		return first
	}

	alternatives := append([]ast.RegExpr{first}, others...)

	return &ast.RegAlternation{
		Position: token.Position{
			Start: alternatives[0].Pos().Start,
			End:   alternatives[len(alternatives)-1].Pos().End,
		},
		Alternatives: alternatives,
	}
}

// parseRegularExpressionTerm parses a sequence of parts, each with an
// optional postfix modifier (?, *, +, or a {m,n} count).
func (p *Parser) parseRegularExpressionTerm() ast.RegExpr {
	var first ast.RegExpr
	var others []ast.RegExpr

	for {
		p.skipLineBreaks()

		var part ast.RegExpr

		switch p.curToken.Type {
		case token.IDENT:
			pos := p.curToken.Pos()
			name := p.text(pos)
			p.advance()
			part = &ast.RegCharacterClass{Position: pos, Name: name}

		case token.STRING_LITERAL:
			pos := p.curToken.Pos()
			value := unescape(p.text(pos))
			p.advance()
			part = &ast.RegLiteral{Position: pos, Value: value}

		case token.LPAREN:
			pos := p.curToken.Pos()
			p.advance()

			inner := p.parseRegularExpressionBody()
			if inner == nil {
				p.error(diagnostics.ErrP027, pos)
				return nil
			}

			if _, ok := p.expect(token.RPAREN); !ok {
				return nil
			}

			part = &ast.RegGrouping{Position: pos, Inner: inner}

		case token.LEFT_ANGLE:
			pos := p.curToken.Pos()
			p.advance()

			if !p.check(token.IDENT) {
				return nil
			}
			name := p.text(p.curToken.Pos())
			p.advance()

			if _, ok := p.expect(token.COLON); !ok {
				return nil
			}

			inner := p.parseRegularExpressionBody()
			if inner == nil {
				p.error(diagnostics.ErrP027, pos)
				return nil
			}

			if _, ok := p.expect(token.RIGHT_ANGLE); !ok {
				return nil
			}

			part = &ast.RegNamedCapture{Position: pos, Name: name, Inner: inner}
		}

		if part == nil {
			break
		}

		part = p.parseRegularExpressionModifier(part)
		if part == nil {
			return nil
		}

		p.skipLineBreaks()

		if first == nil {
			first = part
		} else {
			others = append(others, part)
		}
	}

	if len(others) == 0 {
		return first
	}

	parts := append([]ast.RegExpr{first}, others...)

	return &ast.RegSequence{
		Position: token.Position{Start: parts[0].Pos().Start, End: parts[len(parts)-1].Pos().End},
		Parts:    parts,
	}
}

func (p *Parser) parseRegularExpressionModifier(part ast.RegExpr) ast.RegExpr {
	switch p.curToken.Type {
	case token.OPERATOR:
		end := p.curToken.End
		pos := token.Position{Start: part.Pos().Start, End: end}

		switch p.text(p.curToken.Pos()) {
		case "*":
			p.advance()
			return &ast.RegZeroOrMore{Position: pos, Inner: part}
		case "+":
			p.advance()
			return &ast.RegOneOrMore{Position: pos, Inner: part}
		case "?":
			p.advance()
			return &ast.RegOneOrZero{Position: pos, Inner: part}
		}

		return part

	case token.LBRACE:
		p.advance()

		var minCount, maxCount *int
		hasComma := false

		if p.curTokenIs(token.DECIMAL_DIGITS) {
			value := p.parseCount()
			minCount = &value
		}

		if p.curTokenIs(token.COMMA) {
			hasComma = true
			p.advance()

			if p.curTokenIs(token.DECIMAL_DIGITS) {
				value := p.parseCount()
				maxCount = &value
			}
		}

		endTok, ok := p.expect(token.RBRACE)
		if !ok {
			return nil
		}

		pos := token.Position{Start: part.Pos().Start, End: endTok.End}

		switch {
		case minCount != nil && maxCount == nil && hasComma:
			return &ast.RegAtLeastCount{Position: pos, Inner: part, Min: *minCount}

		case minCount == nil && maxCount != nil && hasComma:
			return &ast.RegAtMostCount{Position: pos, Inner: part, Max: *maxCount}

		case minCount != nil && maxCount == nil:
			return &ast.RegExactCount{Position: pos, Inner: part, Count: *minCount}

		case minCount != nil && maxCount != nil:
			if *minCount > *maxCount {
				p.error(diagnostics.ErrP029, pos)
			}
			return &ast.RegRangeCount{Position: pos, Inner: part, Min: *minCount, Max: *maxCount}

		default:
			p.error(diagnostics.ErrP028, pos)
			return nil
		}
	}

	return part
}

func (p *Parser) parseCount() int {
	value := 0
	for _, b := range p.source[p.curToken.Start:p.curToken.End] {
		value = value*10 + int(b-'0')
	}
	p.advance()
	return value
}
