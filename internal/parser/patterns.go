package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/token"
)

func (p *Parser) parsePattern() ast.Pattern {
	switch p.curToken.Type {
	case token.KW_MUT:
		mutTok := p.curToken
		p.advance()

		if !p.check(token.IDENT) {
			return nil
		}

		name := p.parseIdentifier()

		return &ast.IdentifierPattern{
			Position: token.Position{Start: mutTok.Start, End: name.Pos().End},
			Name:     name,
			Mutable:  true,
		}

	case token.IDENT:
		name := p.parseIdentifier()

		// An identifier directly followed by another pattern is a
		// constructor pattern, e.g. `let Person (n, a) = ...`.
		if argPattern := p.parsePattern(); argPattern != nil {
			return &ast.ConstructorPattern{
				Position: token.Position{Start: name.Pos().Start, End: argPattern.Pos().End},
				Name:     name,
				Param:    argPattern,
			}
		}

		return &ast.IdentifierPattern{
			Position: name.Pos(),
			Name:     name,
		}

	case token.LPAREN:
		return p.parseTuplePattern()

	case token.UNDERSCORE:
		pos := p.curToken.Pos()
		p.advance()
		return &ast.UnderscorePattern{Position: pos}

	case token.STRING_LITERAL:
		expr := p.parseString()
		switch node := expr.(type) {
		case *ast.Literal:
			return &ast.LiteralPattern{Position: node.Position, Literal: node}
		case *ast.Interpolation:
			return &ast.InterpolationPattern{Position: node.Position, Parts: node.Parts}
		}
		return nil

	case token.DECIMAL_DIGITS:
		return literalPattern(p.parseDecimalNumber())

	case token.BINARY_DIGITS:
		return literalPattern(p.parseRadixNumber(token.BINARY_DIGITS, ast.IntBinary, 2))

	case token.HEX_DIGITS:
		return literalPattern(p.parseRadixNumber(token.HEX_DIGITS, ast.IntHex, 16))

	case token.OCTAL_DIGITS:
		return literalPattern(p.parseRadixNumber(token.OCTAL_DIGITS, ast.IntOctal, 8))
	}

	return nil
}

func literalPattern(lit *ast.Literal) ast.Pattern {
	if lit == nil {
		return nil
	}
	return &ast.LiteralPattern{Position: lit.Position, Literal: lit}
}

func (p *Parser) parseTuplePattern() ast.Pattern {
	parenTok, ok := p.expect(token.LPAREN)
	if !ok {
		return nil
	}

	// `identifier:` right after the '(' means a labeled tuple pattern.
	if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.COLON) {
		var entries []ast.LabeledPatternEntry

		for {
			label := p.parseIdentifier()
			if label == nil {
				break
			}

			if _, ok := p.expect(token.COLON); !ok {
				return nil
			}

			pattern := p.parsePattern()
			if pattern == nil {
				break
			}

			entries = append(entries, ast.LabeledPatternEntry{Label: label, Pattern: pattern})

			if !p.curTokenIs(token.COMMA) {
				break
			}
			p.advance()
		}

		endTok, ok := p.expect(token.RPAREN)
		if !ok {
			return nil
		}

		return &ast.LabeledTuplePattern{
			Position: token.Position{Start: parenTok.Start, End: endTok.End},
			Entries:  entries,
		}
	}

	var entries []ast.Pattern

	for {
		pattern := p.parsePattern()
		if pattern == nil {
			break
		}
		entries = append(entries, pattern)

		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.advance()
	}

	endTok, ok := p.expect(token.RPAREN)
	if !ok {
		return nil
	}

	return &ast.UnlabeledTuplePattern{
		Position: token.Position{Start: parenTok.Start, End: endTok.End},
		Entries:  entries,
	}
}
