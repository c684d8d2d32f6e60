package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/token"
)

func (p *Parser) parseTypeExpression() ast.TypeExpr {
	switch p.curToken.Type {
	case token.IDENT:
		ident := p.parseTypeIdentifier()
		if ident == nil {
			return nil
		}
		return &ast.TypeSingle{Position: ident.Position, Ident: ident}

	case token.LPAREN:
		return p.parseTypeParenthetical()

	case token.LBRACE:
		return p.parseTypeFunc()
	}

	return nil
}

func (p *Parser) parseTypeIdentifier() *ast.TypeIdentifier {
	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		return nil
	}

	node := &ast.TypeIdentifier{
		Position: nameTok.Pos(),
		Name:     p.text(nameTok.Pos()),
	}

	if p.curTokenIs(token.LEFT_ANGLE) {
		p.advance()

		for {
			arg := p.parseTypeExpression()
			if arg == nil {
				break
			}
			node.Generics = append(node.Generics, arg)

			if !p.curTokenIs(token.COMMA) {
				break
			}
			p.advance()
		}

		endTok, ok := p.expect(token.RIGHT_ANGLE)
		if !ok {
			return nil
		}
		node.Position.End = endTok.End
	}

	return node
}

// parseTypeParenthetical handles () empty tuple, (T) grouping, (A, B)
// unlabeled tuple and (name: A, ...) labeled tuple type expressions.
func (p *Parser) parseTypeParenthetical() ast.TypeExpr {
	parenTok, ok := p.expect(token.LPAREN)
	if !ok {
		return nil
	}

	p.skipLineBreaks()

	var firstEntry ast.TypeExpr
	var otherEntries []ast.TypeExpr
	labeled := false
	var labeledEntries []ast.LabeledTypeEntry

	for {
		node := p.parseTypeExpression()
		if node == nil {
			break
		}

		if labeled {
			label := typeExprAsLabel(node)
			if label == nil {
				p.error(diagnostics.ErrP022, node.Pos())
			} else {
				if _, ok := p.expect(token.COLON); !ok {
					return nil
				}

				value := p.parseTypeExpression()
				if value == nil {
					p.error(diagnostics.ErrP021, node.Pos())
				} else {
					labeledEntries = append(labeledEntries, ast.LabeledTypeEntry{Label: label, Entry: value})
				}
			}
		} else if firstEntry == nil {
			if p.curTokenIs(token.COLON) {
				p.advance()
				labeled = true

				label := typeExprAsLabel(node)
				if label == nil {
					p.error(diagnostics.ErrP022, node.Pos())
				} else {
					value := p.parseTypeExpression()
					if value == nil {
						p.error(diagnostics.ErrP021, node.Pos())
					} else {
						labeledEntries = append(labeledEntries, ast.LabeledTypeEntry{Label: label, Entry: value})
					}
				}
			} else {
				firstEntry = node
			}
		} else {
			otherEntries = append(otherEntries, node)
		}

		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.advance()
		p.skipLineBreaks()
	}

	p.skipLineBreaks()

	endTok, ok := p.expect(token.RPAREN)
	if !ok {
		return nil
	}

	pos := token.Position{Start: parenTok.Start, End: endTok.End}

	if labeled {
		return &ast.TypeLabeledTuple{Position: pos, Entries: labeledEntries}
	}

	if firstEntry == nil {
		return &ast.TypeEmptyTuple{Position: pos}
	}

	if len(otherEntries) == 0 {
		return &ast.TypeGrouping{Position: pos, Inner: firstEntry}
	}

	entries := append([]ast.TypeExpr{firstEntry}, otherEntries...)

	return &ast.TypeUnlabeledTuple{Position: pos, Entries: entries}
}

// typeExprAsLabel extracts the identifier from a bare single-name type
// expression used in label position.
func typeExprAsLabel(node ast.TypeExpr) *ast.Identifier {
	single, ok := node.(*ast.TypeSingle)
	if !ok || len(single.Ident.Generics) > 0 {
		return nil
	}
	return &ast.Identifier{Position: single.Ident.Position, Name: single.Ident.Name}
}

// parseTypeFunc parses a block type { Param -> Return }.
func (p *Parser) parseTypeFunc() ast.TypeExpr {
	braceTok, ok := p.expect(token.LBRACE)
	if !ok {
		return nil
	}

	p.skipLineBreaks()

	paramType := p.parseTypeExpression()
	if paramType == nil {
		p.error(diagnostics.ErrP031, p.curPos())
		return nil
	}

	if _, ok := p.expect(token.ARROW); !ok {
		return nil
	}

	returnType := p.parseTypeExpression()
	if returnType == nil {
		p.error(diagnostics.ErrP005, p.curPos())
		return nil
	}

	endTok, ok := p.expect(token.RBRACE)
	if !ok {
		return nil
	}

	return &ast.TypeFunc{
		Position: token.Position{Start: braceTok.Start, End: endTok.End},
		Param:    paramType,
		Return:   returnType,
	}
}
