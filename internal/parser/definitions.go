package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/token"
)

func (p *Parser) parseDefinition() *ast.Def {
	defTok, ok := p.expect(token.KW_DEF)
	if !ok {
		return nil
	}

	kind := p.parseDefinitionKind()
	if kind == nil {
		return nil
	}

	returnType, ok := p.parseReturnType(diagnostics.ErrP005)
	if !ok {
		return nil
	}

	p.skipLineBreaks()

	constraints := p.parseGenericTypeConstraints()

	if !p.curTokenIs(token.LBRACE) {
		p.error(diagnostics.ErrP009, p.curPos())
		return nil
	}

	block := p.parseBlock()
	if block == nil {
		return nil
	}

	return &ast.Def{
		Position:    token.Position{Start: defTok.Start, End: block.Pos().End},
		Visibility:  p.visibility,
		Kind:        kind,
		ReturnType:  returnType,
		Constraints: constraints,
		Block:       block,
	}
}

func (p *Parser) parseIntrinsicDefinition() *ast.IntrinsicDef {
	defTok, ok := p.expect(token.KW_INTRINSIC_DEF)
	if !ok {
		return nil
	}

	kind := p.parseDefinitionKind()
	if kind == nil {
		return nil
	}

	returnType, ok := p.parseReturnType(diagnostics.ErrP023)
	if !ok {
		return nil
	}

	p.skipLineBreaks()

	constraints := p.parseGenericTypeConstraints()

	end := p.prevToken.End
	if end < defTok.End {
		end = defTok.End
	}

	return &ast.IntrinsicDef{
		Position:    token.Position{Start: defTok.Start, End: end},
		Visibility:  p.visibility,
		Kind:        kind,
		ReturnType:  returnType,
		Constraints: constraints,
	}
}

func (p *Parser) parseReturnType(missingCode diagnostics.Code) (ast.TypeExpr, bool) {
	if !p.curTokenIs(token.ARROW) {
		return nil, true
	}
	p.advance()

	returnType := p.parseTypeExpression()
	if returnType == nil {
		p.error(missingCode, p.curPos())
		return nil, false
	}

	return returnType, true
}

// parseDefinitionKind distinguishes the four def forms by their heads:
//
//	def ~Int ...                 unary operator
//	def Int + Int ...            binary operator
//	def Person.name String ...   receiver method
//	def replace String with ...  (multi-part) function
func (p *Parser) parseDefinitionKind() ast.DefKind {
	if p.curTokenIs(token.OPERATOR) {
		op := &ast.Operator{
			Position: p.curToken.Pos(),
			Name:     p.text(p.curToken.Pos()),
		}
		p.advance()

		right := p.parseTypeIdentifier()
		if right == nil {
			p.error(diagnostics.ErrP023, p.curPos())
			return nil
		}

		return &ast.UnaryOperatorKind{Op: op, Right: right}
	}

	typeIdent := p.parseTypeIdentifier()
	if typeIdent == nil {
		p.error(diagnostics.ErrP023, p.curPos())
		return nil
	}

	var receiver *ast.TypeIdentifier
	var binaryOp *ast.Operator
	var signature ast.Signature

	if p.curTokenIs(token.DOT) {
		// A dot means the first identifier was a receiver type.
		receiver = typeIdent
		p.advance()
	} else if p.curTokenIs(token.OPERATOR) {
		// An operator means this is a binary operator definition.
		receiver = typeIdent
		binaryOp = &ast.Operator{
			Position: p.curToken.Pos(),
			Name:     p.text(p.curToken.Pos()),
		}
		p.advance()
	} else {
		// Otherwise it was the first part of the method name; grab the
		// param type for this part.
		partType := p.parseTypeExpression()
		if partType == nil {
			p.error(diagnostics.ErrP023, p.curPos())
			return nil
		}

		signature = append(signature, ast.SignaturePart{
			Name:     &ast.Identifier{Position: typeIdent.Position, Name: typeIdent.Name},
			TypeExpr: partType,
		})
	}

	// Binary operator defs take exactly one type identifier after the
	// operator (plus an optional return type), so finish them here.
	if binaryOp != nil {
		right := p.parseTypeIdentifier()
		if right == nil {
			p.error(diagnostics.ErrP023, p.curPos())
			return nil
		}

		return &ast.BinaryOperatorKind{Left: receiver, Op: binaryOp, Right: right}
	}

	for p.curTokenIs(token.IDENT) {
		partName := p.parseIdentifier()

		partType := p.parseTypeExpression()
		if partType == nil {
			p.error(diagnostics.ErrP023, p.curPos())
			return nil
		}

		signature = append(signature, ast.SignaturePart{Name: partName, TypeExpr: partType})
	}

	if len(signature) == 0 {
		p.error(diagnostics.ErrP023, p.curPos())
		return nil
	}

	if receiver != nil {
		return &ast.MethodKind{Receiver: receiver, Signature: signature}
	}

	return &ast.FunctionKind{Signature: signature}
}

func (p *Parser) parseGenericTypeConstraints() []ast.GenericConstraint {
	var constraints []ast.GenericConstraint

	if p.curTokenIs(token.KW_WHERE) {
		p.advance()

		for {
			genericName := p.parseIdentifier()
			if genericName == nil {
				break
			}

			if _, ok := p.expect(token.DOUBLE_COLON); !ok {
				return constraints
			}

			constraintType := p.parseTypeIdentifier()
			if constraintType == nil {
				p.error(diagnostics.ErrP004, p.curPos())
				return constraints
			}

			constraints = append(constraints, ast.GenericConstraint{
				Name:       genericName,
				Constraint: constraintType,
			})

			if !p.curTokenIs(token.COMMA) {
				break
			}
			p.advance()
		}
	}

	p.skipLineBreaks()

	return constraints
}
