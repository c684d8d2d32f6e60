package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/token"
)

func (p *Parser) parseAlias() *ast.TypeDef {
	aliasTok, ok := p.expect(token.KW_ALIAS)
	if !ok {
		return nil
	}

	name := p.parseTypeIdentifier()
	if name == nil {
		p.error(diagnostics.ErrP019, p.curPos())
		return nil
	}

	p.skipLineBreaks()

	constraints := p.parseGenericTypeConstraints()

	typeExpr := p.parseTypeExpression()
	if typeExpr == nil {
		p.error(diagnostics.ErrP004, p.curPos())
		return nil
	}

	return &ast.TypeDef{
		Position:    token.Position{Start: aliasTok.Start, End: typeExpr.Pos().End},
		Visibility:  p.visibility,
		Name:        name,
		Kind:        &ast.AliasDef{Of: typeExpr},
		Constraints: constraints,
	}
}

func (p *Parser) parseEnum() *ast.TypeDef {
	enumTok, ok := p.expect(token.KW_ENUM)
	if !ok {
		return nil
	}

	name := p.parseTypeIdentifier()
	if name == nil {
		p.error(diagnostics.ErrP019, p.curPos())
		return nil
	}

	p.skipLineBreaks()

	constraints := p.parseGenericTypeConstraints()

	var variants []*ast.EnumVariant

	if !p.check(token.PIPE) {
		return nil
	}

	for p.curTokenIs(token.PIPE) {
		p.advance()

		variantName := p.parseIdentifier()
		if variantName == nil {
			p.error(diagnostics.ErrP003, p.curPos())
			return nil
		}

		variant := &ast.EnumVariant{
			Position: variantName.Pos(),
			Name:     variantName,
		}

		// A variant is either a constructor with a payload type, or a
		// plain identifier.
		if p.curTokenIs(token.IDENT) || p.curTokenIs(token.LPAREN) {
			payload := p.parseTypeExpression()
			if payload == nil {
				return nil
			}
			variant.Payload = payload
			variant.Position.End = payload.Pos().End
		}

		variants = append(variants, variant)
		p.skipLineBreaks()
	}

	if len(variants) == 0 {
		p.error(diagnostics.ErrP011, p.curPos())
		return nil
	}

	return &ast.TypeDef{
		Position:    token.Position{Start: enumTok.Start, End: variants[len(variants)-1].Pos().End},
		Visibility:  p.visibility,
		Name:        name,
		Kind:        &ast.EnumDef{Variants: variants},
		Constraints: constraints,
	}
}

func (p *Parser) parseStruct() *ast.TypeDef {
	structTok, ok := p.expect(token.KW_STRUCT)
	if !ok {
		return nil
	}

	name := p.parseTypeIdentifier()
	if name == nil {
		p.error(diagnostics.ErrP019, p.curPos())
		return nil
	}

	p.skipLineBreaks()

	constraints := p.parseGenericTypeConstraints()

	inner := p.parseTypeExpression()
	if inner == nil {
		p.error(diagnostics.ErrP016, p.curPos())
		return nil
	}

	return &ast.TypeDef{
		Position:    token.Position{Start: structTok.Start, End: inner.Pos().End},
		Visibility:  p.visibility,
		Name:        name,
		Kind:        &ast.StructDef{Inner: inner},
		Constraints: constraints,
	}
}

// parseTrait parses a trait definition: a run of '.'-led entries, each
// either a field (`. name :: Type`) or a method signature
// (`. part Type part Type -> Ret`).
func (p *Parser) parseTrait() *ast.TypeDef {
	traitTok, ok := p.expect(token.KW_TRAIT)
	if !ok {
		return nil
	}

	name := p.parseTypeIdentifier()
	if name == nil {
		p.error(diagnostics.ErrP019, p.curPos())
		return nil
	}

	p.skipLineBreaks()

	constraints := p.parseGenericTypeConstraints()

	p.skipLineBreaks()

	var fields []ast.LabeledTypeEntry
	var methods []ast.TraitMethodSig
	end := traitTok.End

outer:
	for p.curTokenIs(token.DOT) {
		p.advance()

		var signature ast.Signature

		for p.curTokenIs(token.IDENT) {
			partName := p.parseIdentifier()

			if p.curTokenIs(token.COLON) || p.curTokenIs(token.DOUBLE_COLON) {
				p.advance()

				// A field type is only valid as the sole entry; a colon
				// after later signature parts is malformed.
				if len(signature) == 0 {
					fieldType := p.parseTypeExpression()
					if fieldType == nil {
						p.error(diagnostics.ErrP023, p.curPos())
						return nil
					}

					end = fieldType.Pos().End
					fields = append(fields, ast.LabeledTypeEntry{Label: partName, Entry: fieldType})
				} else {
					p.errorExpected(token.DOT)
				}

				p.skipLineBreaks()
				continue outer
			}

			partType := p.parseTypeExpression()
			if partType == nil {
				p.error(diagnostics.ErrP023, p.curPos())
				return nil
			}

			signature = append(signature, ast.SignaturePart{Name: partName, TypeExpr: partType})
		}

		if _, ok := p.expect(token.ARROW); !ok {
			return nil
		}

		returnType := p.parseTypeExpression()
		if returnType == nil {
			p.error(diagnostics.ErrP023, p.curPos())
			return nil
		}

		end = returnType.Pos().End
		methods = append(methods, ast.TraitMethodSig{Signature: signature, Return: returnType})

		p.skipLineBreaks()
	}

	p.skipLineBreaks()

	return &ast.TypeDef{
		Position:    token.Position{Start: traitTok.Start, End: end},
		Visibility:  p.visibility,
		Name:        name,
		Kind:        &ast.TraitDef{Fields: fields, Methods: methods},
		Constraints: constraints,
	}
}

func (p *Parser) parseIntrinsicType() *ast.IntrinsicTypeDef {
	typeTok, ok := p.expect(token.KW_INTRINSIC_TYPE)
	if !ok {
		return nil
	}

	if !p.curTokenIs(token.IDENT) {
		p.error(diagnostics.ErrP019, p.curPos())
		return nil
	}

	name := p.parseIdentifier()

	return &ast.IntrinsicTypeDef{
		Position:   token.Position{Start: typeTok.Start, End: name.Pos().End},
		Visibility: p.visibility,
		Name:       name,
	}
}
