package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/token"
)

func (p *Parser) parseTopLevelStatement() ast.TopLevelStatement {
	switch p.curToken.Type {
	case token.KW_LET:
		if stmt := p.parseLetStatement(); stmt != nil {
			return stmt
		}
		return nil

	case token.KW_CONST:
		if stmt := p.parseConstStatement(); stmt != nil {
			return stmt
		}
		return nil

	case token.KW_DEF:
		if def := p.parseDefinition(); def != nil {
			return def
		}
		return nil

	case token.KW_INTRINSIC_DEF:
		if def := p.parseIntrinsicDefinition(); def != nil {
			return def
		}
		return nil

	case token.KW_ALIAS:
		if typeDef := p.parseAlias(); typeDef != nil {
			return typeDef
		}
		return nil

	case token.KW_ENUM:
		if typeDef := p.parseEnum(); typeDef != nil {
			return typeDef
		}
		return nil

	case token.KW_STRUCT:
		if typeDef := p.parseStruct(); typeDef != nil {
			return typeDef
		}
		return nil

	case token.KW_TRAIT:
		if typeDef := p.parseTrait(); typeDef != nil {
			return typeDef
		}
		return nil

	case token.KW_INTRINSIC_TYPE:
		if typeDef := p.parseIntrinsicType(); typeDef != nil {
			return typeDef
		}
		return nil

	case token.KW_PRIVATE:
		pos := p.curToken.Pos()
		p.advance()
		p.visibility = ast.Private
		return &ast.VisibilityMarker{Position: pos, Visibility: ast.Private}

	case token.KW_INTERNAL:
		pos := p.curToken.Pos()
		p.advance()
		p.visibility = ast.Internal
		return &ast.VisibilityMarker{Position: pos, Visibility: ast.Internal}

	case token.KW_RETURN:
		p.error(diagnostics.ErrP030, p.curToken.Pos())
		return nil

	default:
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return nil
		}
		return &ast.ExpressionStatement{Position: expr.Pos(), Expression: expr}
	}
}

// parseStatement parses a statement inside a block body.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.KW_LET:
		if stmt := p.parseLetStatement(); stmt != nil {
			return stmt
		}
		return nil

	case token.KW_RETURN:
		if stmt := p.parseReturnStatement(); stmt != nil {
			return stmt
		}
		return nil

	default:
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return nil
		}
		return &ast.ExpressionStatement{Position: expr.Pos(), Expression: expr}
	}
}

func (p *Parser) parseLetStatement() *ast.LetStatement {
	letTok, ok := p.expect(token.KW_LET)
	if !ok {
		return nil
	}

	pattern := p.parsePattern()
	if pattern == nil {
		p.error(diagnostics.ErrP003, p.curPos())
		return nil
	}

	if _, ok := p.expect(token.EQUALS); !ok {
		return nil
	}

	value := p.parseExpression(LOWEST)
	if value == nil {
		p.error(diagnostics.ErrP015, p.curPos())
		return nil
	}

	return &ast.LetStatement{
		Position: token.Position{Start: letTok.Start, End: value.Pos().End},
		Pattern:  pattern,
		Value:    value,
	}
}

func (p *Parser) parseConstStatement() *ast.ConstStatement {
	constTok, ok := p.expect(token.KW_CONST)
	if !ok {
		return nil
	}

	name := p.parseIdentifier()
	if name == nil {
		p.error(diagnostics.ErrP003, p.curPos())
		return nil
	}

	if _, ok := p.expect(token.EQUALS); !ok {
		return nil
	}

	value := p.parseExpression(LOWEST)
	if value == nil {
		p.error(diagnostics.ErrP015, p.curPos())
		return nil
	}

	return &ast.ConstStatement{
		Position: token.Position{Start: constTok.Start, End: value.Pos().End},
		Name:     name,
		Value:    value,
	}
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	returnTok, ok := p.expect(token.KW_RETURN)
	if !ok {
		return nil
	}

	stmt := &ast.ReturnStatement{Position: returnTok.Pos()}

	if p.curTokenIs(token.LINE_BREAK) || p.curTokenIs(token.RBRACE) || p.curTokenIs(token.EOF) {
		return stmt
	}

	value := p.parseExpression(LOWEST)
	if value == nil {
		p.error(diagnostics.ErrP008, p.curPos())
		return nil
	}

	stmt.Value = value
	stmt.Position.End = value.Pos().End
	return stmt
}

func (p *Parser) parseUseStatement() *ast.UseStatement {
	useTok, ok := p.expect(token.KW_USE)
	if !ok {
		return nil
	}

	pathTok, ok := p.expect(token.IMPORT_PATH)
	if !ok {
		return nil
	}

	node := &ast.UseStatement{
		Position:   token.Position{Start: useTok.Start, End: pathTok.End},
		ModuleName: p.text(pathTok.Pos()),
	}

	if p.curTokenIs(token.KW_AS) {
		p.advance()

		qualifier := p.parseIdentifier()
		if qualifier == nil {
			p.error(diagnostics.ErrP014, p.curPos())
			return nil
		}

		node.Qualifier = qualifier
		node.Position.End = qualifier.Pos().End
		p.qualifiers[qualifier.Name] = true
	}

	return node
}
