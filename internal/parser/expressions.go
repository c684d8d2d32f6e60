package parser

import (
	"strconv"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/token"
)

// Precedence levels, weakest to strongest. Operators not in the fixed
// table (user-defined ones like '<>') bind at GENERIC, just above
// assignment.
const (
	LOWEST = iota
	ASSIGN
	GENERIC
	ASSERTION // ::
	BITOR     // |
	BITXOR    // ^
	BITAND    // &
	EQUALITY  // == !=
	ORDERING  // < > <= >=
	SHIFT     // << >>
	SUM       // + - ++
	PRODUCT   // * %
	EXPONENT  // **
	PREFIX    // ! - ~
)

func operatorPrecedence(op string) int {
	switch op {
	case "|":
		return BITOR
	case "^":
		return BITXOR
	case "&":
		return BITAND
	case "==", "!=":
		return EQUALITY
	case "<", ">", "<=", ">=":
		return ORDERING
	case "<<", ">>":
		return SHIFT
	case "+", "-", "++":
		return SUM
	case "*", "%":
		return PRODUCT
	case "**":
		return EXPONENT
	}
	return GENERIC
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	expr := p.parseOperatorBranch()

	for expr != nil {
		switch p.curToken.Type {
		case token.OPERATOR, token.LEFT_ANGLE, token.RIGHT_ANGLE:
			opPrec := operatorPrecedence(p.text(p.curToken.Pos()))
			if precedence >= opPrec {
				return expr
			}
			expr = p.parseBinaryOperation(expr, opPrec)

		case token.DOUBLE_COLON:
			if precedence >= ASSERTION {
				return expr
			}
			expr = p.parseTypeAssertion(expr)

		default:
			return expr
		}
	}

	return expr
}

func (p *Parser) parseBinaryOperation(left ast.Expression, precedence int) ast.Expression {
	op := &ast.Operator{
		Position: p.curToken.Pos(),
		Name:     p.text(p.curToken.Pos()),
	}
	p.advance()
	p.skipLineBreaks()

	right := p.parseExpression(precedence)
	if right == nil {
		p.error(diagnostics.ErrP007, p.curPos())
		return nil
	}

	return &ast.BinaryOperation{
		Position: token.Position{Start: left.Pos().Start, End: right.Pos().End},
		Left:     left,
		Op:       op,
		Right:    right,
	}
}

// parseOperatorBranch parses a term and its postfix continuations:
// '.'-chains (allowed across line breaks) and call arguments (same line
// only — a line break ends the call).
func (p *Parser) parseOperatorBranch() ast.Expression {
	expr := p.parseTerm()

	for expr != nil {
		skippedBreaks := p.curTokenIs(token.LINE_BREAK)
		p.skipLineBreaks()

		if p.curTokenIs(token.DOT) {
			expr = p.parseChain(expr)
			continue
		}

		if !skippedBreaks && startsTerm(p.curToken.Type) {
			expr = p.parseCall(expr)
			continue
		}

		break
	}

	return expr
}

func startsTerm(typ token.Type) bool {
	switch typ {
	case token.LPAREN, token.LBRACKET, token.LBRACE,
		token.DECIMAL_DIGITS, token.BINARY_DIGITS, token.HEX_DIGITS, token.OCTAL_DIGITS,
		token.STRING_LITERAL, token.IDENT:
		return true
	}
	return false
}

// parseCall parses call arguments following a callee expression. For
// identifier callees it greedily consumes further (name part, argument)
// pairs to form a multi-part call; for a field access callee the pairs
// extend into a method access.
func (p *Parser) parseCall(lastExpr ast.Expression) ast.Expression {
	start := lastExpr.Pos().Start

	firstArg := p.parseTerm()
	if firstArg == nil {
		return nil
	}
	args := []ast.Expression{firstArg}

	var callee ast.Expression

	switch node := lastExpr.(type) {
	case *ast.Identifier:
		parts, ok := p.parseCalleeParts(&args, node)
		if !ok {
			return nil
		}

		if len(parts) > 1 {
			callee = &ast.MultiPartIdentifier{
				Position: token.Position{Start: node.Pos().Start, End: parts[len(parts)-1].Pos().End},
				Parts:    parts,
			}
		} else {
			callee = node
		}

	case *ast.QualifiedIdentifier:
		parts, ok := p.parseCalleeParts(&args, node.Ident)
		if !ok {
			return nil
		}

		if len(parts) > 1 {
			callee = &ast.QualifiedMultiPartIdentifier{
				Position:  token.Position{Start: node.Pos().Start, End: parts[len(parts)-1].Pos().End},
				Qualifier: node.Qualifier,
				Parts:     parts,
			}
		} else {
			callee = node
		}

	case *ast.FieldAccess:
		parts, ok := p.parseCalleeParts(&args, node.Field)
		if !ok {
			return nil
		}

		callee = &ast.MethodAccess{
			Position:    node.Pos(),
			Receiver:    node.Receiver,
			MethodParts: parts,
		}

	default:
		callee = lastExpr
	}

	return &ast.CallExpression{
		Position: token.Position{Start: start, End: args[len(args)-1].Pos().End},
		Callee:   callee,
		Args:     args,
	}
}

// parseCalleeParts consumes (identifier, argument) pairs on the same
// line, appending arguments in place. The first part is supplied by the
// caller.
func (p *Parser) parseCalleeParts(args *[]ast.Expression, first *ast.Identifier) ([]*ast.Identifier, bool) {
	parts := []*ast.Identifier{first}

	for p.curTokenIs(token.IDENT) {
		part := p.parseIdentifier()
		if part == nil {
			p.errorExpected(token.IDENT)
			return nil, false
		}
		parts = append(parts, part)

		arg := p.parseTerm()
		if arg == nil {
			p.error(diagnostics.ErrP020, p.curPos())
			return nil, false
		}
		*args = append(*args, arg)
	}

	return parts, true
}

// parseChain parses a '.' continuation: a field access, a tuple index
// access, or a qualified identifier when the receiver names a module
// alias introduced by a use statement.
func (p *Parser) parseChain(lastExpr ast.Expression) ast.Expression {
	if _, ok := p.expect(token.DOT); !ok {
		return nil
	}

	term := p.parseTerm()
	if term == nil {
		p.error(diagnostics.ErrP006, p.curPos())
		return nil
	}

	switch node := term.(type) {
	case *ast.Identifier:
		if receiver, ok := lastExpr.(*ast.Identifier); ok && p.qualifiers[receiver.Name] {
			return &ast.QualifiedIdentifier{
				Position:  token.Position{Start: lastExpr.Pos().Start, End: node.Pos().End},
				Qualifier: receiver,
				Ident:     node,
			}
		}

		return &ast.FieldAccess{
			Position: token.Position{Start: lastExpr.Pos().Start, End: node.Pos().End},
			Receiver: lastExpr,
			Field:    node,
		}

	case *ast.Literal:
		// A decimal number after '.' is a tuple index access, e.g. pair.0
		if node.Kind == ast.IntDecimal {
			return &ast.FieldAccess{
				Position: token.Position{Start: lastExpr.Pos().Start, End: node.Pos().End},
				Receiver: lastExpr,
				Field: &ast.Identifier{
					Position: node.Position,
					Name:     strconv.FormatInt(node.IntValue, 10),
				},
			}
		}
	}

	p.error(diagnostics.ErrP032, term.Pos())
	return nil
}

func (p *Parser) parseTerm() ast.Expression {
	switch p.curToken.Type {
	case token.LPAREN:
		return p.parseParenthetical()

	case token.SLASH:
		return p.parseRegularExpression()

	case token.OPERATOR:
		return p.parseUnaryOperation()

	case token.LBRACE:
		block := p.parseBlock()
		if block == nil {
			return nil
		}
		return block

	case token.LBRACKET:
		return p.parseListOrDict()

	case token.STRING_LITERAL:
		return p.parseString()

	case token.KW_MATCH:
		return p.parseMatch()

	case token.UNDERSCORE:
		pos := p.curToken.Pos()
		p.advance()
		return &ast.UnderscoreExpression{Position: pos}

	case token.IDENT:
		ident := p.parseIdentifier()

		if p.curTokenIs(token.EQUALS) {
			p.advance()

			right := p.parseExpression(LOWEST)
			if right == nil {
				p.error(diagnostics.ErrP015, p.curPos())
				return nil
			}

			return &ast.AssignmentExpression{
				Position: token.Position{Start: ident.Pos().Start, End: right.Pos().End},
				Left:     ident,
				Right:    right,
			}
		}

		return ident

	case token.DECIMAL_DIGITS:
		return literalExpr(p.parseDecimalNumber())

	case token.BINARY_DIGITS:
		return literalExpr(p.parseRadixNumber(token.BINARY_DIGITS, ast.IntBinary, 2))

	case token.HEX_DIGITS:
		return literalExpr(p.parseRadixNumber(token.HEX_DIGITS, ast.IntHex, 16))

	case token.OCTAL_DIGITS:
		return literalExpr(p.parseRadixNumber(token.OCTAL_DIGITS, ast.IntOctal, 8))
	}

	return nil
}

func literalExpr(lit *ast.Literal) ast.Expression {
	if lit == nil {
		return nil
	}
	return lit
}

func (p *Parser) parseIdentifier() *ast.Identifier {
	if !p.curTokenIs(token.IDENT) {
		return nil
	}

	node := &ast.Identifier{
		Position: p.curToken.Pos(),
		Name:     p.text(p.curToken.Pos()),
	}
	p.advance()
	return node
}

func (p *Parser) parseUnaryOperation() ast.Expression {
	op := &ast.Operator{
		Position: p.curToken.Pos(),
		Name:     p.text(p.curToken.Pos()),
	}
	p.advance()

	right := p.parseOperatorBranch()
	if right == nil {
		p.error(diagnostics.ErrP007, p.curPos())
		return nil
	}

	return &ast.UnaryOperation{
		Position: token.Position{Start: op.Position.Start, End: right.Pos().End},
		Op:       op,
		Right:    right,
	}
}

// parseParenthetical handles all of: () empty tuple, (expr) grouping,
// (a, b) unlabeled tuple, (name: a, ...) labeled tuple.
func (p *Parser) parseParenthetical() ast.Expression {
	parenTok, ok := p.expect(token.LPAREN)
	if !ok {
		return nil
	}

	var firstExpr ast.Expression
	var otherExprs []ast.Expression
	labeled := false
	var labeledEntries []ast.LabeledExprEntry

	p.skipLineBreaks()

	for {
		node := p.parseExpression(LOWEST)
		if node == nil {
			break
		}

		if labeled {
			label, ok := node.(*ast.Identifier)
			if !ok {
				p.error(diagnostics.ErrP022, node.Pos())
			} else {
				if _, ok := p.expect(token.COLON); !ok {
					return nil
				}

				p.skipLineBreaks()

				value := p.parseExpression(LOWEST)
				if value == nil {
					p.error(diagnostics.ErrP021, node.Pos())
				} else {
					labeledEntries = append(labeledEntries, ast.LabeledExprEntry{Label: label, Value: value})
				}
			}
		} else if firstExpr == nil {
			if p.curTokenIs(token.COLON) {
				p.advance()
				labeled = true

				label, ok := node.(*ast.Identifier)
				if !ok {
					p.error(diagnostics.ErrP022, node.Pos())
				} else {
					p.skipLineBreaks()

					value := p.parseExpression(LOWEST)
					if value == nil {
						p.error(diagnostics.ErrP021, node.Pos())
					} else {
						labeledEntries = append(labeledEntries, ast.LabeledExprEntry{Label: label, Value: value})
					}
				}
			} else {
				firstExpr = node
			}
		} else {
			otherExprs = append(otherExprs, node)
		}

		p.skipLineBreaks()

		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.advance()
		p.skipLineBreaks()
	}

	p.skipLineBreaks()

	if !p.curTokenIs(token.RPAREN) {
		p.error(diagnostics.ErrP024, p.curPos())
		return nil
	}
	parenEnd := p.curToken.End
	p.advance()

	pos := token.Position{Start: parenTok.Start, End: parenEnd}

	if len(labeledEntries) > 0 {
		return &ast.LabeledTupleExpression{Position: pos, Entries: labeledEntries}
	}

	if firstExpr == nil {
		return &ast.EmptyTuple{Position: pos}
	}

	if len(otherExprs) == 0 {
		return &ast.Grouping{Position: pos, Inner: firstExpr}
	}

	entries := append([]ast.Expression{firstExpr}, otherExprs...)

	return &ast.UnlabeledTupleExpression{Position: pos, Entries: entries}
}

func (p *Parser) parseListOrDict() ast.Expression {
	bracketTok, ok := p.expect(token.LBRACKET)
	if !ok {
		return nil
	}

	var listElements []ast.Expression
	var dictEntries []ast.DictEntry

	p.skipLineBreaks()

	for {
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			break
		}

		if p.curTokenIs(token.COLON) {
			if len(listElements) > 0 {
				p.error(diagnostics.ErrP025, p.curToken.Pos())
			}

			p.advance()

			value := p.parseExpression(LOWEST)
			if value == nil {
				p.error(diagnostics.ErrP010, p.curPos())
				return nil
			}
			dictEntries = append(dictEntries, ast.DictEntry{Key: expr, Value: value})
		} else {
			if len(dictEntries) > 0 {
				p.error(diagnostics.ErrP010, p.curPos())
			}
			listElements = append(listElements, expr)
		}

		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.advance()
		p.skipLineBreaks()
	}

	p.skipLineBreaks()

	isEmptyDict := false
	if len(listElements) == 0 && len(dictEntries) == 0 && p.curTokenIs(token.COLON) {
		// The empty dict literal [:]
		p.advance()
		isEmptyDict = true
	}

	endTok, ok := p.expect(token.RBRACKET)
	if !ok {
		return nil
	}

	pos := token.Position{Start: bracketTok.Start, End: endTok.End}

	if len(dictEntries) > 0 || isEmptyDict {
		return &ast.DictLiteral{Position: pos, Entries: dictEntries}
	}

	return &ast.ListLiteral{Position: pos, Elements: listElements}
}

func (p *Parser) parseBlock() *ast.Block {
	braceTok, ok := p.expect(token.LBRACE)
	if !ok {
		return nil
	}

	p.skipLineBreaks()

	var params []ast.Pattern
	var body []ast.Statement

	if p.curTokenIs(token.PIPE) {
		p.advance()

		for {
			pattern := p.parsePattern()
			if pattern == nil {
				break
			}
			params = append(params, pattern)

			if !p.curTokenIs(token.COMMA) {
				break
			}
			p.advance()
		}

		if _, ok := p.expect(token.PIPE); !ok {
			return nil
		}
	}

	p.skipLineBreaks()

	for {
		stmt := p.parseStatement()
		if stmt == nil {
			break
		}
		body = append(body, stmt)
		p.skipLineBreaks()
	}

	p.skipLineBreaks()

	endTok, ok := p.expect(token.RBRACE)
	if !ok {
		return nil
	}

	return &ast.Block{
		Position: token.Position{Start: braceTok.Start, End: endTok.End},
		Params:   params,
		Body:     body,
	}
}

func (p *Parser) parseMatch() ast.Expression {
	matchTok, ok := p.expect(token.KW_MATCH)
	if !ok {
		return nil
	}

	subject := p.parseExpression(LOWEST)
	if subject == nil {
		return nil
	}

	p.skipLineBreaks()

	var cases []*ast.MatchCase
	matchEnd := matchTok.End

	for p.curTokenIs(token.PIPE) {
		caseStart := p.curToken.Start
		p.advance()

		pattern := p.parsePattern()
		if pattern == nil {
			p.errorExpected(token.IDENT)
			return nil
		}

		if _, ok := p.expect(token.DOUBLE_ARROW); !ok {
			return nil
		}

		p.skipLineBreaks()

		body := p.parseExpression(LOWEST)
		if body == nil {
			return nil
		}

		p.skipLineBreaks()
		matchEnd = body.Pos().End

		cases = append(cases, &ast.MatchCase{
			Position: token.Position{Start: caseStart, End: body.Pos().End},
			Pattern:  pattern,
			Body:     body,
		})
	}

	if len(cases) == 0 {
		p.error(diagnostics.ErrP013, token.Position{Start: matchTok.Start, End: matchEnd})
	}

	return &ast.MatchExpression{
		Position: token.Position{Start: matchTok.Start, End: matchEnd},
		Subject:  subject,
		Cases:    cases,
	}
}

func (p *Parser) parseTypeAssertion(left ast.Expression) ast.Expression {
	if _, ok := p.expect(token.DOUBLE_COLON); !ok {
		return nil
	}

	p.skipLineBreaks()

	assertedType := p.parseTypeExpression()
	if assertedType == nil {
		p.error(diagnostics.ErrP018, p.curPos())
		return nil
	}

	return &ast.TypeAssertion{
		Position:     token.Position{Start: left.Pos().Start, End: assertedType.Pos().End},
		Expr:         left,
		AssertedType: assertedType,
	}
}
