package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/token"
)

// CommentData is the opt-in comment artifact: the tokenizer's comment
// map plus the positions of line-break tokens, consumed by the doc
// generator and formatter.
type CommentData struct {
	Comments   lexer.CommentMap
	LineBreaks []token.Position
}

// Parser is a hand-written recursive-descent parser. It never panics on
// malformed input: every recognizer either returns a node or records a
// diagnostic and returns nil.
type Parser struct {
	source          []byte
	lexer           *lexer.Lexer
	curToken        token.Token
	prevToken       token.Token
	errors          []*diagnostics.Diagnostic
	visibility      ast.Visibility
	collectComments bool
	lineBreaks      []token.Position
	qualifiers      map[string]bool
}

func New(source []byte, lx *lexer.Lexer) *Parser {
	return &Parser{
		source:     source,
		lexer:      lx,
		visibility: ast.Public,
		qualifiers: make(map[string]bool),
	}
}

// CollectComments enables comment/line-break collection. Off by
// default; only the doc generator and formatter need it.
func (p *Parser) CollectComments() {
	p.collectComments = true
}

// ParseModule parses the whole source: a run of use statements followed
// by top-level statements until EOF. It always returns a best-effort
// module, even in the presence of errors.
func (p *Parser) ParseModule() (*ast.Module, []*ast.UseStatement, *CommentData, []*diagnostics.Diagnostic) {
	var imports []*ast.UseStatement
	var body []ast.TopLevelStatement

	// Read the first token.
	p.advance()

	for {
		p.skipLineBreaks()

		if !p.curTokenIs(token.KW_USE) {
			break
		}

		useNode := p.parseUseStatement()
		if useNode == nil {
			break
		}
		imports = append(imports, useNode)
	}

	for {
		p.skipLineBreaks()

		if p.curTokenIs(token.EOF) {
			break
		}

		stmt := p.parseTopLevelStatement()
		if stmt == nil {
			if !p.recoverToStatementBoundary() {
				break
			}
			continue
		}
		body = append(body, stmt)
	}

	start, end := 0, 0
	if len(body) > 0 {
		start = body[0].Pos().Start
		end = body[len(body)-1].Pos().End
	}

	module := &ast.Module{
		Position: token.Position{Start: start, End: end},
		Body:     body,
	}

	var commentData *CommentData
	if p.collectComments {
		commentData = &CommentData{
			Comments:   p.lexer.Comments(),
			LineBreaks: p.lineBreaks,
		}
	}

	errors := append(p.lexer.Errors(), p.errors...)

	return module, imports, commentData, errors
}

func (p *Parser) advance() {
	p.prevToken = p.curToken
	p.curToken = p.lexer.Next()
}

func (p *Parser) curTokenIs(typ token.Type) bool {
	return p.curToken.Type == typ
}

func (p *Parser) peekTokenIs(typ token.Type) bool {
	return p.lexer.Peek().Type == typ
}

func (p *Parser) curPos() token.Position {
	if p.curToken.Type == token.EOF && p.prevToken.Type != token.ILLEGAL {
		return p.prevToken.Pos()
	}
	return p.curToken.Pos()
}

func (p *Parser) skipLineBreaks() {
	for p.curTokenIs(token.LINE_BREAK) {
		if p.collectComments {
			p.lineBreaks = append(p.lineBreaks, p.curToken.Pos())
		}
		p.advance()
	}
}

// error records a diagnostic.
func (p *Parser) error(code diagnostics.Code, pos token.Position, args ...interface{}) {
	p.errors = append(p.errors, diagnostics.NewError(code, pos, args...))
}

// errorExpected records an unexpected-token (or unexpected-EOF) error
// for the given expected token type.
func (p *Parser) errorExpected(expected token.Type) {
	if p.curTokenIs(token.EOF) {
		p.error(diagnostics.ErrP002, token.Position{Start: len(p.source), End: len(p.source)}, expected)
		return
	}
	p.error(diagnostics.ErrP001, p.curToken.Pos(), expected)
}

// expect asserts the current token's type and consumes it.
func (p *Parser) expect(typ token.Type) (token.Token, bool) {
	if p.curTokenIs(typ) {
		tok := p.curToken
		p.advance()
		return tok, true
	}
	p.errorExpected(typ)
	return p.curToken, false
}

// check asserts the current token's type without consuming it.
func (p *Parser) check(typ token.Type) bool {
	if p.curTokenIs(typ) {
		return true
	}
	p.errorExpected(typ)
	return false
}

// text returns the source bytes for a position as a string.
func (p *Parser) text(pos token.Position) string {
	return string(p.source[pos.Start:pos.End])
}

// recoverToStatementBoundary skips tokens up to the next line break so
// parsing can continue with the following statement. Returns false at
// EOF.
func (p *Parser) recoverToStatementBoundary() bool {
	for !p.curTokenIs(token.LINE_BREAK) && !p.curTokenIs(token.EOF) {
		p.advance()
	}
	return !p.curTokenIs(token.EOF)
}
