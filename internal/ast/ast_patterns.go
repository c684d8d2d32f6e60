package ast

import "github.com/quill-lang/quill/internal/token"

// Pattern is a destructuring pattern (let bindings, block params,
// match cases).
type Pattern interface {
	Node
	patternNode()
}

// IdentifierPattern binds a single name, optionally mutable.
type IdentifierPattern struct {
	Position token.Position
	Name     *Identifier
	Mutable  bool
}

func (p *IdentifierPattern) Pos() token.Position { return p.Position }
func (p *IdentifierPattern) patternNode()        {}

// ConstructorPattern destructures a struct value by naming its
// constructor: let Person (n, a) = ...
type ConstructorPattern struct {
	Position token.Position
	Name     *Identifier
	Param    Pattern
}

func (p *ConstructorPattern) Pos() token.Position { return p.Position }
func (p *ConstructorPattern) patternNode()        {}

// UnlabeledTuplePattern destructures a positional tuple.
type UnlabeledTuplePattern struct {
	Position token.Position
	Entries  []Pattern
}

func (p *UnlabeledTuplePattern) Pos() token.Position { return p.Position }
func (p *UnlabeledTuplePattern) patternNode()        {}

// LabeledPatternEntry is one `label: pattern` entry.
type LabeledPatternEntry struct {
	Label   *Identifier
	Pattern Pattern
}

// LabeledTuplePattern destructures a labeled tuple by field name.
type LabeledTuplePattern struct {
	Position token.Position
	Entries  []LabeledPatternEntry
}

func (p *LabeledTuplePattern) Pos() token.Position { return p.Position }
func (p *LabeledTuplePattern) patternNode()        {}

// UnderscorePattern matches anything and binds nothing.
type UnderscorePattern struct {
	Position token.Position
}

func (p *UnderscorePattern) Pos() token.Position { return p.Position }
func (p *UnderscorePattern) patternNode()        {}

// LiteralPattern matches a literal value. Valid in match cases only.
type LiteralPattern struct {
	Position token.Position
	Literal  *Literal
}

func (p *LiteralPattern) Pos() token.Position { return p.Position }
func (p *LiteralPattern) patternNode()        {}

// InterpolationPattern matches a string with embedded binding
// expressions. Valid in match cases only.
type InterpolationPattern struct {
	Position token.Position
	Parts    []Expression
}

func (p *InterpolationPattern) Pos() token.Position { return p.Position }
func (p *InterpolationPattern) patternNode()        {}
