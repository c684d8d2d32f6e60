package ast

import "github.com/quill-lang/quill/internal/token"

// RegExpr is a node of the regular-expression sub-grammar.
type RegExpr interface {
	Node
	regExprNode()
}

// RegLiteral matches a literal string.
type RegLiteral struct {
	Position token.Position
	Value    string
}

func (r *RegLiteral) Pos() token.Position { return r.Position }
func (r *RegLiteral) regExprNode()        {}

// RegCharacterClass is a named character class, e.g. digit.
type RegCharacterClass struct {
	Position token.Position
	Name     string
}

func (r *RegCharacterClass) Pos() token.Position { return r.Position }
func (r *RegCharacterClass) regExprNode()        {}

// RegOneOrMore is `part+`.
type RegOneOrMore struct {
	Position token.Position
	Inner    RegExpr
}

func (r *RegOneOrMore) Pos() token.Position { return r.Position }
func (r *RegOneOrMore) regExprNode()        {}

// RegZeroOrMore is `part*`.
type RegZeroOrMore struct {
	Position token.Position
	Inner    RegExpr
}

func (r *RegZeroOrMore) Pos() token.Position { return r.Position }
func (r *RegZeroOrMore) regExprNode()        {}

// RegOneOrZero is `part?`.
type RegOneOrZero struct {
	Position token.Position
	Inner    RegExpr
}

func (r *RegOneOrZero) Pos() token.Position { return r.Position }
func (r *RegOneOrZero) regExprNode()        {}

// RegAtLeastCount is `part{m,}`.
type RegAtLeastCount struct {
	Position token.Position
	Inner    RegExpr
	Min      int
}

func (r *RegAtLeastCount) Pos() token.Position { return r.Position }
func (r *RegAtLeastCount) regExprNode()        {}

// RegAtMostCount is `part{,n}`.
type RegAtMostCount struct {
	Position token.Position
	Inner    RegExpr
	Max      int
}

func (r *RegAtMostCount) Pos() token.Position { return r.Position }
func (r *RegAtMostCount) regExprNode()        {}

// RegExactCount is `part{m}`.
type RegExactCount struct {
	Position token.Position
	Inner    RegExpr
	Count    int
}

func (r *RegExactCount) Pos() token.Position { return r.Position }
func (r *RegExactCount) regExprNode()        {}

// RegRangeCount is `part{m,n}`.
type RegRangeCount struct {
	Position token.Position
	Inner    RegExpr
	Min      int
	Max      int
}

func (r *RegRangeCount) Pos() token.Position { return r.Position }
func (r *RegRangeCount) regExprNode()        {}

// RegGrouping is `(body)`.
type RegGrouping struct {
	Position token.Position
	Inner    RegExpr
}

func (r *RegGrouping) Pos() token.Position { return r.Position }
func (r *RegGrouping) regExprNode()        {}

// RegSequence is two or more adjacent parts.
type RegSequence struct {
	Position token.Position
	Parts    []RegExpr
}

func (r *RegSequence) Pos() token.Position { return r.Position }
func (r *RegSequence) regExprNode()        {}

// RegAlternation is `a | b | c`.
type RegAlternation struct {
	Position token.Position
	Alternatives []RegExpr
}

func (r *RegAlternation) Pos() token.Position { return r.Position }
func (r *RegAlternation) regExprNode()        {}

// RegNamedCapture is `<name: body>`.
type RegNamedCapture struct {
	Position token.Position
	Name     string
	Inner    RegExpr
}

func (r *RegNamedCapture) Pos() token.Position { return r.Position }
func (r *RegNamedCapture) regExprNode()        {}
