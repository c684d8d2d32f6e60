package ast

import (
	"github.com/quill-lang/quill/internal/token"
	"github.com/quill-lang/quill/internal/typesystem"
)

// AssignmentExpression reassigns an existing binding: x = value
type AssignmentExpression struct {
	Position token.Position
	Left     *Identifier
	Right    Expression
	Typ      typesystem.ValueType
}

func (a *AssignmentExpression) Pos() token.Position        { return a.Position }
func (a *AssignmentExpression) expressionNode()            {}
func (a *AssignmentExpression) Type() typesystem.ValueType { return typ(a.Typ) }

// BinaryOperation applies a user-defined or built-in binary operator.
type BinaryOperation struct {
	Position token.Position
	Left     Expression
	Op       *Operator
	Right    Expression
	Typ      typesystem.ValueType
}

func (b *BinaryOperation) Pos() token.Position        { return b.Position }
func (b *BinaryOperation) expressionNode()            {}
func (b *BinaryOperation) Type() typesystem.ValueType { return typ(b.Typ) }

// UnaryOperation applies a prefix operator.
type UnaryOperation struct {
	Position token.Position
	Op       *Operator
	Right    Expression
	Typ      typesystem.ValueType
}

func (u *UnaryOperation) Pos() token.Position        { return u.Position }
func (u *UnaryOperation) expressionNode()            {}
func (u *UnaryOperation) Type() typesystem.ValueType { return typ(u.Typ) }

// CallExpression applies a callee to arguments. For a multi-part call
// the callee is a MultiPartIdentifier and len(Args) equals the number
// of name parts.
type CallExpression struct {
	Position token.Position
	Callee   Expression
	Args     []Expression
	Typ      typesystem.ValueType
}

func (c *CallExpression) Pos() token.Position        { return c.Position }
func (c *CallExpression) expressionNode()            {}
func (c *CallExpression) Type() typesystem.ValueType { return typ(c.Typ) }

// EmptyTuple is the expression `()`.
type EmptyTuple struct {
	Position token.Position
	Typ      typesystem.ValueType
}

func (e *EmptyTuple) Pos() token.Position        { return e.Position }
func (e *EmptyTuple) expressionNode()            {}
func (e *EmptyTuple) Type() typesystem.ValueType { return typ(e.Typ) }

// FieldAccess reads a struct field (or tuple index) from a receiver.
type FieldAccess struct {
	Position token.Position
	Receiver Expression
	Field    *Identifier
	Typ      typesystem.ValueType
}

func (f *FieldAccess) Pos() token.Position        { return f.Position }
func (f *FieldAccess) expressionNode()            {}
func (f *FieldAccess) Type() typesystem.ValueType { return typ(f.Typ) }

// MethodAccess calls a (possibly multi-part) method on a receiver:
// subject.replace "x" with "y"
type MethodAccess struct {
	Position    token.Position
	Receiver    Expression
	MethodParts []*Identifier
	Typ         typesystem.ValueType
}

func (m *MethodAccess) Pos() token.Position        { return m.Position }
func (m *MethodAccess) expressionNode()            {}
func (m *MethodAccess) Type() typesystem.ValueType { return typ(m.Typ) }

// Grouping is a parenthesized single expression.
type Grouping struct {
	Position token.Position
	Inner    Expression
	Typ      typesystem.ValueType
}

func (g *Grouping) Pos() token.Position        { return g.Position }
func (g *Grouping) expressionNode()            {}
func (g *Grouping) Type() typesystem.ValueType { return typ(g.Typ) }

// MultiPartIdentifier is the callee of a multi-part call; the merged
// name is the parts joined by single spaces.
type MultiPartIdentifier struct {
	Position token.Position
	Parts    []*Identifier
	Typ      typesystem.ValueType
}

func (m *MultiPartIdentifier) Pos() token.Position        { return m.Position }
func (m *MultiPartIdentifier) expressionNode()            {}
func (m *MultiPartIdentifier) Type() typesystem.ValueType { return typ(m.Typ) }

// NameParts returns the raw part names.
func (m *MultiPartIdentifier) NameParts() []string {
	parts := make([]string, len(m.Parts))
	for i, p := range m.Parts {
		parts[i] = p.Name
	}
	return parts
}

// QualifiedIdentifier is a module-qualified name: alias.value
type QualifiedIdentifier struct {
	Position  token.Position
	Qualifier *Identifier
	Ident     *Identifier
	Typ       typesystem.ValueType
}

func (q *QualifiedIdentifier) Pos() token.Position        { return q.Position }
func (q *QualifiedIdentifier) expressionNode()            {}
func (q *QualifiedIdentifier) Type() typesystem.ValueType { return typ(q.Typ) }

// QualifiedMultiPartIdentifier is a module-qualified multi-part callee.
type QualifiedMultiPartIdentifier struct {
	Position  token.Position
	Qualifier *Identifier
	Parts     []*Identifier
	Typ       typesystem.ValueType
}

func (q *QualifiedMultiPartIdentifier) Pos() token.Position        { return q.Position }
func (q *QualifiedMultiPartIdentifier) expressionNode()            {}
func (q *QualifiedMultiPartIdentifier) Type() typesystem.ValueType { return typ(q.Typ) }

// Interpolation is a string with embedded expressions. Parts alternate
// between string literals and interpolated expressions.
type Interpolation struct {
	Position token.Position
	Parts    []Expression
	Typ      typesystem.ValueType
}

func (i *Interpolation) Pos() token.Position        { return i.Position }
func (i *Interpolation) expressionNode()            {}
func (i *Interpolation) Type() typesystem.ValueType { return typ(i.Typ) }

// ListLiteral is [a, b, c].
type ListLiteral struct {
	Position token.Position
	Elements []Expression
	Typ      typesystem.ValueType
}

func (l *ListLiteral) Pos() token.Position        { return l.Position }
func (l *ListLiteral) expressionNode()            {}
func (l *ListLiteral) Type() typesystem.ValueType { return typ(l.Typ) }

// DictEntry is one key/value pair of a dict literal.
type DictEntry struct {
	Key   Expression
	Value Expression
}

// DictLiteral is [k: v, ...] (or [:] for the empty dict).
type DictLiteral struct {
	Position token.Position
	Entries  []DictEntry
	Typ      typesystem.ValueType
}

func (d *DictLiteral) Pos() token.Position        { return d.Position }
func (d *DictLiteral) expressionNode()            {}
func (d *DictLiteral) Type() typesystem.ValueType { return typ(d.Typ) }

// LiteralKind discriminates literal forms.
type LiteralKind int

const (
	IntDecimal LiteralKind = iota
	IntBinary
	IntHex
	IntOctal
	FloatDecimal
	Str
)

// Literal is a numeric or string literal.
type Literal struct {
	Position   token.Position
	Kind       LiteralKind
	IntValue   int64
	FloatValue float64
	StrValue   string
	Typ        typesystem.ValueType
}

func (l *Literal) Pos() token.Position        { return l.Position }
func (l *Literal) expressionNode()            {}
func (l *Literal) Type() typesystem.ValueType { return typ(l.Typ) }

// MatchCase is one `| pattern => body` arm.
type MatchCase struct {
	Position token.Position
	Pattern  Pattern
	Body     Expression
}

func (m *MatchCase) Pos() token.Position { return m.Position }

// MatchExpression matches a subject against ordered cases. All case
// bodies must share one type, which becomes the match's type.
type MatchExpression struct {
	Position token.Position
	Subject  Expression
	Cases    []*MatchCase
	Typ      typesystem.ValueType
}

func (m *MatchExpression) Pos() token.Position        { return m.Position }
func (m *MatchExpression) expressionNode()            {}
func (m *MatchExpression) Type() typesystem.ValueType { return typ(m.Typ) }

// TypeAssertion asserts an expression's type: expr :: Type
type TypeAssertion struct {
	Position     token.Position
	Expr         Expression
	AssertedType TypeExpr
	Typ          typesystem.ValueType
}

func (t *TypeAssertion) Pos() token.Position        { return t.Position }
func (t *TypeAssertion) expressionNode()            {}
func (t *TypeAssertion) Type() typesystem.ValueType { return typ(t.Typ) }

// UnlabeledTupleExpression is (a, b, ...) with two or more entries.
type UnlabeledTupleExpression struct {
	Position token.Position
	Entries  []Expression
	Typ      typesystem.ValueType
}

func (u *UnlabeledTupleExpression) Pos() token.Position        { return u.Position }
func (u *UnlabeledTupleExpression) expressionNode()            {}
func (u *UnlabeledTupleExpression) Type() typesystem.ValueType { return typ(u.Typ) }

// LabeledExprEntry is one `label: value` entry of a labeled tuple.
type LabeledExprEntry struct {
	Label *Identifier
	Value Expression
}

// LabeledTupleExpression is (name: expr, ...).
type LabeledTupleExpression struct {
	Position token.Position
	Entries  []LabeledExprEntry
	Typ      typesystem.ValueType
}

func (l *LabeledTupleExpression) Pos() token.Position        { return l.Position }
func (l *LabeledTupleExpression) expressionNode()            {}
func (l *LabeledTupleExpression) Type() typesystem.ValueType { return typ(l.Typ) }

// RegExpression is a /.../-fenced regular expression.
type RegExpression struct {
	Position token.Position
	Regex    RegExpr
	Typ      typesystem.ValueType
}

func (r *RegExpression) Pos() token.Position        { return r.Position }
func (r *RegExpression) expressionNode()            {}
func (r *RegExpression) Type() typesystem.ValueType { return typ(r.Typ) }

// UnderscoreExpression is the placeholder expression `_`.
type UnderscoreExpression struct {
	Position token.Position
	Typ      typesystem.ValueType
}

func (u *UnderscoreExpression) Pos() token.Position        { return u.Position }
func (u *UnderscoreExpression) expressionNode()            {}
func (u *UnderscoreExpression) Type() typesystem.ValueType { return typ(u.Typ) }
