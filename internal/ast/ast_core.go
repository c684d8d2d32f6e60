package ast

import (
	"strings"

	"github.com/quill-lang/quill/internal/token"
	"github.com/quill-lang/quill/internal/typesystem"
)

// Node is the base interface for all AST nodes. Every node carries a
// byte-range position into the original source.
type Node interface {
	Pos() token.Position
}

// TopLevelStatement is a statement allowed at module level.
type TopLevelStatement interface {
	Node
	topLevelStatementNode()
}

// Statement is a statement allowed inside a block.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node with a mutable inferred-type slot, written once
// by the analyzer.
type Expression interface {
	Node
	expressionNode()
	Type() typesystem.ValueType
}

// Visibility is the export visibility of a top-level declaration.
// It is metadata only; analysis does not depend on it.
type Visibility int

const (
	Public Visibility = iota
	Internal
	Private
)

func (v Visibility) String() string {
	switch v {
	case Internal:
		return "internal"
	case Private:
		return "private"
	}
	return "public"
}

// Module is the root node: a sequence of top-level statements.
type Module struct {
	Position token.Position
	Body     []TopLevelStatement
}

func (m *Module) Pos() token.Position { return m.Position }

// UseStatement represents `use path/to/module [as alias]`. Use
// statements are collected separately from the module body.
type UseStatement struct {
	Position   token.Position
	ModuleName string
	Qualifier  *Identifier // nil when no 'as' clause
}

func (u *UseStatement) Pos() token.Position { return u.Position }

// Identifier is a plain name. It doubles as an expression and as the
// name component of defs, labels and patterns.
type Identifier struct {
	Position token.Position
	Name     string
	Typ      typesystem.ValueType
}

func (i *Identifier) Pos() token.Position          { return i.Position }
func (i *Identifier) expressionNode()              {}
func (i *Identifier) Type() typesystem.ValueType   { return typ(i.Typ) }

// Operator is a user-defined or built-in operator occurrence.
type Operator struct {
	Position token.Position
	Name     string
}

func (o *Operator) Pos() token.Position { return o.Position }

// Block is a brace-delimited sequence of statements with optional
// parameter patterns (`{ |x, y| ... }`). Blocks are values; the block's
// value type is the type of its last expression statement, or Nothing.
type Block struct {
	Position token.Position
	Params   []Pattern
	Body     []Statement
	Typ      typesystem.ValueType
}

func (b *Block) Pos() token.Position          { return b.Position }
func (b *Block) expressionNode()              {}
func (b *Block) Type() typesystem.ValueType   { return typ(b.Typ) }

// SignaturePart is one (name, parameter type) pair of a def signature.
// The full method name is the part names joined by single spaces.
type SignaturePart struct {
	Name     *Identifier
	TypeExpr TypeExpr
}

// Signature is the ordered list of signature parts.
type Signature []SignaturePart

// NameParts returns the part names of the signature.
func (s Signature) NameParts() []string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = p.Name.Name
	}
	return parts
}

// MergedName returns the canonical space-joined method name.
func (s Signature) MergedName() string {
	return strings.Join(s.NameParts(), " ")
}

// GenericConstraint is one `name :: Trait` entry of a where clause.
type GenericConstraint struct {
	Name       *Identifier
	Constraint *TypeIdentifier
}

// DefKind discriminates the four definition forms.
type DefKind interface {
	defKindNode()
}

// FunctionKind is a plain (possibly multi-part) function definition:
// def keep String if { String -> Bool } -> String { ... }
type FunctionKind struct {
	Signature Signature
}

// MethodKind is a receiver method definition:
// def Person.greet String -> String { ... }
type MethodKind struct {
	Receiver  *TypeIdentifier
	Signature Signature
}

// BinaryOperatorKind is an operator definition on a left operand type:
// def Int + Int -> Int { ... }
type BinaryOperatorKind struct {
	Left  *TypeIdentifier
	Op    *Operator
	Right *TypeIdentifier
}

// UnaryOperatorKind is a prefix operator definition:
// def ~Int -> Int { ... }
type UnaryOperatorKind struct {
	Op    *Operator
	Right *TypeIdentifier
}

func (*FunctionKind) defKindNode()       {}
func (*MethodKind) defKindNode()         {}
func (*BinaryOperatorKind) defKindNode() {}
func (*UnaryOperatorKind) defKindNode()  {}

// Def is a function, method, or operator definition with a body block.
type Def struct {
	Position    token.Position
	Visibility  Visibility
	Kind        DefKind
	ReturnType  TypeExpr // nil means Nothing
	Constraints []GenericConstraint
	Block       *Block
}

func (d *Def) Pos() token.Position     { return d.Position }
func (d *Def) topLevelStatementNode() {}

// IntrinsicDef is a definition whose body is supplied by the runtime.
type IntrinsicDef struct {
	Position    token.Position
	Visibility  Visibility
	Kind        DefKind
	ReturnType  TypeExpr
	Constraints []GenericConstraint
}

func (d *IntrinsicDef) Pos() token.Position     { return d.Position }
func (d *IntrinsicDef) topLevelStatementNode() {}

// LetStatement binds a pattern to a value.
type LetStatement struct {
	Position token.Position
	Pattern  Pattern
	Value    Expression
}

func (l *LetStatement) Pos() token.Position     { return l.Position }
func (l *LetStatement) statementNode()          {}
func (l *LetStatement) topLevelStatementNode() {}

// ConstStatement binds a name to a literal value at module level.
type ConstStatement struct {
	Position token.Position
	Name     *Identifier
	Value    Expression
}

func (c *ConstStatement) Pos() token.Position     { return c.Position }
func (c *ConstStatement) topLevelStatementNode() {}

// ExpressionStatement wraps an expression used in statement position.
type ExpressionStatement struct {
	Position   token.Position
	Expression Expression
}

func (e *ExpressionStatement) Pos() token.Position     { return e.Position }
func (e *ExpressionStatement) statementNode()          {}
func (e *ExpressionStatement) topLevelStatementNode() {}

// ReturnStatement returns early from a def body.
type ReturnStatement struct {
	Position token.Position
	Value    Expression // nil for bare 'return'
}

func (r *ReturnStatement) Pos() token.Position { return r.Position }
func (r *ReturnStatement) statementNode()      {}

// VisibilityMarker is a bare 'private' or 'internal' statement; it
// changes the visibility of subsequent declarations.
type VisibilityMarker struct {
	Position   token.Position
	Visibility Visibility
}

func (v *VisibilityMarker) Pos() token.Position     { return v.Position }
func (v *VisibilityMarker) topLevelStatementNode() {}

func typ(t typesystem.ValueType) typesystem.ValueType {
	if t == nil {
		return typesystem.Unknown
	}
	return t
}
