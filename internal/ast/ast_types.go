package ast

import (
	"github.com/quill-lang/quill/internal/token"
	"github.com/quill-lang/quill/internal/typesystem"
)

// TypeExpr is a syntactic type expression. It carries a resolved
// ValueType slot written during analysis.
type TypeExpr interface {
	Node
	typeExprNode()
	Type() typesystem.ValueType
}

// TypeIdentifier is a type name with optional generic arguments, e.g.
// Person or List<String>. Constraints are attached during hoisting when
// the name matches a where-clause entry.
type TypeIdentifier struct {
	Position    token.Position
	Name        string
	Generics    []TypeExpr
	Constraints []typesystem.TypeConstraint
}

func (t *TypeIdentifier) Pos() token.Position { return t.Position }

// TypeEmptyTuple is the type `()`.
type TypeEmptyTuple struct {
	Position token.Position
	Typ      typesystem.ValueType
}

func (t *TypeEmptyTuple) Pos() token.Position        { return t.Position }
func (t *TypeEmptyTuple) typeExprNode()              {}
func (t *TypeEmptyTuple) Type() typesystem.ValueType { return typ(t.Typ) }

// TypeGrouping is a parenthesized type.
type TypeGrouping struct {
	Position token.Position
	Inner    TypeExpr
	Typ      typesystem.ValueType
}

func (t *TypeGrouping) Pos() token.Position        { return t.Position }
func (t *TypeGrouping) typeExprNode()              {}
func (t *TypeGrouping) Type() typesystem.ValueType { return typ(t.Typ) }

// TypeSingle is a bare type identifier.
type TypeSingle struct {
	Position token.Position
	Ident    *TypeIdentifier
	Typ      typesystem.ValueType
}

func (t *TypeSingle) Pos() token.Position        { return t.Position }
func (t *TypeSingle) typeExprNode()              {}
func (t *TypeSingle) Type() typesystem.ValueType { return typ(t.Typ) }

// TypeUnlabeledTuple is (A, B, ...).
type TypeUnlabeledTuple struct {
	Position token.Position
	Entries  []TypeExpr
	Typ      typesystem.ValueType
}

func (t *TypeUnlabeledTuple) Pos() token.Position        { return t.Position }
func (t *TypeUnlabeledTuple) typeExprNode()              {}
func (t *TypeUnlabeledTuple) Type() typesystem.ValueType { return typ(t.Typ) }

// LabeledTypeEntry is one `label: Type` entry.
type LabeledTypeEntry struct {
	Label *Identifier
	Entry TypeExpr
}

// TypeLabeledTuple is (name: A, age: B).
type TypeLabeledTuple struct {
	Position token.Position
	Entries  []LabeledTypeEntry
	Typ      typesystem.ValueType
}

func (t *TypeLabeledTuple) Pos() token.Position        { return t.Position }
func (t *TypeLabeledTuple) typeExprNode()              {}
func (t *TypeLabeledTuple) Type() typesystem.ValueType { return typ(t.Typ) }

// TypeFunc is a block type { Param -> Return }.
type TypeFunc struct {
	Position token.Position
	Param    TypeExpr
	Return   TypeExpr
	Typ      typesystem.ValueType
}

func (t *TypeFunc) Pos() token.Position        { return t.Position }
func (t *TypeFunc) typeExprNode()              {}
func (t *TypeFunc) Type() typesystem.ValueType { return typ(t.Typ) }

// TypeDefKind discriminates type definition forms.
type TypeDefKind interface {
	typeDefKindNode()
}

// AliasDef is `alias Name OtherType`.
type AliasDef struct {
	Of TypeExpr
}

// EnumVariant is one enum variant: either a bare identifier or a
// constructor with a payload type.
type EnumVariant struct {
	Position token.Position
	Name     *Identifier
	Payload  TypeExpr // nil for nullary variants
}

func (v *EnumVariant) Pos() token.Position { return v.Position }

// EnumDef is `enum Name | A | B Payload`.
type EnumDef struct {
	Variants []*EnumVariant
}

// StructDef is `struct Name (field: Type, ...)`. Inner holds the
// declared type expression; for the usual labeled-tuple form the fields
// are recovered from it during hoisting.
type StructDef struct {
	Inner TypeExpr
}

// TraitMethodSig is one method requirement of a trait.
type TraitMethodSig struct {
	Signature Signature
	Return    TypeExpr
}

// TraitDef is `trait Name . field :: Type . method Param -> Ret`.
type TraitDef struct {
	Fields  []LabeledTypeEntry
	Methods []TraitMethodSig
}

func (*AliasDef) typeDefKindNode()  {}
func (*EnumDef) typeDefKindNode()   {}
func (*StructDef) typeDefKindNode() {}
func (*TraitDef) typeDefKindNode()  {}

// TypeDef is an alias, enum, struct or trait definition.
type TypeDef struct {
	Position    token.Position
	Visibility  Visibility
	Name        *TypeIdentifier
	Kind        TypeDefKind
	Constraints []GenericConstraint
}

func (t *TypeDef) Pos() token.Position     { return t.Position }
func (t *TypeDef) topLevelStatementNode() {}

// IntrinsicTypeDef declares a primitive type supplied by the runtime.
// Only Int, Float and String are recognized.
type IntrinsicTypeDef struct {
	Position   token.Position
	Visibility Visibility
	Name       *Identifier
}

func (t *IntrinsicTypeDef) Pos() token.Position     { return t.Position }
func (t *IntrinsicTypeDef) topLevelStatementNode() {}
