package symbols

import (
	"github.com/quill-lang/quill/internal/token"
	"github.com/quill-lang/quill/internal/typesystem"
)

type BindingKind int

const (
	ConstBinding BindingKind = iota
	LetBinding
	DefBinding
	ParamBinding
	EnumVariantBinding
	StructConstructorBinding
	FieldBinding
)

// Binding is a value binding in a scope frame. RefCount is incremented
// on every resolved reference; a Let or Param binding with a zero count on frame
// exit produces an unused-variable warning.
type Binding struct {
	Kind     BindingKind
	Pos      token.Position
	Type     typesystem.ValueType
	RefCount int
}

type TypeBindingKind int

const (
	EnumType TypeBindingKind = iota
	StructType
	AliasType
	TraitType
	IntrinsicType
)

// TypeBinding is a type registered in the flat type table. Methods maps
// space-joined method name parts to their Func types. Fields is set for
// struct and trait bindings.
type TypeBinding struct {
	Kind     TypeBindingKind
	Pos      token.Position
	Type     typesystem.ValueType
	RefCount int
	Fields   map[string]*Binding
	Methods  map[string]typesystem.ValueType
}

// Field looks up a struct/trait field binding by name.
func (tb *TypeBinding) Field(name string) (*Binding, bool) {
	b, ok := tb.Fields[name]
	return b, ok
}
