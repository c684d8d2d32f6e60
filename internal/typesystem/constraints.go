package typesystem

import "strings"

// TypeConstraint is a trait bound attached to a generic parameter.
type TypeConstraint interface {
	String() string
	constraintKey() string
}

// NamedTrait is a constraint naming a trait, e.g. `where T :: Named`.
type NamedTrait struct {
	Name string
}

func (n NamedTrait) String() string        { return n.Name }
func (n NamedTrait) constraintKey() string { return "trait:" + n.Name }

// GenericTrait is a constraint naming a trait with type arguments,
// e.g. `where T :: Comparable<Int>`.
type GenericTrait struct {
	Name string
	Args []ValueType
}

func (g GenericTrait) String() string {
	return g.Name + "<" + joinTypes(g.Args, ", ") + ">"
}

func (g GenericTrait) constraintKey() string {
	return "gtrait:" + g.Name + "<" + joinKeys(g.Args) + ">"
}

// TraitMethod is one method requirement of an inline trait: the
// signature's (part name, part type) pairs plus the return type.
type TraitMethod struct {
	Parts  []LabeledEntry
	Return ValueType
}

// InlineTrait is a structural constraint spelled out in place, listing
// required fields and methods.
type InlineTrait struct {
	Fields  []LabeledEntry
	Methods []TraitMethod
}

func (t InlineTrait) String() string {
	var b strings.Builder
	b.WriteString("(")
	for _, f := range t.Fields {
		b.WriteString(". " + f.Label + " :: " + f.Type.String() + ", ")
	}
	for _, m := range t.Methods {
		b.WriteString(". ")
		for _, p := range m.Parts {
			b.WriteString(p.Label + " " + p.Type.String() + " ")
		}
		b.WriteString("-> " + m.Return.String() + ", ")
	}
	b.WriteString(")")
	return b.String()
}

func (t InlineTrait) constraintKey() string {
	var b strings.Builder
	b.WriteString("inline(")
	for _, f := range t.Fields {
		b.WriteString(f.Label + ":" + f.Type.Key() + ";")
	}
	for _, m := range t.Methods {
		for _, p := range m.Parts {
			b.WriteString(p.Label + ":" + p.Type.Key() + " ")
		}
		b.WriteString("->" + m.Return.Key() + ";")
	}
	b.WriteString(")")
	return b.String()
}
