package typesystem

import "strings"

// ValueType is the semantic type language. Equality is structural;
// Key returns a canonical encoding used both for equality checks and as
// a map key in the symbol table (display strings are ambiguous there:
// the intrinsic Int and a user type named "Int" must not collide).
type ValueType interface {
	String() string
	Key() string
}

// Primitive covers the built-in types plus the two sentinel types
// Nothing (the empty tuple type) and Unknown (not yet inferred).
type Primitive struct {
	name string
}

var (
	Int     = Primitive{"Int"}
	Float   = Primitive{"Float"}
	String  = Primitive{"String"}
	Nothing = Primitive{"Nothing"}
	Unknown = Primitive{"Unknown"}
)

func (p Primitive) String() string {
	switch p.name {
	case "Nothing":
		return "()"
	case "Unknown":
		return "unknown"
	}
	return p.name
}

func (p Primitive) Key() string { return "prim:" + p.name }

// Named is a user-defined nominal type (enum, struct, alias, trait).
type Named struct {
	Name string
}

func (n Named) String() string { return n.Name }
func (n Named) Key() string    { return "named:" + n.Name }

// Generic is a named type applied to type arguments, e.g. List<String>.
type Generic struct {
	Name string
	Args []ValueType
}

func (g Generic) String() string {
	return g.Name + "<" + joinTypes(g.Args, ", ") + ">"
}

func (g Generic) Key() string {
	return "generic:" + g.Name + "<" + joinKeys(g.Args) + ">"
}

// Func is the type of defs, methods and blocks.
type Func struct {
	Params []ValueType
	Return ValueType
}

func (f Func) String() string {
	return "{ " + joinTypes(f.Params, ", ") + " -> " + f.Return.String() + " }"
}

func (f Func) Key() string {
	return "func(" + joinKeys(f.Params) + ")->" + f.Return.Key()
}

// UnlabeledTuple is a positional tuple type, e.g. (Int, String).
type UnlabeledTuple struct {
	Entries []ValueType
}

func (t UnlabeledTuple) String() string {
	return "(" + joinTypes(t.Entries, ", ") + ")"
}

func (t UnlabeledTuple) Key() string {
	return "tuple(" + joinKeys(t.Entries) + ")"
}

// LabeledEntry is one field of a labeled tuple (or trait/struct field).
type LabeledEntry struct {
	Label string
	Type  ValueType
}

// LabeledTuple is a tuple type whose entries carry field names,
// e.g. (name: String, age: Int). It is distinct from UnlabeledTuple.
type LabeledTuple struct {
	Entries []LabeledEntry
}

func (t LabeledTuple) String() string {
	parts := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		parts[i] = e.Label + ": " + e.Type.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t LabeledTuple) Key() string {
	parts := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		parts[i] = e.Label + ":" + e.Type.Key()
	}
	return "labeled(" + strings.Join(parts, ",") + ")"
}

// Field returns the type of the entry with the given label.
func (t LabeledTuple) Field(label string) (ValueType, bool) {
	for _, e := range t.Entries {
		if e.Label == label {
			return e.Type, true
		}
	}
	return nil, false
}

// Constrained wraps a trait constraint used as a parameter type,
// e.g. a generic parameter declared `where T :: Named`.
type Constrained struct {
	Constraint TypeConstraint
}

func (c Constrained) String() string { return c.Constraint.String() }
func (c Constrained) Key() string    { return "constrained:" + c.Constraint.constraintKey() }

// Equal reports structural equality of two types.
func Equal(a, b ValueType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Key() == b.Key()
}

// IsUnknown reports whether t is nil or the Unknown sentinel.
func IsUnknown(t ValueType) bool {
	return t == nil || t.Key() == Unknown.Key()
}

func joinTypes(types []ValueType, sep string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}

func joinKeys(types []ValueType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.Key()
	}
	return strings.Join(parts, ",")
}
