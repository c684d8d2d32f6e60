package analyzer

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/symbols"
	"github.com/quill-lang/quill/internal/token"
	"github.com/quill-lang/quill/internal/typesystem"
)

// destructurePattern walks a pattern against a value type, binding
// names as it goes. In let/param contexts shadowing is forbidden and
// literal patterns are rejected; match contexts allow both.
func (a *Analyzer) destructurePattern(
	pattern ast.Pattern,
	valueType typesystem.ValueType,
	kind symbols.BindingKind,
	inMatch bool,
) {
	switch p := pattern.(type) {
	case *ast.IdentifierPattern:
		if !inMatch && a.scope.GetBinding(p.Name.Name) != nil {
			a.error(diagnostics.ErrA011, p.Name.Position, p.Name.Name)
			return
		}

		p.Name.Typ = valueType
		a.scope.AddBinding(kind, p.Name.Name, valueType, p.Name.Position)

	case *ast.UnlabeledTuplePattern:
		if typesystem.IsUnknown(valueType) {
			for _, entry := range p.Entries {
				a.destructurePattern(entry, typesystem.Unknown, kind, inMatch)
			}
			return
		}

		tupleType, ok := valueType.(typesystem.UnlabeledTuple)
		if !ok {
			a.error(diagnostics.ErrA016, p.Position, valueType)
			return
		}

		if len(p.Entries) != len(tupleType.Entries) {
			a.error(diagnostics.ErrA015, p.Position, len(p.Entries), len(tupleType.Entries))
			return
		}

		for i, entry := range p.Entries {
			a.destructurePattern(entry, tupleType.Entries[i], kind, inMatch)
		}

	case *ast.LabeledTuplePattern:
		if typesystem.IsUnknown(valueType) {
			for _, entry := range p.Entries {
				a.destructurePattern(entry.Pattern, typesystem.Unknown, kind, inMatch)
			}
			return
		}

		tupleType, ok := valueType.(typesystem.LabeledTuple)
		if !ok {
			a.error(diagnostics.ErrA016, p.Position, valueType)
			return
		}

		for _, entry := range p.Entries {
			fieldType, found := tupleType.Field(entry.Label.Name)
			if !found {
				a.error(diagnostics.ErrA018, entry.Label.Position, entry.Label.Name, valueType)
				continue
			}

			a.destructurePattern(entry.Pattern, fieldType, kind, inMatch)
		}

	case *ast.ConstructorPattern:
		binding := a.scope.GetBinding(p.Name.Name)
		if binding == nil {
			a.error(diagnostics.ErrA005, p.Position, p.Name.Name)
			return
		}

		// Constructor patterns are only meaningful for struct types.
		if binding.Kind != symbols.StructConstructorBinding {
			return
		}

		funcType, ok := binding.Type.(typesystem.Func)
		if !ok || len(funcType.Params) == 0 {
			return
		}

		if !typesystem.IsUnknown(valueType) && !typesystem.Equal(funcType.Return, valueType) {
			a.error(diagnostics.ErrA017, p.Position, funcType.Return, valueType)
			return
		}

		a.destructurePattern(p.Param, funcType.Params[0], kind, inMatch)

	case *ast.UnderscorePattern:
		// Matches anything, binds nothing.

	case *ast.LiteralPattern:
		if !inMatch {
			a.error(diagnostics.ErrA025, p.Position)
		}

	case *ast.InterpolationPattern:
		if !inMatch {
			a.error(diagnostics.ErrA025, p.Position)
			return
		}

		// Identifier parts of a match interpolation bind the matched
		// substrings as Strings.
		for _, part := range p.Parts {
			if ident, ok := part.(*ast.Identifier); ok {
				a.bindInterpolationName(ident, kind)
			}
		}
	}
}

func (a *Analyzer) bindInterpolationName(ident *ast.Identifier, kind symbols.BindingKind) {
	ident.Typ = typesystem.String
	a.scope.AddBinding(kind, ident.Name, typesystem.String, ident.Position)
}

// typesCompatible reports whether an actual type satisfies an expected
// type: structural equality, except that a Constrained expectation is
// satisfied by any type providing the constraint's required fields.
// Generic and inline trait constraints are reported as unsupported.
func (a *Analyzer) typesCompatible(expected, actual typesystem.ValueType, pos token.Position) bool {
	if typesystem.Equal(expected, actual) {
		return true
	}

	if typesystem.IsUnknown(expected) || typesystem.IsUnknown(actual) {
		// Unknown types come from earlier errors; don't cascade.
		return true
	}

	constrained, ok := expected.(typesystem.Constrained)
	if !ok {
		return false
	}

	named, ok := constrained.Constraint.(typesystem.NamedTrait)
	if !ok {
		a.error(diagnostics.ErrA027, pos, constrained.Constraint)
		return true
	}

	traitBinding := a.scope.GetTypeBinding(typesystem.Named{Name: named.Name})
	if traitBinding == nil {
		return false
	}

	actualBinding := a.scope.GetTypeBinding(actual)
	if actualBinding == nil {
		return false
	}

	for fieldName, required := range traitBinding.Fields {
		actualField, found := actualBinding.Field(fieldName)
		if !found {
			return false
		}

		if !a.typesCompatible(required.Type, actualField.Type, pos) {
			return false
		}
	}

	return true
}
