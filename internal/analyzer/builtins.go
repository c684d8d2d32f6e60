package analyzer

import (
	"github.com/quill-lang/quill/internal/symbols"
	"github.com/quill-lang/quill/internal/token"
	"github.com/quill-lang/quill/internal/typesystem"
)

// RegisterBuiltins registers the primitive types in a scope. Source
// modules may restate them with intrinsic_type declarations; the
// enclosing driver calls this so plain modules type-check without a
// prelude.
func RegisterBuiltins(scope *symbols.Scope) {
	for _, typ := range []typesystem.ValueType{
		typesystem.Int,
		typesystem.Float,
		typesystem.String,
	} {
		scope.AddTypeBinding(typ, symbols.IntrinsicType, token.Position{})
	}
}
