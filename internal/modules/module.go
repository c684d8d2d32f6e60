package modules

import (
	"github.com/google/uuid"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/symbols"
)

// Module is one compiled source file: its AST, its scope, its exported
// bindings and its diagnostics. ID is unique per compilation.
type Module struct {
	ID          uuid.UUID
	Name        string
	Path        string
	Ast         *ast.Module
	Imports     []*ast.UseStatement
	Scope       *symbols.Scope
	Exports     map[string]*symbols.Binding
	Diagnostics []*diagnostics.Diagnostic
}

// HasErrors reports whether compilation produced any error-severity
// diagnostics.
func (m *Module) HasErrors() bool {
	return diagnostics.HasErrors(m.Diagnostics)
}
