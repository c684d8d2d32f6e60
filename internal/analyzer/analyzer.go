package analyzer

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/symbols"
	"github.com/quill-lang/quill/internal/token"
	"github.com/quill-lang/quill/internal/typesystem"
)

// Analyzer is the checking pass. It resolves names, destructures
// patterns, and verifies call, operator, and assertion types, writing
// inferred types into the AST's type slots.
type Analyzer struct {
	scope       *symbols.Scope
	Diagnostics []*diagnostics.Diagnostic
}

func New(scope *symbols.Scope) *Analyzer {
	return &Analyzer{scope: scope}
}

// AnalyzeModule runs both semantic passes over a parsed module: the
// hoisting collector, then the checker, merging their diagnostics with
// the unused-binding warnings produced on scope exit.
func AnalyzeModule(scope *symbols.Scope, module *ast.Module) []*diagnostics.Diagnostic {
	scope.Enter()

	collector := NewTypeCollector(scope)
	collector.CollectModule(module)

	a := New(scope)
	a.CheckModule(module)

	diags := append(collector.Diagnostics, a.Diagnostics...)
	return append(diags, scope.Exit()...)
}

func (a *Analyzer) error(code diagnostics.Code, pos token.Position, args ...interface{}) {
	a.Diagnostics = append(a.Diagnostics, diagnostics.NewError(code, pos, args...))
}

// CheckModule walks every top-level statement in source order. The
// hoisting collector must have run first.
func (a *Analyzer) CheckModule(module *ast.Module) {
	for _, stmt := range module.Body {
		switch node := stmt.(type) {
		case *ast.Def:
			a.analyzeDef(node)

		case *ast.IntrinsicDef:
			a.analyzeIntrinsicDef(node)

		case *ast.LetStatement:
			a.analyzeExpr(node.Value)
			a.destructurePattern(node.Pattern, node.Value.Type(), symbols.LetBinding, false)

		case *ast.ExpressionStatement:
			a.analyzeExpr(node.Expression)
		}
	}
}

// defParamTypes returns the expected block parameter types for each
// definition form: the signature part types for functions, the receiver
// followed by the signature part types for methods, both operand types
// for binary operators and the operand type for unary operators.
func defParamTypes(kind ast.DefKind) []typesystem.ValueType {
	switch k := kind.(type) {
	case *ast.FunctionKind:
		types := make([]typesystem.ValueType, len(k.Signature))
		for i, part := range k.Signature {
			types[i] = TypeExprToValueType(part.TypeExpr)
		}
		return types

	case *ast.MethodKind:
		types := []typesystem.ValueType{TypeIdentToValueType(k.Receiver)}
		for _, part := range k.Signature {
			types = append(types, TypeExprToValueType(part.TypeExpr))
		}
		return types

	case *ast.BinaryOperatorKind:
		return []typesystem.ValueType{
			TypeIdentToValueType(k.Left),
			TypeIdentToValueType(k.Right),
		}

	case *ast.UnaryOperatorKind:
		return []typesystem.ValueType{TypeIdentToValueType(k.Right)}
	}

	return nil
}

func (a *Analyzer) analyzeDef(node *ast.Def) {
	a.scope.Enter()

	a.analyzeDefKind(node.Kind)

	if node.ReturnType != nil {
		a.analyzeTypeExpr(node.ReturnType)
	}

	paramTypes := defParamTypes(node.Kind)
	params := node.Block.Params

	if len(params) != len(paramTypes) {
		pos := node.Block.Pos()
		if len(params) > 0 {
			pos = token.Position{Start: params[0].Pos().Start, End: params[len(params)-1].Pos().End}
		}

		a.error(diagnostics.ErrA014, pos, len(paramTypes), len(params))
	}

	for i, param := range params {
		paramType := typesystem.ValueType(typesystem.Unknown)
		if i < len(paramTypes) {
			paramType = a.constrainedParamType(node.Constraints, paramTypes[i])
		}
		a.destructurePattern(param, paramType, symbols.ParamBinding, false)
	}

	var lastType typesystem.ValueType = typesystem.Nothing
	declaredReturn := returnTypeOrNothing(node.ReturnType)

	for _, stmt := range node.Block.Body {
		a.analyzeStatement(stmt, declaredReturn)

		if exprStmt, ok := stmt.(*ast.ExpressionStatement); ok {
			lastType = exprStmt.Expression.Type()
		}
	}

	if !a.typesCompatible(declaredReturn, lastType, node.Block.Pos()) {
		a.error(diagnostics.ErrA020, node.Block.Pos(), declaredReturn, lastType)
	}

	node.Block.Typ = typesystem.Func{Params: paramTypes, Return: lastType}

	a.Diagnostics = append(a.Diagnostics, a.scope.Exit()...)
}

// constrainedParamType swaps a named parameter type for its constrained
// form when a where-clause constraint exists for that name.
func (a *Analyzer) constrainedParamType(
	constraints []ast.GenericConstraint,
	paramType typesystem.ValueType,
) typesystem.ValueType {
	named, ok := paramType.(typesystem.Named)
	if !ok {
		return paramType
	}

	for _, gc := range constraints {
		if gc.Name.Name != named.Name {
			continue
		}

		if len(gc.Constraint.Generics) == 0 {
			return typesystem.Constrained{
				Constraint: typesystem.NamedTrait{Name: gc.Constraint.Name},
			}
		}

		args := make([]typesystem.ValueType, len(gc.Constraint.Generics))
		for i, arg := range gc.Constraint.Generics {
			args[i] = TypeExprToValueType(arg)
		}
		return typesystem.Constrained{
			Constraint: typesystem.GenericTrait{Name: gc.Constraint.Name, Args: args},
		}
	}

	return paramType
}

func (a *Analyzer) analyzeIntrinsicDef(node *ast.IntrinsicDef) {
	a.analyzeDefKind(node.Kind)

	if node.ReturnType != nil {
		a.analyzeTypeExpr(node.ReturnType)
	}
}

func (a *Analyzer) analyzeDefKind(kind ast.DefKind) {
	switch k := kind.(type) {
	case *ast.FunctionKind:
		for _, part := range k.Signature {
			a.analyzeTypeExpr(part.TypeExpr)
		}

	case *ast.MethodKind:
		a.analyzeTypeIdentifier(k.Receiver)
		for _, part := range k.Signature {
			a.analyzeTypeExpr(part.TypeExpr)
		}

	case *ast.BinaryOperatorKind:
		a.analyzeTypeIdentifier(k.Left)
		a.analyzeTypeIdentifier(k.Right)

	case *ast.UnaryOperatorKind:
		a.analyzeTypeIdentifier(k.Right)
	}
}

// analyzeStatement analyzes one block statement. Return statements are
// checked against the enclosing def's declared return type.
func (a *Analyzer) analyzeStatement(stmt ast.Statement, declaredReturn typesystem.ValueType) {
	switch node := stmt.(type) {
	case *ast.LetStatement:
		a.analyzeExpr(node.Value)
		a.destructurePattern(node.Pattern, node.Value.Type(), symbols.LetBinding, false)

	case *ast.ExpressionStatement:
		a.analyzeExpr(node.Expression)

	case *ast.ReturnStatement:
		returned := typesystem.ValueType(typesystem.Nothing)
		if node.Value != nil {
			a.analyzeExpr(node.Value)
			returned = node.Value.Type()
		}

		if !a.typesCompatible(declaredReturn, returned, node.Pos()) {
			a.error(diagnostics.ErrA020, node.Pos(), declaredReturn, returned)
		}
	}
}

func (a *Analyzer) analyzeTypeIdentifier(node *ast.TypeIdentifier) typesystem.ValueType {
	// A where-clause constraint attached during hoisting means this
	// name is a generic parameter, not a concrete type.
	if len(node.Constraints) > 0 {
		return typesystem.Constrained{Constraint: node.Constraints[0]}
	}

	valueType := TypeIdentToValueType(node)

	if binding := a.scope.GetTypeBinding(valueType); binding == nil {
		if _, isNamed := valueType.(typesystem.Named); isNamed || isPrimitive(valueType) {
			a.error(diagnostics.ErrA003, node.Position, valueType)
		}
	}

	return valueType
}

func isPrimitive(t typesystem.ValueType) bool {
	return typesystem.Equal(t, typesystem.Int) ||
		typesystem.Equal(t, typesystem.Float) ||
		typesystem.Equal(t, typesystem.String)
}

func (a *Analyzer) analyzeTypeExpr(node ast.TypeExpr) {
	switch n := node.(type) {
	case *ast.TypeEmptyTuple:
		n.Typ = typesystem.Nothing

	case *ast.TypeGrouping:
		a.analyzeTypeExpr(n.Inner)
		n.Typ = n.Inner.Type()

	case *ast.TypeSingle:
		n.Typ = a.analyzeTypeIdentifier(n.Ident)

	case *ast.TypeUnlabeledTuple:
		entries := make([]typesystem.ValueType, len(n.Entries))
		for i, entry := range n.Entries {
			a.analyzeTypeExpr(entry)
			entries[i] = entry.Type()
		}
		n.Typ = typesystem.UnlabeledTuple{Entries: entries}

	case *ast.TypeLabeledTuple:
		entries := make([]typesystem.LabeledEntry, len(n.Entries))
		for i, entry := range n.Entries {
			a.analyzeTypeExpr(entry.Entry)
			entries[i] = typesystem.LabeledEntry{Label: entry.Label.Name, Type: entry.Entry.Type()}
		}
		n.Typ = typesystem.LabeledTuple{Entries: entries}

	case *ast.TypeFunc:
		a.analyzeTypeExpr(n.Param)
		a.analyzeTypeExpr(n.Return)
		n.Typ = typesystem.Func{
			Params: []typesystem.ValueType{n.Param.Type()},
			Return: n.Return.Type(),
		}
	}
}
