package analyzer

import (
	"strconv"
	"strings"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/symbols"
	"github.com/quill-lang/quill/internal/typesystem"
)

func (a *Analyzer) analyzeExpr(expr ast.Expression) {
	switch node := expr.(type) {
	case *ast.AssignmentExpression:
		a.analyzeExpr(node.Right)

		if binding := a.scope.GetBinding(node.Left.Name); binding != nil {
			node.Left.Typ = binding.Type

			if !typesystem.Equal(binding.Type, node.Right.Type()) {
				a.error(diagnostics.ErrA019, node.Right.Pos(), binding.Type, node.Right.Type())
			}
		} else {
			a.error(diagnostics.ErrA001, node.Left.Position, node.Left.Name)
		}

		node.Typ = typesystem.Nothing

	case *ast.BinaryOperation:
		a.analyzeExpr(node.Left)
		a.analyzeExpr(node.Right)

		receiverBinding := a.scope.GetTypeBinding(node.Left.Type())
		if receiverBinding == nil {
			return
		}

		key := symbols.MethodKey([]string{"$", node.Op.Name, "$"})
		methodType, ok := receiverBinding.Methods[key]
		if !ok {
			a.error(diagnostics.ErrA008, node.Op.Position, node.Op.Name, node.Left.Type(), node.Right.Type())
			return
		}

		method := methodType.(typesystem.Func)
		node.Typ = method.Return

		if len(method.Params) > 0 && !a.typesCompatible(method.Params[0], node.Right.Type(), node.Right.Pos()) {
			a.error(diagnostics.ErrA021, node.Right.Pos(), method.Params[0], node.Right.Type())
		}

	case *ast.UnaryOperation:
		a.analyzeExpr(node.Right)

		receiverBinding := a.scope.GetTypeBinding(node.Right.Type())
		if receiverBinding == nil {
			return
		}

		key := symbols.MethodKey([]string{node.Op.Name, "$"})
		methodType, ok := receiverBinding.Methods[key]
		if !ok {
			a.error(diagnostics.ErrA009, node.Op.Position, node.Op.Name, node.Right.Type())
			return
		}

		node.Typ = methodType.(typesystem.Func).Return

	case *ast.Block:
		node.Typ = a.analyzeBlock(node)

	case *ast.CallExpression:
		node.Typ = a.analyzeCall(node)

	case *ast.EmptyTuple:
		node.Typ = typesystem.Nothing

	case *ast.FieldAccess:
		a.analyzeExpr(node.Receiver)
		node.Typ = a.analyzeFieldAccess(node)

	case *ast.MethodAccess:
		node.Typ = a.analyzeMethodAccess(node)

	case *ast.Grouping:
		a.analyzeExpr(node.Inner)
		node.Typ = node.Inner.Type()

	case *ast.Identifier:
		node.Typ = a.analyzeIdentifier(node)

	case *ast.MultiPartIdentifier:
		names := node.NameParts()
		merged := strings.Join(names, " ")

		if binding := a.scope.GetBinding(merged); binding != nil {
			node.Typ = binding.Type
		} else {
			a.error(diagnostics.ErrA002, node.Position, strings.Join(names, " _ ")+" _")
		}

	case *ast.QualifiedIdentifier:
		// Cross-module bindings are injected by the loader under their
		// dotted names.
		name := node.Qualifier.Name + "." + node.Ident.Name
		if binding := a.scope.GetBinding(name); binding != nil {
			node.Typ = binding.Type
		} else {
			a.error(diagnostics.ErrA001, node.Position, name)
		}

	case *ast.QualifiedMultiPartIdentifier:
		parts := make([]string, len(node.Parts))
		for i, part := range node.Parts {
			parts[i] = part.Name
		}
		name := node.Qualifier.Name + "." + strings.Join(parts, " ")
		if binding := a.scope.GetBinding(name); binding != nil {
			node.Typ = binding.Type
		} else {
			a.error(diagnostics.ErrA002, node.Position, name)
		}

	case *ast.Interpolation:
		for _, part := range node.Parts {
			a.analyzeExpr(part)

			// Unknown part types come from resolution errors already
			// reported; don't cascade.
			if !typesystem.IsUnknown(part.Type()) && !typesystem.Equal(part.Type(), typesystem.String) {
				a.error(diagnostics.ErrA023, part.Pos(), part.Type())
			}
		}

		node.Typ = typesystem.String

	case *ast.Literal:
		node.Typ = literalType(node)

	case *ast.ListLiteral:
		node.Typ = a.analyzeList(node)

	case *ast.DictLiteral:
		node.Typ = a.analyzeDict(node)

	case *ast.MatchExpression:
		node.Typ = a.analyzeMatch(node)

	case *ast.TypeAssertion:
		a.analyzeTypeExpr(node.AssertedType)
		a.analyzeExpr(node.Expr)

		asserted := node.AssertedType.Type()

		if !typesystem.Equal(node.Expr.Type(), asserted) {
			a.error(diagnostics.ErrA022, node.Position, asserted, node.Expr.Type())
			return
		}

		node.Typ = asserted

	case *ast.UnlabeledTupleExpression:
		entries := make([]typesystem.ValueType, len(node.Entries))
		for i, entry := range node.Entries {
			a.analyzeExpr(entry)
			entries[i] = entry.Type()
		}
		node.Typ = typesystem.UnlabeledTuple{Entries: entries}

	case *ast.LabeledTupleExpression:
		entries := make([]typesystem.LabeledEntry, len(node.Entries))
		for i, entry := range node.Entries {
			a.analyzeExpr(entry.Value)
			entries[i] = typesystem.LabeledEntry{Label: entry.Label.Name, Type: entry.Value.Type()}
		}
		node.Typ = typesystem.LabeledTuple{Entries: entries}

	case *ast.RegExpression:
		node.Typ = typesystem.Named{Name: "Regex"}

	case *ast.UnderscoreExpression:
		// Placeholder expressions keep the Unknown type.
	}
}

func (a *Analyzer) analyzeIdentifier(node *ast.Identifier) typesystem.ValueType {
	binding := a.scope.GetBinding(node.Name)
	if binding == nil {
		a.error(diagnostics.ErrA001, node.Position, node.Name)
		return typesystem.Unknown
	}
	return binding.Type
}

// analyzeBlock analyzes a bare block expression. Parameters have no
// declared types, so they bind as Unknown; the block's value is a Func
// from its parameter types to the last expression statement's type.
func (a *Analyzer) analyzeBlock(node *ast.Block) typesystem.ValueType {
	a.scope.Enter()

	paramTypes := make([]typesystem.ValueType, 0, len(node.Params))
	if len(node.Params) == 0 {
		paramTypes = append(paramTypes, typesystem.Nothing)
	} else {
		for _, param := range node.Params {
			paramTypes = append(paramTypes, typesystem.Unknown)
			a.destructurePattern(param, typesystem.Unknown, symbols.ParamBinding, false)
		}
	}

	var returnType typesystem.ValueType = typesystem.Nothing

	for _, stmt := range node.Body {
		a.analyzeStatement(stmt, typesystem.Unknown)

		if exprStmt, ok := stmt.(*ast.ExpressionStatement); ok {
			returnType = exprStmt.Expression.Type()
		}
	}

	a.Diagnostics = append(a.Diagnostics, a.scope.Exit()...)

	return typesystem.Func{Params: paramTypes, Return: returnType}
}

func (a *Analyzer) analyzeCall(node *ast.CallExpression) typesystem.ValueType {
	a.analyzeExpr(node.Callee)

	calleeType, ok := node.Callee.Type().(typesystem.Func)
	if !ok {
		if !typesystem.IsUnknown(node.Callee.Type()) {
			a.error(diagnostics.ErrA012, node.Position, node.Callee.Type())
		}

		for _, arg := range node.Args {
			a.analyzeExpr(arg)
		}

		return typesystem.Unknown
	}

	if len(calleeType.Params) != len(node.Args) {
		a.error(diagnostics.ErrA013, node.Position, len(calleeType.Params), len(node.Args))
	}

	for i, arg := range node.Args {
		a.analyzeExpr(arg)

		if i >= len(calleeType.Params) {
			continue
		}

		if !a.typesCompatible(calleeType.Params[i], arg.Type(), arg.Pos()) {
			a.error(diagnostics.ErrA021, arg.Pos(), calleeType.Params[i], arg.Type())
		}
	}

	return calleeType.Return
}

func (a *Analyzer) analyzeFieldAccess(node *ast.FieldAccess) typesystem.ValueType {
	receiverType := node.Receiver.Type()

	if typesystem.IsUnknown(receiverType) {
		return typesystem.Unknown
	}

	// Tuple index access, e.g. pair.0.
	if index, err := strconv.Atoi(node.Field.Name); err == nil {
		switch tuple := receiverType.(type) {
		case typesystem.UnlabeledTuple:
			if index >= 0 && index < len(tuple.Entries) {
				return tuple.Entries[index]
			}
		case typesystem.LabeledTuple:
			if index >= 0 && index < len(tuple.Entries) {
				return tuple.Entries[index].Type
			}
		}

		a.error(diagnostics.ErrA006, node.Field.Position, node.Field.Name, receiverType)
		return typesystem.Unknown
	}

	// A labeled tuple's fields are accessible by name directly.
	if labeled, ok := receiverType.(typesystem.LabeledTuple); ok {
		if fieldType, found := labeled.Field(node.Field.Name); found {
			return fieldType
		}

		a.error(diagnostics.ErrA006, node.Field.Position, node.Field.Name, receiverType)
		return typesystem.Unknown
	}

	receiverBinding := a.scope.GetTypeBinding(receiverType)
	if receiverBinding == nil || receiverBinding.Kind != symbols.StructType {
		a.error(diagnostics.ErrA006, node.Field.Position, node.Field.Name, receiverType)
		return typesystem.Unknown
	}

	fieldBinding, found := receiverBinding.Field(node.Field.Name)
	if !found {
		a.error(diagnostics.ErrA006, node.Field.Position, node.Field.Name, receiverType)
		return typesystem.Unknown
	}

	fieldBinding.RefCount++
	return fieldBinding.Type
}

func (a *Analyzer) analyzeMethodAccess(node *ast.MethodAccess) typesystem.ValueType {
	a.analyzeExpr(node.Receiver)

	receiverBinding := a.scope.GetTypeBinding(node.Receiver.Type())
	if receiverBinding == nil {
		return typesystem.Unknown
	}

	// A call to a function stored in a struct field parses as a method
	// access; check for that case before the method map.
	if receiverBinding.Kind == symbols.StructType && len(node.MethodParts) == 1 {
		if fieldBinding, found := receiverBinding.Field(node.MethodParts[0].Name); found {
			fieldBinding.RefCount++
			return fieldBinding.Type
		}
	}

	parts := make([]string, len(node.MethodParts))
	for i, part := range node.MethodParts {
		parts[i] = part.Name
	}

	if methodType, found := receiverBinding.Methods[symbols.MethodKey(parts)]; found {
		return methodType
	}

	pos := node.MethodParts[0].Position
	pos.End = node.MethodParts[len(node.MethodParts)-1].Position.End

	a.error(diagnostics.ErrA007, pos, symbols.MethodKey(parts), node.Receiver.Type())
	return typesystem.Unknown
}

func (a *Analyzer) analyzeMatch(node *ast.MatchExpression) typesystem.ValueType {
	a.analyzeExpr(node.Subject)

	var caseType typesystem.ValueType

	for _, matchCase := range node.Cases {
		a.scope.Enter()
		a.destructurePattern(matchCase.Pattern, node.Subject.Type(), symbols.LetBinding, true)
		a.analyzeExpr(matchCase.Body)
		a.Diagnostics = append(a.Diagnostics, a.scope.Exit()...)

		if caseType == nil {
			caseType = matchCase.Body.Type()
			continue
		}

		if !typesystem.Equal(caseType, matchCase.Body.Type()) {
			a.error(diagnostics.ErrA024, matchCase.Body.Pos(), caseType, matchCase.Body.Type())
		}
	}

	if caseType == nil {
		return typesystem.Unknown
	}

	return caseType
}

// analyzeList types a list literal as List<T> when all elements share a
// type, and List<unknown> otherwise.
func (a *Analyzer) analyzeList(node *ast.ListLiteral) typesystem.ValueType {
	var elementType typesystem.ValueType = typesystem.Unknown

	for i, element := range node.Elements {
		a.analyzeExpr(element)

		if i == 0 {
			elementType = element.Type()
		} else if !typesystem.Equal(elementType, element.Type()) {
			elementType = typesystem.Unknown
		}
	}

	return typesystem.Generic{Name: "List", Args: []typesystem.ValueType{elementType}}
}

func (a *Analyzer) analyzeDict(node *ast.DictLiteral) typesystem.ValueType {
	var keyType typesystem.ValueType = typesystem.Unknown
	var valueType typesystem.ValueType = typesystem.Unknown

	for i, entry := range node.Entries {
		a.analyzeExpr(entry.Key)
		a.analyzeExpr(entry.Value)

		if i == 0 {
			keyType = entry.Key.Type()
			valueType = entry.Value.Type()
			continue
		}

		if !typesystem.Equal(keyType, entry.Key.Type()) {
			keyType = typesystem.Unknown
		}
		if !typesystem.Equal(valueType, entry.Value.Type()) {
			valueType = typesystem.Unknown
		}
	}

	return typesystem.Generic{Name: "Dict", Args: []typesystem.ValueType{keyType, valueType}}
}
