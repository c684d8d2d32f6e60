package analyzer

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/symbols"
	"github.com/quill-lang/quill/internal/token"
	"github.com/quill-lang/quill/internal/typesystem"
)

// TypeCollector is the hoisting pass. It registers every top-level
// definition and type declaration into module scope before any
// expression is analyzed, so forward references are legal.
type TypeCollector struct {
	scope       *symbols.Scope
	Diagnostics []*diagnostics.Diagnostic
}

func NewTypeCollector(scope *symbols.Scope) *TypeCollector {
	return &TypeCollector{scope: scope}
}

func (c *TypeCollector) error(code diagnostics.Code, pos token.Position, args ...interface{}) {
	c.Diagnostics = append(c.Diagnostics, diagnostics.NewError(code, pos, args...))
}

// CollectModule hoists all top-level statements.
func (c *TypeCollector) CollectModule(module *ast.Module) {
	for _, stmt := range module.Body {
		switch node := stmt.(type) {
		case *ast.ConstStatement:
			c.collectConst(node)

		case *ast.Def:
			c.collectDef(node.Pos(), node.Constraints, node.Kind, node.ReturnType)

		case *ast.IntrinsicDef:
			c.collectDef(node.Pos(), node.Constraints, node.Kind, node.ReturnType)

		case *ast.TypeDef:
			c.collectTypeDef(node)

		case *ast.IntrinsicTypeDef:
			c.collectIntrinsicTypeDef(node)
		}
	}
}

func (c *TypeCollector) collectDef(
	pos token.Position,
	constraints []ast.GenericConstraint,
	kind ast.DefKind,
	returnTypeExpr ast.TypeExpr,
) {
	constraintsMap := make(map[string]typesystem.ValueType)
	astConstraints := make(map[string]typesystem.TypeConstraint)

	for _, gc := range constraints {
		var constraint typesystem.TypeConstraint
		if len(gc.Constraint.Generics) == 0 {
			constraint = typesystem.NamedTrait{Name: gc.Constraint.Name}
		} else {
			args := make([]typesystem.ValueType, len(gc.Constraint.Generics))
			for i, arg := range gc.Constraint.Generics {
				args[i] = TypeExprToValueType(arg)
			}
			constraint = typesystem.GenericTrait{Name: gc.Constraint.Name, Args: args}
		}

		constraintsMap[gc.Name.Name] = typesystem.Constrained{Constraint: constraint}
		astConstraints[gc.Name.Name] = constraint
	}

	returnType := returnTypeOrNothing(returnTypeExpr)

	switch k := kind.(type) {
	case *ast.FunctionKind:
		var paramTypes []typesystem.ValueType

		for _, part := range k.Signature {
			paramType := TypeExprToValueType(part.TypeExpr)

			if named, ok := paramType.(typesystem.Named); ok {
				if constrained, found := constraintsMap[named.Name]; found {
					paramType = constrained
					attachConstraint(part.TypeExpr, astConstraints[named.Name])
				}
			}

			paramTypes = append(paramTypes, paramType)
		}

		defType := typesystem.Func{Params: paramTypes, Return: returnType}
		c.scope.AddBinding(symbols.DefBinding, k.Signature.MergedName(), defType, pos)

	case *ast.MethodKind:
		receiverType := TypeIdentToValueType(k.Receiver)

		var paramTypes []typesystem.ValueType
		for _, part := range k.Signature {
			paramTypes = append(paramTypes, TypeExprToValueType(part.TypeExpr))
		}

		err := c.scope.AddTypeMethod(
			receiverType,
			k.Signature.NameParts(),
			paramTypes,
			returnType,
			k.Receiver.Position,
		)
		if err != nil {
			c.Diagnostics = append(c.Diagnostics, err)
		}

	case *ast.BinaryOperatorKind:
		receiverType := TypeIdentToValueType(k.Left)
		paramType := TypeIdentToValueType(k.Right)

		err := c.scope.AddTypeMethod(
			receiverType,
			[]string{"$", k.Op.Name, "$"},
			[]typesystem.ValueType{paramType},
			returnType,
			k.Left.Position,
		)
		if err != nil {
			c.Diagnostics = append(c.Diagnostics, err)
		}

	case *ast.UnaryOperatorKind:
		receiverType := TypeIdentToValueType(k.Right)

		err := c.scope.AddTypeMethod(
			receiverType,
			[]string{k.Op.Name, "$"},
			nil,
			returnType,
			k.Right.Position,
		)
		if err != nil {
			c.Diagnostics = append(c.Diagnostics, err)
		}
	}
}

func (c *TypeCollector) collectConst(node *ast.ConstStatement) {
	lit, ok := node.Value.(*ast.Literal)
	if !ok {
		c.error(diagnostics.ErrA026, node.Value.Pos())
		return
	}

	c.scope.AddBinding(symbols.ConstBinding, node.Name.Name, literalType(lit), node.Pos())
}

func (c *TypeCollector) collectTypeDef(node *ast.TypeDef) {
	typ := typesystem.Named{Name: node.Name.Name}

	switch kind := node.Kind.(type) {
	case *ast.EnumDef:
		c.scope.AddTypeBinding(typ, symbols.EnumType, node.Name.Position)

		for _, variant := range kind.Variants {
			if variant.Payload == nil {
				// A nullary variant binds the variant name directly to
				// the enum type.
				c.scope.AddBinding(symbols.EnumVariantBinding, variant.Name.Name, typ, variant.Name.Position)
				continue
			}

			payloadType := TypeExprToValueType(variant.Payload)
			constructorType := typesystem.Func{
				Params: []typesystem.ValueType{payloadType},
				Return: typ,
			}
			c.scope.AddBinding(symbols.EnumVariantBinding, variant.Name.Name, constructorType, variant.Position)
		}

	case *ast.StructDef:
		binding := c.scope.AddTypeBinding(typ, symbols.StructType, node.Name.Position)

		var constructorParam typesystem.ValueType

		if labeled, ok := kind.Inner.(*ast.TypeLabeledTuple); ok {
			var paramTypes []typesystem.ValueType

			for _, field := range labeled.Entries {
				fieldType := TypeExprToValueType(field.Entry)
				paramTypes = append(paramTypes, fieldType)

				binding.Fields[field.Label.Name] = &symbols.Binding{
					Kind: symbols.FieldBinding,
					Pos:  field.Label.Position,
					Type: fieldType,
				}
			}

			constructorParam = typesystem.UnlabeledTuple{Entries: paramTypes}
		} else {
			constructorParam = TypeExprToValueType(kind.Inner)
		}

		constructorType := typesystem.Func{
			Params: []typesystem.ValueType{constructorParam},
			Return: typ,
		}
		c.scope.AddBinding(symbols.StructConstructorBinding, node.Name.Name, constructorType, node.Name.Position)

	case *ast.AliasDef:
		c.scope.AddTypeBinding(typ, symbols.AliasType, node.Name.Position)

	case *ast.TraitDef:
		binding := c.scope.AddTypeBinding(typ, symbols.TraitType, node.Name.Position)

		for _, field := range kind.Fields {
			binding.Fields[field.Label.Name] = &symbols.Binding{
				Kind: symbols.FieldBinding,
				Pos:  field.Label.Position,
				Type: TypeExprToValueType(field.Entry),
			}
		}

		for _, method := range kind.Methods {
			var paramTypes []typesystem.ValueType
			for _, part := range method.Signature {
				paramTypes = append(paramTypes, TypeExprToValueType(part.TypeExpr))
			}

			binding.Methods[symbols.MethodKey(method.Signature.NameParts())] = typesystem.Func{
				Params: paramTypes,
				Return: returnTypeOrNothing(method.Return),
			}
		}
	}
}

// collectIntrinsicTypeDef registers an intrinsic type declaration.
// Only the three primitive names are recognized; anything else is
// ignored at hoist time.
func (c *TypeCollector) collectIntrinsicTypeDef(node *ast.IntrinsicTypeDef) {
	var typ typesystem.ValueType

	switch node.Name.Name {
	case "Int":
		typ = typesystem.Int
	case "Float":
		typ = typesystem.Float
	case "String":
		typ = typesystem.String
	default:
		return
	}

	c.scope.AddTypeBinding(typ, symbols.IntrinsicType, node.Name.Position)
}

func returnTypeOrNothing(expr ast.TypeExpr) typesystem.ValueType {
	if expr == nil {
		return typesystem.Nothing
	}
	return TypeExprToValueType(expr)
}

// attachConstraint mutates a signature part's type identifier to carry
// the where-clause constraint it matched.
func attachConstraint(expr ast.TypeExpr, constraint typesystem.TypeConstraint) {
	if single, ok := expr.(*ast.TypeSingle); ok {
		single.Ident.Constraints = append(single.Ident.Constraints, constraint)
	}
}

func literalType(lit *ast.Literal) typesystem.ValueType {
	switch lit.Kind {
	case ast.FloatDecimal:
		return typesystem.Float
	case ast.Str:
		return typesystem.String
	}
	return typesystem.Int
}
