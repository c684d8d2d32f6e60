package ast

// Visitor receives enter/leave hooks for every node during a Walk.
// Returning false from Enter skips the node's children.
type Visitor interface {
	Enter(Node) bool
	Leave(Node)
}

// Walk traverses the tree rooted at n in source order, calling the
// visitor's hooks around each node's children.
func Walk(v Visitor, n Node) {
	if n == nil {
		return
	}

	if !v.Enter(n) {
		v.Leave(n)
		return
	}

	switch node := n.(type) {
	case *Module:
		for _, stmt := range node.Body {
			Walk(v, stmt)
		}

	case *UseStatement:
		if node.Qualifier != nil {
			Walk(v, node.Qualifier)
		}

	case *LetStatement:
		Walk(v, node.Pattern)
		Walk(v, node.Value)

	case *ConstStatement:
		Walk(v, node.Name)
		Walk(v, node.Value)

	case *ExpressionStatement:
		Walk(v, node.Expression)

	case *ReturnStatement:
		Walk(v, node.Value)

	case *Def:
		walkDefKind(v, node.Kind)
		Walk(v, node.ReturnType)
		Walk(v, node.Block)

	case *IntrinsicDef:
		walkDefKind(v, node.Kind)
		Walk(v, node.ReturnType)

	case *TypeDef:
		Walk(v, node.Name)
		switch kind := node.Kind.(type) {
		case *AliasDef:
			Walk(v, kind.Of)
		case *EnumDef:
			for _, variant := range kind.Variants {
				Walk(v, variant)
			}
		case *StructDef:
			Walk(v, kind.Inner)
		case *TraitDef:
			for _, field := range kind.Fields {
				Walk(v, field.Label)
				Walk(v, field.Entry)
			}
			for _, method := range kind.Methods {
				walkSignature(v, method.Signature)
				Walk(v, method.Return)
			}
		}

	case *IntrinsicTypeDef:
		Walk(v, node.Name)

	case *EnumVariant:
		Walk(v, node.Name)
		Walk(v, node.Payload)

	case *VisibilityMarker, *Identifier, *Operator, *TypeIdentifier,
		*UnderscorePattern, *UnderscoreExpression, *EmptyTuple, *Literal,
		*TypeEmptyTuple, *RegLiteral, *RegCharacterClass:
		// Leaves.

	case *Block:
		for _, param := range node.Params {
			Walk(v, param)
		}
		for _, stmt := range node.Body {
			Walk(v, stmt)
		}

	case *AssignmentExpression:
		Walk(v, node.Left)
		Walk(v, node.Right)

	case *BinaryOperation:
		Walk(v, node.Left)
		Walk(v, node.Op)
		Walk(v, node.Right)

	case *UnaryOperation:
		Walk(v, node.Op)
		Walk(v, node.Right)

	case *CallExpression:
		Walk(v, node.Callee)
		for _, arg := range node.Args {
			Walk(v, arg)
		}

	case *FieldAccess:
		Walk(v, node.Receiver)
		Walk(v, node.Field)

	case *MethodAccess:
		Walk(v, node.Receiver)
		for _, part := range node.MethodParts {
			Walk(v, part)
		}

	case *Grouping:
		Walk(v, node.Inner)

	case *MultiPartIdentifier:
		for _, part := range node.Parts {
			Walk(v, part)
		}

	case *QualifiedIdentifier:
		Walk(v, node.Qualifier)
		Walk(v, node.Ident)

	case *QualifiedMultiPartIdentifier:
		Walk(v, node.Qualifier)
		for _, part := range node.Parts {
			Walk(v, part)
		}

	case *Interpolation:
		for _, part := range node.Parts {
			Walk(v, part)
		}

	case *ListLiteral:
		for _, el := range node.Elements {
			Walk(v, el)
		}

	case *DictLiteral:
		for _, entry := range node.Entries {
			Walk(v, entry.Key)
			Walk(v, entry.Value)
		}

	case *MatchExpression:
		Walk(v, node.Subject)
		for _, c := range node.Cases {
			Walk(v, c)
		}

	case *MatchCase:
		Walk(v, node.Pattern)
		Walk(v, node.Body)

	case *TypeAssertion:
		Walk(v, node.Expr)
		Walk(v, node.AssertedType)

	case *UnlabeledTupleExpression:
		for _, entry := range node.Entries {
			Walk(v, entry)
		}

	case *LabeledTupleExpression:
		for _, entry := range node.Entries {
			Walk(v, entry.Label)
			Walk(v, entry.Value)
		}

	case *RegExpression:
		Walk(v, node.Regex)

	case *RegOneOrMore:
		Walk(v, node.Inner)
	case *RegZeroOrMore:
		Walk(v, node.Inner)
	case *RegOneOrZero:
		Walk(v, node.Inner)
	case *RegAtLeastCount:
		Walk(v, node.Inner)
	case *RegAtMostCount:
		Walk(v, node.Inner)
	case *RegExactCount:
		Walk(v, node.Inner)
	case *RegRangeCount:
		Walk(v, node.Inner)
	case *RegGrouping:
		Walk(v, node.Inner)
	case *RegSequence:
		for _, part := range node.Parts {
			Walk(v, part)
		}
	case *RegAlternation:
		for _, alt := range node.Alternatives {
			Walk(v, alt)
		}
	case *RegNamedCapture:
		Walk(v, node.Inner)

	case *IdentifierPattern:
		Walk(v, node.Name)
	case *ConstructorPattern:
		Walk(v, node.Name)
		Walk(v, node.Param)
	case *UnlabeledTuplePattern:
		for _, entry := range node.Entries {
			Walk(v, entry)
		}
	case *LabeledTuplePattern:
		for _, entry := range node.Entries {
			Walk(v, entry.Label)
			Walk(v, entry.Pattern)
		}
	case *LiteralPattern:
		Walk(v, node.Literal)
	case *InterpolationPattern:
		for _, part := range node.Parts {
			Walk(v, part)
		}

	case *TypeGrouping:
		Walk(v, node.Inner)
	case *TypeSingle:
		Walk(v, node.Ident)
	case *TypeUnlabeledTuple:
		for _, entry := range node.Entries {
			Walk(v, entry)
		}
	case *TypeLabeledTuple:
		for _, entry := range node.Entries {
			Walk(v, entry.Label)
			Walk(v, entry.Entry)
		}
	case *TypeFunc:
		Walk(v, node.Param)
		Walk(v, node.Return)
	}

	v.Leave(n)
}

func walkDefKind(v Visitor, kind DefKind) {
	switch k := kind.(type) {
	case *FunctionKind:
		walkSignature(v, k.Signature)
	case *MethodKind:
		Walk(v, k.Receiver)
		walkSignature(v, k.Signature)
	case *BinaryOperatorKind:
		Walk(v, k.Left)
		Walk(v, k.Op)
		Walk(v, k.Right)
	case *UnaryOperatorKind:
		Walk(v, k.Op)
		Walk(v, k.Right)
	}
}

func walkSignature(v Visitor, sig Signature) {
	for _, part := range sig {
		Walk(v, part.Name)
		Walk(v, part.TypeExpr)
	}
}
