package analyzer

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/typesystem"
)

// TypeIdentToValueType maps a syntactic type identifier to its semantic
// type. The three intrinsic names resolve to primitives; everything
// else is a named (or generic) type.
func TypeIdentToValueType(node *ast.TypeIdentifier) typesystem.ValueType {
	switch node.Name {
	case "Int":
		return typesystem.Int
	case "Float":
		return typesystem.Float
	case "String":
		return typesystem.String
	}

	if len(node.Generics) > 0 {
		args := make([]typesystem.ValueType, len(node.Generics))
		for i, arg := range node.Generics {
			args[i] = TypeExprToValueType(arg)
		}
		return typesystem.Generic{Name: node.Name, Args: args}
	}

	return typesystem.Named{Name: node.Name}
}

// TypeExprToValueType maps a type expression to its semantic type.
// It is the left-inverse of the obvious AST embedding.
func TypeExprToValueType(node ast.TypeExpr) typesystem.ValueType {
	switch n := node.(type) {
	case *ast.TypeEmptyTuple:
		return typesystem.Nothing

	case *ast.TypeGrouping:
		return TypeExprToValueType(n.Inner)

	case *ast.TypeSingle:
		return TypeIdentToValueType(n.Ident)

	case *ast.TypeUnlabeledTuple:
		entries := make([]typesystem.ValueType, len(n.Entries))
		for i, entry := range n.Entries {
			entries[i] = TypeExprToValueType(entry)
		}
		return typesystem.UnlabeledTuple{Entries: entries}

	case *ast.TypeLabeledTuple:
		entries := make([]typesystem.LabeledEntry, len(n.Entries))
		for i, entry := range n.Entries {
			entries[i] = typesystem.LabeledEntry{
				Label: entry.Label.Name,
				Type:  TypeExprToValueType(entry.Entry),
			}
		}
		return typesystem.LabeledTuple{Entries: entries}

	case *ast.TypeFunc:
		return typesystem.Func{
			Params: []typesystem.ValueType{TypeExprToValueType(n.Param)},
			Return: TypeExprToValueType(n.Return),
		}
	}

	return typesystem.Unknown
}
