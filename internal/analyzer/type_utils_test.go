package analyzer

import (
	"testing"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/typesystem"
)

func single(name string) ast.TypeExpr {
	return &ast.TypeSingle{Ident: &ast.TypeIdentifier{Name: name}}
}

// TypeExprToValueType is the left-inverse of the obvious embedding of
// value types into type expressions.
func TestTypeExprToValueType(t *testing.T) {
	testCases := []struct {
		name     string
		expr     ast.TypeExpr
		expected typesystem.ValueType
	}{
		{"empty_tuple", &ast.TypeEmptyTuple{}, typesystem.Nothing},
		{"int", single("Int"), typesystem.Int},
		{"float", single("Float"), typesystem.Float},
		{"string", single("String"), typesystem.String},
		{"named", single("Person"), typesystem.Named{Name: "Person"}},
		{
			"grouping",
			&ast.TypeGrouping{Inner: single("Int")},
			typesystem.Int,
		},
		{
			"unlabeled_tuple",
			&ast.TypeUnlabeledTuple{Entries: []ast.TypeExpr{single("Int"), single("String")}},
			typesystem.UnlabeledTuple{Entries: []typesystem.ValueType{typesystem.Int, typesystem.String}},
		},
		{
			"labeled_tuple",
			&ast.TypeLabeledTuple{Entries: []ast.LabeledTypeEntry{
				{Label: &ast.Identifier{Name: "name"}, Entry: single("String")},
			}},
			typesystem.LabeledTuple{Entries: []typesystem.LabeledEntry{
				{Label: "name", Type: typesystem.String},
			}},
		},
		{
			"func",
			&ast.TypeFunc{Param: single("Int"), Return: single("String")},
			typesystem.Func{
				Params: []typesystem.ValueType{typesystem.Int},
				Return: typesystem.String,
			},
		},
		{
			"generic",
			&ast.TypeSingle{Ident: &ast.TypeIdentifier{
				Name:     "List",
				Generics: []ast.TypeExpr{single("Int")},
			}},
			typesystem.Generic{Name: "List", Args: []typesystem.ValueType{typesystem.Int}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := TypeExprToValueType(tc.expr)
			if !typesystem.Equal(tc.expected, got) {
				t.Errorf("got %v, expected %v", got, tc.expected)
			}
		})
	}
}
