package typesystem

import "testing"

func TestStructuralEquality(t *testing.T) {
	testCases := []struct {
		name  string
		a, b  ValueType
		equal bool
	}{
		{"primitives", Int, Int, true},
		{"different_primitives", Int, Float, false},
		{"intrinsic_vs_named", Int, Named{Name: "Int"}, false},
		{"named", Named{Name: "Person"}, Named{Name: "Person"}, true},
		{
			"tuples",
			UnlabeledTuple{Entries: []ValueType{Int, String}},
			UnlabeledTuple{Entries: []ValueType{Int, String}},
			true,
		},
		{
			"tuple_order_matters",
			UnlabeledTuple{Entries: []ValueType{Int, String}},
			UnlabeledTuple{Entries: []ValueType{String, Int}},
			false,
		},
		{
			"labeled_vs_unlabeled",
			LabeledTuple{Entries: []LabeledEntry{{Label: "a", Type: Int}}},
			UnlabeledTuple{Entries: []ValueType{Int}},
			false,
		},
		{
			"funcs",
			Func{Params: []ValueType{Int}, Return: String},
			Func{Params: []ValueType{Int}, Return: String},
			true,
		},
		{
			"func_return_differs",
			Func{Params: []ValueType{Int}, Return: String},
			Func{Params: []ValueType{Int}, Return: Int},
			false,
		},
		{
			"generics",
			Generic{Name: "List", Args: []ValueType{Int}},
			Generic{Name: "List", Args: []ValueType{Int}},
			true,
		},
		{
			"constrained",
			Constrained{Constraint: NamedTrait{Name: "Named"}},
			Constrained{Constraint: NamedTrait{Name: "Named"}},
			true,
		},
		{"nils", nil, nil, true},
		{"nil_vs_value", nil, Int, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if Equal(tc.a, tc.b) != tc.equal {
				t.Errorf("Equal(%v, %v) != %v", tc.a, tc.b, tc.equal)
			}
		})
	}
}

func TestDisplay(t *testing.T) {
	testCases := []struct {
		typ      ValueType
		expected string
	}{
		{Int, "Int"},
		{Nothing, "()"},
		{Unknown, "unknown"},
		{Named{Name: "Person"}, "Person"},
		{Generic{Name: "List", Args: []ValueType{String}}, "List<String>"},
		{UnlabeledTuple{Entries: []ValueType{Int, String}}, "(Int, String)"},
		{
			LabeledTuple{Entries: []LabeledEntry{{Label: "name", Type: String}}},
			"(name: String)",
		},
		{Func{Params: []ValueType{Int}, Return: String}, "{ Int -> String }"},
	}

	for _, tc := range testCases {
		if got := tc.typ.String(); got != tc.expected {
			t.Errorf("String() = %q, expected %q", got, tc.expected)
		}
	}
}

func TestLabeledTupleField(t *testing.T) {
	tuple := LabeledTuple{Entries: []LabeledEntry{
		{Label: "name", Type: String},
		{Label: "age", Type: Int},
	}}

	typ, ok := tuple.Field("age")
	if !ok || !Equal(typ, Int) {
		t.Fatalf("Field(age) = %v, %v", typ, ok)
	}

	if _, ok := tuple.Field("missing"); ok {
		t.Fatal("Field(missing) should not be found")
	}
}

func TestIsUnknown(t *testing.T) {
	if !IsUnknown(nil) || !IsUnknown(Unknown) {
		t.Fatal("nil and Unknown are both unknown")
	}
	if IsUnknown(Int) {
		t.Fatal("Int is not unknown")
	}
}
