package parser

import (
	"testing"

	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/lexer"
)

func expectCode(t *testing.T, input string, code diagnostics.Code) {
	t.Helper()

	source := []byte(input)
	p := New(source, lexer.New(source))
	_, _, _, errors := p.ParseModule()

	for _, err := range errors {
		if err.Code == code {
			return
		}
	}

	t.Errorf("input %q: expected diagnostic %s, got %v", input, code, errors)
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		code  diagnostics.Code
	}{
		{"unclosed_paren", "(1, 2", diagnostics.ErrP024},
		{"missing_let_rhs", "let x =", diagnostics.ErrP015},
		{"missing_const_rhs", "const x =", diagnostics.ErrP015},
		{"missing_expression_after_dot", "x.", diagnostics.ErrP006},
		{"unexpected_expression_after_dot", "x.(1)", diagnostics.ErrP032},
		{"missing_match_cases", "match x\n1", diagnostics.ErrP013},
		{"missing_return_type", "def f Int ->\n", diagnostics.ErrP005},
		{"missing_def_body", "def f Int -> Int\n", diagnostics.ErrP009},
		{"incomplete_signature", "def\n", diagnostics.ErrP023},
		{"missing_qualifier_after_as", "use lib/x as\n", diagnostics.ErrP014},
		{"return_at_top_level", "return 1", diagnostics.ErrP030},
		{"missing_type_name", "struct (a: Int)", diagnostics.ErrP019},
		{"missing_struct_fields", "struct P\n", diagnostics.ErrP016},
		{"empty_regex", "//", diagnostics.ErrP026},
		{"empty_regex_group", `/()/`, diagnostics.ErrP027},
		{"empty_regex_count", `/"a"{}/`, diagnostics.ErrP028},
		{"inverted_regex_count", `/"a"{3,2}/`, diagnostics.ErrP029},
		{"dict_value_in_list", "[1, 2: 3]", diagnostics.ErrP025},
		{"missing_dict_value", `["a":]`, diagnostics.ErrP010},
		{"missing_expression_after_operator", "1 +", diagnostics.ErrP007},
		{"missing_type_in_assertion", "x ::\n", diagnostics.ErrP018},
		{"missing_argument_in_call", `replace "x" with`, diagnostics.ErrP020},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expectCode(t, tc.input, tc.code)
		})
	}
}

// A module with parse errors still yields a best-effort AST for the
// statements that did parse.
func TestBestEffortAst(t *testing.T) {
	source := []byte("let x = 1\nlet y =\nlet z = 3\n")
	p := New(source, lexer.New(source))
	module, _, _, errors := p.ParseModule()

	if len(errors) == 0 {
		t.Fatal("expected errors")
	}

	if len(module.Body) != 2 {
		t.Fatalf("expected 2 recovered statements, got %d", len(module.Body))
	}
}
