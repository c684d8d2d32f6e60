package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-lang/quill/internal/analyzer"
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/parser"
	"github.com/quill-lang/quill/internal/symbols"
	"github.com/quill-lang/quill/internal/typesystem"
)

func analyze(t *testing.T, input string) (*ast.Module, []*diagnostics.Diagnostic) {
	t.Helper()

	source := []byte(input)
	p := parser.New(source, lexer.New(source))
	module, _, _, parseErrors := p.ParseModule()
	require.Empty(t, parseErrors, "parse errors in test input")

	scope := symbols.NewScope()
	analyzer.RegisterBuiltins(scope)

	return module, analyzer.AnalyzeModule(scope, module)
}

func codes(diags []*diagnostics.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = string(d.Code)
	}
	return out
}

func errorsOnly(diags []*diagnostics.Diagnostic) []*diagnostics.Diagnostic {
	var out []*diagnostics.Diagnostic
	for _, d := range diags {
		if d.IsError() {
			out = append(out, d)
		}
	}
	return out
}

func TestLiteralTypes(t *testing.T) {
	module, diags := analyze(t, "47")
	require.Empty(t, errorsOnly(diags))

	expr := module.Body[0].(*ast.ExpressionStatement).Expression
	assert.True(t, typesystem.Equal(typesystem.Int, expr.Type()))

	module, diags = analyze(t, `"hello"`)
	require.Empty(t, errorsOnly(diags))

	expr = module.Body[0].(*ast.ExpressionStatement).Expression
	assert.True(t, typesystem.Equal(typesystem.String, expr.Type()))
}

func TestInterpolationTyping(t *testing.T) {
	module, diags := analyze(t, `let name = "reid"`+"\n"+`"hello $(name)!"`)
	require.Empty(t, errorsOnly(diags))

	expr := module.Body[1].(*ast.ExpressionStatement).Expression
	assert.True(t, typesystem.Equal(typesystem.String, expr.Type()))
}

func TestInterpolationUndefinedName(t *testing.T) {
	_, diags := analyze(t, `"hello $(name)!"`)

	errs := errorsOnly(diags)
	require.Len(t, errs, 1, "exactly one diagnostic expected: %v", errs)
	assert.Equal(t, diagnostics.ErrA001, errs[0].Code)
	assert.Contains(t, errs[0].Message, "name")
}

func TestInterpolationNonStringPart(t *testing.T) {
	_, diags := analyze(t, "let n = 1\n\"v: $(n)\"")
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA023))
}

func TestUndefinedMultiPartName(t *testing.T) {
	_, diags := analyze(t, `replace "x" with "y"`)

	errs := errorsOnly(diags)
	require.Len(t, errs, 1)
	assert.Equal(t, diagnostics.ErrA002, errs[0].Code)
	assert.Contains(t, errs[0].Message, "replace _ with _")
}

func TestDefAndCall(t *testing.T) {
	module, diags := analyze(t, "def double Int -> Int { |x| x }\ndouble 5")
	require.Empty(t, diags, "no diagnostics expected: %v", diags)

	call := module.Body[1].(*ast.ExpressionStatement).Expression
	assert.True(t, typesystem.Equal(typesystem.Int, call.Type()))
}

func TestMultiPartDefAndCall(t *testing.T) {
	src := "def clamp Int between (Int, Int) -> Int { |v, range| v }\n" +
		"clamp 5 between (1, 10)"

	module, diags := analyze(t, src)
	require.Empty(t, errorsOnly(diags), "unexpected: %v", diags)

	call := module.Body[1].(*ast.ExpressionStatement).Expression
	assert.True(t, typesystem.Equal(typesystem.Int, call.Type()))
}

func TestReturnTypeMismatch(t *testing.T) {
	_, diags := analyze(t, `def bad Int -> Int { |x| "nope" }`)
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA020))
}

func TestParamCountMismatch(t *testing.T) {
	_, diags := analyze(t, "def f Int -> Int { |a, b| a }")
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA014))
}

func TestCallArityAndTypes(t *testing.T) {
	_, diags := analyze(t, "let add = { |a, b| a }\nadd 1")
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA013))

	_, diags = analyze(t, `def f Int -> Int { |x| x }`+"\n"+`f "s"`)
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA021))
}

func TestCalleeNotCallable(t *testing.T) {
	_, diags := analyze(t, "let x = 1\nx 2")
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA012))
}

func TestStructDestructuring(t *testing.T) {
	src := `struct Person (name: String, age: Int)` + "\n" +
		`let Person (n, a) = Person ("Reid", 26)` + "\n" +
		`let s = n :: String` + "\n" +
		`let i = a :: Int`

	_, diags := analyze(t, src)
	assert.Empty(t, errorsOnly(diags), "unexpected: %v", diags)
}

func TestLabeledTupleUnknownField(t *testing.T) {
	_, diags := analyze(t, `let (name: n, age: a) = (name: "x", years: 2)`)

	errs := errorsOnly(diags)
	require.NotEmpty(t, errs)
	assert.Equal(t, diagnostics.ErrA018, errs[0].Code)
	assert.Contains(t, errs[0].Message, "age")
	assert.Contains(t, errs[0].Message, "years")
}

func TestTuplePatternSizeMismatch(t *testing.T) {
	_, diags := analyze(t, "let (a, b, c) = (1, 2)")
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA015))
}

func TestTuplePatternOnNonTuple(t *testing.T) {
	_, diags := analyze(t, "let (a, b) = 1")
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA016))
}

func TestUnusedVariableWarning(t *testing.T) {
	_, diags := analyze(t, "let unused = 1")

	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.WarnA010, diags[0].Code)
	assert.Equal(t, diagnostics.SeverityWarning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "unused")
}

func TestNameAlreadyInScope(t *testing.T) {
	_, diags := analyze(t, "let x = 1\nlet x = 2")
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA011))
}

func TestOperatorOverload(t *testing.T) {
	module, diags := analyze(t, "def Int + Int -> Int { |a, b| a }\n1 + 2")
	require.Empty(t, errorsOnly(diags), "unexpected: %v", diags)

	binop := module.Body[1].(*ast.ExpressionStatement).Expression
	assert.True(t, typesystem.Equal(typesystem.Int, binop.Type()))
}

func TestUndefinedBinaryOperator(t *testing.T) {
	_, diags := analyze(t, "1 + 2")
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA008))
}

func TestUndefinedUnaryOperator(t *testing.T) {
	_, diags := analyze(t, "~1")
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA009))
}

func TestUnaryOperatorDef(t *testing.T) {
	module, diags := analyze(t, "def ~Int -> Int { |a| a }\n~7")
	require.Empty(t, errorsOnly(diags), "unexpected: %v", diags)

	unop := module.Body[1].(*ast.ExpressionStatement).Expression
	assert.True(t, typesystem.Equal(typesystem.Int, unop.Type()))
}

func TestOperandTypeMismatch(t *testing.T) {
	_, diags := analyze(t, "def Int + Int -> Int { |a, b| a }\n1 + \"s\"")
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA021))
}

func TestEnumVariants(t *testing.T) {
	src := "enum Shade | Light | Dark | Custom Int\n" +
		"let a = Light :: Shade\n" +
		"let b = (Custom 3) :: Shade"

	_, diags := analyze(t, src)
	assert.Empty(t, errorsOnly(diags), "unexpected: %v", diags)
}

func TestFieldAccess(t *testing.T) {
	src := `struct Person (name: String, age: Int)` + "\n" +
		`let p = Person ("Reid", 26)` + "\n" +
		`let s = p.name :: String`

	_, diags := analyze(t, src)
	assert.Empty(t, errorsOnly(diags), "unexpected: %v", diags)
}

func TestUndefinedField(t *testing.T) {
	src := `struct Person (name: String, age: Int)` + "\n" +
		`let p = Person ("Reid", 26)` + "\n" +
		`p.email`

	_, diags := analyze(t, src)
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA006))
}

func TestTupleIndexAccess(t *testing.T) {
	src := "let pair = (1, \"two\")\nlet s = pair.1 :: String"
	_, diags := analyze(t, src)
	assert.Empty(t, errorsOnly(diags), "unexpected: %v", diags)
}

func TestMethodDefAndAccess(t *testing.T) {
	src := `struct Person (name: String, age: Int)` + "\n" +
		`def Person.greet String -> String { |p, msg| msg }` + "\n" +
		`let p = Person ("Reid", 26)` + "\n" +
		`p.greet "hi"`

	module, diags := analyze(t, src)
	require.Empty(t, errorsOnly(diags), "unexpected: %v", diags)

	call := module.Body[3].(*ast.ExpressionStatement).Expression
	assert.True(t, typesystem.Equal(typesystem.String, call.Type()))
}

func TestUndefinedMethod(t *testing.T) {
	src := `struct Person (name: String, age: Int)` + "\n" +
		`let p = Person ("Reid", 26)` + "\n" +
		`p.shout "hi"`

	_, diags := analyze(t, src)
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA007))
}

func TestTypeAssertionMismatch(t *testing.T) {
	_, diags := analyze(t, `let x = 1 :: String`)
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA022))
}

func TestMatchTyping(t *testing.T) {
	module, diags := analyze(t, "let x = 1\nmatch x | 1 => \"one\" | _ => \"other\"")
	require.Empty(t, errorsOnly(diags), "unexpected: %v", diags)

	matchExpr := module.Body[1].(*ast.ExpressionStatement).Expression
	assert.True(t, typesystem.Equal(typesystem.String, matchExpr.Type()))
}

func TestMatchCaseTypeMismatch(t *testing.T) {
	_, diags := analyze(t, "let x = 1\nmatch x | 1 => \"one\" | _ => 2")
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA024))
}

func TestMatchBindsPatternNames(t *testing.T) {
	src := "let x = (1, 2)\nmatch x | (a, b) => a"
	_, diags := analyze(t, src)
	assert.Empty(t, errorsOnly(diags), "unexpected: %v", diags)
}

func TestReassignment(t *testing.T) {
	_, diags := analyze(t, "let mut x = 1\nx = 2")
	assert.Empty(t, errorsOnly(diags), "unexpected: %v", diags)

	_, diags = analyze(t, "let mut x = 1\nx = \"two\"")
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA019))
}

func TestConstRequiresLiteral(t *testing.T) {
	_, diags := analyze(t, "const k = 42\nlet v = k :: Int")
	assert.Empty(t, errorsOnly(diags), "unexpected: %v", diags)

	_, diags = analyze(t, "const k = (1, 2)")
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA026))
}

func TestTraitConstraintSatisfaction(t *testing.T) {
	src := "trait Named . name :: String\n" +
		"struct Person (name: String, age: Int)\n" +
		"def describe T -> String where T :: Named { |x| \"\" }\n" +
		"describe (Person (\"Reid\", 26))"

	_, diags := analyze(t, src)
	assert.Empty(t, errorsOnly(diags), "unexpected: %v", diags)
}

func TestTraitConstraintViolation(t *testing.T) {
	src := "trait Named . name :: String\n" +
		"struct Point (x: Int, y: Int)\n" +
		"def describe T -> String where T :: Named { |v| \"\" }\n" +
		"describe (Point (1, 2))"

	_, diags := analyze(t, src)
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA021))
}

func TestUnsupportedGenericConstraint(t *testing.T) {
	src := "trait Ord . rank :: Int\n" +
		"def sort T -> T where T :: Ord<Int> { |x| x }\n" +
		"sort 1"

	_, diags := analyze(t, src)
	assert.Contains(t, codes(errorsOnly(diags)), string(diagnostics.ErrA027))
}

func TestIntrinsicDefHoisting(t *testing.T) {
	src := "intrinsic_def print String -> ()\nprint \"hi\""
	_, diags := analyze(t, src)
	assert.Empty(t, errorsOnly(diags), "unexpected: %v", diags)
}

func TestVisibilityDoesNotAffectAnalysis(t *testing.T) {
	src := "private\ndef hidden Int -> Int { |x| x }\nhidden 4"
	_, diags := analyze(t, src)
	assert.Empty(t, errorsOnly(diags), "unexpected: %v", diags)
}

// After a clean analysis the inferred-type slots of statement-level
// expressions are all filled in.
func TestInferredTypesWrittenBack(t *testing.T) {
	src := "def double Int -> Int { |x| x }\nlet y = double 5\ny"
	module, diags := analyze(t, src)
	require.Empty(t, errorsOnly(diags))

	letValue := module.Body[1].(*ast.LetStatement).Value
	assert.True(t, typesystem.Equal(typesystem.Int, letValue.Type()))

	final := module.Body[2].(*ast.ExpressionStatement).Expression
	assert.True(t, typesystem.Equal(typesystem.Int, final.Type()))

	defBlock := module.Body[0].(*ast.Def).Block
	assert.False(t, typesystem.IsUnknown(defBlock.Type()))
}
