package lexer

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/quill-lang/quill/internal/token"
)

func lexAll(input string) ([]token.Token, *Lexer) {
	lx := New([]byte(input))

	var tokens []token.Token
	for {
		tok := lx.Next()
		if tok.Type == token.EOF {
			return tokens, lx
		}
		tokens = append(tokens, tok)
	}
}

func tok(typ token.Type, start, end int) token.Token {
	return token.Token{Type: typ, Start: start, End: end}
}

func diffTokens(t *testing.T, expected, actual []token.Token) {
	t.Helper()

	if reflect.DeepEqual(expected, actual) {
		return
	}

	dump := func(tokens []token.Token) string {
		out := ""
		for _, tk := range tokens {
			out += fmt.Sprintf("%d %d..%d (%s)\n", tk.Type, tk.Start, tk.End, tk.Type)
		}
		return out
	}

	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(dump(expected)),
		B:        difflib.SplitLines(dump(actual)),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	t.Errorf("token mismatch:\n%s", diff)
}

func TestTokenize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []token.Token
	}{
		{"decimal", "47", []token.Token{tok(token.DECIMAL_DIGITS, 0, 2)}},
		{"binary", "0b101", []token.Token{tok(token.BINARY_DIGITS, 0, 5)}},
		{"hex", "0x1F", []token.Token{tok(token.HEX_DIGITS, 0, 4)}},
		{"octal", "0o17", []token.Token{tok(token.OCTAL_DIGITS, 0, 4)}},
		{"float_parts", "1.5", []token.Token{
			tok(token.DECIMAL_DIGITS, 0, 1),
			tok(token.DOT, 1, 2),
			tok(token.DECIMAL_DIGITS, 2, 3),
		}},
		{"string", `"hello"`, []token.Token{tok(token.STRING_LITERAL, 1, 6)}},
		{"identifier", "hello", []token.Token{tok(token.IDENT, 0, 5)}},
		{"underscore", "_", []token.Token{tok(token.UNDERSCORE, 0, 1)}},
		{"double_underscore_is_ident", "__x", []token.Token{tok(token.IDENT, 0, 3)}},
		{"fixed_operators", "-> => :: : . | = < >", []token.Token{
			tok(token.ARROW, 0, 2),
			tok(token.DOUBLE_ARROW, 3, 5),
			tok(token.DOUBLE_COLON, 6, 8),
			tok(token.COLON, 9, 10),
			tok(token.DOT, 11, 12),
			tok(token.PIPE, 13, 14),
			tok(token.EQUALS, 15, 16),
			tok(token.LEFT_ANGLE, 17, 18),
			tok(token.RIGHT_ANGLE, 19, 20),
		}},
		{"generic_operator_run", "a <*> b", []token.Token{
			tok(token.IDENT, 0, 1),
			tok(token.OPERATOR, 2, 5),
			tok(token.IDENT, 6, 7),
		}},
		{"keywords_top_level", "def let", []token.Token{
			tok(token.KW_DEF, 0, 3),
			tok(token.KW_LET, 4, 7),
		}},
		{"top_level_keyword_inside_braces", "{def}", []token.Token{
			tok(token.LBRACE, 0, 1),
			tok(token.IDENT, 1, 4),
			tok(token.RBRACE, 4, 5),
		}},
		{"always_keyword_inside_braces", "{let}", []token.Token{
			tok(token.LBRACE, 0, 1),
			tok(token.KW_LET, 1, 4),
			tok(token.RBRACE, 4, 5),
		}},
		{"import_path", "use lib/strings", []token.Token{
			tok(token.KW_USE, 0, 3),
			tok(token.IMPORT_PATH, 4, 15),
		}},
		{"interpolation", `"hello $(name)!"`, []token.Token{
			tok(token.STRING_LITERAL, 1, 7),
			tok(token.INTERPOLATION_START, 7, 9),
			tok(token.IDENT, 9, 13),
			tok(token.INTERPOLATION_END, 13, 14),
			tok(token.STRING_LITERAL, 14, 15),
		}},
		{"nested_interpolation", `"a$("b")"`, []token.Token{
			tok(token.STRING_LITERAL, 1, 2),
			tok(token.INTERPOLATION_START, 2, 4),
			tok(token.STRING_LITERAL, 5, 6),
			tok(token.INTERPOLATION_END, 7, 8),
			tok(token.STRING_LITERAL, 8, 8),
		}},
		{"line_breaks", "a\nb", []token.Token{
			tok(token.IDENT, 0, 1),
			tok(token.LINE_BREAK, 1, 2),
			tok(token.IDENT, 2, 3),
		}},
		{"escaped_quote", `"a\"b"`, []token.Token{tok(token.STRING_LITERAL, 1, 5)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, lx := lexAll(tc.input)
			diffTokens(t, tc.expected, actual)

			if len(lx.Errors()) > 0 {
				t.Errorf("unexpected errors: %v", lx.Errors())
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		code  string
	}{
		{"invalid_binary_digit", "0b12", "T001"},
		{"invalid_decimal_digit", "12ab", "T002"},
		{"invalid_hex_digit", "0x1g", "T003"},
		{"invalid_octal_digit", "0o18", "T004"},
		{"unclosed_string", `"abc`, "T005"},
		{"unclosed_interpolation", `"abc$(def`, "T006"},
		{"unexpected_byte", "\x01", "T007"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, lx := lexAll(tc.input)

			found := false
			for _, err := range lx.Errors() {
				if string(err.Code) == tc.code {
					found = true
				}
			}

			if !found {
				t.Errorf("expected diagnostic %s, got %v", tc.code, lx.Errors())
			}
		})
	}
}

func TestCommentMap(t *testing.T) {
	input := "# first\nx # second\ny"
	_, lx := lexAll(input)

	comments := lx.Comments()
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}

	first, ok := comments[0]
	if !ok || first.Start != 1 || first.End != 7 {
		t.Errorf("line 0 comment wrong: %+v", first)
	}

	if _, ok := comments[1]; !ok {
		t.Errorf("expected a comment on line 1")
	}
}

// Tokens must appear in non-decreasing start order, within source
// bounds.
func TestPositionMonotonicity(t *testing.T) {
	input := "def double Int -> Int { |x| x }\nlet y = double 5\n\"s $(y)\"\n"
	tokens, _ := lexAll(input)

	prevStart := -1
	for _, tk := range tokens {
		if tk.Start < prevStart {
			t.Fatalf("token %v starts before previous token (%d)", tk, prevStart)
		}
		if tk.Start > tk.End || tk.End > len(input) {
			t.Fatalf("token %v out of bounds", tk)
		}
		prevStart = tk.Start
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx := New([]byte("a b"))

	peeked := lx.Peek()
	next := lx.Next()

	if !reflect.DeepEqual(peeked, next) {
		t.Fatalf("peek %v != next %v", peeked, next)
	}

	if lx.Next().Type != token.IDENT {
		t.Fatal("second token lost after peek")
	}
}
