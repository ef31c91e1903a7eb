package bc

import (
	"reflect"
	"testing"
)

func TestSplitStatements(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a=1; b=2", []string{"a=1", "b=2"}},
		{"a=1\nb=2\n", []string{"a=1", "b=2"}},
		{";; a ;", []string{"a"}},
		{"for (i=0; i<3; i=i+1) x", []string{"for (i=0; i<3; i=i+1) x"}},
		{"define f() { a; b }; f()", []string{"define f() { a; b }", "f()"}},
		{"[1, 2; 3, 4]", []string{"[1, 2; 3, 4]"}},
		{"", nil},
	}

	for _, tc := range cases {
		if got := splitStatements(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitStatements(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSplitTopLevel(t *testing.T) {
	cases := []struct {
		in    string
		delim byte
		want  []string
	}{
		{"i=0; i<3; i=i+1", ';', []string{"i=0", "i<3", "i=i+1"}},
		{";;", ';', []string{"", ""}},
		{"f(a, b), c", ',', []string{"f(a, b)", "c"}},
		{"[1,2],[3,4]", ',', []string{"[1,2]", "[3,4]"}},
	}

	for _, tc := range cases {
		if got := splitTopLevel(tc.in, tc.delim); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitTopLevel(%q, %q) = %q, want %q", tc.in, tc.delim, got, tc.want)
		}
	}
}

func TestParseBranch(t *testing.T) {
	cases := []struct {
		in        string
		want      []string
		remainder string
	}{
		{"{ a = 1; b = 2 } else c", []string{"a = 1", "b = 2"}, " else c"},
		{"x = 1 else x = 2", []string{"x = 1"}, "else x = 2"},
		{"x = 1; y", []string{"x = 1"}, "y"},
		{"elsewhere = 1", []string{"elsewhere = 1"}, ""},
		{"", nil, ""},
	}

	for _, tc := range cases {
		got, rest, err := parseBranch(tc.in)
		if err != nil {
			t.Fatalf("parseBranch(%q) error: %v", tc.in, err)
		}
		if !reflect.DeepEqual(got, tc.want) || rest != tc.remainder {
			t.Errorf("parseBranch(%q) = %q, %q, want %q, %q", tc.in, got, rest, tc.want, tc.remainder)
		}
	}

	if _, _, err := parseBranch("{ a = 1"); err == nil || err.Error() != EUNMATCHED {
		t.Fatalf("unclosed brace error = %v, want %q", err, EUNMATCHED)
	}
}

func TestDetectAssignment(t *testing.T) {
	cases := []struct {
		in          string
		left, right string
		ok          bool
	}{
		{"x = 1", "x", "1", true},
		{"x=y==2", "x", "y==2", true},
		{"a == b", "", "", false},
		{"a <= b", "", "", false},
		{"a >= b", "", "", false},
		{"a != b", "", "", false},
		{"f(a=1)", "", "", false},
		{"= 3", "", "", false},
		{"x =", "", "", false},
	}

	for _, tc := range cases {
		left, right, ok := detectAssignment(tc.in)
		if left != tc.left || right != tc.right || ok != tc.ok {
			t.Errorf("detectAssignment(%q) = %q, %q, %v, want %q, %q, %v",
				tc.in, left, right, ok, tc.left, tc.right, tc.ok)
		}
	}
}

func TestFindMatching(t *testing.T) {
	end, err := findMatching("(a(b)c)d", 0, '(', ')')
	if err != nil || end != 6 {
		t.Fatalf("findMatching = %d, %v, want 6", end, err)
	}

	if _, err := findMatching("((a)", 0, '(', ')'); err == nil {
		t.Fatalf("findMatching on unbalanced input returned no error")
	}
}

func TestKeywords(t *testing.T) {
	cases := []struct {
		in, kw string
		want   bool
	}{
		{"if (x) y", "if", true},
		{"IF (x) y", "if", true},
		{"  while(1) x", "while", true},
		{"iffy = 2", "if", false},
		{"define_x = 1", "define", false},
		{"return", "return", true},
	}

	for _, tc := range cases {
		if got := startsWithKeyword(tc.in, tc.kw); got != tc.want {
			t.Errorf("startsWithKeyword(%q, %q) = %v, want %v", tc.in, tc.kw, got, tc.want)
		}
	}
}

func TestPreprocessBcSyntax(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"s(1)", "sin(1)"},
		{"c(0) + a(1)", "cos(0) + atan(1)"},
		{"l(2)*e(1)", "ln(2)*exp(1)"},
		{"abs(1)", "abs(1)"},
		{"x + s (1)", "x + s (1)"},
		{"scale(1.5)", "scale(1.5)"},
	}

	for _, tc := range cases {
		if got := preprocessBcSyntax(tc.in); got != tc.want {
			t.Errorf("preprocessBcSyntax(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsValidIdentifier(t *testing.T) {
	for name, want := range map[string]bool{
		"x":      true,
		"_tmp":   true,
		"a1_b2":  true,
		"":       false,
		"1x":     false,
		"a-b":    false,
		"f(x)":   false,
		"héllo":  false,
		"ALLCAP": true,
	} {
		if got := isValidIdentifier(name); got != want {
			t.Errorf("isValidIdentifier(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestQuoteReservedNames(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"x + 1", "x + 1"},
		{"nil", reservedPrefix + "nil"},
		{"map(x) + mapped", reservedPrefix + "map(x) + mapped"},
		{"true && in2", reservedPrefix + "true && in2"},
		{"__dntk_lit0 * count", "__dntk_lit0 * " + reservedPrefix + "count"},
	}

	for _, tc := range cases {
		if got := quoteReservedNames(tc.in); got != tc.want {
			t.Errorf("quoteReservedNames(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
