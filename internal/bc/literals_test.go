package bc

import (
	"testing"
)

func TestSubstitute(t *testing.T) {
	cases := []struct {
		in   string
		want string
		vals []string
	}{
		{"12.5 + x", "__dntk_lit0 + x", []string{"12.5"}},
		{"x2 + 3", "x2 + __dntk_lit0", []string{"3"}},
		{"-2 * 3", "__dntk_lit0 * __dntk_lit1", []string{"-2", "3"}},
		{"4 - 1", "__dntk_lit0 - __dntk_lit1", []string{"4", "1"}},
		{"2*-3", "__dntk_lit0*__dntk_lit1", []string{"2", "-3"}},
		{"f(x) -1", "f(x) -__dntk_lit0", []string{"1"}},
		{".5", "__dntk_lit0", []string{"0.5"}},
		{"1e3", "__dntk_lit0", []string{"1000"}},
		{"1e", "1e", nil},
		{"abc", "abc", nil},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			lt := NewLiteralTable()
			got, err := lt.Substitute(tc.in)
			if err != nil {
				t.Fatalf("Substitute(%q) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("Substitute(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if lt.Len() != len(tc.vals) {
				t.Fatalf("Substitute(%q) stored %d literals, want %d", tc.in, lt.Len(), len(tc.vals))
			}
			for i, want := range tc.vals {
				name := literalPrefix + string(rune('0'+i))
				v, ok := lt.Get(name)
				if !ok {
					t.Fatalf("literal %s missing", name)
				}
				if v.String() != want {
					t.Fatalf("literal %s = %s, want %s", name, v.String(), want)
				}
			}
		})
	}
}

func TestSubstituteKeepsPrecision(t *testing.T) {
	lt := NewLiteralTable()

	if _, err := lt.Substitute("0.12345678901234567890123456789"); err != nil {
		t.Fatalf("Substitute error: %v", err)
	}

	v, ok := lt.Get(literalPrefix + "0")
	if !ok || v.String() != "0.12345678901234567890123456789" {
		t.Fatalf("literal lost precision: %v", v)
	}
}

func TestLiteralTableReset(t *testing.T) {
	lt := NewLiteralTable()

	if _, err := lt.Substitute("1 + 2"); err != nil {
		t.Fatalf("Substitute error: %v", err)
	}

	lt.Reset()

	if lt.Len() != 0 {
		t.Fatalf("Len() after Reset = %d", lt.Len())
	}

	got, _ := lt.Substitute("7")
	if got != literalPrefix+"0" {
		t.Fatalf("names not restarted after Reset: %q", got)
	}
}

func TestNestedEvaluationKeepsLiterals(t *testing.T) {
	e := New(DefaultScale)

	mustExec(t, e, "define f(x) { return x + 100 }")
	wantExec(t, e, "1.5 + f(2.25) + 3.125", "106.87500000000000000000")
}
