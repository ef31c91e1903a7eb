package bc

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		stmt string
		want statementKind
	}{
		{"1+2", kindScalar},
		{"x = 2i", kindScalar},
		{"define f() { return 1 }", kindScalar},
		{"sin(1)", kindScalar},
		{"if (1) 2", kindScalar},
		{"3+2i", kindComplex},
		{"abs(3+4i)", kindComplex},
		{"sin(1+1i)", kindComplex},
		{"[[1,2],[3,4]]", kindMatrix},
		{"2*[[1]]", kindMatrix},
		{"sin([[1]])", kindMatrix},
		{"x[1]", kindScalar},
	}

	e := New(DefaultScale)

	for _, tc := range cases {
		t.Run(tc.stmt, func(t *testing.T) {
			c, err := e.classify(tc.stmt)
			if err != nil {
				t.Fatalf("classify(%q) error: %v", tc.stmt, err)
			}
			if c.kind != tc.want {
				t.Fatalf("classify(%q) = %s, want %s", tc.stmt, c.kind, tc.want)
			}
		})
	}
}

func TestClassifyCarriesTokens(t *testing.T) {
	e := New(DefaultScale)

	c, err := e.classify("1+2i")
	if err != nil || c.complex == nil || len(c.complex.tokens) != 4 {
		t.Fatalf("complex tokens not handed back: %+v, %v", c, err)
	}

	c, err = e.classify("[[1]] + [[2]]")
	if err != nil || len(c.matrix) != 3 {
		t.Fatalf("matrix tokens not handed back: %+v, %v", c, err)
	}
}

func TestClassifyMalformed(t *testing.T) {
	e := New(DefaultScale)

	if _, err := e.classify("2i % 3"); err == nil || err.Error() != ECOMPLEXCHAR {
		t.Fatalf("classify(2i %% 3) error = %v, want %q", err, ECOMPLEXCHAR)
	}

	if _, err := e.classify("[[1],[2,3]]"); err == nil || err.Error() != EMATRIXRAGGED {
		t.Fatalf("classify ragged error = %v, want %q", err, EMATRIXRAGGED)
	}
}

func TestStatementKindString(t *testing.T) {
	for k, want := range map[statementKind]string{
		kindScalar:  "scalar",
		kindComplex: "complex",
		kindMatrix:  "matrix",
	} {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}
