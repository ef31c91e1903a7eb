package bc

import (
	"errors"
	"strings"
	"testing"
)

func TestMatrixExec(t *testing.T) {
	cases := []struct {
		stmt string
		want string
	}{
		{"[[1,2],[3,4]]+[[5,6],[7,8]]", "[[6, 8]; [10, 12]]"},
		{"[[5,5],[5,5]]-[[1,2],[3,4]]", "[[4, 3]; [2, 1]]"},
		{"[[1,2],[3,4]]*[[5,6],[7,8]]", "[[19, 22]; [43, 50]]"},
		{"2*[[1,2],[3,4]]", "[[2, 4]; [6, 8]]"},
		{"[[1,2],[3,4]]*2", "[[2, 4]; [6, 8]]"},
		{"[[2,4],[6,8]]/2", "[[1, 2]; [3, 4]]"},
		{"-[[1,2],[3,4]]", "[[-1, -2]; [-3, -4]]"},
		{"[[1,2],[3,4]]", "[[1, 2]; [3, 4]]"},
		{"[1, 2; 3, 4]", "[[1, 2]; [3, 4]]"},
		{"[[1, 2]; [3, 4]]", "[[1, 2]; [3, 4]]"},
		{"[[1+1i, 2]] * 2", "[[2 + 2i, 4]]"},
		{"[[1,2,3]]*[[1],[2],[3]]", "[[14]]"},
		{"([[1,0],[0,1]] + [[1,1],[1,1]]) * 3", "[[6, 3]; [3, 6]]"},
	}

	for _, tc := range cases {
		t.Run(tc.stmt, func(t *testing.T) {
			wantExec(t, New(DefaultScale), tc.stmt, tc.want)
		})
	}
}

func TestMatrixSin(t *testing.T) {
	e := New(DefaultScale)

	var cells []string
	for _, x := range []string{"1", "2", "3", "4"} {
		cells = append(cells, mustExec(t, e, "sin("+x+")"))
	}

	want := "[[" + cells[0] + ", " + cells[1] + "]; [" + cells[2] + ", " + cells[3] + "]]"
	wantExec(t, e, "sin([[1,2],[3,4]])", want)
}

func TestMatrixCellExpressions(t *testing.T) {
	e := New(DefaultScale)

	mustExec(t, e, "k = 3")
	wantExec(t, e, "[[k, k*2]] + [[1, 1]]", "[[4, 7]]")
}

func TestMatrixExecErrors(t *testing.T) {
	cases := []struct {
		stmt string
		want string
	}{
		{"[[1,2],[3,4]]+[[1,2]]", "matrix dimensions must match for addition"},
		{"[[1,2],[3,4]]-[[1,2]]", "matrix dimensions must match for subtraction"},
		{"[[1,2]]*[[1,2]]", EMATRIXMULSHAPE},
		{"[[1,2],[3]]", EMATRIXRAGGED},
		{"[[1,2],3]", EMATRIXROW},
		{"[[1,],[3,4]]", EMATRIXCELL},
		{"[[1,2,]]", EMATRIXCELL},
		{"[[1,,2]]", EMATRIXCELL},
		{"[1,2;]", EMATRIXCELL},
		{"[1,;3,4]", EMATRIXCELL},
		{"[[1,2],]", EMATRIXCELL},
		{"[[]]", EMATRIXEMPTY},
		{"[[1,2]]+2", EMATRIXADD},
		{"2-[[1,2]]", EMATRIXSUB},
		{"2/[[1,2]]", EMATRIXDIVISOR},
		{"[[1,2]]/0", EMATRIXDIVZERO},
		{"[[1,2]] % 2", EMATRIXCHAR},
		{"([[1,2]]", ECOMPLEXPAREN},
		{"[[1,2]] [[3,4]]", ECOMPLEXTRAILING},
		{"[[1,2]", EUNMATCHED},
	}

	for _, tc := range cases {
		t.Run(tc.stmt, func(t *testing.T) {
			wantExecError(t, New(DefaultScale), tc.stmt, tc.want)
		})
	}
}

func TestScanMatrixRejects(t *testing.T) {
	e := New(DefaultScale)

	for _, stmt := range []string{"1+2", "x[1]", "a = [[1]]", "cos([[1]])"} {
		t.Run(stmt, func(t *testing.T) {
			if _, err := e.scanMatrix(stmt); !errors.Is(err, errNotMatrix) {
				t.Fatalf("scanMatrix(%q) error = %v, want errNotMatrix", stmt, err)
			}
		})
	}
}

func TestFormatMatrixScale(t *testing.T) {
	e := New(2)

	got := mustExec(t, e, "[[1,2]]/4")
	if got != "[[.25, .50]]" {
		t.Fatalf("[[1,2]]/4 = %q", got)
	}

	if !strings.HasPrefix(formatMatrix(matrix{{realComplex(piDecimal)}}, 3), "[[3.141") {
		t.Fatalf("formatMatrix did not truncate to scale")
	}
}
