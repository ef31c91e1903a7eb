package bc

import (
	"errors"
	"strings"
)

//
// Decide which grammar a whole statement is written in.  Complex is
// tried first, then matrix; each lexer only claims a statement it
// positively recognizes, and hands back the tokens it built so the
// statement is not lexed twice
//

type classified struct {
	kind    statementKind
	complex *complexStatement
	matrix  []matrixToken
}

func (e *Executor) classify(stmt string) (classified, error) {

	scalar := classified{kind: kindScalar}

	if strings.ContainsAny(stmt, "={}") {
		return scalar, nil
	}

	cs, err := scanComplex(stmt)
	if err == nil {
		return classified{kind: kindComplex, complex: cs}, nil
	} else if !errors.Is(err, errNotComplex) {
		return classified{}, err
	}

	if !strings.Contains(stmt, "[") {
		return scalar, nil
	}

	toks, err := e.scanMatrix(stmt)
	if err == nil {
		return classified{kind: kindMatrix, matrix: toks}, nil
	} else if !errors.Is(err, errNotMatrix) {
		return classified{}, err
	}

	return scalar, nil
}
