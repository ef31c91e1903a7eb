package bc

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

//
// Matrices.  A literal is [[a, b], [c, d]] or the row form
// [a, b; c, d]; every cell is a complex number, so a real matrix is
// just one whose cells have no imaginary part
//

type matrix [][]complexNumber

func (m matrix) rows() int {

	return len(m)
}

func (m matrix) cols() int {

	if len(m) == 0 {
		return 0
	}

	return len(m[0])
}

func (m matrix) sameShape(o matrix) bool {

	return m.rows() == o.rows() && m.cols() == o.cols()
}

func (m matrix) mapCells(fn func(complexNumber) (complexNumber, error)) (matrix, error) {

	out := make(matrix, len(m))

	for i, row := range m {
		out[i] = make([]complexNumber, len(row))
		for j, c := range row {
			v, err := fn(c)
			if err != nil {
				return nil, err
			}
			out[i][j] = v
		}
	}

	return out, nil
}

func (m matrix) scale(s complexNumber) matrix {

	out, _ := m.mapCells(func(c complexNumber) (complexNumber, error) {
		return c.mul(s), nil
	})

	return out
}

func matrixElementwise(a, b matrix, op string, fn func(x, y complexNumber) complexNumber) (matrix, error) {

	if !a.sameShape(b) {
		return nil, newError(EMATRIXSHAPE, op)
	}

	out := make(matrix, len(a))
	for i := range a {
		out[i] = make([]complexNumber, len(a[i]))
		for j := range a[i] {
			out[i][j] = fn(a[i][j], b[i][j])
		}
	}

	return out, nil
}

func matrixMul(a, b matrix) (matrix, error) {

	if a.cols() != b.rows() {
		return nil, newError(EMATRIXMULSHAPE)
	}

	out := make(matrix, a.rows())
	for i := range out {
		out[i] = make([]complexNumber, b.cols())
		for j := range out[i] {
			sum := realComplex(decimal.Zero)
			for k := 0; k < a.cols(); k++ {
				sum = sum.add(a[i][k].mul(b[k][j]))
			}
			out[i][j] = sum
		}
	}

	return out, nil
}

func formatMatrix(m matrix, scale uint32) string {

	rows := make([]string, 0, len(m))

	for _, row := range m {
		cells := make([]string, 0, len(row))
		for _, c := range row {
			cells = append(cells, formatComplex(c, scale))
		}
		rows = append(rows, "["+strings.Join(cells, ", ")+"]")
	}

	return "[" + strings.Join(rows, "; ") + "]"
}

//
// A matrix expression value is either a matrix or a scalar operand
//

type matrixValue struct {
	isMatrix bool
	m        matrix
	s        complexNumber
}

func matrixOf(m matrix) matrixValue {

	return matrixValue{isMatrix: true, m: m}
}

func scalarOf(s complexNumber) matrixValue {

	return matrixValue{s: s}
}

func (e *Executor) matrixAdd(a, b matrixValue) (matrixValue, error) {

	switch {
	default:
		return matrixValue{}, newError(EMATRIXADD)

	case a.isMatrix && b.isMatrix:
		m, err := matrixElementwise(a.m, b.m, "addition", complexNumber.add)
		return matrixOf(m), err

	case !a.isMatrix && !b.isMatrix:
		return scalarOf(a.s.add(b.s)), nil
	}
}

func (e *Executor) matrixSub(a, b matrixValue) (matrixValue, error) {

	switch {
	default:
		return matrixValue{}, newError(EMATRIXSUB)

	case a.isMatrix && b.isMatrix:
		m, err := matrixElementwise(a.m, b.m, "subtraction", complexNumber.sub)
		return matrixOf(m), err

	case !a.isMatrix && !b.isMatrix:
		return scalarOf(a.s.sub(b.s)), nil
	}
}

func (e *Executor) matrixProduct(a, b matrixValue) (matrixValue, error) {

	switch {
	default:
		return scalarOf(a.s.mul(b.s)), nil

	case a.isMatrix && b.isMatrix:
		m, err := matrixMul(a.m, b.m)
		return matrixOf(m), err

	case a.isMatrix:
		return matrixOf(a.m.scale(b.s)), nil

	case b.isMatrix:
		return matrixOf(b.m.scale(a.s)), nil
	}
}

func (e *Executor) matrixQuotient(a, b matrixValue) (matrixValue, error) {

	switch {
	default:
		return matrixValue{}, newError(EMATRIXDIVISOR)

	case a.isMatrix && !b.isMatrix:
		if b.s.isZero() {
			return matrixValue{}, newError(EMATRIXDIVZERO)
		}
		m, err := a.m.mapCells(func(c complexNumber) (complexNumber, error) {
			return e.complexDiv(c, b.s)
		})
		return matrixOf(m), err

	case !a.isMatrix && !b.isMatrix:
		q, err := e.complexDiv(a.s, b.s)
		return scalarOf(q), err
	}
}

func (e *Executor) matrixNegate(a matrixValue) matrixValue {

	if a.isMatrix {
		return matrixOf(a.m.scale(realComplex(decimal.NewFromInt(-1))))
	}

	return scalarOf(a.s.negate())
}

func (e *Executor) matrixSin(a matrixValue) (matrixValue, error) {

	sin := func(c complexNumber) (complexNumber, error) {
		return c.sin(EMATRIXSIN)
	}

	if a.isMatrix {
		m, err := a.m.mapCells(sin)
		return matrixOf(m), err
	}

	s, err := sin(a.s)

	return scalarOf(s), err
}

type matrixTokenKind int

const (
	mtMatrix matrixTokenKind = iota
	mtScalar
	mtSin
	mtPlus
	mtMinus
	mtStar
	mtSlash
	mtLParen
	mtRParen
)

type matrixToken struct {
	kind   matrixTokenKind
	matrix matrix
	scalar complexNumber
}

//
// Tokenize a statement as a matrix expression.  Literals are parsed
// into cells as they are met.  errNotMatrix means the statement
// never used a matrix literal, or used something outside the grammar
// before one was seen
//

func (e *Executor) scanMatrix(stmt string) ([]matrixToken, error) {

	var toks []matrixToken

	trimmed := strings.TrimSpace(stmt)
	if trimmed == "" || strings.ContainsAny(trimmed, "={}") {
		return nil, errNotMatrix
	}

	seenMatrix := false
	lx := newCharLexer(trimmed)

	for !lx.done() {
		ch := lx.peekch()

		switch {
		default:
			if seenMatrix {
				return nil, newError(EMATRIXCHAR)
			}
			return nil, errNotMatrix

		case ch == '[':
			end, err := findMatching(lx.rest(), 0, '[', ']')
			if err != nil {
				return nil, err
			}
			m, err := e.parseMatrixLiteral(lx.rest()[:end+1])
			if err != nil {
				return nil, err
			}
			lx.idx += end + 1
			seenMatrix = true
			toks = append(toks, matrixToken{kind: mtMatrix, matrix: m})

		case ch == '+':
			lx.getch()
			toks = append(toks, matrixToken{kind: mtPlus})

		case ch == '-':
			lx.getch()
			toks = append(toks, matrixToken{kind: mtMinus})

		case ch == '*':
			lx.getch()
			toks = append(toks, matrixToken{kind: mtStar})

		case ch == '/':
			lx.getch()
			toks = append(toks, matrixToken{kind: mtSlash})

		case ch == '(':
			lx.getch()
			toks = append(toks, matrixToken{kind: mtLParen})

		case ch == ')':
			lx.getch()
			toks = append(toks, matrixToken{kind: mtRParen})

		case isDigit(rune(ch)) || ch == '.':
			text, ok := lx.scanNumber()
			if !ok {
				return nil, errNotMatrix
			}
			d, err := decimal.NewFromString(text)
			if err != nil {
				return nil, newError(EMATRIXNUMBER)
			}
			s := realComplex(d)
			if lx.peekch() == 'i' {
				if lx.identContinues(1) {
					return nil, errNotMatrix
				}
				lx.getch()
				s = complexNumber{re: decimal.Zero, im: d}
			}
			toks = append(toks, matrixToken{kind: mtScalar, scalar: s})

		case isAlpha(ch):
			start := lx.idx
			for isAlpha(lx.peekch()) {
				lx.getch()
			}
			if lx.buf[start:lx.idx] != "sin" {
				return nil, errNotMatrix
			}
			toks = append(toks, matrixToken{kind: mtSin})
		}

		lx.skipSpace()
	}

	if !seenMatrix {
		return nil, errNotMatrix
	}

	return toks, nil
}

//
// Parse one bracketed literal, including its outer brackets
//

func (e *Executor) parseMatrixLiteral(lit string) (matrix, error) {

	inner := strings.TrimSpace(lit[1 : len(lit)-1])

	var rowTexts []string

	if strings.HasPrefix(inner, "[") {
		parts := splitCells(inner, ',')
		if len(parts) == 1 {
			parts = splitCells(inner, ';')
		}
		for _, r := range parts {
			if r == "" {
				return nil, newError(EMATRIXCELL)
			}
			if !strings.HasPrefix(r, "[") || !strings.HasSuffix(r, "]") {
				return nil, newError(EMATRIXROW)
			}
			rowTexts = append(rowTexts, r[1:len(r)-1])
		}
	} else {
		rowTexts = splitCells(inner, ';')
	}

	var m matrix

	for _, rt := range rowTexts {
		cells := splitCells(rt, ',')
		if len(cells) == 0 {
			if len(rowTexts) > 1 {
				return nil, newError(EMATRIXCELL)
			}
			return nil, newError(EMATRIXEMPTY)
		}
		row := make([]complexNumber, 0, len(cells))
		for _, cell := range cells {
			c, err := e.matrixCell(cell)
			if err != nil {
				return nil, err
			}
			row = append(row, c)
		}
		if len(m) > 0 && len(row) != len(m[0]) {
			return nil, newError(EMATRIXRAGGED)
		}
		m = append(m, row)
	}

	if m.rows() == 0 || m.cols() == 0 {
		return nil, newError(EMATRIXEMPTY)
	}

	return m, nil
}

//
// Like splitTopLevel, but a trailing delimiter leaves an empty last
// part, so "1,2," has three cells and the last one is empty
//

func splitCells(input string, delim byte) []string {

	parts := splitTopLevel(input, delim)

	if trimmed := strings.TrimSpace(input); trimmed != "" && trimmed[len(trimmed)-1] == delim {
		parts = append(parts, "")
	}

	return parts
}

//
// A cell is a complex literal, or else any scalar expression
//

func (e *Executor) matrixCell(text string) (complexNumber, error) {

	text = strings.TrimSpace(text)
	if text == "" {
		return complexNumber{}, newError(EMATRIXCELL)
	}

	if c, ok, err := e.complexLiteral(text); err != nil {
		return complexNumber{}, err
	} else if ok {
		return c, nil
	}

	d, err := e.evalExpression(text)
	if errors.Is(err, ErrNoResult) {
		return complexNumber{}, newError(EMATRIXNORESULT)
	} else if err != nil {
		return complexNumber{}, err
	}

	return realComplex(d), nil
}

//
// Recursive descent, the same shape as the complex grammar with a
// sin(...) form added at the unary level
//

type matrixParser struct {
	e    *Executor
	toks []matrixToken
	pos  int
}

func (p *matrixParser) peek() (matrixToken, bool) {

	if p.pos >= len(p.toks) {
		return matrixToken{}, false
	}

	return p.toks[p.pos], true
}

func (p *matrixParser) next() (matrixToken, bool) {

	t, ok := p.peek()
	if ok {
		p.pos++
	}

	return t, ok
}

func (p *matrixParser) parseExpression() (matrixValue, error) {

	v, err := p.parseTerm()
	if err != nil {
		return matrixValue{}, err
	}

	for {
		t, ok := p.peek()
		if !ok || (t.kind != mtPlus && t.kind != mtMinus) {
			return v, nil
		}
		p.pos++
		rhs, err := p.parseTerm()
		if err != nil {
			return matrixValue{}, err
		}
		if t.kind == mtPlus {
			v, err = p.e.matrixAdd(v, rhs)
		} else {
			v, err = p.e.matrixSub(v, rhs)
		}
		if err != nil {
			return matrixValue{}, err
		}
	}
}

func (p *matrixParser) parseTerm() (matrixValue, error) {

	v, err := p.parseUnary()
	if err != nil {
		return matrixValue{}, err
	}

	for {
		t, ok := p.peek()
		if !ok || (t.kind != mtStar && t.kind != mtSlash) {
			return v, nil
		}
		p.pos++
		rhs, err := p.parseUnary()
		if err != nil {
			return matrixValue{}, err
		}
		if t.kind == mtStar {
			v, err = p.e.matrixProduct(v, rhs)
		} else {
			v, err = p.e.matrixQuotient(v, rhs)
		}
		if err != nil {
			return matrixValue{}, err
		}
	}
}

func (p *matrixParser) parseUnary() (matrixValue, error) {

	t, ok := p.peek()
	if !ok {
		return p.parsePrimary()
	}

	switch t.kind {
	default:
		return p.parsePrimary()

	case mtPlus:
		p.pos++
		return p.parseUnary()

	case mtMinus:
		p.pos++
		v, err := p.parseUnary()
		if err != nil {
			return matrixValue{}, err
		}
		return p.e.matrixNegate(v), nil

	case mtSin:
		p.pos++
		if l, ok := p.next(); !ok || l.kind != mtLParen {
			return matrixValue{}, newError(EMATRIXFUNCPAREN)
		}
		v, err := p.parseExpression()
		if err != nil {
			return matrixValue{}, err
		}
		if r, ok := p.next(); !ok || r.kind != mtRParen {
			return matrixValue{}, newError(ECOMPLEXPAREN)
		}
		return p.e.matrixSin(v)
	}
}

func (p *matrixParser) parsePrimary() (matrixValue, error) {

	t, ok := p.next()
	if !ok {
		return matrixValue{}, newError(EMATRIXTOKEN)
	}

	switch t.kind {
	default:
		return matrixValue{}, newError(EMATRIXTOKEN)

	case mtMatrix:
		return matrixOf(t.matrix), nil

	case mtScalar:
		return scalarOf(t.scalar), nil

	case mtLParen:
		v, err := p.parseExpression()
		if err != nil {
			return matrixValue{}, err
		}
		if r, ok := p.next(); !ok || r.kind != mtRParen {
			return matrixValue{}, newError(ECOMPLEXPAREN)
		}
		return v, nil
	}
}

func (e *Executor) evalMatrixTokens(toks []matrixToken) (string, error) {

	p := &matrixParser{e: e, toks: toks}

	v, err := p.parseExpression()
	if err != nil {
		return "", err
	}

	if p.pos != len(p.toks) {
		return "", newError(ECOMPLEXTRAILING)
	}

	if !v.isMatrix {
		return "", newError(EMATRIXSCALAR)
	}

	return formatMatrix(v.m, e.rt.scale), nil
}
