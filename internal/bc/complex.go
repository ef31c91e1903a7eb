package bc

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

//
// Complex numbers.  Statements like 3+2i, (1+2i)*(3-4i), abs(3+4i)
// and sin(1+i) are recognized ahead of the scalar grammar.  The
// arithmetic is exact decimal; abs and sin go through float64
//

type complexNumber struct {
	re decimal.Decimal
	im decimal.Decimal
}

func realComplex(re decimal.Decimal) complexNumber {

	return complexNumber{re: re, im: decimal.Zero}
}

func (c complexNumber) add(o complexNumber) complexNumber {

	return complexNumber{re: c.re.Add(o.re), im: c.im.Add(o.im)}
}

func (c complexNumber) sub(o complexNumber) complexNumber {

	return complexNumber{re: c.re.Sub(o.re), im: c.im.Sub(o.im)}
}

func (c complexNumber) mul(o complexNumber) complexNumber {

	return complexNumber{
		re: c.re.Mul(o.re).Sub(c.im.Mul(o.im)),
		im: c.re.Mul(o.im).Add(c.im.Mul(o.re)),
	}
}

//
// (a+bi)/(c+di) = ((ac+bd) + (bc-ad)i) / (c²+d²)
//

func (e *Executor) complexDiv(c, o complexNumber) (complexNumber, error) {

	denom := o.re.Mul(o.re).Add(o.im.Mul(o.im))
	if denom.IsZero() {
		return complexNumber{}, newError(ECOMPLEXDIVZERO)
	}

	re, err := e.divide(c.re.Mul(o.re).Add(c.im.Mul(o.im)), denom)
	if err != nil {
		return complexNumber{}, err
	}

	im, err := e.divide(c.im.Mul(o.re).Sub(c.re.Mul(o.im)), denom)
	if err != nil {
		return complexNumber{}, err
	}

	return complexNumber{re: re, im: im}, nil
}

func (c complexNumber) negate() complexNumber {

	return complexNumber{re: c.re.Neg(), im: c.im.Neg()}
}

func (c complexNumber) isZero() bool {

	return c.re.IsZero() && c.im.IsZero()
}

func (c complexNumber) parts(op string) (float64, float64, error) {

	re, err := toFloat(c.re, sprintfMsg2(ECOMPLEXRANGE, op, "real"))
	if err != nil {
		return 0, 0, err
	}

	im, err := toFloat(c.im, sprintfMsg2(ECOMPLEXRANGE, op, "imaginary"))
	if err != nil {
		return 0, 0, err
	}

	return re, im, nil
}

func (c complexNumber) magnitude() (decimal.Decimal, error) {

	re, im, err := c.parts("abs")
	if err != nil {
		return decimal.Zero, err
	}

	return fromFloat(math.Sqrt(re*re+im*im), ECOMPLEXABS)
}

//
// sin(a+bi) = sin(a)cosh(b) + i cos(a)sinh(b)
//

func (c complexNumber) sin(overflow string) (complexNumber, error) {

	re, im, err := c.parts("sin")
	if err != nil {
		return complexNumber{}, err
	}

	sr, err := fromFloat(math.Sin(re)*math.Cosh(im), overflow)
	if err != nil {
		return complexNumber{}, err
	}

	si, err := fromFloat(math.Cos(re)*math.Sinh(im), overflow)
	if err != nil {
		return complexNumber{}, err
	}

	return complexNumber{re: sr, im: si}, nil
}

func sprintfMsg2(f, a, b string) string {

	return newError(f, a, b).Msg
}

//
// Output: a real value prints like any scalar; otherwise "bi",
// "a + bi" or "a - bi"
//

func formatComplex(c complexNumber, scale uint32) string {

	if c.im.IsZero() {
		return formatDecimal(c.re, scale)
	}

	if c.re.IsZero() {
		return formatDecimal(c.im, scale) + "i"
	}

	sign := " + "
	if c.im.Sign() < 0 {
		sign = " - "
	}

	return formatDecimal(c.re, scale) + sign + formatDecimal(c.im.Abs(), scale) + "i"
}

type complexTokenKind int

const (
	ctNumber complexTokenKind = iota
	ctImag
	ctPlus
	ctMinus
	ctStar
	ctSlash
	ctLParen
	ctRParen
)

type complexToken struct {
	kind  complexTokenKind
	value decimal.Decimal
}

type complexWrapper int

const (
	wrapNone complexWrapper = iota
	wrapAbs
	wrapSin
)

//
// A statement the complex lexer accepted, ready to evaluate
//

type complexStatement struct {
	wrap   complexWrapper
	tokens []complexToken
}

//
// Recognize a complex statement.  errNotComplex means the text is
// not in the complex grammar at all; any other error means it is,
// but is malformed
//

func scanComplex(stmt string) (*complexStatement, error) {

	trimmed := strings.TrimSpace(stmt)
	if trimmed == "" || strings.ContainsAny(trimmed, "={}") {
		return nil, errNotComplex
	}

	for _, w := range []struct {
		name string
		kind complexWrapper
	}{{"abs", wrapAbs}, {"sin", wrapSin}} {
		inner, ok, err := stripWrapper(trimmed, w.name)
		if err != nil {
			return nil, err
		}
		if ok {
			toks, err := lexComplex(inner)
			if err != nil {
				return nil, err
			}
			return &complexStatement{wrap: w.kind, tokens: toks}, nil
		}
	}

	toks, err := lexComplex(trimmed)
	if err != nil {
		return nil, err
	}

	return &complexStatement{wrap: wrapNone, tokens: toks}, nil
}

//
// If input is exactly name(...), return what is inside the parens
//

func stripWrapper(input, name string) (string, bool, error) {

	if !strings.HasPrefix(input, name) {
		return "", false, nil
	}

	after := strings.TrimLeft(input[len(name):], " \t\r\n")
	if !strings.HasPrefix(after, "(") {
		return "", false, nil
	}

	closing, err := findMatching(after, 0, '(', ')')
	if err != nil {
		return "", false, err
	}

	if closing+1 != len(after) {
		return "", false, nil
	}

	return strings.TrimSpace(after[1:closing]), true, nil
}

func lexComplex(expr string) ([]complexToken, error) {

	var toks []complexToken

	seenImag := false
	sawNumber := false
	lx := newCharLexer(expr)

	for !lx.done() {
		ch := lx.peekch()

		switch {
		default:
			if ch == '[' || ch == ']' || isAlpha(ch) || ch >= 0x80 {
				return nil, errNotComplex
			}
			if seenImag {
				return nil, newError(ECOMPLEXCHAR)
			}
			return nil, errNotComplex

		case ch == '+':
			lx.getch()
			toks = append(toks, complexToken{kind: ctPlus})

		case ch == '-':
			lx.getch()
			toks = append(toks, complexToken{kind: ctMinus})

		case ch == '*':
			lx.getch()
			toks = append(toks, complexToken{kind: ctStar})

		case ch == '/':
			lx.getch()
			toks = append(toks, complexToken{kind: ctSlash})

		case ch == '(':
			lx.getch()
			toks = append(toks, complexToken{kind: ctLParen})

		case ch == ')':
			lx.getch()
			toks = append(toks, complexToken{kind: ctRParen})

		case ch == 'i':
			if len(toks) == 0 || lx.identContinues(1) {
				return nil, errNotComplex
			}
			lx.getch()
			seenImag = true
			toks = append(toks, complexToken{kind: ctImag})

		case isDigit(rune(ch)) || ch == '.':
			text, ok := lx.scanNumber()
			if !ok {
				return nil, errNotComplex
			}
			d, err := decimal.NewFromString(text)
			if err != nil {
				return nil, newError(ECOMPLEXNUMBER)
			}
			sawNumber = true
			toks = append(toks, complexToken{kind: ctNumber, value: d})
		}

		lx.skipSpace()
	}

	if len(toks) == 0 || !seenImag || !sawNumber {
		return nil, errNotComplex
	}

	return toks, nil
}

//
// Recursive descent over the token list:
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/') unary)*
//	unary   := ('+' | '-') unary | primary
//	primary := number ['i'] | 'i' | '(' expr ')'
//

type complexParser struct {
	e    *Executor
	toks []complexToken
	pos  int
}

func (p *complexParser) peek() (complexToken, bool) {

	if p.pos >= len(p.toks) {
		return complexToken{}, false
	}

	return p.toks[p.pos], true
}

func (p *complexParser) next() (complexToken, bool) {

	t, ok := p.peek()
	if ok {
		p.pos++
	}

	return t, ok
}

func (p *complexParser) parseExpression() (complexNumber, error) {

	v, err := p.parseTerm()
	if err != nil {
		return complexNumber{}, err
	}

	for {
		t, ok := p.peek()
		if !ok || (t.kind != ctPlus && t.kind != ctMinus) {
			return v, nil
		}
		p.pos++
		rhs, err := p.parseTerm()
		if err != nil {
			return complexNumber{}, err
		}
		if t.kind == ctPlus {
			v = v.add(rhs)
		} else {
			v = v.sub(rhs)
		}
	}
}

func (p *complexParser) parseTerm() (complexNumber, error) {

	v, err := p.parseUnary()
	if err != nil {
		return complexNumber{}, err
	}

	for {
		t, ok := p.peek()
		if !ok || (t.kind != ctStar && t.kind != ctSlash) {
			return v, nil
		}
		p.pos++
		rhs, err := p.parseUnary()
		if err != nil {
			return complexNumber{}, err
		}
		if t.kind == ctStar {
			v = v.mul(rhs)
		} else if v, err = p.e.complexDiv(v, rhs); err != nil {
			return complexNumber{}, err
		}
	}
}

func (p *complexParser) parseUnary() (complexNumber, error) {

	if t, ok := p.peek(); ok {
		switch t.kind {
		default:

		case ctPlus:
			p.pos++
			return p.parseUnary()

		case ctMinus:
			p.pos++
			v, err := p.parseUnary()
			if err != nil {
				return complexNumber{}, err
			}
			return v.negate(), nil
		}
	}

	return p.parsePrimary()
}

func (p *complexParser) parsePrimary() (complexNumber, error) {

	t, ok := p.next()
	if !ok {
		return complexNumber{}, newError(ECOMPLEXTOKEN)
	}

	switch t.kind {
	default:
		return complexNumber{}, newError(ECOMPLEXTOKEN)

	case ctNumber:
		if n, ok := p.peek(); ok && n.kind == ctImag {
			p.pos++
			return complexNumber{re: decimal.Zero, im: t.value}, nil
		}
		return realComplex(t.value), nil

	case ctImag:
		return complexNumber{re: decimal.Zero, im: decimal.NewFromInt(1)}, nil

	case ctLParen:
		v, err := p.parseExpression()
		if err != nil {
			return complexNumber{}, err
		}
		if r, ok := p.next(); !ok || r.kind != ctRParen {
			return complexNumber{}, newError(ECOMPLEXPAREN)
		}
		return v, nil
	}
}

func (p *complexParser) expectEnd() error {

	if p.pos != len(p.toks) {
		return newError(ECOMPLEXTRAILING)
	}

	return nil
}

func (e *Executor) parseComplexTokens(toks []complexToken) (complexNumber, error) {

	p := &complexParser{e: e, toks: toks}

	v, err := p.parseExpression()
	if err != nil {
		return complexNumber{}, err
	}

	if err := p.expectEnd(); err != nil {
		return complexNumber{}, err
	}

	return v, nil
}

//
// Parse a complex literal on its own, for matrix cells.  Reports
// false when the text is not complex at all
//

func (e *Executor) complexLiteral(text string) (complexNumber, bool, error) {

	toks, err := lexComplex(strings.TrimSpace(text))
	if errors.Is(err, errNotComplex) {
		return complexNumber{}, false, nil
	} else if err != nil {
		return complexNumber{}, false, err
	}

	v, err := e.parseComplexTokens(toks)
	if err != nil {
		return complexNumber{}, false, err
	}

	return v, true, nil
}

func (e *Executor) evalComplexStatement(cs *complexStatement) (string, error) {

	v, err := e.parseComplexTokens(cs.tokens)
	if err != nil {
		return "", err
	}

	switch cs.wrap {
	default:
		return formatComplex(v, e.rt.scale), nil

	case wrapAbs:
		m, err := v.magnitude()
		if err != nil {
			return "", err
		}
		return formatDecimal(m, e.rt.scale), nil

	case wrapSin:
		s, err := v.sin(ECOMPLEXSIN)
		if err != nil {
			return "", err
		}
		return formatComplex(s, e.rt.scale), nil
	}
}
