package bc

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/parser"
	"github.com/goforj/godump"
	"github.com/shopspring/decimal"
)

//
// Evaluate one expression.  expr-lang parses the text into an AST
// and we walk that tree ourselves, doing every arithmetic step in
// decimal.  The numeric literals were swapped for identifiers before
// parsing, so no value ever passes through a float64 on its way in
//

func (e *Executor) evalExpression(expr string) (decimal.Decimal, error) {

	trimmed := strings.TrimSpace(expr)

	if d, err := decimal.NewFromString(trimmed); err == nil {
		return d, nil
	}

	//
	// A user function call evaluates more expressions while this one
	// is still in flight, so each evaluation gets its own table
	//

	saved := e.literals
	e.literals = NewLiteralTable()
	defer func() { e.literals = saved }()

	processed := preprocessBcSyntax(trimmed)

	substituted, err := e.literals.Substitute(processed)
	if err != nil {
		return decimal.Zero, err
	}

	tree, err := parser.Parse(quoteReservedNames(substituted))
	if err != nil {
		return decimal.Zero, parseError(err)
	}

	if e.trace.Dump {
		godump.Fdump(e.traceOut, tree.Node)
	}

	return e.evalNode(tree.Node)
}

//
// Strip the source snippet expr-lang attaches, keeping the message
//

func parseError(err error) error {

	var fe *file.Error

	if errors.As(err, &fe) {
		return newError(fe.Message)
	}

	return newError(err.Error())
}

func (e *Executor) evalNode(node ast.Node) (decimal.Decimal, error) {

	switch n := node.(type) {
	default:
		return decimal.Zero, newError(EUNSUPPORTEDNODE, strings.TrimPrefix(fmt.Sprintf("%T", node), "*ast."))

	case *ast.IntegerNode:
		return decimal.NewFromInt(int64(n.Value)), nil

	case *ast.FloatNode:
		return fromFloat(n.Value, ECONSTANT)

	case *ast.IdentifierNode:
		return e.resolveName(n.Value, nil)

	case *ast.UnaryNode:
		return e.evalUnary(n)

	case *ast.BinaryNode:
		return e.evalBinary(n)

	case *ast.ConditionalNode:
		cond, err := e.evalNode(n.Cond)
		if err != nil {
			return decimal.Zero, err
		}
		if !cond.IsZero() {
			return e.evalNode(n.Exp1)
		}
		return e.evalNode(n.Exp2)

	case *ast.CallNode:
		callee, ok := n.Callee.(*ast.IdentifierNode)
		if !ok {
			return decimal.Zero, newError(EUNSUPPORTEDNODE, "call")
		}
		return e.evalCall(callee.Value, n.Arguments)

	case *ast.BuiltinNode:
		return e.evalCall(n.Name, n.Arguments)
	}
}

func (e *Executor) evalCall(name string, argNodes []ast.Node) (decimal.Decimal, error) {

	args := make([]decimal.Decimal, 0, len(argNodes))

	for _, an := range argNodes {
		v, err := e.evalNode(an)
		if err != nil {
			return decimal.Zero, err
		}
		args = append(args, v)
	}

	return e.resolveName(name, args)
}

//
// Names resolve as: literal, then variable (bare names only), then
// builtin, then user function
//

func (e *Executor) resolveName(name string, args []decimal.Decimal) (decimal.Decimal, error) {

	name = strings.TrimPrefix(name, reservedPrefix)

	if len(args) == 0 {
		if v, ok := e.literals.Get(name); ok {
			return v, nil
		}
		if v, ok := e.rt.getVariable(name); ok {
			return v, nil
		}
	}

	if fn, ok := lookupBuiltin(name); ok {
		return fn(e, name, args)
	}

	if fn := e.rt.functionLookup(name); fn != nil {
		return e.callFunction(fn, args)
	}

	return decimal.Zero, newError(EUNDEFINED, name)
}

func (e *Executor) evalUnary(n *ast.UnaryNode) (decimal.Decimal, error) {

	v, err := e.evalNode(n.Node)
	if err != nil {
		return decimal.Zero, err
	}

	switch n.Operator {
	default:
		return decimal.Zero, newError(EUNSUPPORTEDOP, n.Operator)

	case "-":
		return v.Neg(), nil

	case "+":
		return v, nil

	case "!":
		return boolDecimal(v.IsZero()), nil
	}
}

func (e *Executor) evalBinary(n *ast.BinaryNode) (decimal.Decimal, error) {

	l, err := e.evalNode(n.Left)
	if err != nil {
		return decimal.Zero, err
	}

	//
	// The logical operators short-circuit, so the right side is only
	// evaluated when it decides the outcome
	//

	switch n.Operator {
	case "&&":
		if l.IsZero() {
			return decimal.Zero, nil
		}
		return e.evalTruth(n.Right)

	case "||":
		if !l.IsZero() {
			return decimal.NewFromInt(1), nil
		}
		return e.evalTruth(n.Right)
	}

	r, err := e.evalNode(n.Right)
	if err != nil {
		return decimal.Zero, err
	}

	switch n.Operator {
	default:
		return decimal.Zero, newError(EUNSUPPORTEDOP, n.Operator)

	case "+":
		return l.Add(r), nil

	case "-":
		return l.Sub(r), nil

	case "*":
		return l.Mul(r), nil

	case "/":
		return e.divide(l, r)

	case "%":
		if r.IsZero() {
			return decimal.Zero, newError(EMODULOBYZERO)
		}
		return l.Mod(r), nil

	case "^", "**":
		return e.power(l, r)

	case "==":
		return boolDecimal(l.Equal(r)), nil

	case "!=":
		return boolDecimal(!l.Equal(r)), nil

	case "<":
		return boolDecimal(l.LessThan(r)), nil

	case "<=":
		return boolDecimal(l.LessThanOrEqual(r)), nil

	case ">":
		return boolDecimal(l.GreaterThan(r)), nil

	case ">=":
		return boolDecimal(l.GreaterThanOrEqual(r)), nil
	}
}

func (e *Executor) evalTruth(node ast.Node) (decimal.Decimal, error) {

	v, err := e.evalNode(node)
	if err != nil {
		return decimal.Zero, err
	}

	return boolDecimal(!v.IsZero()), nil
}

//
// Quotient truncated to enough fractional digits that the scale
// digits printed, and a few guard digits past them, are exact
//

func (e *Executor) divide(l, r decimal.Decimal) (decimal.Decimal, error) {

	if r.IsZero() {
		return decimal.Zero, newError(EDIVISIONBYZERO)
	}

	q, _ := l.QuoRem(r, e.divisionPlaces(l, r))

	return q, nil
}

func (e *Executor) divisionPlaces(l, r decimal.Decimal) int32 {

	digits := max(integerDigits(l), integerDigits(r))

	return e.guardPlaces(int64(2 * digits))
}

//
// Fractional digits to carry: scale, extra and the padding, capped
// to what decimal can take
//

func (e *Executor) guardPlaces(extra int64) int32 {

	return int32(min(int64(e.rt.scale)+extra+precisionPadding, math.MaxInt32))
}

func integerDigits(d decimal.Decimal) int {

	return decimalDigits(d.Truncate(0))
}

//
// Integer exponents are exact; anything else goes through math.Pow
//

func (e *Executor) power(base, exp decimal.Decimal) (decimal.Decimal, error) {

	if exp.IsInteger() {
		bi := exp.BigInt()
		if !bi.IsInt64() || bi.Int64() > math.MaxInt32 || bi.Int64() < math.MinInt32 {
			return decimal.Zero, newError(EEXPONENTRANGE)
		}
		if powerTooLarge(base, bi.Int64()) {
			return decimal.Zero, newError(EEXPONENTRANGE)
		}
		return e.integerPower(base, bi.Int64())
	}

	b, err := toFloat(base, EEXPONENTBASE)
	if err != nil {
		return decimal.Zero, err
	}

	x, err := toFloat(exp, EEXPONENTPOWER)
	if err != nil {
		return decimal.Zero, err
	}

	return fromFloat(math.Pow(b, x), EEXPONENTRESULT)
}

func (e *Executor) integerPower(base decimal.Decimal, n int64) (decimal.Decimal, error) {

	p := integerPowerExact(base, abs64(n))
	if n >= 0 {
		return p, nil
	}

	return e.divide(decimal.NewFromInt(1), p)
}

//
// Estimate the digits of base^n from the bit length of the base's
// coefficient.  0, 1 and -1 stay small at any n
//

func powerTooLarge(base decimal.Decimal, n int64) bool {

	coef := new(big.Int).Abs(base.Coefficient())
	if coef.BitLen() <= 1 {
		return false
	}

	digits := float64(abs64(n)) * float64(coef.BitLen()) * math.Log10(2)

	return digits > maxPowerDigits
}

//
// Exponentiation by squaring, n >= 0
//

func integerPowerExact(base decimal.Decimal, n int64) decimal.Decimal {

	result := decimal.NewFromInt(1)

	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base)
		}
	}

	return result
}

func abs64(n int64) int64 {

	if n < 0 {
		return -n
	}

	return n
}
