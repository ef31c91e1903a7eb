package bc

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

//
// The builtin function catalogue.  Exact functions work on the
// decimal directly; the transcendental ones go through float64 and
// are checked for a finite result before coming back
//

const float64Epsilon = 0x1p-52

type builtinFunc func(e *Executor, name string, args []decimal.Decimal) (decimal.Decimal, error)

var builtins map[string]builtinFunc

func init() {

	builtins = map[string]builtinFunc{
		"length": builtinLength,
		"scale":  builtinScale,
		"j":      builtinBessel,
		"rand":   builtinRand,
		"srand":  builtinSrand,
		"sqrt":   builtinSqrt,
		"cbrt":   floatUnary(math.Cbrt, checkCube),
		"abs":    exactUnary(decimal.Decimal.Abs),
		"sign":   exactUnary(decimalSign),
		"floor":  exactUnary(decimal.Decimal.Floor),
		"ceil":   exactUnary(decimal.Decimal.Ceil),
		"trunc":  exactUnary(truncate),
		"int":    exactUnary(truncate),
		"round":  builtinRound,
		"sin":    floatUnary(math.Sin, nil),
		"cos":    floatUnary(math.Cos, nil),
		"tan":    floatUnary(math.Tan, nil),
		"asin":   floatUnary(math.Asin, nil),
		"arcsin": floatUnary(math.Asin, nil),
		"acos":   floatUnary(math.Acos, nil),
		"arccos": floatUnary(math.Acos, nil),
		"atan":   floatUnary(math.Atan, nil),
		"arctan": floatUnary(math.Atan, nil),
		"atan2":  floatBinary(math.Atan2),
		"sinh":   floatUnary(math.Sinh, nil),
		"cosh":   floatUnary(math.Cosh, nil),
		"tanh":   floatUnary(math.Tanh, nil),
		"asinh":  floatUnary(math.Asinh, nil),
		"acosh":  floatUnary(math.Acosh, nil),
		"atanh":  floatUnary(math.Atanh, nil),
		"exp":    floatUnary(math.Exp, nil),
		"expm1":  floatUnary(math.Expm1, nil),
		"ln":     floatUnary(math.Log, nil),
		"log":    builtinLog,
		"log10":  floatUnary(math.Log10, checkPowerOf(10)),
		"log2":   floatUnary(math.Log2, checkPowerOf(2)),
		"pow":    builtinPow,
		"hypot":  floatBinary(math.Hypot),
		"min":    builtinMin,
		"max":    builtinMax,
		"pi":     builtinPi,
	}
}

//
// Builtins returns the catalogue names in sorted order
//

func Builtins() []string {

	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func lookupBuiltin(name string) (builtinFunc, bool) {

	fn, ok := builtins[name]

	return fn, ok
}

//
// Float bridge helpers
//

func toFloat(d decimal.Decimal, msg string) (float64, error) {

	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, newError(msg)
	}

	return f, nil
}

func fromFloat(f float64, msg string) (decimal.Decimal, error) {

	if math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero, newError(msg)
	}

	return decimal.NewFromFloat(f), nil
}

//
// A float result that lands a hair off an integer is snapped onto
// it when check confirms the integer is the exact answer
//

type exactCheck func(arg decimal.Decimal, r int64) bool

func snapInteger(arg decimal.Decimal, f float64, check exactCheck) float64 {

	r := math.Round(f)
	if check == nil || math.Abs(f-r) > 1e-9 || math.Abs(r) > 4096 {
		return f
	}

	if check(arg, int64(r)) {
		return r
	}

	return f
}

func checkCube(arg decimal.Decimal, r int64) bool {

	c := decimal.NewFromInt(r)

	return c.Mul(c).Mul(c).Equal(arg)
}

func checkPowerOf(base int64) exactCheck {

	return func(arg decimal.Decimal, r int64) bool {
		p := integerPowerExact(decimal.NewFromInt(base), abs64(r))
		if r < 0 {
			return arg.Mul(p).Equal(decimal.NewFromInt(1))
		}
		return p.Equal(arg)
	}
}

func floatUnary(fn func(float64) float64, check exactCheck) builtinFunc {

	return func(e *Executor, name string, args []decimal.Decimal) (decimal.Decimal, error) {

		if len(args) != 1 {
			return decimal.Zero, newError(EARGS1, name, len(args))
		}

		x, err := toFloat(args[0], sprintfMsg(EARGRANGE, name))
		if err != nil {
			return decimal.Zero, err
		}

		return fromFloat(snapInteger(args[0], fn(x), check), sprintfMsg(EARGRESULT, name))
	}
}

func floatBinary(fn func(float64, float64) float64) builtinFunc {

	return func(e *Executor, name string, args []decimal.Decimal) (decimal.Decimal, error) {

		if len(args) != 2 {
			return decimal.Zero, newError(EARGS2, name, len(args))
		}

		x, err := toFloat(args[0], sprintfMsg(EARGRANGE, name))
		if err != nil {
			return decimal.Zero, err
		}

		y, err := toFloat(args[1], sprintfMsg(EARGRANGE, name))
		if err != nil {
			return decimal.Zero, err
		}

		return fromFloat(fn(x, y), sprintfMsg(EARGRESULT, name))
	}
}

func exactUnary(fn func(decimal.Decimal) decimal.Decimal) builtinFunc {

	return func(e *Executor, name string, args []decimal.Decimal) (decimal.Decimal, error) {

		if len(args) != 1 {
			return decimal.Zero, newError(EARGS1, name, len(args))
		}

		return fn(args[0]), nil
	}
}

func sprintfMsg(f, name string) string {

	return newError(f, name).Msg
}

func truncate(d decimal.Decimal) decimal.Decimal {

	return d.Truncate(0)
}

func decimalSign(d decimal.Decimal) decimal.Decimal {

	return decimal.NewFromInt(int64(d.Sign()))
}

func boolDecimal(b bool) decimal.Decimal {

	if b {
		return decimal.NewFromInt(1)
	}

	return decimal.Zero
}

//
// Number of significant digits
//

func builtinLength(e *Executor, name string, args []decimal.Decimal) (decimal.Decimal, error) {

	if len(args) != 1 {
		return decimal.Zero, newError(EARGS1, name, len(args))
	}

	return decimal.NewFromInt(int64(decimalDigits(args[0]))), nil
}

//
// Number of fractional digits
//

func builtinScale(e *Executor, name string, args []decimal.Decimal) (decimal.Decimal, error) {

	if len(args) != 1 {
		return decimal.Zero, newError(EARGS1, name, len(args))
	}

	return decimal.NewFromInt(decimalScale(args[0])), nil
}

//
// j(n, x): Bessel function of the first kind, integer order n
//

func builtinBessel(e *Executor, name string, args []decimal.Decimal) (decimal.Decimal, error) {

	if len(args) != 2 {
		return decimal.Zero, newError(EARGS2, name, len(args))
	}

	order, err := toFloat(args[0], EBESSELORDERRANGE)
	if err != nil {
		return decimal.Zero, err
	}

	rounded := math.Round(order)
	if math.Abs(order-rounded) > float64Epsilon {
		return decimal.Zero, newError(EBESSELORDER)
	}

	if rounded > math.MaxInt32 || rounded < math.MinInt32 {
		return decimal.Zero, newError(EBESSELORDERRANGE)
	}

	x, err := toFloat(args[1], EBESSELARGRANGE)
	if err != nil {
		return decimal.Zero, err
	}

	return fromFloat(math.Jn(int(rounded), x), EBESSELRESULT)
}

//
// rand() gives 0..32767, rand(n) gives 0..n-1
//

func builtinRand(e *Executor, name string, args []decimal.Decimal) (decimal.Decimal, error) {

	rng := e.rt.rngSource()

	switch len(args) {
	default:
		return decimal.Zero, newError(ERANDARGS, len(args))

	case 0:
		return decimal.NewFromInt(int64(rng.Uint32() & 0x7fff)), nil

	case 1:
		limit := args[0].Floor()
		if limit.Sign() <= 0 {
			return decimal.Zero, newError(ERANDLIMIT)
		}
		if limit.GreaterThan(decimal.NewFromInt(math.MaxUint32)) {
			return decimal.Zero, newError(ERANDRANGE)
		}
		return decimal.NewFromInt(rng.Int63n(limit.IntPart())), nil
	}
}

//
// srand(seed) reseeds the generator and returns the seed
//

func builtinSrand(e *Executor, name string, args []decimal.Decimal) (decimal.Decimal, error) {

	if len(args) != 1 {
		return decimal.Zero, newError(ESRANDARGS)
	}

	seed := args[0].Truncate(0)
	if seed.Sign() < 0 {
		return decimal.Zero, newError(ESRANDNEGATIVE)
	}

	if !seed.BigInt().IsUint64() {
		return decimal.Zero, newError(ESRANDRANGE)
	}

	e.rt.reseedRng(seed.BigInt().Uint64())

	return seed, nil
}

//
// Square root by Newton iteration in decimal, seeded from the float
// estimate, so the result is good to the current scale
//

func builtinSqrt(e *Executor, name string, args []decimal.Decimal) (decimal.Decimal, error) {

	if len(args) != 1 {
		return decimal.Zero, newError(EARGS1, name, len(args))
	}

	x := args[0]

	switch x.Sign() {
	default:
		return decimal.Zero, newError(EARGRESULT, name)

	case 0:
		return decimal.Zero, nil

	case 1:
	}

	f, err := toFloat(x, sprintfMsg(EARGRANGE, name))
	if err != nil {
		return decimal.Zero, err
	}

	places := e.guardPlaces(0)
	two := decimal.NewFromInt(2)

	r, err := fromFloat(math.Sqrt(f), sprintfMsg(EARGRESULT, name))
	if err != nil {
		return decimal.Zero, err
	}

	if r.IsZero() {
		r = decimal.NewFromInt(1)
	}

	for i := 0; i < 64; i++ {
		q, _ := x.QuoRem(r, places)
		next, _ := r.Add(q).QuoRem(two, places)
		if next.Equal(r) {
			break
		}
		r = next
	}

	if c := r.Round(0); c.Mul(c).Equal(x) {
		return c, nil
	}

	return r, nil
}

//
// round(x) rounds half away from zero; round(m, x) rounds x to the
// nearest multiple of m
//

func builtinRound(e *Executor, name string, args []decimal.Decimal) (decimal.Decimal, error) {

	switch len(args) {
	default:
		return decimal.Zero, newError(EROUNDARGS, len(args))

	case 1:
		return args[0].Round(0), nil

	case 2:
		m := args[0]
		if m.IsZero() {
			return decimal.Zero, newError(EROUNDMODULUS)
		}
		q, err := e.divide(args[1], m)
		if err != nil {
			return decimal.Zero, err
		}
		return q.Round(0).Mul(m), nil
	}
}

//
// log(x) is base 10, log(b, x) is base b
//

func builtinLog(e *Executor, name string, args []decimal.Decimal) (decimal.Decimal, error) {

	switch len(args) {
	default:
		return decimal.Zero, newError(ELOGARGS, len(args))

	case 1:
		x, err := toFloat(args[0], ELOGINPUT)
		if err != nil {
			return decimal.Zero, err
		}
		if x <= 0 {
			return decimal.Zero, newError(ELOGINPUT)
		}
		return fromFloat(snapInteger(args[0], math.Log10(x), checkPowerOf(10)), ELOGRESULT)

	case 2:
		b, err := toFloat(args[0], ELOGBASERANGE)
		if err != nil {
			return decimal.Zero, err
		}
		x, err := toFloat(args[1], ELOGARGUMENT)
		if err != nil {
			return decimal.Zero, err
		}
		if x <= 0 {
			return decimal.Zero, newError(ELOGARGUMENT)
		}
		if b <= 0 || math.Abs(b-1) < float64Epsilon {
			return decimal.Zero, newError(ELOGBASE)
		}
		base := args[0]
		check := func(arg decimal.Decimal, r int64) bool {
			p, err := e.power(base, decimal.NewFromInt(r))
			return err == nil && p.Equal(arg)
		}
		return fromFloat(snapInteger(args[1], math.Log(x)/math.Log(b), check), ELOGRESULT)
	}
}

func builtinPow(e *Executor, name string, args []decimal.Decimal) (decimal.Decimal, error) {

	if len(args) != 2 {
		return decimal.Zero, newError(EPOWARGS)
	}

	base, exp := args[0], args[1]

	if exp.IsInteger() {
		if !exp.BigInt().IsInt64() || exp.BigInt().Int64() > math.MaxInt32 || exp.BigInt().Int64() < math.MinInt32 {
			return decimal.Zero, newError(EPOWRANGE)
		}
		if powerTooLarge(base, exp.IntPart()) {
			return decimal.Zero, newError(EPOWRANGE)
		}
		return e.integerPower(base, exp.IntPart())
	}

	b, err := toFloat(base, EPOWBASE)
	if err != nil {
		return decimal.Zero, err
	}

	x, err := toFloat(exp, EPOWRANGE)
	if err != nil {
		return decimal.Zero, err
	}

	return fromFloat(math.Pow(b, x), EPOWRESULT)
}

func builtinMin(e *Executor, name string, args []decimal.Decimal) (decimal.Decimal, error) {

	if len(args) < 2 {
		return decimal.Zero, newError(EMINARGS)
	}

	return decimal.Min(args[0], args[1:]...), nil
}

func builtinMax(e *Executor, name string, args []decimal.Decimal) (decimal.Decimal, error) {

	if len(args) < 2 {
		return decimal.Zero, newError(EMAXARGS)
	}

	return decimal.Max(args[0], args[1:]...), nil
}

//
// pi to 50 places
//

var piDecimal = decimal.RequireFromString("3.14159265358979323846264338327950288419716939937510")

func builtinPi(e *Executor, name string, args []decimal.Decimal) (decimal.Decimal, error) {

	if len(args) != 0 {
		return decimal.Zero, newError(EPIARGS, len(args))
	}

	return piDecimal, nil
}
