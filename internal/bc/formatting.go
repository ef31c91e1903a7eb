package bc

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

//
// Format a scalar result for output, honoring the current scale
// and obase
//

func (e *Executor) FormatResult(d decimal.Decimal) string {

	if e.rt.obase != defaultObase {
		return formatObase(d, e.rt.obase, e.rt.scale)
	}

	return formatDecimal(d, e.rt.scale)
}

//
// Truncate (never round) to scale fractional digits
//

func TruncateToScale(d decimal.Decimal, scale uint32) decimal.Decimal {

	return d.Truncate(int32(min(scale, bcScaleMax)))
}

//
// Base 10 output, bc style.  Integral values print without a
// fraction.  Anything else prints exactly scale fractional digits
// and drops the leading zero, so 0.5 comes out as .5000...
//

func formatDecimal(d decimal.Decimal, scale uint32) string {

	t := TruncateToScale(d, scale)

	if t.IsInteger() {
		return t.String()
	}

	s := t.StringFixed(int32(min(scale, bcScaleMax)))

	switch {
	default:

	case strings.HasPrefix(s, "0."):
		s = s[1:]

	case strings.HasPrefix(s, "-0."):
		s = "-" + s[2:]
	}

	if s == "" || s == "." || s == "-" {
		return "0"
	}

	return s
}

//
// Output in base 2 through 36.  The integer part is converted
// exactly, the fraction by repeated multiplication, up to scale
// digits, with trailing zeros dropped
//

func formatObase(d decimal.Decimal, base, scale uint32) string {

	var sb strings.Builder

	negative := d.Sign() < 0
	abs := d.Abs()
	intPart := abs.Truncate(0)

	digits := strings.ToUpper(intPart.BigInt().Text(int(base)))

	if negative {
		sb.WriteByte('-')
	}
	sb.WriteString(digits)

	frac := abs.Sub(intPart)
	if !frac.IsZero() && scale > 0 {
		sb.WriteByte('.')
		bd := decimal.NewFromInt(int64(base))
		for i := uint32(0); i < scale && !frac.IsZero(); i++ {
			frac = frac.Mul(bd)
			digit := frac.Truncate(0)
			sb.WriteByte(baseDigits[digit.IntPart()])
			frac = frac.Sub(digit)
		}
	}

	s := sb.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}

	if s == "" || s == "-" || s == "-0" {
		return "0"
	}

	return s
}

//
// The number written out in full positional notation: no exponent,
// and every stored fractional digit kept
//

func plainString(d decimal.Decimal) string {

	places := int32(0)
	if d.Exponent() < 0 {
		places = -d.Exponent()
	}

	return d.StringFixed(places)
}

//
// Number of significant decimal digits in d, at least 1
//

func decimalDigits(d decimal.Decimal) int {

	n := 0
	for _, ch := range plainString(d.Abs()) {
		if ch >= '0' && ch <= '9' {
			n++
		}
	}

	return max(n, 1)
}

//
// Number of fractional digits d carries
//

func decimalScale(d decimal.Decimal) int64 {

	if d.Exponent() < 0 {
		return int64(-d.Exponent())
	}

	return 0
}

//
// Limits returns the fixed bc limits block
//

func Limits() string {

	return fmt.Sprintf("BC_BASE_MAX     = %d\n"+
		"BC_DIM_MAX      = %d\n"+
		"BC_SCALE_MAX    = %d\n"+
		"BC_STRING_MAX   = %d\n"+
		"MAX Exponent    = %d\n"+
		"Number of vars  = %d",
		bcBaseMax, bcDimMax, bcScaleMax, bcStringMax, bcMaxExp, bcNumVars)
}
