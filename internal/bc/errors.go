package bc

import (
	"errors"
	"fmt"
)

//
// Manifest constants for the calculator error messages.  Messages
// with operands are format strings, handed to newError
//

const (
	EDIVISIONBYZERO   = "Division by zero"
	EMODULOBYZERO     = "Modulo by zero"
	EUNDEFINED        = "Undefined identifier: %s"
	EINVALIDIDENT     = "Invalid identifier: %s"
	EUNMATCHED        = "Unmatched delimiter"
	EBADLITERAL       = "Failed to parse literal: %s"
	EFUNCARGS         = "Function %s expected %d arguments, got %d"
	EEXPONENTRANGE    = "Exponent out of supported range"
	EEXPONENTRESULT   = "Exponentiation produced invalid result"
	EEXPONENTBASE     = "Exponentiation base out of range"
	EEXPONENTPOWER    = "Exponentiation power out of range"
	ECONSTANT         = "Failed to convert constant"
	EUNSUPPORTEDNODE  = "Unsupported expression: %s"
	EUNSUPPORTEDOP    = "Unsupported operator: %s"
	EINTERNAL         = "internal error: %s"
	ESCALENEGATIVE    = "scale() must be non-negative"
	ESCALERANGE       = "scale() out of range"
	EOBASENEGATIVE    = "obase must be positive"
	EOBASERANGE       = "obase out of range"
	EOBASEBOUNDS      = "obase must be between 2 and 36"
	EIFPAREN          = "Expected '(' after if"
	EWHILEPAREN       = "Expected '(' after while"
	EFORPAREN         = "Expected '(' after for"
	EIFTRAILING       = "Unexpected tokens after if statement"
	EWHILETRAILING    = "Unexpected tokens after while body"
	EFORTRAILING      = "Unexpected tokens after for body"
	EFORHEADER        = "for header must be 'init; condition; post'"
	EDEFINE           = "Invalid function definition"
	EDEFINENAME       = "Function name is required"
	EDEFINEPAREN      = "Expected '(' in function definition"
	EDEFINEBODY       = "Expected '{' to start function body"
	ECALLDEPTH        = "Function %s: call nesting too deep"
	EARGS1            = "%s() expects 1 argument, got %d"
	EARGS2            = "%s() expects 2 arguments, got %d"
	EARGRANGE         = "%s() argument out of range"
	EARGRESULT        = "%s() produced invalid result"
	EBESSELORDER      = "Bessel function order must be an integer"
	EBESSELORDERRANGE = "Bessel order out of range"
	EBESSELARGRANGE   = "Bessel argument out of range"
	EBESSELRESULT     = "Bessel function produced a non-finite result"
	ERANDARGS         = "rand() expects 0 or 1 arguments, got %d"
	ERANDLIMIT        = "rand(n) expects n > 0"
	ERANDRANGE        = "rand(n) limit is out of range"
	ESRANDARGS        = "srand(seed) expects exactly 1 argument"
	ESRANDNEGATIVE    = "srand(seed) expects non-negative seed"
	ESRANDRANGE       = "srand(seed) out of range"
	ELOGARGS          = "log() expects 1 or 2 arguments, got %d"
	ELOGINPUT         = "log() expects positive input"
	ELOGARGUMENT      = "log() expects positive argument"
	ELOGBASE          = "log() base must be positive and not equal to 1"
	ELOGBASERANGE     = "log() base out of range"
	ELOGRESULT        = "log() produced invalid result"
	EPOWARGS          = "pow() expects 2 arguments"
	EPOWRANGE         = "pow() exponent out of range"
	EPOWBASE          = "pow() base out of range"
	EPOWRESULT        = "pow() produced invalid result"
	EMINARGS          = "min() expects at least 2 arguments"
	EMAXARGS          = "max() expects at least 2 arguments"
	EROUNDARGS        = "round() expects 1 or 2 arguments, got %d"
	EROUNDMODULUS     = "round() expects non-zero modulus"
	EPIARGS           = "pi() expects 0 arguments, got %d"
	ECOMPLEXCHAR      = "unsupported character in complex expression"
	ECOMPLEXPAREN     = "mismatched parentheses"
	ECOMPLEXTOKEN     = "unexpected token in complex expression"
	ECOMPLEXTRAILING  = "unexpected trailing tokens"
	ECOMPLEXDIVZERO   = "complex division by zero"
	ECOMPLEXNUMBER    = "failed to parse complex number"
	ECOMPLEXABS       = "complex abs overflowed"
	ECOMPLEXSIN       = "complex sin overflowed"
	ECOMPLEXRANGE     = "complex %s %s part out of range"
	EMATRIXCHAR       = "unsupported character in matrix expression"
	EMATRIXTOKEN      = "unexpected token in matrix expression"
	EMATRIXFUNCPAREN  = "matrix function requires parentheses"
	EMATRIXNUMBER     = "failed to parse matrix number"
	EMATRIXADD        = "matrix addition requires matching types"
	EMATRIXSUB        = "matrix subtraction requires matching types"
	EMATRIXSHAPE      = "matrix dimensions must match for %s"
	EMATRIXMULSHAPE   = "matrix multiplication requires inner dimensions to agree"
	EMATRIXDIVISOR    = "matrix division requires a scalar divisor"
	EMATRIXDIVZERO    = "matrix scalar division by zero"
	EMATRIXSCALAR     = "matrix expression must evaluate to a matrix"
	EMATRIXEMPTY      = "matrix must have at least one row and one column"
	EMATRIXRAGGED     = "matrix rows must all have the same length"
	EMATRIXROW        = "matrix row must be enclosed in brackets"
	EMATRIXCELL       = "matrix cell is empty"
	EMATRIXSIN        = "matrix sin overflowed"
	EMATRIXNORESULT   = "matrix evaluation did not produce a result"
)

//
// ErrNoResult is returned for a statement that produced nothing,
// such as an empty line.  Test for it with errors.Is
//

var ErrNoResult = errors.New("No result returned")

//
// Everything else is an *Error.  The message is the bare text the
// user sees, with no prefix, so callers can compare it directly
//

type Error struct {
	Msg string
}

func (e *Error) Error() string {

	return e.Msg
}

func newError(f string, args ...any) *Error {

	if len(args) == 0 {
		return &Error{Msg: f}
	}

	return &Error{Msg: fmt.Sprintf(f, args...)}
}

//
// A handy 'assert' for conditions that can only fail if the
// interpreter itself is broken.  It hands back an error, never
// panics
//

func bcAssert(chk bool, msg string) error {

	if !chk {
		return newError(EINTERNAL, msg)
	}

	return nil
}

//
// Sentinels for the complex and matrix lexers: the statement is
// simply not written in their grammar, so the caller falls back
// to the scalar path
//

var errNotComplex = errors.New("not a complex expression")
var errNotMatrix = errors.New("not a matrix expression")
