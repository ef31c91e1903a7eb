package bc

import (
	"io"

	"github.com/danswartzendruber/avl"
	"github.com/shopspring/decimal"
)

const (
	DefaultScale = 20
	defaultObase = 10
	minObase     = 2
	maxObase     = 36

	literalPrefix    = "__dntk_lit"
	reservedPrefix   = "__dntk_id_"
	precisionPadding = 4
	rngSeed          = 0x5eed5eed5eed5eed
	maxCallDepth     = 4096
	maxPowerDigits   = 1 << 20

	bcBaseMax   = 4294967295
	bcDimMax    = 65535
	bcScaleMax  = 2147483647
	bcStringMax = 2147483647
	bcMaxExp    = 1024
	bcNumVars   = 2147483647
)

//
// The digit alphabet for obase != 10 output
//

const baseDigits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

//
// One frame's name -> value mapping.  The Runtime keeps a stack
// of these, the global scope at the bottom
//

type scope map[string]decimal.Decimal

//
// A user function.  The avl node links it into the function
// table, which is kept ordered by name
//

type functionDef struct {
	avl    avl.AvlNode
	name   string
	params []string
	body   []string
}

type outcomeKind int

const (
	outcomeNone outcomeKind = iota
	outcomeValue
	outcomeReturn
)

//
// Result of evaluating one statement or block.  A return outcome
// unwinds blocks, loops and if statements unchanged
//

type statementOutcome struct {
	kind  outcomeKind
	value decimal.Decimal
}

var noOutcome = statementOutcome{kind: outcomeNone}

func valueOutcome(d decimal.Decimal) statementOutcome {

	return statementOutcome{kind: outcomeValue, value: d}
}

func returnOutcome(d decimal.Decimal) statementOutcome {

	return statementOutcome{kind: outcomeReturn, value: d}
}

//
// Trace switches, toggled from the front-end
//

type Trace struct {
	Vars bool
	Exec bool
	Dump bool
}

//
// Executor is one calculator session.  It is not safe for
// concurrent use; give each session its own
//

type Executor struct {
	rt       *Runtime
	literals *LiteralTable
	trace    Trace
	traceOut io.Writer
}

type statementKind int

const (
	kindScalar statementKind = iota
	kindComplex
	kindMatrix
)

func (k statementKind) String() string {

	switch k {
	default:
		return "scalar"

	case kindComplex:
		return "complex"

	case kindMatrix:
		return "matrix"
	}
}
