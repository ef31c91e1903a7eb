package bc

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

//
// Store value into name.  scale and obase are settings as well as
// variables, and are checked before they are stored.  Any other
// name goes to the innermost scope that already has it, or else the
// current scope
//

func (e *Executor) assignVariable(name string, value decimal.Decimal) error {

	old, _ := e.rt.getVariable(name)

	switch name {
	default:
		s := e.rt.findScope(name)
		if s == nil {
			s = e.rt.currentScope()
		}
		s[name] = value

	case "scale":
		n, err := settingValue(value, ESCALENEGATIVE, ESCALERANGE)
		if err != nil {
			return err
		}
		e.rt.setScale(n)
		value = decimal.NewFromInt(int64(e.rt.scale))

	case "obase":
		n, err := settingValue(value, EOBASENEGATIVE, EOBASERANGE)
		if err != nil {
			return err
		}
		if n < minObase || n > maxObase {
			return newError(EOBASEBOUNDS)
		}
		e.rt.setObase(n)
	}

	e.traceVar(name, old, value)

	return nil
}

//
// Truncate a setting to a u32, rejecting negatives
//

func settingValue(value decimal.Decimal, negative, outOfRange string) (uint32, error) {

	if value.Sign() < 0 {
		return 0, newError(negative)
	}

	t := value.Truncate(0).BigInt()
	if !t.IsUint64() || t.Uint64() > math.MaxUint32 {
		return 0, newError(outOfRange)
	}

	return uint32(t.Uint64()), nil
}

func (e *Executor) traceVar(name string, oval, nval decimal.Decimal) {

	if e.trace.Vars {
		fmt.Fprintf(e.traceOut, "Variable %s changed from %s to %s\n", name, oval.String(), nval.String())
	}
}

func (e *Executor) traceExec(stmt string) {

	if e.trace.Exec {
		fmt.Fprintf(e.traceOut, "[%d] %s\n", e.rt.depth(), stmt)
	}
}
