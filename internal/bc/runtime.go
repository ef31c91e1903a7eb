package bc

import (
	"math/rand"

	"github.com/danswartzendruber/avl"
	"github.com/shopspring/decimal"
)

//
// The interpreter environment: a stack of scopes, the user
// function table, the output settings and the random number
// generator.  Function calls see the global scope plus their
// own fresh frame, never the caller's locals
//

type Runtime struct {
	scopes    []scope
	functions *avl.AvlNode
	scale     uint32
	obase     uint32
	rng       *rand.Rand
}

func NewRuntime(scale uint32) *Runtime {

	rt := &Runtime{
		scopes:    []scope{make(scope)},
		scale:     min(scale, bcScaleMax),
		obase:     defaultObase,
	}

	rt.scopes[0]["scale"] = decimal.NewFromInt(int64(rt.scale))
	rt.scopes[0]["obase"] = decimal.NewFromInt(defaultObase)

	rt.reseedRng(rngSeed)

	return rt
}

//
// Search the scope stack from the innermost frame outwards
//

func (rt *Runtime) getVariable(name string) (decimal.Decimal, bool) {

	for i := len(rt.scopes) - 1; i >= 0; i-- {
		if v, ok := rt.scopes[i][name]; ok {
			return v, true
		}
	}

	return decimal.Zero, false
}

//
// Return the innermost scope that already defines name, or nil
//

func (rt *Runtime) findScope(name string) scope {

	for i := len(rt.scopes) - 1; i >= 0; i-- {
		if _, ok := rt.scopes[i][name]; ok {
			return rt.scopes[i]
		}
	}

	return nil
}

func (rt *Runtime) currentScope() scope {

	return rt.scopes[len(rt.scopes)-1]
}

func (rt *Runtime) globalScope() scope {

	return rt.scopes[0]
}

func (rt *Runtime) depth() int {

	return len(rt.scopes)
}

func (rt *Runtime) pushScope(s scope) {

	if s == nil {
		s = make(scope)
	}

	rt.scopes = append(rt.scopes, s)
}

//
// The global scope is never removed
//

func (rt *Runtime) popScope() {

	if len(rt.scopes) > 1 {
		rt.scopes[len(rt.scopes)-1] = nil
		rt.scopes = rt.scopes[:len(rt.scopes)-1]
	}
}

func (rt *Runtime) Scale() uint32 {

	return rt.scale
}

func (rt *Runtime) Obase() uint32 {

	return rt.obase
}

//
// scale and obase are also variables, so an expression can read
// them back.  The value goes into the current frame and, when a
// function body changes it, into the global frame too, so the
// setting survives the return
//

//
// Scales past BC_SCALE_MAX are clamped to it
//

func (rt *Runtime) setScale(n uint32) {

	n = min(n, bcScaleMax)

	rt.scale = n
	rt.setSetting("scale", n)
}

func (rt *Runtime) setObase(n uint32) {

	rt.obase = n
	rt.setSetting("obase", n)
}

func (rt *Runtime) setSetting(name string, n uint32) {

	d := decimal.NewFromInt(int64(n))

	rt.currentScope()[name] = d
	if len(rt.scopes) > 1 {
		rt.globalScope()[name] = d
	}
}

func (rt *Runtime) rngSource() *rand.Rand {

	return rt.rng
}

func (rt *Runtime) reseedRng(seed uint64) {

	rt.rng = rand.New(rand.NewSource(int64(seed)))
}
