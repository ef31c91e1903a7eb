package bc

import (
	"io"
	"os"
	"strings"

	"fortio.org/log"
	"github.com/shopspring/decimal"
)

//
// New returns a calculator session with the given scale, obase 10,
// no variables beyond scale and obase, and no user functions
//

func New(scale uint32) *Executor {

	return &Executor{
		rt:       NewRuntime(scale),
		literals: NewLiteralTable(),
		traceOut: os.Stdout,
	}
}

func (e *Executor) Scale() uint32 {

	return e.rt.Scale()
}

func (e *Executor) Obase() uint32 {

	return e.rt.Obase()
}

//
// Names of the user defined functions, sorted
//

func (e *Executor) Functions() []string {

	return e.rt.functionNames()
}

func (e *Executor) SetTrace(t Trace) {

	e.trace = t
}

func (e *Executor) TraceFlags() Trace {

	return e.trace
}

//
// Where the variable and statement traces go.  Defaults to stdout
//

func (e *Executor) SetTraceOutput(w io.Writer) {

	e.traceOut = w
}

//
// Execute one line of input and return the formatted value of the
// last statement that produced one.  Statements run in order and the
// first error stops the rest of the line.  Effects of the statements
// before it are kept
//

func (e *Executor) Exec(statement string) (string, error) {

	trimmed := strings.TrimSpace(statement)

	if trimmed == "" {
		return "", ErrNoResult
	}

	if trimmed == "limits" {
		return Limits(), nil
	}

	c, err := e.classify(trimmed)
	if err != nil {
		return "", err
	}

	log.LogVf("exec %s: %q", c.kind, trimmed)

	switch c.kind {
	default:

	case kindComplex:
		return e.evalComplexStatement(c.complex)

	case kindMatrix:
		return e.evalMatrixTokens(c.matrix)
	}

	last := decimal.Zero

	for _, stmt := range splitStatements(trimmed) {
		out, err := e.evalStatement(stmt)
		if err != nil {
			return "", err
		}
		if out.kind != outcomeNone {
			last = out.value
		}
		if out.kind == outcomeReturn {
			break
		}
	}

	return e.FormatResult(last), nil
}

//
// Dispatch one statement on its leading keyword.  Anything that is
// not a keyword statement is an assignment or a bare expression
//

func (e *Executor) evalStatement(stmt string) (statementOutcome, error) {

	trimmed := strings.TrimSpace(stmt)
	if trimmed == "" {
		return noOutcome, nil
	}

	e.traceExec(trimmed)

	switch {
	case startsWithKeyword(trimmed, "define"):
		rest, err := e.defineFunction(trimmed)
		if err != nil || rest == "" {
			return noOutcome, err
		}
		return e.evalBlock(splitStatements(rest))

	case startsWithKeyword(trimmed, "return"):
		return e.evalReturn(trimmed)

	case startsWithKeyword(trimmed, "if"):
		return e.evalIf(trimmed)

	case startsWithKeyword(trimmed, "while"):
		return e.evalWhile(trimmed)

	case startsWithKeyword(trimmed, "for"):
		return e.evalFor(trimmed)
	}

	if name, expr, ok := detectAssignment(trimmed); ok {
		v, err := e.evalAssignment(name, expr)
		if err != nil {
			return noOutcome, err
		}
		return valueOutcome(v), nil
	}

	v, err := e.evalExpression(trimmed)
	if err != nil {
		return noOutcome, err
	}

	return valueOutcome(v), nil
}

//
// Run statements in order.  A return stops the block and is passed
// up unchanged; otherwise the last value wins
//

func (e *Executor) evalBlock(stmts []string) (statementOutcome, error) {

	last := noOutcome

	for _, stmt := range stmts {
		out, err := e.evalStatement(stmt)
		if err != nil {
			return noOutcome, err
		}

		switch out.kind {
		default:

		case outcomeReturn:
			return out, nil

		case outcomeValue:
			last = out
		}
	}

	return last, nil
}

//
// Split "kw (inside) rest" after the keyword, checking the paren
//

func splitHeader(stmt, keyword, missingParen string) (string, string, error) {

	rest := strings.TrimLeft(strings.TrimLeft(stmt, " \t\r\n")[len(keyword):], " \t\r\n")
	if !strings.HasPrefix(rest, "(") {
		return "", "", newError(missingParen)
	}

	end, err := findMatching(rest, 0, '(', ')')
	if err != nil {
		return "", "", err
	}

	return rest[1:end], strings.TrimLeft(rest[end+1:], " \t\r\n"), nil
}

func (e *Executor) evalCondition(cond string) (bool, error) {

	v, err := e.evalExpression(cond)
	if err != nil {
		return false, err
	}

	return !v.IsZero(), nil
}

func (e *Executor) evalIf(stmt string) (statementOutcome, error) {

	cond, rest, err := splitHeader(stmt, "if", EIFPAREN)
	if err != nil {
		return noOutcome, err
	}

	truth, err := e.evalCondition(cond)
	if err != nil {
		return noOutcome, err
	}

	thenBranch, rest, err := parseBranch(rest)
	if err != nil {
		return noOutcome, err
	}

	var elseBranch []string

	rest = strings.TrimLeft(rest, " \t\r\n")
	if lookupKeyword(rest, "else") {
		elseBranch, rest, err = parseBranch(rest[len("else"):])
		if err != nil {
			return noOutcome, err
		}
	}

	if strings.TrimSpace(rest) != "" {
		return noOutcome, newError(EIFTRAILING)
	}

	if truth {
		return e.evalBlock(thenBranch)
	}

	return e.evalBlock(elseBranch)
}

func (e *Executor) evalWhile(stmt string) (statementOutcome, error) {

	cond, rest, err := splitHeader(stmt, "while", EWHILEPAREN)
	if err != nil {
		return noOutcome, err
	}

	body, rest, err := parseBranch(rest)
	if err != nil {
		return noOutcome, err
	}

	if strings.TrimSpace(rest) != "" {
		return noOutcome, newError(EWHILETRAILING)
	}

	last := noOutcome

	for {
		truth, err := e.evalCondition(cond)
		if err != nil {
			return noOutcome, err
		}
		if !truth {
			break
		}

		out, err := e.evalBlock(body)
		if err != nil {
			return noOutcome, err
		}

		switch out.kind {
		default:

		case outcomeReturn:
			return out, nil

		case outcomeValue:
			last = out
		}
	}

	return last, nil
}

//
// for (init; cond; post) body.  init runs once, before the body is
// parsed; an empty condition is always true; the value of post
// counts as a statement value
//

func (e *Executor) evalFor(stmt string) (statementOutcome, error) {

	header, rest, err := splitHeader(stmt, "for", EFORPAREN)
	if err != nil {
		return noOutcome, err
	}

	parts := splitTopLevel(header, ';')
	if len(parts) == 2 && strings.HasSuffix(strings.TrimSpace(header), ";") {
		parts = append(parts, "")
	}
	if len(parts) != 3 {
		return noOutcome, newError(EFORHEADER)
	}

	initStmt, cond, post := parts[0], parts[1], parts[2]

	if initStmt != "" {
		if _, err := e.evalStatement(initStmt); err != nil {
			return noOutcome, err
		}
	}

	body, rest, err := parseBranch(rest)
	if err != nil {
		return noOutcome, err
	}

	if strings.TrimSpace(rest) != "" {
		return noOutcome, newError(EFORTRAILING)
	}

	last := noOutcome

	for {
		if cond != "" {
			truth, err := e.evalCondition(cond)
			if err != nil {
				return noOutcome, err
			}
			if !truth {
				break
			}
		}

		out, err := e.evalBlock(body)
		if err != nil {
			return noOutcome, err
		}

		switch out.kind {
		default:

		case outcomeReturn:
			return out, nil

		case outcomeValue:
			last = out
		}

		if post == "" {
			continue
		}

		out, err = e.evalStatement(post)
		if err != nil {
			return noOutcome, err
		}

		switch out.kind {
		default:

		case outcomeReturn:
			return out, nil

		case outcomeValue:
			last = out
		}
	}

	return last, nil
}

//
// return, return expr and return (expr)
//

func (e *Executor) evalReturn(stmt string) (statementOutcome, error) {

	rest := strings.TrimSpace(strings.TrimLeft(stmt, " \t\r\n")[len("return"):])
	if rest == "" {
		return returnOutcome(decimal.Zero), nil
	}

	if strings.HasPrefix(rest, "(") {
		if end, err := findMatching(rest, 0, '(', ')'); err == nil && end == len(rest)-1 {
			rest = rest[1:end]
		}
	}

	v, err := e.evalExpression(rest)
	if err != nil {
		return noOutcome, err
	}

	return returnOutcome(v), nil
}

//
// define name(p1, ..., pn) { body }.  Returns whatever follows the
// closing brace, with leading ';' dropped, for the caller to run
//

func (e *Executor) defineFunction(stmt string) (string, error) {

	rest := strings.TrimLeft(strings.TrimLeft(stmt, " \t\r\n")[len("define"):], " \t\r\n")

	nameEnd := strings.IndexAny(rest, "( \t\r\n")
	if nameEnd < 0 {
		return "", newError(EDEFINE)
	}

	name := strings.TrimSpace(rest[:nameEnd])
	if name == "" {
		return "", newError(EDEFINENAME)
	}

	if !isValidIdentifier(name) {
		return "", newError(EINVALIDIDENT, name)
	}

	rest = strings.TrimLeft(rest[nameEnd:], " \t\r\n")
	if !strings.HasPrefix(rest, "(") {
		return "", newError(EDEFINEPAREN)
	}

	paramsEnd, err := findMatching(rest, 0, '(', ')')
	if err != nil {
		return "", err
	}

	var params []string

	if p := strings.TrimSpace(rest[1:paramsEnd]); p != "" {
		for _, param := range strings.Split(p, ",") {
			param = strings.TrimSpace(param)
			if !isValidIdentifier(param) {
				return "", newError(EINVALIDIDENT, param)
			}
			params = append(params, param)
		}
	}

	rest = strings.TrimLeft(rest[paramsEnd+1:], " \t\r\n")
	if !strings.HasPrefix(rest, "{") {
		return "", newError(EDEFINEBODY)
	}

	bodyEnd, err := findMatching(rest, 0, '{', '}')
	if err != nil {
		return "", err
	}

	fn := &functionDef{
		name:   name,
		params: params,
		body:   splitStatements(rest[1:bodyEnd]),
	}

	e.rt.functionDefine(fn)

	log.LogVf("defined %s(%s) with %d statements", name, strings.Join(params, ", "), len(fn.body))

	remainder := strings.TrimLeft(rest[bodyEnd+1:], " \t\r\n")
	for strings.HasPrefix(remainder, ";") {
		remainder = strings.TrimLeft(remainder[1:], " \t\r\n")
	}

	return remainder, nil
}

func (e *Executor) evalAssignment(name, expr string) (decimal.Decimal, error) {

	if !isValidIdentifier(name) {
		return decimal.Zero, newError(EINVALIDIDENT, name)
	}

	v, err := e.evalExpression(expr)
	if err != nil {
		return decimal.Zero, err
	}

	if err := e.assignVariable(name, v); err != nil {
		return decimal.Zero, err
	}

	return v, nil
}

//
// Call a user function.  The body runs in a fresh scope holding the
// parameters.  Falling off the end yields the last statement value,
// or zero
//

func (e *Executor) callFunction(fn *functionDef, args []decimal.Decimal) (decimal.Decimal, error) {

	if len(args) != len(fn.params) {
		return decimal.Zero, newError(EFUNCARGS, fn.name, len(fn.params), len(args))
	}

	if e.rt.depth() > maxCallDepth {
		return decimal.Zero, newError(ECALLDEPTH, fn.name)
	}

	local := make(scope, len(fn.params))
	for i, p := range fn.params {
		local[p] = args[i]
	}

	e.rt.pushScope(local)
	defer e.rt.popScope()

	out, err := e.evalBlock(fn.body)
	if err != nil {
		return decimal.Zero, err
	}

	if out.kind == outcomeNone {
		return decimal.Zero, nil
	}

	return out.value, nil
}
