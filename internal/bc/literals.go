package bc

import (
	"fmt"
	"unicode"

	"github.com/shopspring/decimal"
)

//
// The expression engine only knows machine floats, so before an
// expression is handed to it every numeric literal is lifted out
// into this table and replaced by a synthetic identifier.  When the
// evaluator meets one of those identifiers it gets the exact decimal
// back from here.  The table lives for one expression evaluation
//

type LiteralTable struct {
	values  map[string]decimal.Decimal
	counter int
}

func NewLiteralTable() *LiteralTable {

	return &LiteralTable{values: make(map[string]decimal.Decimal)}
}

func (lt *LiteralTable) Reset() {

	clear(lt.values)
	lt.counter = 0
}

func (lt *LiteralTable) Get(name string) (decimal.Decimal, bool) {

	d, ok := lt.values[name]

	return d, ok
}

func (lt *LiteralTable) Len() int {

	return len(lt.values)
}

//
// Rewrite expr, replacing each numeric literal with a fresh
// __dntk_litN name.  Characters that are not part of a literal are
// copied through untouched
//

func (lt *LiteralTable) Substitute(expr string) (string, error) {

	var out []rune

	chars := []rune(expr)

	for i := 0; i < len(chars); {
		lit, consumed := extractNumericLiteral(chars, i)
		if consumed == 0 {
			out = append(out, chars[i])
			i++
			continue
		}

		d, err := decimal.NewFromString(lit)
		if err != nil {
			return "", newError(EBADLITERAL, lit)
		}

		name := lt.nextName()
		lt.values[name] = d
		out = append(out, []rune(name)...)
		i += consumed
	}

	return string(out), nil
}

func (lt *LiteralTable) nextName() string {

	name := fmt.Sprintf("%s%d", literalPrefix, lt.counter)
	lt.counter++

	return name
}

//
// Try to recognize a literal starting at chars[start].  Returns the
// literal text and the number of runes it covers, or zero consumed
// if there is no literal here.  A sign is only part of the literal
// when it can't be a binary operator, and a digit run glued onto an
// identifier is left alone
//

func extractNumericLiteral(chars []rune, start int) (string, int) {

	n := len(chars)
	i := start
	prev, hasPrev := previousNonSpace(chars, start)

	if i >= n {
		return "", 0
	}

	if chars[i] == '+' || chars[i] == '-' {
		if hasPrev && (isIdentRune(prev) || prev == ')') {
			return "", 0
		}
		i++
		if i >= n {
			return "", 0
		}
	}

	hasDigits := false
	hasPoint := false

	if isDigit(chars[i]) {
		if hasPrev && isIdentRune(prev) {
			return "", 0
		}
		hasDigits = true
		for i < n && isDigit(chars[i]) {
			i++
		}
	}

	if i < n && chars[i] == '.' {
		if hasPrev && isIdentRune(prev) {
			return "", 0
		}
		hasPoint = true
		i++
		frac := 0
		for i < n && isDigit(chars[i]) {
			i++
			frac++
		}
		if frac == 0 {
			return "", 0
		}
		hasDigits = true
	} else if !hasDigits {
		return "", 0
	}

	if i < n && (chars[i] == 'e' || chars[i] == 'E') {
		i++
		if i < n && (chars[i] == '+' || chars[i] == '-') {
			i++
		}
		exp := 0
		for i < n && isDigit(chars[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return "", 0
		}
	}

	if !hasDigits {
		return "", 0
	}

	if i < n {
		next := chars[i]
		if isIdentRune(next) {
			return "", 0
		}
		if next == '.' && !hasPoint && i+1 < n && unicode.IsLetter(chars[i+1]) {
			return "", 0
		}
	}

	return string(chars[start:i]), i - start
}

func previousNonSpace(chars []rune, index int) (rune, bool) {

	for pos := index - 1; pos >= 0; pos-- {
		if !unicode.IsSpace(chars[pos]) {
			return chars[pos], true
		}
	}

	return 0, false
}

func isDigit(ch rune) bool {

	return ch >= '0' && ch <= '9'
}

//
// ASCII letters, digits and underscore
//

func isIdentRune(ch rune) bool {

	return ch == '_' || isDigit(ch) || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
