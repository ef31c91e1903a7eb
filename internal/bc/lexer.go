package bc

//
// Character level scanning shared by the complex and matrix lexers.
// Both grammars are pure ASCII, so we walk bytes.  peekch returns 0
// at the end of the buffer
//

type charLexer struct {
	buf string
	idx int
}

func newCharLexer(s string) *charLexer {

	lx := &charLexer{buf: s}
	lx.skipSpace()

	return lx
}

func (lx *charLexer) done() bool {

	return lx.idx >= len(lx.buf)
}

func (lx *charLexer) peekch() byte {

	if lx.idx >= len(lx.buf) {
		return 0
	}

	return lx.buf[lx.idx]
}

func (lx *charLexer) peekAt(off int) byte {

	if lx.idx+off >= len(lx.buf) {
		return 0
	}

	return lx.buf[lx.idx+off]
}

func (lx *charLexer) getch() byte {

	if lx.idx >= len(lx.buf) {
		panic("Input buffer botch!")
	}

	ch := lx.buf[lx.idx]
	lx.idx++

	return ch
}

func (lx *charLexer) skipSpace() {

	for !lx.done() {
		switch lx.buf[lx.idx] {
		default:
			return

		case ' ', '\t', '\r', '\n', '\v', '\f':
			lx.idx++
		}
	}
}

func (lx *charLexer) rest() string {

	return lx.buf[lx.idx:]
}

//
// Scan a number: digits with at most one '.', then an optional
// exponent.  An 'e' with no digits after it is left in the input.
// Returns false, consuming nothing, when there are no digits at all
//

func (lx *charLexer) scanNumber() (string, bool) {

	start := lx.idx
	hasDigit := false
	hasPoint := false

scan:
	for !lx.done() {
		ch := lx.peekch()
		switch {
		case isDigit(rune(ch)):
			hasDigit = true
			lx.idx++

		case ch == '.' && !hasPoint:
			hasPoint = true
			lx.idx++

		case ch == 'e' || ch == 'E':
			off := 1
			if s := lx.peekAt(off); s == '+' || s == '-' {
				off++
			}
			digits := 0
			for isDigit(rune(lx.peekAt(off))) {
				off++
				digits++
			}
			if digits > 0 {
				lx.idx += off
				hasDigit = true
			}
			break scan

		default:
			break scan
		}
	}

	if !hasDigit {
		lx.idx = start
		return "", false
	}

	return lx.buf[start:lx.idx], true
}

//
// Does an identifier carry on at offset off?  Used to tell the
// imaginary unit in 2i from the start of an identifier like 2if
//

func (lx *charLexer) identContinues(off int) bool {

	ch := lx.peekAt(off)

	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAlpha(ch byte) bool {

	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
