package bc

import (
	"strings"
)

//
// Structural parsing of statement text.  None of this understands
// expressions; it only tracks bracket nesting so that separators
// inside (), [] and {} are not mistaken for statement boundaries
//

type nesting struct {
	round  int
	square int
	curly  int
}

//
// Update the nesting depths for ch.  A stray closer never drives a
// depth below zero
//

func (n *nesting) track(ch byte) {

	switch ch {
	default:

	case '(':
		n.round++

	case ')':
		if n.round > 0 {
			n.round--
		}

	case '[':
		n.square++

	case ']':
		if n.square > 0 {
			n.square--
		}

	case '{':
		n.curly++

	case '}':
		if n.curly > 0 {
			n.curly--
		}
	}
}

func (n *nesting) topLevel() bool {

	return n.round == 0 && n.square == 0 && n.curly == 0
}

//
// Split on ';' and newline at nesting depth zero.  Statements are
// trimmed and empty ones dropped
//

func splitStatements(input string) []string {

	var stmts []string
	var n nesting

	start := 0
	for i := 0; i < len(input); i++ {
		ch := input[i]
		if (ch == ';' || ch == '\n') && n.topLevel() {
			if s := strings.TrimSpace(input[start:i]); s != "" {
				stmts = append(stmts, s)
			}
			start = i + 1
			continue
		}
		n.track(ch)
	}

	if s := strings.TrimSpace(input[start:]); s != "" {
		stmts = append(stmts, s)
	}

	return stmts
}

//
// Split on a delimiter at depth zero.  Inner segments are kept even
// when empty (so "for (;;)" has three parts); an empty tail is not
//

func splitTopLevel(input string, delim byte) []string {

	var parts []string
	var n nesting

	start := 0
	for i := 0; i < len(input); i++ {
		ch := input[i]
		n.track(ch)
		if ch == delim && n.topLevel() {
			parts = append(parts, strings.TrimSpace(input[start:i]))
			start = i + 1
		}
	}

	if tail := strings.TrimSpace(input[start:]); tail != "" {
		parts = append(parts, tail)
	}

	return parts
}

//
// Parse the body of an if, while or for.  A braced body yields all
// of its statements; otherwise the body is the single statement up
// to a top level ';' (consumed) or an 'else' keyword (not consumed).
// The unparsed remainder comes back as the second value
//

func parseBranch(input string) ([]string, string, error) {

	trimmed := strings.TrimLeft(input, " \t\r\n")

	if strings.HasPrefix(trimmed, "{") {
		end, err := findMatching(trimmed, 0, '{', '}')
		if err != nil {
			return nil, "", err
		}
		return splitStatements(trimmed[1:end]), trimmed[end+1:], nil
	}

	var n nesting

	i := 0
scan:
	for ; i < len(trimmed); i++ {
		ch := trimmed[i]
		switch {
		case (ch == 'e' || ch == 'E') && n.topLevel():
			if strings.HasPrefix(trimmed[i:], "else") && isKeywordBoundary(trimmed, i, i+4) {
				break scan
			}

		case ch == ';' && n.topLevel():
			i++
			break scan

		default:
			n.track(ch)
		}
	}

	stmt := strings.TrimSpace(strings.TrimSuffix(trimmed[:i], ";"))
	remainder := strings.TrimLeft(trimmed[i:], " \t\r\n")

	if stmt == "" {
		return nil, remainder, nil
	}

	return []string{stmt}, remainder, nil
}

//
// Find the first top level '=' that is a plain assignment, not part
// of ==, <=, >= or !=.  Both sides must be non-empty
//

func detectAssignment(stmt string) (string, string, bool) {

	var n nesting
	var prev byte

	for i := 0; i < len(stmt); i++ {
		ch := stmt[i]
		if ch == '=' && n.topLevel() {
			if prev == '<' || prev == '>' || prev == '!' || prev == '=' {
				prev = ch
				continue
			}
			if i+1 < len(stmt) && stmt[i+1] == '=' {
				prev = ch
				continue
			}
			left := strings.TrimSpace(stmt[:i])
			right := strings.TrimSpace(stmt[i+1:])
			if left == "" || right == "" {
				return "", "", false
			}
			return left, right, true
		}
		n.track(ch)
		prev = ch
	}

	return "", "", false
}

//
// Return the index of the close delimiter matching the open one at
// or after start
//

func findMatching(input string, start int, open, close byte) (int, error) {

	depth := 0

	for i := start; i < len(input); i++ {
		switch input[i] {
		default:

		case open:
			depth++

		case close:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}

	return 0, newError(EUNMATCHED)
}

//
// Case insensitive keyword match at the start of input.  The keyword
// must not run on into an identifier
//

func lookupKeyword(input, keyword string) bool {

	return len(input) >= len(keyword) &&
		strings.EqualFold(input[:len(keyword)], keyword) &&
		isKeywordBoundary(input, 0, len(keyword))
}

func startsWithKeyword(input, keyword string) bool {

	return lookupKeyword(strings.TrimLeft(input, " \t\r\n"), keyword)
}

func isKeywordBoundary(input string, start, end int) bool {

	if start > 0 && isIdentChar(input[start-1]) {
		return false
	}

	if end < len(input) && isIdentChar(input[end]) {
		return false
	}

	return true
}

//
// Rewrite the single letter bc library names s( c( a( l( e( into
// the names the expression evaluator knows
//

var bcShorthand = map[byte]string{
	's': "sin(",
	'c': "cos(",
	'a': "atan(",
	'l': "ln(",
	'e': "exp(",
}

func preprocessBcSyntax(stmt string) string {

	var sb strings.Builder

	sb.Grow(len(stmt))

	for i := 0; i < len(stmt); i++ {
		if i+1 < len(stmt) && stmt[i+1] == '(' && (i == 0 || !isIdentChar(stmt[i-1])) {
			if rep, ok := bcShorthand[stmt[i]]; ok {
				sb.WriteString(rep)
				i++
				continue
			}
		}
		sb.WriteByte(stmt[i])
	}

	return sb.String()
}

//
// Words the expression engine treats as its own keywords or as
// closure taking builtins.  To bc they are ordinary names
//

var engineReserved = map[string]bool{
	"nil": true, "true": true, "false": true,
	"not": true, "and": true, "or": true, "in": true,
	"matches": true, "contains": true, "startsWith": true, "endsWith": true,
	"let": true, "if": true, "else": true,
	"all": true, "none": true, "any": true, "one": true,
	"filter": true, "map": true, "count": true, "sum": true,
	"find": true, "findIndex": true, "findLast": true, "findLastIndex": true,
	"groupBy": true, "sortBy": true, "reduce": true,
}

//
// Prefix every reserved word so the engine parses it as a plain
// identifier.  resolveName strips the prefix again
//

func quoteReservedNames(expr string) string {

	var sb strings.Builder

	sb.Grow(len(expr))

	for i := 0; i < len(expr); {
		if !isIdentChar(expr[i]) {
			sb.WriteByte(expr[i])
			i++
			continue
		}

		j := i + 1
		for j < len(expr) && isIdentChar(expr[j]) {
			j++
		}

		if word := expr[i:j]; engineReserved[word] {
			sb.WriteString(reservedPrefix)
		}
		sb.WriteString(expr[i:j])
		i = j
	}

	return sb.String()
}

func isValidIdentifier(name string) bool {

	if name == "" {
		return false
	}

	if c := name[0]; c != '_' && !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') {
		return false
	}

	for i := 1; i < len(name); i++ {
		if !isIdentChar(name[i]) {
			return false
		}
	}

	return true
}

func isIdentChar(b byte) bool {

	return isIdentRune(rune(b))
}
