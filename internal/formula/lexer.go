package formula

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	pos  int // byte offset in the source, for error messages
	text string
	num  float64
}

// lex splits a formula into tokens. Identifiers may contain any letters
// (labels are frequently accented); they are sanitized later, at lookup
// time, so a formula can be written with raw labels or with the
// sanitized names interchangeably.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '+':
			toks = append(toks, token{kind: tokPlus, pos: i, text: "+"})
			i++
		case r == '-':
			toks = append(toks, token{kind: tokMinus, pos: i, text: "-"})
			i++
		case r == '*':
			toks = append(toks, token{kind: tokStar, pos: i, text: "*"})
			i++
		case r == '/':
			toks = append(toks, token{kind: tokSlash, pos: i, text: "/"})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen, pos: i, text: "("})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, pos: i, text: ")"})
			i++
		case r == ',':
			toks = append(toks, token{kind: tokComma, pos: i, text: ","})
			i++
		case r >= '0' && r <= '9' || r == '.':
			start := i
			i = scanNumber(src, i)
			text := src[start:i]
			num, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q at position %d", text, start)
			}
			toks = append(toks, token{kind: tokNumber, pos: start, text: text, num: num})
		case unicode.IsLetter(r) || r == '_':
			start := i
			i = scanIdent(src, i)
			toks = append(toks, token{kind: tokIdent, pos: start, text: src[start:i]})
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", r, i)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

func scanNumber(src string, i int) int {
	seenDot := false
	for i < len(src) {
		c := src[i]
		if c >= '0' && c <= '9' {
			i++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			i++
			continue
		}
		break
	}
	return i
}

func scanIdent(src string, i int) int {
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			i += size
			continue
		}
		break
	}
	return i
}

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of formula"
	case tokNumber:
		return "number"
	case tokIdent:
		return "name"
	default:
		return strings.TrimSpace(map[tokenKind]string{
			tokPlus: "+", tokMinus: "-", tokStar: "*", tokSlash: "/",
			tokLParen: "(", tokRParen: ")", tokComma: ",",
		}[k])
	}
}
