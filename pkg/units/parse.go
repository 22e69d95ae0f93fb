package units

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokMul
	tokDiv
	tokPow
	tokSuper
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

// lex splits a unit expression into tokens.
func lex(expr string) ([]token, error) {
	var toks []token
	rs := []rune(expr)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '*' && i+1 < len(rs) && rs[i+1] == '*':
			toks = append(toks, token{kind: tokPow, text: "**"})
			i += 2
		case r == '^':
			toks = append(toks, token{kind: tokPow, text: "^"})
			i++
		case r == '*' || r == '·' || r == '⋅' || r == '×':
			toks = append(toks, token{kind: tokMul, text: string(r)})
			i++
		case r == '/':
			toks = append(toks, token{kind: tokDiv, text: "/"})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "("})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")"})
			i++
		case strings.ContainsRune(superscriptDigits, r):
			j := i
			for j < len(rs) && strings.ContainsRune(superscriptDigits, rs[j]) {
				j++
			}
			n, err := parseSuperscript(rs[i:j])
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokSuper, text: string(rs[i:j]), num: n})
			i = j
		case unicode.IsDigit(r) || r == '.' || r == '-' || r == '+':
			if (r == '-' || r == '+') && !expectsExponent(toks) {
				return nil, fmt.Errorf("sign %q outside an exponent: %w", string(r), ErrInvalidExpression)
			}
			j := scanNumber(rs, i)
			if j == i {
				return nil, fmt.Errorf("unexpected %q: %w", string(r), ErrInvalidExpression)
			}
			n, err := strconv.ParseFloat(string(rs[i:j]), 64)
			if err != nil {
				return nil, fmt.Errorf("bad number %q: %w", string(rs[i:j]), ErrInvalidExpression)
			}
			toks = append(toks, token{kind: tokNumber, text: string(rs[i:j]), num: n})
			i = j
		case isIdentRune(r):
			j := i
			for j < len(rs) && isIdentRune(rs[j]) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: string(rs[i:j])})
			i = j
		default:
			return nil, fmt.Errorf("unexpected %q: %w", string(r), ErrInvalidExpression)
		}
	}
	return append(toks, token{kind: tokEOF}), nil
}

// expectsExponent reports whether the next token is an exponent, the only
// place a signed number may appear: "m**-1", "m^(-1)".
func expectsExponent(toks []token) bool {
	n := len(toks)
	if n > 0 && toks[n-1].kind == tokPow {
		return true
	}
	return n > 1 && toks[n-1].kind == tokLParen && toks[n-2].kind == tokPow
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '°' || r == '%'
}

// scanNumber returns the end of a decimal literal starting at i, including an
// optional sign and exponent.
func scanNumber(rs []rune, i int) int {
	j := i
	if j < len(rs) && (rs[j] == '-' || rs[j] == '+') {
		j++
	}
	digits := 0
	for j < len(rs) && (unicode.IsDigit(rs[j]) || rs[j] == '.') {
		j++
		digits++
	}
	if digits == 0 {
		return i
	}
	if j < len(rs) && (rs[j] == 'e' || rs[j] == 'E') {
		k := j + 1
		if k < len(rs) && (rs[k] == '-' || rs[k] == '+') {
			k++
		}
		if k < len(rs) && unicode.IsDigit(rs[k]) {
			for k < len(rs) && unicode.IsDigit(rs[k]) {
				k++
			}
			j = k
		}
	}
	return j
}

func parseSuperscript(rs []rune) (float64, error) {
	var b strings.Builder
	for _, r := range rs {
		if r == '⁻' {
			b.WriteByte('-')
			continue
		}
		for i, d := range superscriptRunes {
			if d == r {
				b.WriteRune('0' + rune(i))
			}
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, fmt.Errorf("bad exponent %q: %w", string(rs), ErrInvalidExpression)
	}
	return float64(n), nil
}

// parser is a recursive-descent parser over the unit grammar:
//
//	expr   = term { ("*" | "/" | juxtaposition) term }
//	term   = factor [ ("**" | "^") number | superscript ]
//	factor = number | identifier | "(" expr ")"
type parser struct {
	toks    []token
	pos     int
	resolve func(name string) (Unit, error)

	atoms   int
	powered bool
	offset  *Unit
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) parseExpr() (Unit, error) {
	u, err := p.parseTerm()
	if err != nil {
		return Unit{}, err
	}
	for {
		switch p.peek().kind {
		case tokMul:
			p.next()
			rhs, err := p.parseTerm()
			if err != nil {
				return Unit{}, err
			}
			u = u.mul(rhs)
		case tokDiv:
			p.next()
			rhs, err := p.parseTerm()
			if err != nil {
				return Unit{}, err
			}
			u = u.div(rhs)
		case tokNumber, tokIdent, tokLParen:
			rhs, err := p.parseTerm()
			if err != nil {
				return Unit{}, err
			}
			u = u.mul(rhs)
		default:
			return u, nil
		}
	}
}

func (p *parser) parseTerm() (Unit, error) {
	u, err := p.parseFactor()
	if err != nil {
		return Unit{}, err
	}
	switch p.peek().kind {
	case tokSuper:
		p.powered = true
		return u.pow(p.next().num), nil
	case tokPow:
		p.next()
		n, err := p.parseExponent()
		if err != nil {
			return Unit{}, err
		}
		p.powered = true
		return u.pow(n), nil
	}
	return u, nil
}

// parseExponent accepts a number, optionally in parentheses.
func (p *parser) parseExponent() (float64, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return t.num, nil
	case tokLParen:
		n := p.next()
		if n.kind != tokNumber || p.next().kind != tokRParen {
			return 0, fmt.Errorf("bad exponent: %w", ErrInvalidExpression)
		}
		return n.num, nil
	}
	return 0, fmt.Errorf("expected exponent, got %q: %w", t.text, ErrInvalidExpression)
}

func (p *parser) parseFactor() (Unit, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		p.atoms++
		return Unit{Scale: t.num}, nil
	case tokIdent:
		p.atoms++
		u, err := p.resolve(t.text)
		if err != nil {
			return Unit{}, err
		}
		if u.HasOffset() {
			p.offset = &u
		}
		return u, nil
	case tokLParen:
		u, err := p.parseExpr()
		if err != nil {
			return Unit{}, err
		}
		if p.next().kind != tokRParen {
			return Unit{}, fmt.Errorf("missing ')': %w", ErrInvalidExpression)
		}
		return u, nil
	case tokEOF:
		return Unit{}, fmt.Errorf("unexpected end of expression: %w", ErrInvalidExpression)
	}
	return Unit{}, fmt.Errorf("unexpected %q: %w", t.text, ErrInvalidExpression)
}

// parseExpression parses expr into a Unit whose Symbol is the trimmed input.
func parseExpression(expr string, resolve func(string) (Unit, error)) (Unit, error) {
	sym := strings.TrimSpace(expr)
	toks, err := lex(sym)
	if err != nil {
		return Unit{}, err
	}
	p := &parser{toks: toks, resolve: resolve}
	u, err := p.parseExpr()
	if err != nil {
		return Unit{}, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return Unit{}, fmt.Errorf("unexpected %q: %w", t.text, ErrInvalidExpression)
	}
	if p.offset != nil {
		if p.atoms > 1 || p.powered {
			return Unit{}, fmt.Errorf("%q combines offset unit %q: %w", sym, p.offset.Symbol, ErrOffsetUnit)
		}
		u = *p.offset
	}
	u.Symbol = sym
	return u, nil
}
