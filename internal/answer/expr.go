package answer

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var superscripts = map[rune]byte{
	'⁰': '0', '¹': '1', '²': '2', '³': '3', '⁴': '4',
	'⁵': '5', '⁶': '6', '⁷': '7', '⁸': '8', '⁹': '9',
}

var errSyntax = errors.New("malformed expression")

// EvaluateExpression computes the value of a small arithmetic expression
// over numbers, + - × / ^ and parentheses. Superscript digits are read as
// exponents ("3²" is 3^2). Any character outside that grammar, or any
// structural problem, yields NaN. Division by zero yields ±Inf.
func EvaluateExpression(expr string) float64 {
	src, ok := rewriteSuperscripts(expr)
	if !ok {
		return math.NaN()
	}
	p := &exprParser{src: []rune(src)}
	v, err := p.parse()
	if err != nil {
		return math.NaN()
	}
	return v
}

// rewriteSuperscripts turns each run of superscript digits into "^digits"
// and rejects characters outside the allowed alphabet.
func rewriteSuperscripts(s string) (string, bool) {
	var b strings.Builder
	inSup := false
	for _, r := range s {
		if d, ok := superscripts[r]; ok {
			if !inSup {
				b.WriteByte('^')
				inSup = true
			}
			b.WriteByte(d)
			continue
		}
		inSup = false
		switch {
		case r >= '0' && r <= '9', r == '.', r == '+', r == '-', r == '×',
			r == '/', r == '^', r == '(', r == ')',
			r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteRune(r)
		default:
			return "", false
		}
	}
	return b.String(), true
}

// exprParser is a recursive-descent parser:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("×" | "/") unary }
//	unary   = ("+" | "-") unary | power
//	power   = primary [ "^" unary ]
//	primary = number | "(" expr ")"
//
// "^" is right-associative and binds tighter than unary minus.
type exprParser struct {
	src   []rune
	pos   int
	depth int
}

const maxExprDepth = 64

func (p *exprParser) parse() (float64, error) {
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return 0, errSyntax
	}
	return v, nil
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *exprParser) peek() rune {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *exprParser) expr() (float64, error) {
	left, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++
		right, err := p.term()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *exprParser) term() (float64, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peek()
		if op != '×' && op != '/' {
			return left, nil
		}
		p.pos++
		right, err := p.unary()
		if err != nil {
			return 0, err
		}
		if op == '×' {
			left *= right
		} else {
			left /= right
		}
	}
}

func (p *exprParser) unary() (float64, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxExprDepth {
		return 0, errSyntax
	}
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.unary()
		return -v, err
	case '+':
		p.pos++
		return p.unary()
	}
	return p.power()
}

func (p *exprParser) power() (float64, error) {
	base, err := p.primary()
	if err != nil {
		return 0, err
	}
	if p.peek() != '^' {
		return base, nil
	}
	p.pos++
	exp, err := p.unary()
	if err != nil {
		return 0, err
	}
	return math.Pow(base, exp), nil
}

func (p *exprParser) primary() (float64, error) {
	switch r := p.peek(); {
	case r == '(':
		p.pos++
		p.depth++
		defer func() { p.depth-- }()
		if p.depth > maxExprDepth {
			return 0, errSyntax
		}
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, errSyntax
		}
		p.pos++
		return v, nil
	case r == '.' || (r >= '0' && r <= '9'):
		start := p.pos
		for p.pos < len(p.src) && (p.src[p.pos] == '.' || (p.src[p.pos] >= '0' && p.src[p.pos] <= '9')) {
			p.pos++
		}
		return strconv.ParseFloat(string(p.src[start:p.pos]), 64)
	default:
		return 0, errSyntax
	}
}
