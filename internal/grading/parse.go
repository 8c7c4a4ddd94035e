package grading

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)(e[+-]?\d+)?`)

// ParseValue turns answer text into a number. The text is normalized first,
// so raw and normalized input parse the same. NaN is returned for the "does
// not exist" spellings and is distinct from a parse failure, which is
// reported by ok == false.
func ParseValue(s string) (v float64, ok bool) {
	s = Normalize(s)
	switch s {
	case "":
		return 0, false
	case "dne", "undefined", "doesnotexist":
		return math.NaN(), true
	case "infinity", "inf", "∞":
		return math.Inf(1), true
	case "-infinity", "-inf", "-∞":
		return math.Inf(-1), true
	}
	if v, err := Evaluate(s); err == nil && !math.IsNaN(v) {
		return v, true
	}
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := parseFloat(m)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseFloat accepts out-of-range literals as ±Inf, matching what the same
// magnitude written as a power evaluates to.
func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && errors.Is(err, strconv.ErrRange) {
		return v, nil
	}
	return v, err
}

// Evaluate computes a restricted arithmetic expression: numbers, + - * / ^,
// parentheses, sqrt(...) and the constants pi and e. Every other character
// is rejected.
func Evaluate(s string) (float64, error) {
	toks, err := lex(s)
	if err != nil {
		return 0, err
	}
	p := &parser{toks: toks}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	if p.peek().kind != tokEOF {
		return 0, fmt.Errorf("unexpected %q at %d", p.peek().text, p.peek().pos)
	}
	return v, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokConst
	tokSqrt
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
)

type token struct {
	kind  tokenKind
	text  string
	value float64
	pos   int
}

var constants = []struct {
	name  string
	value float64
}{
	{"pi", math.Pi},
	{"π", math.Pi},
	{"e", math.E},
}

var operators = map[byte]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'^': tokCaret,
	'(': tokLParen,
	')': tokRParen,
}

func lex(s string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(s) {
		c := s[i]
		if c == ' ' || c == '\t' {
			i++
			continue
		}
		if kind, ok := operators[c]; ok {
			toks = append(toks, token{kind: kind, text: string(c), pos: i})
			i++
			continue
		}
		if isDigit(c) || c == '.' {
			n := scanNumber(s[i:])
			if n == 0 {
				return nil, fmt.Errorf("malformed number at %d", i)
			}
			v, err := parseFloat(s[i : i+n])
			if err != nil {
				return nil, fmt.Errorf("malformed number %q: %w", s[i:i+n], err)
			}
			toks = append(toks, token{kind: tokNumber, text: s[i : i+n], value: v, pos: i})
			i += n
			continue
		}
		if strings.HasPrefix(s[i:], "sqrt") {
			toks = append(toks, token{kind: tokSqrt, text: "sqrt", pos: i})
			i += len("sqrt")
			continue
		}
		matched := false
		for _, k := range constants {
			if strings.HasPrefix(s[i:], k.name) {
				toks = append(toks, token{kind: tokConst, text: k.name, value: k.value, pos: i})
				i += len(k.name)
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("unexpected character %q at %d", s[i:i+1], i)
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(s)}), nil
}

// scanNumber returns the length of the number literal at the start of s.
// An exponent is only taken when e is directly followed by digits,
// optionally signed; a bare trailing e is left for the constant.
func scanNumber(s string) int {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	digits := i
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && s[i] == 'e' {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

const maxDepth = 128

var errTooDeep = errors.New("expression nested too deeply")

type parser struct {
	toks  []token
	pos   int
	depth int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expr() (float64, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		return 0, errTooDeep
	}
	left, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			right, err := p.term()
			if err != nil {
				return 0, err
			}
			left += right
		case tokMinus:
			p.next()
			right, err := p.term()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

func (p *parser) term() (float64, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek().kind {
		case tokStar:
			p.next()
			right, err := p.unary()
			if err != nil {
				return 0, err
			}
			left *= right
		case tokSlash:
			p.next()
			right, err := p.unary()
			if err != nil {
				return 0, err
			}
			left /= right
		case tokConst, tokSqrt, tokLParen:
			// implicit multiplication: 2pi, 3sqrt(2), 2(x+1)
			right, err := p.power()
			if err != nil {
				return 0, err
			}
			left *= right
		default:
			return left, nil
		}
	}
}

func (p *parser) unary() (float64, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		return 0, errTooDeep
	}
	switch p.peek().kind {
	case tokMinus:
		p.next()
		v, err := p.unary()
		return -v, err
	case tokPlus:
		p.next()
		return p.unary()
	}
	return p.power()
}

// power is right-associative and binds tighter than unary minus, so -2^2 is -4.
func (p *parser) power() (float64, error) {
	base, err := p.atom()
	if err != nil {
		return 0, err
	}
	if p.peek().kind != tokCaret {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return 0, err
	}
	return math.Pow(base, exp), nil
}

func (p *parser) atom() (float64, error) {
	t := p.next()
	switch t.kind {
	case tokNumber, tokConst:
		return t.value, nil
	case tokSqrt:
		if p.peek().kind != tokLParen {
			return 0, fmt.Errorf("sqrt at %d needs parentheses", t.pos)
		}
		v, err := p.group()
		if err != nil {
			return 0, err
		}
		return math.Sqrt(v), nil
	case tokLParen:
		p.pos--
		return p.group()
	case tokEOF:
		return 0, errors.New("unexpected end of expression")
	}
	return 0, fmt.Errorf("unexpected %q at %d", t.text, t.pos)
}

func (p *parser) group() (float64, error) {
	p.next() // (
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	if t := p.next(); t.kind != tokRParen {
		return 0, fmt.Errorf("missing ) at %d", t.pos)
	}
	return v, nil
}
