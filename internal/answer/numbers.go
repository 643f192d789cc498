package answer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// WordToNumber maps a spelled-out number ("seven") to its value.
func (v *Vocabulary) WordToNumber(word string) (int, bool) {
	n, ok := v.NumberWords[Normalize(word)]
	return n, ok
}

// WordToNumber uses the built-in English vocabulary.
func WordToNumber(word string) (int, bool) { return english.WordToNumber(word) }

// resolveInt tries the number-word table first, then an integer parse.
func (v *Vocabulary) resolveInt(s string) (int, bool) {
	if n, ok := v.WordToNumber(s); ok {
		return n, true
	}
	n, err := strconv.Atoi(strings.ReplaceAll(Normalize(s), ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

// resolveNumber is resolveInt widened to decimals.
func (v *Vocabulary) resolveNumber(s string) (float64, bool) {
	if n, ok := v.resolveInt(s); ok {
		return float64(n), true
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(Normalize(s), ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// operandRe matches a signed number (thousands separators and trailing
// superscript exponents allowed) or a quoted word. Quotes may be straight
// or curly.
var operandRe = regexp.MustCompile(`(-?(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?[⁰¹²³⁴⁵⁶⁷⁸⁹]*)|["'“”‘’]([\p{L}-]+)["'“”‘’]`)

// operands returns every resolvable number in text, in order of appearance.
// exact is false when an operand touches other arithmetic ("3 + 4", "2x",
// "10-5"), since the values found are then not the quantities compared.
func (v *Vocabulary) operands(text string) (out []float64, exact bool) {
	exact = true
	for _, m := range operandRe.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[1]
		if m[2] < 0 {
			if !standsAlone(text, start, end) {
				exact = false
			}
			if n, ok := v.resolveNumber(text[m[4]:m[5]]); ok {
				out = append(out, n)
			}
			continue
		}

		raw := text[m[2]:m[3]]
		if strings.HasPrefix(raw, "-") && start > 0 {
			if r, _ := utf8.DecodeLastRuneInString(text[:start]); unicode.IsLetter(r) || unicode.IsDigit(r) || r == ')' {
				// "10-5": the minus is an operator, not a sign.
				raw, start = raw[1:], start+1
			}
		}
		if !standsAlone(text, start, end) {
			exact = false
		}
		n := EvaluateExpression(strings.ReplaceAll(raw, ",", ""))
		if math.IsNaN(n) || math.IsInf(n, 0) {
			exact = false
			continue
		}
		out = append(out, n)
	}
	return out, exact
}

// standsAlone reports whether text[start:end] is bordered by neither a word
// character nor an arithmetic operator.
func standsAlone(text string, start, end int) bool {
	touches := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("+-×*/÷^()%", r)
	}
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); touches(r) {
			return false
		}
	}
	if end < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[end:]); touches(r) {
			return false
		}
	}
	return true
}

// ExtractComparisonPredicate pulls a two-operand comparison out of question
// text such as "Is 7 greater than 3?" or `Is "seven" less than "ten"?`.
// It reports false when fewer than two operands can be resolved.
func (v *Vocabulary) ExtractComparisonPredicate(text string) (ComparisonPredicate, bool) {
	p, _, ok := v.extractPredicate(text)
	return p, ok
}

// extractPredicate is ExtractComparisonPredicate that also reports whether
// the question holds exactly two free-standing operands.
func (v *Vocabulary) extractPredicate(text string) (ComparisonPredicate, bool, bool) {
	t := Normalize(text)
	ops, exact := v.operands(t)
	if len(ops) < 2 {
		return ComparisonPredicate{}, false, false
	}
	return ComparisonPredicate{
		Operator: v.comparisonOperator(t),
		Left:     ops[0],
		Right:    ops[1],
	}, exact && len(ops) == 2, true
}

// ExtractComparisonPredicate uses the built-in English vocabulary.
func ExtractComparisonPredicate(text string) (ComparisonPredicate, bool) {
	return english.ExtractComparisonPredicate(text)
}

// threshold is a one-sided bound such as "greater than 10" or
// "less than or equal to 4".
type threshold struct {
	op    ComparisonOperator
	value float64
}

func (th threshold) admits(n float64) bool {
	return th.op.Apply(n, th.value)
}

// extractThreshold finds "<greater|less> than [or <equal to>] N" in text.
func (v *Vocabulary) extractThreshold(text string) (threshold, bool) {
	op, rest, ok := v.relation(Normalize(text))
	if !ok {
		return threshold{}, false
	}
	word, _, _ := strings.Cut(rest, " ")
	word = strings.Trim(word, `?.!:;"'“”‘’()`)
	n, ok := v.resolveNumber(word)
	if !ok {
		return threshold{}, false
	}
	return threshold{op: op, value: n}, true
}

// relation finds the first greater-than or less-than phrase in normalized
// text t. It returns the operator, widened when "or equal to" follows, and
// the text after the phrase.
func (v *Vocabulary) relation(t string) (ComparisonOperator, string, bool) {
	scan := func(phrases []string, strict, inclusive ComparisonOperator) (ComparisonOperator, string, bool) {
		for _, p := range phrases {
			if p == "" {
				continue
			}
			i := strings.Index(t, p)
			if i < 0 {
				continue
			}
			rest := strings.TrimSpace(t[i+len(p):])
			for _, eq := range v.EqualTo {
				if eq == "" {
					continue
				}
				if after, ok := strings.CutPrefix(rest, "or "+eq); ok {
					return inclusive, strings.TrimSpace(after), true
				}
			}
			return strict, rest, true
		}
		return EqualTo, "", false
	}
	if op, rest, ok := scan(v.GreaterThan, GreaterThan, GreaterOrEqual); ok {
		return op, rest, true
	}
	return scan(v.LessThan, LessThan, LessOrEqual)
}
