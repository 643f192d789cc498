package answer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Classification records which comparison strategy nuances apply to a
// question. It is computed once per validation by the dispatcher.
type Classification struct {
	Math       bool // arithmetic question: compare numerically when possible
	Symbol     bool // notation question: compare literally
	Comparison bool // "greater than" / "less than" / "equal to" phrasing
}

// Classify runs every capability check over the question text.
func (v *Vocabulary) Classify(text string) Classification {
	return Classification{
		Math:       v.IsMathQuestion(text),
		Symbol:     v.RequiresSymbolComparison(text),
		Comparison: v.IsNumberComparisonQuestion(text),
	}
}

// IsMathQuestion reports whether the question text contains a math keyword
// or a math notation character.
func (v *Vocabulary) IsMathQuestion(text string) bool {
	t := Normalize(text)
	return containsAny(t, v.MathKeywords) || containsAny(t, v.MathSymbols)
}

// RequiresSymbolComparison reports whether the question asks about a sign,
// symbol or operator, in which case answers must match literally.
func (v *Vocabulary) RequiresSymbolComparison(text string) bool {
	return containsAny(Normalize(text), v.SymbolKeywords)
}

// IsNumberComparisonQuestion reports whether the question uses comparison
// phrasing.
func (v *Vocabulary) IsNumberComparisonQuestion(text string) bool {
	t := Normalize(text)
	return containsAny(t, v.GreaterThan) || containsAny(t, v.LessThan) || containsAny(t, v.EqualTo)
}

// comparisonOperator picks the relation named by the text. Greater-than
// wins over less-than; anything else is treated as equality.
func (v *Vocabulary) comparisonOperator(text string) ComparisonOperator {
	op, _, _ := v.relation(Normalize(text))
	return op
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(text, n) {
			return true
		}
	}
	return false
}

// containsWord is containsAny with word boundaries, so "not" does not
// match "notation".
func containsWord(text string, words []string) bool {
	for _, w := range words {
		if w == "" {
			continue
		}
		for i := 0; ; {
			j := strings.Index(text[i:], w)
			if j < 0 {
				break
			}
			start, end := i+j, i+j+len(w)
			if boundaryBefore(text, start) && boundaryAfter(text, end) {
				return true
			}
			i = start + 1
		}
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// Package-level checks use the built-in English vocabulary.

// IsMathQuestion reports whether text is an arithmetic question.
func IsMathQuestion(text string) bool { return english.IsMathQuestion(text) }

// RequiresSymbolComparison reports whether text asks about notation.
func RequiresSymbolComparison(text string) bool { return english.RequiresSymbolComparison(text) }

// IsNumberComparisonQuestion reports whether text uses comparison phrasing.
func IsNumberComparisonQuestion(text string) bool { return english.IsNumberComparisonQuestion(text) }
