package answer

import (
	"fmt"
	"slices"
	"strconv"
)

func (v *Vocabulary) parseBool(s string) (value, ok bool) {
	n := Normalize(s)
	switch {
	case slices.Contains(v.True, n):
		return true, true
	case slices.Contains(v.False, n):
		return false, true
	}
	return false, false
}

func (v *Vocabulary) validateTrueFalse(user, want, question string, c Classification) Result {
	if Normalize(user) == "" || Normalize(want) == "" {
		return incorrect(missingAnswer(want))
	}

	// The computed truth replaces the key only when the two operands were
	// read cleanly, or when it agrees with the key anyway.
	if c.Comparison {
		if pred, exact, ok := v.extractPredicate(question); ok {
			truth := pred.Holds()
			key, keyIsBool := v.parseBool(want)
			if exact || (keyIsBool && key == truth) {
				got, isBool := v.parseBool(user)
				if isBool && got == truth {
					return correct()
				}
				return incorrect(comparisonFeedback(pred, truth))
			}
		}
	}

	if Normalize(user) == Normalize(want) {
		return correct()
	}
	return incorrect(v.trueFalseFeedback(question, Normalize(want)))
}

func comparisonFeedback(p ComparisonPredicate, truth bool) string {
	not := ""
	if !truth {
		not = "not "
	}
	return fmt.Sprintf("%s is %s%s %s, so the answer is %t.",
		formatNumber(p.Left), not, p.Operator, formatNumber(p.Right), truth)
}

func (v *Vocabulary) trueFalseFeedback(question, want string) string {
	q := Normalize(question)
	switch {
	case containsWord(q, v.Never):
		return fmt.Sprintf("Statements that say \"never\" fail if a single case exists. The answer is %s.", want)
	case containsWord(q, v.Always):
		return fmt.Sprintf("Statements that say \"always\" fail if a single exception exists. The answer is %s.", want)
	case containsWord(q, v.Negation):
		return fmt.Sprintf("Watch the \"not\" in the statement; it flips the meaning. The answer is %s.", want)
	default:
		return fmt.Sprintf("The statement is %s.", want)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
