package answer

import "fmt"

// validateChoice grades multiple-choice and dropdown answers.
func (v *Vocabulary) validateChoice(user, want string, c Classification) Result {
	if Normalize(user) == "" || Normalize(want) == "" {
		return incorrect(missingAnswer(want))
	}
	if v.sameChoice(user, want, c) {
		return correct()
	}
	return incorrect(fmt.Sprintf("The correct answer is %q.", want))
}

func (v *Vocabulary) sameChoice(user, want string, c Classification) bool {
	switch {
	case c.Symbol:
		return Normalize(user) == Normalize(want)
	case c.Math && !c.Comparison:
		return sameExpressionOrText(user, want)
	}
	// Comparison questions and plain options: number words and digits
	// resolve to the same integer, so "seven" and "7" agree.
	a, okA := v.resolveInt(user)
	b, okB := v.resolveInt(want)
	if okA && okB {
		return a == b
	}
	return Normalize(user) == Normalize(want)
}
