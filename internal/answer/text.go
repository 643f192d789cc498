package answer

import (
	"fmt"
	"math"
)

// numericTolerance is the absolute tolerance for evaluated expressions.
const numericTolerance = 1e-4

// numericallyEqual evaluates both sides. comparable is false when either
// side is not an expression, and the caller falls back to strings.
func numericallyEqual(a, b string) (equal, comparable bool) {
	x, y := EvaluateExpression(a), EvaluateExpression(b)
	if math.IsNaN(x) || math.IsNaN(y) {
		return false, false
	}
	return x == y || math.Abs(x-y) <= numericTolerance, true
}

// sameExpressionOrText compares numerically when both sides evaluate and
// falls back to normalized equality otherwise.
func sameExpressionOrText(a, b string) bool {
	if eq, ok := numericallyEqual(a, b); ok {
		return eq
	}
	return Normalize(a) == Normalize(b)
}

func (v *Vocabulary) validateText(user, want, question string, c Classification) Result {
	if Normalize(user) == "" || Normalize(want) == "" {
		return incorrect(missingAnswer(want))
	}

	var ok bool
	switch {
	case c.Symbol:
		ok = Normalize(user) == Normalize(want)
	case c.Math:
		ok = sameExpressionOrText(user, want)
	default:
		ok = Normalize(user) == Normalize(want)
	}
	if ok {
		return correct()
	}
	return incorrect(v.textFeedback(question, want))
}

// textFeedback words the explanation after the kind of question asked.
func (v *Vocabulary) textFeedback(question, want string) string {
	q := Normalize(question)
	switch {
	case containsWord(q, v.Definitional):
		return fmt.Sprintf("Not quite. The definition we were looking for is: %s.", want)
	case containsWord(q, v.Illustrative):
		return fmt.Sprintf("That is not one of the expected examples. A correct example is: %s.", want)
	case containsWord(q, v.Causal):
		return fmt.Sprintf("That misses the key idea. The expected explanation is: %s.", want)
	case containsWord(q, v.Procedural):
		return fmt.Sprintf("That is not the expected method. The correct approach is: %s.", want)
	default:
		return fmt.Sprintf("The correct answer is: %s.", want)
	}
}

func missingAnswer(want string) string {
	if Normalize(want) == "" {
		return "An answer is missing."
	}
	return fmt.Sprintf("No answer was given. The correct answer is: %s.", want)
}
