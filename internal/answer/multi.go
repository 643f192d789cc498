package answer

import (
	"fmt"
	"strings"
)

type stringSet map[string]struct{}

func newSet(items []string) stringSet {
	s := make(stringSet, len(items))
	for _, it := range items {
		if n := Normalize(it); n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

func (s stringSet) equal(o stringSet) bool {
	if len(s) != len(o) {
		return false
	}
	for k := range s {
		if _, ok := o[k]; !ok {
			return false
		}
	}
	return true
}

func (v *Vocabulary) isAllOfTheAbove(item string) bool {
	return containsAny(Normalize(item), v.AllOfTheAbove)
}

// validateMultiple grades multi-select answers by exact set equality. No
// partial credit.
func (v *Vocabulary) validateMultiple(user, want, options []string, question string, c Classification) Result {
	got := newSet(user)
	if len(got) == 0 || len(newSet(want)) == 0 {
		return incorrect(fmt.Sprintf("No answer was selected. The correct answers are: %s.", strings.Join(want, ", ")))
	}

	if aota, others, ok := v.allOfTheAbove(want, options); ok {
		if got.equal(newSet([]string{aota})) || (len(others) > 0 && got.equal(newSet(others))) {
			return correct()
		}
		return incorrect(fmt.Sprintf("The correct answer is %q: every other option applies.", aota))
	}

	if got.equal(newSet(want)) {
		return correct()
	}
	// A threshold computed from the question is a second accepted answer,
	// never a replacement for the key.
	if c.Comparison {
		if subset, ok := v.comparisonSubset(question, options); ok && got.equal(newSet(subset)) {
			return correct()
		}
	}
	return incorrect(fmt.Sprintf("The correct answers are: %s.", strings.Join(want, ", ")))
}

// allOfTheAbove reports whether the key names an "all of the above" option
// and returns that option plus the options it stands for.
func (v *Vocabulary) allOfTheAbove(want, options []string) (aota string, others []string, ok bool) {
	for _, w := range want {
		if v.isAllOfTheAbove(w) {
			aota, ok = w, true
			break
		}
	}
	if !ok {
		return "", nil, false
	}
	pool := options
	if len(pool) == 0 {
		pool = want
	}
	for _, o := range pool {
		if !v.isAllOfTheAbove(o) {
			others = append(others, o)
		}
	}
	return aota, others, true
}

// comparisonSubset computes which options satisfy a threshold stated in
// the question ("Select all numbers greater than 10"). Every option must
// be numeric for the computed subset to apply.
func (v *Vocabulary) comparisonSubset(question string, options []string) ([]string, bool) {
	if len(options) == 0 {
		return nil, false
	}
	th, ok := v.extractThreshold(question)
	if !ok {
		return nil, false
	}
	var subset []string
	for _, o := range options {
		n, ok := v.resolveNumber(o)
		if !ok {
			return nil, false
		}
		if th.admits(n) {
			subset = append(subset, o)
		}
	}
	return subset, true
}
