package answer

import (
	"slices"
	"strconv"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  Paris ", "paris"},
		{"New  York", "new  york"},
		{"\tÉCOLE\n", "école"},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if again := Normalize(Normalize(tc.in)); again != Normalize(tc.in) {
			t.Errorf("Normalize not idempotent on %q", tc.in)
		}
	}
}

func TestWordToNumber(t *testing.T) {
	tests := []struct {
		word string
		want int
		ok   bool
	}{
		{"zero", 0, true},
		{"Seven", 7, true},
		{" ten ", 10, true},
		{"twenty", 20, true},
		{"twenty-one", 0, false},
		{"7", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		got, ok := WordToNumber(tc.word)
		if got != tc.want || ok != tc.ok {
			t.Errorf("WordToNumber(%q) = %d, %v; want %d, %v", tc.word, got, ok, tc.want, tc.ok)
		}
	}
}

func TestWordToNumber_AgreesWithDigits(t *testing.T) {
	for word, n := range english.NumberWords {
		fromWord, _ := WordToNumber(word)
		fromDigits, err := strconv.Atoi(strconv.Itoa(n))
		if err != nil || fromWord != fromDigits {
			t.Errorf("%q: word path %d, digit path %d", word, fromWord, fromDigits)
		}
	}
}

func TestExtractComparisonPredicate(t *testing.T) {
	tests := []struct {
		text  string
		want  ComparisonPredicate
		holds bool
	}{
		{"Is 7 greater than 3?", ComparisonPredicate{GreaterThan, 7, 3}, true},
		{"Is 2 greater than 5?", ComparisonPredicate{GreaterThan, 2, 5}, false},
		{"Is 1,000 less than 999?", ComparisonPredicate{LessThan, 1000, 999}, false},
		{`Is "seven" equal to 7?`, ComparisonPredicate{EqualTo, 7, 7}, true},
		{`Is 'three' less than 'ten'?`, ComparisonPredicate{LessThan, 3, 10}, true},
		{"Is 4.5 greater than 4?", ComparisonPredicate{GreaterThan, 4.5, 4}, true},
		{"Is -5 less than 2?", ComparisonPredicate{LessThan, -5, 2}, true},
		{"Is 3² greater than 8?", ComparisonPredicate{GreaterThan, 9, 8}, true},
		{"Is 10 greater than or equal to 10?", ComparisonPredicate{GreaterOrEqual, 10, 10}, true},
		{"Is 4 less than or equal to 3?", ComparisonPredicate{LessOrEqual, 4, 3}, false},
	}
	for _, tc := range tests {
		got, ok := ExtractComparisonPredicate(tc.text)
		if !ok {
			t.Errorf("ExtractComparisonPredicate(%q) found nothing", tc.text)
			continue
		}
		if got != tc.want {
			t.Errorf("ExtractComparisonPredicate(%q) = %+v, want %+v", tc.text, got, tc.want)
		}
		if got.Holds() != tc.holds {
			t.Errorf("%q: Holds() = %v, want %v", tc.text, got.Holds(), tc.holds)
		}
	}
}

func TestExtractComparisonPredicate_TooFewOperands(t *testing.T) {
	for _, text := range []string{
		"Is 7 greater?",
		"Is seven greater than three?",
		"Which is greater?",
	} {
		if p, ok := ExtractComparisonPredicate(text); ok {
			t.Errorf("ExtractComparisonPredicate(%q) = %+v, want no match", text, p)
		}
	}
}

func TestComparisonSubset(t *testing.T) {
	v := English()
	tests := []struct {
		question string
		options  []string
		want     []string
		ok       bool
	}{
		{"Select all numbers greater than 10.", []string{"5", "12", "20", "10"}, []string{"12", "20"}, true},
		{"Which are less than or equal to 4?", []string{"3", "4", "5"}, []string{"3", "4"}, true},
		{"Pick numbers less than five", []string{"two", "6", "4"}, []string{"two", "4"}, true},
		{"Select all numbers greater than 10.", []string{"5", "twelve", "cat"}, nil, false},
		{"Select all numbers greater than ten apples", nil, nil, false},
		{"Select the largest", []string{"1", "2"}, nil, false},
	}
	for _, tc := range tests {
		got, ok := v.comparisonSubset(tc.question, tc.options)
		if ok != tc.ok || !slices.Equal(got, tc.want) {
			t.Errorf("comparisonSubset(%q, %v) = %v, %v; want %v, %v", tc.question, tc.options, got, ok, tc.want, tc.ok)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want Classification
	}{
		{"What is 3²?", Classification{Math: true}},
		{"What is 5 plus 2?", Classification{Math: true}},
		{"Calculate the sum of 4 and 6", Classification{Math: true}},
		{"What is a noun?", Classification{}},
		{"Which symbol means addition?", Classification{Symbol: true}},
		{"Is 7 greater than 3?", Classification{Comparison: true}},
		{"Which number is less than 9 minus 3?", Classification{Math: true, Comparison: true}},
	}
	v := English()
	for _, tc := range tests {
		if got := v.Classify(tc.text); got != tc.want {
			t.Errorf("Classify(%q) = %+v, want %+v", tc.text, got, tc.want)
		}
	}
}

func TestContainsWord(t *testing.T) {
	if containsWord("notation matters", []string{"not"}) {
		t.Error("\"not\" should not match inside \"notation\"")
	}
	if !containsWord("this is not true", []string{"not"}) {
		t.Error("\"not\" should match as a word")
	}
	if containsWord("show me", []string{"how"}) {
		t.Error("\"how\" should not match inside \"show\"")
	}
}

func TestExtractPredicate_Exactness(t *testing.T) {
	tests := []struct {
		text  string
		exact bool
	}{
		{"Is 7 greater than 3?", true},
		{"Is -5 less than 2?", true},
		{"Is 3² greater than 8?", true},
		{`Is "seven" equal to 7?`, true},
		{"Is 3 + 4 greater than 6?", false},
		{"Is 10-5 greater than 3?", false},
		{"Is 2x greater than 3 when x is 1?", false},
		{"Is 7 greater than 3 and less than 9?", false},
	}
	for _, tc := range tests {
		_, exact, ok := english.extractPredicate(tc.text)
		if !ok {
			t.Errorf("extractPredicate(%q) found nothing", tc.text)
			continue
		}
		if exact != tc.exact {
			t.Errorf("extractPredicate(%q) exact = %v, want %v", tc.text, exact, tc.exact)
		}
	}
}

func TestExtractThreshold(t *testing.T) {
	tests := []struct {
		text string
		want threshold
	}{
		{"Select all numbers greater than 10.", threshold{GreaterThan, 10}},
		{"Pick every value less than or equal to four.", threshold{LessOrEqual, 4}},
		{"Which are greater than or equal to -2?", threshold{GreaterOrEqual, -2}},
	}
	for _, tc := range tests {
		got, ok := english.extractThreshold(tc.text)
		if !ok || got != tc.want {
			t.Errorf("extractThreshold(%q) = %+v, %v; want %+v", tc.text, got, ok, tc.want)
		}
	}
}
