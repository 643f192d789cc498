package answer

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

var cubeQuestion = Question{
	Type:          TypeMultipleChoice,
	Text:          "What is 3²?",
	Options:       []string{"6", "9", "12", "3"},
	CorrectAnswer: "9",
}

func TestValidate_Scenarios(t *testing.T) {
	comparison := Question{Type: TypeTrueFalse, Text: "Is 7 greater than 3?", CorrectAnswer: "true"}
	animals := Question{
		Type:           TypeMultipleAnswer,
		Text:           "Which of these are animals?",
		Options:        []string{"Cats", "Dogs", "Birds", "All of the above"},
		CorrectAnswers: []string{"All of the above"},
	}
	noun := Question{Type: TypeText, Text: "What is a noun?", CorrectAnswer: "a person, place, or thing"}

	tests := []struct {
		name    string
		q       Question
		a       Answer
		want    Outcome
		explain []string
	}{
		{"math choice literal", cubeQuestion, Text("9"), Correct, nil},
		{"math choice expression", cubeQuestion, Text("3^2"), Correct, nil},
		{"math choice superscript", cubeQuestion, Text("3²"), Correct, nil},
		{"math choice wrong", cubeQuestion, Text("6"), Incorrect, []string{"9"}},
		{"comparison true", comparison, Text("true"), Correct, nil},
		{"comparison false", comparison, Text("false"), Incorrect, []string{"7", "greater than", "3"}},
		{"all of the above by members", animals, List("Cats", "Dogs", "Birds"), Correct, nil},
		{"all of the above literal", animals, List("All of the above"), Correct, nil},
		{"all of the above partial", animals, List("Cats"), Incorrect, nil},
		{"definitional text", noun, Text("a word"), Incorrect, []string{"a person, place, or thing"}},
		{"malformed multiple answer", Question{Type: TypeMultipleAnswer, CorrectAnswers: []string{}}, List("a"), Ungradable, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Validate(tc.q, tc.a)
			if got.Outcome != tc.want {
				t.Fatalf("outcome = %v, want %v (explanation %q)", got.Outcome, tc.want, got.Explanation)
			}
			if got.IsCorrect != (tc.want == Correct) {
				t.Errorf("IsCorrect = %v for outcome %v", got.IsCorrect, got.Outcome)
			}
			if tc.want == Correct && got.Explanation != "" {
				t.Errorf("correct result carries explanation %q", got.Explanation)
			}
			if tc.want != Correct && got.Explanation == "" {
				t.Error("non-correct result has no explanation")
			}
			for _, s := range tc.explain {
				if !strings.Contains(got.Explanation, s) {
					t.Errorf("explanation %q does not mention %q", got.Explanation, s)
				}
			}
		})
	}
}

func TestValidate_TextCaseAndWhitespace(t *testing.T) {
	q := Question{Type: TypeText, Text: "What is the capital of France?", CorrectAnswer: "Paris"}
	for _, a := range []string{"paris", "  Paris ", "PARIS"} {
		if got := Validate(q, Text(a)); got.Outcome != Correct {
			t.Errorf("Validate(%q) = %v, want correct", a, got.Outcome)
		}
	}
}

func TestValidate_TextMath(t *testing.T) {
	q := Question{Type: TypeText, Text: "Calculate 6 × 7", CorrectAnswer: "42"}
	tests := []struct {
		answer string
		want   Outcome
	}{
		{"42", Correct},
		{"6×7", Correct},
		{"42.00001", Correct},
		{"42.1", Incorrect},
		{"forty two", Incorrect},
	}
	for _, tc := range tests {
		if got := Validate(q, Text(tc.answer)); got.Outcome != tc.want {
			t.Errorf("Validate(%q) = %v, want %v", tc.answer, got.Outcome, tc.want)
		}
	}
}

func TestValidate_TextFeedbackByCategory(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"Define photosynthesis.", "definition"},
		{"Give an example of a mammal.", "example"},
		{"Explain why the sky is blue.", "explanation"},
		{"How do you find the area of a rectangle?", "approach"},
		{"Name the largest planet.", "correct answer"},
	}
	for _, tc := range tests {
		q := Question{Type: TypeText, Text: tc.question, CorrectAnswer: "expected"}
		got := Validate(q, Text("something else"))
		if got.Outcome != Incorrect {
			t.Fatalf("%q: outcome = %v", tc.question, got.Outcome)
		}
		if !strings.Contains(got.Explanation, tc.want) || !strings.Contains(got.Explanation, "expected") {
			t.Errorf("%q: explanation %q should mention %q and the answer", tc.question, got.Explanation, tc.want)
		}
	}
}

func TestValidate_EmptyAnswerIsIncorrect(t *testing.T) {
	tests := []struct {
		q Question
		a Answer
	}{
		{Question{Type: TypeText, Text: "Name a color", CorrectAnswer: "red"}, Text("")},
		{Question{Type: TypeText, Text: "Name a color", CorrectAnswer: "red"}, Text("   ")},
		{cubeQuestion, Text("")},
		{Question{Type: TypeTrueFalse, Text: "Is 7 greater than 3?", CorrectAnswer: "true"}, Text("")},
		{Question{Type: TypeMultipleAnswer, Options: []string{"a", "b"}, CorrectAnswers: []string{"a"}}, List()},
	}
	for _, tc := range tests {
		if got := Validate(tc.q, tc.a); got.Outcome != Incorrect {
			t.Errorf("%s with empty answer: outcome = %v, want incorrect", tc.q.Type, got.Outcome)
		}
	}
}

func TestValidate_ChoiceNumberWords(t *testing.T) {
	q := Question{
		Type:          TypeDropdown,
		Text:          "How many legs does a spider have?",
		Options:       []string{"six", "eight", "ten"},
		CorrectAnswer: "eight",
	}
	for _, a := range []string{"eight", "8", " Eight "} {
		if got := Validate(q, Text(a)); got.Outcome != Correct {
			t.Errorf("Validate(%q) = %v, want correct", a, got.Outcome)
		}
	}

	cmp := Question{
		Type:          TypeMultipleChoice,
		Text:          "Which number is greater than 5?",
		Options:       []string{"three", "seven"},
		CorrectAnswer: "seven",
	}
	if got := Validate(cmp, Text("7")); got.Outcome != Correct {
		t.Errorf("comparison choice with digits = %v, want correct", got.Outcome)
	}
	if got := Validate(cmp, Text("3")); got.Outcome != Incorrect {
		t.Errorf("comparison choice with wrong digits = %v, want incorrect", got.Outcome)
	}
}

func TestValidate_SymbolQuestion(t *testing.T) {
	q := Question{
		Type:          TypeMultipleChoice,
		Text:          "Which symbol means addition?",
		Options:       []string{"+", "-", "×"},
		CorrectAnswer: "+",
	}
	if got := Validate(q, Text("+")); got.Outcome != Correct {
		t.Errorf("Validate(+) = %v, want correct", got.Outcome)
	}
	if got := Validate(q, Text("-")); got.Outcome != Incorrect {
		t.Errorf("Validate(-) = %v, want incorrect", got.Outcome)
	}
}

func TestValidate_TrueFalse(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		answer  string
		want    Outcome
		explain string
	}{
		{
			name:   "computed truth beats a wrong key",
			q:      Question{Type: TypeTrueFalse, Text: "Is 2 greater than 5?", CorrectAnswer: "true"},
			answer: "false",
			want:   Correct,
		},
		{
			name:    "comparison with thousands separator",
			q:       Question{Type: TypeTrueFalse, Text: "Is 1,200 less than 1,000?", CorrectAnswer: "false"},
			answer:  "true",
			want:    Incorrect,
			explain: "1200 is not less than 1000",
		},
		{
			name:    "negation wording",
			q:       Question{Type: TypeTrueFalse, Text: "The sun is not a star.", CorrectAnswer: "false"},
			answer:  "true",
			want:    Incorrect,
			explain: "\"not\"",
		},
		{
			name:    "always wording",
			q:       Question{Type: TypeTrueFalse, Text: "Cats always land on their feet.", CorrectAnswer: "false"},
			answer:  "TRUE",
			want:    Incorrect,
			explain: "\"always\"",
		},
		{
			name:    "never wording",
			q:       Question{Type: TypeTrueFalse, Text: "Water never boils.", CorrectAnswer: "false"},
			answer:  "true",
			want:    Incorrect,
			explain: "\"never\"",
		},
		{
			name:    "plain statement",
			q:       Question{Type: TypeTrueFalse, Text: "Paris is in France.", CorrectAnswer: "True"},
			answer:  "false",
			want:    Incorrect,
			explain: "true",
		},
		{
			name:   "case-insensitive fallback",
			q:      Question{Type: TypeTrueFalse, Text: "Paris is in France.", CorrectAnswer: "True"},
			answer: " true ",
			want:   Correct,
		},
		{
			name:   "negative operand",
			q:      Question{Type: TypeTrueFalse, Text: "Is -5 less than 2?", CorrectAnswer: "true"},
			answer: "true",
			want:   Correct,
		},
		{
			name:    "negative operand wrong answer",
			q:       Question{Type: TypeTrueFalse, Text: "Is -5 less than 2?", CorrectAnswer: "true"},
			answer:  "false",
			want:    Incorrect,
			explain: "-5 is less than 2, so the answer is true.",
		},
		{
			name:   "superscript operand",
			q:      Question{Type: TypeTrueFalse, Text: "Is 3² greater than 8?", CorrectAnswer: "true"},
			answer: "true",
			want:   Correct,
		},
		{
			name:   "inclusive comparison",
			q:      Question{Type: TypeTrueFalse, Text: "Is 10 greater than or equal to 10?", CorrectAnswer: "true"},
			answer: "true",
			want:   Correct,
		},
		{
			name:    "inclusive comparison wording",
			q:       Question{Type: TypeTrueFalse, Text: "Is 4 less than or equal to 3?", CorrectAnswer: "false"},
			answer:  "true",
			want:    Incorrect,
			explain: "4 is not less than or equal to 3",
		},
		{
			name:   "arithmetic operands defer to the key",
			q:      Question{Type: TypeTrueFalse, Text: "Is 3 + 4 greater than 6?", CorrectAnswer: "true"},
			answer: "true",
			want:   Correct,
		},
		{
			name:   "one operand falls back to the key",
			q:      Question{Type: TypeTrueFalse, Text: "Is 7 greater than every digit?", CorrectAnswer: "false"},
			answer: "false",
			want:   Correct,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Validate(tc.q, Text(tc.answer))
			if got.Outcome != tc.want {
				t.Fatalf("outcome = %v, want %v (%q)", got.Outcome, tc.want, got.Explanation)
			}
			if tc.explain != "" && !strings.Contains(got.Explanation, tc.explain) {
				t.Errorf("explanation %q does not contain %q", got.Explanation, tc.explain)
			}
		})
	}
}

func TestValidate_MultipleAnswerSetEquality(t *testing.T) {
	q := Question{
		Type:           TypeMultipleAnswer,
		Text:           "Which are primary colors?",
		Options:        []string{"Red", "Green", "Blue", "Yellow"},
		CorrectAnswers: []string{"Red", "Blue", "Yellow"},
	}
	tests := []struct {
		answer []string
		want   Outcome
	}{
		{[]string{"Red", "Blue", "Yellow"}, Correct},
		{[]string{"yellow", " RED", "blue"}, Correct},
		{[]string{"Red", "Blue", "Blue", "Yellow"}, Correct},
		{[]string{"Red", "Blue"}, Incorrect},
		{[]string{"Red", "Blue", "Yellow", "Green"}, Incorrect},
		{[]string{"Green"}, Incorrect},
	}
	for _, tc := range tests {
		if got := Validate(q, List(tc.answer...)); got.Outcome != tc.want {
			t.Errorf("Validate(%v) = %v, want %v", tc.answer, got.Outcome, tc.want)
		}
	}
}

func TestValidate_MultipleAnswerOrderIndependent(t *testing.T) {
	q := Question{
		Type:           TypeMultipleAnswer,
		Text:           "Select the even numbers",
		Options:        []string{"1", "2", "3", "4", "6"},
		CorrectAnswers: []string{"2", "4", "6"},
	}
	r := rand.New(rand.NewPCG(1, 2))
	for _, sel := range [][]string{{"2", "4", "6"}, {"2", "4"}, {"1", "2", "4", "6"}} {
		want := Validate(q, List(sel...)).Outcome
		for range 20 {
			shuffled := append([]string(nil), sel...)
			r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
			key := append([]string(nil), q.CorrectAnswers...)
			r.Shuffle(len(key), func(i, j int) { key[i], key[j] = key[j], key[i] })
			q2 := q
			q2.CorrectAnswers = key
			if got := Validate(q2, List(shuffled...)).Outcome; got != want {
				t.Fatalf("shuffled %v against %v = %v, want %v", shuffled, key, got, want)
			}
		}
	}
}

func TestValidate_AllOfTheAbove(t *testing.T) {
	q := Question{
		Type:           TypeMultipleAnswer,
		Text:           "Which of these are animals?",
		Options:        []string{"Cats", "Dogs", "Birds", "All the above"},
		CorrectAnswers: []string{"All the above"},
	}
	tests := []struct {
		answer []string
		want   Outcome
	}{
		{[]string{"all the above"}, Correct},
		{[]string{"Birds", "Cats", "Dogs"}, Correct},
		{[]string{"Cats", "Dogs", "Birds", "All the above"}, Incorrect},
		{[]string{"Cats", "Dogs"}, Incorrect},
		{[]string{"Cats", "All the above"}, Incorrect},
	}
	for _, tc := range tests {
		if got := Validate(q, List(tc.answer...)); got.Outcome != tc.want {
			t.Errorf("Validate(%v) = %v, want %v", tc.answer, got.Outcome, tc.want)
		}
	}
}

func TestValidate_ComputedSubset(t *testing.T) {
	q := Question{
		Type:           TypeMultipleAnswer,
		Text:           "Select all numbers greater than 10.",
		Options:        []string{"5", "12", "20"},
		CorrectAnswers: []string{"12", "20"},
	}
	if got := Validate(q, List("20", "12")); got.Outcome != Correct {
		t.Errorf("computed subset = %v, want correct", got.Outcome)
	}
	got := Validate(q, List("12"))
	if got.Outcome != Incorrect || !strings.Contains(got.Explanation, "12, 20") {
		t.Errorf("partial selection = %v %q, want incorrect naming 12, 20", got.Outcome, got.Explanation)
	}
}

func TestValidate_ComputedSubsetNeverOverridesKey(t *testing.T) {
	q := Question{
		Type:           TypeMultipleAnswer,
		Text:           "Select the numbers greater than 5 that are odd.",
		Options:        []string{"3", "7", "8", "9"},
		CorrectAnswers: []string{"7", "9"},
	}
	if got := Validate(q, List("9", "7")); got.Outcome != Correct {
		t.Fatalf("key selection = %v %q, want correct", got.Outcome, got.Explanation)
	}
	got := Validate(q, List("7"))
	if got.Outcome != Incorrect || !strings.Contains(got.Explanation, "7, 9") {
		t.Errorf("partial selection = %v %q, want incorrect naming the key", got.Outcome, got.Explanation)
	}

	q.Text = "Select all numbers greater than or equal to 8."
	q.CorrectAnswers = []string{"8", "9"}
	if got := Validate(q, List("8", "9")); got.Outcome != Correct {
		t.Errorf("inclusive threshold = %v, want correct", got.Outcome)
	}
}

func TestCheck_Errors(t *testing.T) {
	e := NewEngine()
	tests := []struct {
		name string
		q    Question
		a    Answer
		kind ErrorKind
	}{
		{"unknown type", Question{Type: "essay", CorrectAnswer: "x"}, Text("x"), KindUnsupportedQuestionType},
		{"empty type", Question{CorrectAnswer: "x"}, Text("x"), KindUnsupportedQuestionType},
		{"key not in options", Question{Type: TypeMultipleChoice, Options: []string{"a", "b"}, CorrectAnswer: "c"}, Text("c"), KindMalformedInput},
		{"choice without options", Question{Type: TypeDropdown, CorrectAnswer: "a"}, Text("a"), KindMalformedInput},
		{"missing key", Question{Type: TypeText, Text: "Name a color"}, Text("red"), KindMalformedInput},
		{"list key on scalar type", Question{Type: TypeTrueFalse, CorrectAnswers: []string{"true"}}, Text("true"), KindMalformedInput},
		{"scalar key on multi", Question{Type: TypeMultipleAnswer, Options: []string{"a"}, CorrectAnswer: "a"}, List("a"), KindMalformedInput},
		{"multi key not in options", Question{Type: TypeMultipleAnswer, Options: []string{"a"}, CorrectAnswers: []string{"b"}}, List("b"), KindMalformedInput},
		{"scalar answer to multi", Question{Type: TypeMultipleAnswer, Options: []string{"a"}, CorrectAnswers: []string{"a"}}, Text("a"), KindMalformedInput},
		{"list answer to text", Question{Type: TypeText, CorrectAnswer: "a"}, List("a"), KindMalformedInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Check(tc.q, tc.a)
			if !IsKind(err, tc.kind) {
				t.Fatalf("Check error = %v, want kind %s", err, tc.kind)
			}
			got := e.Validate(tc.q, tc.a)
			if got.Outcome != Ungradable || got.IsCorrect || got.Explanation != UngradableMessage {
				t.Errorf("Validate = %+v, want neutral ungradable result", got)
			}
		})
	}
}

func TestValidate_Deterministic(t *testing.T) {
	q := Question{Type: TypeText, Text: "What is a noun?", CorrectAnswer: "a person, place, or thing"}
	first := Validate(q, Text("a word"))
	for range 50 {
		if got := Validate(q, Text("a word")); got != first {
			t.Fatalf("Validate not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestWithVocabulary(t *testing.T) {
	e := NewEngine(WithVocabulary(Vocabulary{
		GreaterThan: []string{"mayor que"},
		NumberWords: map[string]int{"siete": 7, "tres": 3},
		True:        []string{"verdadero"},
		False:       []string{"falso"},
	}))
	q := Question{Type: TypeTrueFalse, Text: "¿Es 7 mayor que 3?", CorrectAnswer: "verdadero"}
	if got := e.Validate(q, Text("Verdadero")); got.Outcome != Correct {
		t.Errorf("localized comparison = %v, want correct", got.Outcome)
	}
	if got := e.Validate(q, Text("falso")); got.Outcome != Incorrect {
		t.Errorf("localized wrong answer = %v, want incorrect", got.Outcome)
	}

	choice := Question{Type: TypeMultipleChoice, Text: "¿Cuántos?", Options: []string{"tres", "siete"}, CorrectAnswer: "siete"}
	if got := e.Validate(choice, Text("7")); got.Outcome != Correct {
		t.Errorf("localized number word = %v, want correct", got.Outcome)
	}
}

type countingJudge struct {
	calls   int
	verdict Verdict
	err     error
}

func (j *countingJudge) Judge(context.Context, JudgeRequest) (Verdict, error) {
	j.calls++
	return j.verdict, j.err
}

func TestValidateContext_Judge(t *testing.T) {
	leaves := Question{Type: TypeText, Text: "Explain why leaves are green.", CorrectAnswer: "chlorophyll"}
	sum := Question{Type: TypeText, Text: "What is 5 plus 2?", CorrectAnswer: "7"}

	tests := []struct {
		name      string
		q         Question
		answer    string
		judge     countingJudge
		want      Outcome
		wantCalls int
	}{
		{"confident yes overrides", leaves, "because of chlorophyll pigment", countingJudge{verdict: Verdict{Correct: true, Confidence: 0.9}}, Correct, 1},
		{"low confidence ignored", leaves, "because of chlorophyll pigment", countingJudge{verdict: Verdict{Correct: true, Confidence: 0.5}}, Incorrect, 1},
		{"judge error ignored", leaves, "because of chlorophyll pigment", countingJudge{err: errors.New("boom")}, Incorrect, 1},
		{"judge says no", leaves, "sunlight", countingJudge{verdict: Verdict{Correct: false, Confidence: 0.99}}, Incorrect, 1},
		{"deterministic correct skips judge", leaves, "Chlorophyll", countingJudge{verdict: Verdict{Correct: false, Confidence: 1}}, Correct, 0},
		{"math question skips judge", sum, "8", countingJudge{verdict: Verdict{Correct: true, Confidence: 1}}, Incorrect, 0},
		{"empty answer skips judge", leaves, "", countingJudge{verdict: Verdict{Correct: true, Confidence: 1}}, Incorrect, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			j := tc.judge
			e := NewEngine(WithJudge(&j, 0.7))
			got := e.ValidateContext(context.Background(), tc.q, Text(tc.answer))
			if got.Outcome != tc.want {
				t.Errorf("outcome = %v, want %v", got.Outcome, tc.want)
			}
			if j.calls != tc.wantCalls {
				t.Errorf("judge calls = %d, want %d", j.calls, tc.wantCalls)
			}
		})
	}
}

func TestValidate_NeverConsultsJudge(t *testing.T) {
	j := &countingJudge{verdict: Verdict{Correct: true, Confidence: 1}}
	e := NewEngine(WithJudge(j, 0))
	q := Question{Type: TypeText, Text: "Explain why leaves are green.", CorrectAnswer: "chlorophyll"}
	if got := e.Validate(q, Text("pigment")); got.Outcome != Incorrect {
		t.Errorf("outcome = %v, want incorrect", got.Outcome)
	}
	if j.calls != 0 {
		t.Errorf("Validate called the judge %d times", j.calls)
	}
}

func TestAnswerJSON(t *testing.T) {
	var a Answer
	if err := json.Unmarshal([]byte(`"Paris"`), &a); err != nil || a.IsList() || a.Value() != "Paris" {
		t.Errorf("scalar decode = %+v, %v", a, err)
	}
	if err := json.Unmarshal([]byte(`["a","b"]`), &a); err != nil || !a.IsList() || len(a.Values()) != 2 {
		t.Errorf("list decode = %+v, %v", a, err)
	}
	if err := json.Unmarshal([]byte(`[]`), &a); err != nil || !a.IsList() || len(a.Values()) != 0 {
		t.Errorf("empty list decode = %+v, %v", a, err)
	}
	if err := json.Unmarshal([]byte(`5`), &a); err == nil {
		t.Error("number should not decode as an answer")
	}

	out, err := json.Marshal(List())
	if err != nil || string(out) != "[]" {
		t.Errorf("empty list encode = %s, %v", out, err)
	}
}

func TestResultJSON(t *testing.T) {
	out, err := json.Marshal(Result{Outcome: Correct, IsCorrect: true})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"outcome":"correct","isCorrect":true}` {
		t.Errorf("got %s", out)
	}

	var r Result
	if err := json.Unmarshal([]byte(`{"outcome":"ungradable","isCorrect":false,"explanation":"x"}`), &r); err != nil {
		t.Fatal(err)
	}
	if r.Outcome != Ungradable || r.Explanation != "x" {
		t.Errorf("decoded %+v", r)
	}
}

func TestSummarize(t *testing.T) {
	results := []Result{
		correct(), incorrect("no"), correct(), ungradable(), correct(),
	}
	got := Summarize(results)
	want := Summary{Total: 5, Correct: 3, Incorrect: 1, Ungradable: 1, Percentage: 75}
	if got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}

	reversed := []Result{results[4], results[3], results[2], results[1], results[0]}
	if Summarize(reversed) != got {
		t.Error("Summarize depends on order")
	}

	if s := Summarize([]Result{ungradable()}); s.Percentage != 0 || s.Ungradable != 1 {
		t.Errorf("all ungradable = %+v", s)
	}
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("empty = %+v", s)
	}
}
