package answer

import "maps"

// Vocabulary holds the language-specific word lists the classifier and
// number parser scan for. Extending to another locale means supplying a
// different Vocabulary; no code changes.
//
// A Vocabulary is read-only once handed to an Engine.
type Vocabulary struct {
	// MathKeywords mark a question as arithmetic. Matched as substrings of
	// the lower-cased question text.
	MathKeywords []string `yaml:"math_keywords"`

	// MathSymbols are notation characters that also mark a math question.
	MathSymbols []string `yaml:"math_symbols"`

	// SymbolKeywords mark a question that asks about notation itself, so
	// answers are compared literally.
	SymbolKeywords []string `yaml:"symbol_keywords"`

	// GreaterThan, LessThan and EqualTo are the comparison phrases.
	GreaterThan []string `yaml:"greater_than"`
	LessThan    []string `yaml:"less_than"`
	EqualTo     []string `yaml:"equal_to"`

	// NumberWords maps spelled-out numbers to their values.
	NumberWords map[string]int `yaml:"number_words"`

	// AllOfTheAbove are option texts meaning "every other option".
	AllOfTheAbove []string `yaml:"all_of_the_above"`

	// Negation, Always and Never drive the rationale wording for
	// true/false feedback.
	Negation []string `yaml:"negation"`
	Always   []string `yaml:"always"`
	Never    []string `yaml:"never"`

	// Definitional, Illustrative, Causal and Procedural select the
	// feedback template for wrong text answers.
	Definitional []string `yaml:"definitional"`
	Illustrative []string `yaml:"illustrative"`
	Causal       []string `yaml:"causal"`
	Procedural   []string `yaml:"procedural"`

	// True and False are the accepted spellings of a boolean answer.
	True  []string `yaml:"true"`
	False []string `yaml:"false"`
}

var english = Vocabulary{
	MathKeywords: []string{
		"calculate", "solve", "sum", "difference", "product", "quotient",
		"equals", "plus", "minus", "times", "divided by",
		"+", "-", "*", "/",
		"square", "cube", "root", "power", "exponent",
	},
	MathSymbols:    []string{"^", "×", "÷", "¹", "²", "³", "⁴", "⁵", "⁶", "⁷", "⁸", "⁹", "⁰"},
	SymbolKeywords: []string{"sign", "symbol", "operator"},
	GreaterThan:    []string{"greater than"},
	LessThan:       []string{"less than"},
	EqualTo:        []string{"equal to"},
	NumberWords: map[string]int{
		"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
		"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
		"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
		"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
		"twenty": 20,
	},
	AllOfTheAbove: []string{"all of the above", "all the above"},
	Negation:      []string{"not"},
	Always:        []string{"always"},
	Never:         []string{"never"},
	Definitional:  []string{"define", "what is", "what are", "meaning of"},
	Illustrative:  []string{"example"},
	Causal:        []string{"explain", "why"},
	Procedural:    []string{"how"},
	True:          []string{"true"},
	False:         []string{"false"},
}

// English returns a copy of the built-in English vocabulary.
func English() Vocabulary {
	v := english
	v.MathKeywords = append([]string(nil), english.MathKeywords...)
	v.MathSymbols = append([]string(nil), english.MathSymbols...)
	v.SymbolKeywords = append([]string(nil), english.SymbolKeywords...)
	v.GreaterThan = append([]string(nil), english.GreaterThan...)
	v.LessThan = append([]string(nil), english.LessThan...)
	v.EqualTo = append([]string(nil), english.EqualTo...)
	v.NumberWords = maps.Clone(english.NumberWords)
	v.AllOfTheAbove = append([]string(nil), english.AllOfTheAbove...)
	v.Negation = append([]string(nil), english.Negation...)
	v.Always = append([]string(nil), english.Always...)
	v.Never = append([]string(nil), english.Never...)
	v.Definitional = append([]string(nil), english.Definitional...)
	v.Illustrative = append([]string(nil), english.Illustrative...)
	v.Causal = append([]string(nil), english.Causal...)
	v.Procedural = append([]string(nil), english.Procedural...)
	v.True = append([]string(nil), english.True...)
	v.False = append([]string(nil), english.False...)
	return v
}

// Merge fills every empty list of v from base, so an override file only
// needs the lists it changes.
func (v Vocabulary) Merge(base Vocabulary) Vocabulary {
	fill := func(dst *[]string, src []string) {
		if len(*dst) == 0 {
			*dst = append([]string(nil), src...)
		}
	}
	fill(&v.MathKeywords, base.MathKeywords)
	fill(&v.MathSymbols, base.MathSymbols)
	fill(&v.SymbolKeywords, base.SymbolKeywords)
	fill(&v.GreaterThan, base.GreaterThan)
	fill(&v.LessThan, base.LessThan)
	fill(&v.EqualTo, base.EqualTo)
	fill(&v.AllOfTheAbove, base.AllOfTheAbove)
	fill(&v.Negation, base.Negation)
	fill(&v.Always, base.Always)
	fill(&v.Never, base.Never)
	fill(&v.Definitional, base.Definitional)
	fill(&v.Illustrative, base.Illustrative)
	fill(&v.Causal, base.Causal)
	fill(&v.Procedural, base.Procedural)
	fill(&v.True, base.True)
	fill(&v.False, base.False)
	if len(v.NumberWords) == 0 {
		v.NumberWords = maps.Clone(base.NumberWords)
	}
	return v
}
