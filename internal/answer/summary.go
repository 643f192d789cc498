package answer

// Summary aggregates a batch of results.
type Summary struct {
	Total      int     `json:"total"`
	Correct    int     `json:"correct"`
	Incorrect  int     `json:"incorrect"`
	Ungradable int     `json:"ungradable"`
	Percentage float64 `json:"percentage"`
}

// Summarize counts outcomes. Percentage is correct over gradable results,
// so questions the engine could not grade do not count against the learner.
// The result does not depend on the order of results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		s.Total++
		switch r.Outcome {
		case Correct:
			s.Correct++
		case Incorrect:
			s.Incorrect++
		default:
			s.Ungradable++
		}
	}
	if gradable := s.Correct + s.Incorrect; gradable > 0 {
		s.Percentage = float64(s.Correct) / float64(gradable) * 100
	}
	return s
}
