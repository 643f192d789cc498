package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/gradekit/internal/answer"
	"github.com/abhisek/gradekit/internal/questionset"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Grade one answer against a question from a set",
	Example: `  gradekit check --set lesson.yaml --index 0 --answer 56
  gradekit check --set lesson.yaml --index 3 --answer 2 --answer 4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		setPath, _ := cmd.Flags().GetString("set")
		index, _ := cmd.Flags().GetInt("index")
		answers, _ := cmd.Flags().GetStringArray("answer")
		strict, _ := cmd.Flags().GetBool("strict")

		set, err := questionset.LoadSet(setPath)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(set.Questions) {
			return fmt.Errorf("index %d out of range: the set has %d questions", index, len(set.Questions))
		}
		q := set.Questions[index]

		a, err := answerFromFlags(q.Type, answers)
		if err != nil {
			return err
		}

		engine, cleanup, err := newEngine(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer cleanup()

		var result answer.Result
		if strict {
			if result, err = engine.Check(q, a); err != nil {
				return err
			}
		} else {
			result = engine.ValidateContext(cmd.Context(), q, a)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// answerFromFlags builds a list for multiple-answer questions and a
// scalar for everything else.
func answerFromFlags(t answer.QuestionType, values []string) (answer.Answer, error) {
	if t == answer.TypeMultipleAnswer {
		return answer.List(values...), nil
	}
	switch len(values) {
	case 0:
		return answer.Text(""), nil
	case 1:
		return answer.Text(values[0]), nil
	default:
		return answer.Answer{}, fmt.Errorf("%s questions take a single --answer, got %d", t, len(values))
	}
}

func init() {
	checkCmd.Flags().String("set", "", "Question set file (YAML or JSON)")
	checkCmd.Flags().Int("index", 0, "Zero-based question index")
	checkCmd.Flags().StringArray("answer", nil, "Answer value; repeat for multiple-answer questions")
	checkCmd.Flags().Bool("strict", false, "Fail on malformed questions instead of reporting them ungradable")
	_ = checkCmd.MarkFlagRequired("set")
}
