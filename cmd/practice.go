package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/gradekit/internal/answer"
	"github.com/abhisek/gradekit/internal/app"
	"github.com/abhisek/gradekit/internal/questionset"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Answer a question set interactively in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		setPath, _ := cmd.Flags().GetString("set")
		learner, _ := cmd.Flags().GetString("learner")
		ctx := cmd.Context()

		set, err := questionset.LoadSet(setPath)
		if err != nil {
			return err
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		engine, cleanup, err := newEngine(ctx, st.EventRepo())
		if err != nil {
			return err
		}
		defer cleanup()

		final, err := app.Run(ctx, app.New(ctx, set, engine,
			app.WithRecorder(st.EventRepo()),
			app.WithLearner(learner),
			app.WithLogger(slog.Default()),
		))
		if err != nil {
			return err
		}

		if results := final.Results(); len(results) > 0 {
			s := answer.Summarize(results)
			fmt.Fprintf(cmd.OutOrStdout(), "%d/%d correct (%.0f%%), responses recorded as %s\n",
				s.Correct, s.Total, s.Percentage, final.RunID())
		}
		return nil
	},
}

func init() {
	practiceCmd.Flags().String("set", "", "Question set file (YAML or JSON)")
	practiceCmd.Flags().String("learner", "", "Learner ID to record responses under")
	_ = practiceCmd.MarkFlagRequired("set")
}
