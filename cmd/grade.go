package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/gradekit/internal/grading"
	"github.com/abhisek/gradekit/internal/questionset"
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade a submission file and record the responses",
	RunE: func(cmd *cobra.Command, args []string) error {
		setPath, _ := cmd.Flags().GetString("set")
		subPath, _ := cmd.Flags().GetString("submission")
		asJSON, _ := cmd.Flags().GetBool("json")
		ctx := cmd.Context()

		set, err := questionset.LoadSet(setPath)
		if err != nil {
			return err
		}
		sub, err := questionset.LoadSubmission(subPath)
		if err != nil {
			return err
		}
		bound, err := set.Bind(sub)
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

		svc := grading.NewService(engine,
			grading.WithRecorder(st.EventRepo()),
			grading.WithLogger(slog.Default()),
			grading.WithConcurrency(cfg.Concurrency),
		)
		report, err := svc.Grade(ctx, bound)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		fmt.Fprintf(out, "Submission %s", report.SubmissionID)
		if report.LearnerID != "" {
			fmt.Fprintf(out, " (%s)", report.LearnerID)
		}
		fmt.Fprintf(out, " - %s\n", set.Title)
		fmt.Fprintln(out, strings.Repeat("─", 72))
		for _, r := range report.Results {
			fmt.Fprintf(out, "%3d  %-16s  %-10s  %s\n", r.Index+1, r.QuestionType, r.Outcome, r.Explanation)
		}
		fmt.Fprintln(out, strings.Repeat("─", 72))
		s := report.Summary
		fmt.Fprintf(out, "%d correct, %d incorrect, %d ungradable of %d  (%.1f%%)\n",
			s.Correct, s.Incorrect, s.Ungradable, s.Total, s.Percentage)
		return nil
	},
}

func init() {
	gradeCmd.Flags().String("set", "", "Question set file (YAML or JSON)")
	gradeCmd.Flags().String("submission", "", "Submission file (YAML or JSON)")
	gradeCmd.Flags().Bool("json", false, "Print the full report as JSON")
	_ = gradeCmd.MarkFlagRequired("set")
	_ = gradeCmd.MarkFlagRequired("submission")
}
