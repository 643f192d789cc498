package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/gradekit/internal/store"
)

var responsesCmd = &cobra.Command{
	Use:   "responses",
	Short: "Inspect recorded responses",
}

var responsesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded responses",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := queryFlags(cmd)
		if err != nil {
			return err
		}

		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().QueryResponses(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query responses: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No responses found.")
			return nil
		}

		fmt.Fprintf(out, "%-6s  %-19s  %-36s  %-10s  %4s  %-16s  %-10s  %s\n",
			"Seq", "Timestamp", "Submission", "Learner", "Q", "Type", "Outcome", "Secs")
		fmt.Fprintln(out, strings.Repeat("─", 120))
		for _, e := range events {
			fmt.Fprintf(out, "%-6d  %-19s  %-36s  %-10s  %4d  %-16s  %-10s  %.1f\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.SubmissionID,
				truncate(e.LearnerID, 10),
				e.QuestionIndex,
				e.QuestionType,
				e.Outcome,
				e.ResponseTimeSeconds,
			)
		}
		return nil
	},
}

var responsesStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count recorded responses by outcome",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := queryFlags(cmd)
		if err != nil {
			return err
		}

		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		tally, err := st.EventRepo().OutcomeTally(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("tally responses: %w", err)
		}

		out := cmd.OutOrStdout()
		correct, incorrect, ungradable := tally["correct"], tally["incorrect"], tally["ungradable"]
		total := correct + incorrect + ungradable
		if total == 0 {
			fmt.Fprintln(out, "No responses recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-12s %6d\n", "Correct", correct)
		fmt.Fprintf(out, "%-12s %6d\n", "Incorrect", incorrect)
		fmt.Fprintf(out, "%-12s %6d\n", "Ungradable", ungradable)
		fmt.Fprintln(out, strings.Repeat("─", 19))
		fmt.Fprintf(out, "%-12s %6d\n", "Total", total)
		if gradable := correct + incorrect; gradable > 0 {
			fmt.Fprintf(out, "%-12s %5.1f%%\n", "Accuracy", float64(correct)/float64(gradable)*100)
		}
		return nil
	},
}

func queryFlags(cmd *cobra.Command) (store.QueryOpts, error) {
	var opts store.QueryOpts
	var err error
	if opts.SubmissionID, err = cmd.Flags().GetString("submission"); err != nil {
		return opts, err
	}
	if opts.LearnerID, err = cmd.Flags().GetString("learner"); err != nil {
		return opts, err
	}
	if cmd.Flags().Lookup("limit") != nil {
		opts.Limit, _ = cmd.Flags().GetInt("limit")
	}
	return opts, nil
}

func init() {
	for _, c := range []*cobra.Command{responsesListCmd, responsesStatsCmd} {
		c.Flags().String("submission", "", "Only this submission")
		c.Flags().String("learner", "", "Only this learner")
	}
	responsesListCmd.Flags().IntP("limit", "n", 50, "Number of most recent responses to show")

	responsesCmd.AddCommand(responsesListCmd)
	responsesCmd.AddCommand(responsesStatsCmd)
}
