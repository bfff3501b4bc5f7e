package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Record practice sessions",
}

var practiceRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a practice session score for the selected learner",
	RunE: func(cmd *cobra.Command, args []string) error {
		score, _ := cmd.Flags().GetInt("score")
		lessonID, _ := cmd.Flags().GetInt("lesson")
		feedback, _ := cmd.Flags().GetString("feedback")

		if err := validateScore(score); err != nil {
			return err
		}

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		sess, err := d.login(ctx, cmd)
		if err != nil {
			return err
		}

		var lesson *int
		if cmd.Flags().Changed("lesson") {
			l, err := d.store.LessonRepo().Get(ctx, lessonID)
			if err != nil {
				return err
			}
			if l == nil {
				return fmt.Errorf("lesson %d not found", lessonID)
			}
			lesson = &lessonID
		}

		p := sess.Profile
		before := p.Tier()
		rec := p.RecordSession(score, lesson, feedback, time.Now())
		if _, err := d.store.LearnerRepo().RecordSession(ctx, p, rec); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Session recorded.")
		fmt.Fprintln(out, p.Progress())
		if p.Tier() != before {
			fmt.Fprintf(out, "Level changed: %s → %s\n", before, p.Tier())
		}
		return nil
	},
}

// validateScore enforces the 0-100 range at the input boundary.
func validateScore(score int) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("score must be between 0 and 100, got %d", score)
	}
	return nil
}

func init() {
	practiceRecordCmd.Flags().Int("score", -1, "Score from 0 to 100")
	practiceRecordCmd.Flags().Int("lesson", 0, "Lesson ID the session practised")
	practiceRecordCmd.Flags().String("feedback", "", "Notes about the session")
	_ = practiceRecordCmd.MarkFlagRequired("score")

	practiceCmd.AddCommand(practiceRecordCmd)
}
