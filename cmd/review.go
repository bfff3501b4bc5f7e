package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/review"
	"github.com/abhisek/lingua/internal/store"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Work with the selected learner's review queue of weak words",
}

var reviewAddCmd = &cobra.Command{
	Use:   "add <term>",
	Short: "Add a weak word to the end of the queue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := strings.TrimSpace(args[0])
		if term == "" {
			return fmt.Errorf("term is empty")
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
		if err := d.store.ReviewRepo().Add(ctx, sess.Profile.ID, term); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %q to the review queue.\n", term)
		return nil
	},
}

var reviewListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the queue, least recently missed first",
	RunE: func(cmd *cobra.Command, args []string) error {
		sorted, _ := cmd.Flags().GetBool("sorted")

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

		out := cmd.OutOrStdout()
		if sorted {
			q, err := d.store.ReviewRepo().Queue(ctx, sess.Profile.ID)
			if err != nil {
				return err
			}
			q.Sort()
			for term := range q.All() {
				fmt.Fprintln(out, term)
			}
			return nil
		}

		items, err := d.store.ReviewRepo().Items(ctx, sess.Profile.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Fprintln(out, "Review queue is empty.")
			return nil
		}
		fmt.Fprintf(out, "%-20s  %6s  %s\n", "Term", "Misses", "Last missed")
		fmt.Fprintln(out, strings.Repeat("─", 50))
		for _, it := range items {
			fmt.Fprintf(out, "%-20s  %6d  %s\n",
				truncate(it.Term, 20), it.MissCount, it.LastMissedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var reviewMissCmd = &cobra.Command{
	Use:   "miss <term>",
	Short: "Mark a word as missed again, moving it to the end of the queue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		q, queued, err := missTerm(ctx, d.store.ReviewRepo(), sess.Profile.ID, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !queued {
			fmt.Fprintf(out, "%q was not queued; added it to the end of the review queue.\n", args[0])
		} else {
			fmt.Fprintf(out, "%q moved to the end of the review queue.\n", args[0])
		}
		fmt.Fprintln(out, "Queue:", strings.Join(q.Terms(), ", "))
		return nil
	},
}

// missTerm moves term to the tail of the learner's queue and persists the
// miss. queued reports whether the term was already in the queue; if not
// it is appended.
func missTerm(ctx context.Context, repo store.ReviewRepo, learnerID int, term string) (q *review.Queue, queued bool, err error) {
	q, err = repo.Queue(ctx, learnerID)
	if err != nil {
		return nil, false, err
	}
	if n := q.Search(term); n != nil {
		q.MoveToEnd(n)
		queued = true
	} else {
		q.Add(term)
	}
	if err := repo.Miss(ctx, learnerID, term); err != nil {
		return nil, false, err
	}
	return q, queued, nil
}

func init() {
	reviewListCmd.Flags().Bool("sorted", false, "Sort terms alphabetically")

	reviewCmd.AddCommand(reviewAddCmd)
	reviewCmd.AddCommand(reviewListCmd)
	reviewCmd.AddCommand(reviewMissCmd)
}
