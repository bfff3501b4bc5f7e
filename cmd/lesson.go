package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/vocab"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Manage lessons",
}

var lessonCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a lesson from existing words",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		desc, _ := cmd.Flags().GetString("description")
		difficulty, _ := cmd.Flags().GetInt("difficulty")
		terms, _ := cmd.Flags().GetStringSlice("word")

		if strings.TrimSpace(title) == "" {
			return errors.New("--title is required")
		}
		if difficulty < 1 || difficulty > 5 {
			return fmt.Errorf("difficulty must be between 1 and 5, got %d", difficulty)
		}

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		l := vocab.Lesson{Title: title, Description: desc, Difficulty: difficulty}
		for _, term := range terms {
			w, err := d.store.WordRepo().ByTerm(ctx, strings.TrimSpace(term))
			if err != nil {
				return err
			}
			if w == nil {
				return fmt.Errorf("unknown word %q: add it first with lingua word add", term)
			}
			l.Words = append(l.Words, *w)
		}

		l, err = d.store.LessonRepo().Create(ctx, l)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Lesson %d %q created with %d words.\n", l.ID, l.Title, len(l.Words))
		return nil
	},
}

var lessonListCmd = &cobra.Command{
	Use:   "list",
	Short: "List lessons",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		lessons, err := d.store.LessonRepo().List(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(lessons) == 0 {
			fmt.Fprintln(out, "No lessons yet.")
			return nil
		}
		fmt.Fprintf(out, "%-4s  %-30s  %-10s  %s\n", "ID", "Title", "Difficulty", "Description")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, l := range lessons {
			fmt.Fprintf(out, "%-4d  %-30s  %-10d  %s\n", l.ID, truncate(l.Title, 30), l.Difficulty, l.Description)
		}
		return nil
	},
}

var lessonShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a lesson and its words",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid lesson ID %q", args[0])
		}

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		l, err := d.store.LessonRepo().Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		if l == nil {
			return fmt.Errorf("lesson %d not found", id)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (difficulty %d)\n", l.Title, l.Difficulty)
		if l.Description != "" {
			fmt.Fprintln(out, l.Description)
		}
		fmt.Fprintln(out)
		if len(l.Words) == 0 {
			fmt.Fprintln(out, "No words in this lesson.")
			return nil
		}
		for _, w := range l.Words {
			fmt.Fprintf(out, "  %-20s  %s\n", w.Term, w.Translation)
		}
		return nil
	},
}

func init() {
	lessonCreateCmd.Flags().String("title", "", "Lesson title")
	lessonCreateCmd.Flags().String("description", "", "Lesson description")
	lessonCreateCmd.Flags().Int("difficulty", vocab.DefaultDifficulty, "Difficulty from 1 to 5")
	lessonCreateCmd.Flags().StringSlice("word", nil, "Term to include (repeatable)")

	lessonCmd.AddCommand(lessonCreateCmd)
	lessonCmd.AddCommand(lessonListCmd)
	lessonCmd.AddCommand(lessonShowCmd)
}
