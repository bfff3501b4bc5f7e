package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/tutor"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a quiz pitched at your level; misses go to the review queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("questions")
		if n < 1 {
			return errors.New("--questions must be at least 1")
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
		p := sess.Profile

		words, err := d.store.WordRepo().List(ctx)
		if err != nil {
			return err
		}
		items, err := d.store.ReviewRepo().Items(ctx, p.ID)
		if err != nil {
			return err
		}
		weak := make([]string, 0, len(items))
		for _, it := range items {
			weak = append(weak, it.Term)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Generating a %s quiz (%s level)...\n", p.TargetLanguage, p.Tier())
		quiz := d.tutor(ctx, cmd).GenerateQuiz(ctx, tutor.QuizInput{
			Profile:   p,
			Words:     words,
			Weak:      weak,
			Questions: n,
		})
		if quiz.Fallback {
			fmt.Fprintln(out, quiz.Note)
		}
		fmt.Fprintln(out)

		in := bufio.NewScanner(cmd.InOrStdin())
		answers := make([]string, 0, len(quiz.Questions))
		for i, q := range quiz.Questions {
			answer, ok := prompt(in, out, fmt.Sprintf("Q%d. %s\n> ", i+1, q.Prompt))
			if !ok {
				break
			}
			answers = append(answers, answer)
			if q.Accepts(answer) {
				fmt.Fprintln(out, "  Correct!")
			} else {
				fmt.Fprintf(out, "  Expected: %s\n", q.Answer)
			}
		}

		if len(answers) < len(quiz.Questions) {
			fmt.Fprintln(out, "Quiz abandoned; nothing was recorded.")
			return nil
		}

		g := quiz.Grade(answers)
		rec := p.RecordSession(g.Score, nil, fmt.Sprintf("Quiz: %d/%d correct", g.Correct, g.Total), time.Now())
		if _, err := d.store.LearnerRepo().RecordSession(ctx, p, rec); err != nil {
			return err
		}
		for _, term := range g.Missed {
			if err := d.store.ReviewRepo().Miss(ctx, p.ID, term); err != nil {
				return err
			}
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "Score: %d (%d/%d)\n", g.Score, g.Correct, g.Total)
		if len(g.Missed) > 0 {
			fmt.Fprintf(out, "Added to your review queue: %s\n", strings.Join(g.Missed, ", "))
		}
		fmt.Fprintln(out, p.Progress())
		fmt.Fprintf(out, "Level: %s\n", p.Tier())
		return nil
	},
}

var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Get a sentence corrected",
	RunE: func(cmd *cobra.Command, args []string) error {
		sentence, _ := cmd.Flags().GetString("sentence")
		language, _ := cmd.Flags().GetString("language")
		if strings.TrimSpace(sentence) == "" {
			return errors.New("--sentence is required")
		}

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		if language == "" {
			sess, err := d.login(ctx, cmd)
			if err != nil {
				return fmt.Errorf("pass --language or --learner: %w", err)
			}
			language = sess.Profile.TargetLanguage
		}

		r := d.tutor(ctx, cmd).CorrectGrammar(ctx, sentence, language)
		fmt.Fprintln(cmd.OutOrStdout(), r.Text)
		return nil
	},
}

var convoCmd = &cobra.Command{
	Use:   "convo",
	Short: "Practise conversation; type exit to stop",
	RunE: func(cmd *cobra.Command, args []string) error {
		language, _ := cmd.Flags().GetString("language")

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		if language == "" {
			sess, err := d.login(ctx, cmd)
			if err != nil {
				return fmt.Errorf("pass --language or --learner: %w", err)
			}
			language = sess.Profile.TargetLanguage
		}

		conv := d.tutor(ctx, cmd).NewConversation(language)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Conversation in %s. Type exit to stop.\n", language)

		in := bufio.NewScanner(cmd.InOrStdin())
		for {
			line, ok := prompt(in, out, "You: ")
			if !ok || strings.EqualFold(line, "exit") {
				return nil
			}
			if line == "" {
				continue
			}
			r := conv.Say(ctx, line)
			fmt.Fprintf(out, "Tutor: %s\n", r.Text)
		}
	},
}

// prompt writes msg and reads one trimmed line. ok is false at end of
// input.
func prompt(in *bufio.Scanner, out io.Writer, msg string) (string, bool) {
	fmt.Fprint(out, msg)
	if !in.Scan() {
		fmt.Fprintln(out)
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}

func init() {
	quizCmd.Flags().IntP("questions", "n", tutor.DefaultConfig().Questions, "Number of questions")

	grammarCmd.Flags().String("sentence", "", "Sentence to correct")
	grammarCmd.Flags().String("language", "", "Language of the sentence (default: the learner's target language)")

	convoCmd.Flags().String("language", "", "Conversation language (default: the learner's target language)")
}
