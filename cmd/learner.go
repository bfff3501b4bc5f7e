package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/auth"
	"github.com/abhisek/lingua/internal/proficiency"
	"github.com/abhisek/lingua/internal/store"
)

var learnerCmd = &cobra.Command{
	Use:   "learner",
	Short: "Register, list and remove learners",
}

var learnerCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new learner",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		language, _ := cmd.Flags().GetString("language")
		levelStr, _ := cmd.Flags().GetString("level")
		password, _ := cmd.Flags().GetString("password")

		name, language = strings.TrimSpace(name), strings.TrimSpace(language)
		if name == "" || language == "" {
			return errors.New("--name and --language are required")
		}
		level, err := proficiency.ParseTier(levelStr)
		if err != nil {
			return err
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		p, err := d.store.LearnerRepo().Create(cmd.Context(), store.NewLearner{
			Name:           name,
			TargetLanguage: language,
			Level:          level,
			PasswordHash:   hash,
		})
		if errors.Is(err, store.ErrDuplicate) {
			return fmt.Errorf("a learner named %q already exists", name)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Learner %s created (learning %s, level %s).\n",
			p.Name, p.TargetLanguage, p.Tier())
		return nil
	},
}

var learnerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List learners with their level and fluency",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		learners, err := d.store.LearnerRepo().List(ctx)
		if err != nil {
			return err
		}
		count, err := d.store.LearnerRepo().Count(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if count == 0 {
			fmt.Fprintln(out, "No learners yet. Create one with: lingua learner create --name NAME --language LANG")
			return nil
		}

		fmt.Fprintf(out, "%-4s  %-20s  %-12s  %-13s  %8s  %8s  %8s\n",
			"ID", "Name", "Language", "Level", "Sessions", "Average", "Fluency")
		fmt.Fprintln(out, strings.Repeat("─", 84))
		for _, p := range learners {
			fmt.Fprintf(out, "%-4d  %-20s  %-12s  %-13s  %8d  %8.2f  %8.2f\n",
				p.ID, truncate(p.Name, 20), truncate(p.TargetLanguage, 12), p.Tier(),
				p.Sessions(), p.AverageScore(), p.FluencyScore())
		}
		fmt.Fprintln(out, strings.Repeat("─", 84))
		fmt.Fprintf(out, "Total learners: %d\n", count)
		return nil
	},
}

var learnerShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show progress for the selected learner",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		sess, err := d.login(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		p := sess.Profile

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, p.Progress())
		fmt.Fprintf(out, "Language: %s\n", p.TargetLanguage)
		fmt.Fprintf(out, "Level:    %s (started as %s)\n", p.Tier(), p.StartTier())
		fmt.Fprintf(out, "Fluency:  %.2f\n", p.FluencyScore())

		history := p.History()
		if len(history) == 0 {
			return nil
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-16s  %5s  %s\n", "Date", "Score", "Feedback")
		for _, rec := range history {
			fmt.Fprintf(out, "%-16s  %5d  %s\n",
				rec.PracticedAt.Local().Format("2006-01-02 15:04"), rec.Score, rec.Feedback)
		}
		return nil
	},
}

var learnerDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a learner with their practice history and review queue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		err = d.store.LearnerRepo().Delete(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no learner named %q", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Learner %s deleted.\n", args[0])
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check learner credentials and print their level",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		sess, err := d.login(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s. Your level: %s\n",
			sess.Profile.Name, sess.Profile.Tier())
		return nil
	},
}

func init() {
	learnerCreateCmd.Flags().String("name", "", "Learner name (unique)")
	learnerCreateCmd.Flags().String("language", "", "Target language, e.g. Spanish")
	learnerCreateCmd.Flags().String("level", string(proficiency.Beginner), "Starting level: Beginner, Intermediate or Advanced")

	learnerCmd.AddCommand(learnerCreateCmd)
	learnerCmd.AddCommand(learnerListCmd)
	learnerCmd.AddCommand(learnerShowCmd)
	learnerCmd.AddCommand(learnerDeleteCmd)
}
