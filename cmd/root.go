package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/app"
	"github.com/abhisek/lingua/internal/auth"
)

var rootCmd = &cobra.Command{
	Use:   "lingua",
	Short: "Personal language-learning tracker",
	Long: "Lingua tracks vocabulary, lessons and practice scores for language learners,\n" +
		"keeps a review queue of weak words and adapts quizzes to each learner's level.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "SQLite database path or postgres:// URL (overrides LINGUA_DB)")
	pf.String("config", "", "Path to a lingua.yaml config file")
	pf.StringP("learner", "l", "", "Learner to act as")
	pf.String("password", "", "Learner password, if one is set")

	rootCmd.AddCommand(learnerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(wordCmd)
	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(grammarCmd)
	rootCmd.AddCommand(convoCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// runApp builds dependencies and launches the interactive menu. With
// --learner set the login form is skipped.
func runApp(cmd *cobra.Command) error {
	d, err := setup(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	ctx := cmd.Context()
	opts := app.Options{
		Store: d.store,
		Auth:  auth.New(d.store.LearnerRepo()),
		Tutor: d.tutor(ctx, cmd),
		Log:   d.log,
	}

	if name, _ := cmd.Flags().GetString("learner"); name != "" {
		sess, err := d.login(ctx, cmd)
		if err != nil {
			return err
		}
		opts.Session = sess
		opts.LearnerName = name
	}

	return app.Run(ctx, opts)
}
