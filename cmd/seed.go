package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all learners, words and lessons with sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		res, err := seed.Run(cmd.Context(), d.store)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Database seeded: %d learners, %d words, %d lessons, %d sessions.\n",
			res.Learners, res.Words, res.Lessons, res.Sessions)
		return nil
	},
}
