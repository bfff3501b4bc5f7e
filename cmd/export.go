package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/flashcards"
	"github.com/abhisek/lingua/internal/vocab"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export data to files",
}

var exportFlashcardsCmd = &cobra.Command{
	Use:   "flashcards",
	Short: "Export vocabulary as flashcards (CSV or XLSX)",
	RunE: func(cmd *cobra.Command, args []string) error {
		formatStr, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")
		lessonID, _ := cmd.Flags().GetInt("lesson")

		format, err := flashcards.ParseFormat(formatStr)
		if err != nil {
			return err
		}
		if outPath == "" {
			outPath = "flashcards." + string(format)
		}

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		var words []vocab.Word
		if cmd.Flags().Changed("lesson") {
			words, err = d.store.LessonRepo().Words(ctx, lessonID)
		} else {
			words, err = d.store.WordRepo().List(ctx)
		}
		if err != nil {
			return err
		}

		if outPath == "-" {
			return flashcards.Export(cmd.OutOrStdout(), format, words)
		}
		if err := flashcards.ExportFile(outPath, format, words); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d words to %s.\n", len(words), outPath)
		return nil
	},
}

func init() {
	exportFlashcardsCmd.Flags().String("format", string(flashcards.FormatCSV), "csv or xlsx")
	exportFlashcardsCmd.Flags().StringP("out", "o", "", "Output file, - for stdout (default flashcards.<format>)")
	exportFlashcardsCmd.Flags().Int("lesson", 0, "Only export this lesson's words")

	exportCmd.AddCommand(exportFlashcardsCmd)
}
