package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/flashcards"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/vocab"
)

var wordCmd = &cobra.Command{
	Use:   "word",
	Short: "Manage vocabulary",
}

var wordAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a word",
	RunE: func(cmd *cobra.Command, args []string) error {
		term, _ := cmd.Flags().GetString("term")
		translation, _ := cmd.Flags().GetString("translation")
		pos, _ := cmd.Flags().GetString("pos")
		example, _ := cmd.Flags().GetString("example")

		term, translation = strings.TrimSpace(term), strings.TrimSpace(translation)
		if term == "" || translation == "" {
			return errors.New("--term and --translation are required")
		}

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		w, err := d.store.WordRepo().Create(cmd.Context(), vocab.Word{
			Term:            term,
			Translation:     translation,
			PartOfSpeech:    pos,
			ExampleSentence: example,
		})
		if errors.Is(err, store.ErrDuplicate) {
			return fmt.Errorf("%q is already in the vocabulary", term)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s).\n", w.Term, w.Translation)
		return nil
	},
}

var wordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vocabulary",
	RunE: func(cmd *cobra.Command, args []string) error {
		sorted, _ := cmd.Flags().GetBool("sorted")

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		words, err := d.store.WordRepo().List(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(words) == 0 {
			fmt.Fprintln(out, "No words yet.")
			return nil
		}

		if sorted {
			for _, term := range vocab.SortedTerms(words) {
				fmt.Fprintln(out, term)
			}
			return nil
		}

		fmt.Fprintf(out, "%-4s  %-20s  %-20s  %-14s  %s\n", "ID", "Term", "Translation", "Part of speech", "Example")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for _, w := range words {
			fmt.Fprintf(out, "%-4d  %-20s  %-20s  %-14s  %s\n",
				w.ID, truncate(w.Term, 20), truncate(w.Translation, 20), truncate(w.PartOfSpeech, 14), w.ExampleSentence)
		}
		return nil
	},
}

var wordImportCmd = &cobra.Command{
	Use:   "import <file.xlsx|file.csv>",
	Short: "Import words from a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := flashcards.DefaultImportConfig()
		f := cmd.Flags()
		cfg.TermColumn, _ = f.GetString("term-col")
		cfg.TranslationColumn, _ = f.GetString("translation-col")
		cfg.PartOfSpeechColumn, _ = f.GetString("pos-col")
		cfg.ExampleColumn, _ = f.GetString("example-col")
		cfg.SheetName, _ = f.GetString("sheet")
		cfg.StartRow, _ = f.GetInt("start-row")

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		im, err := flashcards.NewImporter(d.store.WordRepo(), cfg, d.log)
		if err != nil {
			return err
		}
		res, err := im.ImportFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Processed %d rows: %d created, %d updated, %d unchanged, %d errors.\n",
			res.Processed, res.Created, res.Updated, res.Skipped, len(res.Errors))
		for _, e := range res.Errors {
			fmt.Fprintln(out, "  "+e)
		}
		return nil
	},
}

func init() {
	wordAddCmd.Flags().String("term", "", "Word or phrase in the target language")
	wordAddCmd.Flags().String("translation", "", "Translation")
	wordAddCmd.Flags().String("pos", "", "Part of speech")
	wordAddCmd.Flags().String("example", "", "Example sentence")

	wordListCmd.Flags().Bool("sorted", false, "Print terms only, in alphabetical order")

	def := flashcards.DefaultImportConfig()
	wordImportCmd.Flags().String("term-col", def.TermColumn, "Column holding the term")
	wordImportCmd.Flags().String("translation-col", def.TranslationColumn, "Column holding the translation")
	wordImportCmd.Flags().String("pos-col", def.PartOfSpeechColumn, "Column holding the part of speech (empty to skip)")
	wordImportCmd.Flags().String("example-col", def.ExampleColumn, "Column holding the example sentence (empty to skip)")
	wordImportCmd.Flags().String("sheet", "", "Worksheet to read (XLSX only; default first sheet)")
	wordImportCmd.Flags().Int("start-row", def.StartRow, "First data row, 1-based")

	wordCmd.AddCommand(wordAddCmd)
	wordCmd.AddCommand(wordListCmd)
	wordCmd.AddCommand(wordImportCmd)
}
