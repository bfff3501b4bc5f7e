package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	"github.com/abhisek/lingua/internal/vocab"
)

type wordRow struct {
	ID              int    `db:"id"`
	Term            string `db:"term"`
	Translation     string `db:"translation"`
	PartOfSpeech    string `db:"part_of_speech"`
	ExampleSentence string `db:"example_sentence"`
}

func (w wordRow) word() vocab.Word {
	return vocab.Word{
		ID:              w.ID,
		Term:            w.Term,
		Translation:     w.Translation,
		PartOfSpeech:    w.PartOfSpeech,
		ExampleSentence: w.ExampleSentence,
	}
}

type wordRepo struct {
	s *Store
}

func (r *wordRepo) selector() *entsql.Selector {
	return r.s.builder().
		Select("id", "term", "translation", "part_of_speech", "example_sentence").
		From(entsql.Table(WordsTable.Name))
}

func (r *wordRepo) Create(ctx context.Context, w vocab.Word) (vocab.Word, error) {
	return r.create(ctx, r.s.x, w)
}

func (r *wordRepo) create(ctx context.Context, ex sqlx.ExtContext, w vocab.Word) (vocab.Word, error) {
	id, err := r.s.insert(ctx, ex, r.s.builder().Insert(WordsTable.Name).
		Columns("term", "translation", "part_of_speech", "example_sentence").
		Values(w.Term, w.Translation, w.PartOfSpeech, w.ExampleSentence))
	if err != nil {
		return vocab.Word{}, fmt.Errorf("create word %q: %w", w.Term, err)
	}
	w.ID = id
	return w, nil
}

func (r *wordRepo) Upsert(ctx context.Context, w vocab.Word) (vocab.Word, bool, error) {
	created := false
	err := r.s.inTx(ctx, func(tx *sqlx.Tx) error {
		var row wordRow
		found, err := get(ctx, tx, &row, r.selector().Where(entsql.EQ("term", w.Term)))
		if err != nil {
			return fmt.Errorf("query word: %w", err)
		}
		if !found {
			w, err = r.create(ctx, tx, w)
			created = err == nil
			return err
		}

		w.ID = row.ID
		_, err = r.s.exec(ctx, tx, r.s.builder().Update(WordsTable.Name).
			Set("translation", w.Translation).
			Set("part_of_speech", w.PartOfSpeech).
			Set("example_sentence", w.ExampleSentence).
			Where(entsql.EQ("id", row.ID)))
		if err != nil {
			return fmt.Errorf("update word %q: %w", w.Term, err)
		}
		return nil
	})
	if err != nil {
		return vocab.Word{}, false, err
	}
	return w, created, nil
}

func (r *wordRepo) List(ctx context.Context) ([]vocab.Word, error) {
	var rows []wordRow
	if err := selectAll(ctx, r.s.x, &rows, r.selector().OrderBy("id")); err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	return words(rows), nil
}

func (r *wordRepo) ByTerm(ctx context.Context, term string) (*vocab.Word, error) {
	var row wordRow
	found, err := get(ctx, r.s.x, &row, r.selector().Where(entsql.EQ("term", term)))
	if err != nil {
		return nil, fmt.Errorf("query word: %w", err)
	}
	if !found {
		return nil, nil
	}
	w := row.word()
	return &w, nil
}

func words(rows []wordRow) []vocab.Word {
	out := make([]vocab.Word, len(rows))
	for i, r := range rows {
		out[i] = r.word()
	}
	return out
}
