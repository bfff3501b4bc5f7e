package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	"github.com/abhisek/lingua/internal/vocab"
)

type lessonRow struct {
	ID          int       `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Difficulty  int       `db:"difficulty"`
	CreatedAt   time.Time `db:"created_at"`
}

func (l lessonRow) lesson() vocab.Lesson {
	return vocab.Lesson{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Difficulty:  l.Difficulty,
	}
}

type lessonRepo struct {
	s *Store
}

func (r *lessonRepo) selector() *entsql.Selector {
	return r.s.builder().
		Select("id", "title", "description", "difficulty", "created_at").
		From(entsql.Table(LessonsTable.Name))
}

func (r *lessonRepo) Create(ctx context.Context, l vocab.Lesson) (vocab.Lesson, error) {
	if l.Difficulty == 0 {
		l.Difficulty = vocab.DefaultDifficulty
	}
	err := r.s.inTx(ctx, func(tx *sqlx.Tx) error {
		id, err := r.s.insert(ctx, tx, r.s.builder().Insert(LessonsTable.Name).
			Columns("title", "description", "difficulty", "created_at").
			Values(l.Title, l.Description, l.Difficulty, time.Now().UTC()))
		if err != nil {
			return fmt.Errorf("create lesson %q: %w", l.Title, err)
		}
		l.ID = id

		for _, w := range l.Words {
			_, err := r.s.exec(ctx, tx, r.s.builder().Insert(LessonWordsTable.Name).
				Columns("lesson_id", "word_id").
				Values(id, w.ID))
			if err != nil {
				return fmt.Errorf("link word %q: %w", w.Term, err)
			}
		}
		return nil
	})
	if err != nil {
		return vocab.Lesson{}, err
	}
	return l, nil
}

func (r *lessonRepo) Get(ctx context.Context, id int) (*vocab.Lesson, error) {
	var row lessonRow
	found, err := get(ctx, r.s.x, &row, r.selector().Where(entsql.EQ("id", id)))
	if err != nil {
		return nil, fmt.Errorf("query lesson: %w", err)
	}
	if !found {
		return nil, nil
	}
	l := row.lesson()
	if l.Words, err = r.Words(ctx, id); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *lessonRepo) List(ctx context.Context) ([]vocab.Lesson, error) {
	var rows []lessonRow
	if err := selectAll(ctx, r.s.x, &rows, r.selector().OrderBy("id")); err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	out := make([]vocab.Lesson, len(rows))
	for i, row := range rows {
		out[i] = row.lesson()
	}
	return out, nil
}

func (r *lessonRepo) Words(ctx context.Context, lessonID int) ([]vocab.Word, error) {
	b := r.s.builder()
	w := b.Table(WordsTable.Name)
	lw := b.Table(LessonWordsTable.Name)
	sel := b.Select().From(w)
	sel.Select(
		entsql.As(w.C("id"), "id"),
		entsql.As(w.C("term"), "term"),
		entsql.As(w.C("translation"), "translation"),
		entsql.As(w.C("part_of_speech"), "part_of_speech"),
		entsql.As(w.C("example_sentence"), "example_sentence"),
	).
		Join(lw).On(w.C("id"), lw.C("word_id")).
		Where(entsql.EQ(lw.C("lesson_id"), lessonID)).
		OrderBy(w.C("id"))

	var rows []wordRow
	if err := selectAll(ctx, r.s.x, &rows, sel); err != nil {
		return nil, fmt.Errorf("lesson %d words: %w", lessonID, err)
	}
	return words(rows), nil
}
