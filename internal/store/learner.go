package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	"github.com/abhisek/lingua/internal/learner"
	"github.com/abhisek/lingua/internal/proficiency"
)

var learnerColumns = []string{"id", "name", "target_language", "start_level", "created_at"}

type learnerRow struct {
	ID             int       `db:"id"`
	Name           string    `db:"name"`
	TargetLanguage string    `db:"target_language"`
	StartLevel     string    `db:"start_level"`
	CreatedAt      time.Time `db:"created_at"`
}

type sessionRow struct {
	ID          int       `db:"id"`
	LearnerID   int       `db:"learner_id"`
	Score       int       `db:"score"`
	Feedback    string    `db:"feedback"`
	PracticedAt time.Time `db:"practiced_at"`
	LessonID    *int      `db:"lesson_id"`
}

func (r sessionRow) record() learner.PracticeRecord {
	return learner.PracticeRecord{
		ID:          r.ID,
		Score:       r.Score,
		LessonID:    r.LessonID,
		Feedback:    r.Feedback,
		PracticedAt: r.PracticedAt,
	}
}

type learnerRepo struct {
	s *Store
}

func (r *learnerRepo) Create(ctx context.Context, nl NewLearner) (*learner.Profile, error) {
	level := nl.Level
	if level == "" {
		level = proficiency.Beginner
	}
	now := time.Now().UTC()

	id, err := r.s.insert(ctx, r.s.x, r.s.builder().Insert(LearnersTable.Name).
		Columns("name", "target_language", "start_level", "proficiency_level", "password_hash", "created_at").
		Values(nl.Name, nl.TargetLanguage, level.String(), level.String(), nl.PasswordHash, now))
	if err != nil {
		return nil, fmt.Errorf("create learner %q: %w", nl.Name, err)
	}
	r.s.log.Sugar().Debugw("learner created", "id", id, "name", nl.Name)

	return learner.Restore(id, nl.Name, nl.TargetLanguage, level, now, nil), nil
}

func (r *learnerRepo) Get(ctx context.Context, id int) (*learner.Profile, error) {
	return r.one(ctx, entsql.EQ("id", id))
}

func (r *learnerRepo) ByName(ctx context.Context, name string) (*learner.Profile, error) {
	return r.one(ctx, entsql.EQ("name", name))
}

func (r *learnerRepo) one(ctx context.Context, p *entsql.Predicate) (*learner.Profile, error) {
	var row learnerRow
	sel := r.s.builder().Select(learnerColumns...).From(entsql.Table(LearnersTable.Name)).Where(p)
	found, err := get(ctx, r.s.x, &row, sel)
	if err != nil {
		return nil, fmt.Errorf("query learner: %w", err)
	}
	if !found {
		return nil, nil
	}

	var sessions []sessionRow
	err = selectAll(ctx, r.s.x, &sessions, r.sessionSelector().Where(entsql.EQ("learner_id", row.ID)))
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	return restore(row, sessions)
}

func (r *learnerRepo) List(ctx context.Context) ([]*learner.Profile, error) {
	var rows []learnerRow
	sel := r.s.builder().Select(learnerColumns...).From(entsql.Table(LearnersTable.Name)).OrderBy("name")
	if err := selectAll(ctx, r.s.x, &rows, sel); err != nil {
		return nil, fmt.Errorf("list learners: %w", err)
	}

	var sessions []sessionRow
	if err := selectAll(ctx, r.s.x, &sessions, r.sessionSelector()); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	byLearner := make(map[int][]sessionRow)
	for _, s := range sessions {
		byLearner[s.LearnerID] = append(byLearner[s.LearnerID], s)
	}

	out := make([]*learner.Profile, 0, len(rows))
	for _, row := range rows {
		p, err := restore(row, byLearner[row.ID])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *learnerRepo) sessionSelector() *entsql.Selector {
	return r.s.builder().
		Select("id", "learner_id", "score", "feedback", "practiced_at", "lesson_id").
		From(entsql.Table(PracticeSessionsTable.Name)).
		OrderBy("learner_id", "sequence")
}

func restore(row learnerRow, sessions []sessionRow) (*learner.Profile, error) {
	start, err := proficiency.ParseTier(row.StartLevel)
	if err != nil {
		return nil, fmt.Errorf("learner %q: %w", row.Name, err)
	}
	history := make([]learner.PracticeRecord, len(sessions))
	for i, s := range sessions {
		history[i] = s.record()
	}
	return learner.Restore(row.ID, row.Name, row.TargetLanguage, start, row.CreatedAt, history), nil
}

func (r *learnerRepo) Count(ctx context.Context) (int, error) {
	var n int
	sel := r.s.builder().Select(entsql.Count("*")).From(entsql.Table(LearnersTable.Name))
	if _, err := get(ctx, r.s.x, &n, sel); err != nil {
		return 0, fmt.Errorf("count learners: %w", err)
	}
	return n, nil
}

func (r *learnerRepo) Delete(ctx context.Context, name string) error {
	n, err := r.s.exec(ctx, r.s.x, r.s.builder().Delete(LearnersTable.Name).Where(entsql.EQ("name", name)))
	if err != nil {
		return fmt.Errorf("delete learner %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("learner %q: %w", name, ErrNotFound)
	}
	return nil
}

func (r *learnerRepo) RecordSession(ctx context.Context, p *learner.Profile, rec learner.PracticeRecord) (int, error) {
	if p.ID == 0 {
		return 0, fmt.Errorf("record session: learner %q is not saved", p.Name)
	}

	// Take the sequence before the transaction; the counter uses its own
	// connection and SQLite allows only one writer.
	seq, err := r.s.seq.Next(ctx)
	if err != nil {
		return 0, err
	}

	var id int
	err = r.s.inTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		id, err = r.s.insert(ctx, tx, r.s.builder().Insert(PracticeSessionsTable.Name).
			Columns("sequence", "score", "feedback", "practiced_at", "learner_id", "lesson_id").
			Values(seq, rec.Score, rec.Feedback, rec.PracticedAt.UTC(), p.ID, rec.LessonID))
		if err != nil {
			return fmt.Errorf("save practice session: %w", err)
		}

		n, err := r.s.exec(ctx, tx, r.s.builder().Update(LearnersTable.Name).
			Set("proficiency_level", p.Tier().String()).
			Where(entsql.EQ("id", p.ID)))
		if err != nil {
			return fmt.Errorf("update proficiency level: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("learner %d: %w", p.ID, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.s.log.Sugar().Debugw("practice session recorded",
		"learner", p.Name, "score", rec.Score, "tier", p.Tier())
	return id, nil
}

func (r *learnerRepo) SetPassword(ctx context.Context, id int, hash string) error {
	n, err := r.s.exec(ctx, r.s.x, r.s.builder().Update(LearnersTable.Name).
		Set("password_hash", hash).
		Where(entsql.EQ("id", id)))
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("learner %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *learnerRepo) PasswordHash(ctx context.Context, id int) (string, error) {
	var hash string
	sel := r.s.builder().Select("password_hash").From(entsql.Table(LearnersTable.Name)).Where(entsql.EQ("id", id))
	found, err := get(ctx, r.s.x, &hash, sel)
	if err != nil {
		return "", fmt.Errorf("query password: %w", err)
	}
	if !found {
		return "", fmt.Errorf("learner %d: %w", id, ErrNotFound)
	}
	return hash, nil
}
