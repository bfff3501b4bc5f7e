package store

import (
	"context"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"
)

// sequenceCounter numbers practice sessions and LLM requests from one
// shared counter, so `llm list` and a learner's history interleave in the
// order things happened. The row update is atomic in both SQLite and
// Postgres; the mutex only avoids contention inside one process.
type sequenceCounter struct {
	mu sync.Mutex
	s  *Store
}

func newSequenceCounter(ctx context.Context, s *Store) (*sequenceCounter, error) {
	seed := s.builder().Insert(GlobalSequenceTable.Name).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing())
	if _, err := s.exec(ctx, s.x, seed); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{s: s}, nil
}

// Next claims the next number.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	query, args := sc.s.builder().Update(GlobalSequenceTable.Name).
		Add("next_val", 1).
		Where(entsql.EQ("id", 1)).
		Returning("next_val").
		Query()
	var next int64
	if err := sqlx.GetContext(ctx, sc.s.x, &next, query, args...); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return next - 1, nil
}
