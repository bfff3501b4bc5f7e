package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	"github.com/abhisek/lingua/internal/review"
)

type reviewRepo struct {
	s *Store
}

func (r *reviewRepo) selector(learnerID int) *entsql.Selector {
	return r.s.builder().
		Select("id", "term", "position", "miss_count", "last_missed_at").
		From(entsql.Table(ReviewItemsTable.Name)).
		Where(entsql.EQ("learner_id", learnerID)).
		OrderBy("position", "id")
}

// nextPosition returns one past the learner's highest position.
func (r *reviewRepo) nextPosition(ctx context.Context, tx *sqlx.Tx, learnerID int) (int64, error) {
	var top sql.NullInt64
	sel := r.s.builder().Select(entsql.Max("position")).
		From(entsql.Table(ReviewItemsTable.Name)).
		Where(entsql.EQ("learner_id", learnerID))
	if _, err := get(ctx, tx, &top, sel); err != nil {
		return 0, fmt.Errorf("max position: %w", err)
	}
	return top.Int64 + 1, nil
}

func (r *reviewRepo) Add(ctx context.Context, learnerID int, term string) error {
	return r.s.inTx(ctx, func(tx *sqlx.Tx) error {
		return r.add(ctx, tx, learnerID, term, 0)
	})
}

func (r *reviewRepo) add(ctx context.Context, tx *sqlx.Tx, learnerID int, term string, misses int) error {
	pos, err := r.nextPosition(ctx, tx, learnerID)
	if err != nil {
		return err
	}
	_, err = r.s.insert(ctx, tx, r.s.builder().Insert(ReviewItemsTable.Name).
		Columns("term", "position", "miss_count", "last_missed_at", "learner_id").
		Values(term, pos, misses, time.Now().UTC(), learnerID))
	if err != nil {
		return fmt.Errorf("add review item %q: %w", term, err)
	}
	return nil
}

func (r *reviewRepo) Miss(ctx context.Context, learnerID int, term string) error {
	return r.s.inTx(ctx, func(tx *sqlx.Tx) error {
		var item ReviewItem
		sel := r.selector(learnerID).Where(entsql.EQ("term", term)).Limit(1)
		found, err := get(ctx, tx, &item, sel)
		if err != nil {
			return fmt.Errorf("find review item: %w", err)
		}
		if !found {
			return r.add(ctx, tx, learnerID, term, 1)
		}

		pos, err := r.nextPosition(ctx, tx, learnerID)
		if err != nil {
			return err
		}
		_, err = r.s.exec(ctx, tx, r.s.builder().Update(ReviewItemsTable.Name).
			Set("position", pos).
			Set("last_missed_at", time.Now().UTC()).
			Add("miss_count", 1).
			Where(entsql.EQ("id", item.ID)))
		if err != nil {
			return fmt.Errorf("move review item %q: %w", term, err)
		}
		return nil
	})
}

func (r *reviewRepo) Items(ctx context.Context, learnerID int) ([]ReviewItem, error) {
	var items []ReviewItem
	if err := selectAll(ctx, r.s.x, &items, r.selector(learnerID)); err != nil {
		return nil, fmt.Errorf("list review items: %w", err)
	}
	return items, nil
}

func (r *reviewRepo) Queue(ctx context.Context, learnerID int) (*review.Queue, error) {
	items, err := r.Items(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	q := review.New()
	for _, it := range items {
		q.Add(it.Term)
	}
	return q, nil
}
