package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	// Postgres driver registered as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Store owns the database handle and hands out repositories.
type Store struct {
	db      *sql.DB
	x       *sqlx.DB
	dialect string
	seq     *sequenceCounter
	log     *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for store diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open connects to dsn and runs auto-migration. A postgres:// or
// postgresql:// URL selects Postgres; anything else is treated as a
// SQLite path or file: URI.
func Open(dsn string, opts ...Option) (*Store, error) {
	s := &Store{log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}

	driverName, dsn := "sqlite", sqliteDSN(dsn)
	s.dialect = dialect.SQLite
	if IsPostgresURL(dsn) {
		driverName, s.dialect = "pgx", dialect.Postgres
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s.db = db
	s.x = sqlx.NewDb(db, driverName)

	if s.dialect == dialect.SQLite {
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	ctx := context.Background()
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	s.seq, err = newSequenceCounter(ctx, s)
	if err != nil {
		db.Close()
		return nil, err
	}

	s.log.Debug("store opened", zap.String("dialect", s.dialect))
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	drv := entsql.OpenDB(s.dialect, s.db)
	m, err := schema.NewMigrate(drv, schema.WithForeignKeys(true))
	if err != nil {
		return err
	}
	return m.Create(ctx, Tables...)
}

// IsPostgresURL reports whether dsn addresses a Postgres server.
func IsPostgresURL(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// sqliteDSN adds per-connection pragmas to a SQLite DSN. Pragmas run
// through Exec only reach a single pooled connection, so foreign keys and
// the busy timeout are also set in the DSN.
func sqliteDSN(dsn string) string {
	if IsPostgresURL(dsn) {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the ent dialect name in use.
func (s *Store) Dialect() string {
	return s.dialect
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) LearnerRepo() LearnerRepo { return &learnerRepo{s: s} }
func (s *Store) WordRepo() WordRepo       { return &wordRepo{s: s} }
func (s *Store) LessonRepo() LessonRepo   { return &lessonRepo{s: s} }
func (s *Store) ReviewRepo() ReviewRepo   { return &reviewRepo{s: s} }
func (s *Store) EventRepo() EventRepo     { return &eventRepo{s: s} }

// Reset deletes all learner and vocabulary data. LLM request events and
// the global sequence are kept.
func (s *Store) Reset(ctx context.Context) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, table := range []string{
			ReviewItemsTable.Name,
			PracticeSessionsTable.Name,
			LessonWordsTable.Name,
			LessonsTable.Name,
			WordsTable.Name,
			LearnersTable.Name,
		} {
			query, args := s.builder().Delete(table).Query()
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}

func (s *Store) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.dialect)
}

// inTx runs fn in a transaction, rolling back when it returns an error.
func (s *Store) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.x.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Warn("rollback failed", zap.Error(rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// insert runs b and returns the generated id. Postgres reports it through
// RETURNING; SQLite through LastInsertId.
func (s *Store) insert(ctx context.Context, ex sqlx.ExtContext, b *entsql.InsertBuilder) (int, error) {
	if s.dialect == dialect.Postgres {
		query, args := b.Returning("id").Query()
		var id int
		if err := sqlx.GetContext(ctx, ex, &id, query, args...); err != nil {
			return 0, translateErr(err)
		}
		return id, nil
	}

	query, args := b.Query()
	res, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translateErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return int(id), nil
}

// exec runs a builder that produces a statement and reports rows affected.
func (s *Store) exec(ctx context.Context, ex sqlx.ExecerContext, q entsql.Querier) (int64, error) {
	query, args := q.Query()
	res, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translateErr(err)
	}
	return res.RowsAffected()
}

// get scans a single row into dest, returning (false, nil) when there is
// no row.
func get(ctx context.Context, q sqlx.QueryerContext, dest any, sel *entsql.Selector) (bool, error) {
	query, args := sel.Query()
	err := sqlx.GetContext(ctx, q, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func selectAll(ctx context.Context, q sqlx.QueryerContext, dest any, sel *entsql.Selector) error {
	query, args := sel.Query()
	return sqlx.SelectContext(ctx, q, dest, query, args...)
}

// translateErr maps driver unique violations to ErrDuplicate.
func translateErr(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) && pe.Code == "23505" {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database location in priority order:
// 1. LINGUA_DB environment variable (a path or a postgres:// URL)
// 2. $XDG_DATA_HOME/lingua/lingua.db
// 3. ~/.local/share/lingua/lingua.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LINGUA_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "lingua", "lingua.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of a SQLite path. URLs and
// file: URIs are left alone.
func EnsureDir(path string) error {
	if IsPostgresURL(path) || strings.HasPrefix(path, "file:") {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
