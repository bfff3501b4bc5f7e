package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/auth"
	"github.com/abhisek/lingua/internal/config"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/logger"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/tutor"
)

// deps is what most commands need: configuration, a logger and an open
// store.
type deps struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store
}

func setup(cmd *cobra.Command) (*deps, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	st, err := store.Open(dbPath, store.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &deps{cfg: cfg, log: log, store: st}, nil
}

func (d *deps) Close() {
	if err := d.store.Close(); err != nil {
		d.log.Warn("close store", zap.Error(err))
	}
	_ = d.log.Sync()
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then the configured db, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// tutor builds a tutor backed by the configured provider. When no
// provider is usable the tutor falls back to canned answers and a note
// goes to stderr.
func (d *deps) tutor(ctx context.Context, cmd *cobra.Command) *tutor.Tutor {
	cfg := tutor.DefaultConfig()
	if !d.cfg.LLMEnabled {
		fmt.Fprintf(cmd.ErrOrStderr(), "AI features unavailable: %s\n", d.cfg.LLMDisabledReason)
		return tutor.New(nil, cfg, d.log)
	}

	provider, err := llm.NewProvider(ctx, d.cfg.LLM, d.store.EventRepo(), d.log)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "LLM provider not configured:", err)
		fmt.Fprintln(cmd.ErrOrStderr(), "AI features will be unavailable.")
		return tutor.New(nil, cfg, d.log)
	}
	if d.cfg.LLM.Timeout > 0 {
		cfg.Timeout = d.cfg.LLM.Timeout
	}
	return tutor.New(provider, cfg, d.log)
}

// login returns the session for --learner/--password.
func (d *deps) login(ctx context.Context, cmd *cobra.Command) (*auth.Session, error) {
	name, _ := cmd.Flags().GetString("learner")
	if name == "" {
		return nil, errors.New("no learner selected: pass --learner NAME")
	}
	password, _ := cmd.Flags().GetString("password")

	sess, err := auth.New(d.store.LearnerRepo()).Login(ctx, name, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return nil, fmt.Errorf("cannot log in as %q: unknown learner or wrong password", name)
	}
	return sess, err
}
