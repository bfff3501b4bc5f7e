// Package auth verifies learner credentials and produces the Session
// value that identifies who is practising.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/lingua/internal/learner"
	"github.com/abhisek/lingua/internal/store"
)

// ErrInvalidCredentials is returned for an unknown learner and for a
// wrong password alike.
var ErrInvalidCredentials = errors.New("invalid learner name or password")

// MinPasswordLength applies to new passwords only.
const MinPasswordLength = 6

// Session identifies the logged-in learner. It is passed explicitly to
// whatever needs to act on the learner's behalf.
type Session struct {
	Profile    *learner.Profile
	LoggedInAt time.Time
}

// HashPassword returns the bcrypt hash of password. An empty password
// hashes to "", which marks the learner as passwordless.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Authenticator checks credentials against stored learners.
type Authenticator struct {
	learners store.LearnerRepo
	now      func() time.Time
}

// New creates an Authenticator backed by learners.
func New(learners store.LearnerRepo) *Authenticator {
	return &Authenticator{learners: learners, now: time.Now}
}

// Login returns a session for name. Learners without a stored password
// log in by name alone; the password argument is ignored for them.
func (a *Authenticator) Login(ctx context.Context, name, password string) (*Session, error) {
	p, err := a.learners.ByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if p == nil {
		return nil, ErrInvalidCredentials
	}

	hash, err := a.learners.PasswordHash(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if hash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
			return nil, ErrInvalidCredentials
		}
	}

	return &Session{Profile: p, LoggedInAt: a.now()}, nil
}

// ChangePassword sets a new password for the session's learner. An empty
// password removes it.
func (a *Authenticator) ChangePassword(ctx context.Context, s *Session, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return a.learners.SetPassword(ctx, s.Profile.ID, hash)
}
