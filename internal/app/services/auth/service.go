// Package auth implements the bearer-token authentication protocol: issuing
// a token against stored credentials, verifying a token/email pair, and
// extending or revoking a live token.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"github.com/plateful/backend/internal/app/domain/token"
	"github.com/plateful/backend/internal/app/domain/user"
	"github.com/plateful/backend/internal/app/services/random"
	"github.com/plateful/backend/internal/app/storage"
	"github.com/plateful/backend/pkg/logger"
)

// TokenLifetime is how long an issued or extended token stays valid.
const TokenLifetime = time.Hour

const hashIterations = 4096

var (
	// ErrNotFound means the referenced user or token does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials means the supplied password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrExpired means the token has passed its expiry and cannot be used
	// or extended.
	ErrExpired = errors.New("token expired")
)

// Service issues and validates bearer tokens.
type Service struct {
	store  storage.Store
	secret []byte
	now    func() time.Time
	log    *logger.Logger
}

// New creates an authentication service hashing passwords with the given
// secret key.
func New(store storage.Store, secret string, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("auth")
	}
	return &Service{
		store:  store,
		secret: []byte(secret),
		now:    time.Now,
		log:    log,
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// HashPassword derives the stored one-way keyed hash of a password. The
// derivation is deterministic so login can compare hashes directly.
func (s *Service) HashPassword(password string) string {
	key := pbkdf2.Key([]byte(password), s.secret, hashIterations, 32, sha256.New)
	return hex.EncodeToString(key)
}

// Verify reports whether the token exists, is bound to the supplied email
// and has not expired. It is the single authorization gate for every
// protected handler and never returns an error.
func (s *Service) Verify(ctx context.Context, tokenID, email string) bool {
	if tokenID == "" || email == "" {
		return false
	}

	var tok token.Token
	ok, err := s.store.Read(ctx, storage.Tokens, tokenID, &tok)
	if err != nil || !ok {
		return false
	}
	return tok.Email == email && !tok.Expired(s.now())
}

// Issue authenticates the email/password pair and persists a fresh token.
func (s *Service) Issue(ctx context.Context, email, password string) (token.Token, error) {
	var u user.User
	ok, err := s.store.Read(ctx, storage.Users, email, &u)
	if err != nil {
		return token.Token{}, fmt.Errorf("read user: %w", err)
	}
	if !ok {
		return token.Token{}, ErrNotFound
	}

	if s.HashPassword(password) != u.HashedPassword {
		return token.Token{}, ErrInvalidCredentials
	}

	id, err := random.String(token.IDLength)
	if err != nil {
		return token.Token{}, fmt.Errorf("generate token id: %w", err)
	}

	tok := token.Token{
		ID:      id,
		Email:   email,
		Expires: s.now().Add(TokenLifetime),
	}
	if err := s.store.Create(ctx, storage.Tokens, tok.ID, tok); err != nil {
		return token.Token{}, fmt.Errorf("persist token: %w", err)
	}

	s.log.WithField("email", email).Info("token issued")
	return tok, nil
}

// Lookup returns the token record, rejecting expired tokens with ErrExpired.
func (s *Service) Lookup(ctx context.Context, tokenID string) (token.Token, error) {
	var tok token.Token
	ok, err := s.store.Read(ctx, storage.Tokens, tokenID, &tok)
	if err != nil {
		return token.Token{}, fmt.Errorf("read token: %w", err)
	}
	if !ok {
		return token.Token{}, ErrNotFound
	}
	if tok.Expired(s.now()) {
		return token.Token{}, ErrExpired
	}
	return tok, nil
}

// Extend pushes the expiry of a live token one lifetime into the future. An
// already-expired token cannot be resurrected.
func (s *Service) Extend(ctx context.Context, tokenID string) error {
	var tok token.Token
	ok, err := s.store.Read(ctx, storage.Tokens, tokenID, &tok)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	if tok.Expired(s.now()) {
		return ErrExpired
	}

	tok.Expires = s.now().Add(TokenLifetime)
	if err := s.store.Update(ctx, storage.Tokens, tokenID, tok); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// Revoke deletes the token record.
func (s *Service) Revoke(ctx context.Context, tokenID string) error {
	var tok token.Token
	ok, err := s.store.Read(ctx, storage.Tokens, tokenID, &tok)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if !ok {
		return ErrNotFound
	}

	if !s.store.Delete(ctx, storage.Tokens, tokenID) {
		return fmt.Errorf("delete token %s", tokenID)
	}
	s.log.WithField("email", tok.Email).Info("token revoked")
	return nil
}
