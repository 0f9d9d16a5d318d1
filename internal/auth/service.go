// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

// Package auth implements account authentication and per-browser sessions:
// bcrypt credential verification, registration, login throttling, in-memory
// session state, and optional remember-me tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/anirudhkashyap/sidrama/internal/config"
	"github.com/anirudhkashyap/sidrama/internal/database"
	"github.com/anirudhkashyap/sidrama/internal/logging"
	"github.com/anirudhkashyap/sidrama/internal/metrics"
	"github.com/anirudhkashyap/sidrama/internal/models"
)

// Auth error taxonomy. Handlers map these onto inline form messages.
var (
	// ErrBadCredentials covers both unknown username and wrong password;
	// callers must not distinguish the two.
	ErrBadCredentials = errors.New("invalid username or password")

	// ErrLockedOut indicates too many failed attempts for the username.
	ErrLockedOut = errors.New("too many failed attempts, try again later")

	// ErrDuplicateUser indicates the username or email is already taken.
	ErrDuplicateUser = errors.New("username or email already registered")

	// ErrSessionNotFound indicates a missing or expired session.
	ErrSessionNotFound = errors.New("session not found")
)

// dummyHash is a bcrypt hash compared against when the username does not
// exist, so unknown-user and wrong-password take similar time.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("sidrama-timing-pad"), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("bcrypt self-test failed: %v", err))
	}
	return h
}()

// UserStore is the slice of the database gateway the auth service needs.
type UserStore interface {
	GetCredentials(ctx context.Context, username string) (*models.Credentials, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	CreateUser(ctx context.Context, username, passwordHash, name string, dob time.Time, email, phoneNo, address string) (int64, error)
}

// Service ties credential verification, throttling, sessions, and
// remember-me tokens together.
type Service struct {
	users          UserStore
	sessions       SessionStore
	jwt            *JWTManager
	limiter        *LoginLimiter
	bcryptCost     int
	sessionTimeout time.Duration
}

// NewService wires the auth service from its parts.
func NewService(users UserStore, sessions SessionStore, jwtManager *JWTManager, cfg *config.SecurityConfig) *Service {
	return &Service{
		users:          users,
		sessions:       sessions,
		jwt:            jwtManager,
		limiter:        NewLoginLimiter(cfg.LoginAttempts, cfg.LoginWindow),
		bcryptCost:     cfg.BcryptCost,
		sessionTimeout: cfg.SessionTimeout,
	}
}

// Login verifies credentials and creates a fresh session. When rememberMe is
// set, it also returns a signed remember-me token; otherwise the token is
// empty.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*Session, string, error) {
	if s.limiter.Locked(req.Username) {
		metrics.RecordLogin("locked_out")
		return nil, "", ErrLockedOut
	}

	creds, err := s.users.GetCredentials(ctx, req.Username)
	if err != nil {
		if database.IsNotFound(err) {
			// Burn comparable time before reporting failure.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			s.limiter.RecordFailure(req.Username)
			metrics.RecordLogin("bad_credentials")
			return nil, "", ErrBadCredentials
		}
		metrics.RecordLogin("error")
		return nil, "", fmt.Errorf("login lookup: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(req.Password)); err != nil {
		s.limiter.RecordFailure(req.Username)
		metrics.RecordLogin("bad_credentials")
		return nil, "", ErrBadCredentials
	}

	s.limiter.RecordSuccess(req.Username)
	s.limiter.Cleanup()

	session := NewSession(creds.UserID, creds.Username, creds.Name, s.sessionTimeout)
	if err := s.sessions.Create(ctx, session); err != nil {
		metrics.RecordLogin("error")
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	var rememberToken string
	if req.RememberMe {
		rememberToken, err = s.jwt.GenerateToken(creds.UserID, creds.Username)
		if err != nil {
			// Login still succeeds; the browser just won't be remembered.
			logging.Warn().Err(err).Str("username", creds.Username).Msg("Remember-me token generation failed")
			rememberToken = ""
		}
	}

	metrics.RecordLogin("success")
	logging.Info().Str("username", creds.Username).Int64("user_id", creds.UserID).Msg("User logged in")
	return session, rememberToken, nil
}

// Register hashes the password and creates the account. It does not log the
// user in; the interface shows a success message and the login form.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (int64, error) {
	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		metrics.RecordRegistration("invalid")
		return 0, fmt.Errorf("invalid date of birth: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		metrics.RecordRegistration("error")
		return 0, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.users.CreateUser(ctx, req.Username, string(hash), req.Name, dob, req.Email, req.PhoneNo, req.Address)
	if err != nil {
		if database.IsDuplicate(err) {
			metrics.RecordRegistration("duplicate")
			return 0, ErrDuplicateUser
		}
		metrics.RecordRegistration("error")
		return 0, fmt.Errorf("create user: %w", err)
	}

	metrics.RecordRegistration("success")
	logging.Info().Str("username", req.Username).Int64("user_id", userID).Msg("User registered")
	return userID, nil
}

// Logout deletes the session.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// ResolveSession returns the live session for an identifier.
func (s *Service) ResolveSession(ctx context.Context, sessionID string) (*Session, error) {
	return s.sessions.Get(ctx, sessionID)
}

// RestoreFromToken validates a remember-me token and builds a fresh session
// for its user. Interface state starts at Home; only identity is restored.
func (s *Service) RestoreFromToken(ctx context.Context, token string) (*Session, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("restore user: %w", err)
	}

	session := NewSession(user.UserID, user.Username, user.Name, s.sessionTimeout)
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	logging.Info().Str("username", user.Username).Msg("Session restored from remember-me token")
	return session, nil
}
