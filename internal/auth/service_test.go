// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/anirudhkashyap/sidrama/internal/config"
	"github.com/anirudhkashyap/sidrama/internal/database"
	"github.com/anirudhkashyap/sidrama/internal/models"
)

// fakeUserStore is an in-memory UserStore for service tests.
type fakeUserStore struct {
	users   map[string]*models.Credentials
	byID    map[int64]*models.User
	nextID  int64
	created []string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:  make(map[string]*models.Credentials),
		byID:   make(map[int64]*models.User),
		nextID: 1,
	}
}

func (f *fakeUserStore) addUser(t *testing.T, username, password, name string) int64 {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	id := f.nextID
	f.nextID++
	f.users[username] = &models.Credentials{
		UserID:       id,
		Username:     username,
		Name:         name,
		PasswordHash: string(hash),
	}
	f.byID[id] = &models.User{UserID: id, Username: username, Name: name}
	return id
}

func (f *fakeUserStore) GetCredentials(_ context.Context, username string) (*models.Credentials, error) {
	creds, ok := f.users[username]
	if !ok {
		return nil, database.ErrNotFound
	}
	return creds, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, userID int64) (*models.User, error) {
	user, ok := f.byID[userID]
	if !ok {
		return nil, database.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserStore) CreateUser(_ context.Context, username, passwordHash, name string, _ time.Time, email, _, _ string) (int64, error) {
	if _, exists := f.users[username]; exists {
		return 0, database.ErrDuplicate
	}
	id := f.nextID
	f.nextID++
	f.users[username] = &models.Credentials{UserID: id, Username: username, Name: name, PasswordHash: passwordHash}
	f.byID[id] = &models.User{UserID: id, Username: username, Name: name, Email: email}
	f.created = append(f.created, username)
	return id, nil
}

func testSecurityConfig() *config.SecurityConfig {
	return &config.SecurityConfig{
		JWTSecret:         "0123456789abcdef0123456789abcdef",
		SessionTimeout:    time.Hour,
		RememberMeTimeout: 24 * time.Hour,
		BcryptCost:        bcrypt.MinCost,
		LoginAttempts:     3,
		LoginWindow:       time.Hour,
	}
}

func newTestService(t *testing.T, users *fakeUserStore) (*Service, *MemorySessionStore) {
	t.Helper()
	cfg := testSecurityConfig()
	jwtManager, err := NewJWTManager(cfg)
	if err != nil {
		t.Fatalf("jwt manager: %v", err)
	}
	sessions := NewMemorySessionStore()
	return NewService(users, sessions, jwtManager, cfg), sessions
}

func TestLoginSuccess(t *testing.T) {
	users := newFakeUserStore()
	users.addUser(t, "alice", "hunter2secret", "Alice K")
	svc, _ := newTestService(t, users)

	session, token, err := svc.Login(context.Background(), &models.LoginRequest{
		Username: "alice",
		Password: "hunter2secret",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.Username != "alice" || session.Name != "Alice K" {
		t.Errorf("session identity = %q/%q", session.Username, session.Name)
	}
	if session.CurrentPage() != PageHome {
		t.Errorf("fresh session page = %q, want Home", session.CurrentPage())
	}
	if token != "" {
		t.Error("remember token issued without remember_me")
	}
}

func TestLoginRememberMe(t *testing.T) {
	users := newFakeUserStore()
	users.addUser(t, "alice", "hunter2secret", "Alice K")
	svc, _ := newTestService(t, users)

	_, token, err := svc.Login(context.Background(), &models.LoginRequest{
		Username:   "alice",
		Password:   "hunter2secret",
		RememberMe: true,
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatal("no remember token issued")
	}

	restored, err := svc.RestoreFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if restored.Username != "alice" {
		t.Errorf("restored username = %q", restored.Username)
	}
	if restored.CurrentPage() != PageHome || restored.Pending() != nil {
		t.Error("restored session must start with fresh interface state")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserStore()
	users.addUser(t, "alice", "hunter2secret", "Alice K")
	svc, _ := newTestService(t, users)

	_, _, err := svc.Login(context.Background(), &models.LoginRequest{
		Username: "alice",
		Password: "not-the-password",
	})
	if !errors.Is(err, ErrBadCredentials) {
		t.Errorf("err = %v, want ErrBadCredentials", err)
	}
}

func TestLoginUnknownUserSameError(t *testing.T) {
	svc, _ := newTestService(t, newFakeUserStore())

	_, _, err := svc.Login(context.Background(), &models.LoginRequest{
		Username: "nobody",
		Password: "whatever12345",
	})
	if !errors.Is(err, ErrBadCredentials) {
		t.Errorf("unknown user must yield ErrBadCredentials, got %v", err)
	}
}

func TestLoginLockout(t *testing.T) {
	users := newFakeUserStore()
	users.addUser(t, "alice", "hunter2secret", "Alice K")
	svc, _ := newTestService(t, users)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, err := svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "wrong"})
		if !errors.Is(err, ErrBadCredentials) {
			t.Fatalf("attempt %d: err = %v", i, err)
		}
	}

	// Budget exhausted: even the correct password is refused.
	_, _, err := svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "hunter2secret"})
	if !errors.Is(err, ErrLockedOut) {
		t.Errorf("err = %v, want ErrLockedOut", err)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserStore()
	svc, _ := newTestService(t, users)
	ctx := context.Background()

	userID, err := svc.Register(ctx, &models.RegisterRequest{
		Username: "bob",
		Password: "longenoughpw",
		Name:     "Bob R",
		DOB:      "1990-04-01",
		Email:    "bob@example.com",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if userID == 0 {
		t.Error("no user id returned")
	}

	if _, _, err := svc.Login(ctx, &models.LoginRequest{Username: "bob", Password: "longenoughpw"}); err != nil {
		t.Errorf("login after register failed: %v", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	users := newFakeUserStore()
	users.addUser(t, "bob", "longenoughpw", "Bob R")
	svc, _ := newTestService(t, users)

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "bob",
		Password: "longenoughpw",
		Name:     "Bob Again",
		DOB:      "1990-04-01",
		Email:    "bob2@example.com",
	})
	if !errors.Is(err, ErrDuplicateUser) {
		t.Errorf("err = %v, want ErrDuplicateUser", err)
	}
}

func TestRegisterBadDOB(t *testing.T) {
	svc, _ := newTestService(t, newFakeUserStore())

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "carol",
		Password: "longenoughpw",
		Name:     "Carol",
		DOB:      "01/02/1990",
		Email:    "carol@example.com",
	})
	if err == nil {
		t.Error("malformed date of birth accepted")
	}
}

func TestLogoutDeletesSession(t *testing.T) {
	users := newFakeUserStore()
	users.addUser(t, "alice", "hunter2secret", "Alice K")
	svc, sessions := newTestService(t, users)
	ctx := context.Background()

	session, _, err := svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "hunter2secret"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := svc.Logout(ctx, session.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := sessions.Get(ctx, session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("session survived logout: %v", err)
	}
}
