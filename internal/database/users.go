// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package database

import (
	"context"
	"time"

	"github.com/anirudhkashyap/sidrama/internal/models"
)

// GetCredentials fetches the credential row for a username.
// Returns ErrNotFound when the username does not exist; the auth service
// still runs a bcrypt comparison in that case to keep timing uniform.
func (db *DB) GetCredentials(ctx context.Context, username string) (*models.Credentials, error) {
	ctx, cancel := db.opCtx(ctx, "get credentials")
	defer cancel()

	var creds models.Credentials
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, username, name, password FROM "User" WHERE username = $1`,
		username,
	).Scan(&creds.UserID, &creds.Username, &creds.Name, &creds.PasswordHash)
	if err != nil {
		return nil, classify("get credentials", err)
	}
	return &creds, nil
}

// GetUserByID fetches a user's profile row.
func (db *DB) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	ctx, cancel := db.opCtx(ctx, "get user")
	defer cancel()

	var user models.User
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, username, name, dob, email, ph_no, address
		 FROM "User" WHERE user_id = $1`,
		userID,
	).Scan(&user.UserID, &user.Username, &user.Name, &user.DOB,
		&user.Email, &user.PhoneNo, &user.Address)
	if err != nil {
		return nil, classify("get user", err)
	}
	return &user, nil
}

// CreateUser inserts a new User row and returns the generated identifier.
// Unique violations (duplicate username or email) surface as ErrDuplicate.
func (db *DB) CreateUser(ctx context.Context, username, passwordHash, name string, dob time.Time, email, phoneNo, address string) (int64, error) {
	ctx, cancel := db.opCtx(ctx, "create user")
	defer cancel()

	var userID int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO "User" (username, password, name, dob, email, ph_no, address)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING user_id`,
		username, passwordHash, name, dob, email, phoneNo, address,
	).Scan(&userID)
	if err != nil {
		return 0, classify("create user", err)
	}
	return userID, nil
}
