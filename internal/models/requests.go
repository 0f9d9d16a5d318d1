// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package models

// LoginRequest carries the sidebar login form fields.
type LoginRequest struct {
	Username   string `json:"username" validate:"required,max=50"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RegisterRequest carries the registration form fields.
// Username, password, name and email are required; phone and address are not.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
	DOB      string `json:"dob" validate:"required,datetime=2006-01-02"`
	Email    string `json:"email" validate:"required,email,max=100"`
	PhoneNo  string `json:"ph_no" validate:"omitempty,max=20"`
	Address  string `json:"address" validate:"omitempty,max=300"`
}

// ReviewRequest carries a review form submission for a movie or an episode.
// Ratings run 0.0-5.0 in half-point steps; the text must be non-empty.
// Validation runs before any write is attempted.
type ReviewRequest struct {
	Rating float64 `json:"rating" validate:"gte=0,lte=5,halfstep"`
	Text   string  `json:"review_text" validate:"required,max=5000"`
}
