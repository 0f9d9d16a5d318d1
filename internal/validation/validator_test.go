// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package validation

import (
	"strings"
	"testing"

	"github.com/anirudhkashyap/sidrama/internal/models"
)

func TestHalfstepRatings(t *testing.T) {
	cases := []struct {
		rating float64
		valid  bool
	}{
		{0, true},
		{0.5, true},
		{2.5, true},
		{3.0, true},
		{5, true},
		{2.3, false},
		{4.75, false},
		{-0.5, false},
		{5.5, false},
	}

	for _, tc := range cases {
		err := ValidateStruct(&models.ReviewRequest{Rating: tc.rating, Text: "fine"})
		if tc.valid && err != nil {
			t.Errorf("rating %v rejected: %v", tc.rating, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("rating %v accepted", tc.rating)
		}
	}
}

func TestReviewTextRequired(t *testing.T) {
	err := ValidateStruct(&models.ReviewRequest{Rating: 4, Text: ""})
	if err == nil {
		t.Fatal("empty review text accepted")
	}
	if !strings.Contains(err.UserMessage(), "required") {
		t.Errorf("message = %q, want a required-field message", err.UserMessage())
	}
}

func TestLoginRequestValidation(t *testing.T) {
	cases := []struct {
		name  string
		req   models.LoginRequest
		valid bool
	}{
		{"ok", models.LoginRequest{Username: "alice", Password: "pw"}, true},
		{"no username", models.LoginRequest{Password: "pw"}, false},
		{"no password", models.LoginRequest{Username: "alice"}, false},
		{"username too long", models.LoginRequest{Username: strings.Repeat("a", 51), Password: "pw"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(&tc.req)
			if tc.valid && err != nil {
				t.Errorf("rejected: %v", err)
			}
			if !tc.valid && err == nil {
				t.Error("accepted")
			}
		})
	}
}

func TestRegisterRequestValidation(t *testing.T) {
	good := models.RegisterRequest{
		Username: "alice",
		Password: "longenoughpw",
		Name:     "Alice K",
		DOB:      "1995-06-15",
		Email:    "alice@example.com",
	}

	cases := []struct {
		name   string
		mutate func(*models.RegisterRequest)
		valid  bool
	}{
		{"ok", func(*models.RegisterRequest) {}, true},
		{"optional fields", func(r *models.RegisterRequest) { r.PhoneNo = "555-0101"; r.Address = "1 Main St" }, true},
		{"short username", func(r *models.RegisterRequest) { r.Username = "ab" }, false},
		{"short password", func(r *models.RegisterRequest) { r.Password = "short" }, false},
		{"bad email", func(r *models.RegisterRequest) { r.Email = "not-an-email" }, false},
		{"bad dob format", func(r *models.RegisterRequest) { r.DOB = "15/06/1995" }, false},
		{"missing name", func(r *models.RegisterRequest) { r.Name = "" }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := good
			tc.mutate(&req)
			err := ValidateStruct(&req)
			if tc.valid && err != nil {
				t.Errorf("rejected: %v", err)
			}
			if !tc.valid && err == nil {
				t.Error("accepted")
			}
		})
	}
}

func TestValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("validator is not a singleton")
	}
}
