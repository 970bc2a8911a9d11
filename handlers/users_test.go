// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cecm11deoutubro/portal/models"
	"github.com/cecm11deoutubro/portal/testutil"
)

func TestCreateUser(t *testing.T) {
	db, svc, _ := setupIdentity(t)
	handler := NewUserHandler(svc)

	testutil.CreateTestUser(t, db, "taken", models.RoleStaff)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectedRole   models.Role
	}{
		{
			name:           "role defaults to admin",
			requestBody:    models.CreateUserRequest{Username: "diretora", Password: "s3cret"},
			expectedStatus: http.StatusCreated,
			expectedRole:   models.RoleAdmin,
		},
		{
			name:           "explicit staff role",
			requestBody:    models.CreateUserRequest{Username: "prof", Password: "s3cret", Role: models.RoleStaff},
			expectedStatus: http.StatusCreated,
			expectedRole:   models.RoleStaff,
		},
		{
			name:           "duplicate username",
			requestBody:    models.CreateUserRequest{Username: "taken", Password: "s3cret"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "unknown role",
			requestBody:    models.CreateUserRequest{Username: "x", Password: "s3cret", Role: "janitor"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing password",
			requestBody:    models.CreateUserRequest{Username: "y"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/admin/users", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.CreateUser(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var user models.User
				testutil.AssertJSON(t, w, &user)
				if user.ID == "" || user.Role != tt.expectedRole {
					t.Errorf("Expected role %s, got %+v", tt.expectedRole, user)
				}
			}
		})
	}
}

func TestListUsers(t *testing.T) {
	db, svc, _ := setupIdentity(t)
	handler := NewUserHandler(svc)

	testutil.CreateTestUser(t, db, "maria", models.RoleAdmin)
	testutil.CreateTestUser(t, db, "ana", models.RoleStudent)

	w := httptest.NewRecorder()
	handler.ListUsers(w, httptest.NewRequest("GET", "/admin/users", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var users []models.User
	testutil.AssertJSON(t, w, &users)
	if len(users) != 2 || users[0].Username != "ana" || users[1].Username != "maria" {
		t.Errorf("Expected users ordered by username, got %+v", users)
	}
}
