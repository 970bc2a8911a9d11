// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cecm11deoutubro/portal/models"
	"github.com/cecm11deoutubro/portal/store"
	"github.com/cecm11deoutubro/portal/testutil"
)

const suffix = "@escola.pr.gov.br"

func newTestService(t *testing.T) *Service {
	t.Helper()
	db := testutil.SetupTestDB(t)

	svc := NewService(store.New(db), suffix, nil)
	svc.HashCost = bcrypt.MinCost
	return svc
}

func TestRegister(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "  maria  ", "s3cret", models.RoleStaff, time.Now())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Username != "maria" || user.Role != models.RoleStaff {
		t.Errorf("Unexpected user: %+v", user)
	}
	if user.PasswordHash == "s3cret" || user.PasswordHash == "" {
		t.Error("Expected a hashed credential")
	}

	_, err = svc.Register(ctx, "maria", "other", models.RoleStudent, time.Now())
	if !errors.Is(err, models.ErrDuplicateUsername) {
		t.Errorf("Register() error = %v, want ErrDuplicateUsername", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name     string
		username string
		secret   string
		role     models.Role
	}{
		{"empty username", "", "pw", models.RoleStudent},
		{"blank username", "   ", "pw", models.RoleStudent},
		{"empty password", "ana", "", models.RoleStudent},
		{"unknown role", "ana", "pw", models.Role("funcionario")},
		{"password too long", "ana", string(make([]byte, 80)), models.RoleStudent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.username, tt.secret, tt.role, time.Now())
			if !errors.Is(err, models.ErrValidation) {
				t.Errorf("Register() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "maria", "s3cret", models.RoleAdmin, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	user, err := svc.Authenticate(ctx, "maria", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("Authenticate() returned %s, want %s", user.ID, registered.ID)
	}

	tests := []struct {
		name     string
		username string
		secret   string
	}{
		{"wrong password", "maria", "wrong"},
		{"unknown user", "joao", "s3cret"},
		{"empty password", "maria", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(ctx, tt.username, tt.secret)
			if !errors.Is(err, models.ErrAuthFailure) {
				t.Errorf("Authenticate() error = %v, want ErrAuthFailure", err)
			}
		})
	}
}

func TestLogin_StudentSelfRegistration(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	email := "ana.souza" + suffix

	user, registered, err := svc.Login(ctx, "ana", email, time.Now())
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !registered {
		t.Error("Expected first login to register the student")
	}
	if user.Role != models.RoleStudent {
		t.Errorf("Expected student role, got %s", user.Role)
	}

	// Returning student logs in with the same credential
	again, registered, err := svc.Login(ctx, "ana", email, time.Now())
	if err != nil {
		t.Fatalf("second Login() error = %v", err)
	}
	if registered || again.ID != user.ID {
		t.Errorf("Expected existing account, got registered=%v id=%s", registered, again.ID)
	}

	// A different institutional address does not take over the account
	_, _, err = svc.Login(ctx, "ana", "intruder"+suffix, time.Now())
	if !errors.Is(err, models.ErrAuthFailure) {
		t.Errorf("Login() error = %v, want ErrAuthFailure", err)
	}
}

func TestLogin_NonStudentCredential(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		secret string
	}{
		{"other domain", "ana@gmail.com"},
		{"suffix alone", suffix},
		{"suffix not at end", "ana" + suffix + ".br"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, registered, err := svc.Login(ctx, "ana", tt.secret, time.Now())
			if !errors.Is(err, models.ErrAuthFailure) {
				t.Errorf("Login() error = %v, want ErrAuthFailure", err)
			}
			if registered {
				t.Error("Expected no registration")
			}
		})
	}

	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 0 {
		t.Errorf("Expected no users, got %d", len(users))
	}
}

func TestLogin_ExistingStaffWithInstitutionalPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	secret := "prof" + suffix

	staff, err := svc.Register(ctx, "prof", secret, models.RoleStaff, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	user, registered, err := svc.Login(ctx, "prof", secret, time.Now())
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if registered || user.ID != staff.ID || user.Role != models.RoleStaff {
		t.Errorf("Expected existing staff account, got %+v registered=%v", user, registered)
	}
}

func TestLogin_SelfRegistrationDisabled(t *testing.T) {
	db := testutil.SetupTestDB(t)

	svc := NewService(store.New(db), "", nil)
	_, _, err := svc.Login(context.Background(), "ana", "ana"+suffix, time.Now())
	if !errors.Is(err, models.ErrAuthFailure) {
		t.Errorf("Login() error = %v, want ErrAuthFailure", err)
	}
}

func TestLogin_ConcurrentFirstLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	email := "bia" + suffix

	var wg sync.WaitGroup
	var registeredCount, successCount atomic.Int32
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, registered, err := svc.Login(ctx, "bia", email, time.Now())
			if err != nil {
				t.Errorf("Login() error = %v", err)
				return
			}
			successCount.Add(1)
			if registered {
				registeredCount.Add(1)
			}
		}()
	}
	wg.Wait()

	if successCount.Load() != 5 {
		t.Errorf("Expected all logins to succeed, got %d", successCount.Load())
	}
	if registeredCount.Load() != 1 {
		t.Errorf("Expected exactly one registration, got %d", registeredCount.Load())
	}
}

func TestGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "maria", "s3cret", models.RoleStaff, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Username != "maria" || got.Role != models.RoleStaff {
		t.Errorf("Unexpected user: %+v", got)
	}

	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "admin", "admin123", time.Now())
	if err != nil || !created {
		t.Fatalf("EnsureAdmin() = %v, %v; want true, nil", created, err)
	}

	created, err = svc.EnsureAdmin(ctx, "admin", "changed", time.Now())
	if err != nil || created {
		t.Fatalf("second EnsureAdmin() = %v, %v; want false, nil", created, err)
	}

	// The original credential still works
	user, err := svc.Authenticate(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("Expected admin role, got %s", user.Role)
	}
}

func TestUsesPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.EnsureAdmin(ctx, "admin", "admin123", time.Now()); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Register(ctx, "diretora", "s3nha-forte", models.RoleAdmin, time.Now()); err != nil {
		t.Fatal(err)
	}
	// Seeding again leaves the existing account alone
	if _, err := svc.EnsureAdmin(ctx, "diretora", "admin123", time.Now()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		username string
		secret   string
		want     bool
	}{
		{"seeded with default", "admin", "admin123", true},
		{"existing account keeps its password", "diretora", "admin123", false},
		{"current password", "diretora", "s3nha-forte", true},
		{"unknown user", "ghost", "admin123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.UsesPassword(ctx, tt.username, tt.secret)
			if err != nil {
				t.Fatalf("UsesPassword() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("UsesPassword(%q) = %v, want %v", tt.username, got, tt.want)
			}
		})
	}
}
