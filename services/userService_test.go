package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"KuskoDento/models"
)

func newUserService(t *testing.T) (UserService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	return NewUserService(env.users, env.store), env
}

func TestAuthenticateBootstrapsFirstAdmin(t *testing.T) {
	service, env := newUserService(t)
	ctx := context.Background()

	// Any other pair is rejected on an empty database.
	if _, err := service.AuthenticateUser(ctx, "root", "root"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	user, err := service.AuthenticateUser(ctx, "admin", "admin")
	if err != nil {
		t.Fatalf("bootstrap login: %v", err)
	}
	if user.Username != "admin" || user.Role != models.RoleAdmin {
		t.Fatalf("unexpected bootstrap account: %+v", user)
	}

	stored, err := env.users.GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("get stored user: %v", err)
	}
	if stored == nil {
		t.Fatal("bootstrap account not persisted")
	}
	if stored.Password == "admin" || !strings.HasPrefix(stored.Password, "$2") {
		t.Fatalf("password stored without hashing: %q", stored.Password)
	}

	// Once a user exists the bootstrap path is gone; the real hash applies.
	if _, err := service.AuthenticateUser(ctx, "admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.AuthenticateUser(ctx, "admin", "admin"); err != nil {
		t.Fatalf("login with bootstrap password: %v", err)
	}
}

func TestAuthenticatePersistsSessionMarker(t *testing.T) {
	service, _ := newUserService(t)
	ctx := context.Background()

	if _, err := service.AuthenticateUser(ctx, "admin", "admin"); err != nil {
		t.Fatalf("login: %v", err)
	}

	session, err := service.CurrentSession(ctx)
	if err != nil {
		t.Fatalf("current session: %v", err)
	}
	if session == nil || session.Username != "admin" || session.Role != models.RoleAdmin {
		t.Fatalf("unexpected session marker: %+v", session)
	}

	if err := service.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	session, err = service.CurrentSession(ctx)
	if err != nil {
		t.Fatalf("current session after logout: %v", err)
	}
	if session != nil {
		t.Fatalf("expected cleared session, got %+v", session)
	}
}

func TestValidateAndCreateUser(t *testing.T) {
	service, env := newUserService(t)
	ctx := context.Background()

	user := models.User{Username: "cmamani", Password: "secreta", FullName: "Carla Mamani"}
	if err := service.ValidateAndCreateUser(ctx, &user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID == "" || user.Role != models.RoleAdmin {
		t.Fatalf("defaults not applied: %+v", user)
	}

	stored, err := env.users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Password == "secreta" {
		t.Fatal("password stored in plain text")
	}

	duplicate := models.User{Username: "cmamani", Password: "otra"}
	if err := service.ValidateAndCreateUser(ctx, &duplicate); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	invalid := models.User{Username: "ab", Password: "secreta"}
	if err := service.ValidateAndCreateUser(ctx, &invalid); err == nil {
		t.Fatal("expected validation error for short username")
	}
}

func TestUpdateUserProfilePreservesHash(t *testing.T) {
	service, env := newUserService(t)
	ctx := context.Background()

	user := models.User{Username: "cmamani", Password: "secreta"}
	if err := service.ValidateAndCreateUser(ctx, &user); err != nil {
		t.Fatalf("create: %v", err)
	}
	hashed := user.Password

	update := models.User{ID: user.ID, Username: "cmamani", FullName: "Carla Mamani", Colegiatura: "COP 12345"}
	if err := service.UpdateUserProfile(ctx, &update); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, err := env.users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Password != hashed {
		t.Fatal("profile update must not change the stored hash")
	}
	if stored.FullName != "Carla Mamani" || stored.Colegiatura != "COP 12345" {
		t.Fatalf("profile fields not updated: %+v", stored)
	}

	missing := models.User{ID: "nope", Username: "ghost"}
	if err := service.UpdateUserProfile(ctx, &missing); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateUserPassword(t *testing.T) {
	service, _ := newUserService(t)
	ctx := context.Background()

	user := models.User{Username: "cmamani", Password: "secreta"}
	if err := service.ValidateAndCreateUser(ctx, &user); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := service.UpdateUserPassword(ctx, user.ID, "abc"); err == nil {
		t.Fatal("expected error for too-short password")
	}
	if err := service.UpdateUserPassword(ctx, user.ID, "nueva-clave"); err != nil {
		t.Fatalf("update password: %v", err)
	}

	if _, err := service.AuthenticateUser(ctx, "cmamani", "secreta"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, err := service.AuthenticateUser(ctx, "cmamani", "nueva-clave"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestDeleteUserRefusesLastAccount(t *testing.T) {
	service, _ := newUserService(t)
	ctx := context.Background()

	first, err := service.AuthenticateUser(ctx, "admin", "admin")
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	if err := service.DeleteUser(ctx, first.ID); !errors.Is(err, ErrLastUser) {
		t.Fatalf("expected ErrLastUser, got %v", err)
	}

	second := models.User{Username: "cmamani", Password: "secreta"}
	if err := service.ValidateAndCreateUser(ctx, &second); err != nil {
		t.Fatalf("create second: %v", err)
	}
	if err := service.DeleteUser(ctx, first.ID); err != nil {
		t.Fatalf("delete with two accounts: %v", err)
	}
	if err := service.DeleteUser(ctx, second.ID); !errors.Is(err, ErrLastUser) {
		t.Fatalf("expected ErrLastUser for final account, got %v", err)
	}
}

func TestVerifyPassword(t *testing.T) {
	service, _ := newUserService(t)
	ctx := context.Background()

	user := models.User{Username: "cmamani", Password: "secreta"}
	if err := service.ValidateAndCreateUser(ctx, &user); err != nil {
		t.Fatalf("create: %v", err)
	}

	if !service.VerifyPassword(ctx, user.ID, "secreta") {
		t.Fatal("correct password rejected")
	}
	if service.VerifyPassword(ctx, user.ID, "wrong") {
		t.Fatal("wrong password accepted")
	}
	if service.VerifyPassword(ctx, "nope", "secreta") {
		t.Fatal("unknown user accepted")
	}
}
