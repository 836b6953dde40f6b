package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/sakif/snippet-manager/internal/apperror"
	"github.com/sakif/snippet-manager/internal/auth"
	"github.com/sakif/snippet-manager/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestAuthService(t *testing.T) (*AuthService, *mockUserRepo) {
	t.Helper()
	repo := newMockUserRepo()
	tokens, err := auth.NewTokenService("test-secret-key-at-least-16-chars")
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	return NewAuthService(repo, tokens, testLogger()), repo
}

func TestLogin_Success(t *testing.T) {
	svc, repo := newTestAuthService(t)
	id, _ := repo.Add(context.Background(), "olena", "s3cret", model.AccessLevelUser)

	result, err := svc.Login(context.Background(), "olena", "s3cret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.User.ID != id {
		t.Errorf("User.ID = %d, want %d", result.User.ID, id)
	}
	if result.Session.UserID != id {
		t.Errorf("Session.UserID = %d, want %d", result.Session.UserID, id)
	}
	if result.Token == "" {
		t.Error("expected a signed token")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo := newTestAuthService(t)
	repo.Add(context.Background(), "olena", "s3cret", model.AccessLevelUser)

	_, err := svc.Login(context.Background(), "olena", "wrong")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

// Unknown username and wrong password must be indistinguishable to the caller.
func TestLogin_UnknownUserSameError(t *testing.T) {
	svc, repo := newTestAuthService(t)
	repo.Add(context.Background(), "olena", "s3cret", model.AccessLevelUser)

	_, errUnknown := svc.Login(context.Background(), "nobody", "s3cret")
	_, errWrongPw := svc.Login(context.Background(), "olena", "wrong")
	if !errors.Is(errUnknown, apperror.ErrUnauthorized) || !errors.Is(errWrongPw, apperror.ErrUnauthorized) {
		t.Fatalf("both failures should be ErrUnauthorized, got %v and %v", errUnknown, errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Errorf("messages differ: %q vs %q", errUnknown.Error(), errWrongPw.Error())
	}
}

func TestLogin_PasswordIsCaseSensitive(t *testing.T) {
	svc, repo := newTestAuthService(t)
	repo.Add(context.Background(), "olena", "Secret", model.AccessLevelUser)

	_, err := svc.Login(context.Background(), "olena", "secret")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestRegister_Success(t *testing.T) {
	svc, repo := newTestAuthService(t)

	ok, err := svc.Register(context.Background(), "taras", "hunter2")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if !ok {
		t.Fatal("Register() = false, want true")
	}

	user, err := repo.GetByUsername(context.Background(), "taras")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if user.AccessLevel != model.AccessLevelUser {
		t.Errorf("AccessLevel = %d, want %d", user.AccessLevel, model.AccessLevelUser)
	}
	if user.Password != "hunter2" {
		t.Errorf("Password = %q, want stored verbatim", user.Password)
	}
}

// A taken username is a boolean false from Register, not an error.
func TestRegister_TakenUsernameIsFalse(t *testing.T) {
	svc, repo := newTestAuthService(t)
	repo.Add(context.Background(), "taras", "old", model.AccessLevelUser)

	ok, err := svc.Register(context.Background(), "taras", "new")
	if err != nil {
		t.Fatalf("Register() error = %v, want nil", err)
	}
	if ok {
		t.Error("Register() = true for taken username, want false")
	}

	user, _ := repo.GetByUsername(context.Background(), "taras")
	if user.Password != "old" {
		t.Errorf("Password = %q, want first registration's %q kept", user.Password, "old")
	}
}

// AddUser has no pre-check: the duplicate comes back as a conflict error.
func TestAddUser_DuplicateIsConflict(t *testing.T) {
	svc, repo := newTestAuthService(t)
	repo.Add(context.Background(), "taras", "old", model.AccessLevelUser)

	_, err := svc.AddUser(context.Background(), "taras", "new", model.AccessLevelUser)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestAddUser_InvalidAccessLevel(t *testing.T) {
	svc, _ := newTestAuthService(t)

	for _, level := range []int{0, 3, -1} {
		if _, err := svc.AddUser(context.Background(), "x", "y", level); !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("AddUser(level=%d) error = %v, want ErrValidation", level, err)
		}
	}
}

func TestIsAdmin(t *testing.T) {
	svc, repo := newTestAuthService(t)
	adminID, _ := repo.Add(context.Background(), "root", "root", model.AccessLevelAdmin)
	userID, _ := repo.Add(context.Background(), "olena", "pw", model.AccessLevelUser)

	admin, err := svc.IsAdmin(context.Background(), adminID)
	if err != nil || !admin {
		t.Errorf("IsAdmin(admin) = %v, %v; want true, nil", admin, err)
	}
	admin, err = svc.IsAdmin(context.Background(), userID)
	if err != nil || admin {
		t.Errorf("IsAdmin(user) = %v, %v; want false, nil", admin, err)
	}
}

// An unknown id must error, never report a quiet false.
func TestIsAdmin_UnknownUser(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.IsAdmin(context.Background(), 999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
