// Package service contains the business logic layer: validation, access
// rules and orchestration, with storage behind the repository interfaces.
//
// Services accept primitives and model values, never HTTP types, and return
// domain errors from the apperror package for handlers to translate.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/snippet-manager/internal/apperror"
	"github.com/sakif/snippet-manager/internal/auth"
	"github.com/sakif/snippet-manager/internal/model"
	"github.com/sakif/snippet-manager/internal/repository"
)

// AuthService handles registration, login and identity lookups.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
	logger *slog.Logger
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// AuthResult bundles the authenticated user, their session and the signed
// token so the handler can set the cookie and respond in one step.
type AuthResult struct {
	User    *model.User
	Session model.Session
	Token   string
}

// Login verifies the credentials and issues a session.
//
// Passwords are stored and compared as plain text; the comparison is an
// exact string match. Unknown username and wrong password both come back
// as the same unauthorized error so the response does not reveal which
// half of the credential failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperror.Unauthorized("invalid username or password")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Unauthorized("invalid username or password")
	}
	if user.Password != password {
		return nil, apperror.Unauthorized("invalid username or password")
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %d: %w", user.ID, err)
	}

	s.logger.Info("user logged in",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)

	return &AuthResult{
		User:    user,
		Session: model.Session{UserID: user.ID},
		Token:   token,
	}, nil
}

// Register creates a regular account if the username is free.
//
// The taken-username outcome is a boolean false, not an error: the caller
// pre-checks availability and reports "already exists" as a normal answer.
// This is distinct from AddUser, where a duplicate surfaces as a storage
// conflict. Registration does not log the new user in.
func (s *AuthService) Register(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, apperror.ValidationFailed("username", "username is required")
	}
	if password == "" {
		return false, apperror.ValidationFailed("password", "password is required")
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return false, nil
	}

	id, err := s.users.Add(ctx, username, password, model.AccessLevelUser)
	if err != nil {
		return false, fmt.Errorf("service/auth: registering user %q: %w", username, err)
	}

	s.logger.Info("user registered",
		slog.Int64("userID", id),
		slog.String("username", username),
	)

	return true, nil
}

// AddUser inserts an account with an explicit access level. Unlike Register
// there is no availability pre-check: a duplicate username propagates as the
// storage layer's conflict error.
func (s *AuthService) AddUser(ctx context.Context, username, password string, accessLevel int) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, apperror.ValidationFailed("username", "username is required")
	}
	if accessLevel < model.AccessLevelUser || accessLevel > model.AccessLevelAdmin {
		return 0, apperror.ValidationFailed("accessLevel",
			fmt.Sprintf("access level must be between %d and %d", model.AccessLevelUser, model.AccessLevelAdmin))
	}

	id, err := s.users.Add(ctx, username, password, accessLevel)
	if err != nil {
		return 0, err
	}

	s.logger.Info("user added",
		slog.Int64("userID", id),
		slog.String("username", username),
		slog.Int("accessLevel", accessLevel),
	)

	return id, nil
}

// IsAdmin reports whether the user holds the admin access level. An unknown
// id is an error, never a silent false: callers must be able to tell
// "not an admin" apart from "no such user".
func (s *AuthService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return s.users.IsAdmin(ctx, userID)
}

// GetUser returns the user for the given id.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetUserByUsername returns the user with the given username.
func (s *AuthService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// ListUsers returns every account.
func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}
