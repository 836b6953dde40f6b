package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/snippet-manager/internal/apperror"
	"github.com/sakif/snippet-manager/internal/model"
	"github.com/sakif/snippet-manager/internal/repository"
)

const (
	MaxSnippetNameLength = 100
	MaxCodeLength        = 100000 // ~100KB of code
)

// SnippetService handles business logic for code snippets.
type SnippetService struct {
	repo   repository.SnippetRepository
	logger *slog.Logger
}

func NewSnippetService(repo repository.SnippetRepository, logger *slog.Logger) *SnippetService {
	return &SnippetService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and saves a new snippet owned by the session's user.
// An anonymous session cannot create snippets.
func (s *SnippetService) Create(ctx context.Context, sess model.Session, snippet *model.Snippet) (*model.Snippet, error) {
	if !sess.Authenticated() {
		return nil, apperror.Unauthorized("log in to create snippets")
	}

	snippet.Name = strings.TrimSpace(snippet.Name)
	if snippet.Name == "" {
		return nil, apperror.ValidationFailed("name", "snippet name is required")
	}
	if len(snippet.Name) > MaxSnippetNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("snippet name must be %d characters or less", MaxSnippetNameLength))
	}
	if len(snippet.Code) > MaxCodeLength {
		return nil, apperror.ValidationFailed("code",
			fmt.Sprintf("code must be %d characters or less", MaxCodeLength))
	}

	snippet.UserID = sess.UserID

	if err := s.repo.Add(ctx, snippet); err != nil {
		s.logger.Error("failed to create snippet",
			slog.String("name", snippet.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating snippet: %w", err)
	}

	s.logger.Info("snippet created",
		slog.Int64("id", snippet.ID),
		slog.Int64("userID", snippet.UserID),
		slog.String("name", snippet.Name),
	)

	return snippet, nil
}

// Get retrieves a snippet by id.
func (s *SnippetService) Get(ctx context.Context, id int64) (*model.Snippet, error) {
	if id <= 0 {
		return nil, apperror.ValidationFailed("id", "snippet id must be positive")
	}
	return s.repo.GetByID(ctx, id)
}

// List returns the snippets visible to the session: public ones for an
// anonymous caller, owned plus public for an authenticated one.
func (s *SnippetService) List(ctx context.Context, sess model.Session) ([]model.Snippet, error) {
	snippets, err := s.repo.VisibleTo(ctx, sess.UserID)
	if err != nil {
		s.logger.Error("failed to list snippets", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing snippets: %w", err)
	}
	return snippets, nil
}

// Edit replaces the whole row with the supplied field set. Every column is
// written: a field the caller leaves nil is stored as NULL, whatever it held
// before. Callers that want to preserve a value must resend it. An anonymous
// session cannot edit.
func (s *SnippetService) Edit(ctx context.Context, sess model.Session, id int64, edit model.SnippetEdit) error {
	if !sess.Authenticated() {
		return apperror.Unauthorized("log in to edit snippets")
	}
	if id <= 0 {
		return apperror.ValidationFailed("id", "snippet id must be positive")
	}
	if edit.Name != nil && len(*edit.Name) > MaxSnippetNameLength {
		return apperror.ValidationFailed("name",
			fmt.Sprintf("snippet name must be %d characters or less", MaxSnippetNameLength))
	}
	if edit.Code != nil && len(*edit.Code) > MaxCodeLength {
		return apperror.ValidationFailed("code",
			fmt.Sprintf("code must be %d characters or less", MaxCodeLength))
	}

	if err := s.repo.Overwrite(ctx, id, edit); err != nil {
		return err
	}

	s.logger.Info("snippet edited",
		slog.Int64("id", id),
		slog.Int64("userID", sess.UserID),
	)
	return nil
}

// UpdateMeta rewrites only the name, language and code columns, leaving the
// optional fields and visibility untouched. This narrow update is a separate
// operation from Edit and must stay that way.
func (s *SnippetService) UpdateMeta(ctx context.Context, id int64, name, language, code string) error {
	if id <= 0 {
		return apperror.ValidationFailed("id", "snippet id must be positive")
	}
	if len(name) > MaxSnippetNameLength {
		return apperror.ValidationFailed("name",
			fmt.Sprintf("snippet name must be %d characters or less", MaxSnippetNameLength))
	}
	if len(code) > MaxCodeLength {
		return apperror.ValidationFailed("code",
			fmt.Sprintf("code must be %d characters or less", MaxCodeLength))
	}

	if err := s.repo.UpdateMeta(ctx, id, name, language, code); err != nil {
		return err
	}

	s.logger.Info("snippet metadata updated", slog.Int64("id", id))
	return nil
}

// Delete removes a snippet. Deleting an id that does not exist is a silent
// success, and there is no ownership check on this path.
func (s *SnippetService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.ValidationFailed("id", "snippet id must be positive")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("snippet deleted", slog.Int64("id", id))
	return nil
}
