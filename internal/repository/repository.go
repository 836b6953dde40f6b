// Package repository declares the storage interfaces the service layer
// programs against. The sqlite subpackage is the only implementation;
// tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/sakif/snippet-manager/internal/model"
)

type UserRepository interface {
	// Add inserts unconditionally; a duplicate username surfaces as a
	// storage-level conflict. Callers wanting a pre-checked boolean path
	// use the service's Register instead.
	Add(ctx context.Context, username, password string, accessLevel int) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// IsAdmin errors (not-found) for an unknown id rather than reporting false.
	IsAdmin(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]model.User, error)
}

type SnippetRepository interface {
	Add(ctx context.Context, snippet *model.Snippet) error
	GetByID(ctx context.Context, id int64) (*model.Snippet, error)
	// VisibleTo returns public snippets for requesterID <= 0, and
	// owned-or-public for a positive requester.
	VisibleTo(ctx context.Context, requesterID int64) ([]model.Snippet, error)
	// Overwrite writes every column from edit, nil pointers included.
	Overwrite(ctx context.Context, id int64, edit model.SnippetEdit) error
	// UpdateMeta touches only name, language and code.
	UpdateMeta(ctx context.Context, id int64, name, language, code string) error
	// Delete is unconditional; deleting a missing id is a silent no-op.
	Delete(ctx context.Context, id int64) error
}

type LanguageRepository interface {
	// ReplaceAll swaps the whole catalog in one transaction.
	ReplaceAll(ctx context.Context, languages []model.Language) error
	GetByID(ctx context.Context, id int64) (*model.Language, error)
	List(ctx context.Context) ([]model.Language, error)
}

type StatsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountSnippets(ctx context.Context) (int64, error)
	CountLanguages(ctx context.Context) (int64, error)
	SnippetCountByLanguage(ctx context.Context) ([]model.LanguageCount, error)
	SnippetCountByUser(ctx context.Context) ([]model.UserCount, error)
}

// QueryRunner executes an operator-supplied query verbatim. It is a
// deliberate administrative escape hatch: the service layer gates it
// behind the admin check and audit-logs every call.
type QueryRunner interface {
	RunQuery(ctx context.Context, query string, args ...any) (*model.QueryResult, error)
}
