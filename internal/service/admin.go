package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/rs/xid"

	"github.com/sakif/snippet-manager/internal/apperror"
	"github.com/sakif/snippet-manager/internal/model"
	"github.com/sakif/snippet-manager/internal/repository"
	"github.com/sakif/snippet-manager/internal/seeder"
)

// CredentialFetcher produces throwaway credentials for development seeding.
// Satisfied by seeder.Client; tests substitute a stub.
type CredentialFetcher interface {
	Fetch(ctx context.Context) ([]seeder.Credential, error)
}

// AdminService covers the operator-facing surface: aggregate reports, the
// raw-query escape hatch and database seeding.
type AdminService struct {
	stats  repository.StatsRepository
	users  repository.UserRepository
	query  repository.QueryRunner
	creds  CredentialFetcher
	logger *slog.Logger
}

func NewAdminService(
	stats repository.StatsRepository,
	users repository.UserRepository,
	query repository.QueryRunner,
	creds CredentialFetcher,
	logger *slog.Logger,
) *AdminService {
	return &AdminService{
		stats:  stats,
		users:  users,
		query:  query,
		creds:  creds,
		logger: logger,
	}
}

// Overview assembles the point-in-time aggregate report.
func (s *AdminService) Overview(ctx context.Context) (*model.Overview, error) {
	totalUsers, err := s.stats.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	totalSnippets, err := s.stats.CountSnippets(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting snippets: %w", err)
	}
	totalLanguages, err := s.stats.CountLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting languages: %w", err)
	}
	byLanguage, err := s.stats.SnippetCountByLanguage(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregating snippets by language: %w", err)
	}
	byUser, err := s.stats.SnippetCountByUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregating snippets by user: %w", err)
	}

	return &model.Overview{
		TotalUsers:         totalUsers,
		TotalSnippets:      totalSnippets,
		TotalLanguages:     totalLanguages,
		SnippetsByLanguage: byLanguage,
		SnippetsByUser:     byUser,
	}, nil
}

// RunQuery executes an operator-supplied SQL statement verbatim.
//
// This is a deliberate escape hatch: the query string reaches the database
// untouched. Access is gated on the admin level and every call is audit
// logged with a unique id before execution, so the log records attempts
// that fail as well as ones that succeed.
func (s *AdminService) RunQuery(ctx context.Context, sess model.Session, query string, args ...any) (*model.QueryResult, error) {
	if !sess.Authenticated() {
		return nil, apperror.Unauthorized("log in to run queries")
	}

	admin, err := s.users.IsAdmin(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, apperror.Forbidden("raw queries require admin access")
	}

	auditID := xid.New().String()
	s.logger.Warn("raw query executed",
		slog.String("auditID", auditID),
		slog.Int64("userID", sess.UserID),
		slog.String("query", query),
		slog.Int("args", len(args)),
	)

	result, err := s.query.RunQuery(ctx, query, args...)
	if err != nil {
		s.logger.Error("raw query failed",
			slog.String("auditID", auditID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("running query: %w", err)
	}

	return result, nil
}

// SeedRandomUsers fetches generated credentials and inserts them as regular
// or admin accounts at random. A username that already exists is skipped,
// not an error; the return value is the number actually inserted.
func (s *AdminService) SeedRandomUsers(ctx context.Context) (int, error) {
	creds, err := s.creds.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching seed users: %w", err)
	}

	inserted := 0
	for _, c := range creds {
		level := model.AccessLevelUser + rand.Intn(model.AccessLevelAdmin)
		if _, err := s.users.Add(ctx, c.Username, c.Password, level); err != nil {
			if errors.Is(err, apperror.ErrConflict) {
				continue
			}
			return inserted, fmt.Errorf("seeding user %q: %w", c.Username, err)
		}
		inserted++
	}

	s.logger.Info("database seeded", slog.Int("users", inserted))
	return inserted, nil
}
