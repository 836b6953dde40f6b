package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/snippet-manager/internal/model"
	"github.com/sakif/snippet-manager/internal/repository"
)

// LanguageLister fetches the supported-language listing from the execution
// provider. Satisfied by catalog.Client; tests substitute a stub.
type LanguageLister interface {
	Languages(ctx context.Context) ([]model.Language, error)
}

// CatalogService keeps the local language catalog in sync with the remote
// listing and serves lookups from the local copy.
type CatalogService struct {
	repo   repository.LanguageRepository
	lister LanguageLister
	logger *slog.Logger
}

func NewCatalogService(repo repository.LanguageRepository, lister LanguageLister, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		lister: lister,
		logger: logger,
	}
}

// Sync fetches the remote listing and replaces the stored catalog wholesale
// in one transaction. If the fetch or the replace fails, the previous
// catalog stays intact; there is no partial state.
func (s *CatalogService) Sync(ctx context.Context) (int, error) {
	languages, err := s.lister.Languages(ctx)
	if err != nil {
		return 0, fmt.Errorf("syncing language catalog: %w", err)
	}

	if err := s.repo.ReplaceAll(ctx, languages); err != nil {
		return 0, fmt.Errorf("replacing language catalog: %w", err)
	}

	s.logger.Info("language catalog synced", slog.Int("count", len(languages)))
	return len(languages), nil
}

// Languages returns the stored catalog.
func (s *CatalogService) Languages(ctx context.Context) ([]model.Language, error) {
	return s.repo.List(ctx)
}

// Language returns one catalog entry by its provider-assigned id.
func (s *CatalogService) Language(ctx context.Context, id int64) (*model.Language, error) {
	return s.repo.GetByID(ctx, id)
}
