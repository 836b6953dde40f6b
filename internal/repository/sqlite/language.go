package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/snippet-manager/internal/apperror"
	"github.com/sakif/snippet-manager/internal/model"
	"github.com/sakif/snippet-manager/internal/repository"
)

// LanguageRepo implements repository.LanguageRepository over the shared
// connection.
type LanguageRepo struct {
	db *DB
}

var _ repository.LanguageRepository = (*LanguageRepo)(nil)

// Languages returns the language-catalog repository view of the database.
func (db *DB) Languages() *LanguageRepo {
	return &LanguageRepo{db: db}
}

// ReplaceAll swaps the entire supported-language catalog for the given set.
//
// Delete and insert run inside one transaction, so a failure mid-replace
// rolls back to the previous catalog. There is no window where the catalog
// is empty because a sync died halfway.
func (r *LanguageRepo) ReplaceAll(ctx context.Context, languages []model.Language) error {
	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM supported_languages`); err != nil {
			return fmt.Errorf("clearing catalog: %w", err)
		}
		for _, lang := range languages {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO supported_languages (id, name) VALUES (?, ?)`,
				lang.ID, lang.Name,
			)
			if err != nil {
				return fmt.Errorf("inserting language %d: %w", lang.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sqlite: replacing language catalog: %w", err)
	}
	return nil
}

// GetByID returns one catalog entry. Returns apperror.ErrNotFound if absent.
func (r *LanguageRepo) GetByID(ctx context.Context, id int64) (*model.Language, error) {
	var lang model.Language
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, name FROM supported_languages WHERE id = ?`, id,
	).Scan(&lang.ID, &lang.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("language", id)
		}
		return nil, fmt.Errorf("sqlite: getting language %d: %w", id, err)
	}
	return &lang, nil
}

// List returns the whole catalog ordered by id.
func (r *LanguageRepo) List(ctx context.Context) ([]model.Language, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, name FROM supported_languages ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing languages: %w", err)
	}
	defer rows.Close()

	var languages []model.Language
	for rows.Next() {
		var lang model.Language
		if err := rows.Scan(&lang.ID, &lang.Name); err != nil {
			return nil, fmt.Errorf("sqlite: scanning language row: %w", err)
		}
		languages = append(languages, lang)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating languages: %w", err)
	}

	return languages, nil
}
