package sqlite

import (
	"context"
	"fmt"

	"github.com/sakif/snippet-manager/internal/model"
	"github.com/sakif/snippet-manager/internal/repository"
)

// StatsRepo implements repository.StatsRepository. All queries are
// read-only, point-in-time and unpaginated; they back the admin overview.
type StatsRepo struct {
	db *DB
}

var _ repository.StatsRepository = (*StatsRepo)(nil)

// Stats returns the aggregate-reporting view of the database.
func (db *DB) Stats() *StatsRepo {
	return &StatsRepo{db: db}
}

func (r *StatsRepo) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users`)
}

func (r *StatsRepo) CountSnippets(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM snippets`)
}

func (r *StatsRepo) CountLanguages(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM supported_languages`)
}

func (r *StatsRepo) count(ctx context.Context, query string) (int64, error) {
	var n int64
	if err := r.db.conn.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: counting rows: %w", err)
	}
	return n, nil
}

// SnippetCountByLanguage returns the number of snippets per language label.
// The label is the snippet's free-text language column, not the catalog id.
func (r *StatsRepo) SnippetCountByLanguage(ctx context.Context) ([]model.LanguageCount, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT COALESCE(language, ''), COUNT(*) FROM snippets GROUP BY language`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: counting snippets by language: %w", err)
	}
	defer rows.Close()

	var counts []model.LanguageCount
	for rows.Next() {
		var c model.LanguageCount
		if err := rows.Scan(&c.Language, &c.Count); err != nil {
			return nil, fmt.Errorf("sqlite: scanning language count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating language counts: %w", err)
	}

	return counts, nil
}

// SnippetCountByUser returns the number of snippets per owning user id.
func (r *StatsRepo) SnippetCountByUser(ctx context.Context) ([]model.UserCount, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT user_id, COUNT(*) FROM snippets GROUP BY user_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: counting snippets by user: %w", err)
	}
	defer rows.Close()

	var counts []model.UserCount
	for rows.Next() {
		var c model.UserCount
		if err := rows.Scan(&c.UserID, &c.Count); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating user counts: %w", err)
	}

	return counts, nil
}
