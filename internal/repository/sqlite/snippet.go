package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/snippet-manager/internal/apperror"
	"github.com/sakif/snippet-manager/internal/model"
	"github.com/sakif/snippet-manager/internal/repository"
)

// SnippetRepo implements repository.SnippetRepository over the shared
// connection.
type SnippetRepo struct {
	db *DB
}

var _ repository.SnippetRepository = (*SnippetRepo)(nil)

// Snippets returns the snippet repository view of the database.
func (db *DB) Snippets() *SnippetRepo {
	return &SnippetRepo{db: db}
}

const snippetColumns = `id, name, language, code, example_code, stdin, expected_output, is_private, user_id`

// Add inserts a new snippet and fills in the assigned id.
// The caller (service layer) has already resolved the owner; user_id is
// NOT NULL so an unowned insert fails at the constraint.
func (r *SnippetRepo) Add(ctx context.Context, snippet *model.Snippet) error {
	res, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO snippets (name, language, code, example_code, stdin, expected_output, is_private, user_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		snippet.Name,
		snippet.Language,
		snippet.Code,
		snippet.ExampleCode,
		snippet.Stdin,
		snippet.ExpectedOutput,
		snippet.Private,
		snippet.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating snippet: %w", err)
	}

	snippet.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new snippet id: %w", err)
	}
	return nil
}

// GetByID retrieves a single snippet by id.
// Returns apperror.ErrNotFound if no snippet exists with that id.
func (r *SnippetRepo) GetByID(ctx context.Context, id int64) (*model.Snippet, error) {
	row := r.db.conn.QueryRowContext(ctx,
		`SELECT `+snippetColumns+` FROM snippets WHERE id = ?`, id,
	)

	snippet, err := scanSnippet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("snippet", id)
		}
		return nil, fmt.Errorf("sqlite: getting snippet %d: %w", id, err)
	}
	return snippet, nil
}

// VisibleTo returns the snippets the requester may see.
//
// requesterID <= 0 is an anonymous caller: public snippets only.
// A positive requester sees their own snippets plus everyone's public ones.
func (r *SnippetRepo) VisibleTo(ctx context.Context, requesterID int64) ([]model.Snippet, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if requesterID > 0 {
		rows, err = r.db.conn.QueryContext(ctx,
			`SELECT `+snippetColumns+` FROM snippets WHERE user_id = ? OR is_private = 0 ORDER BY id`,
			requesterID,
		)
	} else {
		rows, err = r.db.conn.QueryContext(ctx,
			`SELECT `+snippetColumns+` FROM snippets WHERE is_private = 0 ORDER BY id`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing snippets: %w", err)
	}
	defer rows.Close()

	var snippets []model.Snippet
	for rows.Next() {
		s, err := scanSnippet(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning snippet row: %w", err)
		}
		snippets = append(snippets, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating snippets: %w", err)
	}

	return snippets, nil
}

// Overwrite performs the full-row edit: every column is written from the
// edit struct, and a nil pointer writes NULL over the previous value.
// Callers that meant to keep a field must have resent it. Do not turn this
// into a partial update; the narrow path is UpdateMeta.
func (r *SnippetRepo) Overwrite(ctx context.Context, id int64, edit model.SnippetEdit) error {
	_, err := r.db.conn.ExecContext(ctx,
		`UPDATE snippets
		 SET name = ?, language = ?, code = ?, example_code = ?, stdin = ?, expected_output = ?, is_private = ?
		 WHERE id = ?`,
		edit.Name,
		edit.Language,
		edit.Code,
		edit.ExampleCode,
		edit.Stdin,
		edit.ExpectedOutput,
		edit.Private,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: overwriting snippet %d: %w", id, err)
	}
	return nil
}

// UpdateMeta updates only name, language and code, leaving every other
// column untouched. It is the narrow counterpart to Overwrite.
func (r *SnippetRepo) UpdateMeta(ctx context.Context, id int64, name, language, code string) error {
	_, err := r.db.conn.ExecContext(ctx,
		`UPDATE snippets SET name = ?, language = ?, code = ? WHERE id = ?`,
		name, language, code, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating snippet %d: %w", id, err)
	}
	return nil
}

// Delete removes a snippet by id. Deleting an id that does not exist is a
// silent no-op; no existence or ownership check happens here.
func (r *SnippetRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.conn.ExecContext(ctx, `DELETE FROM snippets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting snippet %d: %w", id, err)
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanSnippet reads one snippets row. Nullable text columns scan through
// sql.NullString: name/language/code collapse NULL to "", while the
// optional fields keep the NULL/empty distinction as nil pointers.
func scanSnippet(s scanner) (*model.Snippet, error) {
	var (
		snippet                  model.Snippet
		name, language, code     sql.NullString
		example, stdin, expected sql.NullString
		private                  sql.NullBool
	)

	err := s.Scan(
		&snippet.ID,
		&name,
		&language,
		&code,
		&example,
		&stdin,
		&expected,
		&private,
		&snippet.UserID,
	)
	if err != nil {
		return nil, err
	}

	snippet.Name = name.String
	snippet.Language = language.String
	snippet.Code = code.String
	snippet.ExampleCode = nullableString(example)
	snippet.Stdin = nullableString(stdin)
	snippet.ExpectedOutput = nullableString(expected)
	snippet.Private = private.Bool

	return &snippet, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
