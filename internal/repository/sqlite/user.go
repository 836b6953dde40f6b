package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/snippet-manager/internal/apperror"
	"github.com/sakif/snippet-manager/internal/model"
	"github.com/sakif/snippet-manager/internal/repository"
)

// UserRepo implements repository.UserRepository over the shared connection.
type UserRepo struct {
	db *DB
}

var _ repository.UserRepository = (*UserRepo)(nil)

// Users returns the user repository view of the database.
func (db *DB) Users() *UserRepo {
	return &UserRepo{db: db}
}

// Add inserts a user unconditionally and returns the assigned id.
//
// There is deliberately no pre-check here: a duplicate username trips the
// UNIQUE constraint and comes back as a conflict. The self-service
// registration path pre-checks and reports a boolean instead; the two
// paths differ on purpose, see the service layer.
func (r *UserRepo) Add(ctx context.Context, username, password string, accessLevel int) (int64, error) {
	res, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO users (username, password, access_level) VALUES (?, ?, ?)`,
		username, password, accessLevel,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperror.Conflict("user", fmt.Sprintf("username %q already exists", username))
		}
		return 0, fmt.Errorf("sqlite: adding user %q: %w", username, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	return id, nil
}

// GetByID retrieves a user by id. Returns apperror.ErrNotFound if absent.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getUser(ctx, `SELECT id, username, password, access_level FROM users WHERE id = ?`, id)
}

// GetByUsername retrieves a user by username. Returns apperror.ErrNotFound if absent.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getUser(ctx, `SELECT id, username, password, access_level FROM users WHERE username = ?`, username)
}

func (r *UserRepo) getUser(ctx context.Context, query string, arg any) (*model.User, error) {
	var (
		u        model.User
		password sql.NullString
	)
	err := r.db.conn.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&password,
		&u.AccessLevel,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", arg)
		}
		return nil, fmt.Errorf("sqlite: getting user %v: %w", arg, err)
	}
	u.Password = password.String

	return &u, nil
}

// IsAdmin reports whether the user's access level is administrator.
//
// An unknown id is an error, not false: callers gate privileged operations
// on this answer, and a lookup miss there means the caller's identity is
// broken, which must not be mistaken for "regular user".
func (r *UserRepo) IsAdmin(ctx context.Context, id int64) (bool, error) {
	var level int
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT access_level FROM users WHERE id = ?`, id,
	).Scan(&level)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, apperror.NotFound("user", id)
		}
		return false, fmt.Errorf("sqlite: checking admin for user %d: %w", id, err)
	}

	return level == model.AccessLevelAdmin, nil
}

// List returns every user, ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, username, password, access_level FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var (
			u        model.User
			password sql.NullString
		)
		if err := rows.Scan(&u.ID, &u.Username, &password, &u.AccessLevel); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		u.Password = password.String
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}

	return users, nil
}
