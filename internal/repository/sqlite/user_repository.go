package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"book-catalog/internal/domain"
	"book-catalog/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

// Upsert inserts the user or replaces the hash and role of an existing username.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) (int64, error) {
	return upsertUser(ctx, r.db, user)
}

// ReplaceAll makes users the complete set of stored accounts.
func (r *UserRepository) ReplaceAll(ctx context.Context, users []*domain.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace users: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	keep := make([]string, 0, len(users))
	args := make([]any, 0, len(users))
	for _, user := range users {
		if _, err := upsertUser(ctx, tx, user); err != nil {
			return err
		}
		keep = append(keep, "?")
		args = append(args, user.Username)
	}

	query := `DELETE FROM users`
	if len(keep) > 0 {
		query += ` WHERE username NOT IN (` + strings.Join(keep, ", ") + `)`
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete stale users: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace users: %w", err)
	}
	return nil
}

type userExecer interface {
	rowQueryer
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertUser(ctx context.Context, db userExecer, user *domain.User) (int64, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.ExecContext(ctx, `
INSERT INTO users (username, password_hash, role, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(username) DO UPDATE SET
	password_hash = excluded.password_hash,
	role = excluded.role,
	updated_at = excluded.updated_at`,
		user.Username,
		user.PasswordHash,
		string(user.Role),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("upsert user: %w", err)
	}

	stored, err := getUser(ctx, db, user.Username)
	if err != nil {
		return 0, err
	}
	user.ID = stored.ID
	user.CreatedAt = stored.CreatedAt
	return user.ID, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return getUser(ctx, r.db, username)
}

func getUser(ctx context.Context, q rowQueryer, username string) (*domain.User, error) {
	row := q.QueryRowContext(ctx, `
SELECT id, username, password_hash, role, created_at, updated_at
FROM users
WHERE username = ?`,
		username,
	)
	return scanUser(row)
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var (
		user domain.User
		role string
	)
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.Role = domain.Role(role)
	return &user, nil
}
