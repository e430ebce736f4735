package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chetan-code/taskmanager/internal/apperr"
	"github.com/chetan-code/taskmanager/internal/models"
)

// Postgres class 23 unique_violation, raised by the lower(email) index.
const uniqueViolationCode = "23505"

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) (*UserRepo, error) {
	repo := &UserRepo{db: db}

	err := repo.CreateTable()
	if err != nil {
		return nil, fmt.Errorf("could not initialize users table: %w", err)
	}

	return repo, nil
}

func (r *UserRepo) CreateTable() error {
	createTableQuery := `CREATE TABLE IF NOT EXISTS users(
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		password_hash BYTEA NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`
	_, err := r.db.Exec(createTableQuery)
	if err != nil {
		return err
	}

	//uniqueness is case-insensitive, so the index is on lower(email)
	createIndexQuery := "CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (lower(email))"
	_, err = r.db.Exec(createIndexQuery)
	return err
}

func (r *UserRepo) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()

	query := "INSERT INTO users (id, name, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)"
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperr.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByEmail matches the stored email case-insensitively.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := "SELECT id, name, email, password_hash, created_at FROM users WHERE lower(email) = lower($1)"

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select user by email: %w", err)
	}

	return user, nil
}
