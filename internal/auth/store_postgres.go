package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgDB is the subset of pgx needed by the user store
type pgDB interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// PostgresStore implements UserStore on PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE users (
//	    email         TEXT PRIMARY KEY,
//	    username      TEXT NOT NULL,
//	    password_hash TEXT NOT NULL,
//	    created_at    TIMESTAMPTZ NOT NULL
//	);
type PostgresStore struct {
	db pgDB
}

// NewPostgresStore creates a user store backed by a pgx connection pool
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: pool}
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (email, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := s.db.Exec(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return err
	}

	return nil
}

func (s *PostgresStore) GetUser(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT email, username, password_hash, created_at
		FROM users WHERE email = $1`

	var user User
	err := s.db.QueryRow(ctx, query, email).Scan(
		&user.Email, &user.Username, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}
