// Package postgres implements clipcast.Repository on PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE assets (
//	    id            UUID PRIMARY KEY,
//	    owner_email   TEXT NOT NULL,
//	    title         TEXT NOT NULL,
//	    description   TEXT NOT NULL DEFAULT '',
//	    author        TEXT NOT NULL DEFAULT '',
//	    quality       TEXT NOT NULL DEFAULT 'Unknown',
//	    primary_key   TEXT NOT NULL,
//	    thumbnail_key TEXT NOT NULL,
//	    created_at    TIMESTAMPTZ NOT NULL,
//	    version       BIGINT NOT NULL
//	);
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clipcast/clipcast/pkg/clipcast"
)

// DBTX is an interface that allows us to use either a database connection
// or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements clipcast.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with a connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// handlePostgresError maps pg error codes onto readable errors
func handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("asset already exists")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}

func (r *Repository) CreateAsset(ctx context.Context, asset *clipcast.Asset) error {
	query := `
		INSERT INTO assets (
			id, owner_email, title, description, author, quality,
			primary_key, thumbnail_key, created_at, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		asset.ID, asset.OwnerEmail, asset.Title, asset.Description,
		asset.Author, asset.Quality, asset.PrimaryKey, asset.ThumbnailKey,
		asset.CreatedAt, asset.Version)

	if err != nil {
		return handlePostgresError("create asset", err)
	}

	return nil
}

func (r *Repository) GetAsset(ctx context.Context, id uuid.UUID) (*clipcast.Asset, error) {
	query := `
		SELECT id, owner_email, title, description, author, quality,
		       primary_key, thumbnail_key, created_at, version
		FROM assets WHERE id = $1`

	var asset clipcast.Asset
	err := r.db.QueryRow(ctx, query, id).Scan(
		&asset.ID, &asset.OwnerEmail, &asset.Title, &asset.Description,
		&asset.Author, &asset.Quality, &asset.PrimaryKey, &asset.ThumbnailKey,
		&asset.CreatedAt, &asset.Version)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, clipcast.ErrAssetNotFound
		}
		return nil, handlePostgresError("get asset", err)
	}

	return &asset, nil
}

// UpdateAsset performs the conditioned write: the row is touched only if
// its stored version still equals expectedVersion. The primary blob key is
// immutable and deliberately not part of the statement.
func (r *Repository) UpdateAsset(ctx context.Context, asset *clipcast.Asset, expectedVersion int64) error {
	query := `
		UPDATE assets SET
			title = $2, description = $3, author = $4, quality = $5,
			thumbnail_key = $6, version = $7
		WHERE id = $1 AND version = $8`

	tag, err := r.db.Exec(ctx, query,
		asset.ID, asset.Title, asset.Description, asset.Author,
		asset.Quality, asset.ThumbnailKey, asset.Version, expectedVersion)

	if err != nil {
		return handlePostgresError("update asset", err)
	}

	if tag.RowsAffected() == 0 {
		// Zero rows means either the record is gone or the version is
		// stale; a follow-up read disambiguates.
		if _, getErr := r.GetAsset(ctx, asset.ID); getErr != nil {
			return getErr
		}
		return clipcast.ErrVersionConflict
	}

	return nil
}

func (r *Repository) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return handlePostgresError("delete asset", err)
	}
	// Zero rows affected is fine: deletion is idempotent
	return nil
}

func (r *Repository) ListAssets(ctx context.Context) ([]*clipcast.Asset, error) {
	query := `
		SELECT id, owner_email, title, description, author, quality,
		       primary_key, thumbnail_key, created_at, version
		FROM assets ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, handlePostgresError("list assets", err)
	}
	defer rows.Close()

	var result []*clipcast.Asset
	for rows.Next() {
		var asset clipcast.Asset
		if err := rows.Scan(
			&asset.ID, &asset.OwnerEmail, &asset.Title, &asset.Description,
			&asset.Author, &asset.Quality, &asset.PrimaryKey, &asset.ThumbnailKey,
			&asset.CreatedAt, &asset.Version); err != nil {
			return nil, handlePostgresError("list assets", err)
		}
		result = append(result, &asset)
	}

	if err := rows.Err(); err != nil {
		return nil, handlePostgresError("list assets", err)
	}

	return result, nil
}
