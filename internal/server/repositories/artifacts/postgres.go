// Package artifacts provides the PostgreSQL-backed artifact store. Every read
// and mutation is scoped to the owning user, and soft-deleted rows are
// invisible to all of them.
package artifacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/artkeeper/internal/common"
	"github.com/dmitrijs2005/artkeeper/internal/dbx"
	"github.com/dmitrijs2005/artkeeper/internal/server/models"
)

// whereOwnedLive is the lookup predicate shared by Update and MarkDeleted:
// the row must exist, belong to the caller, and not be soft-deleted. A miss
// on any of the three conditions surfaces as the same common.ErrorNotFound,
// so callers cannot distinguish another user's artifact from a missing one.
// $1 is the artifact id, $2 the owner id.
const whereOwnedLive = `id = $1 AND user_id = $2 AND NOT is_deleted`

// PostgresRepository implements artifact storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores a new artifact row. The caller assigns id and timestamps.
func (r *PostgresRepository) Insert(ctx context.Context, artifact *models.Artifact) error {

	query := `
		INSERT INTO artifacts (id, user_id, title, description, created_at, updated_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		`

	_, err := r.db.ExecContext(ctx, query,
		artifact.ID, artifact.UserID, artifact.Title, artifact.Description,
		artifact.CreatedAt, artifact.UpdatedAt, artifact.IsDeleted)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// SelectByOwner returns all live artifacts owned by userID, oldest first.
// The ordering is implementation-defined but stable per query.
func (r *PostgresRepository) SelectByOwner(ctx context.Context, userID string) ([]*models.Artifact, error) {

	query := `
		SELECT id, user_id, title, description, created_at, updated_at, is_deleted
		FROM artifacts
		WHERE user_id = $1 AND NOT is_deleted
		ORDER BY created_at, id
		`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Artifact{}
	for rows.Next() {
		a := &models.Artifact{}
		err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.CreatedAt, &a.UpdatedAt, &a.IsDeleted)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Update overwrites title and description of the artifact matching the
// owned-and-live predicate and returns the updated row. A predicate miss
// yields common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, id, userID, title, description string, updatedAt time.Time) (*models.Artifact, error) {

	query := `
		UPDATE artifacts
		SET title = $3, description = $4, updated_at = $5
		WHERE ` + whereOwnedLive + `
		RETURNING created_at
		`

	a := &models.Artifact{
		ID:          id,
		UserID:      userID,
		Title:       title,
		Description: description,
		UpdatedAt:   updatedAt,
	}

	err := r.db.QueryRowContext(ctx, query, id, userID, title, description, updatedAt).Scan(&a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

// MarkDeleted soft-deletes the artifact matching the owned-and-live
// predicate. A predicate miss yields common.ErrorNotFound; the row itself is
// never removed.
func (r *PostgresRepository) MarkDeleted(ctx context.Context, id, userID string, updatedAt time.Time) error {

	query := `
		UPDATE artifacts
		SET is_deleted = TRUE, updated_at = $3
		WHERE ` + whereOwnedLive + `
		`

	res, err := r.db.ExecContext(ctx, query, id, userID, updatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
