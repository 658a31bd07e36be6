package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/artkeeper/internal/common"
	"github.com/dmitrijs2005/artkeeper/internal/server/models"
	"github.com/dmitrijs2005/artkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ArtifactService implements the ownership-scoped CRUD operations over the
// artifact store. Every operation takes the authenticated user id resolved by
// the transport layer; the owner check is folded into the storage lookup so a
// wrong-owner, deleted, or absent artifact all surface as one NotFound.
type ArtifactService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewArtifactService(db *sql.DB, m repomanager.RepositoryManager) *ArtifactService {
	return &ArtifactService{db: db, repomanager: m}
}

// Create validates title and description, assigns id and timestamps, and
// inserts a live artifact owned by userID. The created artifact is returned.
func (s *ArtifactService) Create(ctx context.Context, userID, title, description string) (*models.Artifact, error) {
	if err := validateArtifactFields(title, description); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	artifact := &models.Artifact{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		IsDeleted:   false,
	}

	repo := s.repomanager.Artifacts(s.db)
	if err := repo.Insert(ctx, artifact); err != nil {
		return nil, fmt.Errorf("error creating artifact: %w", err)
	}

	return artifact, nil
}

// List returns all live artifacts owned by userID.
func (s *ArtifactService) List(ctx context.Context, userID string) ([]*models.Artifact, error) {
	repo := s.repomanager.Artifacts(s.db)

	result, err := repo.SelectByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing artifacts: %w", err)
	}

	return result, nil
}

// Update overwrites title and description of the artifact matching id, owner
// and not-deleted, bumps UpdatedAt, and returns the updated artifact.
// common.ErrorNotFound covers absent, foreign and soft-deleted artifacts alike.
func (s *ArtifactService) Update(ctx context.Context, id, userID, title, description string) (*models.Artifact, error) {
	if err := validateArtifactFields(title, description); err != nil {
		return nil, err
	}

	repo := s.repomanager.Artifacts(s.db)

	artifact, err := repo.Update(ctx, id, userID, title, description, time.Now().UTC())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating artifact: %w", err)
	}

	return artifact, nil
}

// SoftDelete marks the artifact matching id, owner and not-deleted as
// deleted. The row is retained; it simply disappears from every subsequent
// read and mutation. Fails with common.ErrorNotFound under the same
// conditions as Update.
func (s *ArtifactService) SoftDelete(ctx context.Context, id, userID string) error {
	repo := s.repomanager.Artifacts(s.db)

	err := repo.MarkDeleted(ctx, id, userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting artifact: %w", err)
	}

	return nil
}

func validateArtifactFields(title, description string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if description == "" {
		return fmt.Errorf("%w: description is required", common.ErrValidation)
	}
	return nil
}
