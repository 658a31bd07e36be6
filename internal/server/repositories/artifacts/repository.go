package artifacts

import (
	"context"
	"time"

	"github.com/dmitrijs2005/artkeeper/internal/server/models"
)

type Repository interface {
	Insert(ctx context.Context, artifact *models.Artifact) error
	SelectByOwner(ctx context.Context, userID string) ([]*models.Artifact, error)
	Update(ctx context.Context, id, userID, title, description string, updatedAt time.Time) (*models.Artifact, error)
	MarkDeleted(ctx context.Context, id, userID string, updatedAt time.Time) error
}
