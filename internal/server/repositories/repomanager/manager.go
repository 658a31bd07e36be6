package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/artkeeper/internal/dbx"
	"github.com/dmitrijs2005/artkeeper/internal/server/repositories/artifacts"
	"github.com/dmitrijs2005/artkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX
// (*sql.DB for plain queries, *sql.Tx inside a transaction) and exposes a
// schema migration hook.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Artifacts(db dbx.DBTX) artifacts.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
