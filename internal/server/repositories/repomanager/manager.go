// Package repomanager provides a factory for repositories so services can
// run them against either the root *sql.DB or an open transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkalnins/auctionhub/internal/dbx"
	"github.com/dkalnins/auctionhub/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
