package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/sellegate/internal/dbx"
	"github.com/dmitrijs2005/sellegate/internal/server/repositories/assessments"
	"github.com/dmitrijs2005/sellegate/internal/server/repositories/items"
	"github.com/dmitrijs2005/sellegate/internal/server/repositories/payments"
	"github.com/dmitrijs2005/sellegate/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/sellegate/internal/server/repositories/users"
)

// RepositoryManager vends entity repositories bound to a DBTX, so a service
// can rebind the same repository to a transaction inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Items(db dbx.DBTX) items.Repository
	Assessments(db dbx.DBTX) assessments.Repository
	Payments(db dbx.DBTX) payments.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
