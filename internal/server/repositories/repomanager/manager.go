package repomanager

import (
	"context"
	"database/sql"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/dbx"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/activities"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/favorites"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/listings"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/refreshtokens"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Listings(db dbx.DBTX) listings.Repository
	Favorites(db dbx.DBTX) favorites.Repository
	Activities(db dbx.DBTX) activities.Repository
}
