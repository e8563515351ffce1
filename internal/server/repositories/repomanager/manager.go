package repomanager

import (
	"context"
	"database/sql"

	"github.com/privafile/privafile/internal/dbx"
	"github.com/privafile/privafile/internal/server/repositories/chunks"
	"github.com/privafile/privafile/internal/server/repositories/files"
	"github.com/privafile/privafile/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Files(db dbx.DBTX) files.Repository
	Chunks(db dbx.DBTX) chunks.Repository
}
