package core

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

type (
	// DBExecutor is what repositories run queries against; both *sqlx.DB and
	// *sqlx.Tx satisfy it, so a service can hand a repository its transaction.
	DBExecutor interface {
		sqlx.ExtContext
	}

	// DB opens transactions for services that orchestrate multi-step writes.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (DBTransactor, error)
	}

	DBTransactor interface {
		DBExecutor

		Commit() error
		Rollback() error
	}
)
