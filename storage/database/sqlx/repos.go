// Package sqlxrepos holds the postgres repository implementations, built on
// sqlx scanning and squirrel query building.
package sqlxrepos

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/nzaba/tempo/core"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func newID() string {
	return uuid.New().String()
}

// getExec picks the service-provided executor (a transaction) over the
// repository's default connection.
func getExec(dflt core.DBExecutor, svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return dflt
}
