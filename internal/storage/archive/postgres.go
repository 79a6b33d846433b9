package archive

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
)

// OpenPostgres opens a postgres-backed archive using a lib/pq DSN, for
// deployments that want history in a shared database.
func OpenPostgres(ctx context.Context, dsn string) (Archive, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	a := &sqlArchive{db: db, postgres: true}
	if err := a.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}
