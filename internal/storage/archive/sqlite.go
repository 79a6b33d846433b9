package archive

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens (or creates) a sqlite-backed archive at the given path.
// This is the default backend; it needs no external service.
func OpenSQLite(ctx context.Context, path string) (Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// modernc sqlite serializes writes itself; one connection avoids
	// SQLITE_BUSY under concurrent writers.
	db.SetMaxOpenConns(1)

	a := &sqlArchive{db: db}
	if err := a.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}
