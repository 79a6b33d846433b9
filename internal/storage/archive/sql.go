package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	tx_id      TEXT PRIMARY KEY,
	tx_type    TEXT NOT NULL,
	account    TEXT NOT NULL,
	result     TEXT NOT NULL,
	close_time BIGINT NOT NULL,
	metadata   TEXT,
	stored_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account, close_time);

CREATE TABLE IF NOT EXISTS events (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	tx_id TEXT NOT NULL,
	name  TEXT NOT NULL,
	attrs TEXT
);
CREATE INDEX IF NOT EXISTS idx_events_name ON events(name, id);
`

// postgres needs a different autoincrement spelling.
const schemaPostgres = `
CREATE TABLE IF NOT EXISTS transactions (
	tx_id      TEXT PRIMARY KEY,
	tx_type    TEXT NOT NULL,
	account    TEXT NOT NULL,
	result     TEXT NOT NULL,
	close_time BIGINT NOT NULL,
	metadata   TEXT,
	stored_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account, close_time);

CREATE TABLE IF NOT EXISTS events (
	id    BIGSERIAL PRIMARY KEY,
	tx_id TEXT NOT NULL,
	name  TEXT NOT NULL,
	attrs TEXT
);
CREATE INDEX IF NOT EXISTS idx_events_name ON events(name, id);
`

// sqlArchive implements Archive over database/sql. The postgres flag only
// switches placeholder style and schema dialect.
type sqlArchive struct {
	db       *sql.DB
	postgres bool
}

// rebind rewrites ? placeholders to $n for postgres.
func (a *sqlArchive) rebind(query string) string {
	if !a.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (a *sqlArchive) init(ctx context.Context) error {
	ddl := schema
	if a.postgres {
		ddl = schemaPostgres
	}
	if _, err := a.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("init archive schema: %w", err)
	}
	return nil
}

func (a *sqlArchive) SaveTransaction(ctx context.Context, rec *Record, events []EventRecord) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	storedAt := rec.StoredAt
	if storedAt.IsZero() {
		storedAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, a.rebind(
		`INSERT INTO transactions (tx_id, tx_type, account, result, close_time, metadata, stored_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		rec.TxID, rec.TxType, rec.Account, rec.Result, rec.CloseTime, string(rec.Metadata), storedAt)
	if err != nil {
		return fmt.Errorf("insert transaction %s: %w", rec.TxID, err)
	}

	for _, ev := range events {
		_, err = tx.ExecContext(ctx, a.rebind(
			`INSERT INTO events (tx_id, name, attrs) VALUES (?, ?, ?)`),
			ev.TxID, ev.Name, string(ev.Attrs))
		if err != nil {
			return fmt.Errorf("insert event %s: %w", ev.Name, err)
		}
	}
	return tx.Commit()
}

func (a *sqlArchive) Transaction(ctx context.Context, txID string) (*Record, error) {
	row := a.db.QueryRowContext(ctx, a.rebind(
		`SELECT tx_id, tx_type, account, result, close_time, metadata, stored_at
		 FROM transactions WHERE tx_id = ?`), txID)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func (a *sqlArchive) AccountTransactions(ctx context.Context, account string, limit int) ([]Record, error) {
	rows, err := a.db.QueryContext(ctx, a.rebind(
		`SELECT tx_id, tx_type, account, result, close_time, metadata, stored_at
		 FROM transactions WHERE account = ? ORDER BY close_time DESC LIMIT ?`),
		account, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (a *sqlArchive) EventsByName(ctx context.Context, name string, limit int) ([]EventRecord, error) {
	rows, err := a.db.QueryContext(ctx, a.rebind(
		`SELECT tx_id, name, attrs FROM events WHERE name = ? ORDER BY id DESC LIMIT ?`),
		name, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []EventRecord
	for rows.Next() {
		var ev EventRecord
		var attrs string
		if err := rows.Scan(&ev.TxID, &ev.Name, &attrs); err != nil {
			return nil, err
		}
		ev.Attrs = []byte(attrs)
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (a *sqlArchive) Close() error { return a.db.Close() }

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var rec Record
	var metadata string
	if err := row.Scan(&rec.TxID, &rec.TxType, &rec.Account, &rec.Result,
		&rec.CloseTime, &metadata, &rec.StoredAt); err != nil {
		return nil, err
	}
	rec.Metadata = []byte(metadata)
	return &rec, nil
}
