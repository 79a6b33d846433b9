// Package archive records applied transactions and their events in a
// relational store, so history survives outside the ledger's keyed state
// and can be queried by account or event name.
package archive

import (
	"context"
	"time"
)

// Record is one applied transaction.
type Record struct {
	TxID      string
	TxType    string
	Account   string
	Result    string
	CloseTime uint64
	// Metadata is the JSON-encoded transaction metadata.
	Metadata []byte
	StoredAt time.Time
}

// EventRecord is one event emitted by an applied transaction.
type EventRecord struct {
	TxID  string
	Name  string
	Attrs []byte // JSON-encoded attributes
}

// Archive persists transaction history. Implementations are safe for
// concurrent use.
type Archive interface {
	SaveTransaction(ctx context.Context, rec *Record, events []EventRecord) error
	Transaction(ctx context.Context, txID string) (*Record, error)
	AccountTransactions(ctx context.Context, account string, limit int) ([]Record, error)
	EventsByName(ctx context.Context, name string, limit int) ([]EventRecord, error)
	Close() error
}
