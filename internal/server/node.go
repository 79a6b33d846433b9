// Package server hosts the running market node: the engine behind a submit
// loop, a JSON-RPC query surface and a websocket event stream.
package server

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Gravikko/nft-marketplace-sub000/internal/core/tx"
	"github.com/Gravikko/nft-marketplace-sub000/internal/storage/archive"
)

// Node owns the engine and serializes all state changes. One transaction
// applies at a time, so queries never observe a half-applied transaction.
type Node struct {
	mu      sync.Mutex
	view    tx.LedgerView
	engine  *tx.Engine
	archive archive.Archive
	hub     *Hub
	logger  *zap.Logger
	now     func() time.Time
}

// NewNode wires a node over an opened ledger view. The archive and hub may
// be nil; history recording and event streaming are then disabled.
func NewNode(view tx.LedgerView, config tx.EngineConfig, arch archive.Archive, hub *Hub, logger *zap.Logger) *Node {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Node{
		view:    view,
		engine:  tx.NewEngine(view, config, nil, nil),
		archive: arch,
		hub:     hub,
		logger:  logger,
		now:     time.Now,
	}
}

// View returns the node's ledger view for read-only queries.
func (n *Node) View() tx.LedgerView { return n.view }

// Engine returns the underlying engine.
func (n *Node) Engine() *tx.Engine { return n.engine }

// SubmitResult is the outcome of a submitted transaction.
type SubmitResult struct {
	TxID    string       `json:"txID"`
	Result  string       `json:"result"`
	Applied bool         `json:"applied"`
	Message string       `json:"message,omitempty"`
	Meta    *tx.Metadata `json:"meta,omitempty"`
}

// Submit applies one transaction at the current wall-clock ledger time,
// records it in the archive and broadcasts its events.
func (n *Node) Submit(ctx context.Context, t tx.Transaction) SubmitResult {
	n.mu.Lock()
	closeTime := uint64(n.now().Unix())
	n.engine.SetCloseTime(closeTime)
	res := n.engine.Apply(t)
	n.mu.Unlock()

	var txID string
	if id, err := tx.TransactionID(t); err == nil {
		txID = hex.EncodeToString(id[:])
	}

	n.logger.Info("transaction applied",
		zap.String("txID", txID),
		zap.String("type", t.TxType().String()),
		zap.String("account", t.GetCommon().Account),
		zap.String("result", res.Result.String()),
	)

	if res.Applied {
		n.record(ctx, txID, t, res, closeTime)
		n.broadcast(txID, res)
	}

	return SubmitResult{
		TxID:    txID,
		Result:  res.Result.String(),
		Applied: res.Applied,
		Message: res.Message,
		Meta:    res.Metadata,
	}
}

func (n *Node) record(ctx context.Context, txID string, t tx.Transaction, res tx.ApplyResult, closeTime uint64) {
	if n.archive == nil {
		return
	}

	meta, err := json.Marshal(res.Metadata)
	if err != nil {
		n.logger.Error("encode transaction metadata", zap.String("txID", txID), zap.Error(err))
		return
	}

	rec := &archive.Record{
		TxID:      txID,
		TxType:    t.TxType().String(),
		Account:   t.GetCommon().Account,
		Result:    res.Result.String(),
		CloseTime: closeTime,
		Metadata:  meta,
	}

	var events []archive.EventRecord
	for _, ev := range res.Metadata.Events {
		attrs, err := json.Marshal(ev.Attrs)
		if err != nil {
			continue
		}
		events = append(events, archive.EventRecord{TxID: txID, Name: ev.Name, Attrs: attrs})
	}

	if err := n.archive.SaveTransaction(ctx, rec, events); err != nil {
		n.logger.Error("archive transaction", zap.String("txID", txID), zap.Error(err))
	}
}

func (n *Node) broadcast(txID string, res tx.ApplyResult) {
	if n.hub == nil {
		return
	}
	for _, ev := range res.Metadata.Events {
		n.hub.Broadcast(StreamEvent{TxID: txID, Name: ev.Name, Attrs: ev.Attrs})
	}
}
