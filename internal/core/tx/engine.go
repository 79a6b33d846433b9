package tx

import (
	"github.com/Gravikko/nft-marketplace-sub000/internal/codec/address"
)

// EngineConfig is the per-apply environment of the engine.
type EngineConfig struct {
	// CloseTime is the ledger time, in unix seconds, that deadline and
	// expiry comparisons use. Transactions never read the wall clock.
	CloseTime uint64

	// MarketAccount is the custody account holding escrowed tokens and
	// bid funds.
	MarketAccount [20]byte

	// SkipSignatureVerification bypasses outer signature checks. Intent
	// signatures inside order and offer payloads are always verified.
	SkipSignatureVerification bool
}

// ApplyResult is the full outcome of applying one transaction.
type ApplyResult struct {
	Result   Result
	Applied  bool
	Metadata *Metadata
	// Message carries detail for validation failures.
	Message string
}

// Engine applies transactions to a ledger view. All effects of a
// transaction are staged and either commit together or not at all.
type Engine struct {
	view     LedgerView
	config   EngineConfig
	registry AssetRegistry
	gate     AuthorizationGate
}

// NewEngine creates an engine over the given view and collaborators. Nil
// collaborators fall back to the ledger-backed registry and the
// gate-account policy.
func NewEngine(view LedgerView, config EngineConfig, registry AssetRegistry, gate AuthorizationGate) *Engine {
	if registry == nil {
		registry = NewLedgerRegistry()
	}
	if gate == nil {
		gate = NewAccountGate()
	}
	return &Engine{view: view, config: config, registry: registry, gate: gate}
}

// SetCloseTime updates the ledger time used by subsequent applies.
func (e *Engine) SetCloseTime(t uint64) { e.config.CloseTime = t }

// CloseTime returns the current ledger time.
func (e *Engine) CloseTime() uint64 { return e.config.CloseTime }

// Config returns the engine configuration.
func (e *Engine) Config() EngineConfig { return e.config }

// View returns the underlying ledger view, for read-only queries.
func (e *Engine) View() LedgerView { return e.view }

func failure(r Result, msg string) ApplyResult {
	return ApplyResult{Result: r, Message: msg}
}

// Apply validates, authenticates and executes a transaction. On success the
// staged changes are committed to the engine's view; on any failure the
// view is untouched and the account sequence is not consumed.
func (e *Engine) Apply(t Transaction) ApplyResult {
	if err := t.Validate(); err != nil {
		return failure(ResMalformed, err.Error())
	}

	if !e.config.SkipSignatureVerification {
		if err := VerifySignature(t); err != nil {
			return failure(ResBadSignature, err.Error())
		}
	}

	caller, err := address.Decode(t.GetCommon().Account)
	if err != nil {
		return failure(ResMalformed, "malformed account address")
	}

	table := NewApplyStateTable(e.view)
	ctx := &ApplyContext{
		View:     table,
		Caller:   caller,
		Config:   e.config,
		Registry: e.registry,
		Gate:     e.gate,
		Metadata: &Metadata{},
	}

	acct, err := ctx.loadAccount(caller)
	if err != nil {
		return failure(ResInternal, err.Error())
	}
	if acct == nil {
		return failure(ResNoAccount, "account has no ledger entry")
	}
	if t.GetCommon().Sequence != acct.Sequence+1 {
		return failure(ResBadSequence, "sequence out of order")
	}
	acct.Sequence++
	if err := ctx.storeAccount(acct, false); err != nil {
		return failure(ResInternal, err.Error())
	}

	result := t.Apply(ctx)
	if !result.Success() {
		return ApplyResult{Result: result, Metadata: ctx.Metadata}
	}

	changes, err := table.Apply()
	if err != nil {
		return failure(ResInternal, err.Error())
	}
	ctx.Metadata.Changes = changes

	return ApplyResult{Result: ResSuccess, Applied: true, Metadata: ctx.Metadata}
}
