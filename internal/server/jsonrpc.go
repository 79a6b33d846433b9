package server

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Gravikko/nft-marketplace-sub000/internal/codec/address"
	"github.com/Gravikko/nft-marketplace-sub000/internal/core/tx"
)

// RPC is the JSON-RPC 2.0 handler exposing submission, state queries and
// history lookups.
type RPC struct {
	node    *Node
	methods map[string]rpcMethod
}

type rpcMethod func(ctx context.Context, params json.RawMessage) (interface{}, error)

var errInvalidParams = errors.New("invalid params")

// NewRPC builds the handler with every method registered.
func NewRPC(node *Node) *RPC {
	r := &RPC{node: node, methods: make(map[string]rpcMethod)}

	r.methods["submit"] = r.handleSubmit
	r.methods["market_state"] = r.handleMarketState
	r.methods["account_info"] = r.handleAccountInfo
	r.methods["collection_info"] = r.handleCollectionInfo
	r.methods["token_info"] = r.handleTokenInfo
	r.methods["auction_info"] = r.handleAuctionInfo
	r.methods["bid_amount"] = r.handleBidAmount
	r.methods["nonce_used"] = r.handleNonceUsed
	r.methods["hash_cancelled"] = r.handleHashCancelled
	r.methods["offer_precheck"] = r.handleOfferPrecheck
	r.methods["tx"] = r.handleTx
	r.methods["account_tx"] = r.handleAccountTx
	r.methods["events"] = r.handleEvents

	return r
}

func (r *RPC) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var rpcReq struct {
		JsonRPC string          `json:"jsonrpc"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params"`
		ID      interface{}     `json:"id"`
	}
	if err := json.NewDecoder(req.Body).Decode(&rpcReq); err != nil {
		writeError(w, nil, -32700, "Parse error")
		return
	}

	method, ok := r.methods[rpcReq.Method]
	if !ok {
		writeError(w, rpcReq.ID, -32601, fmt.Sprintf("method %s not found", rpcReq.Method))
		return
	}

	result, err := method(req.Context(), rpcReq.Params)
	if errors.Is(err, errInvalidParams) {
		writeError(w, rpcReq.ID, -32602, err.Error())
		return
	}
	if err != nil {
		writeError(w, rpcReq.ID, -32603, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jsonrpc": "2.0",
		"result":  result,
		"id":      rpcReq.ID,
	})
}

func writeError(w http.ResponseWriter, id interface{}, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jsonrpc": "2.0",
		"error":   map[string]interface{}{"code": code, "message": message},
		"id":      id,
	})
}

func decodeParams(params json.RawMessage, v interface{}) error {
	if len(params) == 0 {
		return fmt.Errorf("%w: missing params", errInvalidParams)
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}
	return nil
}

func (r *RPC) handleSubmit(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Tx json.RawMessage `json:"tx"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	t, err := tx.FromJSON(p.Tx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidParams, err)
	}
	return r.node.Submit(ctx, t), nil
}

func (r *RPC) handleMarketState(ctx context.Context, params json.RawMessage) (interface{}, error) {
	ms, err := tx.QueryMarketState(r.node.View())
	if err != nil {
		return nil, err
	}
	if ms == nil {
		return nil, errors.New("market not bootstrapped")
	}
	return map[string]interface{}{
		"active":             ms.Active,
		"feeRate":            ms.FeeRate,
		"feeReceiver":        address.Encode(ms.FeeReceiver),
		"gateAccount":        address.Encode(ms.GateAccount),
		"escrowedTotal":      ms.EscrowedTotal,
		"nextCollectionID":   ms.NextCollectionID,
		"nextAuctionID":      ms.NextAuctionID,
		"minDuration":        ms.MinDuration,
		"maxDuration":        ms.MaxDuration,
		"minBidIncrementPct": ms.MinBidIncrementPct,
		"extensionWindow":    ms.ExtensionWindow,
	}, nil
}

func (r *RPC) handleAccountInfo(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Account string `json:"account"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	id, err := address.Decode(p.Account)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidParams, err)
	}

	acct, err := tx.QueryAccount(r.node.View(), id)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, errors.New("account not found")
	}
	return map[string]interface{}{
		"account":       p.Account,
		"balance":       acct.Balance,
		"creditBalance": acct.CreditBalance,
		"sequence":      acct.Sequence,
	}, nil
}

func (r *RPC) handleCollectionInfo(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		CollectionID uint64 `json:"collectionID"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	coll, err := tx.QueryCollection(r.node.View(), p.CollectionID)
	if err != nil {
		return nil, err
	}
	if coll == nil {
		return nil, errors.New("collection not found")
	}
	return map[string]interface{}{
		"collectionID":    coll.CollectionID,
		"creator":         address.Encode(coll.Creator),
		"royaltyReceiver": address.Encode(coll.RoyaltyReceiver),
		"royaltyRate":     coll.RoyaltyRate,
		"floorPrice":      coll.FloorPrice,
		"nextTokenID":     coll.NextTokenID,
	}, nil
}

func (r *RPC) handleTokenInfo(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		CollectionID uint64 `json:"collectionID"`
		TokenID      uint64 `json:"tokenID"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	token, err := tx.QueryToken(r.node.View(), p.CollectionID, p.TokenID)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, errors.New("token not found")
	}
	result := map[string]interface{}{
		"collectionID": token.CollectionID,
		"tokenID":      token.TokenID,
		"owner":        address.Encode(token.Owner),
	}
	if token.Approved != ([20]byte{}) {
		result["approved"] = address.Encode(token.Approved)
	}
	return result, nil
}

func (r *RPC) handleAuctionInfo(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		AuctionID uint64 `json:"auctionID"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	auction, err := tx.QueryAuction(r.node.View(), p.AuctionID)
	if err != nil {
		return nil, err
	}
	if auction == nil {
		return nil, errors.New("auction not found")
	}
	ms, err := tx.QueryMarketState(r.node.View())
	if err != nil {
		return nil, err
	}

	bids := make([]map[string]interface{}, 0, len(auction.Bids))
	for _, b := range auction.Bids {
		bids = append(bids, map[string]interface{}{
			"bidder": address.Encode(b.Bidder),
			"amount": b.Amount,
		})
	}
	return map[string]interface{}{
		"auctionID":      auction.AuctionID,
		"seller":         address.Encode(auction.Seller),
		"collectionID":   auction.CollectionID,
		"tokenID":        auction.TokenID,
		"minimumBid":     auction.MinimumBid,
		"deadline":       auction.Deadline,
		"finished":       auction.Finished,
		"bids":           bids,
		"nextMinimumBid": tx.NextMinimumBid(auction, ms),
	}, nil
}

func (r *RPC) handleBidAmount(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		AuctionID uint64 `json:"auctionID"`
		Bidder    string `json:"bidder"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	bidder, err := address.Decode(p.Bidder)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidParams, err)
	}

	amount, err := tx.QueryBidAmount(r.node.View(), p.AuctionID, bidder)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"amount": amount}, nil
}

func (r *RPC) handleNonceUsed(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Account string `json:"account"`
		Nonce   uint64 `json:"nonce"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	id, err := address.Decode(p.Account)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidParams, err)
	}

	used, err := tx.QueryNonceUsed(r.node.View(), id, p.Nonce)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"used": used}, nil
}

func (r *RPC) handleHashCancelled(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Hash string `json:"hash"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	raw, err := hex.DecodeString(p.Hash)
	if err != nil || len(raw) != 32 {
		return nil, fmt.Errorf("%w: malformed hash", errInvalidParams)
	}
	var hash [32]byte
	copy(hash[:], raw)

	cancelled, err := tx.QueryHashCancelled(r.node.View(), hash)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"cancelled": cancelled}, nil
}

func (r *RPC) handleOfferPrecheck(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Buyer        string `json:"buyer"`
		CollectionID uint64 `json:"collectionID"`
		TokenID      uint64 `json:"tokenID"`
		Price        uint64 `json:"price"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	buyer, err := address.Decode(p.Buyer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidParams, err)
	}

	res := tx.OfferPrecheck(r.node.View(), r.node.Engine().Config().MarketAccount,
		buyer, p.CollectionID, p.TokenID, p.Price)
	return map[string]interface{}{
		"result": res.String(),
		"ok":     res.Success(),
	}, nil
}

func (r *RPC) handleTx(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		TxID string `json:"txID"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if r.node.archive == nil {
		return nil, errors.New("archive disabled")
	}

	rec, err := r.node.archive.Transaction(ctx, p.TxID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("transaction not found")
	}
	return rec, nil
}

func (r *RPC) handleAccountTx(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Account string `json:"account"`
		Limit   int    `json:"limit"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if r.node.archive == nil {
		return nil, errors.New("archive disabled")
	}
	if p.Limit <= 0 || p.Limit > 200 {
		p.Limit = 50
	}
	return r.node.archive.AccountTransactions(ctx, p.Account, p.Limit)
}

func (r *RPC) handleEvents(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Name  string `json:"name"`
		Limit int    `json:"limit"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if r.node.archive == nil {
		return nil, errors.New("archive disabled")
	}
	if p.Limit <= 0 || p.Limit > 200 {
		p.Limit = 50
	}
	return r.node.archive.EventsByName(ctx, p.Name, p.Limit)
}
