package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Gravikko/nft-marketplace-sub000/internal/core/tx"
	te "github.com/Gravikko/nft-marketplace-sub000/internal/testing"
)

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRPC(t *testing.T) (*httptest.Server, *te.Account) {
	t.Helper()

	view := te.NewView()
	gate := te.NewAccount(t, "gate")
	fees := te.NewAccount(t, "fees")
	require.NoError(t, tx.Bootstrap(view, tx.DefaultMarketState(gate.ID, fees.ID)))

	creator := te.NewAccount(t, "creator")
	require.NoError(t, tx.FundAccount(view, creator.ID, 10_000, 0))

	node := NewNode(view, tx.EngineConfig{MarketAccount: te.MarketAccount}, nil, nil, zap.NewNop())
	srv := httptest.NewServer(NewRPC(node))
	t.Cleanup(srv.Close)
	return srv, creator
}

func rpcCall(t *testing.T, srv *httptest.Server, method string, params interface{}) rpcResponse {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
		"id":      1,
	})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out rpcResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRPCMarketState(t *testing.T) {
	srv, _ := newTestRPC(t)

	resp := rpcCall(t, srv, "market_state", map[string]interface{}{})
	require.Nil(t, resp.Error)

	var ms struct {
		Active  bool   `json:"active"`
		FeeRate uint32 `json:"feeRate"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &ms))
	require.True(t, ms.Active)
	require.Equal(t, uint32(250), ms.FeeRate)
}

func TestRPCSubmitCollectionCreate(t *testing.T) {
	srv, creator := newTestRPC(t)

	create := tx.NewCollectionCreate(creator.Address)
	create.RoyaltyReceiver = creator.Address
	create.RoyaltyRate = 500
	create.FloorPrice = 10
	create.Sequence = 1
	require.NoError(t, tx.SignTransaction(create, creator.PubKey, creator.PrivKey))

	raw, err := json.Marshal(create)
	require.NoError(t, err)

	resp := rpcCall(t, srv, "submit", map[string]interface{}{"tx": json.RawMessage(raw)})
	require.Nil(t, resp.Error)

	var submitted SubmitResult
	require.NoError(t, json.Unmarshal(resp.Result, &submitted))
	require.True(t, submitted.Applied)
	require.Equal(t, "Success", submitted.Result)
	require.NotEmpty(t, submitted.TxID)

	resp = rpcCall(t, srv, "collection_info", map[string]interface{}{"collectionID": 1})
	require.Nil(t, resp.Error)

	var coll struct {
		Creator     string `json:"creator"`
		RoyaltyRate uint32 `json:"royaltyRate"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &coll))
	require.Equal(t, creator.Address, coll.Creator)
	require.Equal(t, uint32(500), coll.RoyaltyRate)

	resp = rpcCall(t, srv, "account_info", map[string]interface{}{"account": creator.Address})
	require.Nil(t, resp.Error)

	var acct struct {
		Sequence uint32 `json:"sequence"`
		Balance  uint64 `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &acct))
	require.Equal(t, uint32(1), acct.Sequence)
	require.Equal(t, uint64(10_000), acct.Balance)
}

func TestRPCSubmitRejectsUnknownType(t *testing.T) {
	srv, _ := newTestRPC(t)

	resp := rpcCall(t, srv, "submit", map[string]interface{}{
		"tx": map[string]interface{}{"TransactionType": "Teleport"},
	})
	require.NotNil(t, resp.Error)
	require.Equal(t, -32602, resp.Error.Code)
}

func TestRPCMethodNotFound(t *testing.T) {
	srv, _ := newTestRPC(t)

	resp := rpcCall(t, srv, "no_such_method", map[string]interface{}{})
	require.NotNil(t, resp.Error)
	require.Equal(t, -32601, resp.Error.Code)
}

func TestRPCInvalidParams(t *testing.T) {
	srv, _ := newTestRPC(t)

	resp := rpcCall(t, srv, "account_info", map[string]interface{}{"account": "not-an-address"})
	require.NotNil(t, resp.Error)
	require.Equal(t, -32602, resp.Error.Code)
}

func TestRPCLookupMissing(t *testing.T) {
	srv, _ := newTestRPC(t)

	resp := rpcCall(t, srv, "token_info", map[string]interface{}{"collectionID": 7, "tokenID": 1})
	require.NotNil(t, resp.Error)
	require.Equal(t, -32603, resp.Error.Code)

	resp = rpcCall(t, srv, "auction_info", map[string]interface{}{"auctionID": 3})
	require.NotNil(t, resp.Error)
	require.Equal(t, -32603, resp.Error.Code)
}

func TestRPCRejectsGet(t *testing.T) {
	srv, _ := newTestRPC(t)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
