package hiro

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackskit/stackskit/internal/chain"
	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

// newTestClient points both networks at the given test server and
// removes rate limiting so tests run fast.
func newTestClient(url string) *Client {
	return NewClient(&ClientOptions{
		MainnetURL:  url,
		TestnetURL:  url,
		RateLimiter: chain.NewRateLimiter(10000, 10000),
	})
}

func TestClient_GetAccountBalances(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/extended/v1/address/SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7/balances", r.URL.Path)
		_, _ = w.Write([]byte(`{"stx":{"balance":"1000000000","locked":"0","total_sent":"0","total_received":"1000000000"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	balances, err := client.GetAccountBalances(context.Background(), chain.Mainnet, "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7")
	require.NoError(t, err)
	assert.Equal(t, "1000000000", balances.STX.Balance)
}

func TestClient_GetAccountBalances_MissingSTX(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"fungible_tokens":{}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.GetAccountBalances(context.Background(), chain.Mainnet, "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7")
	require.Error(t, err)
	assert.ErrorIs(t, err, kiterr.ErrInvalidResponse)
}

func TestClient_GetAccountBalances_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.GetAccountBalances(context.Background(), chain.Mainnet, "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7")
	require.Error(t, err)
	assert.ErrorIs(t, err, kiterr.ErrNetworkError)
}

func TestClient_GetTransaction(t *testing.T) {
	t.Parallel()

	height := int64(152340)

	tests := []struct {
		name       string
		body       string
		wantStatus chain.TxStatus
		wantHeight *int64
	}{
		{
			name:       "pending without block height",
			body:       `{"tx_id":"0xabc","tx_status":"pending"}`,
			wantStatus: chain.StatusPending,
		},
		{
			name:       "confirmed with block height",
			body:       `{"tx_id":"0xabc","tx_status":"success","block_height":152340}`,
			wantStatus: chain.StatusSuccess,
			wantHeight: &height,
		},
		{
			name:       "aborted by response",
			body:       `{"tx_id":"0xabc","tx_status":"abort_by_response","block_height":152340}`,
			wantStatus: chain.StatusAbortByResponse,
			wantHeight: &height,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/extended/v1/tx/0xabc", r.URL.Path)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := newTestClient(srv.URL)

			tx, err := client.GetTransaction(context.Background(), chain.Testnet, "0xabc")
			require.NoError(t, err)
			assert.Equal(t, "0xabc", tx.TxID)
			assert.Equal(t, tt.wantStatus, tx.Status)
			assert.Equal(t, tt.wantHeight, tx.BlockHeight)
		})
	}
}

func TestClient_GetTransaction_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"could not find transaction"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	tx, err := client.GetTransaction(context.Background(), chain.Mainnet, "0xdeadbeef")
	require.NoError(t, err)
	assert.Equal(t, chain.StatusNotFound, tx.Status)
	assert.Equal(t, "0xdeadbeef", tx.TxID)
	assert.Nil(t, tx.BlockHeight)
}

func TestClient_GetTransaction_MalformedResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing tx_status", body: `{"tx_id":"0xabc"}`},
		{name: "missing tx_id", body: `{"tx_status":"pending"}`},
		{name: "not json", body: `<html>gateway error</html>`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := newTestClient(srv.URL)

			_, err := client.GetTransaction(context.Background(), chain.Mainnet, "0xabc")
			require.Error(t, err)
			assert.ErrorIs(t, err, kiterr.ErrInvalidResponse)
		})
	}
}

func TestClient_CallReadOnly(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/contracts/call-read/SM3VDXK3WZZSA84XXFKAFAF15NNZX32CTSG82JFQ4/sbtc-token/get-balance", r.URL.Path)

		var req readOnlyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, ReadOnlySender, req.Sender)
		require.Len(t, req.Arguments, 1)

		_, _ = w.Write([]byte(`{"okay":true,"result":"0x0701000000000000000000000000002faf080"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	contract := chain.ContractID{Address: "SM3VDXK3WZZSA84XXFKAFAF15NNZX32CTSG82JFQ4", Name: "sbtc-token"}

	result, err := client.CallReadOnly(context.Background(), chain.Mainnet, contract, "get-balance",
		[]string{"0x0516000000000000000000000000000000000000000000"})
	require.NoError(t, err)
	assert.True(t, result.Okay)
	assert.NotEmpty(t, result.Result)
}

func TestClient_CallReadOnly_Failure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"okay":false,"cause":"Unchecked(NoSuchContract)"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	contract := chain.ContractID{Address: "SM3VDXK3WZZSA84XXFKAFAF15NNZX32CTSG82JFQ4", Name: "sbtc-token"}

	result, err := client.CallReadOnly(context.Background(), chain.Mainnet, contract, "get-balance", nil)
	require.NoError(t, err)
	assert.False(t, result.Okay)
	assert.Equal(t, "Unchecked(NoSuchContract)", result.Cause)
}

func TestClient_CallReadOnly_MissingOkay(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result":"0x03"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	contract := chain.ContractID{Address: "SM3VDXK3WZZSA84XXFKAFAF15NNZX32CTSG82JFQ4", Name: "sbtc-token"}

	_, err := client.CallReadOnly(context.Background(), chain.Mainnet, contract, "get-balance", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, kiterr.ErrInvalidResponse)
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(&ClientOptions{
		MainnetURL:  srv.URL,
		TestnetURL:  srv.URL,
		Timeout:     20 * time.Millisecond,
		RateLimiter: chain.NewRateLimiter(10000, 10000),
	})

	_, err := client.GetTransaction(context.Background(), chain.Mainnet, "0xabc")
	require.Error(t, err)
	assert.ErrorIs(t, err, kiterr.ErrTimeout)
	assert.True(t, IsAborted(err))
}

func TestClient_CallerCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := client.GetTransaction(ctx, chain.Mainnet, "0xabc")
	require.Error(t, err)
	assert.True(t, IsAborted(err))
}

func TestClient_BaseURL(t *testing.T) {
	t.Parallel()

	client := NewClient(nil)
	assert.Equal(t, chain.MainnetAPIURL, client.BaseURL(chain.Mainnet))
	assert.Equal(t, chain.TestnetAPIURL, client.BaseURL(chain.Testnet))
}

func TestIsAborted(t *testing.T) {
	t.Parallel()

	assert.True(t, IsAborted(context.Canceled))
	assert.True(t, IsAborted(context.DeadlineExceeded))
	assert.True(t, IsAborted(kiterr.ErrTimeout))
	assert.False(t, IsAborted(kiterr.ErrNetworkError))
	assert.False(t, IsAborted(errors.New("boom")))
	assert.False(t, IsAborted(nil))
}
