package chain

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/domain/marketplace"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*RelayClient, *shared.MockClock) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	clock := shared.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	client := NewRelayClient(server.URL, RelayOptions{Requests: 1000, Burst: 1000, PollInterval: time.Second, Clock: clock})
	return client, clock
}

func TestWriteContract_SendsCall(t *testing.T) {
	var got struct {
		Address      string        `json:"address"`
		FunctionName string        `json:"functionName"`
		Args         []json.Number `json:"args"`
		Account      string        `json:"account"`
	}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/contracts/write", r.URL.Path)
		decoder := json.NewDecoder(r.Body)
		decoder.UseNumber()
		require.NoError(t, decoder.Decode(&got))
		w.Write([]byte(`{"data":{"hash":"0xabc"}}`))
	})

	fee, _ := new(big.Int).SetString("1000000000000000000000", 10)
	hash, err := client.WriteContract(context.Background(), marketplace.ContractCall{
		Address:      "0xmarket",
		FunctionName: "acceptOffer",
		Args:         []any{fee, big.NewInt(42)},
		Account:      "0xsender",
	})

	require.NoError(t, err)
	assert.Equal(t, "0xabc", hash)
	assert.Equal(t, "0xmarket", got.Address)
	assert.Equal(t, "acceptOffer", got.FunctionName)
	assert.Equal(t, "0xsender", got.Account)
	assert.Equal(t, []json.Number{"1000000000000000000000", "42"}, got.Args)
}

func TestWriteContract_RelayError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"execution reverted: Offer expired"}}`))
	})

	_, err := client.WriteContract(context.Background(), marketplace.ContractCall{FunctionName: "acceptOffer"})

	var relayErr *RelayError
	require.ErrorAs(t, err, &relayErr)
	assert.Equal(t, http.StatusBadRequest, relayErr.StatusCode)
	assert.Equal(t, "execution reverted: Offer expired", relayErr.Message)
}

func TestWaitForTransactionReceipt_PollsUntilMined(t *testing.T) {
	var polls int32
	client, clock := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions/0xabc/receipt", r.URL.Path)
		if atomic.AddInt32(&polls, 1) < 3 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"data":{"status":"success"}}`))
	})
	start := clock.Now()

	err := client.WaitForTransactionReceipt(context.Background(), "0xabc")

	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&polls))
	assert.Equal(t, 2*time.Second, clock.Now().Sub(start))
}

func TestWaitForTransactionReceipt_Reverted(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"status":"reverted"}}`))
	})

	err := client.WaitForTransactionReceipt(context.Background(), "0xabc")

	assert.EqualError(t, err, "transaction 0xabc reverted")
}

func TestWaitForTransactionReceipt_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		cancel()
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.WaitForTransactionReceipt(ctx, "0xabc")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNextSessionID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sessions/next", r.URL.Path)
		assert.Equal(t, "0xsender", r.URL.Query().Get("sender"))
		assert.Equal(t, "42", r.URL.Query().Get("farmId"))
		assert.Equal(t, "0xold", r.URL.Query().Get("sessionId"))
		w.Write([]byte(`{"data":{"sessionId":"0xnew"}}`))
	})

	next, err := client.NextSessionID(context.Background(), "0xsender", 42, "0xold")

	require.NoError(t, err)
	assert.Equal(t, "0xnew", next)
}

type countingRecorder struct {
	requests map[string]int
	waits    int
}

func (r *countingRecorder) RecordRelayRequest(method, endpoint string, statusCode int, duration float64) {
	if r.requests == nil {
		r.requests = map[string]int{}
	}
	r.requests[method+" "+endpoint]++
}

func (r *countingRecorder) RecordRateLimitWait(method, endpoint string, duration float64) {
	r.waits++
}

func TestRelayClient_RecordsRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"sessionId":"0xnew","status":"success"}}`))
	}))
	t.Cleanup(server.Close)
	recorder := &countingRecorder{}
	client := NewRelayClient(server.URL, RelayOptions{Requests: 1000, Recorder: recorder})

	_, err := client.NextSessionID(context.Background(), "0xsender", 1, "0xold")
	require.NoError(t, err)
	require.NoError(t, client.WaitForTransactionReceipt(context.Background(), "0xabc"))

	assert.Equal(t, map[string]int{
		"GET /sessions/next":        1,
		"GET /transactions/receipt": 1,
	}, recorder.requests)
	assert.Equal(t, 2, recorder.waits)
}
