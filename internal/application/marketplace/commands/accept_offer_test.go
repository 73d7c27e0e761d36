package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/domain/marketplace"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

type stubChain struct {
	hash     string
	next     string
	writeErr error
	records  []marketplace.TxRecord
}

func (s *stubChain) WriteContract(_ context.Context, _ marketplace.ContractCall) (string, error) {
	return s.hash, s.writeErr
}

func (s *stubChain) WaitForTransactionReceipt(_ context.Context, _ string) error { return nil }

func (s *stubChain) NextSessionID(_ context.Context, _ string, _ int64, _ string) (string, error) {
	return s.next, nil
}

func (s *stubChain) SaveTxHash(_ context.Context, record marketplace.TxRecord) {
	s.records = append(s.records, record)
}

func (s *stubChain) chain() marketplace.Chain {
	return marketplace.Chain{
		Address:   "0xmarket",
		Contracts: s,
		Receipts:  s,
		Sessions:  s,
		TxHashes:  s,
		Now:       func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func validParams() marketplace.AcceptOfferParams {
	return marketplace.AcceptOfferParams{
		Signature:     "0xsig",
		SessionID:     "0xold",
		NextSessionID: "0xnext",
		Deadline:      1735689600,
		Sender:        "0xsender",
		FarmID:        42,
		Fee:           "250",
		Offer: marketplace.Offer{
			TradeID:    "trade-1",
			Signature:  "0xoffer",
			FarmID:     7,
			ID:         1,
			SFL:        decimal.NewFromInt(5),
			Collection: marketplace.CollectionResources,
			Name:       "Wood",
		},
	}
}

func TestAcceptOffer_ReturnsNextSession(t *testing.T) {
	stub := &stubChain{hash: "0xhash", next: "0xfollowing"}
	handler := NewAcceptOfferHandler(stub.chain())
	logger := helpers.NewRecordingLogger()
	ctx := logging.WithLogger(context.Background(), logger)

	resp, err := handler.Handle(ctx, &AcceptOfferCommand{Params: validParams()})

	require.NoError(t, err)
	assert.Equal(t, "0xfollowing", resp.(*AcceptOfferResponse).NextSessionID)
	require.Len(t, stub.records, 1)
	assert.Equal(t, "0xhash", stub.records[0].Hash)
	assert.True(t, logger.Contains(logging.LevelInfo, "accepting offer"))
}

func TestAcceptOffer_ChainErrorIsUnmodified(t *testing.T) {
	rejected := errors.New("user rejected the request")
	stub := &stubChain{writeErr: rejected}
	handler := NewAcceptOfferHandler(stub.chain())

	_, err := handler.Handle(context.Background(), &AcceptOfferCommand{Params: validParams()})

	assert.Same(t, rejected, err)
	assert.Empty(t, stub.records)
}

func TestAcceptOffer_InvalidParams(t *testing.T) {
	params := validParams()
	params.Offer.Collection = "pets"
	handler := NewAcceptOfferHandler((&stubChain{}).chain())

	_, err := handler.Handle(context.Background(), &AcceptOfferCommand{Params: params})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid offer parameters")
}

func TestAcceptOffer_InvalidRequestType(t *testing.T) {
	handler := NewAcceptOfferHandler((&stubChain{}).chain())

	_, err := handler.Handle(context.Background(), &struct{}{})

	assert.EqualError(t, err, "invalid request type: expected *AcceptOfferCommand")
}
