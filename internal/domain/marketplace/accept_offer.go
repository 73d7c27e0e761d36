package marketplace

import (
	"context"
	"math/big"
	"time"
)

const (
	// OfferAcceptedEvent tags the saved transaction record
	OfferAcceptedEvent = "transaction.offerAccepted"

	acceptOfferFunction = "acceptOffer"
)

// Chain bundles the collaborators that talk to the marketplace contract
type Chain struct {
	Address   string
	Contracts ContractWriter
	Receipts  ReceiptWaiter
	Sessions  SessionProvider
	TxHashes  TxHashStore
	Now       func() time.Time
}

// AcceptOfferTransaction submits acceptOffer, records the hash, waits for the
// receipt and returns the session id that follows the one the call used.
// There is no retry and no timeout beyond ctx; client errors are returned as is.
func AcceptOfferTransaction(ctx context.Context, chain Chain, params AcceptOfferParams) (string, error) {
	oldSessionID := params.SessionID

	fee, err := params.Fee.BigInt()
	if err != nil {
		return "", err
	}

	hash, err := chain.Contracts.WriteContract(ctx, ContractCall{
		Address:      chain.Address,
		FunctionName: acceptOfferFunction,
		Args: []any{
			params.Signature,
			params.SessionID,
			params.NextSessionID,
			big.NewInt(params.Deadline),
			big.NewInt(params.FarmID),
			fee,
			params.Offer,
		},
		Account: params.Sender,
	})
	if err != nil {
		return "", err
	}

	now := time.Now
	if chain.Now != nil {
		now = chain.Now
	}
	chain.TxHashes.SaveTxHash(ctx, TxRecord{
		Event:     OfferAcceptedEvent,
		Hash:      hash,
		SessionID: params.SessionID,
		Deadline:  params.Deadline,
		CreatedAt: now(),
	})

	if err := chain.Receipts.WaitForTransactionReceipt(ctx, hash); err != nil {
		return "", err
	}

	return chain.Sessions.NextSessionID(ctx, params.Sender, params.FarmID, oldSessionID)
}
