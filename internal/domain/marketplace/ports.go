package marketplace

import (
	"context"
	"time"
)

// ContractCall is a write to a smart contract method
type ContractCall struct {
	Address      string
	FunctionName string
	Args         []any
	Account      string
}

// ContractWriter submits a contract write and returns the transaction hash
type ContractWriter interface {
	WriteContract(ctx context.Context, call ContractCall) (string, error)
}

// ReceiptWaiter blocks until a transaction is final
type ReceiptWaiter interface {
	WaitForTransactionReceipt(ctx context.Context, hash string) error
}

// SessionProvider issues the session id that follows oldSessionID
type SessionProvider interface {
	NextSessionID(ctx context.Context, sender string, farmID int64, oldSessionID string) (string, error)
}

// TxRecord is a submitted transaction kept so the client can track it
type TxRecord struct {
	Event     string
	Hash      string
	SessionID string
	Deadline  int64
	CreatedAt time.Time
}

// TxHashStore remembers submitted transactions. Saving is best effort: the
// store reports its own failures and never fails the transaction.
type TxHashStore interface {
	SaveTxHash(ctx context.Context, record TxRecord)
}
