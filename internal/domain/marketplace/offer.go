package marketplace

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Collection is the kind of item an offer trades
type Collection string

const (
	CollectionCollectibles Collection = "collectibles"
	CollectionBuds         Collection = "buds"
	CollectionWearables    Collection = "wearables"
	CollectionResources    Collection = "resources"
)

// Valid reports whether c is a known collection
func (c Collection) Valid() bool {
	switch c {
	case CollectionCollectibles, CollectionBuds, CollectionWearables, CollectionResources:
		return true
	}
	return false
}

// Offer is a signed buy offer created by another farm
type Offer struct {
	TradeID    string          `json:"tradeId" validate:"required"`
	Signature  string          `json:"signature" validate:"required"`
	FarmID     int64           `json:"farmId" validate:"gt=0"`
	ID         int64           `json:"id" validate:"gte=0"`
	SFL        decimal.Decimal `json:"sfl"`
	Collection Collection      `json:"collection" validate:"required,oneof=collectibles buds wearables resources"`
	Name       string          `json:"name" validate:"required"`
}

// AcceptOfferParams is everything needed to accept an offer on chain
type AcceptOfferParams struct {
	Signature     string `json:"signature" validate:"required"`
	SessionID     string `json:"sessionId" validate:"required"`
	NextSessionID string `json:"nextSessionId" validate:"required"`
	Deadline      int64  `json:"deadline" validate:"gt=0"`
	Sender        string `json:"sender" validate:"required"`
	FarmID        int64  `json:"farmId" validate:"gt=0"`
	Fee           Fee    `json:"fee"`
	Offer         Offer  `json:"offer" validate:"required"`
}

// Fee is the marketplace fee in wei. Clients send it either as a JSON number
// or as a decimal string, since large fees do not fit a float.
type Fee string

// UnmarshalJSON accepts both 123 and "123"
func (f *Fee) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	*f = Fee(s)
	return nil
}

// BigInt converts the fee to an integer contract argument
func (f Fee) BigInt() (*big.Int, error) {
	v, ok := new(big.Int).SetString(string(f), 10)
	if !ok {
		return nil, fmt.Errorf("invalid fee %q", string(f))
	}
	return v, nil
}
