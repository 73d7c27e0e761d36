package game

import "github.com/shopspring/decimal"

// Inventory maps item names to held quantities
type Inventory map[string]decimal.Decimal

// Amount returns the held quantity, zero when the item is missing
func (inv Inventory) Amount(name string) decimal.Decimal {
	if inv == nil {
		return decimal.Zero
	}
	if amount, ok := inv[name]; ok {
		return amount
	}
	return decimal.Zero
}

// Has reports whether at least min of the item is held
func (inv Inventory) Has(name string, min decimal.Decimal) bool {
	return inv.Amount(name).GreaterThanOrEqual(min)
}

// Add increases the quantity of an item
func (inv Inventory) Add(name string, amount decimal.Decimal) {
	inv[name] = inv.Amount(name).Add(amount)
}

// Sub decreases the quantity of an item
func (inv Inventory) Sub(name string, amount decimal.Decimal) {
	inv[name] = inv.Amount(name).Sub(amount)
}

// Clone returns an independent copy. decimal.Decimal values are immutable.
func (inv Inventory) Clone() Inventory {
	if inv == nil {
		return nil
	}
	out := make(Inventory, len(inv))
	for k, v := range inv {
		out[k] = v
	}
	return out
}
