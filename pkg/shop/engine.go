package shop

import (
	"fmt"
	"math"

	"github.com/jwebster45206/shop-engine/pkg/catalog"
)

// Mode decides which price and validation path a confirm takes.
type Mode int

const (
	Buy Mode = iota
	Sell
)

func (m Mode) String() string {
	if m == Sell {
		return "sell"
	}
	return "buy"
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "buy":
		*m = Buy
	case "sell":
		*m = Sell
	default:
		return fmt.Errorf("unknown mode %q", text)
	}
	return nil
}

// Receipt describes a completed transaction.
type Receipt struct {
	Mode       Mode   `json:"mode"`
	EntryID    string `json:"entry_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Total      int    `json:"total"`
	MoneyAfter int    `json:"money_after"`
	OwnedAfter int    `json:"owned_after"`
	StockAfter int    `json:"stock_after"`
}

// CheckBuy validates a purchase without changing anything. Checks run in a
// fixed order and the first failure wins.
func CheckBuy(e *catalog.Entry, l *Ledger, qty int, equipmentTab bool) ErrorKind {
	switch {
	case e == nil || l == nil:
		return NoSelection
	case !e.Purchasable:
		return Restricted
	case e.Stock == 0:
		return OutOfStock
	case qty > e.Stock:
		return InsufficientStock
	case qty > l.RemainingSpace():
		return InsufficientSpace
	case equipmentTab && !e.Allows(l.Player()):
		return UserNotAllowed
	case e.BuyPrice > 0 && qty > l.Money()/e.BuyPrice:
		return InsufficientFunds
	case qty <= 0:
		return NoQuantitySelected
	}
	return Success
}

// CheckSell validates a sale without changing anything.
func CheckSell(e *catalog.Entry, l *Ledger, qty int) ErrorKind {
	switch {
	case e == nil || l == nil:
		return NoSelection
	case !e.Purchasable:
		return Restricted
	case l.Owned(e.ID) < qty || qty <= 0:
		return InsufficientOwned
	}
	return Success
}

// BuyEntry moves qty units from the shop into the ledger.
func BuyEntry(e *catalog.Entry, l *Ledger, qty int, equipmentTab bool) (Receipt, error) {
	if kind := CheckBuy(e, l, qty, equipmentTab); kind != Success {
		return Receipt{}, reject(kind, Buy, e, qty)
	}

	total := qty * e.BuyPrice
	l.debit(total)
	l.add(e.ID, qty)
	e.Stock -= qty

	return receipt(Buy, e, l, qty, total), nil
}

// SellEntry moves qty units from the ledger back to the merchant. Stock is
// not replenished by sales.
func SellEntry(e *catalog.Entry, l *Ledger, qty int) (Receipt, error) {
	if kind := CheckSell(e, l, qty); kind != Success {
		return Receipt{}, reject(kind, Sell, e, qty)
	}

	total := lineTotal(qty, e.SellPrice)
	l.credit(total)
	for i := 0; i < qty; i++ {
		l.removeOne(e.ID)
	}

	return receipt(Sell, e, l, qty, total), nil
}

// lineTotal is qty*price, saturating at math.MaxInt instead of wrapping.
func lineTotal(qty, price int) int {
	if price > 0 && qty > math.MaxInt/price {
		return math.MaxInt
	}
	return qty * price
}

func reject(kind ErrorKind, mode Mode, e *catalog.Entry, qty int) error {
	te := &TransactionError{Kind: kind, Mode: mode, Quantity: qty}
	if e != nil {
		te.EntryID = e.ID
	}
	return te
}

func receipt(mode Mode, e *catalog.Entry, l *Ledger, qty, total int) Receipt {
	return Receipt{
		Mode:       mode,
		EntryID:    e.ID,
		Name:       e.Name,
		Quantity:   qty,
		Total:      total,
		MoneyAfter: l.Money(),
		OwnedAfter: l.Owned(e.ID),
		StockAfter: e.Stock,
	}
}
