package shop

import (
	"errors"
	"maps"
	"math"

	"github.com/jwebster45206/shop-engine/pkg/catalog"
)

// Ledger is the player's purse and pack. Money and owned quantities change
// only through the transaction engine.
type Ledger struct {
	money      int
	totalSpace int
	owned      map[string]int // entry ID -> quantity, always > 0
	player     catalog.UserType
}

// NewLedger creates an empty ledger.
func NewLedger(money, totalSpace int, player catalog.UserType) (*Ledger, error) {
	if money < 0 {
		return nil, errors.New("starting money cannot be negative")
	}
	if totalSpace <= 0 {
		return nil, errors.New("inventory space must be positive")
	}
	if !player.Valid() {
		return nil, errors.New("unknown player character")
	}
	return &Ledger{
		money:      money,
		totalSpace: totalSpace,
		owned:      make(map[string]int),
		player:     player,
	}, nil
}

func (l *Ledger) Money() int {
	return l.money
}

func (l *Ledger) TotalSpace() int {
	return l.totalSpace
}

// UsedSpace is the total number of units carried.
func (l *Ledger) UsedSpace() int {
	used := 0
	for _, q := range l.owned {
		used += q
	}
	return used
}

func (l *Ledger) RemainingSpace() int {
	return l.totalSpace - l.UsedSpace()
}

// Owned returns how many units of the entry the player carries.
func (l *Ledger) Owned(entryID string) int {
	return l.owned[entryID]
}

// Items returns a copy of the owned-quantity table.
func (l *Ledger) Items() map[string]int {
	return maps.Clone(l.owned)
}

// Player is the character currently shopping.
func (l *Ledger) Player() catalog.UserType {
	return l.player
}

// SetPlayer switches the shopping character. Unknown characters are ignored.
func (l *Ledger) SetPlayer(u catalog.UserType) {
	if u.Valid() {
		l.player = u
	}
}

func (l *Ledger) debit(amount int) {
	l.money -= amount
}

func (l *Ledger) credit(amount int) {
	if amount > math.MaxInt-l.money {
		l.money = math.MaxInt
		return
	}
	l.money += amount
}

func (l *Ledger) add(entryID string, quantity int) {
	l.owned[entryID] += quantity
}

// removeOne drops a single unit, deleting the record once it reaches zero.
func (l *Ledger) removeOne(entryID string) {
	q, ok := l.owned[entryID]
	if !ok {
		return
	}
	if q <= 1 {
		delete(l.owned, entryID)
		return
	}
	l.owned[entryID] = q - 1
}
