package catalog

import (
	"fmt"
	"slices"
)

// Entry is a single good offered by the merchant.
type Entry struct {
	ID           string     `json:"id"`                      // Stable key, unique within a catalog
	Name         string     `json:"name"`                    // Display name
	BuyPrice     int        `json:"buy_price"`               // Price the player pays per unit
	SellPrice    int        `json:"sell_price"`              // Price the merchant pays back per unit
	Purchasable  bool       `json:"purchasable"`             // Restricted entries can be neither bought nor sold
	Stock        int        `json:"stock"`                   // Units left in the shop
	AllowedUsers []UserType `json:"allowed_users,omitempty"` // Characters that may equip this entry
	Description  string     `json:"description,omitempty"`

	initialStock int
	captured     bool
}

// Activate records the current stock as the entry's initial stock.
// Only the first call has any effect.
func (e *Entry) Activate() {
	if e.captured {
		return
	}
	e.initialStock = e.Stock
	e.captured = true
}

// InitialStock returns the stock captured on first activation.
func (e *Entry) InitialStock() int {
	if !e.captured {
		return e.Stock
	}
	return e.initialStock
}

// ResetStock restores the stock to its initial value.
func (e *Entry) ResetStock() {
	e.Activate()
	e.Stock = e.initialStock
}

// Allows reports whether the given character may use this entry.
func (e *Entry) Allows(u UserType) bool {
	return slices.Contains(e.AllowedUsers, u)
}

// PriceLabel is the buy price as shown in a shop slot.
func (e *Entry) PriceLabel() string {
	if !e.Purchasable {
		return "$ -"
	}
	return fmt.Sprintf("$%d", e.BuyPrice)
}

// Clone returns an independent copy of the entry, including its captured
// initial stock.
func (e *Entry) Clone() *Entry {
	c := *e
	c.AllowedUsers = slices.Clone(e.AllowedUsers)
	return &c
}
