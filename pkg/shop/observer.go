package shop

import (
	"github.com/google/uuid"
	"github.com/jwebster45206/shop-engine/pkg/catalog"
)

// Observer receives session updates. The engine never reads from an observer;
// presentation layers pull everything they need from the Snapshot.
type Observer interface {
	OnStateChanged(Snapshot)
	OnTransactionResult(Result)
}

// Result is the outcome of a single confirm.
type Result struct {
	SessionID uuid.UUID `json:"session_id"`
	Kind      ErrorKind `json:"kind"`
	Mode      Mode      `json:"mode"`
	EntryID   string    `json:"entry_id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Quantity  int       `json:"quantity"`
	Message   string    `json:"message"`
	Receipt   *Receipt  `json:"receipt,omitempty"`
}

// OK reports whether the transaction went through.
func (r Result) OK() bool {
	return r.Kind == Success
}

// Row is one visible shop slot.
type Row struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PriceLabel  string `json:"price_label"`
	SellPrice   int    `json:"sell_price"`
	Stock       int    `json:"stock"`
	Owned       int    `json:"owned"`
	Purchasable bool   `json:"purchasable"`
	Selected    bool   `json:"selected"`
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	SessionID      uuid.UUID        `json:"session_id"`
	Tab            Tab              `json:"tab"`
	Mode           Mode             `json:"mode"`
	SelectedIndex  int              `json:"selected_index"`
	Quantity       int              `json:"quantity"`
	QuantityLocked bool             `json:"quantity_locked"`
	Rows           []Row            `json:"rows"`
	Description    string           `json:"description,omitempty"`
	Money          int              `json:"money"`
	UsedSpace      int              `json:"used_space"`
	TotalSpace     int              `json:"total_space"`
	Player         catalog.UserType `json:"player"`
	Closed         bool             `json:"closed"`
}

// SelectedRow returns the highlighted row, if any.
func (s Snapshot) SelectedRow() (Row, bool) {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Rows) {
		return Row{}, false
	}
	return s.Rows[s.SelectedIndex], true
}

// NopObserver ignores every update.
type NopObserver struct{}

func (NopObserver) OnStateChanged(Snapshot)    {}
func (NopObserver) OnTransactionResult(Result) {}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	StateChanged      func(Snapshot)
	TransactionResult func(Result)
}

func (o ObserverFuncs) OnStateChanged(s Snapshot) {
	if o.StateChanged != nil {
		o.StateChanged(s)
	}
}

func (o ObserverFuncs) OnTransactionResult(r Result) {
	if o.TransactionResult != nil {
		o.TransactionResult(r)
	}
}

// MultiObserver fans updates out in order.
type MultiObserver []Observer

func (m MultiObserver) OnStateChanged(s Snapshot) {
	for _, o := range m {
		if o != nil {
			o.OnStateChanged(s)
		}
	}
}

func (m MultiObserver) OnTransactionResult(r Result) {
	for _, o := range m {
		if o != nil {
			o.OnTransactionResult(r)
		}
	}
}
