package shop

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jwebster45206/shop-engine/pkg/catalog"
)

const (
	MinQuantity = 1
	MaxQuantity = 99
)

// Tab selects which catalog the session is browsing.
type Tab int

const (
	TabItems Tab = iota
	TabEquipment
)

func (t Tab) String() string {
	if t == TabEquipment {
		return string(catalog.KindEquipment)
	}
	return string(catalog.KindItems)
}

func (t Tab) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Config wires a session to its content and collaborators. It is
// assembled once at startup.
type Config struct {
	Items     *catalog.Catalog
	Equipment *catalog.Catalog
	Ledger    *Ledger
	Observer  Observer
	Logger    *slog.Logger
	Mode      Mode // Initial buy/sell mode
}

// Session is the transient state of one visit to the shop: active tab,
// cursor, pending quantity and mode. All methods run on the caller's
// goroutine; a session is not safe for concurrent use.
type Session struct {
	ID uuid.UUID

	items     *catalog.Catalog
	equipment *catalog.Catalog
	ledger    *Ledger
	observer  Observer
	logger    *slog.Logger

	tab      Tab
	mode     Mode
	selected int
	quantity int
	closed   bool
}

// NewSession opens a shop visit. Both catalogs are copied so stock changes
// stay inside this session, and every entry starts at its initial stock.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Items == nil || cfg.Equipment == nil {
		return nil, errors.New("both item and equipment catalogs are required")
	}
	if cfg.Ledger == nil {
		return nil, errors.New("ledger is required")
	}

	s := &Session{
		ID:        uuid.New(),
		items:     cfg.Items.Clone(),
		equipment: cfg.Equipment.Clone(),
		ledger:    cfg.Ledger,
		observer:  cfg.Observer,
		logger:    cfg.Logger,
		mode:      cfg.Mode,
	}
	if s.observer == nil {
		s.observer = NopObserver{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("session_id", s.ID.String())

	s.ResetStock()
	s.tab = TabItems
	s.selectEntry(0)

	s.logger.Info("Shop session opened",
		"items", s.items.Len(),
		"equipment", s.equipment.Len(),
		"money", s.ledger.Money(),
		"mode", s.mode.String())
	s.notify()
	return s, nil
}

// ResetStock restores every entry in both catalogs to its initial stock.
func (s *Session) ResetStock() {
	s.items.ResetStock()
	s.equipment.ResetStock()
}

func (s *Session) active() *catalog.Catalog {
	if s.tab == TabEquipment {
		return s.equipment
	}
	return s.items
}

// Catalog returns the session's copy of the catalog behind a tab.
func (s *Session) Catalog(t Tab) *catalog.Catalog {
	if t == TabEquipment {
		return s.equipment
	}
	return s.items
}

func (s *Session) Ledger() *Ledger {
	return s.ledger
}

func (s *Session) Tab() Tab {
	return s.tab
}

func (s *Session) Mode() Mode {
	return s.mode
}

func (s *Session) SelectedIndex() int {
	return s.selected
}

func (s *Session) Quantity() int {
	return s.quantity
}

func (s *Session) Closed() bool {
	return s.closed
}

// Selected returns the highlighted entry, or nil when the active list is empty.
func (s *Session) Selected() *catalog.Entry {
	c := s.active()
	if s.selected >= c.WindowLen() {
		return nil
	}
	return c.At(s.selected)
}

// QuantityLocked reports whether the pending quantity is pinned at zero
// because the selected entry is restricted.
func (s *Session) QuantityLocked() bool {
	e := s.Selected()
	return e == nil || !e.Purchasable
}

func (s *Session) selectEntry(i int) {
	s.selected = i
	if s.QuantityLocked() {
		s.quantity = 0
		return
	}
	s.quantity = MinQuantity
}

// NavigateUp moves the cursor up one slot. Short lists wrap around; lists
// longer than a window rotate once the cursor reaches the top slot.
func (s *Session) NavigateUp() {
	c := s.active()
	if s.closed || c.Len() == 0 {
		return
	}

	next := s.selected - 1
	if s.selected == 0 {
		if c.Paged() {
			c.Rotate(catalog.Backward)
			next = 0
		} else {
			next = c.Len() - 1
		}
	}
	s.selectEntry(next)
	s.notify()
}

// NavigateDown moves the cursor down one slot. Short lists wrap around; lists
// longer than a window rotate once the cursor reaches the bottom slot.
func (s *Session) NavigateDown() {
	c := s.active()
	if s.closed || c.Len() == 0 {
		return
	}

	next := s.selected + 1
	if s.selected == c.WindowLen()-1 {
		if c.Paged() {
			c.Rotate(catalog.Forward)
			next = catalog.WindowSize - 1
		} else {
			next = 0
		}
	}
	s.selectEntry(next)
	s.notify()
}

// AdjustAmount changes the pending quantity by delta, wrapping around the
// 1..99 range. Restricted entries keep a quantity of zero.
func (s *Session) AdjustAmount(delta int) {
	if s.closed || s.QuantityLocked() {
		return
	}

	span := MaxQuantity - MinQuantity + 1
	q := (s.quantity - MinQuantity + delta%span) % span
	if q < 0 {
		q += span
	}
	s.quantity = q + MinQuantity
	s.notify()
}

// SwitchTab shows the other catalog with the cursor on its first entry.
func (s *Session) SwitchTab(t Tab) {
	if s.closed {
		return
	}
	if t != TabEquipment {
		t = TabItems
	}
	s.tab = t
	s.selectEntry(0)
	s.notify()
}

// SetMode picks whether confirm buys or sells.
func (s *Session) SetMode(m Mode) {
	if s.closed {
		return
	}
	if m != Sell {
		m = Buy
	}
	s.mode = m
	s.notify()
}

// SetPlayer switches the shopping character and refreshes observers.
func (s *Session) SetPlayer(u catalog.UserType) {
	if s.closed {
		return
	}
	s.ledger.SetPlayer(u)
	s.notify()
}

// Confirm buys or sells the pending quantity of the selected entry. Every
// outcome is reported to the observer; rejections leave all state untouched.
func (s *Session) Confirm() (Result, error) {
	if s.closed {
		r := Result{SessionID: s.ID, Kind: SessionClosed, Mode: s.mode, Message: Message(SessionClosed, s.mode, "", 0)}
		return r, ErrSessionClosed
	}

	e := s.Selected()
	var (
		rc  Receipt
		err error
	)
	switch s.mode {
	case Sell:
		rc, err = SellEntry(e, s.ledger, s.quantity)
	default:
		rc, err = BuyEntry(e, s.ledger, s.quantity, s.tab == TabEquipment)
	}

	r := Result{
		SessionID: s.ID,
		Kind:      KindOf(err),
		Mode:      s.mode,
		Quantity:  s.quantity,
	}
	if e != nil {
		r.EntryID = e.ID
		r.Name = e.Name
	}
	r.Message = Message(r.Kind, r.Mode, r.Name, r.Quantity)

	if err != nil {
		s.logger.Debug("Transaction rejected",
			"mode", r.Mode.String(),
			"entry", r.EntryID,
			"quantity", r.Quantity,
			"kind", r.Kind.String())
	} else {
		r.Receipt = &rc
		s.logger.Info("Transaction completed",
			"mode", r.Mode.String(),
			"entry", r.EntryID,
			"quantity", r.Quantity,
			"total", rc.Total,
			"money", rc.MoneyAfter)
	}

	s.observer.OnTransactionResult(r)
	s.notify()
	return r, err
}

// Cancel closes the session. Further actions are ignored.
func (s *Session) Cancel() {
	if s.closed {
		return
	}
	s.closed = true
	s.logger.Info("Shop session closed", "money", s.ledger.Money(), "used_space", s.ledger.UsedSpace())
	s.notify()
}

// Snapshot captures the state a presentation layer needs to draw the shop.
func (s *Session) Snapshot() Snapshot {
	c := s.active()
	window := c.Window()

	snap := Snapshot{
		SessionID:      s.ID,
		Tab:            s.tab,
		Mode:           s.mode,
		SelectedIndex:  s.selected,
		Quantity:       s.quantity,
		QuantityLocked: s.QuantityLocked(),
		Rows:           make([]Row, len(window)),
		Money:          s.ledger.Money(),
		UsedSpace:      s.ledger.UsedSpace(),
		TotalSpace:     s.ledger.TotalSpace(),
		Player:         s.ledger.Player(),
		Closed:         s.closed,
	}
	for i, e := range window {
		snap.Rows[i] = Row{
			ID:          e.ID,
			Name:        e.Name,
			PriceLabel:  e.PriceLabel(),
			SellPrice:   e.SellPrice,
			Stock:       e.Stock,
			Owned:       s.ledger.Owned(e.ID),
			Purchasable: e.Purchasable,
			Selected:    i == s.selected,
		}
	}
	if e := s.Selected(); e != nil {
		snap.Description = e.Description
	}
	return snap
}

func (s *Session) notify() {
	s.observer.OnStateChanged(s.Snapshot())
}
