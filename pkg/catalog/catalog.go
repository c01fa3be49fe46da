package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// WindowSize is the number of entries visible at once on the shop screen.
const WindowSize = 6

// MaxPrice is the highest buy or sell price a catalog may carry.
const MaxPrice = 999_999

// Kind is the shop tab a catalog belongs to.
type Kind string

const (
	KindItems     Kind = "items"
	KindEquipment Kind = "equipment"
)

// Direction selects which way a catalog rotates.
type Direction int

const (
	Forward  Direction = iota // first entry moves to the end
	Backward                  // last entry moves to the front
)

// Catalog is an ordered list of entries for one shop tab.
type Catalog struct {
	Name    string   `json:"name"`
	Kind    Kind     `json:"kind"`
	Entries []*Entry `json:"entries"`
}

func (c *Catalog) Len() int {
	return len(c.Entries)
}

// At returns the entry at position i, or nil when i is out of range.
func (c *Catalog) At(i int) *Entry {
	if i < 0 || i >= len(c.Entries) {
		return nil
	}
	return c.Entries[i]
}

// Paged reports whether the catalog is longer than one window and
// therefore pages by rotation.
func (c *Catalog) Paged() bool {
	return len(c.Entries) > WindowSize
}

// WindowLen is the number of visible slots actually filled.
func (c *Catalog) WindowLen() int {
	return min(WindowSize, len(c.Entries))
}

// Window returns the currently visible entries.
func (c *Catalog) Window() []*Entry {
	return c.Entries[:c.WindowLen()]
}

// Rotate shifts the entry order by one. Catalogs that fit in a single
// window never rotate.
func (c *Catalog) Rotate(dir Direction) {
	if !c.Paged() {
		return
	}
	n := len(c.Entries)
	switch dir {
	case Forward:
		first := c.Entries[0]
		copy(c.Entries, c.Entries[1:])
		c.Entries[n-1] = first
	case Backward:
		last := c.Entries[n-1]
		copy(c.Entries[1:], c.Entries[:n-1])
		c.Entries[0] = last
	}
}

// ResetStock restores every entry to its initial stock.
func (c *Catalog) ResetStock() {
	for _, e := range c.Entries {
		e.ResetStock()
	}
}

// Clone deep-copies the catalog so a session can mutate stock and order
// without touching the loaded content.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{
		Name:    c.Name,
		Kind:    c.Kind,
		Entries: make([]*Entry, len(c.Entries)),
	}
	for i, e := range c.Entries {
		out.Entries[i] = e.Clone()
	}
	return out
}

// Validate checks the catalog content and returns every problem found.
func (c *Catalog) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("catalog name is required"))
	}
	if c.Kind != KindItems && c.Kind != KindEquipment {
		errs = append(errs, fmt.Errorf("catalog kind must be %q or %q, got %q", KindItems, KindEquipment, c.Kind))
	}

	seen := make(map[string]bool, len(c.Entries))
	for i, e := range c.Entries {
		if e == nil {
			errs = append(errs, fmt.Errorf("entry %d is null", i))
			continue
		}
		if e.ID == "" {
			errs = append(errs, fmt.Errorf("entry %d: id is required", i))
		} else if seen[e.ID] {
			errs = append(errs, fmt.Errorf("entry %d: duplicate id %q", i, e.ID))
		}
		seen[e.ID] = true
		if e.Name == "" {
			errs = append(errs, fmt.Errorf("entry %q: name is required", e.ID))
		}
		if e.BuyPrice < 0 || e.SellPrice < 0 {
			errs = append(errs, fmt.Errorf("entry %q: prices must be non-negative", e.ID))
		}
		if e.BuyPrice > MaxPrice || e.SellPrice > MaxPrice {
			errs = append(errs, fmt.Errorf("entry %q: prices cannot exceed %d", e.ID, MaxPrice))
		}
		if e.Stock < 0 {
			errs = append(errs, fmt.Errorf("entry %q: stock must be non-negative", e.ID))
		}
		for _, u := range e.AllowedUsers {
			if !u.Valid() {
				errs = append(errs, fmt.Errorf("entry %q: unknown allowed user %d", e.ID, int(u)))
			}
		}
	}
	return errors.Join(errs...)
}

// Decode parses catalog JSON. Unknown fields are rejected when strict is set.
func Decode(data []byte, strict bool) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if strict {
		dec.DisallowUnknownFields()
	}
	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return &c, nil
}
