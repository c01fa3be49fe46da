package party

import (
	"errors"
	"fmt"

	"github.com/jwebster45206/shop-engine/pkg/catalog"
)

// Roster is the ordered party with one active member doing the shopping.
type Roster struct {
	members []*Member
	active  int
}

// NewRoster builds a roster. Each user type may appear at most once.
func NewRoster(specs []*MemberSpec) (*Roster, error) {
	if len(specs) == 0 {
		return nil, errors.New("roster needs at least one member")
	}

	r := &Roster{}
	seen := make(map[catalog.UserType]bool)
	for _, spec := range specs {
		m, err := NewMember(spec)
		if err != nil {
			return nil, err
		}
		if seen[m.UserType()] {
			return nil, fmt.Errorf("user type %s appears more than once", m.UserType())
		}
		seen[m.UserType()] = true
		r.members = append(r.members, m)
	}
	return r, nil
}

// DefaultSpecs is the starting party used when no content is provided.
func DefaultSpecs() []*MemberSpec {
	return []*MemberSpec{
		{
			ID: "randi", Name: "Randi", UserType: catalog.Randi, Class: "Fighter",
			Stats: Stats{Strength: 16, Dexterity: 12, Constitution: 15, Intelligence: 9, Wisdom: 10, Charisma: 11},
			MaxHP: 14, AC: 15,
		},
		{
			ID: "purim", Name: "Purim", UserType: catalog.Purim, Class: "Cleric",
			Stats: Stats{Strength: 10, Dexterity: 13, Constitution: 12, Intelligence: 12, Wisdom: 16, Charisma: 14},
			MaxHP: 10, AC: 13,
		},
		{
			ID: "popoi", Name: "Popoi", UserType: catalog.Popoi, Class: "Sprite",
			Stats: Stats{Strength: 8, Dexterity: 16, Constitution: 10, Intelligence: 16, Wisdom: 12, Charisma: 13},
			MaxHP: 8, AC: 12,
		},
	}
}

// Members returns the party in order.
func (r *Roster) Members() []*Member {
	return append([]*Member(nil), r.members...)
}

// Active is the member currently shopping.
func (r *Roster) Active() *Member {
	return r.members[r.active]
}

// Next makes the following member active, wrapping at the end.
func (r *Roster) Next() *Member {
	r.active = (r.active + 1) % len(r.members)
	return r.Active()
}

// Select makes the member with the given user type active.
func (r *Roster) Select(u catalog.UserType) (*Member, error) {
	for i, m := range r.members {
		if m.UserType() == u {
			r.active = i
			return m, nil
		}
	}
	return nil, fmt.Errorf("no party member for %s", u)
}
