package party

import (
	"errors"
	"fmt"
	"maps"

	"github.com/jwebster45206/d20"
	"github.com/jwebster45206/shop-engine/pkg/catalog"
)

// Stats holds the six core ability scores.
type Stats struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// ToAttributes converts Stats to a map for d20.Actor compatibility
func (s *Stats) ToAttributes() map[string]int {
	return map[string]int{
		"strength":     s.Strength,
		"dexterity":    s.Dexterity,
		"constitution": s.Constitution,
		"intelligence": s.Intelligence,
		"wisdom":       s.Wisdom,
		"charisma":     s.Charisma,
	}
}

// MemberSpec is the serializable description of a party member.
type MemberSpec struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	UserType    catalog.UserType `json:"user_type"`          // Gates which equipment the member can buy
	Class       string           `json:"class,omitempty"`    // e.g. "Fighter", "Sprite"
	Description string           `json:"description,omitempty"`
	Stats       Stats            `json:"stats"`
	HP          int              `json:"hp,omitempty"`
	MaxHP       int              `json:"max_hp"`
	AC          int              `json:"ac"`
	Attributes  map[string]int   `json:"attributes,omitempty"` // Skills and other extras
}

// Member is the runtime form of a party member.
type Member struct {
	Spec  *MemberSpec
	Actor *d20.Actor // Built at runtime from Spec
}

// NewMember builds a member and its d20.Actor from a spec.
func NewMember(spec *MemberSpec) (*Member, error) {
	if spec == nil {
		return nil, errors.New("spec cannot be nil")
	}
	if spec.ID == "" {
		return nil, errors.New("member id is required")
	}
	if !spec.UserType.Valid() {
		return nil, fmt.Errorf("member %s has unknown user type", spec.ID)
	}

	attrs := spec.Stats.ToAttributes()
	maps.Copy(attrs, spec.Attributes)

	actor, err := d20.NewActor(spec.ID).
		WithHP(spec.MaxHP).
		WithAC(spec.AC).
		WithAttributes(attrs).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor for %s: %w", spec.ID, err)
	}

	if spec.HP != spec.MaxHP && spec.HP > 0 {
		if err := actor.SetHP(spec.HP); err != nil {
			return nil, fmt.Errorf("failed to set HP for %s: %w", spec.ID, err)
		}
	}

	return &Member{Spec: spec, Actor: actor}, nil
}

func (m *Member) UserType() catalog.UserType {
	return m.Spec.UserType
}

// DisplayName falls back to the ID when no name is set.
func (m *Member) DisplayName() string {
	if m.Spec.Name != "" {
		return m.Spec.Name
	}
	return m.Spec.ID
}

// Attribute reads an ability score or skill from the actor.
func (m *Member) Attribute(key string) int {
	if v, ok := m.Actor.Attribute(key); ok {
		return v
	}
	return 0
}
