package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UserType identifies one of the three playable characters.
type UserType int

const (
	Randi UserType = iota
	Purim
	Popoi
)

var userTypeNames = map[UserType]string{
	Randi: "randi",
	Purim: "purim",
	Popoi: "popoi",
}

// AllUserTypes returns every user type in party order.
func AllUserTypes() []UserType {
	return []UserType{Randi, Purim, Popoi}
}

func (u UserType) String() string {
	if name, ok := userTypeNames[u]; ok {
		return name
	}
	return fmt.Sprintf("usertype(%d)", int(u))
}

// Valid reports whether u is one of the known characters.
func (u UserType) Valid() bool {
	_, ok := userTypeNames[u]
	return ok
}

// ParseUserType converts a case-insensitive name into a UserType.
func ParseUserType(s string) (UserType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for u, n := range userTypeNames {
		if n == name {
			return u, nil
		}
	}
	return 0, fmt.Errorf("unknown user type: %q", s)
}

func (u UserType) MarshalJSON() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("cannot marshal unknown user type %d", int(u))
	}
	return json.Marshal(u.String())
}

func (u *UserType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("user type must be a string: %w", err)
	}
	parsed, err := ParseUserType(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
