package person

import (
	"strings"
	"time"
)

// Person is the identity shared by players, coaches and officials.
type Person struct {
	ID              int64
	FullName        string
	FirstName       *string
	LastName        *string
	KnownAs         *string
	BirthDate       *time.Time
	BirthPlace      *string
	CountryID       *int64
	SecondCountryID *int64
	Gender          *string
	HeightCM        *int
	WeightKG        *int
	PhotoURL        *string
}

// DisplayName builds a full name from first/last when full is blank.
func DisplayName(full, first, last string) string {
	if v := strings.TrimSpace(full); v != "" {
		return v
	}
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

type Player struct {
	PersonID int64
	Position *string
	Active   bool
}

type Coach struct {
	PersonID    int64
	RoleDefault *string
	Active      bool
}

type Official struct {
	PersonID      int64
	AssociationID *int64
	Roles         *string
	Active        bool
}
