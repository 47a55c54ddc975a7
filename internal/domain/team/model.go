package team

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeClub     Type = "club"
	TypeNational Type = "national"
)

func ParseType(raw string) (Type, bool) {
	switch Type(strings.ToLower(strings.TrimSpace(raw))) {
	case TypeClub:
		return TypeClub, true
	case TypeNational:
		return TypeNational, true
	default:
		return "", false
	}
}

// Default descriptors of the team created for a club that has none.
const (
	DefaultClubGender     = "men"
	DefaultClubAgeGroup   = "senior"
	DefaultClubSquadLevel = "first"
)

// Team is a side that plays fixtures. A club team hangs off exactly one club, a national
// team off exactly one country.
type Team struct {
	ID                int64
	Name              string
	Type              Type
	ClubID            *int64
	NationalCountryID *int64
	Gender            *string
	AgeGroup          *string
	SquadLevel        *string
	LogoFilename      *string
}

// Validate enforces the club/national attachment rule.
func (t Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	switch t.Type {
	case TypeClub:
		if t.ClubID == nil || t.NationalCountryID != nil {
			return fmt.Errorf("club team needs a club and no national country")
		}
	case TypeNational:
		if t.NationalCountryID == nil || t.ClubID != nil {
			return fmt.Errorf("national team needs a national country and no club")
		}
	default:
		return fmt.Errorf("unknown team type %q", t.Type)
	}
	return nil
}
