package stage

import "strings"

type Format string

const (
	FormatLeague        Format = "league"
	FormatGroups        Format = "groups"
	FormatKnockout      Format = "knockout"
	FormatQualification Format = "qualification"
	FormatPlayoffs      Format = "playoffs"
)

// ParseFormat returns the known format named by raw, or league for anything else.
func ParseFormat(raw string) Format {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatLeague, FormatGroups, FormatKnockout, FormatQualification, FormatPlayoffs:
		return f
	default:
		return FormatLeague
	}
}

const DefaultOrder = 1

type Stage struct {
	ID       int64
	SeasonID int64
	Name     string
	Order    int
	Format   Format
}

type Round struct {
	ID      int64
	StageID int64
	Name    string
	Order   int
	TwoLegs bool
}

type Group struct {
	ID      int64
	StageID int64
	Name    string
	Code    *string
}

type GroupTeam struct {
	GroupID int64
	TeamID  int64
}
