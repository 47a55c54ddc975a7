package fixture

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "scheduled"
	StatusPlayed    = "played"
)

// NormalizeStatus lowercases the status, defaulting blank to scheduled.
func NormalizeStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

// Fixture represents one match between two teams in a stage round.
type Fixture struct {
	ID              int64
	StageRoundID    int64
	GroupID         *int64
	HomeTeamID      int64
	AwayTeamID      int64
	KickoffUTC      time.Time
	StadiumID       *int64
	Attendance      *int
	Status          string
	HTHomeScore     *int
	HTAwayScore     *int
	FTHomeScore     *int
	FTAwayScore     *int
	ETHomeScore     *int
	ETAwayScore     *int
	PenHomeScore    *int
	PenAwayScore    *int
	WentToExtraTime bool
	WentToPenalties bool
	HomeScore       int
	AwayScore       int
	WinnerTeamID    *int64
}

// Key is the natural identity of a fixture.
type Key struct {
	StageRoundID int64
	HomeTeamID   int64
	AwayTeamID   int64
	KickoffUTC   time.Time
}

func (f Fixture) Key() Key {
	return Key{
		StageRoundID: f.StageRoundID,
		HomeTeamID:   f.HomeTeamID,
		AwayTeamID:   f.AwayTeamID,
		KickoffUTC:   f.KickoffUTC.UTC(),
	}
}
