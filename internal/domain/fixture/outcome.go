package fixture

// Side names which team of a fixture something belongs to.
type Side int

const (
	SideNone Side = iota
	SideHome
	SideAway
)

// Scores carries every optional score cell and flag of a fixture row.
type Scores struct {
	HTHome, HTAway   *int
	FTHome, FTAway   *int
	ETHome, ETAway   *int
	PenHome, PenAway *int
	Home, Away       *int

	WentToExtraTime *bool
	WentToPenalties *bool
	Status          string
}

// Outcome is the derived result of a fixture.
type Outcome struct {
	HomeScore       int
	AwayScore       int
	Status          string
	WentToExtraTime bool
	WentToPenalties bool
	Winner          Side
}

// DecideOutcome derives final score, status, extra time and penalty flags, and winner.
//
// The final score is the first complete pair among extra time, full time and the plain
// home/away cells, else 0-0. A scheduled fixture with any complete pair becomes played.
// Unset flags follow the presence of extra time or penalty cells. Penalties decide the winner
// when taken and not level; otherwise an unequal final score does; otherwise there is none.
func DecideOutcome(s Scores) Outcome {
	out := Outcome{Status: NormalizeStatus(s.Status)}

	scored := false
	switch {
	case pair(s.ETHome, s.ETAway):
		out.HomeScore, out.AwayScore, scored = *s.ETHome, *s.ETAway, true
	case pair(s.FTHome, s.FTAway):
		out.HomeScore, out.AwayScore, scored = *s.FTHome, *s.FTAway, true
	case pair(s.Home, s.Away):
		out.HomeScore, out.AwayScore, scored = *s.Home, *s.Away, true
	}
	if scored && out.Status == StatusScheduled {
		out.Status = StatusPlayed
	}

	if s.WentToExtraTime != nil {
		out.WentToExtraTime = *s.WentToExtraTime
	} else {
		out.WentToExtraTime = s.ETHome != nil || s.ETAway != nil
	}
	if s.WentToPenalties != nil {
		out.WentToPenalties = *s.WentToPenalties
	} else {
		out.WentToPenalties = s.PenHome != nil || s.PenAway != nil
	}

	switch {
	case out.WentToPenalties && pair(s.PenHome, s.PenAway) && *s.PenHome != *s.PenAway:
		out.Winner = sideOf(*s.PenHome > *s.PenAway)
	case scored && out.HomeScore != out.AwayScore:
		out.Winner = sideOf(out.HomeScore > out.AwayScore)
	}
	return out
}

// WinnerID maps a side onto the fixture's team ids.
func (o Outcome) WinnerID(homeTeamID, awayTeamID int64) *int64 {
	switch o.Winner {
	case SideHome:
		return &homeTeamID
	case SideAway:
		return &awayTeamID
	default:
		return nil
	}
}

func pair(home, away *int) bool {
	return home != nil && away != nil
}

func sideOf(home bool) Side {
	if home {
		return SideHome
	}
	return SideAway
}
