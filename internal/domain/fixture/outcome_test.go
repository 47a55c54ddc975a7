package fixture

import "testing"

func TestDecideOutcome(t *testing.T) {
	t.Parallel()

	i := func(v int) *int { return &v }
	b := func(v bool) *bool { return &v }

	tests := []struct {
		name   string
		scores Scores
		want   Outcome
	}{
		{
			name:   "extra time overrides full time",
			scores: Scores{ETHome: i(2), ETAway: i(1), FTHome: i(1), FTAway: i(1)},
			want:   Outcome{HomeScore: 2, AwayScore: 1, Status: StatusPlayed, WentToExtraTime: true, Winner: SideHome},
		},
		{
			name:   "full time only marks played",
			scores: Scores{FTHome: i(3), FTAway: i(0)},
			want:   Outcome{HomeScore: 3, AwayScore: 0, Status: StatusPlayed, Winner: SideHome},
		},
		{
			name:   "penalties decide a level match",
			scores: Scores{FTHome: i(1), FTAway: i(1), WentToPenalties: b(true), PenHome: i(5), PenAway: i(4)},
			want:   Outcome{HomeScore: 1, AwayScore: 1, Status: StatusPlayed, WentToPenalties: true, Winner: SideHome},
		},
		{
			name:   "away win on final score",
			scores: Scores{Home: i(0), Away: i(2)},
			want:   Outcome{HomeScore: 0, AwayScore: 2, Status: StatusPlayed, Winner: SideAway},
		},
		{
			name:   "draw without penalties has no winner",
			scores: Scores{FTHome: i(1), FTAway: i(1)},
			want:   Outcome{HomeScore: 1, AwayScore: 1, Status: StatusPlayed, Winner: SideNone},
		},
		{
			name:   "half pair is ignored",
			scores: Scores{ETHome: i(2), FTHome: i(1), FTAway: i(0)},
			want:   Outcome{HomeScore: 1, AwayScore: 0, Status: StatusPlayed, WentToExtraTime: true, Winner: SideHome},
		},
		{
			name:   "no scores keeps scheduled 0-0",
			scores: Scores{},
			want:   Outcome{Status: StatusScheduled},
		},
		{
			name:   "explicit status is kept",
			scores: Scores{FTHome: i(2), FTAway: i(2), Status: "Abandoned"},
			want:   Outcome{HomeScore: 2, AwayScore: 2, Status: "abandoned"},
		},
		{
			name:   "explicit flags win over presence",
			scores: Scores{FTHome: i(1), FTAway: i(1), PenHome: i(3), PenAway: i(2), WentToPenalties: b(false), WentToExtraTime: b(true)},
			want:   Outcome{HomeScore: 1, AwayScore: 1, Status: StatusPlayed, WentToExtraTime: true},
		},
		{
			name:   "level shootout falls back to final score",
			scores: Scores{ETHome: i(2), ETAway: i(1), PenHome: i(4), PenAway: i(4)},
			want:   Outcome{HomeScore: 2, AwayScore: 1, Status: StatusPlayed, WentToExtraTime: true, WentToPenalties: true, Winner: SideHome},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := DecideOutcome(tc.scores)
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestOutcome_WinnerID(t *testing.T) {
	t.Parallel()

	if id := (Outcome{Winner: SideHome}).WinnerID(10, 20); id == nil || *id != 10 {
		t.Fatalf("expected home id 10, got %v", id)
	}
	if id := (Outcome{Winner: SideAway}).WinnerID(10, 20); id == nil || *id != 20 {
		t.Fatalf("expected away id 20, got %v", id)
	}
	if id := (Outcome{}).WinnerID(10, 20); id != nil {
		t.Fatalf("expected no winner, got %d", *id)
	}
}
