package postgres

import (
	"database/sql"
	"time"
)

type fixtureTableModel struct {
	ID              int64         `db:"fixture_id"`
	StageRoundID    int64         `db:"stage_round_id"`
	GroupID         sql.NullInt64 `db:"group_id"`
	HomeTeamID      int64         `db:"home_team_id"`
	AwayTeamID      int64         `db:"away_team_id"`
	KickoffUTC      time.Time     `db:"kickoff_utc"`
	StadiumID       sql.NullInt64 `db:"stadium_id"`
	Attendance      sql.NullInt64 `db:"attendance"`
	Status          string        `db:"fixture_status"`
	HTHomeScore     sql.NullInt64 `db:"ht_home_score"`
	HTAwayScore     sql.NullInt64 `db:"ht_away_score"`
	FTHomeScore     sql.NullInt64 `db:"ft_home_score"`
	FTAwayScore     sql.NullInt64 `db:"ft_away_score"`
	ETHomeScore     sql.NullInt64 `db:"et_home_score"`
	ETAwayScore     sql.NullInt64 `db:"et_away_score"`
	PenHomeScore    sql.NullInt64 `db:"pen_home_score"`
	PenAwayScore    sql.NullInt64 `db:"pen_away_score"`
	WentToExtraTime bool          `db:"went_to_extra_time"`
	WentToPenalties bool          `db:"went_to_penalties"`
	HomeScore       int           `db:"home_score"`
	AwayScore       int           `db:"away_score"`
	WinnerTeamID    sql.NullInt64 `db:"winner_team_id"`
}

var fixtureColumns = []string{
	"fixture_id", "stage_round_id", "group_id", "home_team_id", "away_team_id", "kickoff_utc",
	"stadium_id", "attendance", "fixture_status",
	"ht_home_score", "ht_away_score", "ft_home_score", "ft_away_score",
	"et_home_score", "et_away_score", "pen_home_score", "pen_away_score",
	"went_to_extra_time", "went_to_penalties", "home_score", "away_score", "winner_team_id",
}

type fixtureInsertModel struct {
	StageRoundID    int64     `db:"stage_round_id"`
	GroupID         *int64    `db:"group_id"`
	HomeTeamID      int64     `db:"home_team_id"`
	AwayTeamID      int64     `db:"away_team_id"`
	KickoffUTC      time.Time `db:"kickoff_utc"`
	StadiumID       *int64    `db:"stadium_id"`
	Attendance      *int      `db:"attendance"`
	Status          string    `db:"fixture_status"`
	HTHomeScore     *int      `db:"ht_home_score"`
	HTAwayScore     *int      `db:"ht_away_score"`
	FTHomeScore     *int      `db:"ft_home_score"`
	FTAwayScore     *int      `db:"ft_away_score"`
	ETHomeScore     *int      `db:"et_home_score"`
	ETAwayScore     *int      `db:"et_away_score"`
	PenHomeScore    *int      `db:"pen_home_score"`
	PenAwayScore    *int      `db:"pen_away_score"`
	WentToExtraTime bool      `db:"went_to_extra_time"`
	WentToPenalties bool      `db:"went_to_penalties"`
	HomeScore       int       `db:"home_score"`
	AwayScore       int       `db:"away_score"`
	WinnerTeamID    *int64    `db:"winner_team_id"`
}
