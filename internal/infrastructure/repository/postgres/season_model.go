package postgres

import "database/sql"

type seasonTableModel struct {
	ID            int64        `db:"season_id"`
	CompetitionID int64        `db:"competition_id"`
	Name          string       `db:"name"`
	StartDate     sql.NullTime `db:"start_date"`
	EndDate       sql.NullTime `db:"end_date"`
}

type pointsRuleTableModel struct {
	Win  int `db:"points_win"`
	Draw int `db:"points_draw"`
	Loss int `db:"points_loss"`
}

type roundTableModel struct {
	ID      int64  `db:"stage_round_id"`
	StageID int64  `db:"stage_id"`
	Name    string `db:"name"`
	Order   int    `db:"stage_round_order"`
	TwoLegs bool   `db:"two_legs"`
}
