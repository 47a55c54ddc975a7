package association

import "strings"

// Level is the hierarchy layer an association occupies. It is descriptive only: parent links
// are not checked against it.
type Level string

const (
	LevelFederation       Level = "federation"
	LevelConfederation    Level = "confederation"
	LevelSubConfederation Level = "sub_confederation"
	LevelAssociation      Level = "association"
	LevelLeagueBody       Level = "league_body"
)

var levels = map[Level]struct{}{
	LevelFederation:       {},
	LevelConfederation:    {},
	LevelSubConfederation: {},
	LevelAssociation:      {},
	LevelLeagueBody:       {},
}

// ParseLevel lowercases raw and turns hyphens and spaces into underscores before checking it
// against the known levels.
func ParseLevel(raw string) (Level, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	v = strings.NewReplacer("-", "_", " ", "_").Replace(v)
	level := Level(v)
	_, ok := levels[level]
	return level, ok
}

// Association is a governing body: FIFA, a confederation, a national FA or a league body.
type Association struct {
	ID           int64
	Code         string
	Name         string
	Level        Level
	FoundedYear  *int
	LogoFilename *string
}
