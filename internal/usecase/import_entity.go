package usecase

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// EntityKind is the closed set of entities a CSV file can hold.
type EntityKind string

const (
	EntityAssociation            EntityKind = "association"
	EntityCountry                EntityKind = "country"
	EntityStadium                EntityKind = "stadium"
	EntityCompetition            EntityKind = "competition"
	EntityClub                   EntityKind = "club"
	EntityTeam                   EntityKind = "team"
	EntityPerson                 EntityKind = "person"
	EntityPlayer                 EntityKind = "player"
	EntityCoach                  EntityKind = "coach"
	EntityOfficial               EntityKind = "official"
	EntitySeason                 EntityKind = "season"
	EntityLeaguePointsAdjustment EntityKind = "league_points_adjustment"
	EntityLeagueTableSnapshot    EntityKind = "league_table_snapshot"
	EntityStage                  EntityKind = "stage"
	EntityStageRound             EntityKind = "stage_round"
	EntityStageGroup             EntityKind = "stage_group"
	EntityStageGroupTeam         EntityKind = "stage_group_team"
	EntityFixture                EntityKind = "fixture"
	EntityLineup                 EntityKind = "lineup"
	EntityAppearance             EntityKind = "appearance"
	EntitySubstitution           EntityKind = "substitution"
	EntityEvent                  EntityKind = "event"
	EntityTeamMatchStats         EntityKind = "team_match_stats"
	EntityPlayerMatchStats       EntityKind = "player_match_stats"
	EntityTableStandings         EntityKind = "table_standings"
)

type entityInfo struct {
	phase   int
	aliases []string
}

// entityCatalog holds the import phase of every kind; lower phases load first.
var entityCatalog = map[EntityKind]entityInfo{
	EntityAssociation: {phase: 10, aliases: []string{"associations"}},
	EntityCountry:     {phase: 20, aliases: []string{"countries"}},
	EntityStadium:     {phase: 30, aliases: []string{"stadiums", "stadia", "venue", "venues"}},
	EntityCompetition: {phase: 40, aliases: []string{"competitions"}},
	EntityClub:        {phase: 50, aliases: []string{"clubs"}},
	EntityTeam:        {phase: 60, aliases: []string{"teams"}},

	EntityPerson:   {phase: 70, aliases: []string{"persons", "people"}},
	EntityPlayer:   {phase: 80, aliases: []string{"players"}},
	EntityCoach:    {phase: 85, aliases: []string{"coaches"}},
	EntityOfficial: {phase: 90, aliases: []string{"officials", "referees"}},

	EntitySeason:                 {phase: 100, aliases: []string{"seasons"}},
	EntityLeaguePointsAdjustment: {phase: 110, aliases: []string{"league_points_adjustments", "points_adjustments"}},
	EntityLeagueTableSnapshot:    {phase: 120, aliases: []string{"league_table_snapshots"}},
	EntityStage:                  {phase: 130, aliases: []string{"stages"}},
	EntityStageRound:             {phase: 140, aliases: []string{"stage_rounds", "round", "rounds"}},
	EntityStageGroup:             {phase: 150, aliases: []string{"stage_groups", "group", "groups"}},
	EntityStageGroupTeam:         {phase: 160, aliases: []string{"stage_group_teams", "group_team", "group_teams"}},

	EntityFixture: {phase: 200, aliases: []string{"fixtures", "match", "matches"}},

	EntityLineup:           {phase: 400, aliases: []string{"lineups"}},
	EntityAppearance:       {phase: 410, aliases: []string{"appearances"}},
	EntitySubstitution:     {phase: 420, aliases: []string{"substitutions"}},
	EntityEvent:            {phase: 430, aliases: []string{"events", "match_event", "match_events"}},
	EntityTeamMatchStats:   {phase: 440, aliases: []string{"team_match_stat"}},
	EntityPlayerMatchStats: {phase: 450, aliases: []string{"player_match_stat"}},
	EntityTableStandings:   {phase: 460, aliases: []string{"table_standing", "standings"}},
}

var entityByName = func() map[string]EntityKind {
	out := make(map[string]EntityKind, len(entityCatalog)*3)
	for kind, info := range entityCatalog {
		out[string(kind)] = kind
		for _, alias := range info.aliases {
			out[alias] = kind
		}
	}
	return out
}()

// ParseEntityKind accepts singular, plural and alias spellings in any case; spaces and
// hyphens count as underscores.
func ParseEntityKind(raw string) (EntityKind, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if kind, ok := entityByName[key]; ok {
		return kind, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEntity, raw)
}

func (k EntityKind) Phase() int {
	if info, ok := entityCatalog[k]; ok {
		return info.phase
	}
	return 9999
}

func (k EntityKind) Aliases() []string {
	return append([]string(nil), entityCatalog[k].aliases...)
}

func (k EntityKind) String() string {
	return string(k)
}

// AllEntityKinds lists every kind in phase order.
func AllEntityKinds() []EntityKind {
	out := make([]EntityKind, 0, len(entityCatalog))
	for kind := range entityCatalog {
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Phase() < out[j].Phase() })
	return out
}

type filenamePattern struct {
	re   *regexp.Regexp
	kind EntityKind
}

// filenamePatterns is checked in order against slash-separated paths; the first match wins.
// Bases come before people, people before season structure, and that before fixtures and
// match data, so e.g. players_season.csv is a player file.
var filenamePatterns = []filenamePattern{
	{regexp.MustCompile(`(?i)(^|/)associations\.csv$`), EntityAssociation},
	{regexp.MustCompile(`(?i)(^|/)countries.*\.csv$`), EntityCountry},
	{regexp.MustCompile(`(?i)(^|/)stadiums.*\.csv$`), EntityStadium},
	{regexp.MustCompile(`(?i)(^|/)competitions.*\.csv$`), EntityCompetition},
	{regexp.MustCompile(`(?i)(^|/)clubs.*\.csv$`), EntityClub},
	{regexp.MustCompile(`(?i)(^|/)teams.*\.csv$`), EntityTeam},

	{regexp.MustCompile(`(?i)(^|/)person.*\.csv$`), EntityPerson},
	{regexp.MustCompile(`(?i)(^|/)players.*\.csv$`), EntityPlayer},
	{regexp.MustCompile(`(?i)(^|/)coaches.*\.csv$`), EntityCoach},
	{regexp.MustCompile(`(?i)(^|/)officials.*\.csv$`), EntityOfficial},

	{regexp.MustCompile(`(?i)(^|/).+_season\.csv$`), EntitySeason},
	{regexp.MustCompile(`(?i)(^|/).+_stages\.csv$`), EntityStage},
	{regexp.MustCompile(`(?i)(^|/).+_stage_rounds\.csv$`), EntityStageRound},
	{regexp.MustCompile(`(?i)(^|/).+_stage_groups\.csv$`), EntityStageGroup},
	{regexp.MustCompile(`(?i)(^|/).+_stage_group_teams\.csv$`), EntityStageGroupTeam},

	{regexp.MustCompile(`(?i)(^|/).+_fixtures\.csv$`), EntityFixture},

	{regexp.MustCompile(`(?i)(^|/)lineups.*\.csv$`), EntityLineup},
	{regexp.MustCompile(`(?i)(^|/)appearances.*\.csv$`), EntityAppearance},
	{regexp.MustCompile(`(?i)(^|/)substitutions.*\.csv$`), EntitySubstitution},
	{regexp.MustCompile(`(?i)(^|/)events.*\.csv$`), EntityEvent},
	{regexp.MustCompile(`(?i)(^|/)team_match_stats.*\.csv$`), EntityTeamMatchStats},
	{regexp.MustCompile(`(?i)(^|/)player_match_stats.*\.csv$`), EntityPlayerMatchStats},
	{regexp.MustCompile(`(?i)(^|/)table_standings.*\.csv$`), EntityTableStandings},
}

// InferEntityKind classifies a file path by its name.
func InferEntityKind(path string) (EntityKind, bool) {
	p := strings.ReplaceAll(path, "\\", "/")
	for _, pattern := range filenamePatterns {
		if pattern.re.MatchString(p) {
			return pattern.kind, true
		}
	}
	return "", false
}
