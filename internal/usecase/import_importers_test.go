package usecase_test

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/mouxlas21/football-db/internal/domain/stadium"
	"github.com/mouxlas21/football-db/internal/usecase"
)

func TestImportService_CountrySubConfederationsFollowColumn(t *testing.T) {
	t.Parallel()

	svc, store := newImportService(t)
	importCSV(t, svc, "associations",
		"code,name,level\nAFC,AFC,confederation\nWAFF,West Asian FF,sub_confederation\nEAFF,East Asian FF,sub_confederation\nAFF,ASEAN FF,sub_confederation\n")

	subConfeds := func(codes ...string) (want []int64, got []int64) {
		t.Helper()
		inTx(t, store, func(repos usecase.ImportRepositories) {
			ctx := context.Background()
			for _, code := range codes {
				id, _, _ := repos.Associations.FindIDByCode(ctx, code)
				want = append(want, id)
			}
			ids, _ := repos.Countries.FindIDsByName(ctx, "Australia")
			if len(ids) != 1 {
				t.Fatalf("expected one Australia, got %v", ids)
			}
			got, _ = repos.Countries.ListSubConfederations(ctx, ids[0])
		})
		return want, got
	}

	first := importCSV(t, svc, "countries", "name,confederation,sub_confederations\nAustralia,AFC,\"WAFF,EAFF\"\n")
	if first.Inserted != 1 {
		t.Fatalf("expected Australia inserted, got %+v", first)
	}
	if want, got := subConfeds("WAFF", "EAFF"); fmt.Sprint(slices.Sorted(slices.Values(want))) != fmt.Sprint(got) {
		t.Fatalf("expected sub-confederations %v, got %v", want, got)
	}

	second := importCSV(t, svc, "countries", "name,confederation,sub_confederations\nAustralia,AFC,AFF;NOPE\n")
	if second.Updated != 1 || len(second.Errors) != 0 {
		t.Fatalf("expected Australia updated, got %+v", second)
	}
	if want, got := subConfeds("AFF"); fmt.Sprint(want) != fmt.Sprint(got) {
		t.Fatalf("expected sub-confederations replaced by %v, got %v", want, got)
	}

	third := importCSV(t, svc, "countries", "name,fifa_code,confederation\nAustralia,AUS,AFC\n")
	if third.Updated != 1 {
		t.Fatalf("expected Australia updated, got %+v", third)
	}
	if want, got := subConfeds("AFF"); fmt.Sprint(want) != fmt.Sprint(got) {
		t.Fatalf("expected sub-confederations untouched without the column, got %v want %v", got, want)
	}

	importCSV(t, svc, "countries", "name,sub_confederations\nAustralia,\n")
	if _, got := subConfeds(); len(got) != 0 {
		t.Fatalf("expected blank cell to clear sub-confederations, got %v", got)
	}
}

func TestImportService_StadiumReimportMatchesCountryThenCity(t *testing.T) {
	t.Parallel()

	svc, store := newImportService(t)
	importCSV(t, svc, "countries", "name,fifa_code\nNetherlands,NED\nGermany,GER\n")

	first := importCSV(t, svc, "stadiums",
		"name,city,country,capacity\n"+
			"Philips Stadion,Eindhoven,NED,35000\n"+
			"Olympiastadion,Berlin,GER,74000\n"+
			"Olympiastadion,Amsterdam,NED,22000\n")
	if first.Inserted != 3 || len(first.Errors) != 0 {
		t.Fatalf("expected 3 stadiums inserted, got %+v", first)
	}

	second := importCSV(t, svc, "stadiums",
		"name,city,country,capacity\n"+
			"Philips Stadion,,NED,36500\n"+ // (name, country)
			"Olympiastadion,Amsterdam,,22288\n"+ // (name, city)
			"De Kuip,Rotterdam,NED,\n")
	if second.Inserted != 1 || second.Updated != 2 || len(second.Errors) != 0 {
		t.Fatalf("expected 1 insert and 2 updates, got %+v", second)
	}

	inTx(t, store, func(repos usecase.ImportRepositories) {
		ctx := context.Background()
		capacity := func(name, city string) int {
			t.Helper()
			ids, _ := repos.Stadiums.FindIDs(ctx, stadium.Query{Name: name, City: &city})
			if len(ids) != 1 {
				t.Fatalf("expected one %s in %s, got %v", name, city, ids)
			}
			s, _, _ := repos.Stadiums.GetByID(ctx, ids[0])
			if s.Capacity == nil {
				return 0
			}
			return *s.Capacity
		}

		if got := capacity("Philips Stadion", "Eindhoven"); got != 36500 {
			t.Fatalf("expected Philips Stadion patched in place, got capacity %d", got)
		}
		if got := capacity("Olympiastadion", "Amsterdam"); got != 22288 {
			t.Fatalf("expected Amsterdam Olympiastadion updated, got capacity %d", got)
		}
		if got := capacity("Olympiastadion", "Berlin"); got != 74000 {
			t.Fatalf("expected Berlin Olympiastadion untouched, got capacity %d", got)
		}
		if ids, _ := repos.Stadiums.FindIDs(ctx, stadiumQuery("Olympiastadion")); len(ids) != 2 {
			t.Fatalf("expected two Olympiastadions, got %v", ids)
		}
	})
}

func TestImportService_ClubStadiumUsesCityAndCountryHints(t *testing.T) {
	t.Parallel()

	svc, store := newImportService(t)
	importCSV(t, svc, "countries", "name,fifa_code\nNetherlands,NED\nGermany,GER\n")
	importCSV(t, svc, "stadiums", "name,city,country\nOlympiastadion,Berlin,GER\nOlympiastadion,Amsterdam,NED\n")

	clubs := "name,country,stadium,stadium_city\n" +
		"Hertha BSC,GER,Olympiastadion,\n" + // unique by country
		"Blauw-Wit,NED,Olympiastadion,Amsterdam\n" + // by city
		"Wanderers,,Olympiastadion,\n" // ambiguous, no stadium
	first := importCSV(t, svc, "clubs", clubs)
	if first.Inserted != 3 || len(first.Errors) != 0 {
		t.Fatalf("expected 3 clubs inserted, got %+v", first)
	}
	second := importCSV(t, svc, "clubs", clubs)
	if second.Inserted != 0 || second.Updated != 3 {
		t.Fatalf("expected re-import to update, got %+v", second)
	}

	inTx(t, store, func(repos usecase.ImportRepositories) {
		ctx := context.Background()
		stadiumCity := func(clubName string) string {
			t.Helper()
			ids, _ := repos.Clubs.FindIDsByName(ctx, clubName)
			if len(ids) != 1 {
				t.Fatalf("expected one %s, got %v", clubName, ids)
			}
			c, _, _ := repos.Clubs.GetByID(ctx, ids[0])
			if c.StadiumID == nil {
				return ""
			}
			s, _, _ := repos.Stadiums.GetByID(ctx, *c.StadiumID)
			return *s.City
		}

		if got := stadiumCity("Hertha BSC"); got != "Berlin" {
			t.Fatalf("expected Hertha in Berlin, got %q", got)
		}
		if got := stadiumCity("Blauw-Wit"); got != "Amsterdam" {
			t.Fatalf("expected Blauw-Wit in Amsterdam, got %q", got)
		}
		if got := stadiumCity("Wanderers"); got != "" {
			t.Fatalf("expected no stadium for an ambiguous name, got %q", got)
		}
	})
}

func TestImportService_CompetitionSlugScope(t *testing.T) {
	t.Parallel()

	svc, store := newImportService(t)
	importCSV(t, svc, "associations", "code,name,level\nUEFA,UEFA,confederation\n")
	importCSV(t, svc, "countries", "name,fifa_code\nNetherlands,NED\n")

	competitions := "name,type,country,organizer\n" +
		"KNVB Beker,cup,Netherlands,\n" +
		"Champions League,cup,,UEFA\n" +
		"Eredivisie,league,NED,UEFA\n" +
		"Friendlies,friendly,,\n"
	first := importCSV(t, svc, "competitions", competitions)
	if first.Inserted != 4 || len(first.Errors) != 0 {
		t.Fatalf("expected 4 competitions inserted, got %+v", first)
	}
	second := importCSV(t, svc, "competitions", competitions)
	if second.Inserted != 0 || second.Updated != 4 {
		t.Fatalf("expected re-import to update by slug, got %+v", second)
	}

	inTx(t, store, func(repos usecase.ImportRepositories) {
		for _, slug := range []string{"netherlands_knvb_beker", "uefa_champions_league", "netherlands_eredivisie", "friendlies"} {
			if _, ok, _ := repos.Competitions.FindIDBySlug(context.Background(), slug); !ok {
				t.Fatalf("expected competition with slug %q", slug)
			}
		}
	})
}

func TestImportService_SeasonStructureByIDOrName(t *testing.T) {
	t.Parallel()

	svc, store := newImportService(t)
	importCSV(t, svc, "countries", "name\nNetherlands\nBelgium\n")
	importCSV(t, svc, "competitions", "name,type,country\nKNVB Beker,cup,Netherlands\nBeker van Belgie,cup,Belgium\n")
	importCSV(t, svc, "seasons", "name,competition\n2024/25,KNVB Beker\n2024/25,Beker van Belgie\n")

	var seasonID int64
	inTx(t, store, func(repos usecase.ImportRepositories) {
		ctx := context.Background()
		compID, _, _ := repos.Competitions.FindIDBySlug(ctx, "netherlands_knvb_beker")
		id, ok, _ := repos.Seasons.FindID(ctx, compID, "2024/25")
		if !ok {
			t.Fatalf("expected KNVB Beker season")
		}
		seasonID = id
	})

	stages := fmt.Sprintf("name,season_id,competition,season\nFinals,%d,,\nGroups,,KNVB Beker,2024/25\nOrphans,,,2024/25\n", seasonID)
	first := importCSV(t, svc, "stages", stages)
	if first.Inserted != 2 || first.Skipped != 1 || len(first.Errors) != 0 {
		t.Fatalf("expected 2 stages and a silent skip for the ambiguous season, got %+v", first)
	}
	if again := importCSV(t, svc, "stages", stages); again.Inserted != 0 || again.Updated != 2 {
		t.Fatalf("expected stages updated on re-import, got %+v", again)
	}

	var finalsID, groupsID int64
	inTx(t, store, func(repos usecase.ImportRepositories) {
		ctx := context.Background()
		finalsID, _, _ = repos.Stages.FindStageID(ctx, seasonID, "Finals")
		groupsID, _, _ = repos.Stages.FindStageID(ctx, seasonID, "Groups")
	})

	rounds := fmt.Sprintf("name,stage_id,competition,season,stage\nFinal,%d,,,\nMatchday 1,,KNVB Beker,2024/25,Groups\nGhost,999999,,,\n", finalsID)
	roundResult := importCSV(t, svc, "stage_rounds", rounds)
	if roundResult.Inserted != 2 || roundResult.Skipped != 1 {
		t.Fatalf("expected 2 rounds and one failed row, got %+v", roundResult)
	}
	if len(roundResult.Errors) != 1 || !strings.HasPrefix(roundResult.Errors[0], "Row 3: ") {
		t.Fatalf("expected dangling stage id reported for row 3, got %v", roundResult.Errors)
	}

	groups := fmt.Sprintf("name,code,stage_id,competition,season,stage\nGroup A,A,%d,,,\nGroup B,B,,KNVB Beker,2024/25,Groups\n", groupsID)
	if result := importCSV(t, svc, "stage_groups", groups); result.Inserted != 2 {
		t.Fatalf("expected 2 groups, got %+v", result)
	}
	if result := importCSV(t, svc, "stage_groups", groups); result.Inserted != 0 || result.Updated != 2 {
		t.Fatalf("expected groups updated on re-import, got %+v", result)
	}

	inTx(t, store, func(repos usecase.ImportRepositories) {
		ctx := context.Background()
		if _, ok, _ := repos.Stages.FindRoundID(ctx, finalsID, "Final"); !ok {
			t.Fatalf("expected Final round under Finals")
		}
		if _, ok, _ := repos.Stages.FindRoundID(ctx, groupsID, "Matchday 1"); !ok {
			t.Fatalf("expected Matchday 1 under Groups")
		}
		if ids, _ := repos.Stages.FindGroupIDs(ctx, groupsID, "b"); len(ids) != 1 {
			t.Fatalf("expected group B found by code, got %v", ids)
		}
	})
}
