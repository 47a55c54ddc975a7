package postgres

import "testing"

func TestNationalTeamQuery(t *testing.T) {
	gender := "women"
	tests := []struct {
		name      string
		ageGroup  *string
		gender    *string
		wantQuery string
		wantArgs  int
	}{
		{
			name:      "unqualified",
			wantQuery: "SELECT team_id FROM team WHERE team_type = $1 AND national_country_id = $2 AND age_group IS NULL AND gender IS NULL ORDER BY team_id",
			wantArgs:  2,
		},
		{
			name:      "gendered",
			gender:    &gender,
			wantQuery: "SELECT team_id FROM team WHERE team_type = $1 AND national_country_id = $2 AND age_group IS NULL AND gender = $3 ORDER BY team_id",
			wantArgs:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := nationalTeamQuery(7, tt.ageGroup, tt.gender).ToSQL()
			if err != nil {
				t.Fatalf("build query: %v", err)
			}
			if query != tt.wantQuery {
				t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", tt.wantQuery, query)
			}
			if len(args) != tt.wantArgs {
				t.Fatalf("expected %d args, got %+v", tt.wantArgs, args)
			}
		})
	}
}

func TestFIFACodeOwnerQuery(t *testing.T) {
	self := int64(12)

	query, args, err := fifaCodeOwnerQuery("NED", &self).ToSQL()
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if want := "SELECT country_id FROM country WHERE fifa_code = $1 AND country_id <> $2"; query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[0] != "NED" || args[1] != self {
		t.Fatalf("unexpected args: %+v", args)
	}

	query, _, err = fifaCodeOwnerQuery("NED", nil).ToSQL()
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if want := "SELECT country_id FROM country WHERE fifa_code = $1"; query != want {
		t.Fatalf("unexpected query for a new country: %s", query)
	}
}
