package team

import "testing"

func TestTeamValidate_AttachmentRule(t *testing.T) {
	t.Parallel()

	id := int64(1)
	tests := []struct {
		name    string
		team    Team
		wantErr bool
	}{
		{name: "club team with club", team: Team{Name: "Ajax", Type: TypeClub, ClubID: &id}},
		{name: "national team with country", team: Team{Name: "Netherlands", Type: TypeNational, NationalCountryID: &id}},
		{name: "club team without club", team: Team{Name: "Ajax", Type: TypeClub}, wantErr: true},
		{name: "both attachments", team: Team{Name: "X", Type: TypeClub, ClubID: &id, NationalCountryID: &id}, wantErr: true},
		{name: "national team with club", team: Team{Name: "X", Type: TypeNational, ClubID: &id}, wantErr: true},
		{name: "missing name", team: Team{Type: TypeClub, ClubID: &id}, wantErr: true},
		{name: "unknown type", team: Team{Name: "X", Type: "franchise", ClubID: &id}, wantErr: true},
	}

	for _, tc := range tests {
		err := tc.team.Validate()
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
	}
}
