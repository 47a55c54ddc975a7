package competition

import (
	"strings"

	"github.com/mouxlas21/football-db/internal/platform/coerce"
)

const StatusActive = "active"

type Competition struct {
	ID             int64
	Slug           string
	Name           string
	Type           string
	Tier           *int
	CupRank        *string
	Gender         *string
	AgeGroup       *string
	Status         string
	Notes          *string
	LogoFilename   *string
	CountryID      *int64
	OrganizerAssID *int64
}

// BuildSlug joins the slugified scope (country name or association code) and name with an
// underscore. An empty scope yields just the name slug.
func BuildSlug(scope, name string) string {
	nameSlug := coerce.Slugify(name)
	scopeSlug := coerce.Slugify(scope)
	if scopeSlug == "" {
		return nameSlug
	}
	return strings.Trim(scopeSlug+"_"+nameSlug, "_")
}
