package stadium

type Stadium struct {
	ID             int64
	Name           string
	City           *string
	CountryID      *int64
	Capacity       *int
	OpenedYear     *int
	ClosedYear     *int
	Lat            *float64
	Lng            *float64
	RenovatedYears []int
	Tenants        []string
	PhotoFilename  *string
}

// Query narrows a case-insensitive name lookup. Nil fields are not filtered on.
type Query struct {
	Name      string
	City      *string
	CountryID *int64
}
