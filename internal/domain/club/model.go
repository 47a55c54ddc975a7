package club

// Club is a football club. Names are globally unique.
type Club struct {
	ID           int64
	Name         string
	ShortName    *string
	Founded      *int
	CountryID    *int64
	StadiumID    *int64
	LogoFilename *string
	Colors       *string
}
