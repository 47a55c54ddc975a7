package country

import "strings"

type Status string

const (
	StatusActive     Status = "active"
	StatusHistorical Status = "historical"
)

// NormalizeStatus accepts exactly "active" or "historical" (any case); everything else,
// blank included, is active.
func NormalizeStatus(raw string) Status {
	if Status(strings.ToLower(strings.TrimSpace(raw))) == StatusHistorical {
		return StatusHistorical
	}
	return StatusActive
}

type Country struct {
	ID             int64
	Name           string
	FIFACode       *string
	ConfedAssID    *int64
	FlagFilename   *string
	NatAssociation *string
	Status         Status
}
