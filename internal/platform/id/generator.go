package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque identifiers for import runs and log correlation.
type Generator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a time-ordered UUIDv7 so run ids sort by start time.
func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return v.String(), nil
}

// Static returns the same id every time; useful in tests.
type Static string

func (s Static) NewID() (string, error) {
	return string(s), nil
}
