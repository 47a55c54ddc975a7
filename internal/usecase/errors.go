package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

var (
	// ErrUnknownEntity is returned for an entity name outside the catalogue.
	ErrUnknownEntity = fmt.Errorf("%w: unknown entity", ErrInvalidInput)
	// ErrNoImporter is returned for a catalogued entity that has no row importer.
	ErrNoImporter = fmt.Errorf("%w: no importer for entity", ErrInvalidInput)
)
