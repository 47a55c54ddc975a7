package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mouxlas21/football-db/internal/platform/csvfile"
	"github.com/mouxlas21/football-db/internal/platform/logging"
)

const messageNoData = "No data"

// ImportResult is the outcome of one batch.
type ImportResult struct {
	Entity   EntityKind `json:"entity"`
	Inserted int        `json:"inserted"`
	Updated  int        `json:"updated"`
	Skipped  int        `json:"skipped"`
	Errors   []string   `json:"errors"`
	Message  string     `json:"message,omitempty"`
}

// ImportService runs an importer over the rows of one file inside a single transaction.
type ImportService struct {
	store    ImportStore
	registry *ImportRegistry
	logger   *logging.Logger
	now      func() time.Time
}

func NewImportService(store ImportStore, registry *ImportRegistry, logger *logging.Logger) *ImportService {
	if registry == nil {
		registry = DefaultImportRegistry(nil)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ImportService{
		store:    store,
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *ImportService) Registry() *ImportRegistry {
	return s.registry
}

// ImportCSV resolves the entity name, decodes the CSV payload and imports its rows.
func (s *ImportService) ImportCSV(ctx context.Context, entity string, payload io.Reader) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportCSV")
	defer span.End()

	kind, err := ParseEntityKind(entity)
	if err != nil {
		return ImportResult{}, err
	}
	if _, err := s.registry.Lookup(kind); err != nil {
		return ImportResult{}, err
	}

	doc, err := csvfile.Read(payload)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: invalid csv: %v", ErrInvalidInput, err)
	}
	return s.ImportRows(ctx, kind, doc.Rows)
}

// ImportRows drives the importer of kind over rows in order. A rejected row is skipped; a row
// whose write fails is rolled back to its savepoint, skipped and reported as "Row i: ...";
// the batch carries on either way and commits once at the end. Store failures while parsing
// a row, and a savepoint failing with ErrTxBroken, abort the whole batch.
func (s *ImportService) ImportRows(ctx context.Context, kind EntityKind, rows []csvfile.Row) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportRows")
	defer span.End()

	importer, err := s.registry.Lookup(kind)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Entity: kind, Errors: []string{}}
	if len(rows) == 0 {
		result.Message = messageNoData
		return result, nil
	}

	started := s.now()
	err = withImportTx(ctx, s.store, func(ctx context.Context, tx ImportTx) error {
		repos := tx.Repositories()
		for i, row := range rows {
			rowNumber := i + 1

			write, err := importer.Prepare(ctx, repos, row)
			if err != nil {
				return fmt.Errorf("%s row %d: %w", kind, rowNumber, err)
			}
			if write == nil {
				result.Skipped++
				continue
			}

			var inserted bool
			err = tx.Savepoint(ctx, func(ctx context.Context) error {
				var writeErr error
				inserted, writeErr = write(ctx, repos)
				return writeErr
			})
			if errors.Is(err, ErrTxBroken) {
				return fmt.Errorf("%s row %d: %w", kind, rowNumber, err)
			}
			if err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNumber, err))
				s.logger.WarnContext(ctx, "import row failed", "entity", kind.String(), "row", rowNumber, "error", err)
				continue
			}
			if inserted {
				result.Inserted++
			} else {
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "import batch aborted", "entity", kind.String(), "rows", len(rows), "error", err)
		return ImportResult{}, err
	}

	s.logger.InfoContext(ctx, "import batch committed",
		"entity", kind.String(),
		"inserted", result.Inserted,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
		"duration", s.now().Sub(started).String(),
	)
	return result, nil
}
