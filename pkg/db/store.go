package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ravi-codingcity/FreightPro-B/pkg/config"
	"github.com/ravi-codingcity/FreightPro-B/pkg/log"
	"github.com/ravi-codingcity/FreightPro-B/pkg/models"
)

var (
	// ErrNotFound is returned when no destination has the requested id.
	ErrNotFound = errors.New("db: destination not found")

	// ErrDuplicateName is returned when the unique index on destination name rejects a write.
	ErrDuplicateName = errors.New("db: duplicate destination name")

	// ErrShippingLineNotFound is returned when the destination exists but the line id does not.
	ErrShippingLineNotFound = errors.New("db: shipping line not found")
)

// DestinationFilter narrows the active destination listing.
type DestinationFilter struct {
	// ShippingLine keeps destinations with an active line whose name contains this text, ignoring case.
	ShippingLine string
}

// DestinationUpdate holds the fields to overwrite; nil fields are left unchanged.
type DestinationUpdate struct {
	DestinationName *string
	ShippingLines   *models.ShippingLines
}

// IsEmpty reports whether the update changes nothing
func (u DestinationUpdate) IsEmpty() bool {
	return u.DestinationName == nil && u.ShippingLines == nil
}

// DestinationStore persists destination aggregates. Every mutation is a single
// per-document atomic write; invariants spanning a read and a write are the caller's concern.
type DestinationStore interface {
	// ListActive returns active destinations ordered by name.
	ListActive(ctx context.Context, filter DestinationFilter) ([]models.Destination, error)
	// GetDestination returns a destination regardless of its active flag.
	GetDestination(ctx context.Context, id string) (*models.Destination, error)
	CreateDestination(ctx context.Context, destination *models.Destination) error
	UpdateDestination(ctx context.Context, id string, update DestinationUpdate) (*models.Destination, error)
	DeactivateDestination(ctx context.Context, id string) error
	// PushShippingLines appends lines to the end of the embedded list.
	PushShippingLines(ctx context.Context, id string, lines []models.ShippingLine) (*models.Destination, error)
	// SetShippingLine overwrites the embedded line that has line.ID.
	SetShippingLine(ctx context.Context, id string, line models.ShippingLine) (*models.Destination, error)
	// PullShippingLine removes the embedded line with lineID; absent lines are not an error.
	PullShippingLine(ctx context.Context, id string, lineID string) (*models.Destination, error)

	Driver() string
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open connects the store selected by cfg.Driver
func Open(ctx context.Context, cfg *config.DatabaseConfig, logger *log.Logger) (DestinationStore, error) {
	switch cfg.Driver {
	case config.DriverMongoDB:
		return NewMongoStore(ctx, cfg, logger)
	case config.DriverPostgres, config.DriverSQLite:
		database, err := New(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(); err != nil {
			_ = database.Close()
			return nil, err
		}
		return NewRepository(database), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// now is the store clock; mongo keeps millisecond precision so every backend truncates to it
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// isExpectedError reports whether err is a domain outcome rather than a storage failure
func isExpectedError(err error) bool {
	return err == nil ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrShippingLineNotFound)
}
