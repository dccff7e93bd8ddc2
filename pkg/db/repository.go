package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ravi-codingcity/FreightPro-B/pkg/config"
	"github.com/ravi-codingcity/FreightPro-B/pkg/models"
)

// Repository is the SQL implementation of DestinationStore. Shipping lines live in a JSON
// column, so every line mutation is a read-modify-write of the whole row inside one transaction.
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) DB() *DB {
	return r.db
}

func (r *Repository) Driver() string {
	return r.db.config.Driver
}

func (r *Repository) HealthCheck(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}

func (r *Repository) Close(_ context.Context) error {
	return r.db.Close()
}

func (r *Repository) ListActive(ctx context.Context, filter DestinationFilter) ([]models.Destination, error) {
	var destinations []models.Destination
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("destination_name ASC").
		Find(&destinations).Error
	if err != nil {
		return nil, err
	}

	// JSON columns are not queryable the same way on every driver
	if filter.ShippingLine != "" {
		matched := destinations[:0]
		for _, destination := range destinations {
			if destination.HasActiveLineMatching(filter.ShippingLine) {
				matched = append(matched, destination)
			}
		}
		destinations = matched
	}

	return destinations, nil
}

func (r *Repository) GetDestination(ctx context.Context, id string) (*models.Destination, error) {
	var destination models.Destination
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&destination).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &destination, nil
}

func (r *Repository) CreateDestination(ctx context.Context, destination *models.Destination) error {
	if destination.ShippingLines == nil {
		destination.ShippingLines = models.ShippingLines{}
	}
	return translateError(r.db.WithContext(ctx).Create(destination).Error)
}

func (r *Repository) UpdateDestination(ctx context.Context, id string, update DestinationUpdate) (*models.Destination, error) {
	if update.IsEmpty() {
		return r.GetDestination(ctx, id)
	}

	return r.mutate(ctx, id, func(destination *models.Destination) error {
		if update.DestinationName != nil {
			destination.DestinationName = *update.DestinationName
		}
		if update.ShippingLines != nil {
			destination.ShippingLines = update.ShippingLines.Clone()
		}
		return nil
	})
}

func (r *Repository) DeactivateDestination(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Destination{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": now(),
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) PushShippingLines(ctx context.Context, id string, lines []models.ShippingLine) (*models.Destination, error) {
	return r.mutate(ctx, id, func(destination *models.Destination) error {
		destination.ShippingLines = append(destination.ShippingLines.Clone(), lines...)
		return nil
	})
}

func (r *Repository) SetShippingLine(ctx context.Context, id string, line models.ShippingLine) (*models.Destination, error) {
	return r.mutate(ctx, id, func(destination *models.Destination) error {
		existing, _ := destination.FindShippingLine(line.ID)
		if existing == nil {
			return ErrShippingLineNotFound
		}
		*existing = line
		return nil
	})
}

func (r *Repository) PullShippingLine(ctx context.Context, id string, lineID string) (*models.Destination, error) {
	return r.mutate(ctx, id, func(destination *models.Destination) error {
		destination.RemoveShippingLine(lineID)
		return nil
	})
}

// mutate loads the row under a write lock, applies fn and writes the mutable columns back
func (r *Repository) mutate(ctx context.Context, id string, fn func(*models.Destination) error) (*models.Destination, error) {
	var destination models.Destination

	err := r.db.Transaction(ctx, func(tx *gorm.DB) error {
		query := tx
		if r.db.config.Driver == config.DriverPostgres {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := query.Where("id = ?", id).First(&destination).Error; err != nil {
			return err
		}

		if err := fn(&destination); err != nil {
			return err
		}

		destination.UpdatedAt = now()
		return tx.Model(&destination).
			Select("destination_name", "shipping_lines", "is_active", "updated_at").
			Updates(&destination).Error
	})
	if err != nil {
		return nil, translateError(err)
	}

	return &destination, nil
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateName
	default:
		return err
	}
}
