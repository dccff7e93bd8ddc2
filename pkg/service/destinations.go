// Package service holds the destination aggregate rules: line-name uniqueness within a
// destination, destination-name uniqueness, soft delete and partial updates.
//
// Checks that read the current document and then write are not serialized against each
// other. Two concurrent adds of the same line name can both pass the duplicate check; each
// write is still a single atomic update of one destination, so the list is never corrupted.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ravi-codingcity/FreightPro-B/pkg/apperrors"
	"github.com/ravi-codingcity/FreightPro-B/pkg/db"
	"github.com/ravi-codingcity/FreightPro-B/pkg/models"
	"github.com/ravi-codingcity/FreightPro-B/pkg/utils"
)

const (
	MsgDestinationRequired   = "POD destination name is required"
	MsgDestinationLength     = "Destination name must be between 2 and 100 characters"
	MsgLineNameRequired      = "Shipping line name is required"
	MsgLineNameLength        = "Shipping line name must be between 2 and 100 characters"
	MsgLinesRequired         = "shippingLines array is required and cannot be empty"
	MsgInvalidDestinationID  = "Invalid destination ID format"
	MsgInvalidLineID         = "Invalid shipping line ID format"
	MsgDuplicateLineNames    = "Duplicate shipping line names are not allowed"
	MsgDuplicateLineIDs      = "Duplicate shipping line IDs are not allowed"
	MsgDestinationExists     = "Destination with this name already exists"
	MsgLineExists            = "Shipping line with this name already exists for this destination"
	MsgLinesExistPrefix      = "Shipping lines already exist: "
	MsgDestinationNotFound   = "Destination not found"
	MsgShippingLineNotFound  = "Shipping line not found"
	MsgIsActiveMustBeBoolean = "isActive must be a boolean value"
)

// DestinationService applies the aggregate rules on top of a DestinationStore
type DestinationService struct {
	store     db.DestinationStore
	validator *utils.Validator
	now       func() time.Time
}

// Option configures a DestinationService
type Option func(*DestinationService)

// WithClock replaces the timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *DestinationService) {
		s.now = now
	}
}

// NewDestinationService creates a service over store
func NewDestinationService(store db.DestinationStore, opts ...Option) *DestinationService {
	s := &DestinationService{
		store:     store,
		validator: newValidator(),
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Millisecond)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newValidator() *utils.Validator {
	v := utils.NewValidator()
	v.RegisterMessage("destinationName", "required", MsgDestinationRequired)
	v.RegisterMessage("destinationName", "min", MsgDestinationLength)
	v.RegisterMessage("destinationName", "max", MsgDestinationLength)
	v.RegisterMessage("lineName", "required", MsgLineNameRequired)
	v.RegisterMessage("lineName", "min", MsgLineNameLength)
	v.RegisterMessage("lineName", "max", MsgLineNameLength)
	v.RegisterMessage("shippingLines", "required", MsgLinesRequired)
	v.RegisterMessage("shippingLines", "min", MsgLinesRequired)
	v.RegisterMessage("id", "mongodb", MsgInvalidLineID)
	return v
}

// List returns active destinations ordered by name
func (s *DestinationService) List(ctx context.Context, filter db.DestinationFilter) ([]models.Destination, error) {
	filter.ShippingLine = strings.TrimSpace(filter.ShippingLine)

	destinations, err := s.store.ListActive(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal("Error fetching destinations", err)
	}
	if destinations == nil {
		destinations = []models.Destination{}
	}
	return destinations, nil
}

// Get returns a destination whether or not it is active
func (s *DestinationService) Get(ctx context.Context, id string) (*models.Destination, error) {
	if err := validateID(id, "id", MsgInvalidDestinationID); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// Create persists a new active destination with its optional initial lines
func (s *DestinationService) Create(ctx context.Context, input CreateDestinationInput) (*models.Destination, error) {
	input.normalize()
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}
	if hasDuplicateNames(lineNames(input.ShippingLines)) {
		return nil, apperrors.Validation(MsgDuplicateLineNames)
	}

	now := s.now()
	destination := &models.Destination{
		ID:              models.NewID(),
		DestinationName: input.DestinationName,
		ShippingLines:   make(models.ShippingLines, 0, len(input.ShippingLines)),
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, line := range input.ShippingLines {
		destination.ShippingLines = append(destination.ShippingLines, s.newLine(line, now))
	}

	if err := s.store.CreateDestination(ctx, destination); err != nil {
		if errors.Is(err, db.ErrDuplicateName) {
			return nil, apperrors.Conflict(MsgDestinationExists)
		}
		return nil, apperrors.Internal("Error creating destination", err)
	}

	return destination, nil
}

// Update renames the destination and/or replaces its line list. Replacement lines that echo an
// existing id keep that id and its creation time; any other line gets a new id.
func (s *DestinationService) Update(ctx context.Context, id string, input UpdateDestinationInput) (*models.Destination, error) {
	if err := validateID(id, "id", MsgInvalidDestinationID); err != nil {
		return nil, err
	}
	input.normalize()
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	update := db.DestinationUpdate{DestinationName: input.DestinationName}

	if input.ShippingLines != nil {
		lines := *input.ShippingLines
		if hasDuplicateNames(lineNames(lines)) {
			return nil, apperrors.Validation(MsgDuplicateLineNames)
		}
		if hasDuplicateIDs(lines) {
			return nil, apperrors.Validation(MsgDuplicateLineIDs)
		}

		current, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}

		now := s.now()
		replacement := make(models.ShippingLines, 0, len(lines))
		for _, line := range lines {
			next := s.newLine(line, now)
			if existing, _ := current.FindShippingLine(line.ID); existing != nil {
				next.ID = existing.ID
				next.CreatedAt = existing.CreatedAt
			}
			replacement = append(replacement, next)
		}
		update.ShippingLines = &replacement
	}

	destination, err := s.store.UpdateDestination(ctx, id, update)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			return nil, apperrors.NotFound(MsgDestinationNotFound)
		case errors.Is(err, db.ErrDuplicateName):
			return nil, apperrors.Conflict(MsgDestinationExists)
		default:
			return nil, apperrors.Internal("Error updating destination", err)
		}
	}

	return destination, nil
}

// Delete soft-deletes the destination; its lines are left as they are
func (s *DestinationService) Delete(ctx context.Context, id string) error {
	if err := validateID(id, "id", MsgInvalidDestinationID); err != nil {
		return err
	}

	if err := s.store.DeactivateDestination(ctx, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperrors.NotFound(MsgDestinationNotFound)
		}
		return apperrors.Internal("Error deleting destination", err)
	}
	return nil
}

func (s *DestinationService) load(ctx context.Context, id string) (*models.Destination, error) {
	destination, err := s.store.GetDestination(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperrors.NotFound(MsgDestinationNotFound)
		}
		return nil, apperrors.Internal("Error fetching destination", err)
	}
	return destination, nil
}

func (s *DestinationService) newLine(input ShippingLineInput, now time.Time) models.ShippingLine {
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	return models.ShippingLine{
		ID:        models.NewID(),
		LineName:  input.LineName,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func validateID(id, field, message string) error {
	if !models.IsValidID(id) {
		return apperrors.Validation(utils.ValidationMessage, apperrors.FieldError{Field: field, Message: message})
	}
	return nil
}

func hasDuplicateNames(names []string) bool {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		key := models.LineNameKey(name)
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
	}
	return false
}

func hasDuplicateIDs(lines []ShippingLineInput) bool {
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if line.ID == "" {
			continue
		}
		if _, ok := seen[line.ID]; ok {
			return true
		}
		seen[line.ID] = struct{}{}
	}
	return false
}
