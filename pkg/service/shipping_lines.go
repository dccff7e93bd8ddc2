package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ravi-codingcity/FreightPro-B/pkg/apperrors"
	"github.com/ravi-codingcity/FreightPro-B/pkg/db"
	"github.com/ravi-codingcity/FreightPro-B/pkg/models"
)

// AddShippingLine appends one line unless its name is already used in the destination
func (s *DestinationService) AddShippingLine(ctx context.Context, id string, input ShippingLineInput) (*models.Destination, error) {
	if err := validateID(id, "id", MsgInvalidDestinationID); err != nil {
		return nil, err
	}
	input.normalize()
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.FindShippingLineByName(input.LineName) != nil {
		return nil, apperrors.Conflict(MsgLineExists)
	}

	return s.push(ctx, id, []ShippingLineInput{input}, "Error adding shipping line")
}

// AddShippingLines appends every line of the batch or none of them. All names colliding with
// existing lines are reported together.
func (s *DestinationService) AddShippingLines(ctx context.Context, id string, input BulkShippingLinesInput) (*models.Destination, error) {
	if err := validateID(id, "id", MsgInvalidDestinationID); err != nil {
		return nil, err
	}
	input.normalize()
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	names := lineNames(input.ShippingLines)
	if hasDuplicateNames(names) {
		return nil, apperrors.Validation(MsgDuplicateLineNames)
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if collisions := current.CollidingLineNames(names); len(collisions) > 0 {
		return nil, apperrors.Conflict(MsgLinesExistPrefix + strings.Join(collisions, ", "))
	}

	return s.push(ctx, id, input.ShippingLines, "Error adding shipping lines")
}

// UpdateShippingLine merges patch into the line with lineID
func (s *DestinationService) UpdateShippingLine(ctx context.Context, id, lineID string, patch ShippingLinePatch) (*models.Destination, error) {
	if err := validateID(id, "id", MsgInvalidDestinationID); err != nil {
		return nil, err
	}
	if err := validateID(lineID, "shippingLineId", MsgInvalidLineID); err != nil {
		return nil, err
	}
	patch.normalize()
	if err := s.validator.Validate(patch); err != nil {
		return nil, err
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	existing, _ := current.FindShippingLine(lineID)
	if existing == nil {
		return nil, apperrors.NotFound(MsgShippingLineNotFound)
	}

	line := *existing
	if patch.LineName != nil {
		if other := current.FindShippingLineByName(*patch.LineName); other != nil && other.ID != lineID {
			return nil, apperrors.Conflict(MsgLineExists)
		}
		line.LineName = *patch.LineName
	}
	if patch.IsActive != nil {
		line.IsActive = *patch.IsActive
	}
	line.UpdatedAt = s.now()

	destination, err := s.store.SetShippingLine(ctx, id, line)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			return nil, apperrors.NotFound(MsgDestinationNotFound)
		case errors.Is(err, db.ErrShippingLineNotFound):
			return nil, apperrors.NotFound(MsgShippingLineNotFound)
		default:
			return nil, apperrors.Internal("Error updating shipping line", err)
		}
	}
	return destination, nil
}

// RemoveShippingLine drops the line with lineID. A line that is already gone is not an error.
func (s *DestinationService) RemoveShippingLine(ctx context.Context, id, lineID string) (*models.Destination, error) {
	if err := validateID(id, "id", MsgInvalidDestinationID); err != nil {
		return nil, err
	}
	if err := validateID(lineID, "shippingLineId", MsgInvalidLineID); err != nil {
		return nil, err
	}

	destination, err := s.store.PullShippingLine(ctx, id, lineID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperrors.NotFound(MsgDestinationNotFound)
		}
		return nil, apperrors.Internal("Error deleting shipping line", err)
	}
	return destination, nil
}

func (s *DestinationService) push(ctx context.Context, id string, inputs []ShippingLineInput, failure string) (*models.Destination, error) {
	now := s.now()
	lines := make([]models.ShippingLine, 0, len(inputs))
	for _, input := range inputs {
		lines = append(lines, s.newLine(input, now))
	}

	destination, err := s.store.PushShippingLines(ctx, id, lines)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperrors.NotFound(MsgDestinationNotFound)
		}
		return nil, apperrors.Internal(failure, err)
	}
	return destination, nil
}
