package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/ravi-codingcity/FreightPro-B/pkg/models"
)

// SampleDestination is a seed entry; every listed line starts active
type SampleDestination struct {
	Name  string
	Lines []string
}

// SampleDestinations is the default reference data loaded by SeedDestinations
var SampleDestinations = []SampleDestination{
	{Name: "Port of Los Angeles", Lines: []string{"Maersk Line", "COSCO Shipping"}},
	{Name: "Port of Long Beach", Lines: []string{"Evergreen Line", "Yang Ming Line"}},
	{Name: "Port of New York", Lines: []string{"Mediterranean Shipping Company", "CMA CGM"}},
	{Name: "Port of Hamburg", Lines: []string{"Hapag-Lloyd", "Maersk Line"}},
	{Name: "Port of Singapore", Lines: []string{"Ocean Network Express", "PIL Pacific International Lines", "COSCO Shipping"}},
	{Name: "Port of Rotterdam", Lines: []string{"MSC Mediterranean Shipping", "Maersk Line"}},
}

// SeedResult reports which sample names were inserted and which already existed
type SeedResult struct {
	Created []string
	Skipped []string
}

// SeedDestinations inserts the samples, leaving destinations whose name is already taken untouched
func SeedDestinations(ctx context.Context, store DestinationStore, samples []SampleDestination) (*SeedResult, error) {
	result := &SeedResult{}

	for _, sample := range samples {
		timestamp := now()
		destination := &models.Destination{
			ID:              models.NewID(),
			DestinationName: sample.Name,
			ShippingLines:   make(models.ShippingLines, 0, len(sample.Lines)),
			IsActive:        true,
			CreatedAt:       timestamp,
			UpdatedAt:       timestamp,
		}
		for _, lineName := range sample.Lines {
			destination.ShippingLines = append(destination.ShippingLines, models.ShippingLine{
				ID:        models.NewID(),
				LineName:  lineName,
				IsActive:  true,
				CreatedAt: timestamp,
				UpdatedAt: timestamp,
			})
		}

		err := store.CreateDestination(ctx, destination)
		switch {
		case err == nil:
			result.Created = append(result.Created, sample.Name)
		case errors.Is(err, ErrDuplicateName):
			result.Skipped = append(result.Skipped, sample.Name)
		default:
			return result, fmt.Errorf("failed to seed %q: %w", sample.Name, err)
		}
	}

	return result, nil
}
