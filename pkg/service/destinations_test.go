package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravi-codingcity/FreightPro-B/pkg/apperrors"
	"github.com/ravi-codingcity/FreightPro-B/pkg/db"
	"github.com/ravi-codingcity/FreightPro-B/pkg/db/dbtest"
	"github.com/ravi-codingcity/FreightPro-B/pkg/models"
)

func newTestService(t *testing.T) *DestinationService {
	t.Helper()
	var mu sync.Mutex
	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return NewDestinationService(dbtest.NewRepository(t), WithClock(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Second)
		return clock
	}))
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func lines(names ...string) []ShippingLineInput {
	out := make([]ShippingLineInput, len(names))
	for i, name := range names {
		out[i] = ShippingLineInput{LineName: name}
	}
	return out
}

func requireCode(t *testing.T, err error, code apperrors.Code) *apperrors.Error {
	t.Helper()
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}

func createDestination(t *testing.T, svc *DestinationService, name string, lineNames ...string) *models.Destination {
	t.Helper()
	d, err := svc.Create(context.Background(), CreateDestinationInput{
		DestinationName: name,
		ShippingLines:   lines(lineNames...),
	})
	require.NoError(t, err)
	return d
}

func TestCreate_TrimsAndDefaults(t *testing.T) {
	svc := newTestService(t)

	d, err := svc.Create(context.Background(), CreateDestinationInput{
		DestinationName: "  Port of Hamburg  ",
		ShippingLines: []ShippingLineInput{
			{LineName: "  Hapag-Lloyd "},
			{LineName: "Maersk Line", IsActive: boolPtr(false)},
			{LineName: "CMA CGM", IsActive: boolPtr(true)},
		},
	})
	require.NoError(t, err)

	assert.True(t, models.IsValidID(d.ID))
	assert.Equal(t, "Port of Hamburg", d.DestinationName)
	assert.True(t, d.IsActive)
	require.Len(t, d.ShippingLines, 3)
	assert.Equal(t, "Hapag-Lloyd", d.ShippingLines[0].LineName)
	assert.True(t, d.ShippingLines[0].IsActive)
	assert.False(t, d.ShippingLines[1].IsActive)
	assert.True(t, d.ShippingLines[2].IsActive)
	assert.Equal(t, 2, d.ActiveShippingLinesCount())
	for _, line := range d.ShippingLines {
		assert.True(t, models.IsValidID(line.ID))
	}

	stored, err := svc.Get(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Len(t, stored.ShippingLines, 3)
}

func TestCreate_WithoutLines(t *testing.T) {
	svc := newTestService(t)

	d := createDestination(t, svc, "Port of Oslo")
	assert.NotNil(t, d.ShippingLines)
	assert.Empty(t, d.ShippingLines)
}

func TestCreate_DuplicateDestinationName(t *testing.T) {
	svc := newTestService(t)
	createDestination(t, svc, "Port of Rotterdam")

	_, err := svc.Create(context.Background(), CreateDestinationInput{DestinationName: "Port of Rotterdam"})
	appErr := requireCode(t, err, apperrors.CodeConflict)
	assert.Equal(t, MsgDestinationExists, appErr.Message)

	// destination names are unique by exact string
	_, err = svc.Create(context.Background(), CreateDestinationInput{DestinationName: "port of rotterdam"})
	assert.NoError(t, err)
}

func TestCreate_CaseInsensitiveLineCollision(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), CreateDestinationInput{
		DestinationName: "Port of Antwerp",
		ShippingLines:   lines("Maersk", "maersk"),
	})
	appErr := requireCode(t, err, apperrors.CodeValidation)
	assert.Equal(t, MsgDuplicateLineNames, appErr.Message)

	all, err := svc.List(context.Background(), db.DestinationFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreate_FieldValidation(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name  string
		input CreateDestinationInput
		field string
		msg   string
	}{
		{
			name:  "missing name",
			input: CreateDestinationInput{},
			field: "destinationName",
			msg:   MsgDestinationRequired,
		},
		{
			name:  "blank name",
			input: CreateDestinationInput{DestinationName: "   "},
			field: "destinationName",
			msg:   MsgDestinationRequired,
		},
		{
			name:  "short name",
			input: CreateDestinationInput{DestinationName: " X "},
			field: "destinationName",
			msg:   MsgDestinationLength,
		},
		{
			name:  "blank line name",
			input: CreateDestinationInput{DestinationName: "Port of Oslo", ShippingLines: lines("MSC", "  ")},
			field: "shippingLines[1].lineName",
			msg:   MsgLineNameRequired,
		},
		{
			name: "long line name",
			input: CreateDestinationInput{
				DestinationName: "Port of Oslo",
				ShippingLines:   lines(strings.Repeat("a", 101)),
			},
			field: "shippingLines[0].lineName",
			msg:   MsgLineNameLength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			appErr := requireCode(t, err, apperrors.CodeValidation)
			require.NotEmpty(t, appErr.Fields)
			assert.Equal(t, tt.field, appErr.Fields[0].Field)
			assert.Equal(t, tt.msg, appErr.Fields[0].Message)
		})
	}
}

func TestGet_IDHandling(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), models.NewID())
	appErr := requireCode(t, err, apperrors.CodeNotFound)
	assert.Equal(t, MsgDestinationNotFound, appErr.Message)
	assert.Equal(t, 404, appErr.HTTPStatus())

	_, err = svc.Get(context.Background(), "not-an-object-id")
	appErr = requireCode(t, err, apperrors.CodeValidation)
	assert.Equal(t, 400, appErr.HTTPStatus())
	assert.Equal(t, []apperrors.FieldError{{Field: "id", Message: MsgInvalidDestinationID}}, appErr.Fields)
}

func TestDelete_SoftDeletes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	kept := createDestination(t, svc, "Port of Felixstowe", "ONE")
	removed := createDestination(t, svc, "Port of Le Havre", "CMA CGM")

	require.NoError(t, svc.Delete(ctx, removed.ID))

	active, err := svc.List(ctx, db.DestinationFilter{})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, kept.ID, active[0].ID)

	got, err := svc.Get(ctx, removed.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Len(t, got.ShippingLines, 1)

	requireCode(t, svc.Delete(ctx, models.NewID()), apperrors.CodeNotFound)
	requireCode(t, svc.Delete(ctx, "bad"), apperrors.CodeValidation)
}

func TestList_SortedAndFiltered(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	createDestination(t, svc, "Port of Singapore", "COSCO Shipping", "ONE")
	createDestination(t, svc, "Port of Busan", "HMM")
	createDestination(t, svc, "Port of Los Angeles", "Maersk Line", "COSCO Shipping")

	all, err := svc.List(ctx, db.DestinationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Port of Busan", all[0].DestinationName)
	assert.Equal(t, "Port of Los Angeles", all[1].DestinationName)
	assert.Equal(t, "Port of Singapore", all[2].DestinationName)

	cosco, err := svc.List(ctx, db.DestinationFilter{ShippingLine: " cosco "})
	require.NoError(t, err)
	require.Len(t, cosco, 2)
	assert.Equal(t, "Port of Los Angeles", cosco[0].DestinationName)
}

func TestUpdate_PartialFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	d := createDestination(t, svc, "Port of Genoa", "MSC", "Grimaldi")

	renamed, err := svc.Update(ctx, d.ID, UpdateDestinationInput{DestinationName: strPtr(" Port of Genova ")})
	require.NoError(t, err)
	assert.Equal(t, "Port of Genova", renamed.DestinationName)
	assert.Equal(t, d.ShippingLines, renamed.ShippingLines)

	replaced, err := svc.Update(ctx, d.ID, UpdateDestinationInput{ShippingLines: &[]ShippingLineInput{{LineName: "Costa"}}})
	require.NoError(t, err)
	assert.Equal(t, "Port of Genova", replaced.DestinationName)
	require.Len(t, replaced.ShippingLines, 1)
	assert.Equal(t, "Costa", replaced.ShippingLines[0].LineName)

	unchanged, err := svc.Update(ctx, d.ID, UpdateDestinationInput{})
	require.NoError(t, err)
	assert.Equal(t, "Port of Genova", unchanged.DestinationName)
	assert.Len(t, unchanged.ShippingLines, 1)
}

func TestUpdate_ReplacementKeepsEchoedIDs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	d := createDestination(t, svc, "Port of Santos", "MSC", "Hamburg Sud")
	msc := d.ShippingLines[0]

	replacement := []ShippingLineInput{
		{ID: models.NewID(), LineName: "Maersk Line"},
		{ID: msc.ID, LineName: "MSC Mediterranean", IsActive: boolPtr(false)},
	}
	updated, err := svc.Update(ctx, d.ID, UpdateDestinationInput{ShippingLines: &replacement})
	require.NoError(t, err)
	require.Len(t, updated.ShippingLines, 2)

	assert.NotEqual(t, replacement[0].ID, updated.ShippingLines[0].ID, "unknown ids are replaced")
	assert.True(t, models.IsValidID(updated.ShippingLines[0].ID))

	kept := updated.ShippingLines[1]
	assert.Equal(t, msc.ID, kept.ID)
	assert.Equal(t, "MSC Mediterranean", kept.LineName)
	assert.False(t, kept.IsActive)
	assert.True(t, kept.CreatedAt.Equal(msc.CreatedAt))
	assert.True(t, kept.UpdatedAt.After(msc.UpdatedAt))
}

func TestUpdate_Rejections(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	d := createDestination(t, svc, "Port of Durban", "Safmarine")
	createDestination(t, svc, "Port of Cape Town")

	_, err := svc.Update(ctx, d.ID, UpdateDestinationInput{DestinationName: strPtr("Port of Cape Town")})
	requireCode(t, err, apperrors.CodeConflict)

	_, err = svc.Update(ctx, d.ID, UpdateDestinationInput{DestinationName: strPtr(" ")})
	appErr := requireCode(t, err, apperrors.CodeValidation)
	assert.Equal(t, MsgDestinationLength, appErr.Fields[0].Message)

	dupes := lines("ONE", "one")
	_, err = svc.Update(ctx, d.ID, UpdateDestinationInput{ShippingLines: &dupes})
	appErr = requireCode(t, err, apperrors.CodeValidation)
	assert.Equal(t, MsgDuplicateLineNames, appErr.Message)

	lineID := d.ShippingLines[0].ID
	sameID := []ShippingLineInput{{ID: lineID, LineName: "Safmarine"}, {ID: lineID, LineName: "Maersk"}}
	_, err = svc.Update(ctx, d.ID, UpdateDestinationInput{ShippingLines: &sameID})
	appErr = requireCode(t, err, apperrors.CodeValidation)
	assert.Equal(t, MsgDuplicateLineIDs, appErr.Message)

	badID := []ShippingLineInput{{ID: "xyz", LineName: "Safmarine"}}
	_, err = svc.Update(ctx, d.ID, UpdateDestinationInput{ShippingLines: &badID})
	appErr = requireCode(t, err, apperrors.CodeValidation)
	assert.Equal(t, apperrors.FieldError{Field: "shippingLines[0].id", Message: MsgInvalidLineID}, appErr.Fields[0])

	_, err = svc.Update(ctx, models.NewID(), UpdateDestinationInput{DestinationName: strPtr("Port of Nowhere")})
	requireCode(t, err, apperrors.CodeNotFound)

	empty := lines("Evergreen")
	_, err = svc.Update(ctx, models.NewID(), UpdateDestinationInput{ShippingLines: &empty})
	requireCode(t, err, apperrors.CodeNotFound)

	got, err := svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Port of Durban", got.DestinationName)
	assert.Len(t, got.ShippingLines, 1)
}
