package fooddiary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/webtriad/webtriad/internal/app/storage/memory"
	"github.com/webtriad/webtriad/internal/errors"
)

func newService() *Service {
	return New(memory.New(), nil)
}

func TestRecordDayNormalizesDate(t *testing.T) {
	svc := newService()

	day, err := svc.RecordDay(context.Background(), "2026-01-15")
	require.NoError(t, err)
	require.Equal(t, "20260115", day.EntryDate)
	require.Equal(t, "January 15, 2026", day.DisplayDate())
}

func TestRecordDayRejectsBadDate(t *testing.T) {
	svc := newService()

	_, err := svc.RecordDay(context.Background(), "15/01/2026")
	require.True(t, errors.IsCode(err, errors.CodeBadRequest))
}

func TestRecordDayReusesExistingDay(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	first, err := svc.RecordDay(ctx, "2026-01-15")
	require.NoError(t, err)
	second, err := svc.RecordDay(ctx, "2026-01-15")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	days, err := svc.ListDays(ctx)
	require.NoError(t, err)
	require.Len(t, days, 1)
}

func TestCreateFoodDerivesCalories(t *testing.T) {
	svc := newService()

	f, err := svc.CreateFood(context.Background(), "Chicken Breast", 31, 0, 4)
	require.NoError(t, err)
	require.Equal(t, 31*4+0*4+4*9, f.Calories)
}

func TestCreateFoodValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.CreateFood(ctx, "  ", 1, 1, 1)
	require.True(t, errors.IsCode(err, errors.CodeBadRequest))

	_, err = svc.CreateFood(ctx, "Egg", -1, 1, 1)
	require.True(t, errors.IsCode(err, errors.CodeBadRequest))
}

func TestAggregationPathsAgree(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	day, err := svc.RecordDay(ctx, "2026-01-15")
	require.NoError(t, err)

	egg, err := svc.CreateFood(ctx, "Egg", 6, 1, 5)
	require.NoError(t, err)
	oats, err := svc.CreateFood(ctx, "Oats", 13, 68, 7)
	require.NoError(t, err)

	require.NoError(t, svc.AddFoodToDay(ctx, day.EntryDate, egg.ID))
	require.NoError(t, svc.AddFoodToDay(ctx, day.EntryDate, oats.ID))

	detail, err := svc.ViewDay(ctx, day.EntryDate)
	require.NoError(t, err)
	require.Len(t, detail.Foods, 2)
	require.Equal(t, egg.Protein+oats.Protein, detail.Total.Protein)
	require.Equal(t, egg.Calories+oats.Calories, detail.Total.Calories)

	days, err := svc.ListDays(ctx)
	require.NoError(t, err)
	require.Len(t, days, 1)

	// The loop-summed per-day total and the store-aggregated listing total
	// must agree for the same fixture.
	require.Equal(t, detail.Total, days[0].Nutrition)
}

func TestViewDayMissingIsNotFound(t *testing.T) {
	svc := newService()

	_, err := svc.ViewDay(context.Background(), "20260131")
	require.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestAddFoodToDayMissingFoodIsNotFound(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	day, err := svc.RecordDay(ctx, "2026-01-15")
	require.NoError(t, err)

	err = svc.AddFoodToDay(ctx, day.EntryDate, 42)
	require.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestDuplicateFoodAssociationsCountTwice(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	day, err := svc.RecordDay(ctx, "2026-01-15")
	require.NoError(t, err)
	egg, err := svc.CreateFood(ctx, "Egg", 6, 1, 5)
	require.NoError(t, err)

	// Eating the same food twice in a day is two association rows.
	require.NoError(t, svc.AddFoodToDay(ctx, day.EntryDate, egg.ID))
	require.NoError(t, svc.AddFoodToDay(ctx, day.EntryDate, egg.ID))

	detail, err := svc.ViewDay(ctx, day.EntryDate)
	require.NoError(t, err)
	require.Len(t, detail.Foods, 2)
	require.Equal(t, 2*egg.Calories, detail.Total.Calories)
}
