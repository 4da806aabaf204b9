// Package fooddiary implements the nutrition diary workflows: recording
// days, creating foods, and aggregating what was eaten.
package fooddiary

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/webtriad/webtriad/internal/app/domain/diary"
	"github.com/webtriad/webtriad/internal/app/storage"
	"github.com/webtriad/webtriad/internal/errors"
	"github.com/webtriad/webtriad/pkg/logger"
)

// Service manages diary days and foods.
type Service struct {
	store storage.DiaryStore
	log   *logger.Logger
}

// New constructs a diary service.
func New(store storage.DiaryStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("fooddiary")
	}
	return &Service{store: store, log: log}
}

// RecordDay parses a YYYY-MM-DD form date and records the day, reusing the
// existing row when the date was already logged.
func (s *Service) RecordDay(ctx context.Context, date string) (diary.LogDate, error) {
	parsed, err := time.Parse(diary.InputDateLayout, strings.TrimSpace(date))
	if err != nil {
		return diary.LogDate{}, errors.BadRequest("date must be YYYY-MM-DD")
	}

	ld, err := s.store.UpsertLogDate(ctx, parsed.Format(diary.StorageDateLayout))
	if err != nil {
		return diary.LogDate{}, errors.Internal("record day", err)
	}
	s.log.Infof("day %s recorded", ld.EntryDate)
	return ld, nil
}

// ListDays returns all logged days with their SQL-aggregated nutrition
// totals, newest first.
func (s *Service) ListDays(ctx context.Context) ([]diary.DaySummary, error) {
	summaries, err := s.store.ListDaySummaries(ctx)
	if err != nil {
		return nil, errors.Internal("list days", err)
	}
	return summaries, nil
}

// ViewDay returns the foods logged for a stored-format date plus a running
// total summed here in application code. For any fixture this total must
// match the SQL aggregation ListDays produces for the same day.
func (s *Service) ViewDay(ctx context.Context, entryDate string) (diary.DayDetail, error) {
	if _, err := time.Parse(diary.StorageDateLayout, entryDate); err != nil {
		return diary.DayDetail{}, errors.BadRequest("date must be YYYYMMDD")
	}

	day, err := s.store.GetLogDateByEntry(ctx, entryDate)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return diary.DayDetail{}, errors.NotFound("day")
		}
		return diary.DayDetail{}, errors.Internal("get day", err)
	}

	foods, err := s.store.ListFoodsForDay(ctx, day.ID)
	if err != nil {
		return diary.DayDetail{}, errors.Internal("list foods for day", err)
	}

	detail := diary.DayDetail{Day: day, Foods: foods}
	for _, f := range foods {
		detail.Total.Protein += f.Protein
		detail.Total.Carbohydrates += f.Carbohydrates
		detail.Total.Fat += f.Fat
		detail.Total.Calories += f.Calories
	}
	return detail, nil
}

// AddFoodToDay associates a food with a stored-format date.
func (s *Service) AddFoodToDay(ctx context.Context, entryDate string, foodID int64) error {
	day, err := s.store.GetLogDateByEntry(ctx, entryDate)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return errors.NotFound("day")
		}
		return errors.Internal("get day", err)
	}

	if _, err := s.store.GetFood(ctx, foodID); err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return errors.NotFound("food")
		}
		return errors.Internal("get food", err)
	}

	if err := s.store.AddFoodToDay(ctx, day.ID, foodID); err != nil {
		return errors.Internal("add food to day", err)
	}
	s.log.Infof("food %d logged on %s", foodID, entryDate)
	return nil
}

// CreateFood stores a food with its calories derived from the macros.
// Calories are fixed at creation time and never re-derived afterwards.
func (s *Service) CreateFood(ctx context.Context, name string, protein, carbohydrates, fat int) (diary.Food, error) {
	if strings.TrimSpace(name) == "" {
		return diary.Food{}, errors.BadRequest("name is required")
	}
	if protein < 0 || carbohydrates < 0 || fat < 0 {
		return diary.Food{}, errors.BadRequest("macros must not be negative")
	}

	f := diary.Food{
		Name:          strings.TrimSpace(name),
		Protein:       protein,
		Carbohydrates: carbohydrates,
		Fat:           fat,
		Calories:      protein*4 + carbohydrates*4 + fat*9,
	}
	created, err := s.store.CreateFood(ctx, f)
	if err != nil {
		return diary.Food{}, errors.Internal("create food", err)
	}
	s.log.Infof("food %d (%s) created", created.ID, created.Name)
	return created, nil
}

// ListFoods returns all foods.
func (s *Service) ListFoods(ctx context.Context) ([]diary.Food, error) {
	foods, err := s.store.ListFoods(ctx)
	if err != nil {
		return nil, errors.Internal("list foods", err)
	}
	return foods, nil
}
