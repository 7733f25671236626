// Package scheduler guarantees that the screenings booked into any hall are
// pairwise non-overlapping in time, and that every screening references an
// existing movie and hall at the moment it is committed.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/cinegrid/screening-service/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	screenings domain.ScreeningRepository
	logger     *slog.Logger
}

func New(screenings domain.ScreeningRepository, logger *slog.Logger) *Service {
	return &Service{
		screenings: screenings,
		logger:     logger,
	}
}

type CreateScreeningParams struct {
	MovieID   int
	TheaterID int
	HallID    int
	StartTime time.Time
	Price     decimal.Decimal
	Quality   domain.Quality
}

func (p CreateScreeningParams) validate() error {
	var violations []string

	if p.Price.IsNegative() {
		violations = append(violations, "price must not be negative")
	}
	if !p.Quality.Valid() {
		violations = append(violations, "quality must be one of 2D, 3D, IMAX, 4DX, Dolby")
	}
	if p.StartTime.IsZero() {
		violations = append(violations, "start time must be set")
	}

	if len(violations) > 0 {
		return &domain.ValidationError{Violations: violations}
	}

	return nil
}

// UpdateScreeningParams carries a partial update; nil fields keep the
// screening's current value.
type UpdateScreeningParams struct {
	MovieID   *int
	TheaterID *int
	HallID    *int
	StartTime *time.Time
	Price     *decimal.Decimal
	Quality   *domain.Quality
}

func (p UpdateScreeningParams) validate() error {
	var violations []string

	if p.Price != nil && p.Price.IsNegative() {
		violations = append(violations, "price must not be negative")
	}
	if p.Quality != nil && !p.Quality.Valid() {
		violations = append(violations, "quality must be one of 2D, 3D, IMAX, 4DX, Dolby")
	}
	if p.StartTime != nil && p.StartTime.IsZero() {
		violations = append(violations, "start time must be set")
	}

	if len(violations) > 0 {
		return &domain.ValidationError{Violations: violations}
	}

	return nil
}

// CreateScreening validates the referenced movie and hall, checks the
// proposed interval against every screening already booked into the hall,
// and persists the screening. All of it runs in one transaction, serialized
// per hall, so two concurrent creates cannot both pass the overlap scan.
func (s *Service) CreateScreening(ctx context.Context, params CreateScreeningParams) (*domain.ScreeningDetail, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	screening := &domain.Screening{
		ID:        uuid.New(),
		MovieID:   params.MovieID,
		TheaterID: params.TheaterID,
		HallID:    params.HallID,
		StartTime: params.StartTime,
		Price:     params.Price,
		Quality:   params.Quality,
	}

	err := s.screenings.WithSchedule(ctx, func(tx domain.ScheduleTx) error {
		if err := tx.LockHall(ctx, screening.TheaterID, screening.HallID); err != nil {
			return err
		}

		movie, err := tx.GetMovie(ctx, screening.MovieID)
		if err != nil {
			return err
		}

		if _, err := tx.GetHall(ctx, screening.TheaterID, screening.HallID); err != nil {
			return err
		}

		proposed := NewInterval(screening.StartTime, movie.Duration)

		if err := s.checkHallFree(ctx, tx, screening, proposed); err != nil {
			return err
		}

		return tx.InsertScreening(ctx, screening)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("screening created",
		"screening_id", screening.ID,
		"theater_id", screening.TheaterID,
		"hall_id", screening.HallID,
		"start_time", screening.StartTime,
	)

	return s.screenings.GetById(ctx, screening.ID)
}

// UpdateScreening merges the partial update over the screening's current
// values and re-runs the full create-time validation against the effective
// state, excluding the screening itself from the overlap scan. Even a
// price-only update re-verifies the schedule; re-checking everything on any
// mutation is cheaper than tracking which fields need it.
func (s *Service) UpdateScreening(ctx context.Context, id uuid.UUID, params UpdateScreeningParams) (*domain.ScreeningDetail, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	err := s.screenings.WithSchedule(ctx, func(tx domain.ScheduleTx) error {
		screening, err := tx.GetScreening(ctx, id)
		if err != nil {
			return err
		}

		applyUpdate(screening, params)

		if err := tx.LockHall(ctx, screening.TheaterID, screening.HallID); err != nil {
			return err
		}

		movie, err := tx.GetMovie(ctx, screening.MovieID)
		if err != nil {
			return err
		}

		if _, err := tx.GetHall(ctx, screening.TheaterID, screening.HallID); err != nil {
			return err
		}

		proposed := NewInterval(screening.StartTime, movie.Duration)

		if err := s.checkHallFree(ctx, tx, screening, proposed); err != nil {
			return err
		}

		return tx.UpdateScreening(ctx, screening)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("screening updated", "screening_id", id)

	return s.screenings.GetById(ctx, id)
}

// DeleteScreening removes the screening. No conflict check: removing a
// screening can only shrink the occupied set of its hall.
func (s *Service) DeleteScreening(ctx context.Context, id uuid.UUID) error {
	err := s.screenings.WithSchedule(ctx, func(tx domain.ScheduleTx) error {
		return tx.DeleteScreening(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("screening deleted", "screening_id", id)

	return nil
}

func (s *Service) GetScreening(ctx context.Context, id uuid.UUID) (*domain.ScreeningDetail, error) {
	return s.screenings.GetById(ctx, id)
}

func (s *Service) SearchScreenings(ctx context.Context, filters domain.ScreeningFilters) ([]*domain.ScreeningDetail, *domain.Metadata, error) {
	return s.screenings.Search(ctx, filters)
}

func (s *Service) GetScreeningsByMovie(ctx context.Context, movieID int, p domain.Pagination) ([]*domain.ScreeningDetail, *domain.Metadata, error) {
	return s.screenings.Search(ctx, domain.ScreeningFilters{Pagination: p, MovieID: &movieID})
}

func (s *Service) GetScreeningsByTheater(ctx context.Context, theaterID int, p domain.Pagination) ([]*domain.ScreeningDetail, *domain.Metadata, error) {
	return s.screenings.Search(ctx, domain.ScreeningFilters{Pagination: p, TheaterID: &theaterID})
}

// GetScreeningsByHall needs both ids: hall identifiers are only unique within
// a theater.
func (s *Service) GetScreeningsByHall(ctx context.Context, theaterID, hallID int, p domain.Pagination) ([]*domain.ScreeningDetail, *domain.Metadata, error) {
	return s.screenings.Search(ctx, domain.ScreeningFilters{Pagination: p, TheaterID: &theaterID, HallID: &hallID})
}

func (s *Service) GetScreeningsByDate(ctx context.Context, date time.Time, p domain.Pagination) ([]*domain.ScreeningDetail, *domain.Metadata, error) {
	return s.screenings.Search(ctx, domain.ScreeningFilters{Pagination: p, Date: &date})
}

// checkHallFree scans every other screening in the hall and fails with a
// ScheduleConflictError on the first occupied slot intersecting proposed.
// Slot end times come from each slot's movie duration as stored right now,
// not from whatever the duration was when that screening was scheduled.
func (s *Service) checkHallFree(ctx context.Context, tx domain.ScheduleTx, screening *domain.Screening, proposed Interval) error {
	slots, err := tx.GetHallSlots(ctx, screening.TheaterID, screening.HallID)
	if err != nil {
		return err
	}

	for _, slot := range slots {
		if slot.ScreeningID == screening.ID {
			continue
		}

		occupied := NewInterval(slot.StartTime, slot.Duration)
		if proposed.Overlaps(occupied) {
			return &domain.ScheduleConflictError{
				ScreeningID: slot.ScreeningID,
				StartTime:   occupied.Start,
				EndTime:     occupied.End,
			}
		}
	}

	return nil
}

func applyUpdate(screening *domain.Screening, params UpdateScreeningParams) {
	if params.MovieID != nil {
		screening.MovieID = *params.MovieID
	}
	if params.TheaterID != nil {
		screening.TheaterID = *params.TheaterID
	}
	if params.HallID != nil {
		screening.HallID = *params.HallID
	}
	if params.StartTime != nil {
		screening.StartTime = *params.StartTime
	}
	if params.Price != nil {
		screening.Price = *params.Price
	}
	if params.Quality != nil {
		screening.Quality = *params.Quality
	}
}
