package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cinegrid/screening-service/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory ScreeningRepository. WithSchedule applies
// mutations directly; the write is the last step of every scheduling
// transaction, so a failing fn never leaves partial state behind.
type fakeStore struct {
	movies     map[int]*domain.Movie
	halls      map[[2]int]*domain.Hall
	screenings map[uuid.UUID]*domain.Screening
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		movies:     make(map[int]*domain.Movie),
		halls:      make(map[[2]int]*domain.Hall),
		screenings: make(map[uuid.UUID]*domain.Screening),
	}
}

func (f *fakeStore) WithSchedule(ctx context.Context, fn func(tx domain.ScheduleTx) error) error {
	return fn(f)
}

func (f *fakeStore) GetById(ctx context.Context, id uuid.UUID) (*domain.ScreeningDetail, error) {
	screening, ok := f.screenings[id]
	if !ok {
		return nil, domain.ErrScreeningNotFound
	}

	movie := f.movies[screening.MovieID]
	hall := f.halls[[2]int{screening.TheaterID, screening.HallID}]

	return &domain.ScreeningDetail{
		Screening:     *screening,
		MovieTitle:    movie.Title,
		MovieDuration: movie.Duration,
		HallName:      hall.Name,
	}, nil
}

func (f *fakeStore) Search(ctx context.Context, filters domain.ScreeningFilters) ([]*domain.ScreeningDetail, *domain.Metadata, error) {
	return nil, nil, nil
}

func (f *fakeStore) LockHall(ctx context.Context, theaterID, hallID int) error {
	return nil
}

func (f *fakeStore) GetMovie(ctx context.Context, movieID int) (*domain.Movie, error) {
	movie, ok := f.movies[movieID]
	if !ok {
		return nil, domain.ErrMovieNotFound
	}

	return movie, nil
}

func (f *fakeStore) GetHall(ctx context.Context, theaterID, hallID int) (*domain.Hall, error) {
	hall, ok := f.halls[[2]int{theaterID, hallID}]
	if !ok {
		return nil, domain.ErrHallNotFound
	}

	return hall, nil
}

func (f *fakeStore) GetScreening(ctx context.Context, id uuid.UUID) (*domain.Screening, error) {
	screening, ok := f.screenings[id]
	if !ok {
		return nil, domain.ErrScreeningNotFound
	}

	copied := *screening

	return &copied, nil
}

func (f *fakeStore) GetHallSlots(ctx context.Context, theaterID, hallID int) ([]domain.HallSlot, error) {
	slots := make([]domain.HallSlot, 0)

	for _, screening := range f.screenings {
		if screening.TheaterID != theaterID || screening.HallID != hallID {
			continue
		}

		slots = append(slots, domain.HallSlot{
			ScreeningID: screening.ID,
			StartTime:   screening.StartTime,
			Duration:    f.movies[screening.MovieID].Duration,
		})
	}

	return slots, nil
}

func (f *fakeStore) InsertScreening(ctx context.Context, screening *domain.Screening) error {
	copied := *screening
	f.screenings[screening.ID] = &copied

	return nil
}

func (f *fakeStore) UpdateScreening(ctx context.Context, screening *domain.Screening) error {
	if _, ok := f.screenings[screening.ID]; !ok {
		return domain.ErrScreeningNotFound
	}

	copied := *screening
	f.screenings[screening.ID] = &copied

	return nil
}

func (f *fakeStore) DeleteScreening(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.screenings[id]; !ok {
		return domain.ErrScreeningNotFound
	}

	delete(f.screenings, id)

	return nil
}

func newTestService(store *fakeStore) *Service {
	return New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func seedStore() *fakeStore {
	store := newFakeStore()

	store.movies[1] = &domain.Movie{ID: 1, Title: "Movie M", Duration: 90}
	store.halls[[2]int{1, 1}] = &domain.Hall{ID: 1, TheaterID: 1, Name: "Hall H"}
	store.halls[[2]int{1, 2}] = &domain.Hall{ID: 2, TheaterID: 1, Name: "Hall H2"}

	return store
}

func createParams(start time.Time) CreateScreeningParams {
	return CreateScreeningParams{
		MovieID:   1,
		TheaterID: 1,
		HallID:    1,
		StartTime: start,
		Price:     decimal.RequireFromString("10.00"),
		Quality:   domain.Quality2D,
	}
}

func TestCreateScreening(t *testing.T) {
	ctx := context.Background()
	at10 := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("creates a screening in an empty hall", func(t *testing.T) {
		store := seedStore()
		service := newTestService(store)

		detail, err := service.CreateScreening(ctx, createParams(at10))

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, detail.ID)
		assert.Equal(t, 1, detail.MovieID)
		assert.Equal(t, 1, detail.HallID)
		assert.Equal(t, at10, detail.StartTime)
		assert.True(t, detail.Price.Equal(decimal.RequireFromString("10.00")))
		assert.Equal(t, domain.Quality2D, detail.Quality)
		assert.Equal(t, "Movie M", detail.MovieTitle)
	})

	t.Run("allows a back-to-back screening", func(t *testing.T) {
		store := seedStore()
		service := newTestService(store)

		_, err := service.CreateScreening(ctx, createParams(at10))
		require.NoError(t, err)

		// Movie M runs 90 minutes, so the first screening ends at 11:30.
		_, err = service.CreateScreening(ctx, createParams(at10.Add(90*time.Minute)))

		assert.NoError(t, err)
	})

	t.Run("rejects an overlapping screening", func(t *testing.T) {
		store := seedStore()
		service := newTestService(store)

		first, err := service.CreateScreening(ctx, createParams(at10))
		require.NoError(t, err)

		_, err = service.CreateScreening(ctx, createParams(at10.Add(60*time.Minute)))

		var conflictErr *domain.ScheduleConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, first.ID, conflictErr.ScreeningID)
		assert.Equal(t, at10, conflictErr.StartTime)
		assert.Equal(t, at10.Add(90*time.Minute), conflictErr.EndTime)
	})

	t.Run("allows the same time in a different hall", func(t *testing.T) {
		store := seedStore()
		service := newTestService(store)

		_, err := service.CreateScreening(ctx, createParams(at10))
		require.NoError(t, err)

		params := createParams(at10)
		params.HallID = 2

		_, err = service.CreateScreening(ctx, params)

		assert.NoError(t, err)
	})

	t.Run("fails when the movie does not exist", func(t *testing.T) {
		store := seedStore()
		service := newTestService(store)

		params := createParams(at10)
		params.MovieID = 42

		_, err := service.CreateScreening(ctx, params)

		assert.ErrorIs(t, err, domain.ErrMovieNotFound)
		assert.Empty(t, store.screenings)
	})

	t.Run("fails when the hall does not belong to the theater", func(t *testing.T) {
		store := seedStore()
		service := newTestService(store)

		params := createParams(at10)
		params.HallID = 9

		_, err := service.CreateScreening(ctx, params)

		assert.ErrorIs(t, err, domain.ErrHallNotFound)
		assert.Empty(t, store.screenings)
	})

	t.Run("uses the movie duration effective at check time", func(t *testing.T) {
		store := seedStore()
		service := newTestService(store)

		_, err := service.CreateScreening(ctx, createParams(at10))
		require.NoError(t, err)

		// The director's cut grows the movie past the 11:30 slot boundary.
		store.movies[1].Duration = 120

		_, err = service.CreateScreening(ctx, createParams(at10.Add(90*time.Minute)))

		var conflictErr *domain.ScheduleConflictError
		assert.ErrorAs(t, err, &conflictErr)
	})

	t.Run("rejects a negative price", func(t *testing.T) {
		store := seedStore()
		service := newTestService(store)

		params := createParams(at10)
		params.Price = decimal.RequireFromString("-1.00")

		_, err := service.CreateScreening(ctx, params)

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Violations, "price must not be negative")
	})

	t.Run("rejects an unknown quality", func(t *testing.T) {
		store := seedStore()
		service := newTestService(store)

		params := createParams(at10)
		params.Quality = "8K"

		_, err := service.CreateScreening(ctx, params)

		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestUpdateScreening(t *testing.T) {
	ctx := context.Background()
	at10 := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("price-only update succeeds despite own interval", func(t *testing.T) {
		store := seedStore()
		service := newTestService(store)

		created, err := service.CreateScreening(ctx, createParams(at10))
		require.NoError(t, err)

		newPrice := decimal.RequireFromString("12.00")

		detail, err := service.UpdateScreening(ctx, created.ID, UpdateScreeningParams{Price: &newPrice})

		require.NoError(t, err)
		assert.True(t, detail.Price.Equal(newPrice))
		assert.Equal(t, at10, detail.StartTime)
	})

	t.Run("rejects moving onto another screening", func(t *testing.T) {
		store := seedStore()
		service := newTestService(store)

		first, err := service.CreateScreening(ctx, createParams(at10))
		require.NoError(t, err)

		second, err := service.CreateScreening(ctx, createParams(at10.Add(90*time.Minute)))
		require.NoError(t, err)

		newStart := at10.Add(30 * time.Minute)

		_, err = service.UpdateScreening(ctx, second.ID, UpdateScreeningParams{StartTime: &newStart})

		var conflictErr *domain.ScheduleConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, first.ID, conflictErr.ScreeningID)
	})

	t.Run("allows moving to a free hall", func(t *testing.T) {
		store := seedStore()
		service := newTestService(store)

		_, err := service.CreateScreening(ctx, createParams(at10))
		require.NoError(t, err)

		params := createParams(at10)
		params.HallID = 2

		moved, err := service.CreateScreening(ctx, params)
		require.NoError(t, err)

		hallID := 1
		newStart := at10.Add(90 * time.Minute)

		detail, err := service.UpdateScreening(ctx, moved.ID, UpdateScreeningParams{
			HallID:    &hallID,
			StartTime: &newStart,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, detail.HallID)
	})

	t.Run("re-validates the movie reference", func(t *testing.T) {
		store := seedStore()
		service := newTestService(store)

		created, err := service.CreateScreening(ctx, createParams(at10))
		require.NoError(t, err)

		movieID := 42

		_, err = service.UpdateScreening(ctx, created.ID, UpdateScreeningParams{MovieID: &movieID})

		assert.ErrorIs(t, err, domain.ErrMovieNotFound)
	})

	t.Run("fails for an unknown screening", func(t *testing.T) {
		store := seedStore()
		service := newTestService(store)

		newPrice := decimal.RequireFromString("12.00")

		_, err := service.UpdateScreening(ctx, uuid.New(), UpdateScreeningParams{Price: &newPrice})

		assert.ErrorIs(t, err, domain.ErrScreeningNotFound)
	})
}

func TestDeleteScreening(t *testing.T) {
	ctx := context.Background()
	at10 := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("deletes and frees the slot", func(t *testing.T) {
		store := seedStore()
		service := newTestService(store)

		created, err := service.CreateScreening(ctx, createParams(at10))
		require.NoError(t, err)

		err = service.DeleteScreening(ctx, created.ID)
		require.NoError(t, err)

		// The slot is free again.
		_, err = service.CreateScreening(ctx, createParams(at10))
		assert.NoError(t, err)
	})

	t.Run("fails for an unknown screening", func(t *testing.T) {
		store := seedStore()
		service := newTestService(store)

		err := service.DeleteScreening(ctx, uuid.New())

		assert.ErrorIs(t, err, domain.ErrScreeningNotFound)
	})
}
