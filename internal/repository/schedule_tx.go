package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/cinegrid/screening-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// scheduleTx implements domain.ScheduleTx on top of a single pgx transaction.
type scheduleTx struct {
	tx pgx.Tx
}

// LockHall takes a transaction-scoped advisory lock keyed on the hall's
// composite identity. It serializes the check-then-insert sequence of
// concurrent scheduling calls for the same hall; writers of other halls and
// all readers are unaffected. The lock is released at commit or rollback.
func (s *scheduleTx) LockHall(ctx context.Context, theaterID, hallID int) error {
	_, err := s.tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, theaterID, hallID)

	return err
}

func (s *scheduleTx) GetMovie(ctx context.Context, movieID int) (*domain.Movie, error) {
	query := `
		SELECT id, title, description, duration, recommended, release_date
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie

	err := s.tx.QueryRow(ctx, query, movieID).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Duration,
		&movie.Recommended,
		&movie.ReleaseDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovieNotFound
		}

		return nil, err
	}

	return &movie, nil
}

func (s *scheduleTx) GetHall(ctx context.Context, theaterID, hallID int) (*domain.Hall, error) {
	query := `
		SELECT id, theater_id, name, capacity
		FROM halls
		WHERE theater_id = $1 AND id = $2
	`

	var hall domain.Hall

	err := s.tx.QueryRow(ctx, query, theaterID, hallID).Scan(
		&hall.ID,
		&hall.TheaterID,
		&hall.Name,
		&hall.Capacity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHallNotFound
		}

		return nil, err
	}

	return &hall, nil
}

func (s *scheduleTx) GetScreening(ctx context.Context, id uuid.UUID) (*domain.Screening, error) {
	query := `
		SELECT id, movie_id, theater_id, hall_id, start_time, price, quality, created_at, updated_at
		FROM screenings
		WHERE id = $1
	`

	var screening domain.Screening

	err := s.tx.QueryRow(ctx, query, id).Scan(
		&screening.ID,
		&screening.MovieID,
		&screening.TheaterID,
		&screening.HallID,
		&screening.StartTime,
		&screening.Price,
		&screening.Quality,
		&screening.CreatedAt,
		&screening.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrScreeningNotFound
		}

		return nil, err
	}

	return &screening, nil
}

// GetHallSlots returns every screening booked into the hall together with the
// current duration of its movie, so the caller computes end times from the
// durations effective right now.
func (s *scheduleTx) GetHallSlots(ctx context.Context, theaterID, hallID int) ([]domain.HallSlot, error) {
	query := `
		SELECT s.id, s.start_time, m.duration
		FROM screenings s
		JOIN movies m ON s.movie_id = m.id
		WHERE s.theater_id = $1 AND s.hall_id = $2
		ORDER BY s.start_time
	`

	rows, err := s.tx.Query(ctx, query, theaterID, hallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]domain.HallSlot, 0)

	for rows.Next() {
		var slot domain.HallSlot

		err := rows.Scan(&slot.ScreeningID, &slot.StartTime, &slot.Duration)
		if err != nil {
			return nil, err
		}

		slots = append(slots, slot)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}

func (s *scheduleTx) InsertScreening(ctx context.Context, screening *domain.Screening) error {
	query := `
		INSERT INTO screenings (id, movie_id, theater_id, hall_id, start_time, price, quality)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := s.tx.QueryRow(
		ctx,
		query,
		screening.ID,
		screening.MovieID,
		screening.TheaterID,
		screening.HallID,
		screening.StartTime,
		screening.Price,
		screening.Quality,
	).Scan(&screening.CreatedAt, &screening.UpdatedAt)

	return mapForeignKeyViolation(err)
}

func (s *scheduleTx) UpdateScreening(ctx context.Context, screening *domain.Screening) error {
	query := `
		UPDATE screenings
		SET movie_id = $2, theater_id = $3, hall_id = $4, start_time = $5, price = $6, quality = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := s.tx.QueryRow(
		ctx,
		query,
		screening.ID,
		screening.MovieID,
		screening.TheaterID,
		screening.HallID,
		screening.StartTime,
		screening.Price,
		screening.Quality,
	).Scan(&screening.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrScreeningNotFound
	}

	return mapForeignKeyViolation(err)
}

func (s *scheduleTx) DeleteScreening(ctx context.Context, id uuid.UUID) error {
	result, err := s.tx.Exec(ctx, `DELETE FROM screenings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrScreeningNotFound
	}

	return nil
}

// mapForeignKeyViolation translates screenings FK violations into the matching
// not-found error. The service checks existence before writing, but the FK can
// still fire if the movie or hall is deleted between its check and the write.
func mapForeignKeyViolation(err error) error {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		switch {
		case strings.Contains(pgErr.ConstraintName, "movie"):
			return domain.ErrMovieNotFound
		case strings.Contains(pgErr.ConstraintName, "hall"), strings.Contains(pgErr.ConstraintName, "theater"):
			return domain.ErrHallNotFound
		}
	}

	return err
}
