package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cinegrid/screening-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresScreeningRepository struct {
	db *pgxpool.Pool
}

func NewPostgresScreeningRepository(db *pgxpool.Pool) *PostgresScreeningRepository {
	return &PostgresScreeningRepository{
		db: db,
	}
}

// WithSchedule runs fn inside one transaction. The default read-committed
// isolation is enough because every mutating path takes the per-hall advisory
// lock (see LockHall) before scanning for overlaps.
func (p *PostgresScreeningRepository) WithSchedule(ctx context.Context, fn func(tx domain.ScheduleTx) error) error {
	var txOptions pgx.TxOptions

	tx, err := p.db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(&scheduleTx{tx: tx})
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

const screeningDetailQuery = `
	SELECT
		s.id,
		s.movie_id,
		s.theater_id,
		s.hall_id,
		s.start_time,
		s.price,
		s.quality,
		s.created_at,
		s.updated_at,
		m.title,
		m.duration,
		t.name,
		h.name
	FROM screenings s
	JOIN movies m ON s.movie_id = m.id
	JOIN theaters t ON s.theater_id = t.id
	JOIN halls h ON s.theater_id = h.theater_id AND s.hall_id = h.id
`

func (p *PostgresScreeningRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.ScreeningDetail, error) {
	query := screeningDetailQuery + ` WHERE s.id = $1`

	var detail domain.ScreeningDetail

	err := p.db.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.MovieID,
		&detail.TheaterID,
		&detail.HallID,
		&detail.StartTime,
		&detail.Price,
		&detail.Quality,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.MovieTitle,
		&detail.MovieDuration,
		&detail.TheaterName,
		&detail.HallName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrScreeningNotFound
		}

		return nil, err
	}

	return &detail, nil
}

func (p *PostgresScreeningRepository) Search(
	ctx context.Context,
	filters domain.ScreeningFilters) ([]*domain.ScreeningDetail, *domain.Metadata, error) {

	conditions := []string{"TRUE"}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.MovieID != nil {
		conditions = append(conditions, "s.movie_id = "+arg(*filters.MovieID))
	}
	if filters.TheaterID != nil {
		conditions = append(conditions, "s.theater_id = "+arg(*filters.TheaterID))
	}
	if filters.HallID != nil {
		conditions = append(conditions, "s.hall_id = "+arg(*filters.HallID))
	}
	if filters.MinPrice != nil {
		conditions = append(conditions, "s.price >= "+arg(*filters.MinPrice))
	}
	if filters.MaxPrice != nil {
		conditions = append(conditions, "s.price <= "+arg(*filters.MaxPrice))
	}
	if filters.Quality != "" {
		conditions = append(conditions, "s.quality ILIKE '%' || "+arg(filters.Quality)+" || '%'")
	}
	if filters.Recommended != nil {
		conditions = append(conditions, "m.recommended = "+arg(*filters.Recommended))
	}
	if filters.Date != nil {
		day := arg(*filters.Date)
		conditions = append(conditions, "s.start_time >= "+day)
		conditions = append(conditions, "s.start_time < "+day+" + INTERVAL '1 day'")
	}
	if filters.Term != "" {
		term := arg(filters.Term)
		conditions = append(conditions, fmt.Sprintf(
			"(m.title ILIKE '%%' || %[1]s || '%%' OR t.name ILIKE '%%' || %[1]s || '%%' OR h.name ILIKE '%%' || %[1]s || '%%')",
			term,
		))
	}

	// Sort values are whitelisted at the validation boundary.
	query := fmt.Sprintf(`
		SELECT
			COUNT(*) OVER(),
			s.id,
			s.movie_id,
			s.theater_id,
			s.hall_id,
			s.start_time,
			s.price,
			s.quality,
			s.created_at,
			s.updated_at,
			m.title,
			m.duration,
			t.name,
			h.name
		FROM screenings s
		JOIN movies m ON s.movie_id = m.id
		JOIN theaters t ON s.theater_id = t.id
		JOIN halls h ON s.theater_id = h.theater_id AND s.hall_id = h.id
		WHERE %s
		ORDER BY s.%s %s, s.id ASC
		LIMIT %s OFFSET %s`,
		strings.Join(conditions, " AND "),
		filters.SortColumn(),
		filters.SortDirection(),
		arg(filters.Limit()),
		arg(filters.Offset()),
	)

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	screenings := make([]*domain.ScreeningDetail, 0)
	totalRecords := 0

	for rows.Next() {
		var detail domain.ScreeningDetail

		err := rows.Scan(
			&totalRecords,
			&detail.ID,
			&detail.MovieID,
			&detail.TheaterID,
			&detail.HallID,
			&detail.StartTime,
			&detail.Price,
			&detail.Quality,
			&detail.CreatedAt,
			&detail.UpdatedAt,
			&detail.MovieTitle,
			&detail.MovieDuration,
			&detail.TheaterName,
			&detail.HallName,
		)
		if err != nil {
			return nil, nil, err
		}

		screenings = append(screenings, &detail)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return screenings, metadata, nil
}
