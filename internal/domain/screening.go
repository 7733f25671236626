package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quality is the projection format of a screening.
type Quality string

const (
	Quality2D    Quality = "2D"
	Quality3D    Quality = "3D"
	QualityIMAX  Quality = "IMAX"
	Quality4DX   Quality = "4DX"
	QualityDolby Quality = "Dolby"
)

func Qualities() []Quality {
	return []Quality{Quality2D, Quality3D, QualityIMAX, Quality4DX, QualityDolby}
}

func (q Quality) Valid() bool {
	for _, known := range Qualities() {
		if q == known {
			return true
		}
	}

	return false
}

// Screening is one scheduled showing of a movie in a hall. Its end time is
// deliberately not stored: it is derived from the referenced movie's duration
// as effective at conflict-check time, so movie edits are picked up by later
// scheduling decisions.
type Screening struct {
	ID        uuid.UUID
	MovieID   int
	TheaterID int
	HallID    int
	StartTime time.Time
	Price     decimal.Decimal
	Quality   Quality
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScreeningDetail is a screening read back with its movie and hall
// associations resolved.
type ScreeningDetail struct {
	Screening
	MovieTitle    string
	MovieDuration int
	TheaterName   string
	HallName      string
}

// HallSlot is one occupied interval in a hall: a screening's start time
// together with the duration of the movie it shows.
type HallSlot struct {
	ScreeningID uuid.UUID
	StartTime   time.Time
	Duration    int // minutes
}

type ScreeningFilters struct {
	Pagination
	MovieID     *int
	TheaterID   *int
	HallID      *int
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Quality     string // case-insensitive substring
	Recommended *bool
	Date        *time.Time // single-day window in the date's location
}

// ScheduleTx is the set of operations available inside one scheduling
// transaction. Existence checks, the overlap scan and the write all run
// against the same snapshot, serialized per hall by LockHall.
type ScheduleTx interface {
	LockHall(ctx context.Context, theaterID, hallID int) error
	GetMovie(ctx context.Context, movieID int) (*Movie, error)
	GetHall(ctx context.Context, theaterID, hallID int) (*Hall, error)
	GetScreening(ctx context.Context, id uuid.UUID) (*Screening, error)
	GetHallSlots(ctx context.Context, theaterID, hallID int) ([]HallSlot, error)
	InsertScreening(ctx context.Context, screening *Screening) error
	UpdateScreening(ctx context.Context, screening *Screening) error
	DeleteScreening(ctx context.Context, id uuid.UUID) error
}

type ScreeningRepository interface {
	// WithSchedule runs fn inside a single database transaction, committing
	// when fn returns nil and rolling back otherwise.
	WithSchedule(ctx context.Context, fn func(tx ScheduleTx) error) error
	GetById(ctx context.Context, id uuid.UUID) (*ScreeningDetail, error)
	Search(ctx context.Context, filters ScreeningFilters) ([]*ScreeningDetail, *Metadata, error)
}
