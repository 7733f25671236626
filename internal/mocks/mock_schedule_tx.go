package mocks

import (
	"context"

	"github.com/cinegrid/screening-service/internal/domain"
	"github.com/google/uuid"
)

type MockScheduleTx struct {
	domain.ScheduleTx
	LockHallFunc        func(ctx context.Context, theaterID, hallID int) error
	GetMovieFunc        func(ctx context.Context, movieID int) (*domain.Movie, error)
	GetHallFunc         func(ctx context.Context, theaterID, hallID int) (*domain.Hall, error)
	GetScreeningFunc    func(ctx context.Context, id uuid.UUID) (*domain.Screening, error)
	GetHallSlotsFunc    func(ctx context.Context, theaterID, hallID int) ([]domain.HallSlot, error)
	InsertScreeningFunc func(ctx context.Context, screening *domain.Screening) error
	UpdateScreeningFunc func(ctx context.Context, screening *domain.Screening) error
	DeleteScreeningFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *MockScheduleTx) LockHall(ctx context.Context, theaterID, hallID int) error {
	if m.LockHallFunc == nil {
		return nil
	}

	return m.LockHallFunc(ctx, theaterID, hallID)
}

func (m *MockScheduleTx) GetMovie(ctx context.Context, movieID int) (*domain.Movie, error) {
	return m.GetMovieFunc(ctx, movieID)
}

func (m *MockScheduleTx) GetHall(ctx context.Context, theaterID, hallID int) (*domain.Hall, error) {
	return m.GetHallFunc(ctx, theaterID, hallID)
}

func (m *MockScheduleTx) GetScreening(ctx context.Context, id uuid.UUID) (*domain.Screening, error) {
	return m.GetScreeningFunc(ctx, id)
}

func (m *MockScheduleTx) GetHallSlots(ctx context.Context, theaterID, hallID int) ([]domain.HallSlot, error) {
	return m.GetHallSlotsFunc(ctx, theaterID, hallID)
}

func (m *MockScheduleTx) InsertScreening(ctx context.Context, screening *domain.Screening) error {
	return m.InsertScreeningFunc(ctx, screening)
}

func (m *MockScheduleTx) UpdateScreening(ctx context.Context, screening *domain.Screening) error {
	return m.UpdateScreeningFunc(ctx, screening)
}

func (m *MockScheduleTx) DeleteScreening(ctx context.Context, id uuid.UUID) error {
	return m.DeleteScreeningFunc(ctx, id)
}
