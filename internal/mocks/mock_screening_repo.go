package mocks

import (
	"context"

	"github.com/cinegrid/screening-service/internal/domain"
	"github.com/google/uuid"
)

type MockScreeningRepo struct {
	domain.ScreeningRepository
	WithScheduleFunc func(ctx context.Context, fn func(tx domain.ScheduleTx) error) error
	GetByIdFunc      func(ctx context.Context, id uuid.UUID) (*domain.ScreeningDetail, error)
	SearchFunc       func(ctx context.Context, filters domain.ScreeningFilters) ([]*domain.ScreeningDetail, *domain.Metadata, error)
}

func (m *MockScreeningRepo) WithSchedule(ctx context.Context, fn func(tx domain.ScheduleTx) error) error {
	return m.WithScheduleFunc(ctx, fn)
}

func (m *MockScreeningRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.ScreeningDetail, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockScreeningRepo) Search(ctx context.Context, filters domain.ScreeningFilters) ([]*domain.ScreeningDetail, *domain.Metadata, error) {
	return m.SearchFunc(ctx, filters)
}
