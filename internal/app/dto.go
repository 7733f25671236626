package app

import (
	"time"

	"github.com/cinegrid/screening-service/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateScreeningRequest struct {
	MovieId   int             `json:"movieId" validate:"required,min=1"`
	TheaterId int             `json:"theaterId" validate:"required,min=1"`
	HallId    int             `json:"hallId" validate:"required,min=1"`
	StartTime time.Time       `json:"startTime" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	Quality   string          `json:"quality" validate:"required,quality"`
}

type UpdateScreeningRequest struct {
	MovieId   *int             `json:"movieId" validate:"omitempty,min=1"`
	TheaterId *int             `json:"theaterId" validate:"omitempty,min=1"`
	HallId    *int             `json:"hallId" validate:"omitempty,min=1"`
	StartTime *time.Time       `json:"startTime"`
	Price     *decimal.Decimal `json:"price"`
	Quality   *string          `json:"quality" validate:"omitempty,quality"`
}

type SearchScreeningsParams struct {
	Page     int    `validate:"min=1"`
	PageSize int    `validate:"min=1,max=100"`
	Term     string `validate:"max=50"`
	Quality  string `validate:"max=20"`
	Sort     string `validate:"oneof=start_time -start_time price -price created_at -created_at"`
}

type ScreeningResponse struct {
	Id          uuid.UUID       `json:"id"`
	MovieId     int             `json:"movieId"`
	TheaterId   int             `json:"theaterId"`
	HallId      int             `json:"hallId"`
	StartTime   time.Time       `json:"startTime"`
	EndTime     time.Time       `json:"endTime"`
	Price       decimal.Decimal `json:"price"`
	Quality     string          `json:"quality"`
	MovieTitle  string          `json:"movieTitle"`
	TheaterName string          `json:"theaterName"`
	HallName    string          `json:"hallName"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type ScreeningListResponse struct {
	Screenings []ScreeningResponse `json:"screenings"`
	Metadata   *Metadata           `json:"metadata,omitempty"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationIssue struct {
	Field string `json:"field,omitempty"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationIssue `json:"validationErrors"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

func toScreeningResponse(detail *domain.ScreeningDetail) ScreeningResponse {
	if detail == nil {
		return ScreeningResponse{}
	}

	return ScreeningResponse{
		Id:          detail.ID,
		MovieId:     detail.MovieID,
		TheaterId:   detail.TheaterID,
		HallId:      detail.HallID,
		StartTime:   detail.StartTime,
		EndTime:     detail.StartTime.Add(time.Duration(detail.MovieDuration) * time.Minute),
		Price:       detail.Price,
		Quality:     string(detail.Quality),
		MovieTitle:  detail.MovieTitle,
		TheaterName: detail.TheaterName,
		HallName:    detail.HallName,
		CreatedAt:   detail.CreatedAt,
		UpdatedAt:   detail.UpdatedAt,
	}
}

func toScreeningResponses(details []*domain.ScreeningDetail) []ScreeningResponse {
	responses := make([]ScreeningResponse, len(details))
	for i, detail := range details {
		responses[i] = toScreeningResponse(detail)
	}

	return responses
}

func toApiMetadata(metadata *domain.Metadata) *Metadata {
	if metadata == nil {
		return nil
	}

	return &Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
