package app

import (
	"net/http"

	"github.com/cinegrid/screening-service/internal/domain"
	"github.com/cinegrid/screening-service/internal/scheduler"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSort     = "start_time"
)

func (app *application) CreateScreening(w http.ResponseWriter, r *http.Request) {
	var input CreateScreeningRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	detail, err := app.scheduler.CreateScreening(r.Context(), scheduler.CreateScreeningParams{
		MovieID:   input.MovieId,
		TheaterID: input.TheaterId,
		HallID:    input.HallId,
		StartTime: input.StartTime,
		Price:     input.Price,
		Quality:   domain.Quality(input.Quality),
	})
	if err != nil {
		app.scheduleErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toScreeningResponse(detail), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetScreening(w http.ResponseWriter, r *http.Request) {
	id, err := app.readScreeningID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	detail, err := app.scheduler.GetScreening(r.Context(), id)
	if err != nil {
		app.scheduleErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toScreeningResponse(detail), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) UpdateScreening(w http.ResponseWriter, r *http.Request) {
	id, err := app.readScreeningID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input UpdateScreeningRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	params := scheduler.UpdateScreeningParams{
		MovieID:   input.MovieId,
		TheaterID: input.TheaterId,
		HallID:    input.HallId,
		StartTime: input.StartTime,
		Price:     input.Price,
	}
	if input.Quality != nil {
		quality := domain.Quality(*input.Quality)
		params.Quality = &quality
	}

	detail, err := app.scheduler.UpdateScreening(r.Context(), id, params)
	if err != nil {
		app.scheduleErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toScreeningResponse(detail), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) DeleteScreening(w http.ResponseWriter, r *http.Request) {
	id, err := app.readScreeningID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.scheduler.DeleteScreening(r.Context(), id)
	if err != nil {
		app.scheduleErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) SearchScreenings(w http.ResponseWriter, r *http.Request) {
	filters, err := app.parseScreeningFilters(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	params := SearchScreeningsParams{
		Page:     filters.Page,
		PageSize: filters.PageSize,
		Term:     filters.Term,
		Quality:  filters.Quality,
		Sort:     filters.Sort,
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	screenings, metadata, err := app.scheduler.SearchScreenings(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := ScreeningListResponse{
		Screenings: toScreeningResponses(screenings),
		Metadata:   toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) parseScreeningFilters(r *http.Request) (domain.ScreeningFilters, error) {
	qs := r.URL.Query()

	filters := domain.ScreeningFilters{
		Pagination: domain.Pagination{
			Page:     DefaultPage,
			PageSize: DefaultPageSize,
			Sort:     DefaultSort,
			Term:     readString(qs, "term"),
		},
		Quality: readString(qs, "quality"),
	}

	if sort := readString(qs, "sort"); sort != "" {
		filters.Sort = sort
	}

	page, err := readInt(qs, "page")
	if err != nil {
		return filters, err
	}
	if page != nil {
		filters.Page = *page
	}

	pageSize, err := readInt(qs, "pageSize")
	if err != nil {
		return filters, err
	}
	if pageSize != nil {
		filters.PageSize = *pageSize
	}

	if filters.MovieID, err = readInt(qs, "movieId"); err != nil {
		return filters, err
	}
	if filters.TheaterID, err = readInt(qs, "theaterId"); err != nil {
		return filters, err
	}
	if filters.HallID, err = readInt(qs, "hallId"); err != nil {
		return filters, err
	}
	if filters.MinPrice, err = readDecimal(qs, "minPrice"); err != nil {
		return filters, err
	}
	if filters.MaxPrice, err = readDecimal(qs, "maxPrice"); err != nil {
		return filters, err
	}
	if filters.Recommended, err = readBool(qs, "recommended"); err != nil {
		return filters, err
	}
	if filters.Date, err = readDate(qs, "date"); err != nil {
		return filters, err
	}

	return filters, nil
}
