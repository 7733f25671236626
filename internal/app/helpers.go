package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (app *application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	maxBytes := 1_048_576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")

		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")

		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)

		case errors.As(err, &invalidUnmarshalError):
			panic(err)

		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func (app *application) readScreeningID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "screeningID"))
	if err != nil {
		return uuid.Nil, errors.New("invalid screening ID")
	}

	return id, nil
}

func readString(qs url.Values, key string) string {
	return qs.Get(key)
}

func readInt(qs url.Values, key string) (*int, error) {
	s := qs.Get(key)
	if s == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}

	return &v, nil
}

func readBool(qs url.Values, key string) (*bool, error) {
	s := qs.Get(key)
	if s == "" {
		return nil, nil
	}

	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be a boolean", key)
	}

	return &v, nil
}

func readDecimal(qs url.Values, key string) (*decimal.Decimal, error) {
	s := qs.Get(key)
	if s == "" {
		return nil, nil
	}

	v, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be a decimal number", key)
	}

	return &v, nil
}

func readDate(qs url.Values, key string) (*time.Time, error) {
	s := qs.Get(key)
	if s == "" {
		return nil, nil
	}

	v, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("%s must be a date in YYYY-MM-DD format", key)
	}

	return &v, nil
}
