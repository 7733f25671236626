package domain

import "time"

type Movie struct {
	ID          int
	Title       string
	Description string
	Duration    int // minutes
	Recommended bool
	ReleaseDate time.Time
}
