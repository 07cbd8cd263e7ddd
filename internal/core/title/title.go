// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package title manages the catalog of reviewable works.

A title belongs to at most one category and any number of genres. Its rating is
the average score of its reviews and is computed on every read.

Reads are public. Every write requires an administrator.
*/
package title

import (
	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/pkg/slice"
)

// # Domain Entities

// Title is a reviewable work as returned by the API.
type Title struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Year        int             `json:"year"`
	Description string          `json:"description"`
	Category    *taxonomy.Term  `json:"category"`
	Genres      []taxonomy.Term `json:"genre"`
	CategoryID  *int64          `json:"-"`

	// Rating is the mean review score, nil while the title has no reviews.
	Rating *float64 `json:"rating"`
}

// GenreIDs returns the identifiers of the attached genres.
func (title *Title) GenreIDs() []int64 {
	return slice.Map(title.Genres, func(genre taxonomy.Term) int64 { return genre.ID })
}

// Filter narrows a title listing. Zero values disable a criterion.
type Filter struct {
	// Category matches the category slug exactly.
	Category string
	// Genre matches any attached genre slug exactly.
	Genre string
	// Name matches a case-insensitive substring of the name.
	Name string
	// Year matches the release year exactly.
	Year *int
}

// # Constraints

const (
	// MaxNameLength bounds Title.Name.
	MaxNameLength = 256

	resource = "Title"
)

// ErrFutureYear is returned when a title is dated after the current year.
var ErrFutureYear = apperr.ValidationError("Title year cannot be in the future",
	apperr.FieldError{Field: "year", Message: "Cannot be in the future"},
)
