// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package taxonomy manages the flat name/slug classifications of titles:
categories (one per title) and genres (many per title).

Both share one implementation parameterized by a [Kind].
*/
package taxonomy

import (
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
)

// Term is a single category or genre.
type Term struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Kind binds a taxonomy to its table and its messages.
type Kind struct {
	// Resource names the entity in NOT_FOUND messages.
	Resource string

	Table schema.CoreTaxonomyTable

	// ErrSlugTaken is returned when the slug is already used.
	ErrSlugTaken *apperr.AppError
}

var (
	// Categories is the kind backing /categories.
	Categories = Kind{
		Resource:     "Category",
		Table:        schema.CoreCategory,
		ErrSlugTaken: apperr.Conflict("A category with this slug already exists."),
	}

	// Genres is the kind backing /genres.
	Genres = Kind{
		Resource:     "Genre",
		Table:        schema.CoreGenre,
		ErrSlugTaken: apperr.Conflict("A genre with this slug already exists."),
	}
)

const (
	// MaxNameLength bounds Term.Name.
	MaxNameLength = 256

	// MaxSlugLength bounds Term.Slug.
	MaxSlugLength = 50
)
