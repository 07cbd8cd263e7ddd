// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import "context"

// Repository persists the terms of one [Kind].
type Repository interface {
	// List returns terms whose name contains search, ordered by name.
	List(context context.Context, search string, limit, offset int) ([]*Term, int, error)

	// Create inserts term and sets its ID. A taken slug is Kind.ErrSlugTaken.
	Create(context context.Context, term *Term) error

	// DeleteBySlug removes the term; titles referencing it are detached.
	DeleteBySlug(context context.Context, slug string) error

	// FindBySlugs resolves slugs to terms. Unknown slugs are simply absent.
	FindBySlugs(context context.Context, slugs []string) ([]*Term, error)
}
