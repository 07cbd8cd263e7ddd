// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import "context"

// Repository defines persistence operations for titles.
type Repository interface {
	/*
		List returns one page of titles ordered by name, with the total match count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Title: Hydrated titles including category, genres and rating
		  - int: Number of titles matching filter
		  - error: Storage failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error)

	// FindByID returns the hydrated title or a NOT_FOUND error.
	FindByID(context context.Context, id int64) (*Title, error)

	/*
		Create inserts the title with its genre links and sets its ID.

		Parameters:
		  - context: context.Context
		  - title: *Title (CategoryID and Genres[].ID must be resolved)

		Returns:
		  - error: Storage failures
	*/
	Create(context context.Context, title *Title) error

	// Update rewrites the scalar fields and category. The genre links are
	// replaced only when replaceGenres is set.
	Update(context context.Context, title *Title, replaceGenres bool) error

	// Delete removes the title together with its reviews and comments.
	Delete(context context.Context, id int64) error
}
