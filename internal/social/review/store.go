// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import "context"

// Store is the statement surface for reviews. Every lookup is scoped to a title.
type Store interface {
	// ReviewExists satisfies [policy.ReviewLookup].
	ReviewExists(context context.Context, authorID string, titleID int64) (bool, error)

	// TitleExists reports whether the parent title is present.
	TitleExists(context context.Context, titleID int64) (bool, error)

	// List returns the reviews of a title ordered by publication date.
	List(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error)

	// FindByID returns the review only when it belongs to titleID.
	FindByID(context context.Context, titleID, reviewID int64) (*Review, error)

	/*
		Create inserts the review and fills ID, Author and PubDate.

		Returns:
		  - error: [policy.ErrDuplicateReview] when the author already reviewed the title
	*/
	Create(context context.Context, review *Review) error

	// Update rewrites text and score. The publication date never changes.
	Update(context context.Context, review *Review) error

	// Delete removes the review and its comments.
	Delete(context context.Context, titleID, reviewID int64) error
}

// Repository is a [Store] that can also run a unit of work atomically.
type Repository interface {
	Store

	// WithinTx runs fn against a transaction-bound Store. The transaction
	// commits when fn returns nil.
	WithinTx(context context.Context, fn func(store Store) error) error
}
