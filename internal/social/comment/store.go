// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// Repository defines persistence operations for comments.
type Repository interface {
	// ThreadExists reports whether the review exists and belongs to the title.
	ThreadExists(context context.Context, thread Thread) (bool, error)

	// List returns the comments of a review ordered by publication date.
	List(context context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error)

	// FindByID returns the comment only when it belongs to reviewID.
	FindByID(context context.Context, reviewID, commentID int64) (*Comment, error)

	// Create inserts the comment and fills ID, Author and PubDate.
	Create(context context.Context, comment *Comment) error

	// Update rewrites the text.
	Update(context context.Context, comment *Comment) error

	Delete(context context.Context, reviewID, commentID int64) error
}
