// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package policy

import (
	"context"
	"fmt"
)

// ReviewLookup answers whether an author already reviewed a title.
//
// Implementations must read through the same transaction that will insert the review.
type ReviewLookup interface {
	ReviewExists(context context.Context, authorID string, titleID int64) (bool, error)
}

// AssertReviewAllowed enforces one review per (author, title).
//
// Only creation is checked; editing an existing review is always allowed here.
func AssertReviewAllowed(context context.Context, lookup ReviewLookup, actor Actor, titleID int64, isCreate bool) error {
	if !isCreate {
		return nil
	}

	exists, err := lookup.ReviewExists(context, actor.ID, titleID)
	if err != nil {
		return fmt.Errorf("policy_review_lookup_failed: %w", err)
	}

	if exists {
		return ErrDuplicateReview
	}

	return nil
}
