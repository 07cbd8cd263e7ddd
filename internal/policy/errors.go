// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package policy

import "github.com/taibuivan/yamdb/internal/platform/apperr"

// Error codes surfaced to API clients.
const (
	CodeDuplicateReview    = "DUPLICATE_REVIEW"
	CodeReservedIdentifier = "RESERVED_IDENTIFIER"
	CodeInvalidCode        = "INVALID_CODE"
)

var (
	// ErrUnauthenticated is returned when a write is attempted without credentials.
	ErrUnauthenticated = apperr.Unauthorized("Authentication credentials were not provided.")

	// ErrForbidden is returned when the actor lacks the role or ownership required.
	ErrForbidden = apperr.Forbidden("You do not have permission to perform this action.")

	// ErrDuplicateReview is returned when an author reviews the same title twice.
	ErrDuplicateReview = apperr.BadRequest(CodeDuplicateReview, "You have already reviewed this title.")

	// ErrReservedIdentifier is returned when a username equals [ReservedUsername].
	ErrReservedIdentifier = apperr.BadRequest(CodeReservedIdentifier, "The username \"me\" is reserved.")

	// ErrInvalidCode is returned when a confirmation code does not match.
	ErrInvalidCode = apperr.BadRequest(CodeInvalidCode, "Invalid confirmation code.")

	// ErrAccountNotFound is returned when a code is redeemed for an unknown username.
	ErrAccountNotFound = apperr.NotFound("Account")

	// ErrIdentityTaken is returned when a signup pairs a username and an email
	// that belong to different accounts.
	ErrIdentityTaken = apperr.Conflict("This username or email is already taken.")
)
