// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles user profiles and their administration.

Administrators list, create, edit, and delete any account by username. Every
authenticated user reads and edits their own profile through the "me" alias,
which can never change the caller's role and can never delete the account.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/policy"
)

// # Domain Entities

// User is the public profile of an account.
type User struct {
	ID        string      `json:"-"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Bio       string      `json:"bio"`
	Role      policy.Role `json:"role"`
	Superuser bool        `json:"-"`
	CreatedAt time.Time   `json:"-"`
	UpdatedAt time.Time   `json:"-"`
}

// Filter narrows an account listing.
type Filter struct {
	// Search matches a case-insensitive substring of the username.
	Search string
}

// ErrAccountTaken is returned when a create or rename collides with another account.
var ErrAccountTaken = apperr.Conflict("A user with this username or email already exists.")

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
type AccountRepository interface {
	/*
		List returns one page of accounts ordered by username.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit, offset: int

		Returns:
		  - []*User: The page
		  - int: Total number of matches
		  - error: Storage failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*User, int, error)

	/*
		FindByUsername retrieves an account by its unique username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByID retrieves an account by its primary key.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		Create inserts a new account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: ErrAccountTaken or storage failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update writes every mutable column of user, including the role.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: ErrAccountTaken, apperr.NotFound or storage failures
	*/
	Update(context context.Context, user *User) error

	/*
		Delete removes the account; its reviews and comments cascade.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	Delete(context context.Context, id string) error
}
