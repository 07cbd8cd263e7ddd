// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # Identity Data Access

// IdentityRepository defines the data access contract for registrations.
type IdentityRepository interface {

	/*
		Lookup returns the accounts currently holding username and email.

		Parameters:
		  - context: context.Context
		  - username: string
		  - email: string

		Returns:
		  - byUsername: *Identity (nil when the username is free)
		  - byEmail: *Identity (nil when the email is free)
		  - error: Database retrieval failures
	*/
	Lookup(context context.Context, username, email string) (byUsername, byEmail *Identity, err error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *Identity: Hydrated entity, nil when absent
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*Identity, error)

	/*
		Create persists a brand-new account holding a pending code.

		Parameters:
		  - context: context.Context
		  - identity: *Identity

		Returns:
		  - error: policy.ErrIdentityTaken on a concurrent registration, or persistence failures
	*/
	Create(context context.Context, identity *Identity) error

	/*
		SetCode replaces the pending code hash of an account.

		Parameters:
		  - context: context.Context
		  - accountID: string
		  - codeHash: string

		Returns:
		  - error: Persistence failures
	*/
	SetCode(context context.Context, accountID, codeHash string) error

	/*
		ConsumeCode clears the pending code if it still equals codeHash.

		Parameters:
		  - context: context.Context
		  - accountID: string
		  - codeHash: string

		Returns:
		  - bool: false when another redemption or a re-issue got there first
		  - error: Persistence failures
	*/
	ConsumeCode(context context.Context, accountID, codeHash string) (bool, error)
}

// # Volatile Data Access

// CooldownRepository throttles how often a confirmation code is re-sent to an email.
type CooldownRepository interface {

	/*
		Acquire starts the cooldown window for email unless one is already running.

		Parameters:
		  - context: context.Context
		  - email: string
		  - window: time.Duration

		Returns:
		  - bool: true when the window was started by this call
		  - error: Connectivity errors
	*/
	Acquire(context context.Context, email string, window time.Duration) (bool, error)

	/*
		Release ends the cooldown window early, used when delivery failed.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - error: Connectivity errors
	*/
	Release(context context.Context, email string) error
}
