// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements passwordless registration and token issuance.

A client posts a username and an email to /signup and receives a one-time
confirmation code by mail. Posting the username and that code to /token returns
a signed access token.

Architecture:

  - Service: Orchestrates the flow around [policy.DecideSignup] and [policy.RedeemCode].
  - Repository: Postgres holds the accounts and the hashed pending code, Redis holds
    the per-email resend cooldown.
  - Delivery: Codes leave the system only through a [mail.Sender].
*/
package auth

import "github.com/taibuivan/yamdb/internal/policy"

// # Domain Entities

// Identity is the slice of an account the registration flow reads and writes.
type Identity struct {
	ID        string
	Username  string
	Email     string
	Role      policy.Role
	Superuser bool

	// CodeHash is the bcrypt hash of the pending confirmation code, empty when none.
	CodeHash string
}

// Registration projects the identity onto the policy view. Nil stays nil.
func (identity *Identity) Registration() *policy.Registration {
	if identity == nil {
		return nil
	}
	return &policy.Registration{
		AccountID: identity.ID,
		Username:  identity.Username,
		Email:     identity.Email,
		CodeHash:  identity.CodeHash,
	}
}

// # Field Identifiers

const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
	FieldToken            = "token"
)

// # Mail

const (
	// SignupMailSubject is the subject of the confirmation email.
	SignupMailSubject = "YaMDB registration"

	// signupMailBody is rendered with the username and the code.
	signupMailBody = "Hello, %s!\n\nYour YaMDB confirmation code: %s\n\nExchange it for an access token at /api/v1/auth/token."
)
