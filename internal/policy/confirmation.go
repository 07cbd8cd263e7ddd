// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package policy

// # Signup

// SignupStatus is the outcome of a signup request.
type SignupStatus string

const (
	// SignupIssued means a new account is created and a code is mailed.
	SignupIssued SignupStatus = "issued"

	// SignupAlreadyRegistered means the pair exists; a fresh code is mailed.
	SignupAlreadyRegistered SignupStatus = "already_registered"

	// SignupRejected means the username is reserved.
	SignupRejected SignupStatus = "rejected"

	// SignupConflict means the username or the email belongs to another account.
	SignupConflict SignupStatus = "conflict"
)

// Registration is the view of an account the confirmation flow needs.
type Registration struct {
	AccountID string
	Username  string
	Email     string

	// CodeHash is the hash of the pending confirmation code, empty when none.
	CodeHash string
}

// DecideSignup classifies a signup request.
//
// byUsername and byEmail are the accounts currently holding the requested
// username and email, nil when free.
func DecideSignup(username, email string, byUsername, byEmail *Registration) SignupStatus {
	if byUsername != nil && byUsername.Email == email {
		return SignupAlreadyRegistered
	}

	if IsReservedUsername(username) {
		return SignupRejected
	}

	if byUsername != nil || byEmail != nil {
		return SignupConflict
	}

	return SignupIssued
}

// Err maps the status to its client error, nil for the successful outcomes.
func (status SignupStatus) Err() error {
	switch status {
	case SignupRejected:
		return ErrReservedIdentifier
	case SignupConflict:
		return ErrIdentityTaken
	default:
		return nil
	}
}

// # Redemption

// CodeMatcher compares a stored code hash with a submitted code.
type CodeMatcher func(storedHash, submitted string) bool

// RedeemCode decides whether submitted unlocks a token for registration.
//
// A nil registration is [ErrAccountNotFound]; a missing or different code is
// [ErrInvalidCode].
func RedeemCode(registration *Registration, submitted string, matches CodeMatcher) error {
	if registration == nil {
		return ErrAccountNotFound
	}

	if registration.CodeHash == "" || submitted == "" || !matches(registration.CodeHash, submitted) {
		return ErrInvalidCode
	}

	return nil
}
