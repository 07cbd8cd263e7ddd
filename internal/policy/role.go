// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package policy holds the access and integrity rules of YaMDB.

Every decision here is a pure function of its inputs: no logging, no storage
access except through the narrow lookup interfaces passed in by the caller,
and no implicit defaults. Handlers and services translate a negative decision
into an [apperr.AppError] with [Require].

Contents:

  - Role model: [Role], [Actor] and the derived predicates.
  - Authorization evaluator: [Rule] combinators and the per-resource rules.
  - Review uniqueness guard: [AssertReviewAllowed].
  - Confirmation-code flow: [DecideSignup] and [RedeemCode].
*/
package policy

import (
	"fmt"
	"strings"
)

// # Roles

// Role is the closed set of authorization tiers an account can hold.
type Role string

const (
	// RoleUser is the default tier: may write reviews and comments, edit own content.
	RoleUser Role = "user"

	// RoleModerator may additionally edit or delete any review or comment.
	RoleModerator Role = "moderator"

	// RoleAdmin may manage accounts and the catalog.
	RoleAdmin Role = "admin"
)

// DefaultRole is assigned to every account created through signup.
const DefaultRole = RoleUser

// ReservedUsername is the path alias for the calling account. No account may hold it.
const ReservedUsername = "me"

// Roles lists every valid role in ascending order of privilege.
func Roles() []Role {
	return []Role{RoleUser, RoleModerator, RoleAdmin}
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole converts raw input into a [Role], rejecting unknown values.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.TrimSpace(raw))
	if !role.Valid() {
		return "", fmt.Errorf("policy: unknown role %q", raw)
	}
	return role, nil
}

// IsReservedUsername reports whether username collides with [ReservedUsername].
func IsReservedUsername(username string) bool {
	return strings.EqualFold(strings.TrimSpace(username), ReservedUsername)
}

// # Actors

// Actor is the identity on whose behalf a request runs.
type Actor struct {
	ID        string
	Username  string
	Role      Role
	Superuser bool

	authenticated bool
}

// Anonymous returns the actor of a request without credentials.
func Anonymous() Actor {
	return Actor{}
}

// NewActor returns an authenticated actor. An empty id yields [Anonymous].
func NewActor(id, username string, role Role, superuser bool) Actor {
	if id == "" {
		return Anonymous()
	}
	return Actor{
		ID:            id,
		Username:      username,
		Role:          role,
		Superuser:     superuser,
		authenticated: true,
	}
}

// IsAuthenticated reports whether the actor carries a resolved identity.
func (a Actor) IsAuthenticated() bool {
	return a.authenticated
}

// IsAdmin reports whether the actor holds the admin role or the superuser flag.
func (a Actor) IsAdmin() bool {
	return a.authenticated && (a.Role == RoleAdmin || a.Superuser)
}

// IsModerator reports whether the actor holds the moderator role.
func (a Actor) IsModerator() bool {
	return a.authenticated && a.Role == RoleModerator
}

// Owns reports whether the actor is the owner identified by ownerID.
func (a Actor) Owns(ownerID string) bool {
	return a.authenticated && ownerID != "" && a.ID == ownerID
}
