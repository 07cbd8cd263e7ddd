// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package policy

import "net/http"

// # Rule Algebra

// Request is the input of a single authorization decision.
type Request struct {
	Actor Actor

	// Safe is true for read-only HTTP methods.
	Safe bool

	// OwnerID identifies the author of the target resource. Empty for collections.
	OwnerID string
}

// Rule decides a [Request]. Rules are total and never panic.
type Rule func(Request) bool

// AnyOf is satisfied when at least one rule is. With no rules it denies.
func AnyOf(rules ...Rule) Rule {
	return func(request Request) bool {
		for _, rule := range rules {
			if rule(request) {
				return true
			}
		}
		return false
	}
}

// AllOf is satisfied when every rule is. With no rules it denies.
func AllOf(rules ...Rule) Rule {
	return func(request Request) bool {
		if len(rules) == 0 {
			return false
		}
		for _, rule := range rules {
			if !rule(request) {
				return false
			}
		}
		return true
	}
}

// Not inverts rule.
func Not(rule Rule) Rule {
	return func(request Request) bool {
		return !rule(request)
	}
}

// # Primitive Rules

var (
	// SafeMethod allows read-only requests.
	SafeMethod Rule = func(request Request) bool { return request.Safe }

	// Authenticated allows any resolved identity.
	Authenticated Rule = func(request Request) bool { return request.Actor.IsAuthenticated() }

	// Admin allows admins and superusers.
	Admin Rule = func(request Request) bool { return request.Actor.IsAdmin() }

	// Moderator allows moderators.
	Moderator Rule = func(request Request) bool { return request.Actor.IsModerator() }

	// Owner allows the author of the target resource.
	Owner Rule = func(request Request) bool { return request.Actor.Owns(request.OwnerID) }
)

// # Resource Rules

var (
	// CollectionRule guards review and comment collections.
	CollectionRule = AnyOf(SafeMethod, Authenticated)

	// AdminResourceRule guards categories, genres, and titles.
	AdminResourceRule = AnyOf(SafeMethod, Admin)

	// OwnedResourceRule guards a single review or comment.
	OwnedResourceRule = AnyOf(SafeMethod, AllOf(Authenticated, AnyOf(Admin, Moderator, Owner)))

	// AccountsRule guards account administration. Reads are not exempt.
	AccountsRule = Admin
)

// CanAccessCollection decides access to a review or comment collection.
func CanAccessCollection(actor Actor, isSafeMethod bool) bool {
	return CollectionRule(Request{Actor: actor, Safe: isSafeMethod})
}

// CanAccessAdminResource decides access to categories, genres, and titles.
func CanAccessAdminResource(actor Actor, isSafeMethod bool) bool {
	return AdminResourceRule(Request{Actor: actor, Safe: isSafeMethod})
}

// CanAccessOwnedResource decides access to a review or comment authored by ownerID.
func CanAccessOwnedResource(actor Actor, isSafeMethod bool, ownerID string) bool {
	return OwnedResourceRule(Request{Actor: actor, Safe: isSafeMethod, OwnerID: ownerID})
}

// CanManageAccounts decides access to the account administration endpoints.
func CanManageAccounts(actor Actor) bool {
	return AccountsRule(Request{Actor: actor})
}

// IsSafeMethod reports whether method is read-only.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// Require converts a negative decision into the matching error.
//
// Anonymous actors get [ErrUnauthenticated]; identified actors get [ErrForbidden].
func Require(actor Actor, allowed bool) error {
	if allowed {
		return nil
	}
	if !actor.IsAuthenticated() {
		return ErrUnauthenticated
	}
	return ErrForbidden
}
