// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates account identifiers.

Accounts are keyed by time-ordered UUIDv7 values so new rows append to the
primary key index. Titles, reviews, and comments use database identities.
*/
package uuid

import "github.com/google/uuid"

// New returns a fresh UUIDv7 in canonical string form.
//
// It panics only when the OS entropy source fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
