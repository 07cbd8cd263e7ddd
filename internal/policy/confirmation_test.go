// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yamdb/internal/policy"
)

/*
TestDecideSignup verifies the classification of every signup situation.
*/
func TestDecideSignup(t *testing.T) {
	critic := &policy.Registration{AccountID: "a1", Username: "critic", Email: "critic@example.com"}
	other := &policy.Registration{AccountID: "a2", Username: "other", Email: "other@example.com"}

	tests := []struct {
		name       string
		username   string
		email      string
		byUsername *policy.Registration
		byEmail    *policy.Registration
		want       policy.SignupStatus
	}{
		{name: "fresh identity", username: "newbie", email: "newbie@example.com", want: policy.SignupIssued},
		{name: "exact pair exists", username: "critic", email: "critic@example.com", byUsername: critic, byEmail: critic, want: policy.SignupAlreadyRegistered},
		{name: "reserved username", username: "me", email: "me@example.com", want: policy.SignupRejected},
		{name: "username taken by another email", username: "critic", email: "fresh@example.com", byUsername: critic, want: policy.SignupConflict},
		{name: "email taken by another username", username: "fresh", email: "other@example.com", byEmail: other, want: policy.SignupConflict},
		{name: "username and email of different accounts", username: "critic", email: "other@example.com", byUsername: critic, byEmail: other, want: policy.SignupConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.DecideSignup(tt.username, tt.email, tt.byUsername, tt.byEmail))
		})
	}
}

/*
TestDecideSignup_Idempotent verifies repeating a registered pair keeps the same outcome.
*/
func TestDecideSignup_Idempotent(t *testing.T) {
	critic := &policy.Registration{AccountID: "a1", Username: "critic", Email: "critic@example.com"}

	for range 3 {
		status := policy.DecideSignup("critic", "critic@example.com", critic, critic)
		assert.Equal(t, policy.SignupAlreadyRegistered, status)
		assert.NoError(t, status.Err())
	}
}

/*
TestSignupStatus_Err verifies only rejections carry a client error.
*/
func TestSignupStatus_Err(t *testing.T) {
	assert.NoError(t, policy.SignupIssued.Err())
	assert.NoError(t, policy.SignupAlreadyRegistered.Err())
	assert.ErrorIs(t, policy.SignupRejected.Err(), policy.ErrReservedIdentifier)
	assert.ErrorIs(t, policy.SignupConflict.Err(), policy.ErrIdentityTaken)
}

/*
TestRedeemCode verifies redemption succeeds only for the exact stored code.
*/
func TestRedeemCode(t *testing.T) {
	equal := func(stored, submitted string) bool { return stored == submitted }
	pending := &policy.Registration{Username: "critic", CodeHash: "12345"}
	redeemed := &policy.Registration{Username: "critic"}

	tests := []struct {
		name         string
		registration *policy.Registration
		submitted    string
		wantErr      error
	}{
		{name: "exact code", registration: pending, submitted: "12345"},
		{name: "wrong code", registration: pending, submitted: "12346", wantErr: policy.ErrInvalidCode},
		{name: "empty code", registration: pending, submitted: "", wantErr: policy.ErrInvalidCode},
		{name: "no pending code", registration: redeemed, submitted: "", wantErr: policy.ErrInvalidCode},
		{name: "unknown account", registration: nil, submitted: "12345", wantErr: policy.ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.RedeemCode(tt.registration, tt.submitted, equal)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
