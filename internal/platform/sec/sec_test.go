// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/sec"
)

func newTokenService(t *testing.T, issuer string, ttl time.Duration) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKeys(key, &key.PublicKey, issuer, ttl)
}

/*
TestTokenService_RoundTrip verifies a minted token verifies back into the same identity.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "yamdb.test", time.Hour)

	token, err := service.GenerateAccessToken(sec.TokenSubject{
		UserID:    "0192-user",
		Username:  "critic",
		Role:      "admin",
		Superuser: true,
	})
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "0192-user", claims.UserID)
	assert.Equal(t, "critic", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.True(t, claims.Superuser)
}

/*
TestTokenService_Rejects verifies expired, foreign, and malformed tokens are refused.
*/
func TestTokenService_Rejects(t *testing.T) {
	service := newTokenService(t, "yamdb.test", time.Hour)
	expired := newTokenService(t, "yamdb.test", -time.Minute)
	foreign := newTokenService(t, "yamdb.test", time.Hour)

	expiredToken, err := expired.GenerateAccessToken(sec.TokenSubject{UserID: "u"})
	require.NoError(t, err)
	foreignToken, err := foreign.GenerateAccessToken(sec.TokenSubject{UserID: "u"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		verifier *sec.TokenService
		token    string
	}{
		{name: "expired", verifier: expired, token: expiredToken},
		{name: "signed by another key", verifier: service, token: foreignToken},
		{name: "garbage", verifier: service, token: "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.verifier.VerifyToken(tt.token)
			assert.Error(t, err)
		})
	}
}

/*
TestSecretHash verifies confirmation codes match only their own hash.
*/
func TestSecretHash(t *testing.T) {
	hash, err := sec.HashSecret("12345")
	require.NoError(t, err)

	assert.True(t, sec.CheckSecretHash(hash, "12345"))
	assert.False(t, sec.CheckSecretHash(hash, "12346"))
	assert.False(t, sec.CheckSecretHash(hash, ""))
	assert.False(t, sec.CheckSecretHash("", "12345"))
}

/*
TestGenerateConfirmationCode verifies codes are fixed-width digit strings.
*/
func TestGenerateConfirmationCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9]{6}$`)

	for range 50 {
		code, err := sec.GenerateConfirmationCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}
}
