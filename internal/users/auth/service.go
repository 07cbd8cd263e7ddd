// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/mail"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/policy"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for subject.
	GenerateAccessToken(subject sec.TokenSubject) (string, error)
}

// ErrDeliveryFailed is returned when the confirmation code could not be mailed.
var ErrDeliveryFailed = apperr.New(http.StatusInternalServerError, "MAIL_DELIVERY_FAILED",
	"The confirmation email could not be sent. Try again later.", nil)

// Service implements the signup and token use cases.
type Service struct {
	identityRepository IdentityRepository
	cooldownRepository CooldownRepository
	tokenProvider      TokenProvider
	mailer             mail.Sender
	cooldown           time.Duration
	logger             *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	identityRepo IdentityRepository,
	cooldownRepo CooldownRepository,
	tokenProv TokenProvider,
	mailer mail.Sender,
	cooldown time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		identityRepository: identityRepo,
		cooldownRepository: cooldownRepo,
		tokenProvider:      tokenProv,
		mailer:             mailer,
		cooldown:           cooldown,
		logger:             logger,
	}
}

// # Signup Flow

// SignupInput holds the identity a client wants to register.
type SignupInput struct {
	Username string
	Email    string
}

/*
Signup registers a new account or re-issues the code of an existing one.

Description: The request is classified by [policy.DecideSignup]. New accounts
get the default role and a fresh code. Repeating the exact pair re-issues the
code, unless a mail went to that address within the cooldown window; the call
then succeeds without sending a second mail.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - policy.SignupStatus: Issued or AlreadyRegistered on success
  - error: ReservedIdentifier, Conflict, ErrDeliveryFailed or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (policy.SignupStatus, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	// ── 1. Classify ───────────────────────────────────────────────────────
	byUsername, byEmail, err := service.identityRepository.Lookup(context, username, email)
	if err != nil {
		return "", fmt.Errorf("auth_service_signup_lookup_failed: %w", err)
	}

	status := policy.DecideSignup(username, email, byUsername.Registration(), byEmail.Registration())
	if err := status.Err(); err != nil {
		return status, err
	}

	// ── 2. Throttle re-sends ──────────────────────────────────────────────
	acquired, err := service.cooldownRepository.Acquire(context, email, service.cooldown)
	if err != nil {
		return "", fmt.Errorf("auth_service_signup_cooldown_failed: %w", err)
	}

	if status == policy.SignupAlreadyRegistered && !acquired {
		service.logger.InfoContext(context, "signup_cooldown_active", slog.String("username", username))
		return status, nil
	}

	// Every failure from here on frees the window so the retry sends a code.
	fail := func(err error) (policy.SignupStatus, error) {
		if acquired {
			service.releaseCooldown(context, email)
		}
		return "", err
	}

	// ── 3. Issue a fresh code ─────────────────────────────────────────────
	code, err := sec.GenerateConfirmationCode()
	if err != nil {
		return fail(fmt.Errorf("auth_service_signup_code_failed: %w", err))
	}

	codeHash, err := sec.HashSecret(code)
	if err != nil {
		return fail(fmt.Errorf("auth_service_signup_hash_failed: %w", err))
	}

	switch status {
	case policy.SignupIssued:
		identity := &Identity{
			ID:       uuid.New(),
			Username: username,
			Email:    email,
			Role:     policy.DefaultRole,
			CodeHash: codeHash,
		}
		if err := service.identityRepository.Create(context, identity); err != nil {
			return fail(err)
		}
	case policy.SignupAlreadyRegistered:
		if err := service.identityRepository.SetCode(context, byUsername.ID, codeHash); err != nil {
			return fail(fmt.Errorf("auth_service_signup_set_code_failed: %w", err))
		}
	}

	// ── 4. Deliver ────────────────────────────────────────────────────────
	message := mail.Message{
		To:      email,
		Subject: SignupMailSubject,
		Body:    fmt.Sprintf(signupMailBody, username, code),
	}
	if err := service.mailer.Send(context, message); err != nil {
		return fail(ErrDeliveryFailed.WithCause(err))
	}

	service.logger.InfoContext(context, "signup_code_issued",
		slog.String("username", username),
		slog.String("status", string(status)),
	)

	return status, nil
}

// releaseCooldown lets the client retry at once after a failed signup.
func (service *Service) releaseCooldown(context context.Context, email string) {
	if err := service.cooldownRepository.Release(context, email); err != nil {
		service.logger.WarnContext(context, "signup_cooldown_release_failed", slog.Any("error", err))
	}
}

// # Token Flow

/*
IssueToken redeems a confirmation code for a signed access token.

Description: The code is single use. It is cleared with a compare-and-swap so two
concurrent redemptions of the same code cannot both succeed.

Parameters:
  - context: context.Context
  - username: string
  - code: string

Returns:
  - string: Signed JWT
  - error: NotFound, InvalidCode or internal failures
*/
func (service *Service) IssueToken(context context.Context, username, code string) (string, error) {
	identity, err := service.identityRepository.FindByUsername(context, strings.TrimSpace(username))
	if err != nil {
		return "", fmt.Errorf("auth_service_token_lookup_failed: %w", err)
	}

	if err := policy.RedeemCode(identity.Registration(), strings.TrimSpace(code), sec.CheckSecretHash); err != nil {
		return "", err
	}

	consumed, err := service.identityRepository.ConsumeCode(context, identity.ID, identity.CodeHash)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_consume_failed: %w", err)
	}
	if !consumed {
		return "", policy.ErrInvalidCode
	}

	token, err := service.tokenProvider.GenerateAccessToken(sec.TokenSubject{
		UserID:    identity.ID,
		Username:  identity.Username,
		Role:      string(identity.Role),
		Superuser: identity.Superuser,
	})
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	service.logger.InfoContext(context, "token_issued", slog.String("user_id", identity.ID))

	return token, nil
}
